package service

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"lungcare/config"

	"github.com/google/uuid"
)

// ImageStore 上传图片存储
// 落盘文件名由服务端生成（uuid + 扩展名），调用方提供的文件名只取扩展名，
// 避免用调用方数据拼路径带来的目录穿越问题
type ImageStore struct {
	dir string
}

// NewImageStore 创建图片存储
func NewImageStore(cfg *config.StorageConfig) *ImageStore {
	return &ImageStore{dir: cfg.UploadDir}
}

var extPattern = regexp.MustCompile(`^\.[a-z0-9]{1,8}$`)

// Save 保存一张上传的图片，返回存储名（作为记录的 image_url）
func (s *ImageStore) Save(originalName string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("创建上传目录失败: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	if !extPattern.MatchString(ext) {
		ext = ".png"
	}

	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("保存图片失败: %w", err)
	}
	return name, nil
}
