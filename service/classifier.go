package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"lungcare/config"
	"lungcare/models"
)

// 推理后端输出按此顺序给出四分类得分向量
var classNames = []string{
	"Adenocarcinoma",
	"Large cell carcinoma",
	"Normal",
	"Squamous cell carcinoma",
}

// ClassificationResult 单次分类的瞬态结果
type ClassificationResult struct {
	Label      string  // 归一化后的闭集标签
	Confidence float64 // [0,1]
	Model      string  // 产生结果的模型名
}

// Classifier 分类器适配器统一契约
type Classifier interface {
	Classify(ctx context.Context, image []byte) (*ClassificationResult, error)
}

// backendClassifier 单个深度学习推理后端的 HTTP 适配器
// 后端负责模型相关的预处理（缩放、归一化），这里只发原图、收得分向量
type backendClassifier struct {
	name   string
	url    string
	client *http.Client
}

// NewBackendClassifier 创建单后端分类器
func NewBackendClassifier(backend config.InferenceBackend, timeout time.Duration) Classifier {
	return &backendClassifier{
		name:   backend.Name,
		url:    backend.URL,
		client: &http.Client{Timeout: timeout},
	}
}

type predictRequest struct {
	Image string `json:"image"` // base64 编码的原始图片
}

type predictResponse struct {
	Scores []float64 `json:"scores"`
}

// Classify 调用推理后端并取得分最高的类别
func (b *backendClassifier) Classify(ctx context.Context, image []byte) (*ClassificationResult, error) {
	body, err := json.Marshal(predictRequest{Image: base64.StdEncoding.EncodeToString(image)})
	if err != nil {
		return nil, fmt.Errorf("%w: 构建请求失败: %v", ErrInference, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: 创建请求失败: %v", ErrInference, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: 请求推理后端 %s 失败: %v", ErrInference, b.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: 推理后端 %s 返回 %d: %s", ErrInference, b.name, resp.StatusCode, string(data))
	}

	var pr predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("%w: 解析推理结果失败: %v", ErrInference, err)
	}
	if len(pr.Scores) != len(classNames) {
		return nil, fmt.Errorf("%w: 推理后端 %s 返回 %d 个得分，预期 %d 个", ErrInference, b.name, len(pr.Scores), len(classNames))
	}

	// argmax
	best := 0
	for i, s := range pr.Scores {
		if s > pr.Scores[best] {
			best = i
		}
	}
	conf := pr.Scores[best]
	if conf < 0 || conf > 1 {
		return nil, fmt.Errorf("%w: 推理后端 %s 置信度越界: %f", ErrInference, b.name, conf)
	}

	return &ClassificationResult{
		Label:      models.NormalizeLabel(classNames[best]),
		Confidence: conf,
		Model:      b.name,
	}, nil
}

// DualModelClassifier 双模型分类器：对同一张图片分别推理，取置信度更高的结果
// 打平时取排在前面的模型（默认配置里是 ResNet50）
type DualModelClassifier struct {
	backends []Classifier
}

// NewDualModelClassifier 创建双模型分类器
func NewDualModelClassifier(backends ...Classifier) *DualModelClassifier {
	return &DualModelClassifier{backends: backends}
}

// NewDualModelClassifierFromConfig 按配置装配所有推理后端
func NewDualModelClassifierFromConfig(cfg *config.InferenceConfig) *DualModelClassifier {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	backends := make([]Classifier, 0, len(cfg.Backends))
	for _, b := range cfg.Backends {
		backends = append(backends, NewBackendClassifier(b, timeout))
	}
	return NewDualModelClassifier(backends...)
}

// Classify 任一后端失败则整体失败（不做重试，直接报告）
func (d *DualModelClassifier) Classify(ctx context.Context, image []byte) (*ClassificationResult, error) {
	if len(d.backends) == 0 {
		return nil, fmt.Errorf("%w: 未配置推理后端", ErrInference)
	}

	var best *ClassificationResult
	for _, backend := range d.backends {
		result, err := backend.Classify(ctx, image)
		if err != nil {
			return nil, err
		}
		if best == nil || result.Confidence > best.Confidence {
			best = result
		}
	}
	return best, nil
}
