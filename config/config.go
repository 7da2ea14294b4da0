package config

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Email     EmailConfig     `mapstructure:"email"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Inference InferenceConfig `mapstructure:"inference"`
	MedGemma  MedGemmaConfig  `mapstructure:"medgemma"`
	Report    ReportConfig    `mapstructure:"report"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    string `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
	BaseURL string `mapstructure:"base_url"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	Charset  string `mapstructure:"charset"`
}

// AuthConfig 认证配置（默认关闭，开启后筛查接口需要 JWT）
type AuthConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Secret      string        `mapstructure:"secret"`
	ExpireHours int           `mapstructure:"expire_hours"`
	ExpireTime  time.Duration `mapstructure:"-"`
}

// EmailConfig 邮件配置
type EmailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// StorageConfig 上传图片存储配置
type StorageConfig struct {
	UploadDir string `mapstructure:"upload_dir"`
}

// InferenceBackend 单个推理后端（一个已训练模型对应一个服务）
type InferenceBackend struct {
	Name string `mapstructure:"name"`
	URL  string `mapstructure:"url"`
}

// InferenceConfig 深度学习推理配置
type InferenceConfig struct {
	TimeoutSeconds int                `mapstructure:"timeout_seconds"`
	Backends       []InferenceBackend `mapstructure:"backends"`
}

// MedGemmaReference few-shot 参考样例（标签 + 图片地址）
type MedGemmaReference struct {
	Label    string `mapstructure:"label"`
	ImageURL string `mapstructure:"image_url"`
}

// MedGemmaConfig 视觉语言模型配置（OpenAI 兼容接口）
type MedGemmaConfig struct {
	BaseURL               string              `mapstructure:"base_url"`
	APIKey                string              `mapstructure:"api_key"`
	Model                 string              `mapstructure:"model"`
	PlaceholderConfidence float64             `mapstructure:"placeholder_confidence"`
	References            []MedGemmaReference `mapstructure:"references"`
}

// ReportConfig 报告叙述生成配置（OpenAI 兼容接口）
type ReportConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
}

var (
	// GlobalConfig 全局配置实例
	GlobalConfig *Config
)

// LoadConfig 加载配置
// 优先级: 环境变量 > 外部配置文件 > 嵌入的默认配置
// configPath: 可选的外部配置文件路径
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	// 1. 首先加载嵌入的默认配置
	if err := v.ReadConfig(bytes.NewReader(DefaultConfigYAML)); err != nil {
		return nil, fmt.Errorf("读取内置配置失败: %w", err)
	}
	log.Println("已加载内置默认配置")

	// 2. 尝试加载外部配置文件（可选，用于覆盖默认配置）
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.MergeInConfig(); err != nil {
			log.Printf("警告: 无法读取指定配置文件 %s: %v", configPath, err)
		} else {
			log.Printf("已合并外部配置文件: %s", configPath)
		}
	} else {
		externalViper := viper.New()
		externalViper.SetConfigName("config")
		externalViper.SetConfigType("yaml")
		externalViper.AddConfigPath(".")
		externalViper.AddConfigPath("./config")
		externalViper.AddConfigPath("/etc/lungcare")
		externalViper.AddConfigPath("$HOME/.lungcare")

		if err := externalViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(externalViper.AllSettings()); err != nil {
				log.Printf("警告: 合并外部配置失败: %v", err)
			} else {
				log.Printf("已合并外部配置文件: %s", externalViper.ConfigFileUsed())
			}
		}
	}

	// 3. 支持环境变量覆盖（API 密钥、SMTP 账号等敏感信息建议走这里）
	v.SetEnvPrefix("LUNGCARE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 解析配置
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	// 设置 JWT 过期时间
	if cfg.Auth.ExpireHours <= 0 {
		cfg.Auth.ExpireHours = 24
	}
	cfg.Auth.ExpireTime = time.Duration(cfg.Auth.ExpireHours) * time.Hour

	// 推理超时兜底，避免推理调用无限阻塞
	if cfg.Inference.TimeoutSeconds <= 0 {
		cfg.Inference.TimeoutSeconds = 120
	}

	// 保存到全局变量
	GlobalConfig = &cfg

	return &cfg, nil
}

// MustLoadConfig 加载配置，失败则 panic
func MustLoadConfig(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		panic(fmt.Sprintf("加载配置失败: %v", err))
	}
	return cfg
}

// GetConfig 获取全局配置
func GetConfig() *Config {
	if GlobalConfig == nil {
		panic("配置未初始化，请先调用 LoadConfig")
	}
	return GlobalConfig
}

// PrintConfig 打印当前配置（隐藏敏感信息）
func PrintConfig() {
	if GlobalConfig == nil {
		return
	}
	log.Printf("当前配置:")
	log.Printf("  服务器: %s (模式: %s)", GlobalConfig.Server.Port, GlobalConfig.Server.Mode)
	log.Printf("  数据库: %s@%s:%s/%s",
		GlobalConfig.Database.Username,
		GlobalConfig.Database.Host,
		GlobalConfig.Database.Port,
		GlobalConfig.Database.DBName)
	log.Printf("  推理后端: %d 个", len(GlobalConfig.Inference.Backends))
	log.Printf("  邮件服务: %v", GlobalConfig.Email.Enabled)
	log.Printf("  接口认证: %v", GlobalConfig.Auth.Enabled)
}
