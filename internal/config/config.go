package config

import (
	"errors"
	"fmt"
	"time"
)

// Config 应用配置根结构
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	AI      AIConfig      `mapstructure:"ai"`
	Image   ImageConfig   `mapstructure:"image"`
	TTS     TTSConfig     `mapstructure:"tts"`
	Story   StoryConfig   `mapstructure:"story"`
	Log     LogConfig     `mapstructure:"log"`
	Storage StorageConfig `mapstructure:"storage"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	// StrictRoutes 为 true 时未注册路由返回 404，否则返回 200 "OK"
	StrictRoutes bool       `mapstructure:"strict_routes"`
	CORS         CORSConfig `mapstructure:"cors"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins     []string `mapstructure:"allow_origins"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
}

// AIConfig 文本大模型配置
type AIConfig struct {
	Provider string          `mapstructure:"provider"` // openai, azure, ark, ark-native, gemini
	APIKey   string          `mapstructure:"api_key"`
	Model    string          `mapstructure:"model"`
	BaseURL  string          `mapstructure:"base_url"`
	Options  AIOptionsConfig `mapstructure:"options"`
}

// AIOptionsConfig AI 模型参数
type AIOptionsConfig struct {
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	TopP        float64 `mapstructure:"top_p"`
}

// ImageConfig 图片生成配置
type ImageConfig struct {
	Provider  string `mapstructure:"provider"` // ark, gemini, mock
	APIKey    string `mapstructure:"api_key"`
	Model     string `mapstructure:"model"`
	BaseURL   string `mapstructure:"base_url"`
	Size      string `mapstructure:"size"`
	Watermark bool   `mapstructure:"watermark"`
}

// TTSConfig 语音合成配置（narrate 命令使用）
type TTSConfig struct {
	APIURL      string  `mapstructure:"api_url"`
	AccessToken string  `mapstructure:"access_token"`
	AppID       string  `mapstructure:"app_id"`
	Cluster     string  `mapstructure:"cluster"`
	VoiceType   string  `mapstructure:"voice_type"`
	SampleRate  int     `mapstructure:"sample_rate"`
	SpeedRatio  float64 `mapstructure:"speed_ratio"`
	Language    string  `mapstructure:"language"`
}

// StoryConfig 故事生成流程配置
type StoryConfig struct {
	OutlineMode       string `mapstructure:"outline_mode"`       // text, json
	NarrationLanguage string `mapstructure:"narration_language"` // 解说语言
	ImageLanguage     string `mapstructure:"image_language"`     // 图片描述语言
	StyleDirective    string `mapstructure:"style_directive"`    // 图片风格指令，%s 为图片描述
	ImageFanout       string `mapstructure:"image_fanout"`       // concurrent, sequential
	MaxParallelImages int    `mapstructure:"max_parallel_images"`
}

// LogConfig 日志配置 (Zerolog)
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	FilePath   string `mapstructure:"file_path"`
	TimeFormat string `mapstructure:"time_format"`
}

// StorageConfig 存储配置
type StorageConfig struct {
	Type  string       `mapstructure:"type"` // local, oss, minio
	Local *LocalConfig `mapstructure:"local,omitempty"`
	OSS   *OSSConfig   `mapstructure:"oss,omitempty"`
	MinIO *MinIOConfig `mapstructure:"minio,omitempty"`
}

// LocalConfig 本地文件系统配置
type LocalConfig struct {
	BasePath string `mapstructure:"base_path"` // 基础路径
	BaseURL  string `mapstructure:"base_url"`  // 基础URL（用于生成访问URL）
}

// OSSConfig 阿里云OSS配置
type OSSConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	Bucket          string `mapstructure:"bucket"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	AccessKeySecret string `mapstructure:"access_key_secret"`
	PresignExpiry   int    `mapstructure:"presign_expiry"` // 预签名URL过期时间（秒）
}

// MinIOConfig MinIO 配置
type MinIOConfig struct {
	Endpoint      string `mapstructure:"endpoint"`
	Bucket        string `mapstructure:"bucket"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	UseSSL        bool   `mapstructure:"use_ssl"`
	PresignExpiry int    `mapstructure:"presign_expiry"` // 预签名URL过期时间（秒）
}

var (
	validModes         = map[string]bool{"debug": true, "release": true, "test": true}
	validOutlineModes  = map[string]bool{"text": true, "json": true}
	validFanouts       = map[string]bool{"concurrent": true, "sequential": true}
	validAIProviders   = map[string]bool{"openai": true, "azure": true, "ark": true, "ark-native": true, "gemini": true}
	validImageProvider = map[string]bool{"ark": true, "gemini": true, "mock": true}
)

// Validate 验证配置有效性
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("invalid server port")
	}

	if !validModes[c.Server.Mode] {
		return errors.New("invalid server mode, must be debug/release/test")
	}

	if !validOutlineModes[c.Story.OutlineMode] {
		return fmt.Errorf("invalid story.outline_mode %q, must be text/json", c.Story.OutlineMode)
	}

	if !validFanouts[c.Story.ImageFanout] {
		return fmt.Errorf("invalid story.image_fanout %q, must be concurrent/sequential", c.Story.ImageFanout)
	}

	if c.Story.MaxParallelImages < 0 {
		return errors.New("story.max_parallel_images must not be negative")
	}

	if !validAIProviders[c.AI.Provider] {
		return fmt.Errorf("unsupported ai.provider: %s", c.AI.Provider)
	}

	if !validImageProvider[c.Image.Provider] {
		return fmt.Errorf("unsupported image.provider: %s", c.Image.Provider)
	}

	return nil
}
