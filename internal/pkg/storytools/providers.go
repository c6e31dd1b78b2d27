package storytools

import (
	"context"
	"time"
)

// LLMProvider 定义了调用大模型的接口
// 具体的「如何调用大模型」由调用方通过实现此接口注入，方便单测和替换实现
type LLMProvider interface {
	// Generate 根据提示词生成文本
	// 模型返回空文本时返回 ("", nil)，由调用方决定兜底文案
	Generate(ctx context.Context, prompt string) (string, error)
}

// ImageProvider 图片生成提供者接口
type ImageProvider interface {
	// GenerateImage 生成图片
	// Args:
	//   - ctx: 上下文
	//   - prompt: 已加好风格指令的完整图片提示词
	// Returns:
	//   - imageData: 图片二进制数据
	//   - error: 错误信息
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}

// TTSProvider TTS提供者接口（用于单测/替换实现）
type TTSProvider interface {
	// Synthesize 把文本合成为音频，返回音频数据和时长，不落盘
	//
	// Args:
	//   - ctx: 上下文
	//   - text: 要转换的文本
	//   - speedRatio: 语速比例（默认1.0，1.2表示1.2倍速）
	Synthesize(ctx context.Context, text string, speedRatio float64) (*TTSResult, error)
}

// TTSResult TTS生成结果
type TTSResult struct {
	AudioData   []byte    `json:"-"`            // 音频数据（二进制，不序列化到 JSON）
	Format      string    `json:"format"`       // 音频编码，如 mp3
	Duration    float64   `json:"duration"`     // 音频时长（秒）
	GeneratedAt time.Time `json:"generated_at"` // 生成时间
}
