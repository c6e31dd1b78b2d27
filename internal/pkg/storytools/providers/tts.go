package providers

import (
	"context"
	"fmt"
	"time"

	"storymaker/internal/pkg/storytools"
	"storymaker/internal/pkg/tts"
)

// ByteDanceTTSProvider 字节跳动 TTS 提供者（使用 pkg/tts 的 Client）
// 实现了 storytools.TTSProvider 接口
type ByteDanceTTSProvider struct {
	client *tts.Client
}

// NewByteDanceTTSProvider 创建 TTS 提供者
func NewByteDanceTTSProvider(client *tts.Client) *ByteDanceTTSProvider {
	return &ByteDanceTTSProvider{
		client: client,
	}
}

// Synthesize 合成语音
func (p *ByteDanceTTSProvider) Synthesize(ctx context.Context, text string, speedRatio float64) (*storytools.TTSResult, error) {
	if p.client == nil {
		return nil, fmt.Errorf("TTS client is required")
	}

	result, err := p.client.Synthesize(ctx, text, speedRatio)
	if err != nil {
		return nil, err
	}

	return &storytools.TTSResult{
		AudioData:   result.AudioData,
		Format:      tts.DefaultEncoding,
		Duration:    result.Duration,
		GeneratedAt: time.Now(),
	}, nil
}
