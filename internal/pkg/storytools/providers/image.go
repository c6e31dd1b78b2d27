package providers

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/rs/zerolog/log"

	"storymaker/internal/pkg/ark"
	"storymaker/internal/pkg/gemini"
)

// ArkImageProvider Ark 图片生成提供者
// 适配层，调用 ark.ImageClient（使用官方 Go SDK）
type ArkImageProvider struct {
	client *ark.ImageClient
}

// NewArkImageProvider 创建 Ark 图片生成提供者
func NewArkImageProvider(client *ark.ImageClient) *ArkImageProvider {
	return &ArkImageProvider{client: client}
}

// GenerateImage 生成图片
func (p *ArkImageProvider) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	imageData, err := p.client.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("Ark generate image: %w", err)
	}

	log.Debug().Int("size", len(imageData)).Msg("Ark image generated")
	return imageData, nil
}

// GeminiImageProvider Gemini 图片生成提供者
type GeminiImageProvider struct {
	client *gemini.Client
}

// NewGeminiImageProvider 创建 Gemini 图片生成提供者
func NewGeminiImageProvider(client *gemini.Client) *GeminiImageProvider {
	return &GeminiImageProvider{client: client}
}

// GenerateImage 生成图片
func (p *GeminiImageProvider) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	imageData, err := p.client.GenerateImage(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("Gemini generate image: %w", err)
	}

	log.Debug().Int("size", len(imageData)).Msg("Gemini image generated")
	return imageData, nil
}

// transparentPixel 1x1 透明 PNG
const transparentPixel = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

// MockImageProvider 本地调试用，始终返回同一张 1x1 PNG
type MockImageProvider struct {
	data []byte
}

// NewMockImageProvider 创建 mock 图片提供者
func NewMockImageProvider() *MockImageProvider {
	data, _ := base64.StdEncoding.DecodeString(transparentPixel)
	return &MockImageProvider{data: data}
}

// GenerateImage 返回固定图片
func (p *MockImageProvider) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]byte, len(p.data))
	copy(out, p.data)
	return out, nil
}
