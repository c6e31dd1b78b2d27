package providers

import (
	"context"
	"fmt"

	"storymaker/internal/ai/component"
	"storymaker/internal/config"
	"storymaker/internal/pkg/ark"
	"storymaker/internal/pkg/gemini"
	"storymaker/internal/pkg/storytools"
	"storymaker/internal/pkg/tts"
)

// NewLLMProvider 按 ai.provider 创建语言模型提供者
//
//	openai / azure / ark  eino ChatModel
//	ark-native            volcengine arkruntime
//	gemini                google genai
func NewLLMProvider(ctx context.Context, cfg *config.AIConfig) (storytools.LLMProvider, error) {
	switch cfg.Provider {
	case "openai", "azure", "ark", "":
		chatModel, err := component.NewChatModel(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create chat model: %w", err)
		}
		return NewEinoProvider(chatModel), nil
	case "ark-native":
		client, err := ark.NewClient(cfg)
		if err != nil {
			return nil, err
		}
		return NewArkProvider(client), nil
	case "gemini":
		client, err := gemini.NewClient(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		return NewGeminiProvider(client), nil
	default:
		return nil, fmt.Errorf("unsupported ai.provider: %s", cfg.Provider)
	}
}

// NewImageProvider 按 image.provider 创建图片模型提供者
func NewImageProvider(ctx context.Context, cfg *config.ImageConfig) (storytools.ImageProvider, error) {
	switch cfg.Provider {
	case "ark", "":
		client, err := ark.NewImageClient(cfg)
		if err != nil {
			return nil, err
		}
		return NewArkImageProvider(client), nil
	case "gemini":
		modelName := cfg.Model
		if modelName == "" {
			modelName = gemini.DefaultImageModel
		}
		client, err := gemini.NewClient(ctx, cfg.APIKey, modelName)
		if err != nil {
			return nil, err
		}
		return NewGeminiImageProvider(client), nil
	case "mock":
		return NewMockImageProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported image.provider: %s", cfg.Provider)
	}
}

// NewTTSProvider 创建语音合成提供者
func NewTTSProvider(cfg *config.TTSConfig) (storytools.TTSProvider, string, error) {
	client, err := tts.NewClient(cfg)
	if err != nil {
		return nil, "", err
	}
	return NewByteDanceTTSProvider(client), client.VoiceType(), nil
}
