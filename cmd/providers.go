package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"storymaker/internal/config"
	"storymaker/internal/pkg/storage"
	"storymaker/internal/pkg/storagefactory"
	"storymaker/internal/pkg/storytools/providers"
	storyService "storymaker/internal/service/story"
)

// newStoryService 按配置组装语言模型与图片模型
func newStoryService(ctx context.Context, cfg *config.Config) (storyService.StoryService, error) {
	llm, err := providers.NewLLMProvider(ctx, &cfg.AI)
	if err != nil {
		return nil, fmt.Errorf("failed to create llm provider: %w", err)
	}

	image, err := providers.NewImageProvider(ctx, &cfg.Image)
	if err != nil {
		return nil, fmt.Errorf("failed to create image provider: %w", err)
	}

	log.Debug().
		Str("ai_provider", cfg.AI.Provider).
		Str("ai_model", cfg.AI.Model).
		Str("image_provider", cfg.Image.Provider).
		Str("outline_mode", cfg.Story.OutlineMode).
		Msg("providers initialized")

	return storyService.NewStoryService(llm, image, &cfg.Story), nil
}

// newStorage 按配置创建对象存储
func newStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	store, err := storagefactory.NewStorage(ctx, &cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage: %w", err)
	}
	return store, nil
}
