package component

import (
	"context"
	"fmt"

	arkext "github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"storymaker/internal/config"
	"storymaker/internal/pkg/ark"
)

// NewChatModel 创建 ChatModel
// 支持 Provider: openai, azure, ark
func NewChatModel(ctx context.Context, cfg *config.AIConfig) (model.ChatModel, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("ai.api_key is required for provider %s", cfg.Provider)
	}

	switch cfg.Provider {
	case "openai", "":
		return newOpenAIChatModel(ctx, cfg, false)
	case "azure":
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("ai.base_url is required for azure")
		}
		return newOpenAIChatModel(ctx, cfg, true)
	case "ark":
		return newArkChatModel(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported eino provider: %s", cfg.Provider)
	}
}

// newOpenAIChatModel 创建 OpenAI / Azure OpenAI ChatModel
func newOpenAIChatModel(ctx context.Context, cfg *config.AIConfig, byAzure bool) (model.ChatModel, error) {
	modelName := cfg.Model
	if modelName == "" {
		modelName = "gpt-4o-mini"
	}

	modelCfg := &openai.ChatModelConfig{
		Model:   modelName,
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		ByAzure: byAzure,
	}

	temp, maxTokens, topP := options(cfg)
	modelCfg.Temperature = temp
	modelCfg.MaxTokens = maxTokens
	modelCfg.TopP = topP

	return openai.NewChatModel(ctx, modelCfg)
}

// newArkChatModel 创建 Ark ChatModel（使用 eino-ext 模块）
func newArkChatModel(ctx context.Context, cfg *config.AIConfig) (model.ChatModel, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = ark.DefaultBaseURL
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = ark.DefaultChatModel
	}

	modelCfg := &arkext.ChatModelConfig{
		Model:   modelName,
		APIKey:  cfg.APIKey,
		BaseURL: baseURL,
	}

	temp, maxTokens, topP := options(cfg)
	modelCfg.Temperature = temp
	modelCfg.MaxTokens = maxTokens
	modelCfg.TopP = topP

	return arkext.NewChatModel(ctx, modelCfg)
}

// options 把配置中的零值视为未设置
func options(cfg *config.AIConfig) (temp *float32, maxTokens *int, topP *float32) {
	if cfg.Options.Temperature > 0 {
		t := float32(cfg.Options.Temperature)
		temp = &t
	}
	if cfg.Options.MaxTokens > 0 {
		n := cfg.Options.MaxTokens
		maxTokens = &n
	}
	if cfg.Options.TopP > 0 {
		p := float32(cfg.Options.TopP)
		topP = &p
	}
	return temp, maxTokens, topP
}
