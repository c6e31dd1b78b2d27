package ark

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/volcengine/volcengine-go-sdk/service/arkruntime"
	"github.com/volcengine/volcengine-go-sdk/service/arkruntime/model"

	"storymaker/internal/config"
)

// 默认值
const (
	DefaultBaseURL    = "https://ark.cn-beijing.volces.com/api/v3"
	DefaultChatModel  = "doubao-seed-1-6-flash-250615"
	DefaultImageModel = "doubao-seedream-3-0-t2i-250415"
	DefaultImageSize  = "1024x1024"
)

// Client Ark 文本模型客户端
// 用于调用火山引擎的 Ark API（豆包大模型），使用官方 volcengine-go-sdk
// arkruntime.Client 可并发使用，场景扩写会同时发起多路请求
type Client struct {
	client      *arkruntime.Client
	model       string
	maxTokens   int
	temperature float32
	topP        float32
}

// NewClient 创建 Ark 客户端
// APIKey 为空时回退到环境变量 ARK_API_KEY
func NewClient(cfg *config.AIConfig) (*Client, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("ARK_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("Ark API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = DefaultChatModel
	}

	return &Client{
		client:      arkruntime.NewClientWithApiKey(apiKey, arkruntime.WithBaseUrl(baseURL)),
		model:       modelName,
		maxTokens:   cfg.Options.MaxTokens,
		temperature: float32(cfg.Options.Temperature),
		topP:        float32(cfg.Options.TopP),
	}, nil
}

// Complete 单轮对话，返回第一条回复的文本
// 没有 choices 或内容为空时返回空字符串
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	input := &model.ChatCompletionRequest{
		Model: c.model,
		Messages: []*model.ChatCompletionMessage{
			{
				Role:    "user",
				Content: &model.ChatCompletionMessageContent{
					StringValue: &prompt,
				},
			},
		},
	}
	if c.maxTokens > 0 {
		input.MaxTokens = c.maxTokens
	}
	if c.temperature > 0 {
		input.Temperature = c.temperature
	}
	if c.topP > 0 {
		input.TopP = c.topP
	}

	output, err := c.client.CreateChatCompletion(ctx, input)
	if err != nil {
		log.Error().Err(err).Str("model", c.model).Msg("failed to call Ark ChatCompletion API")
		return "", fmt.Errorf("Ark API call failed: %w", err)
	}

	if len(output.Choices) == 0 {
		log.Warn().Str("model", c.model).Msg("Ark ChatCompletion returned no choices")
		return "", nil
	}

	msg := output.Choices[0].Message
	if msg.Content == nil || msg.Content.StringValue == nil {
		return "", nil
	}

	log.Debug().
		Str("model", c.model).
		Int("total_tokens", output.Usage.TotalTokens).
		Msg("Ark chat completion finished")

	return *msg.Content.StringValue, nil
}
