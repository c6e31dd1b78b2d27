package ark

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/volcengine/volcengine-go-sdk/service/arkruntime"
	"github.com/volcengine/volcengine-go-sdk/service/arkruntime/model"

	"storymaker/internal/config"
)

// ImageClient Ark 图片生成客户端
// 参考 Python SDK: volcenginesdkarkruntime.Ark().images.generate()
type ImageClient struct {
	client    *arkruntime.Client
	model     string
	size      string
	watermark bool
}

// NewImageClient 创建 Ark 图片生成客户端
// APIKey 为空时回退到环境变量 ARK_API_KEY
func NewImageClient(cfg *config.ImageConfig) (*ImageClient, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("ARK_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("ARK_API_KEY is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	modelName := cfg.Model
	if modelName == "" {
		modelName = DefaultImageModel
	}
	size := cfg.Size
	if size == "" {
		size = DefaultImageSize
	}

	return &ImageClient{
		client:    arkruntime.NewClientWithApiKey(apiKey, arkruntime.WithBaseUrl(baseURL)),
		model:     modelName,
		size:      size,
		watermark: cfg.Watermark,
	}, nil
}

// Generate 生成一张图片，返回解码后的图片字节
func (c *ImageClient) Generate(ctx context.Context, prompt string) ([]byte, error) {
	size := c.size
	watermark := c.watermark
	responseFormat := "b64_json"

	input := model.GenerateImagesRequest{
		Model:          c.model,
		Prompt:         prompt,
		Size:           &size,
		ResponseFormat: &responseFormat,
		Watermark:      &watermark,
	}

	output, err := c.client.GenerateImages(ctx, input)
	if err != nil {
		log.Error().Err(err).Str("model", c.model).Msg("failed to call Ark GenerateImages API")
		return nil, fmt.Errorf("Ark GenerateImages API call failed: %w", err)
	}

	if len(output.Data) == 0 {
		return nil, fmt.Errorf("no image data in response")
	}

	first := output.Data[0]
	if first.B64Json == nil {
		return nil, fmt.Errorf("no b64_json in response data")
	}

	imageData, err := base64.StdEncoding.DecodeString(*first.B64Json)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 image data: %w", err)
	}

	return imageData, nil
}
