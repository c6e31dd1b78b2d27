package story

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"storymaker/internal/config"
	"storymaker/internal/model/story"
	"storymaker/internal/pkg/storytools"
)

// ErrInvalidRequest 请求参数不合法，处理器映射为 400
var ErrInvalidRequest = errors.New("invalid request")

// 大纲与出图模式
const (
	OutlineModeText = "text"
	OutlineModeJSON = "json"

	FanoutConcurrent = "concurrent"
	FanoutSequential = "sequential"
)

// StoryService 故事生成服务接口
// 每次调用独立构建实体，不跨请求保存状态
type StoryService interface {
	// GenerateStory 大纲 + 场景扩写 + 逐场景出图
	GenerateStory(ctx context.Context, req *story.StoryRequest) (*story.StoryResponse, error)

	// GenerateOutline 大纲 + 场景扩写，不出图
	GenerateOutline(ctx context.Context, req *story.StoryRequest) (*story.StoryResponse, error)

	// GenerateContent 根据 topic/type 组装提示词，生成不含图片的故事
	GenerateContent(ctx context.Context, req *story.ContentRequest) (*story.ContentResponse, error)

	// GenerateImage 为单条描述出图
	GenerateImage(ctx context.Context, req *story.ImageRequest) (*story.ImageResponse, error)

	// GenerateImages 为一组场景出图，结果与场景按位置对应
	GenerateImages(ctx context.Context, req *story.ImagesRequest) (*story.ImagesResponse, error)
}

// storyService 故事生成服务实现
type storyService struct {
	llmProvider       storytools.LLMProvider
	imageProvider     storytools.ImageProvider
	prompts           *storytools.PromptBuilder
	outlineMode       string
	imageFanout       string
	maxParallelImages int
	now               func() time.Time
}

// NewStoryService 创建故事生成服务
func NewStoryService(llm storytools.LLMProvider, image storytools.ImageProvider, cfg *config.StoryConfig) StoryService {
	s := &storyService{
		llmProvider:       llm,
		imageProvider:     image,
		prompts:           storytools.NewPromptBuilder(cfg.NarrationLanguage, cfg.ImageLanguage, cfg.StyleDirective),
		outlineMode:       cfg.OutlineMode,
		imageFanout:       cfg.ImageFanout,
		maxParallelImages: cfg.MaxParallelImages,
		now:               time.Now,
	}
	if s.outlineMode == "" {
		s.outlineMode = OutlineModeText
	}
	if s.imageFanout == "" {
		s.imageFanout = FanoutConcurrent
	}
	return s
}

// GenerateStory 生成完整故事
func (s *storyService) GenerateStory(ctx context.Context, req *story.StoryRequest) (*story.StoryResponse, error) {
	st, err := s.buildStory(ctx, req)
	if err != nil {
		return nil, err
	}

	descriptions := make([]string, len(st.Scenes))
	for i, scene := range st.Scenes {
		descriptions[i] = scene.ImageDescription
	}

	images, err := s.renderImages(ctx, descriptions, nil)
	if err != nil {
		return nil, err
	}
	for i := range st.Scenes {
		st.Scenes[i].Image = images[i]
	}

	return &story.StoryResponse{
		Story:       st,
		Images:      images,
		GeneratedAt: s.now(),
	}, nil
}

// GenerateOutline 生成大纲与场景文案
func (s *storyService) GenerateOutline(ctx context.Context, req *story.StoryRequest) (*story.StoryResponse, error) {
	st, err := s.buildStory(ctx, req)
	if err != nil {
		return nil, err
	}
	return &story.StoryResponse{
		Story:       st,
		Images:      []string{},
		GeneratedAt: s.now(),
	}, nil
}

// GenerateContent 生成内容，提示词为 "A <type> about <topic>"
func (s *storyService) GenerateContent(ctx context.Context, req *story.ContentRequest) (*story.ContentResponse, error) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return nil, fmt.Errorf("%w: missing topic", ErrInvalidRequest)
	}
	contentType := strings.TrimSpace(req.Type)
	if contentType == "" {
		contentType = "story"
	}

	st, err := s.buildStory(ctx, &story.StoryRequest{
		Prompt:     fmt.Sprintf("A %s about %s", contentType, topic),
		SceneCount: req.SceneCount,
	})
	if err != nil {
		return nil, err
	}
	return &story.ContentResponse{Story: st}, nil
}

// GenerateImage 单图生成
func (s *storyService) GenerateImage(ctx context.Context, req *story.ImageRequest) (*story.ImageResponse, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, fmt.Errorf("%w: missing prompt", ErrInvalidRequest)
	}

	image, err := s.renderImage(ctx, req.Prompt, req.Characters)
	if err != nil {
		return nil, err
	}
	return &story.ImageResponse{Image: image}, nil
}

// GenerateImages 批量出图
// 每个场景依次取 imageDescription、image、description 作为描述
func (s *storyService) GenerateImages(ctx context.Context, req *story.ImagesRequest) (*story.ImagesResponse, error) {
	if len(req.Scenes) == 0 {
		return nil, fmt.Errorf("%w: scenes must not be empty", ErrInvalidRequest)
	}

	descriptions := make([]string, len(req.Scenes))
	for i, scene := range req.Scenes {
		desc := firstNonEmpty(scene.ImageDescription, scene.Image, scene.Description)
		if desc == "" {
			return nil, fmt.Errorf("%w: scene %d has no image description", ErrInvalidRequest, i+1)
		}
		descriptions[i] = desc
	}

	images, err := s.renderImages(ctx, descriptions, req.Characters)
	if err != nil {
		return nil, err
	}
	return &story.ImagesResponse{Images: images}, nil
}

// buildStory 校验请求，生成大纲并扩写场景
func (s *storyService) buildStory(ctx context.Context, req *story.StoryRequest) (*story.Story, error) {
	if err := validateStoryRequest(req); err != nil {
		return nil, err
	}

	startTime := time.Now()
	log.Info().
		Str("prompt", req.Prompt).
		Int("scene_count", req.SceneCount).
		Str("outline_mode", s.outlineMode).
		Msg("开始生成故事大纲")

	st, err := s.generateOutline(ctx, req.Prompt, req.SceneCount)
	if err != nil {
		return nil, err
	}

	if err := s.expandScenes(ctx, req.Prompt, st); err != nil {
		return nil, err
	}

	log.Info().
		Int("scenes", st.ScenesCount).
		Int("characters", len(st.Characters)).
		Dur("elapsed", time.Since(startTime)).
		Msg("故事文案生成完成")

	return st, nil
}

func validateStoryRequest(req *story.StoryRequest) error {
	if req == nil || strings.TrimSpace(req.Prompt) == "" || req.SceneCount < 1 {
		return fmt.Errorf("%w: missing prompt or invalid scene count", ErrInvalidRequest)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
