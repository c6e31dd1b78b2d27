package story

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"storymaker/internal/model/story"
	"storymaker/internal/pkg/storytools"
)

// renderImages 按描述逐个出图，返回与输入按位置对应的 data URI
// 并发模式下任意一张失败即整体失败，不返回部分结果
func (s *storyService) renderImages(ctx context.Context, descriptions []string, characters []story.Character) ([]string, error) {
	images := make([]string, len(descriptions))

	if s.imageFanout == FanoutSequential {
		for i, desc := range descriptions {
			image, err := s.renderImage(ctx, desc, characters)
			if err != nil {
				return nil, err
			}
			images[i] = image
		}
		return images, nil
	}

	eg, egCtx := errgroup.WithContext(ctx)
	if s.maxParallelImages > 0 {
		eg.SetLimit(s.maxParallelImages)
	}
	for i, desc := range descriptions {
		eg.Go(func() error {
			image, err := s.renderImage(egCtx, desc, characters)
			if err != nil {
				return err
			}
			images[i] = image
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}

// renderImage 套用风格指令后调用图片模型，编码为 PNG data URI
func (s *storyService) renderImage(ctx context.Context, description string, characters []story.Character) (string, error) {
	prompt := s.prompts.StyledImage(description, characters)

	data, err := s.imageProvider.GenerateImage(ctx, prompt)
	if err != nil {
		log.Error().Err(err).Str("prompt", prompt).Msg("图片生成失败")
		return "", fmt.Errorf("failed to generate image: %w", err)
	}
	if len(data) == 0 {
		log.Error().Str("prompt", prompt).Msg("图片模型未返回数据")
		return "", fmt.Errorf("failed to generate image: empty image data")
	}
	return storytools.PNGDataURI(data), nil
}
