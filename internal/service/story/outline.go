package story

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"storymaker/internal/model/story"
	"storymaker/internal/pkg/storytools"
)

// generateOutline 调用语言模型生成大纲
// 文本模式永不失败；JSON 模式解析失败直接返回错误
func (s *storyService) generateOutline(ctx context.Context, prompt string, sceneCount int) (*story.Story, error) {
	var outlinePrompt string
	if s.outlineMode == OutlineModeJSON {
		outlinePrompt = s.prompts.OutlineJSON(prompt, sceneCount)
	} else {
		outlinePrompt = s.prompts.OutlineText(prompt, sceneCount)
	}

	text, err := s.llmProvider.Generate(ctx, outlinePrompt)
	if err != nil {
		log.Error().Err(err).Str("prompt", prompt).Msg("大纲生成失败")
		return nil, fmt.Errorf("failed to generate outline: %w", err)
	}

	var st *story.Story
	if s.outlineMode == OutlineModeJSON {
		st, err = storytools.ParseOutlineJSON(text)
		if err != nil {
			log.Error().Err(err).Str("response", text).Msg("大纲 JSON 解析失败")
			return nil, err
		}
		storytools.ApplyOutlineFallbacks(st, sceneCount)
	} else {
		st = storytools.ParseOutlineText(text, sceneCount)
	}

	st.Prompt = prompt
	log.Debug().
		Int("characters", len(st.Characters)).
		Int("scenes", len(st.Scenes)).
		Msg("大纲解析完成")
	return st, nil
}

// expandScenes 为每个场景并发生成解说和图片描述
// 任一调用失败则整个请求失败；JSON 模式下只补齐模型未给出的字段
func (s *storyService) expandScenes(ctx context.Context, prompt string, st *story.Story) error {
	eg, egCtx := errgroup.WithContext(ctx)

	for i := range st.Scenes {
		scene := &st.Scenes[i]
		sceneNumber := i + 1
		summary := scene.Description

		if strings.TrimSpace(scene.Narration) == "" {
			eg.Go(func() error {
				text, err := s.llmProvider.Generate(egCtx, s.prompts.Narration(prompt, summary, sceneNumber))
				if err != nil {
					log.Error().Err(err).Int("scene", sceneNumber).Msg("场景解说生成失败")
					return fmt.Errorf("failed to generate narration for scene %d: %w", sceneNumber, err)
				}
				if strings.TrimSpace(text) == "" {
					text = s.prompts.NarrationFallback(sceneNumber)
				}
				scene.Narration = strings.TrimSpace(text)
				return nil
			})
		}

		if strings.TrimSpace(scene.ImageDescription) == "" {
			eg.Go(func() error {
				text, err := s.llmProvider.Generate(egCtx, s.prompts.ImageDescription(prompt, summary, sceneNumber, st.Characters))
				if err != nil {
					log.Error().Err(err).Int("scene", sceneNumber).Msg("场景图片描述生成失败")
					return fmt.Errorf("failed to generate image description for scene %d: %w", sceneNumber, err)
				}
				if strings.TrimSpace(text) == "" {
					text = storytools.FallbackImageDescription(sceneNumber, st.Characters)
				}
				scene.ImageDescription = strings.TrimSpace(text)
				return nil
			})
		}
	}

	return eg.Wait()
}
