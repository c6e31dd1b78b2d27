package narration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"storymaker/internal/model/story"
	"storymaker/internal/pkg/storage"
	"storymaker/internal/pkg/storytools"
	"storymaker/internal/service/bundle"
)

// Options 配音参数
type Options struct {
	Prefix     string  // 存储前缀，音频写入 <prefix>/audio/
	Force      bool    // 已存在的音频也重新合成
	SpeedRatio float64 // 语速，<=0 时按 1.0
}

// NarrationService 为故事包的场景解说合成语音
type NarrationService interface {
	Narrate(ctx context.Context, resp *story.StoryResponse, opts Options) (*story.NarrationManifest, error)
}

type narrationService struct {
	ttsProvider storytools.TTSProvider
	storage     storage.Storage
	voice       string
	now         func() time.Time
}

// NewNarrationService 创建配音服务
func NewNarrationService(tts storytools.TTSProvider, store storage.Storage, voice string) NarrationService {
	return &narrationService{
		ttsProvider: tts,
		storage:     store,
		voice:       voice,
		now:         time.Now,
	}
}

// Narrate 逐场景合成解说音频，上传音频与清单
// 非 Force 模式下复用已存在的音频及其在旧清单中的时长
func (s *narrationService) Narrate(ctx context.Context, resp *story.StoryResponse, opts Options) (*story.NarrationManifest, error) {
	if resp == nil || resp.Story == nil {
		return nil, bundle.ErrEmptyBundle
	}

	previous := map[string]story.NarrationTrack{}
	if !opts.Force {
		previous = s.loadPreviousTracks(ctx, opts.Prefix)
	}

	manifest := &story.NarrationManifest{
		Prompt: resp.Story.Prompt,
		Voice:  s.voice,
		Tracks: make([]story.NarrationTrack, 0, len(resp.Story.Scenes)),
	}

	// TTS 接口按账号限流，场景依次合成
	for i, scene := range resp.Story.Scenes {
		sceneID := scene.ID
		if sceneID <= 0 {
			sceneID = i + 1
		}

		text := storytools.CleanNarrationForTTS(scene.Narration)
		if text == "" {
			log.Warn().Int("scene", sceneID).Msg("场景没有解说文本，跳过")
			continue
		}

		track, err := s.narrateScene(ctx, opts, sceneID, text, previous)
		if err != nil {
			return nil, err
		}
		manifest.Tracks = append(manifest.Tracks, *track)
	}

	manifest.GeneratedAt = s.now()
	if err := s.uploadManifest(ctx, opts.Prefix, manifest); err != nil {
		return nil, err
	}

	log.Info().
		Str("prompt", manifest.Prompt).
		Int("tracks", len(manifest.Tracks)).
		Msg("配音生成完成")

	return manifest, nil
}

func (s *narrationService) narrateScene(ctx context.Context, opts Options, sceneID int, text string, previous map[string]story.NarrationTrack) (*story.NarrationTrack, error) {
	key := bundle.AudioKey(opts.Prefix, sceneID, "")

	if !opts.Force {
		exists, err := s.storage.Exists(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to check audio %s: %w", key, err)
		}
		if exists {
			track := previous[key]
			track.SceneID = sceneID
			track.Key = key
			track.TextLength = len([]rune(text))
			if track.URL == "" {
				url, err := s.storage.GetPresignedDownloadURL(ctx, key, time.Hour)
				if err != nil {
					return nil, fmt.Errorf("failed to get audio url %s: %w", key, err)
				}
				track.URL = url
			}
			log.Info().Int("scene", sceneID).Str("key", key).Msg("音频已存在，跳过合成")
			return &track, nil
		}
	}

	result, err := s.ttsProvider.Synthesize(ctx, text, opts.SpeedRatio)
	if err != nil {
		log.Error().Err(err).Int("scene", sceneID).Msg("语音合成失败")
		return nil, fmt.Errorf("failed to synthesize scene %d: %w", sceneID, err)
	}
	if result.Format != "" && result.Format != "mp3" {
		key = bundle.AudioKey(opts.Prefix, sceneID, result.Format)
	}

	url, err := s.storage.Upload(ctx, key, bytes.NewReader(result.AudioData), int64(len(result.AudioData)), storage.ContentTypeOf(key))
	if err != nil {
		return nil, fmt.Errorf("failed to upload audio %s: %w", key, err)
	}

	log.Info().
		Int("scene", sceneID).
		Str("key", key).
		Float64("duration", result.Duration).
		Msg("场景配音已上传")

	return &story.NarrationTrack{
		SceneID:         sceneID,
		Key:             key,
		URL:             url,
		DurationSeconds: result.Duration,
		TextLength:      len([]rune(text)),
	}, nil
}

// loadPreviousTracks 读取旧清单；不存在或损坏时返回空表
func (s *narrationService) loadPreviousTracks(ctx context.Context, prefix string) map[string]story.NarrationTrack {
	tracks := map[string]story.NarrationTrack{}

	rc, err := s.storage.Download(ctx, bundle.ManifestKey(prefix))
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Warn().Err(err).Msg("读取旧配音清单失败")
		}
		return tracks
	}
	defer rc.Close()

	var old story.NarrationManifest
	if err := json.NewDecoder(rc).Decode(&old); err != nil {
		log.Warn().Err(err).Msg("旧配音清单无法解析，忽略")
		return tracks
	}
	for _, t := range old.Tracks {
		tracks[t.Key] = t
	}
	return tracks
}

func (s *narrationService) uploadManifest(ctx context.Context, prefix string, manifest *story.NarrationManifest) error {
	payload, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	key := bundle.ManifestKey(prefix)
	if _, err := s.storage.Upload(ctx, key, bytes.NewReader(payload), int64(len(payload)), storage.ContentTypeOf(key)); err != nil {
		return fmt.Errorf("failed to upload manifest: %w", err)
	}
	return nil
}
