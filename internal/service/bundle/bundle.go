// Package bundle 负责故事包在对象存储中的读写
//
// 存储布局：
//
//	<prefix>/story.json
//	<prefix>/images/scene-01.png
//	<prefix>/audio/scene-01.mp3
//	<prefix>/audio/manifest.json
package bundle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"

	"github.com/rs/zerolog/log"

	"storymaker/internal/model/story"
	"storymaker/internal/pkg/storage"
	"storymaker/internal/pkg/storytools"
)

// 存储键名
const (
	StoryFile    = "story.json"
	ImagesDir    = "images"
	AudioDir     = "audio"
	ManifestFile = "manifest.json"
)

// ErrEmptyBundle 故事包没有故事内容
var ErrEmptyBundle = errors.New("story bundle has no story")

// SaveResult 保存结果
type SaveResult struct {
	StoryKey  string
	StoryURL  string
	ImageKeys []string
	ImageURLs []string
}

// StoryKey 故事包 JSON 的键
func StoryKey(prefix string) string {
	return path.Join(prefix, StoryFile)
}

// ImageKey 场景图片的键
func ImageKey(prefix string, sceneID int) string {
	return path.Join(prefix, ImagesDir, fmt.Sprintf("scene-%02d.png", sceneID))
}

// AudioKey 场景配音的键
func AudioKey(prefix string, sceneID int, format string) string {
	if format == "" {
		format = "mp3"
	}
	return path.Join(prefix, AudioDir, fmt.Sprintf("scene-%02d.%s", sceneID, format))
}

// ManifestKey 配音清单的键
func ManifestKey(prefix string) string {
	return path.Join(prefix, AudioDir, ManifestFile)
}

// Save 写入故事包 JSON，并把每张 data URI 图片解码后单独存一份
func Save(ctx context.Context, store storage.Storage, prefix string, resp *story.StoryResponse) (*SaveResult, error) {
	if resp == nil || resp.Story == nil {
		return nil, ErrEmptyBundle
	}

	result := &SaveResult{StoryKey: StoryKey(prefix)}

	for i, uri := range resp.Images {
		data, _, err := storytools.DecodeDataURI(uri)
		if err != nil {
			return nil, fmt.Errorf("failed to decode image %d: %w", i+1, err)
		}

		sceneID := i + 1
		if i < len(resp.Story.Scenes) && resp.Story.Scenes[i].ID > 0 {
			sceneID = resp.Story.Scenes[i].ID
		}
		key := ImageKey(prefix, sceneID)

		url, err := store.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), storage.ContentTypeOf(key))
		if err != nil {
			return nil, fmt.Errorf("failed to upload image %s: %w", key, err)
		}
		result.ImageKeys = append(result.ImageKeys, key)
		result.ImageURLs = append(result.ImageURLs, url)
	}

	payload, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal story bundle: %w", err)
	}
	url, err := store.Upload(ctx, result.StoryKey, bytes.NewReader(payload), int64(len(payload)), storage.ContentTypeOf(result.StoryKey))
	if err != nil {
		return nil, fmt.Errorf("failed to upload story bundle: %w", err)
	}
	result.StoryURL = url

	log.Info().
		Str("storage", store.GetStorageType()).
		Str("key", result.StoryKey).
		Int("images", len(result.ImageKeys)).
		Msg("故事包已保存")

	return result, nil
}

// Load 从存储读取故事包
func Load(ctx context.Context, store storage.Storage, key string) (*story.StoryResponse, error) {
	rc, err := store.Download(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to download story bundle %s: %w", key, err)
	}
	defer rc.Close()
	return Decode(rc)
}

// Decode 解析故事包，兼容 /generate-story 的第一代结构
func Decode(r io.Reader) (*story.StoryResponse, error) {
	var raw struct {
		story.StoryResponse
		Metadata *story.LegacyMetadata `json:"metadata"`
	}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse story bundle: %w", err)
	}

	resp := raw.StoryResponse
	if resp.Story == nil && raw.Metadata != nil {
		resp.Story = fromLegacy(raw.Metadata)
		resp.GeneratedAt = raw.Metadata.GeneratedAt
	}
	if resp.Story == nil {
		return nil, ErrEmptyBundle
	}
	return &resp, nil
}

// fromLegacy 第一代结构没有场景编号与角色顺序，场景按出现顺序、角色按名字重建
func fromLegacy(m *story.LegacyMetadata) *story.Story {
	st := &story.Story{Prompt: m.Prompt}
	for i, s := range m.Scenes {
		st.Scenes = append(st.Scenes, story.Scene{
			ID:               i + 1,
			Title:            fmt.Sprintf("Scene %d", i+1),
			ImageDescription: s.ImageDescription,
			Narration:        s.Narration,
		})
	}
	names := make([]string, 0, len(m.CharacterDescriptions))
	for name := range m.CharacterDescriptions {
		names = append(names, name)
	}
	sort.Strings(names)
	for i, name := range names {
		st.Characters = append(st.Characters, story.Character{
			ID:          i + 1,
			Name:        name,
			Description: m.CharacterDescriptions[name],
		})
	}
	st.ScenesCount = len(st.Scenes)
	return st
}
