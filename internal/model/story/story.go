package story

import "time"

// Character 角色
// ID 从 1 开始，按出现顺序编号
type Character struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"` // 外貌、衣着
}

// Scene 场景
type Scene struct {
	ID               int    `json:"id"`
	Title            string `json:"title"`
	Description      string `json:"description"`      // 大纲中的场景概要
	ImageDescription string `json:"imageDescription"` // 图片描述（图片模型语言）
	Narration        string `json:"narration"`        // 解说（讲述语言）
	Image            string `json:"image"`            // 渲染后的 data URI，仅大纲请求为空
}

// Story 故事
// 不变式：ScenesCount == len(Scenes)
type Story struct {
	Prompt      string      `json:"prompt"`
	ScenesCount int         `json:"scenesCount"`
	Scenes      []Scene     `json:"scenes"`
	Characters  []Character `json:"characters"`
	Theme       string      `json:"theme"`
}

// Roster 返回 Name (description) 形式的角色列表
func (s *Story) Roster() []string {
	return RosterOf(s.Characters)
}

// RosterOf 把角色列表展开为 Name (description)
func RosterOf(characters []Character) []string {
	roster := make([]string, 0, len(characters))
	for _, c := range characters {
		roster = append(roster, c.Name+" ("+c.Description+")")
	}
	return roster
}

// StoryRequest 故事生成请求
// SceneCount 缺省为 0，由服务层拒绝
type StoryRequest struct {
	Prompt     string `json:"prompt"`
	SceneCount int    `json:"sceneCount"`
}

// StoryResponse 故事生成响应
// Images[i] 对应 Story.Scenes[i]，仅靠位置对应
type StoryResponse struct {
	Story       *Story    `json:"story"`
	Images      []string  `json:"images"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// LegacyScene 第一代接口的场景结构
type LegacyScene struct {
	Narration        string `json:"narration"`
	ImageDescription string `json:"imageDescription"`
}

// LegacyMetadata 第一代接口的元数据
type LegacyMetadata struct {
	Prompt                string            `json:"prompt"`
	Scenes                []LegacyScene     `json:"scenes"`
	CharacterDescriptions map[string]string `json:"characterDescriptions"`
	GeneratedAt           time.Time         `json:"generatedAt"`
}

// LegacyStoryResponse /generate-story 的响应结构
type LegacyStoryResponse struct {
	Metadata LegacyMetadata `json:"metadata"`
	Images   []string       `json:"images"`
}

// NewLegacyStoryResponse 把新版响应转换为第一代结构
func NewLegacyStoryResponse(resp *StoryResponse) *LegacyStoryResponse {
	legacy := &LegacyStoryResponse{
		Metadata: LegacyMetadata{
			Prompt:                resp.Story.Prompt,
			Scenes:                make([]LegacyScene, 0, len(resp.Story.Scenes)),
			CharacterDescriptions: make(map[string]string, len(resp.Story.Characters)),
			GeneratedAt:           resp.GeneratedAt,
		},
		Images: resp.Images,
	}
	for _, scene := range resp.Story.Scenes {
		legacy.Metadata.Scenes = append(legacy.Metadata.Scenes, LegacyScene{
			Narration:        scene.Narration,
			ImageDescription: scene.ImageDescription,
		})
	}
	for _, c := range resp.Story.Characters {
		legacy.Metadata.CharacterDescriptions[c.Name] = c.Description
	}
	return legacy
}

// ImageRequest 单图生成请求
type ImageRequest struct {
	Prompt     string      `json:"prompt"`
	Characters []Character `json:"characters,omitempty"`
}

// ImageResponse 单图生成响应
type ImageResponse struct {
	Image string `json:"image"`
}

// ImagesRequest 批量出图请求
type ImagesRequest struct {
	Scenes     []Scene     `json:"scenes"`
	Characters []Character `json:"characters"`
}

// ImagesResponse 批量出图响应，Images[i] 对应 Scenes[i]
type ImagesResponse struct {
	Images []string `json:"images"`
}

// ContentRequest 内容生成请求
type ContentRequest struct {
	Topic      string `json:"topic"`
	Type       string `json:"type"`
	SceneCount int    `json:"sceneCount"`
}

// ContentResponse 内容生成响应
type ContentResponse struct {
	Story *Story `json:"story"`
}
