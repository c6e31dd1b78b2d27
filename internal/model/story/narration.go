package story

import "time"

// NarrationTrack 单个场景的配音
type NarrationTrack struct {
	SceneID         int     `json:"sceneId"`
	Key             string  `json:"key"`
	URL             string  `json:"url"`
	DurationSeconds float64 `json:"durationSeconds"`
	TextLength      int     `json:"textLength"`
}

// NarrationManifest narrate 命令写入存储的清单
type NarrationManifest struct {
	Prompt      string           `json:"prompt"`
	GeneratedAt time.Time        `json:"generatedAt"`
	Voice       string           `json:"voice"`
	Tracks      []NarrationTrack `json:"tracks"`
}
