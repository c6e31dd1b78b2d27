package storytools

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"storymaker/internal/model/story"
)

// ErrOutlineParse JSON 大纲无法解析
var ErrOutlineParse = errors.New("failed to parse story outline")

// DefaultOutlineText 模型返回空文本时使用的大纲
const DefaultOutlineText = "Characters:\n- Hero: A generic warrior.\nScenes:\n- Scene 1: A battle begins."

// 兜底角色
const (
	PlaceholderCharacterName        = "Unknown Leader"
	PlaceholderCharacterDescription = "A generic warrior from the story."
)

var (
	characterLinePattern = regexp.MustCompile(`^[-*•]\s*([^:]+):\s*(.+)$`)
	emphasisReplacer     = strings.NewReplacer("**", "", "__", "")
	sceneLinePattern     = regexp.MustCompile(`(?i)^[-*•]\s*Scene\s*(\d+)\s*:\s*(.+)$`)
)

type outlineSection int

const (
	sectionCharacters outlineSection = iota
	sectionScenes
)

// ParseOutlineText 解析文本模式的大纲
//
// 文法：
//
//	Characters:
//	- Name: description
//	Scenes:
//	- Scene 1: summary
//
// 解析不会失败：没有角色时插入兜底角色，场景不足 sceneCount 时补占位概要。
// 场景按出现顺序追加，编号只用于匹配，不参与排序；多于 sceneCount 时不截断。
func ParseOutlineText(text string, sceneCount int) *story.Story {
	if strings.TrimSpace(text) == "" {
		text = DefaultOutlineText
	}

	out := &story.Story{}
	index := make(map[string]int)
	section := sectionCharacters

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		switch headerOf(line) {
		case "characters":
			section = sectionCharacters
			continue
		case "scenes":
			section = sectionScenes
			continue
		}

		line = emphasisReplacer.Replace(line)
		if section == sectionCharacters {
			m := characterLinePattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			name := strings.TrimSpace(m[1])
			desc := strings.TrimSpace(m[2])
			if i, ok := index[name]; ok {
				out.Characters[i].Description = desc
				continue
			}
			index[name] = len(out.Characters)
			out.Characters = append(out.Characters, story.Character{
				ID:          len(out.Characters) + 1,
				Name:        name,
				Description: desc,
			})
			continue
		}

		if m := sceneLinePattern.FindStringSubmatch(line); m != nil {
			out.Scenes = append(out.Scenes, story.Scene{Description: strings.TrimSpace(m[2])})
		}
	}

	ApplyOutlineFallbacks(out, sceneCount)
	return out
}

// ParseOutlineJSON 解析 JSON 模式的大纲
// 先去掉 Markdown 代码块包裹；解析失败返回 ErrOutlineParse，不返回部分结果
func ParseOutlineJSON(text string) (*story.Story, error) {
	cleaned := StripCodeFence(text)
	if cleaned == "" {
		return nil, fmt.Errorf("%w: empty response", ErrOutlineParse)
	}

	var raw jsonOutline
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutlineParse, err)
	}

	out := &story.Story{
		Prompt: raw.Prompt,
		Theme:  raw.Theme,
	}
	for _, s := range raw.Scenes {
		imageDesc := s.ImageDescription
		if imageDesc == "" {
			imageDesc = s.Image
		}
		out.Scenes = append(out.Scenes, story.Scene{
			Title:            s.Title,
			Description:      s.Description,
			ImageDescription: imageDesc,
			Narration:        s.Narration,
		})
	}
	for _, c := range raw.Characters {
		out.Characters = append(out.Characters, story.Character{
			Name:        c.Name,
			Description: c.Description,
		})
	}
	normalizeIDs(out)
	return out, nil
}

// ApplyOutlineFallbacks 补齐兜底角色与占位场景，并重新编号
func ApplyOutlineFallbacks(s *story.Story, sceneCount int) {
	if len(s.Characters) == 0 {
		s.Characters = append(s.Characters, story.Character{
			Name:        PlaceholderCharacterName,
			Description: PlaceholderCharacterDescription,
		})
	}
	for i := len(s.Scenes); i < sceneCount; i++ {
		s.Scenes = append(s.Scenes, story.Scene{Description: PlaceholderSummary(i + 1)})
	}
	normalizeIDs(s)
}

// StripCodeFence 去掉 ```json ... ``` 包裹
func StripCodeFence(text string) string {
	t := strings.TrimSpace(text)
	if strings.HasPrefix(t, "```") {
		if nl := strings.Index(t, "\n"); nl >= 0 {
			t = t[nl+1:]
		} else {
			t = strings.TrimPrefix(t, "```json")
			t = strings.TrimPrefix(t, "```")
		}
	}
	t = strings.TrimSpace(t)
	t = strings.TrimSuffix(t, "```")
	return strings.TrimSpace(t)
}

// normalizeIDs 场景与角色按顺序编号 1..n，补场景标题
func normalizeIDs(s *story.Story) {
	for i := range s.Scenes {
		s.Scenes[i].ID = i + 1
		if s.Scenes[i].Title == "" {
			s.Scenes[i].Title = fmt.Sprintf("Scene %d", i+1)
		}
	}
	for i := range s.Characters {
		s.Characters[i].ID = i + 1
	}
	s.ScenesCount = len(s.Scenes)
}

// headerOf 识别小节标题，容忍 Markdown 强调和标题符号
func headerOf(line string) string {
	h := strings.ToLower(strings.TrimSpace(stripEmphasis(line)))
	switch {
	case h == "characters" || strings.HasPrefix(h, "characters:"):
		return "characters"
	case h == "scenes" || strings.HasPrefix(h, "scenes:"):
		return "scenes"
	}
	return ""
}

func stripEmphasis(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '*', '_', '#', '`':
			return -1
		}
		return r
	}, s)
}

// jsonOutline 只取文本字段；id 与 scenesCount 由 normalizeIDs 重新生成，
// 模型常把数字写成字符串，这里不解析它们
type jsonOutline struct {
	Prompt string `json:"prompt"`
	Scenes []struct {
		Title            string `json:"title"`
		Description      string `json:"description"`
		Image            string `json:"image"`
		ImageDescription string `json:"imageDescription"`
		Narration        string `json:"narration"`
	} `json:"scenes"`
	Characters []struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	} `json:"characters"`
	Theme string `json:"theme"`
}
