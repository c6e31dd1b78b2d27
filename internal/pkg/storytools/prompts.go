package storytools

import (
	"fmt"
	"strings"

	"storymaker/internal/model/story"
)

// 默认值
const (
	DefaultNarrationLanguage = "Vietnamese"
	DefaultImageLanguage     = "English"
	DefaultStyleDirective    = "Generate an image with Pixar 3D animation style based on the following prompt: %s"
)

// PromptBuilder 故事各阶段的提示词构建器
type PromptBuilder struct {
	narrationLanguage string
	imageLanguage     string
	styleDirective    string
}

// NewPromptBuilder 创建提示词构建器，空参数使用默认值
func NewPromptBuilder(narrationLanguage, imageLanguage, styleDirective string) *PromptBuilder {
	if narrationLanguage == "" {
		narrationLanguage = DefaultNarrationLanguage
	}
	if imageLanguage == "" {
		imageLanguage = DefaultImageLanguage
	}
	if styleDirective == "" {
		styleDirective = DefaultStyleDirective
	}
	return &PromptBuilder{
		narrationLanguage: narrationLanguage,
		imageLanguage:     imageLanguage,
		styleDirective:    styleDirective,
	}
}

// OutlineText 文本模式的大纲提示词
func (b *PromptBuilder) OutlineText(prompt string, sceneCount int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Based on the story description %q, create a cohesive story outline in English with %d scenes. Include:\n", prompt, sceneCount)
	sb.WriteString("1. Key characters with detailed physical descriptions (e.g., hair color, clothing).\n")
	sb.WriteString("2. A brief summary (1-2 sentences) for each scene, ensuring logical progression and consistency.\n")
	sb.WriteString("Format the response as:\n")
	sb.WriteString("Characters:\n- [Name]: [description]\n")
	sb.WriteString("Scenes:\n")
	for i := 1; i <= sceneCount && i <= 2; i++ {
		fmt.Fprintf(&sb, "- Scene %d: [summary]\n", i)
	}
	sb.WriteString("...")
	return sb.String()
}

// OutlineJSON JSON 模式的大纲提示词
func (b *PromptBuilder) OutlineJSON(prompt string, sceneCount int) string {
	return fmt.Sprintf(`Generate a story outline with %d scenes based on the following prompt: %s.
The story should be consistent and coherent, with a clear beginning, middle, and end.

The response should be in JSON format with the following structure:
{
    "prompt": "<prompt>",
    "scenesCount": <number>,
    "scenes": [
        {"id": <number>, "title": "<title>", "description": "<description>", "image": "<image>", "narration": "<narration>"}
    ],
    "characters": [
        {"id": <number>, "name": "<name>", "description": "<description>"}
    ],
    "theme": "<theme>"
}

The scene's image should be less than 200 words, written in %s, describing the scene and the characters in it.
The narration for each scene should be in %s, around 80 words, with a natural and emotionally resonant flow.
The characters should be described clearly, with their gender and appearance (e.g., hair color, eye color, clothing).`,
		sceneCount, prompt, b.imageLanguage, b.narrationLanguage)
}

// Narration 场景解说提示词
func (b *PromptBuilder) Narration(prompt, summary string, sceneNumber int) string {
	return fmt.Sprintf(
		"Based on the story description %q and the scene summary %q, write a short narration (50-100 words) in %s for scene %d. Keep it consistent with the overall story.",
		prompt, summary, b.narrationLanguage, sceneNumber)
}

// ImageDescription 场景图片描述提示词，附带全部角色保证跨场景一致
func (b *PromptBuilder) ImageDescription(prompt, summary string, sceneNumber int, characters []story.Character) string {
	return fmt.Sprintf(
		"Based on the story description %q and the scene summary %q, create a detailed image description in %s for scene %d. Include consistent characters: %s. Ensure it fits the overall narrative.",
		prompt, summary, b.imageLanguage, sceneNumber, strings.Join(story.RosterOf(characters), ", "))
}

// StyledImage 图片模型的最终提示词：风格指令 + 描述，可选附加角色列表
func (b *PromptBuilder) StyledImage(description string, characters []story.Character) string {
	// 风格指令来自配置，只替换第一个 %s，其余百分号原样保留
	var p string
	if strings.Contains(b.styleDirective, "%s") {
		p = strings.Replace(b.styleDirective, "%s", description, 1)
	} else {
		p = b.styleDirective + " " + description
	}
	if len(characters) > 0 {
		p += "\nCharacters: " + strings.Join(story.RosterOf(characters), ", ")
	}
	return p
}

// NarrationFallback 按解说语言生成兜底文案
func (b *PromptBuilder) NarrationFallback(sceneNumber int) string {
	return FallbackNarration(b.narrationLanguage, sceneNumber)
}

// FallbackNarration 模型未返回解说时的兜底文案，越南语之外一律用英文
func FallbackNarration(language string, sceneNumber int) string {
	if strings.EqualFold(strings.TrimSpace(language), "vietnamese") {
		return fmt.Sprintf("Cảnh %d của câu chuyện.", sceneNumber)
	}
	return fmt.Sprintf("Scene %d of the story.", sceneNumber)
}

// FallbackImageDescription 模型未返回图片描述时的兜底文案
func FallbackImageDescription(sceneNumber int, characters []story.Character) string {
	if len(characters) == 0 {
		return fmt.Sprintf("A generic scene %d.", sceneNumber)
	}
	descs := make([]string, 0, len(characters))
	for _, c := range characters {
		descs = append(descs, c.Description)
	}
	return fmt.Sprintf("A generic scene %d with %s.", sceneNumber, strings.Join(descs, " and "))
}

// PlaceholderSummary 大纲场景不足时的占位概要
func PlaceholderSummary(sceneNumber int) string {
	return fmt.Sprintf("A generic continuation of the story in scene %d.", sceneNumber)
}
