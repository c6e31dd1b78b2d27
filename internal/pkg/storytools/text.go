package storytools

import (
	"regexp"
	"strings"
)

var (
	// 舞台说明、注释等不应朗读的括号内容
	bracketPattern = regexp.MustCompile(`\([^)]*\)|\[[^\]]*\]|\{[^}]*\}|（[^）]*）|【[^】]*】`)
	headingPattern = regexp.MustCompile(`(?m)^\s*#{1,6}\s*`)
	spacePattern   = regexp.MustCompile(`\s+`)
	markupReplacer = strings.NewReplacer("**", "", "__", "", "*", "", "`", "", "&", "")
)

// CleanNarrationForTTS 清理送往 TTS 的解说文本
// 去掉括号内容与 Markdown 标记，合并空白；原始解说保留在故事包中不受影响
func CleanNarrationForTTS(text string) string {
	text = bracketPattern.ReplaceAllString(text, "")
	text = headingPattern.ReplaceAllString(text, "")
	text = markupReplacer.Replace(text)
	text = spacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
