package llm

import "strings"

// CleanJSONBlock trims text and strips a markdown code fence wrapper.
// When text starts with ``` the opening line (including any language tag) is dropped
// together with everything from the last ``` onward. Other text is only trimmed.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	firstNewline := strings.Index(text, "\n")
	lastFence := strings.LastIndex(text, "```")
	if firstNewline == -1 || lastFence <= firstNewline {
		return text
	}
	return strings.TrimSpace(text[firstNewline+1 : lastFence])
}
