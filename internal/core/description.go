package core

import "strings"

const (
	descriptionPrefix  = "description:"
	maxFallbackRunes   = 100
	noDescriptionLabel = "No description"
)

// ExtractDescription returns a one-line summary of a SKILL.md manifest.
//
// A "description:" line anywhere in the text wins; its value is trimmed and
// one layer of surrounding double quotes is removed. Otherwise the first
// non-empty line that is neither a heading nor a frontmatter fence is used,
// truncated to 100 characters. Text with neither yields "No description".
func ExtractDescription(text string) string {
	lines := strings.Split(text, "\n")

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(trimmed, descriptionPrefix); ok {
			return unquote(strings.TrimSpace(rest))
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "---") {
			continue
		}
		return truncateRunes(trimmed, maxFallbackRunes)
	}

	return noDescriptionLabel
}

// unquote strips one leading and one trailing double quote, independently.
func unquote(s string) string {
	s = strings.TrimPrefix(s, `"`)
	return strings.TrimSuffix(s, `"`)
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
