package validators

import "strings"

// SanitizeString trims surrounding whitespace and truncates to maxLen
// bytes. A maxLen of zero means no length cap.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen > 0 && len(trimmed) > maxLen {
		return trimmed[:maxLen]
	}
	return trimmed
}

// CollapseSpaces squeezes interior whitespace runs to single spaces.
func CollapseSpaces(input string) string {
	return strings.Join(strings.Fields(input), " ")
}
