package validation

import (
	"path/filepath"
	"strings"
)

// CleanText collapses whitespace runs and strips control characters,
// keeping newlines and tabs.
func CleanText(text string) string {
	if text == "" {
		return ""
	}

	collapsed := strings.Join(strings.Fields(text), " ")

	var sb strings.Builder
	sb.Grow(len(collapsed))
	for _, r := range collapsed {
		if r >= 32 || r == '\n' || r == '\t' {
			sb.WriteRune(r)
		}
	}

	return strings.TrimSpace(sb.String())
}

var dangerousFilenameChars = []string{"/", "\\", "..", "<", ">", ":", "\"", "|", "?", "*"}

// SanitizeFilename neutralizes path separators and shell-unsafe characters
// so uploads cannot escape the upload directory, and caps the length at 255.
func SanitizeFilename(filename string) string {
	sanitized := filename
	for _, c := range dangerousFilenameChars {
		sanitized = strings.ReplaceAll(sanitized, c, "_")
	}

	if len(sanitized) > 255 {
		ext := filepath.Ext(sanitized)
		name := strings.TrimSuffix(sanitized, ext)
		keep := 255 - len(ext)
		if keep < 0 {
			keep = 0
		}
		if len(name) > keep {
			name = name[:keep]
		}
		sanitized = name + ext
	}

	return sanitized
}

// FileExtension returns the lowercase extension without the leading dot.
func FileExtension(filename string) string {
	ext := filepath.Ext(filename)
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
