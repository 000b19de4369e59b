package server

import (
	"fmt"
	"strings"
	"unicode"
)

// sanitizeFilename maps a raw client-supplied name to a safe display name:
// directory components and control characters are stripped. The result is
// purely informational and never used for storage addressing.
func sanitizeFilename(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", fmt.Errorf("no file selected")
	}

	// Keep only the final path segment, honoring both separator styles.
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}

	var b strings.Builder
	for _, r := range name {
		if unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	name = strings.TrimSpace(b.String())

	if name == "" || strings.Trim(name, ".") == "" {
		return "", fmt.Errorf("invalid filename")
	}
	return name, nil
}
