// Package parsing holds input normalisation helpers.
package parsing

import (
	"strings"
	"unicode"
	"ytbatch/internal/domain/consts"
	"ytbatch/internal/domain/regex"
)

// SanitizeFilename turns a display name into a safe file base name.
//
// The result never contains path separators and is never empty.
func SanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	name = regex.ReservedCharsCompile().ReplaceAllString(name, "_")
	name = regex.ExtraSpacesCompile().ReplaceAllString(name, " ")
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return '_'
		}
		return r
	}, name)
	name = strings.TrimRight(name, " .")

	if runes := []rune(name); len(runes) > consts.MaxFilenameRunes {
		name = strings.TrimRight(string(runes[:consts.MaxFilenameRunes]), " .")
	}

	// "." and ".." collapse to nothing above
	if name == "" {
		return consts.FallbackFilename
	}
	return name
}
