// Package regex compiles and caches various regex expressions.
package regex

import (
	"regexp"
	"sync"
)

// AnsiEscapeCompile compiles regex for ANSI escape codes
var AnsiEscapeCompile = sync.OnceValue(func() *regexp.Regexp {
	return regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)
})

// ExtraSpacesCompile compiles regex for runs of whitespace
var ExtraSpacesCompile = sync.OnceValue(func() *regexp.Regexp {
	return regexp.MustCompile(`\s+`)
})

// ReservedCharsCompile compiles regex for characters not allowed in filenames.
//
// Windows-reserved characters, a safe cross-platform baseline.
var ReservedCharsCompile = sync.OnceValue(func() *regexp.Regexp {
	return regexp.MustCompile(`[<>:"/\\|?*]`)
})

// HTTP5xxCompile compiles regex for yt-dlp server error messages
var HTTP5xxCompile = sync.OnceValue(func() *regexp.Regexp {
	return regexp.MustCompile(`(?i)http error 5\d\d`)
})
