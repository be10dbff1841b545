// Copyright (c) 2026 Streamora. All rights reserved.
// Author: hai.phamduc.vn@gmail.com

// Package handle normalizes channel handles (usernames) into their canonical
// ASCII form.
//
// # Usage
//
// Handles identify channels in URLs (e.g., "/channel/alice"). A handle is
// stored and compared in its canonical form so that "Alice", "alice" and
// "Álice" all resolve to the same account.
package handle

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// validHandle matches a canonical handle: lowercase letters, digits,
// underscores and hyphens, 3 to 30 characters.
var validHandle = regexp.MustCompile(`^[a-z0-9_-]{3,30}$`)

// Canonical converts an arbitrary Unicode username into its canonical form.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Removes combining marks (accents).
// 3. Converts to lowercase and trims surrounding whitespace.
func Canonical(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, _ := transform.String(t, s)

	return strings.ToLower(strings.TrimSpace(result))
}

// IsValid reports whether s is already a well-formed canonical handle.
func IsValid(s string) bool {
	return validHandle.MatchString(s)
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
