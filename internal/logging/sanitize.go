// AspectPad - Social Preview Image Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectpad

package logging

import (
	"net/url"
	"strings"
	"unicode"
)

// maxLogValueLen bounds user-supplied values written to logs.
const maxLogValueLen = 512

// SanitizeValue strips control characters from a user-supplied value and
// truncates it so it cannot forge or flood log lines.
func SanitizeValue(value string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, value)
	return truncateString(cleaned, maxLogValueLen)
}

// SanitizeURL returns a loggable form of a user-supplied URL with any
// password in the userinfo replaced by "xxxxx".
func SanitizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return SanitizeValue(raw)
	}
	return SanitizeValue(u.Redacted())
}

// truncateString truncates s to at most maxLen bytes, appending "..." when cut.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	cut := maxLen - 3
	// Back off to a rune boundary.
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
