// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package masking provides one-way, display-only redaction of customer PII.
//
// Every function is pure and total: empty input yields an empty string and
// no input can make a function panic. Masking is not encryption; nothing here
// needs or touches the master password.
package masking

import (
	"strings"
	"unicode/utf8"
)

// Marker replaces the hidden part of a value.
const Marker = "***"

const fullPhoneMask = "***-***-****"

// Phone keeps the last four digits: "(555) 123-4567" -> "***-***-4567".
// Fewer than four digits produce a fully masked placeholder.
func Phone(value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}

	digits := make([]rune, 0, len(value))
	for _, r := range value {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) < 4 {
		return fullPhoneMask
	}

	return "***-***-" + string(digits[len(digits)-4:])
}

// Email keeps the first character of the local part and the whole domain:
// "jane.doe@example.com" -> "j***@example.com".
func Email(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	local, domain, found := strings.Cut(value, "@")
	if !found {
		return firstRune(value) + Marker
	}
	if local == "" {
		return Marker + "@" + domain
	}

	return firstRune(local) + Marker + "@" + domain
}

// Name keeps the first token and the initial of the last one:
// "Jane Q Doe" -> "Jane D***". A single token keeps only its first character.
func Name(value string) string {
	tokens := strings.Fields(value)
	switch len(tokens) {
	case 0:
		return ""
	case 1:
		return firstRune(tokens[0]) + Marker
	default:
		return tokens[0] + " " + firstRune(tokens[len(tokens)-1]) + Marker
	}
}

// Address keeps only the last two comma-separated components, usually city
// and state: "12 Elm St, Springfield, IL" -> "***, Springfield, IL".
// Fewer than two components produce a fully masked placeholder.
func Address(value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}

	parts := make([]string, 0, 4)
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 2 {
		return Marker
	}

	return Marker + ", " + strings.Join(parts[len(parts)-2:], ", ")
}

func firstRune(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return ""
	}
	return string(r)
}
