package service

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	emailPattern     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	volunteerPhone   = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	phoneFormatChars = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")
)

func isValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

func minLen(s string, n int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) >= n
}

// stripPhone removes common formatting characters.
func stripPhone(s string) string {
	return phoneFormatChars.Replace(strings.TrimSpace(s))
}

// digitCount counts ASCII digits in s.
func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

func joinName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}
