package form

import (
	"regexp"
	"strings"
)

// Matches local@domain with at least one dot in the domain part.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// NormalizeEmail lowercases the domain part so lookups and the unique
// column agree on one canonical spelling.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func checkRequired(f *Field) bool {
	if strings.TrimSpace(f.Value) == "" {
		f.Fail(msgRequired)
		return false
	}
	return true
}

func checkMaxLen(f *Field, limit int) bool {
	if len([]rune(f.Value)) > limit {
		f.Fail(msgTooLong)
		return false
	}
	return true
}

// checkEmail runs every email rule independently so a taken address
// with a bad format reports both problems at once.
func checkEmail(f *Field, taken func(normalized string) bool) {
	if !checkRequired(f) {
		return
	}
	checkMaxLen(f, 255)
	if !validEmail(f.Value) {
		f.Fail(msgEmailFormat)
	}
	if taken != nil && taken(NormalizeEmail(f.Value)) {
		f.Fail(msgEmailTaken)
	}
}

func checkPassword(f *Field, value string) {
	if value == "" {
		f.Fail(msgRequired)
		return
	}
	if len(value) < 8 {
		f.Fail(msgPasswordLen)
	}
}
