package validation

import (
	"regexp"
	"strings"
)

// emailRe is the portal's email rule: /^[^\s@]+@[^\s@]+\.[^\s@]+$/
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// Errors maps a form field to its message. Empty means the form is valid.
type Errors map[string]string

// Add records msg for field unless the field already has a message.
func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

func (e Errors) Valid() bool {
	return len(e) == 0
}

// Required records msg when s is blank.
func (e Errors) Required(field, s, msg string) {
	if strings.TrimSpace(s) == "" {
		e.Add(field, msg)
	}
}

// OneOf reports whether s is one of allowed.
func OneOf(s string, allowed []string) bool {
	for _, a := range allowed {
		if a == s {
			return true
		}
	}
	return false
}
