package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/aussiebroadwan/tasks/pkg/cryptox"
)

const (
	UsernameMinLen = 3
	UsernameMaxLen = 32

	PasswordMinLen = 6
	PasswordMaxLen = cryptox.MaxPasswordBytes

	DescriptionMaxLen = 100
)

func normalizeUsername(username string) string {
	return strings.TrimSpace(username)
}

func validateUsername(v *ValidationError, field, username string) {
	n := utf8.RuneCountInString(username)
	switch {
	case n == 0:
		v.add(field, "is required")
	case n < UsernameMinLen:
		v.add(field, fmt.Sprintf("must be at least %d characters", UsernameMinLen))
	case n > UsernameMaxLen:
		v.add(field, fmt.Sprintf("must be at most %d characters", UsernameMaxLen))
	}
}

// Passwords are measured in bytes, bcrypt silently ignores anything past 72.
func validatePassword(v *ValidationError, field, password string) {
	switch {
	case password == "":
		v.add(field, "is required")
	case len(password) < PasswordMinLen:
		v.add(field, fmt.Sprintf("must be at least %d characters", PasswordMinLen))
	case len(password) > PasswordMaxLen:
		v.add(field, fmt.Sprintf("must be at most %d bytes", PasswordMaxLen))
	}
}

// normalizeDescription trims and checks a task description, returning the
// value that should be stored.
func normalizeDescription(v *ValidationError, description string) string {
	description = strings.TrimSpace(description)
	n := utf8.RuneCountInString(description)
	switch {
	case n == 0:
		v.add("description", "Task description is required")
	case n > DescriptionMaxLen:
		v.add("description", fmt.Sprintf("Task text cannot be more than %d characters", DescriptionMaxLen))
	}
	return description
}
