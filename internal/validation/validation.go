// Package validation checks the shape of user-supplied registration and
// profile fields before they reach the services layer.
package validation

import (
	"regexp"
)

var (
	loginRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// Error is an input-shape failure. Handlers detect it with errors.As and
// return the message to the client as a 400, unlike internal failures.
type Error struct {
	msg string
}

func (e *Error) Error() string {
	return e.msg
}

func fail(msg string) error {
	return &Error{msg: msg}
}

// ValidateLogin enforces the 3-50 character alphanumeric-plus-underscore rule.
func ValidateLogin(login string) error {
	if len(login) < 3 {
		return fail("login must be at least 3 characters long")
	}
	if len(login) > 50 {
		return fail("login must not exceed 50 characters")
	}
	if !loginRegex.MatchString(login) {
		return fail("login can only contain letters, numbers and underscores")
	}
	return nil
}

// ValidateEmail checks basic email format.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fail("invalid email format")
	}
	if len(email) > 254 {
		return fail("email must not exceed 254 characters")
	}
	return nil
}

// ValidatePassword bounds password length. The 72-byte ceiling matches the
// bcrypt input limit so hashing never silently truncates an accepted value.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return fail("password must be at least 6 characters long")
	}
	if len(password) > 72 {
		return fail("password must not exceed 72 characters")
	}
	return nil
}
