package validation

import (
	"regexp"
	"strings"

	"github.com/mheijden/portfolio-tracker/internal/api/request"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateRegister validates a user registration request.
func ValidateRegister(req request.RegisterRequest) error {
	errors := make(map[string]string)

	username := strings.TrimSpace(req.Username)
	if username == "" {
		errors["username"] = "username is required"
	} else if len(username) > 50 {
		errors["username"] = "username must be at most 50 characters"
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		errors["email"] = "email is required"
	} else if !emailPattern.MatchString(email) {
		errors["email"] = "email is malformed"
	}

	if len(req.Password) < 8 {
		errors["password"] = "password must be at least 8 characters"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
