package validation

import (
	"regexp"
	"strings"

	"github.com/Rahul-Chotaliya/tradehub/internal/api/request"
)

const minPasswordLength = 8

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9@.+_-]{3,150}$`)

// ValidateLogin checks that both credentials are present.
func ValidateLogin(req request.LoginRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Username) == "" {
		errors["username"] = "this field is required"
	}
	if req.Password == "" {
		errors["password"] = "this field is required"
	}

	return newError(errors)
}

// ValidateCreateUser validates a new user's username and password.
//
// Required fields:
//   - username: 3-150 characters of letters, digits and @.+-_
//   - password: At least 8 characters
func ValidateCreateUser(req request.CreateUserRequest) error {
	errors := make(map[string]string)

	if !usernamePattern.MatchString(req.Username) {
		errors["username"] = "username must be 3-150 characters of letters, digits and @.+-_"
	}
	if len(req.Password) < minPasswordLength {
		errors["password"] = "password must be at least 8 characters"
	}

	return newError(errors)
}
