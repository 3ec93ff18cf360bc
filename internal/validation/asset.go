package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/Rahul-Chotaliya/tradehub/internal/api/request"
)

// MaxAssetNameLength bounds asset names.
const MaxAssetNameLength = 100

// ValidateCreateAsset validates an asset creation request.
//
// Required fields:
//   - name: Non-blank, at most 100 characters
func ValidateCreateAsset(req request.CreateAssetRequest) error {
	errors := make(map[string]string)

	name := strings.TrimSpace(req.Name)
	switch {
	case name == "":
		errors["name"] = "name is required"
	case utf8.RuneCountInString(name) > MaxAssetNameLength:
		errors["name"] = "name must be 100 characters or less"
	}

	return newError(errors)
}
