package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Rahul-Chotaliya/tradehub/internal/apperrors"
)

// Error carries per-field validation messages.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}

// Unwrap makes every field error match apperrors.ErrValidation.
func (e *Error) Unwrap() error {
	return apperrors.ErrValidation
}

func newError(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return &Error{Fields: fields}
}
