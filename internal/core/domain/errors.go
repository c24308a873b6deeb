package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDocumentNotFound  = errors.New("document not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrValidation        = errors.New("validation failed")
	ErrOverridePath      = errors.New("override path invalid")
	ErrSequenceCollision = errors.New("display name already taken")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrTemporary         = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}

// ValidationError reports a missing or malformed context field by name
// so upload handlers can surface exactly which field blocked the
// filing.
func ValidationError(field, reason string) error {
	return fmt.Errorf("%w: field %q %s", ErrValidation, field, reason)
}
