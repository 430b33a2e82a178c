package buffer

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedTemplate is matched by MalformedTemplateError.
	ErrMalformedTemplate = errors.New("malformed template")
	// ErrUnrepresentable is matched by UnrepresentableError.
	ErrUnrepresentable = errors.New("unrepresentable character")
	// ErrNoResolver is returned when a mask uses %c without a Resolver.
	ErrNoResolver = errors.New("no resolver for computed argument")
)

// MalformedTemplateError reports a placeholder count that does not match the
// number of supplied arguments.
type MalformedTemplateError struct {
	Mask         string
	Placeholders int
	Args         int
}

func (e *MalformedTemplateError) Error() string {
	return fmt.Sprintf("malformed template %q: %d placeholders, %d args", e.Mask, e.Placeholders, e.Args)
}

func (e *MalformedTemplateError) Is(target error) bool {
	return target == ErrMalformedTemplate
}

// UnrepresentableError reports a key whose rune cannot be inserted as text.
type UnrepresentableError struct {
	Rune rune
}

func (e *UnrepresentableError) Error() string {
	return fmt.Sprintf("unrepresentable character %U", e.Rune)
}

func (e *UnrepresentableError) Is(target error) bool {
	return target == ErrUnrepresentable
}
