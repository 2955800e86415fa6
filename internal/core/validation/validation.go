package validation

import (
	"fmt"

	"github.com/jobnest/jobnest/internal"
)

// Builder accumulates field-level failures so a single response can report
// every invalid field instead of stopping at the first one.
type Builder struct {
	errs []internal.ValidationError
}

func New() *Builder {
	return &Builder{}
}

func (b *Builder) add(field, message string, code internal.ErrorCode) *Builder {
	b.errs = append(b.errs, internal.ValidationError{
		Field:   field,
		Message: message,
		Code:    string(code),
	})
	return b
}

func (b *Builder) Required(field, value string) *Builder {
	if value == "" {
		return b.add(field, fmt.Sprintf("%s is required", field), internal.ErrCodeValidationFailed)
	}
	return b
}

func (b *Builder) MinLength(field, value string, min int) *Builder {
	if value != "" && len(value) < min {
		return b.add(field, fmt.Sprintf("%s must be at least %d characters", field, min), internal.ErrCodeValidationFailed)
	}
	return b
}

func (b *Builder) MaxLength(field, value string, max int) *Builder {
	if len(value) > max {
		return b.add(field, fmt.Sprintf("%s must be at most %d characters", field, max), internal.ErrCodeValidationFailed)
	}
	return b
}

func (b *Builder) RequiredSlice(field string, value []string) *Builder {
	if len(value) == 0 {
		return b.add(field, fmt.Sprintf("%s must not be empty", field), internal.ErrCodeValidationFailed)
	}
	return b
}

func (b *Builder) OneOf(field, value string, allowed ...string) *Builder {
	if value == "" {
		return b
	}
	for _, a := range allowed {
		if value == a {
			return b
		}
	}
	return b.add(field, fmt.Sprintf("%s must be one of %v", field, allowed), internal.ErrCodeInvalidStatus)
}

func (b *Builder) Rating(field string, value int) *Builder {
	if value < 1 || value > 5 {
		return b.add(field, fmt.Sprintf("%s must be between 1 and 5", field), internal.ErrCodeInvalidRating)
	}
	return b
}

func (b *Builder) Custom(ok bool, field, message string) *Builder {
	if !ok {
		return b.add(field, message, internal.ErrCodeValidationFailed)
	}
	return b
}

// Err returns a single AppError carrying every accumulated field failure,
// or nil when all checks passed.
func (b *Builder) Err() error {
	if len(b.errs) == 0 {
		return nil
	}
	return internal.NewValidationFieldErrors(b.errs)
}
