package entity

import (
	"errors"
	"fmt"
)

// ErrInvalidModel is matched by every *ValidationError
var ErrInvalidModel = errors.New("invalid model")

// FieldError reports a conversion failure on a single (possibly prefixed) field
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

type ValidationIssue struct{ Field, Reason string }

// ValidationError collects every constraint a model violates
type ValidationError struct{ Issues []ValidationIssue }

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return ErrInvalidModel.Error()
	}
	msg := ErrInvalidModel.Error() + ":"
	for i, issue := range e.Issues {
		if i > 0 {
			msg += ";"
		}
		msg += fmt.Sprintf(" %s %s", issue.Field, issue.Reason)
	}
	return msg
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidModel }

func (e *ValidationError) add(field, reason string) {
	e.Issues = append(e.Issues, ValidationIssue{Field: field, Reason: reason})
}

// merge appends other's issues with their fields nested under prefix
func (e *ValidationError) merge(prefix string, other error) {
	var ve *ValidationError
	if !errors.As(other, &ve) {
		e.add(prefix, other.Error())
		return
	}
	for _, issue := range ve.Issues {
		e.add(prefix+"."+issue.Field, issue.Reason)
	}
}

// errOrNil keeps a nil *ValidationError from turning into a non-nil error
func (e *ValidationError) errOrNil() error {
	if len(e.Issues) == 0 {
		return nil
	}
	return e
}
