package argv

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput matches every error Build and FromArguments return for
// caller-supplied values.
var ErrInvalidInput = errors.New("invalid input")

// InvalidSubcommandError reports a value outside a param's enumerated set.
type InvalidSubcommandError struct {
	Operation  string
	Param      string
	Label      string
	Value      string
	Allowed    []string
	Suggestion string
}

func (e *InvalidSubcommandError) Error() string {
	msg := fmt.Sprintf("Invalid %s. Must be one of: %s.", e.Label, strings.Join(e.Allowed, ", "))
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" Did you mean '%s'?", e.Suggestion)
	}
	return msg
}

func (e *InvalidSubcommandError) Is(target error) bool { return target == ErrInvalidInput }

// MissingParameterError reports an absent required param.
type MissingParameterError struct {
	Operation string
	Param     string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("Missing required parameter '%s' for %s.", e.Param, e.Operation)
}

func (e *MissingParameterError) Is(target error) bool { return target == ErrInvalidInput }

// InvalidValueError reports an unknown param or a value of the wrong shape.
type InvalidValueError struct {
	Operation string
	Param     string
	Reason    string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("Invalid parameter '%s' for %s: %s.", e.Param, e.Operation, e.Reason)
}

func (e *InvalidValueError) Is(target error) bool { return target == ErrInvalidInput }
