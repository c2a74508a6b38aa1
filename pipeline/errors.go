package pipeline

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrUnknownFilter matches errors for names missing from the registry.
	ErrUnknownFilter = errors.New("unknown filter")
	// ErrInvalidParameters matches errors for descriptors a maker rejects.
	ErrInvalidParameters = errors.New("invalid filter parameters")
)

// UnknownFilterError reports a descriptor whose name is not registered.
type UnknownFilterError struct {
	Name string
}

func (e *UnknownFilterError) Error() string {
	return fmt.Sprintf("%q is not a valid filter name", e.Name)
}

// Is lets errors.Is match ErrUnknownFilter.
func (e *UnknownFilterError) Is(target error) bool {
	return target == ErrUnknownFilter
}

// Rule identifies the validation step a descriptor failed.
type Rule string

const (
	// RuleName means the descriptor was routed to the wrong maker.
	RuleName Rule = "name"
	// RuleCount means the number of parameters is wrong.
	RuleCount Rule = "count"
	// RuleType means a parameter does not parse as its numeric type.
	RuleType Rule = "type"
	// RuleRange means a parameter parses but is outside its allowed range.
	RuleRange Rule = "range"
)

// ParameterError reports a descriptor rejected by a maker.
type ParameterError struct {
	// Filter is the name of the maker that rejected the descriptor.
	Filter string
	// Rule is the failed check.
	Rule Rule
	// Index is the zero-based position of the offending parameter, -1 for
	// name and count errors.
	Index int
	// Param names the offending parameter.
	Param string
	// Value is the offending raw value, or the descriptor name for RuleName.
	Value string
	// Detail describes the expectation that was not met.
	Detail string
	// Err is the underlying parse error, if any.
	Err error
}

func (e *ParameterError) Error() string {
	switch e.Rule {
	case RuleName:
		return fmt.Sprintf("%s: wrong filter descriptor %q", e.Filter, e.Value)
	case RuleCount:
		return fmt.Sprintf("%s: wrong number of parameters: %s", e.Filter, e.Detail)
	default:
		return fmt.Sprintf("%s: wrong %s parameter %d (%s) %q: %s", e.Filter, e.Rule, e.Index+1, e.Param, e.Value, e.Detail)
	}
}

// Unwrap returns the parse error.
func (e *ParameterError) Unwrap() error { return e.Err }

// Is lets errors.Is match ErrInvalidParameters.
func (e *ParameterError) Is(target error) bool {
	return target == ErrInvalidParameters
}
