package validator

import (
	"sort"
	"strings"
)

// FieldError is one failed rule on one field.
type FieldError struct {
	// Field is the JSON name of the field, e.g. "order_number".
	Field string `json:"field"`
	// Tag is the rule that failed, e.g. "notblank".
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// ValidationErrors collects field failures in the order they were found. A
// nil *ValidationErrors means "valid"; every method is nil-safe.
type ValidationErrors struct {
	Errors []FieldError `json:"errors"`
}

// NewValidationErrors returns an empty collection to Append to.
func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{Errors: make([]FieldError, 0)}
}

// NewValidationError returns a collection holding one failure.
func NewValidationError(field, tag, message string) *ValidationErrors {
	v := NewValidationErrors()
	v.Append(field, tag, message)
	return v
}

// Append records a failure.
func (v *ValidationErrors) Append(field, tag, message string) {
	v.Errors = append(v.Errors, FieldError{Field: field, Tag: tag, Message: message})
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if !v.HasErrors() {
		return ""
	}
	msgs := make([]string, len(v.Errors))
	for i, fe := range v.Errors {
		msgs[i] = fe.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// HasErrors reports whether anything failed.
func (v *ValidationErrors) HasErrors() bool {
	return v != nil && len(v.Errors) > 0
}

// First returns the first message, "" when valid. It is the summary line
// of a 422 body.
func (v *ValidationErrors) First() string {
	if !v.HasErrors() {
		return ""
	}
	return v.Errors[0].Message
}

// ByField groups the messages by field, the "errors" map of a 422 body.
func (v *ValidationErrors) ByField() map[string][]string {
	if !v.HasErrors() {
		return nil
	}
	out := make(map[string][]string)
	for _, fe := range v.Errors {
		out[fe.Field] = append(out[fe.Field], fe.Message)
	}
	return out
}

// Fields returns the failing field names, sorted.
func (v *ValidationErrors) Fields() []string {
	byField := v.ByField()
	out := make([]string, 0, len(byField))
	for f := range byField {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
