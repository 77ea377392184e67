package client

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/kart-io/medreq/internal/model"
	"github.com/kart-io/medreq/pkg/utils/json"
)

// ResponseError is returned for every non-2xx answer. It carries the status
// and whatever structured body the server sent.
type ResponseError struct {
	StatusCode int
	Message    string
	Errors     map[string][]string
	Body       []byte
}

// Error implements the error interface.
func (e *ResponseError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Unauthorized reports whether the server answered 401.
func (e *ResponseError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// FieldErrors flattens Errors into "field: msg" lines, sorted by field.
func (e *ResponseError) FieldErrors() []string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var out []string
	for _, field := range fields {
		for _, m := range e.Errors[field] {
			out = append(out, field+": "+m)
		}
	}
	return out
}

func newResponseError(status int, body []byte) *ResponseError {
	re := &ResponseError{StatusCode: status, Body: body}
	var payload model.ErrorPayload
	if len(body) > 0 && json.Unmarshal(body, &payload) == nil {
		re.Message = strings.TrimSpace(payload.Message)
		re.Errors = payload.Errors
	}
	return re
}

// Message returns the server-provided message carried by err, or fallback
// when err is not a *ResponseError or the server sent no message.
func Message(err error, fallback string) string {
	var re *ResponseError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	return fallback
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var re *ResponseError
	if errors.As(err, &re) {
		return re.StatusCode
	}
	return 0
}
