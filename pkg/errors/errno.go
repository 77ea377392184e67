// Package errors provides the structured error codes used across medreq.
//
// Error Code Format: AABBCCC (7 digits)
//
//	AA  (00-99): Module code - identifies where the error was raised
//	BB  (00-99): Category code - identifies the error category
//	CCC (000-999): Sequence number - specific error within the category
//
// Module Codes (AA):
//
//	00: Common errors shared by every package
//	20: Client side (session, forms, API client)
//	30: Reference API server
//
// Category Codes (BB):
//
//	00: Success
//	01: Request/Validation errors (400/422)
//	02: Authentication errors (401)
//	03: Authorization errors (403)
//	04: Resource not found errors (404)
//	05: Conflict errors (409)
//	07: Internal errors (500)
//	08: Storage errors (500)
//	10: Network errors (502/503)
//	12: Configuration errors (500)
//
// Usage:
//
//	return errors.ErrValidation.WithMessage("seleccione un medicamento")
//	return errors.ErrSessionStore.WithCause(err)
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
)

// Module codes.
const (
	ModuleCommon = 0
	ModuleClient = 20
	ModuleServer = 30
)

// Category codes.
const (
	CategorySuccess    = 0
	CategoryRequest    = 1
	CategoryAuth       = 2
	CategoryPermission = 3
	CategoryResource   = 4
	CategoryConflict   = 5
	CategoryInternal   = 7
	CategoryStorage    = 8
	CategoryNetwork    = 10
	CategoryConfig     = 12
)

// MakeCode builds an AABBCCC code.
func MakeCode(module, category, sequence int) int {
	return module*100000 + category*1000 + sequence
}

// ParseCode splits an AABBCCC code into its parts.
func ParseCode(code int) (module, category, sequence int) {
	return code / 100000, (code / 1000) % 100, code % 1000
}

// Errno represents a structured error with code and messages.
type Errno struct {
	// Code is the unique error code
	Code int `json:"code"`

	// HTTP is the HTTP status code the error maps to
	HTTP int `json:"-"`

	// MessageEN is the English error message
	MessageEN string `json:"message"`

	// MessageES is the Spanish error message
	MessageES string `json:"message_es,omitempty"`

	cause error
}

// Error implements the error interface.
func (e *Errno) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("errno %d: %s: %v", e.Code, e.MessageEN, e.cause)
	}
	return fmt.Sprintf("errno %d: %s", e.Code, e.MessageEN)
}

// Unwrap returns the underlying cause.
func (e *Errno) Unwrap() error {
	return e.cause
}

// Is matches on error code, so errors.Is(err, ErrValidation) holds for
// copies produced by WithMessage/WithCause.
func (e *Errno) Is(target error) bool {
	if t, ok := target.(*Errno); ok {
		return e.Code == t.Code
	}
	return false
}

// WithCause returns a copy carrying the given cause.
func (e *Errno) WithCause(cause error) *Errno {
	c := *e
	c.cause = cause
	return &c
}

// WithMessage returns a copy with a custom English message. The Spanish
// base text no longer describes the error, so it is dropped and Message
// falls back to msg; use WithMessages to keep both languages.
func (e *Errno) WithMessage(msg string) *Errno {
	c := *e
	c.MessageEN = msg
	c.MessageES = ""
	return &c
}

// WithMessagef returns a copy with a formatted English message.
func (e *Errno) WithMessagef(format string, args ...interface{}) *Errno {
	return e.WithMessage(fmt.Sprintf(format, args...))
}

// WithMessages returns a copy with both messages replaced.
func (e *Errno) WithMessages(en, es string) *Errno {
	c := *e
	c.MessageEN = en
	c.MessageES = es
	return &c
}

// Message returns the message for the given language, falling back to English.
func (e *Errno) Message(lang string) string {
	if IsSpanish(lang) && e.MessageES != "" {
		return e.MessageES
	}
	return e.MessageEN
}

// IsSpanish reports whether lang is a Spanish tag: es, es-MX, es_CO, ES...
func IsSpanish(lang string) bool {
	lang = strings.TrimSpace(lang)
	if len(lang) < 2 || !strings.EqualFold(lang[:2], "es") {
		return false
	}
	return len(lang) == 2 || lang[2] == '-' || lang[2] == '_'
}

// HTTPStatus returns the HTTP status code.
func (e *Errno) HTTPStatus() int {
	if e.HTTP != 0 {
		return e.HTTP
	}
	return http.StatusInternalServerError
}

var (
	errnoRegistry = make(map[int]*Errno)
	registryMu    sync.RWMutex
)

// Register registers an Errno. Panics if the code is already taken.
func Register(e *Errno) *Errno {
	registryMu.Lock()
	defer registryMu.Unlock()

	if existing, ok := errnoRegistry[e.Code]; ok {
		panic(fmt.Sprintf("errno code %d already registered: %s", e.Code, existing.MessageEN))
	}
	errnoRegistry[e.Code] = e
	return e
}

// Lookup returns the registered Errno for the given code.
func Lookup(code int) (*Errno, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	e, ok := errnoRegistry[code]
	return e, ok
}

// Codes returns every registered code in ascending order.
func Codes() []int {
	registryMu.RLock()
	defer registryMu.RUnlock()

	codes := make([]int, 0, len(errnoRegistry))
	for code := range errnoRegistry {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	return codes
}

// FromError converts any error to Errno. Non-Errno errors become ErrInternal.
func FromError(err error) *Errno {
	if err == nil {
		return nil
	}
	var e *Errno
	if stderrors.As(err, &e) {
		return e
	}
	return ErrInternal.WithCause(err)
}

// GetCode returns the error code carried by err, or -1.
func GetCode(err error) int {
	var e *Errno
	if stderrors.As(err, &e) {
		return e.Code
	}
	return -1
}
