// Package response writes the JSON bodies of the reference server.
//
// Success bodies are the resource itself. Error bodies follow the shape the
// SPA expects:
//
//	{"message": "The given data was invalid.", "errors": {"email": ["..."]}}
package response

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	api "github.com/kart-io/medreq/internal/model"
	errno "github.com/kart-io/medreq/pkg/errors"
	"github.com/kart-io/medreq/pkg/validator"
)

// Writer provides convenient methods to write responses to a gin context.
type Writer struct {
	c    *gin.Context
	lang string
}

// NewWriter creates a new response writer. The message language comes from
// Accept-Language and defaults to English.
func NewWriter(c *gin.Context) *Writer {
	return &Writer{c: c, lang: Lang(c.Request)}
}

// WithLang sets the language for error messages.
func (w *Writer) WithLang(lang string) *Writer {
	w.lang = lang
	return w
}

// OK sends data with status 200.
func (w *Writer) OK(data interface{}) {
	w.c.JSON(http.StatusOK, data)
}

// Created sends data with status 201.
func (w *Writer) Created(data interface{}) {
	w.c.JSON(http.StatusCreated, data)
}

// Fail converts err to an error body. Validation errors become 422 with the
// per-field map; any other error goes through errno.FromError.
func (w *Writer) Fail(err error) {
	var verrs *validator.ValidationErrors
	if errors.As(err, &verrs) && verrs.HasErrors() {
		w.FailWithValidation(verrs)
		return
	}

	e := errno.FromError(err)
	w.c.AbortWithStatusJSON(e.HTTPStatus(), api.ErrorPayload{Message: e.Message(w.lang)})
}

// FailWithValidation sends a 422 with the first message as summary.
func (w *Writer) FailWithValidation(verrs *validator.ValidationErrors) {
	w.c.AbortWithStatusJSON(http.StatusUnprocessableEntity, api.ErrorPayload{
		Message: verrs.First(),
		Errors:  verrs.ByField(),
	})
}

// ============================================================================
// Convenience functions that work directly with gin.Context
// ============================================================================

// OK sends a successful response.
func OK(c *gin.Context, data interface{}) {
	NewWriter(c).OK(data)
}

// Created sends a 201 response.
func Created(c *gin.Context, data interface{}) {
	NewWriter(c).Created(data)
}

// Fail sends an error response.
func Fail(c *gin.Context, err error) {
	NewWriter(c).Fail(err)
}

// Lang picks "es" or "en" from the Accept-Language header.
func Lang(r *http.Request) string {
	if r == nil {
		return validator.LangEN
	}
	al := strings.ToLower(strings.TrimSpace(r.Header.Get("Accept-Language")))
	if strings.HasPrefix(al, validator.LangES) {
		return validator.LangES
	}
	return validator.LangEN
}
