package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeCode(t *testing.T) {
	tests := []struct {
		module   int
		category int
		sequence int
		expected int
	}{
		{0, 0, 0, 0},
		{0, 1, 1, 1001},
		{0, 2, 0, 2000},
		{20, 8, 0, 2008000},
		{30, 5, 0, 3005000},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_%d_%d", tt.module, tt.category, tt.sequence), func(t *testing.T) {
			assert.Equal(t, tt.expected, MakeCode(tt.module, tt.category, tt.sequence))

			m, c, s := ParseCode(tt.expected)
			assert.Equal(t, tt.module, m)
			assert.Equal(t, tt.category, c)
			assert.Equal(t, tt.sequence, s)
		})
	}
}

func TestErrno_IsMatchesCopies(t *testing.T) {
	err := ErrValidation.WithMessage("seleccione un medicamento")

	assert.True(t, stderrors.Is(err, ErrValidation))
	assert.False(t, stderrors.Is(err, ErrNotFound))
	assert.Equal(t, "seleccione un medicamento", err.MessageEN)
	// 原始实例不应被修改
	assert.Equal(t, "Validation failed", ErrValidation.MessageEN)
}

func TestErrno_WithCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := ErrSessionStore.WithCause(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, ErrSessionStore.Code, GetCode(fmt.Errorf("wrapped: %w", err)))
}

func TestErrno_Message(t *testing.T) {
	assert.Equal(t, "Form is read-only", ErrReadOnly.Message("en"))
	assert.Equal(t, "Formulario de solo lectura", ErrReadOnly.Message("es"))
	assert.Equal(t, "x", ErrReadOnly.WithMessages("x", "").Message("es"))
	assert.Equal(t, "Formulario de solo lectura", ErrReadOnly.Message("es-MX"))
	assert.Equal(t, "Form is read-only", ErrReadOnly.Message("en-US"))
}

func TestErrno_WithMessageDropsStaleSpanish(t *testing.T) {
	err := ErrUnknownMedicine.WithMessagef("unknown medicine %d", 9)
	assert.Equal(t, "unknown medicine 9", err.Message("es"))
	assert.NotEmpty(t, ErrUnknownMedicine.MessageES)
}

func TestIsSpanish(t *testing.T) {
	for lang, want := range map[string]bool{
		"es": true, "ES": true, "es-MX": true, "es_CO": true, " es-ES ": true,
		"": false, "e": false, "en": false, "est": false, "en-ES": false,
	} {
		assert.Equal(t, want, IsSpanish(lang), lang)
	}
}

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil))
	assert.Same(t, ErrNotFound, FromError(ErrNotFound))

	e := FromError(stderrors.New("boom"))
	assert.Equal(t, ErrInternal.Code, e.Code)
	assert.Equal(t, http.StatusInternalServerError, e.HTTPStatus())
	assert.Equal(t, -1, GetCode(stderrors.New("plain")))
}

func TestRegister_DuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		Register(&Errno{Code: ErrValidation.Code, MessageEN: "dup"})
	})

	_, ok := Lookup(ErrEmailTaken.Code)
	assert.True(t, ok)
	assert.Contains(t, Codes(), ErrTransport.Code)
}
