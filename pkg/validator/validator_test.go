package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerPayload struct {
	Name                 string `json:"name" validate:"notblank"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required"`
	PasswordConfirmation string `json:"password_confirmation" validate:"eqfield=Password"`
}

type orderPayload struct {
	OrderNumber string `json:"order_number" validate:"docref"`
}

func TestValidateWithLang_UsesJSONNames(t *testing.T) {
	v := New()

	errs := v.ValidateWithLang(registerPayload{
		Name:                 "   ",
		Email:                "not-an-email",
		Password:             "x",
		PasswordConfirmation: "y",
	}, LangEN)
	require.NotNil(t, errs)
	assert.True(t, errs.HasErrors())

	byField := errs.ByField()
	assert.Contains(t, byField, "name")
	assert.Contains(t, byField, "email")
	assert.Contains(t, byField, "password_confirmation")
	assert.NotContains(t, byField, "password")
	assert.Equal(t, "name must not be blank", byField["name"][0])
}

func TestValidateWithLang_Spanish(t *testing.T) {
	v := New()

	errs := v.ValidateWithLang(registerPayload{Name: "", Email: "a@b.com", Password: "x", PasswordConfirmation: "x"}, "es-CO")
	require.NotNil(t, errs)
	assert.Equal(t, "name no puede estar en blanco", errs.First())
}

func TestValidate_Valid(t *testing.T) {
	assert.NoError(t, Struct(registerPayload{
		Name:                 "Ana",
		Email:                "a@b.com",
		Password:             "secret",
		PasswordConfirmation: "secret",
	}))
	assert.Nil(t, StructWithLang(orderPayload{OrderNumber: "ORD-1/2"}, LangEN))
}

func TestDocRef(t *testing.T) {
	tests := []struct {
		value string
		ok    bool
	}{
		{"", true},
		{"ORD-123", true},
		{"12/2024", true},
		{"ORD_123", false},
		{"<script>", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			errs := StructWithLang(orderPayload{OrderNumber: tt.value}, LangES)
			assert.Equal(t, !tt.ok, errs.HasErrors())
		})
	}
}

func TestValidationErrors_Helpers(t *testing.T) {
	var nilErrs *ValidationErrors
	assert.False(t, nilErrs.HasErrors())
	assert.Equal(t, "", nilErrs.First())
	assert.Nil(t, nilErrs.ByField())

	errs := NewValidationErrors()
	errs.Append("email", "unique", "The email has already been taken.")
	assert.Equal(t, "validation failed: The email has already been taken.", errs.Error())
	assert.Equal(t, map[string][]string{"email": {"The email has already been taken."}}, errs.ByField())

	errs.Append("address", "required_if", "required")
	assert.Equal(t, []string{"address", "email"}, errs.Fields())
	assert.Empty(t, nilErrs.Fields())
}

func TestTranslator_LanguageTags(t *testing.T) {
	v := New()
	p := registerPayload{Email: "a@b.com", Password: "x", PasswordConfirmation: "x"}

	for _, lang := range []string{"", "en", "fr", "en-US,en;q=0.9"} {
		assert.Equal(t, "name must not be blank", v.ValidateWithLang(p, lang).First(), lang)
	}
	for _, lang := range []string{"es", "ES", "es_CO", "es-ES,es;q=0.9"} {
		assert.Equal(t, "name no puede estar en blanco", v.ValidateWithLang(p, lang).First(), lang)
	}
}
