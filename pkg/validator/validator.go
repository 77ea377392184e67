// Package validator wraps go-playground/validator with English and Spanish
// translations and the custom rules used by the medreq payloads.
//
// Field names in messages are the JSON names, so a failure on
// RegisterRequest.PasswordConfirmation is reported under
// "password_confirmation", the key the API and the forms use.
package validator

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"
	estrans "github.com/go-playground/validator/v10/translations/es"
)

// Supported message languages.
const (
	LangEN = "en"
	LangES = "es"
)

// Validator validates payload structs and translates the failures.
type Validator struct {
	validate *validator.Validate
	trans    map[string]ut.Translator
}

var (
	global     *Validator
	globalOnce sync.Once
)

// Global returns the shared validator, built on first use.
func Global() *Validator {
	globalOnce.Do(func() { global = New() })
	return global
}

// New builds a validator with both languages and the custom rules.
func New() *Validator {
	v := &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		trans:    make(map[string]ut.Translator, 2),
	}
	v.validate.RegisterTagNameFunc(jsonName)

	uni := ut.New(en.New(), en.New(), es.New())
	enT, _ := uni.GetTranslator(LangEN)
	esT, _ := uni.GetTranslator(LangES)
	_ = entrans.RegisterDefaultTranslations(v.validate, enT)
	_ = estrans.RegisterDefaultTranslations(v.validate, esT)
	v.trans[LangEN] = enT
	v.trans[LangES] = esT

	v.registerCustomRules()
	return v
}

// jsonName reports struct fields by their JSON key.
func jsonName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}

// Validate returns the raw go-playground error, nil when s is valid.
func (v *Validator) Validate(s interface{}) error {
	return v.validate.Struct(s)
}

// ValidateWithLang validates s and returns the failures translated to lang,
// or nil when s is valid.
func (v *Validator) ValidateWithLang(s interface{}, lang string) *ValidationErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fes validator.ValidationErrors
	if !errors.As(err, &fes) {
		return NewValidationError("", "invalid", err.Error())
	}

	trans := v.translator(lang)
	out := &ValidationErrors{Errors: make([]FieldError, 0, len(fes))}
	for _, fe := range fes {
		out.Append(fe.Field(), fe.Tag(), fe.Translate(trans))
	}
	return out
}

// ValidateVar validates a single value against tag.
func (v *Validator) ValidateVar(field interface{}, tag string) error {
	return v.validate.Var(field, tag)
}

// translator maps "es", "es-CO" or "es_CO" to Spanish and anything else to
// English.
func (v *Validator) translator(lang string) ut.Translator {
	base := strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(base, "-_,;"); i >= 0 {
		base = base[:i]
	}
	if t, ok := v.trans[base]; ok {
		return t
	}
	return v.trans[LangEN]
}

// registerRule adds a rule and its message in every language. The message
// gets the field name as {0}.
func (v *Validator) registerRule(tag string, fn validator.Func, messages map[string]string) error {
	if err := v.validate.RegisterValidation(tag, fn); err != nil {
		return err
	}
	for lang, msg := range messages {
		trans, ok := v.trans[lang]
		if !ok {
			continue
		}
		_ = v.validate.RegisterTranslation(tag, trans,
			func(t ut.Translator) error { return t.Add(tag, msg, true) },
			func(t ut.Translator, fe validator.FieldError) string {
				s, _ := t.T(tag, fe.Field())
				return s
			},
		)
	}
	return nil
}

// Struct validates s with the global validator.
func Struct(s interface{}) error {
	return Global().Validate(s)
}

// StructWithLang validates s with the global validator.
func StructWithLang(s interface{}, lang string) *ValidationErrors {
	return Global().ValidateWithLang(s, lang)
}

// Var validates a single value with the global validator.
func Var(field interface{}, tag string) error {
	return Global().ValidateVar(field, tag)
}
