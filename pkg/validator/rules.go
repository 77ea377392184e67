package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// 自定义规则: tag -> 各语言提示
var customRules = []struct {
	tag          string
	fn           validator.Func
	translations map[string]string
}{
	{
		tag: "notblank",
		fn:  validators.NotBlank,
		translations: map[string]string{
			LangEN: "{0} must not be blank",
			LangES: "{0} no puede estar en blanco",
		},
	},
	{
		// 订单号等字段: 仅允许字母、数字、"-" 与 "/"
		tag: "docref",
		fn:  isDocRef,
		translations: map[string]string{
			LangEN: "{0} may only contain letters, digits, '-' and '/'",
			LangES: "{0} solo puede contener letras, dígitos, '-' y '/'",
		},
	},
}

func (v *Validator) registerCustomRules() {
	for _, r := range customRules {
		_ = v.registerRule(r.tag, r.fn, r.translations)
	}
}

func isDocRef(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	if s == "" {
		return true
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c == '-' || c == '/' || c == ' ':
		default:
			return false
		}
	}
	return true
}
