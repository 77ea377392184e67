package form

import (
	"context"

	"github.com/kart-io/medreq/internal/model"
	"github.com/kart-io/medreq/pkg/validator"
)

// LoginAPI is what the login form needs from the API client.
type LoginAPI interface {
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
}

// SessionWriter persists a session after login.
type SessionWriter interface {
	Set(ctx context.Context, sess model.Session) error
}

// LoginForm exchanges credentials for a session.
type LoginForm struct {
	api   LoginAPI
	store SessionWriter
	lang  string

	Email    string
	Password string

	errors FieldErrors
}

// NewLoginForm returns an empty login form with field messages in lang.
func NewLoginForm(api LoginAPI, store SessionWriter, lang string) *LoginForm {
	return &LoginForm{api: api, store: store, lang: lang}
}

// Errors returns the field errors of the last validation.
func (f *LoginForm) Errors() FieldErrors { return f.errors }

// Validate requires both fields to be non-blank.
func (f *LoginForm) Validate() error {
	f.errors = nil
	verrs := validator.StructWithLang(model.LoginRequest{Email: f.Email, Password: f.Password}, f.lang)
	if !verrs.HasErrors() {
		return nil
	}
	f.errors = make(FieldErrors, len(verrs.Errors))
	for _, fe := range verrs.Errors {
		f.errors[fe.Field] = fe.Message
	}
	return invalid(MsgCredentialsReq)
}

// Submit logs in and persists token and user.
func (f *LoginForm) Submit(ctx context.Context) (model.Session, error) {
	if err := f.Validate(); err != nil {
		return model.Session{}, err
	}

	resp, err := f.api.Login(ctx, model.LoginRequest{Email: f.Email, Password: f.Password})
	if err != nil {
		return model.Session{}, err
	}

	sess := model.Session{Token: resp.Token, User: resp.User}
	if err := f.store.Set(ctx, sess); err != nil {
		return model.Session{}, err
	}
	return sess, nil
}
