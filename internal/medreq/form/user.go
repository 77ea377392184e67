package form

import (
	"context"
	"strings"

	"github.com/kart-io/medreq/internal/model"
	errno "github.com/kart-io/medreq/pkg/errors"
	"github.com/kart-io/medreq/pkg/validator"
)

// UserAPI is what the user form needs from the API client.
type UserAPI interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.RegisterResponse, error)
	GetUser(ctx context.Context, id uint64) (*model.User, error)
	UpdateUser(ctx context.Context, id uint64, req model.UpdateUserRequest) (*model.User, error)
}

// FieldErrors maps a field (json name) to its message.
type FieldErrors map[string]string

// UserForm registers a new user, or edits an existing one when created with a
// non-zero user id.
type UserForm struct {
	api       UserAPI
	userID    uint64
	lang      string
	onSuccess func()
	open      bool

	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string

	errors FieldErrors
}

// userInput 编辑模式只校验姓名与邮箱
type userInput struct {
	Name  string `json:"name" validate:"notblank"`
	Email string `json:"email" validate:"notblank"`
}

type registerInput struct {
	Name                 string `json:"name" validate:"notblank"`
	Email                string `json:"email" validate:"notblank"`
	Password             string `json:"password" validate:"notblank"`
	PasswordConfirmation string `json:"password_confirmation" validate:"eqfield=Password"`
}

// NewUserForm returns an open form. userID 0 means registration.
func NewUserForm(api UserAPI, userID uint64, lang string, onSuccess func()) *UserForm {
	return &UserForm{api: api, userID: userID, lang: lang, onSuccess: onSuccess, open: true}
}

// Editing reports whether the form edits an existing user.
func (f *UserForm) Editing() bool { return f.userID != 0 }

// IsOpen reports whether the form is still open.
func (f *UserForm) IsOpen() bool { return f.open }

// Close closes the form.
func (f *UserForm) Close() { f.open = false }

// Errors returns the field errors of the last validation.
func (f *UserForm) Errors() FieldErrors { return f.errors }

// Load fills name and email from the API in edit mode and clears the
// password fields. In create mode it only resets the form.
func (f *UserForm) Load(ctx context.Context) error {
	f.Password, f.PasswordConfirmation = "", ""
	f.errors = nil
	if !f.Editing() {
		f.Name, f.Email = "", ""
		return nil
	}

	u, err := f.api.GetUser(ctx, f.userID)
	if err != nil {
		return err
	}
	f.Name, f.Email = u.Name, u.Email
	return nil
}

// Validate checks the fields without touching the network.
func (f *UserForm) Validate() error {
	var input interface{} = userInput{Name: f.Name, Email: f.Email}
	if !f.Editing() {
		input = registerInput{
			Name:                 f.Name,
			Email:                f.Email,
			Password:             f.Password,
			PasswordConfirmation: f.PasswordConfirmation,
		}
	}

	f.errors = nil
	verrs := validator.StructWithLang(input, f.lang)
	if !verrs.HasErrors() {
		return nil
	}

	f.errors = make(FieldErrors, len(verrs.Errors))
	for _, fe := range verrs.Errors {
		msg := fe.Message
		switch {
		case fe.Field == "password_confirmation":
			msg = Text(MsgPasswordMatch, f.lang)
		case fe.Field == "password" && strings.TrimSpace(f.Password) == "":
			msg = Text(MsgPasswordMissing, f.lang)
		}
		f.errors[fe.Field] = msg
	}
	return invalid(MsgCheckFields)
}

// Submit validates and saves the user. The register response is returned in
// create mode and nil in edit mode.
func (f *UserForm) Submit(ctx context.Context) (*model.RegisterResponse, error) {
	if !f.open {
		return nil, errno.ErrFormClosed
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	var resp *model.RegisterResponse
	if f.Editing() {
		if _, err := f.api.UpdateUser(ctx, f.userID, model.UpdateUserRequest{Name: f.Name, Email: f.Email}); err != nil {
			return nil, err
		}
	} else {
		r, err := f.api.Register(ctx, model.RegisterRequest{
			Name:                 f.Name,
			Email:                f.Email,
			Password:             f.Password,
			PasswordConfirmation: f.PasswordConfirmation,
		})
		if err != nil {
			return nil, err
		}
		resp = r
	}

	if f.onSuccess != nil {
		f.onSuccess()
	}
	f.Close()
	return resp, nil
}

// SuccessMessage returns the notification for a successful Submit.
func (f *UserForm) SuccessMessage() string {
	if f.Editing() {
		return Text(MsgUserUpdated, f.lang)
	}
	return Text(MsgUserCreated, f.lang)
}
