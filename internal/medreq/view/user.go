package view

import (
	"context"
	"io"

	"github.com/kart-io/medreq/internal/medreq/form"
	"github.com/kart-io/medreq/internal/model"
)

// UserView shows and edits a user record.
type UserView struct {
	api    form.UserAPI
	notify *Notifier
	out    io.Writer
}

// NewUserView builds a UserView.
func NewUserView(api form.UserAPI, notify *Notifier, out io.Writer) *UserView {
	return &UserView{api: api, notify: notify, out: out}
}

// Show fetches and prints a user.
func (v *UserView) Show(ctx context.Context, id uint64) (*model.User, error) {
	u, err := v.api.GetUser(ctx, id)
	if err != nil {
		return nil, v.notify.Fail(err, form.MsgUserLoadFailed)
	}
	RenderUser(v.out, *u)
	return u, nil
}

// Update loads the user, applies the non-empty changes and saves.
func (v *UserView) Update(ctx context.Context, id uint64, name, email string) error {
	f := form.NewUserForm(v.api, id, v.notify.Lang(), nil)
	if err := f.Load(ctx); err != nil {
		return v.notify.Fail(err, form.MsgUserLoadFailed)
	}
	if name != "" {
		f.Name = name
	}
	if email != "" {
		f.Email = email
	}

	if _, err := f.Submit(ctx); err != nil {
		v.notify.Fail(err, form.MsgUserSaveFailed)
		v.notify.FieldErrors(f.Errors())
		return err
	}
	v.notify.SuccessText(f.SuccessMessage())
	return nil
}
