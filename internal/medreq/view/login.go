package view

import (
	"context"
	"errors"

	"github.com/kart-io/medreq/internal/medreq/form"
	"github.com/kart-io/medreq/internal/model"
	"github.com/kart-io/medreq/pkg/client"
	"github.com/kart-io/medreq/pkg/guard"
	"github.com/kart-io/medreq/pkg/session"
)

// LoginView signs the user in.
type LoginView struct {
	api    client.API
	store  *session.Store
	guard  *guard.Guard
	notify *Notifier

	current *model.User
}

// NewLoginView builds a LoginView.
func NewLoginView(api client.API, store *session.Store, notify *Notifier) *LoginView {
	return &LoginView{api: api, store: store, guard: guard.New(store), notify: notify}
}

// Credentials supplies the email and password. It is only called when no
// session is stored.
type Credentials func() (email, password string, err error)

// Submit logs in and returns the route to navigate to next. An existing
// session short-circuits to the requests route without calling the API.
func (v *LoginView) Submit(ctx context.Context, email, password string) (string, error) {
	return v.SubmitWith(ctx, func() (string, string, error) { return email, password, nil })
}

// SubmitWith is Submit with lazily read credentials, so nothing is asked for
// when the guard redirects.
func (v *LoginView) SubmitWith(ctx context.Context, creds Credentials) (string, error) {
	v.current = nil
	err := v.guard.PublicOnly(ctx, func(ctx context.Context) error {
		email, password, err := creds()
		if err != nil {
			return err
		}
		f := form.NewLoginForm(v.api, v.store, v.notify.Lang())
		f.Email, f.Password = email, password
		if _, err := f.Submit(ctx); err != nil {
			v.notify.Fail(err, form.MsgLoginFailed)
			v.notify.FieldErrors(f.Errors())
			return err
		}
		v.notify.Success(form.MsgLoginOK)
		return nil
	})

	var re *guard.RedirectError
	if errors.As(err, &re) {
		// 跳转时记下当前用户，供调用方展示
		if sess, ok, gerr := v.store.Get(ctx); gerr == nil && ok {
			v.current = &sess.User
		}
		return re.Route, nil
	}
	if err != nil {
		return guard.RouteLogin, err
	}
	return guard.RouteRequests, nil
}

// SignedInAs returns the stored user when the last submit was redirected
// because a session already existed.
func (v *LoginView) SignedInAs() (model.User, bool) {
	if v.current == nil {
		return model.User{}, false
	}
	return *v.current, true
}

// Logout clears token and user and returns the login route.
func (v *LoginView) Logout(ctx context.Context) (string, error) {
	if err := v.store.Clear(ctx); err != nil {
		return "", v.notify.Fail(err, form.MsgLoggedOut)
	}
	v.notify.Success(form.MsgLoggedOut)
	return guard.RouteLogin, nil
}

// Register creates a user. When the backend also returns a token, the new
// session is stored.
func (v *LoginView) Register(ctx context.Context, f *form.UserForm) (bool, error) {
	resp, err := f.Submit(ctx)
	if err != nil {
		v.notify.Fail(err, form.MsgUserSaveFailed)
		v.notify.FieldErrors(f.Errors())
		return false, err
	}
	v.notify.SuccessText(f.SuccessMessage())

	if resp == nil || resp.Token == "" {
		return false, nil
	}
	user := model.User{Name: f.Name, Email: f.Email}
	if resp.User != nil {
		user = *resp.User
	}
	if err := v.store.Set(ctx, model.Session{Token: resp.Token, User: user}); err != nil {
		return false, v.notify.Fail(err, form.MsgUserSaveFailed)
	}
	return true, nil
}
