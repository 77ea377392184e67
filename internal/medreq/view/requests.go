package view

import (
	"context"
	"fmt"
	"io"

	"github.com/kart-io/medreq/internal/medreq/form"
	"github.com/kart-io/medreq/internal/medreq/pager"
	"github.com/kart-io/medreq/internal/model"
	"github.com/kart-io/medreq/pkg/client"
	errno "github.com/kart-io/medreq/pkg/errors"
	"github.com/kart-io/medreq/pkg/session"
)

// RequestsView lists the signed-in user's requests and hosts the request form.
type RequestsView struct {
	api    client.API
	store  *session.Store
	notify *Notifier
	out    io.Writer

	user  model.User
	pager *pager.Pager
}

// NewRequestsView builds a RequestsView writing tables to out.
func NewRequestsView(api client.API, store *session.Store, notify *Notifier, out io.Writer) *RequestsView {
	v := &RequestsView{api: api, store: store, notify: notify, out: out}
	v.pager = pager.New(func(ctx context.Context, page int) (*model.RequestPage, error) {
		return v.api.ListRequests(ctx, page, v.user.ID)
	})
	return v
}

// User returns the user the list belongs to.
func (v *RequestsView) User() model.User { return v.user }

// Pager exposes the pagination state.
func (v *RequestsView) Pager() *pager.Pager { return v.pager }

// Mount reads the stored user and loads page 1 of their requests.
func (v *RequestsView) Mount(ctx context.Context) error {
	return v.MountAt(ctx, 1)
}

// MountAt is Mount starting on the given page.
func (v *RequestsView) MountAt(ctx context.Context, page int) error {
	sess, ok, err := v.store.Get(ctx)
	if err != nil {
		return v.notify.Fail(err, form.MsgRequestsFailed)
	}
	if !ok {
		return v.notify.Fail(errno.ErrNotAuthenticated, form.MsgRequestsFailed)
	}
	v.user = sess.User
	return v.Load(ctx, page)
}

// Load fetches page regardless of the current position.
func (v *RequestsView) Load(ctx context.Context, page int) error {
	if err := v.pager.Load(ctx, page); err != nil {
		return v.notify.Fail(err, form.MsgRequestsFailed)
	}
	return nil
}

// Goto moves to page when allowed. It reports whether the list changed.
func (v *RequestsView) Goto(ctx context.Context, page int) (bool, error) {
	fetched, err := v.pager.Goto(ctx, page)
	if err != nil {
		return false, v.notify.Fail(err, form.MsgRequestsFailed)
	}
	return fetched, nil
}

// Next moves one page forward when allowed.
func (v *RequestsView) Next(ctx context.Context) (bool, error) {
	return v.Goto(ctx, v.pager.Current()+1)
}

// Prev moves one page back when allowed.
func (v *RequestsView) Prev(ctx context.Context) (bool, error) {
	return v.Goto(ctx, v.pager.Current()-1)
}

// Refresh reloads the current page.
func (v *RequestsView) Refresh(ctx context.Context) error {
	return v.Load(ctx, v.pager.Current())
}

// Render prints the current page with navigation hints.
func (v *RequestsView) Render() {
	if v.user.Name != "" {
		_, _ = fmt.Fprintf(v.out, "Requests of %s\n", v.user.Name)
	}
	RenderRequestPage(v.out, v.pager.Page(), v.notify.Lang())

	prev, next := "[p] prev", "[n] next"
	if !v.pager.CanPrev() {
		prev = "(prev)"
	}
	if !v.pager.CanNext() {
		next = "(next)"
	}
	_, _ = fmt.Fprintf(v.out, "%s  %s\n", prev, next)
}

// Show opens the request with the given row number in view mode.
func (v *RequestsView) Show(row int) (*form.RequestForm, error) {
	req, ok := v.pager.Row(row)
	if !ok {
		return nil, v.notify.Fail(errno.ErrNotFound.WithMessagef("no row %d on this page", row), form.MsgRequestsFailed)
	}
	f := form.NewViewForm(req)
	RenderRequestForm(v.out, f, v.notify.Lang())
	return f, nil
}

// NewRequest opens a create form with the medicine catalogue loaded. After a
// successful submission the current page is fetched again.
func (v *RequestsView) NewRequest(ctx context.Context) (*form.RequestForm, error) {
	f := form.NewCreateForm(v.api, func() {
		_ = v.Refresh(ctx)
	})
	if err := f.LoadMedicines(ctx); err != nil {
		return f, v.notify.Fail(err, form.MsgMedicinesFailed)
	}
	return f, nil
}

// Create fills and submits a new request.
func (v *RequestsView) Create(ctx context.Context, medicineID uint64, fields form.RequestFields) (*model.Request, error) {
	f, err := v.NewRequest(ctx)
	if err != nil {
		return nil, err
	}
	if medicineID != 0 {
		if err := f.SelectMedicine(medicineID); err != nil {
			return nil, v.notify.Fail(err, form.MsgRequestSaveFailed)
		}
	}
	if err := f.SetFields(fields); err != nil {
		return nil, v.notify.Fail(err, form.MsgRequestSaveFailed)
	}

	created, err := f.Submit(ctx)
	if err != nil {
		return nil, v.notify.Fail(err, form.MsgRequestSaveFailed)
	}
	v.notify.Success(form.MsgRequestSaved)
	return created, nil
}
