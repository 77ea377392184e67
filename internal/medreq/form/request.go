package form

import (
	"context"
	"fmt"
	"strings"

	"github.com/kart-io/medreq/internal/model"
	errno "github.com/kart-io/medreq/pkg/errors"
)

// Mode selects whether a RequestForm creates or displays a request.
type Mode int

const (
	// ModeCreate starts empty and submits to the API.
	ModeCreate Mode = iota
	// ModeView shows an existing request read-only.
	ModeView
)

func (m Mode) String() string {
	if m == ModeView {
		return "view"
	}
	return "create"
}

// RequestAPI is what the request form needs from the API client.
type RequestAPI interface {
	ListMedicines(ctx context.Context) ([]model.Medicine, error)
	CreateRequest(ctx context.Context, payload model.CreateRequestPayload) (*model.Request, error)
}

// RequestFields are the four extended fields required for NO POS medicines.
type RequestFields struct {
	OrderNumber string
	Address     string
	Phone       string
	Email       string
}

func (f RequestFields) anyBlank() bool {
	return strings.TrimSpace(f.OrderNumber) == "" ||
		strings.TrimSpace(f.Address) == "" ||
		strings.TrimSpace(f.Phone) == "" ||
		strings.TrimSpace(f.Email) == ""
}

// RequestForm is the create/view form of a medical-supply request.
type RequestForm struct {
	api       RequestAPI
	mode      Mode
	open      bool
	onSuccess func()

	medicines  []model.Medicine
	medicineID uint64
	medicine   model.Medicine
	isNoPos    bool
	fields     RequestFields
}

// NewCreateForm returns an open, empty form. onSuccess runs after a
// successful submission and may be nil.
func NewCreateForm(api RequestAPI, onSuccess func()) *RequestForm {
	return &RequestForm{api: api, mode: ModeCreate, open: true, onSuccess: onSuccess}
}

// NewViewForm returns an open, read-only form populated from req.
func NewViewForm(req model.Request) *RequestForm {
	return &RequestForm{
		mode:       ModeView,
		open:       true,
		medicineID: req.Medicine.ID,
		medicine:   req.Medicine,
		isNoPos:    req.Medicine.IsNoPos,
		fields: RequestFields{
			OrderNumber: model.Deref(req.OrderNumber),
			Address:     model.Deref(req.Address),
			Phone:       model.Deref(req.Phone),
			Email:       model.Deref(req.Email),
		},
	}
}

// Mode returns the form mode.
func (f *RequestForm) Mode() Mode { return f.mode }

// IsOpen reports whether the form is still open.
func (f *RequestForm) IsOpen() bool { return f.open }

// Close closes the form. Always allowed.
func (f *RequestForm) Close() { f.open = false }

// LoadMedicines fetches the medicine catalogue for the selector.
func (f *RequestForm) LoadMedicines(ctx context.Context) error {
	if f.mode == ModeView {
		return nil
	}
	list, err := f.api.ListMedicines(ctx)
	if err != nil {
		return err
	}
	f.medicines = list
	return nil
}

// Medicines returns the loaded catalogue.
func (f *RequestForm) Medicines() []model.Medicine { return f.medicines }

// Medicine returns the selected medicine, zero when none.
func (f *RequestForm) Medicine() model.Medicine { return f.medicine }

// Fields returns the current extended field values.
func (f *RequestForm) Fields() RequestFields { return f.fields }

// ExtendedFieldsVisible reports whether the NO POS fields apply.
func (f *RequestForm) ExtendedFieldsVisible() bool { return f.isNoPos }

func (f *RequestForm) writable() error {
	if f.mode == ModeView {
		return errno.ErrReadOnly
	}
	if !f.open {
		return errno.ErrFormClosed
	}
	return nil
}

// SelectMedicine selects a medicine from the loaded catalogue and toggles the
// extended fields according to its NO POS flag.
func (f *RequestForm) SelectMedicine(id uint64) error {
	if err := f.writable(); err != nil {
		return err
	}
	m, ok := model.FindMedicine(f.medicines, id)
	if !ok {
		return errno.ErrUnknownMedicine.WithMessages(
			fmt.Sprintf("unknown medicine %d", id),
			fmt.Sprintf("medicamento desconocido %d", id),
		)
	}
	f.medicineID = m.ID
	f.medicine = m
	f.isNoPos = m.IsNoPos
	return nil
}

// SetFields replaces the extended field values.
func (f *RequestForm) SetFields(fields RequestFields) error {
	if err := f.writable(); err != nil {
		return err
	}
	f.fields = fields
	return nil
}

// Validate checks the form without touching the network.
func (f *RequestForm) Validate() error {
	if f.medicineID == 0 {
		return invalid(MsgSelectMedicine)
	}
	if f.isNoPos && f.fields.anyBlank() {
		return invalid(MsgCompleteRequired)
	}
	return nil
}

// Payload builds the request body. Extended fields are sent as typed, or as
// explicit nulls when the medicine is not NO POS.
func (f *RequestForm) Payload() model.CreateRequestPayload {
	p := model.CreateRequestPayload{MedicineID: f.medicineID}
	if f.isNoPos {
		p.OrderNumber = model.StringPtr(f.fields.OrderNumber)
		p.Address = model.StringPtr(f.fields.Address)
		p.Phone = model.StringPtr(f.fields.Phone)
		p.Email = model.StringPtr(f.fields.Email)
	}
	return p
}

// Submit validates and posts the request. On success the form is cleared,
// onSuccess runs and the form closes. On failure the form stays open.
func (f *RequestForm) Submit(ctx context.Context) (*model.Request, error) {
	if err := f.writable(); err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	created, err := f.api.CreateRequest(ctx, f.Payload())
	if err != nil {
		return nil, err
	}

	f.reset()
	if f.onSuccess != nil {
		f.onSuccess()
	}
	f.Close()
	return created, nil
}

func (f *RequestForm) reset() {
	f.medicineID = 0
	f.medicine = model.Medicine{}
	f.isNoPos = false
	f.fields = RequestFields{}
}
