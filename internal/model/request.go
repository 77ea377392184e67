package model

import "time"

// DefaultPerPage is assumed when the list envelope omits per_page.
const DefaultPerPage = 10

// Request is a medical-supply request. The extended fields are only set for
// NO POS medicines.
type Request struct {
	ID          uint64     `json:"id"`
	UserID      uint64     `json:"user_id,omitempty"`
	Medicine    Medicine   `json:"medicine"`
	OrderNumber *string    `json:"order_number"`
	Address     *string    `json:"address"`
	Phone       *string    `json:"phone"`
	Email       *string    `json:"email"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// CreateRequestPayload is the body of POST /requests. The four extended
// fields are always serialized, as null when not applicable.
type CreateRequestPayload struct {
	MedicineID  uint64  `json:"medicine_id"`
	OrderNumber *string `json:"order_number"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
}

// RequestPage is the paginated list envelope of GET /requests.
type RequestPage struct {
	Data        []Request `json:"data"`
	CurrentPage int       `json:"current_page"`
	LastPage    int       `json:"last_page"`
	Total       int       `json:"total"`
	PerPage     int       `json:"per_page,omitempty"`
}

// PageSize returns per_page, or DefaultPerPage when the server omitted it.
func (p RequestPage) PageSize() int {
	if p.PerPage > 0 {
		return p.PerPage
	}
	return DefaultPerPage
}

// RowNumber returns the 1-based display number of the i-th row on the page.
func (p RequestPage) RowNumber(i int) int {
	cur := p.CurrentPage
	if cur < 1 {
		cur = 1
	}
	return (cur-1)*p.PageSize() + i + 1
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// Deref returns the pointed-to string or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
