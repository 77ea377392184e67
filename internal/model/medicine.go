package model

// Medicine is read-only reference data. IsNoPos marks medicines outside the
// basic benefits plan, which require the extended delivery fields.
type Medicine struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	IsNoPos bool   `json:"is_no_pos"`
}

// FindMedicine returns the medicine with the given id.
func FindMedicine(list []Medicine, id uint64) (Medicine, bool) {
	for _, m := range list {
		if m.ID == id {
			return m, true
		}
	}
	return Medicine{}, false
}
