// Package model defines the database models of the reference server and
// their conversion to the API types.
package model

import (
	"time"

	api "github.com/kart-io/medreq/internal/model"
)

// User represents the user model in the database.
type User struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement;comment:用户ID"`
	Name      string    `gorm:"size:255;not null;comment:姓名"`
	Email     string    `gorm:"size:255;not null;uniqueIndex:uk_email;comment:邮箱"`
	Password  string    `gorm:"size:255;not null;comment:密码Hash"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName returns the table name for GORM.
func (u *User) TableName() string {
	return "users"
}

// API converts the row to its wire form. The password hash never leaves.
func (u *User) API() api.User {
	return api.User{ID: u.ID, Name: u.Name, Email: u.Email}
}

// Medicine is the catalogue entry.
type Medicine struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"size:255;not null;uniqueIndex:uk_medicine_name"`
	IsNoPos   bool      `gorm:"column:is_no_pos;not null;default:false;comment:是否为NO POS药品"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
}

// TableName returns the table name for GORM.
func (m *Medicine) TableName() string {
	return "medicines"
}

// API converts the row to its wire form.
func (m *Medicine) API() api.Medicine {
	return api.Medicine{ID: m.ID, Name: m.Name, IsNoPos: m.IsNoPos}
}

// Request is a medical-supply request. The four delivery columns are NULL
// unless the medicine is NO POS.
type Request struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	UserID      uint64    `gorm:"not null;index:idx_user_created,priority:1"`
	MedicineID  uint64    `gorm:"not null"`
	Medicine    Medicine  `gorm:"foreignKey:MedicineID"`
	OrderNumber *string   `gorm:"size:100"`
	Address     *string   `gorm:"size:255"`
	Phone       *string   `gorm:"size:50"`
	Email       *string   `gorm:"size:255"`
	CreatedAt   time.Time `gorm:"index:idx_user_created,priority:2"`
}

// TableName returns the table name for GORM.
func (r *Request) TableName() string {
	return "requests"
}

// API converts the row to its wire form.
func (r *Request) API() api.Request {
	created := r.CreatedAt
	return api.Request{
		ID:          r.ID,
		UserID:      r.UserID,
		Medicine:    r.Medicine.API(),
		OrderNumber: r.OrderNumber,
		Address:     r.Address,
		Phone:       r.Phone,
		Email:       r.Email,
		CreatedAt:   &created,
	}
}

// All lists the models to migrate, in dependency order.
func All() []interface{} {
	return []interface{}{&User{}, &Medicine{}, &Request{}}
}
