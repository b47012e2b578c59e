package domain

import (
	"errors"
	"time"
)

var ErrEmployeeNotFound = errors.New("employee not found")
var ErrDuplicateEmail = errors.New("employee with this email already exists")

// Employee is the core aggregate of the directory. Records are never removed:
// deletion flips IsActive to false and the document is retained.
type Employee struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Age        int       `json:"age"`
	Position   string    `json:"position"`
	Department string    `json:"department"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Salary     float64   `json:"salary"`
	JoinDate   time.Time `json:"join_date"`
	Subjects   []string  `json:"subjects"`
	Attendance float64   `json:"attendance"`
	Bio        string    `json:"bio,omitempty"`
	IsActive   bool      `json:"is_active"`
	CreatedBy  string    `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// OwnedBy reports whether the record was created by the given user.
func (e *Employee) OwnedBy(userID string) bool {
	return e.CreatedBy != "" && e.CreatedBy == userID
}
