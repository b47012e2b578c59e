package ports

import (
	"context"
	"time"

	"github.com/staffdesk/employee-api/internal/core/domain"
)

// CreateEmployeeInput carries all data needed to create an employee record.
type CreateEmployeeInput struct {
	Name       string    `validate:"required"`
	Age        int       `validate:"gte=18,lte=100"`
	Position   string    `validate:"required"`
	Department string    `validate:"required"`
	Email      string    `validate:"required,email"`
	Phone      string    `validate:"required"`
	Salary     float64   `validate:"gte=0"`
	JoinDate   time.Time `validate:"required"`
	Subjects   []string
	Attendance float64 `validate:"gte=0,lte=100"`
	Bio        string
}

// UpdateEmployeeInput is a partial update: nil fields retain prior values.
type UpdateEmployeeInput struct {
	Name       *string
	Age        *int
	Position   *string
	Department *string
	Email      *string
	Phone      *string
	Salary     *float64
	JoinDate   *time.Time
	Subjects   []string
	Attendance *float64
	Bio        *string
	IsActive   *bool
}

// PageInfo is the pagination envelope returned with every list.
type PageInfo struct {
	TotalCount      int64
	HasNextPage     bool
	HasPreviousPage bool
	CurrentPage     int
	TotalPages      int
}

// EmployeeConnection is the page-bounded list result.
type EmployeeConnection struct {
	Employees []domain.Employee
	PageInfo  PageInfo
}

// EmployeeService defines the use-case operations over employee records.
// Caller may be nil (anonymous); each operation enforces its own guard.
type EmployeeService interface {
	List(ctx context.Context, q ListQuery) (*EmployeeConnection, error)
	Get(ctx context.Context, id string) (*domain.Employee, error)
	Stats(ctx context.Context, caller *domain.User) (*StatsResult, error)
	Create(ctx context.Context, input CreateEmployeeInput, caller *domain.User) (*domain.Employee, error)
	Update(ctx context.Context, id string, input UpdateEmployeeInput, caller *domain.User) (*domain.Employee, error)
	SoftDelete(ctx context.Context, id string, caller *domain.User) (bool, error)
	SoftDeleteMany(ctx context.Context, ids []string, caller *domain.User) (int64, error)
}
