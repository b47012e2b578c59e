package ports

import (
	"context"

	"github.com/staffdesk/employee-api/internal/core/domain"
)

// EmployeeFilter carries the optional list predicates. Zero values behave as
// "absent": empty strings and zero-valued numeric bounds add no predicate.
// IsActive is a pointer because an explicit false must override the default
// active-only scope.
type EmployeeFilter struct {
	Department string
	Position   string
	MinAge     int
	MaxAge     int
	MinSalary  float64
	MaxSalary  float64
	Search     string
	IsActive   *bool
}

// SortSpec replaces the default creation-time-descending order entirely.
type SortSpec struct {
	Field string
	Order string // "ASC" or "DESC"
}

// ListQuery bundles filter, sort and pagination for a repository read.
type ListQuery struct {
	Filter EmployeeFilter
	Sort   *SortSpec
	Page   int
	Limit  int
}

// StatsResult is the raw aggregation output for the admin dashboard.
type StatsResult struct {
	TotalEmployees   int
	DepartmentCounts []DepartmentCount
	AverageSalary    float64
	AverageAge       float64
}

// DepartmentCount is one bucket of the per-department aggregation.
type DepartmentCount struct {
	Department string
	Count      int
}

// EmployeeRepository defines persistence operations for employee documents.
// The repository is the only component that touches the employees collection.
type EmployeeRepository interface {
	Create(ctx context.Context, e *domain.Employee) (*domain.Employee, error)
	FindByID(ctx context.Context, id string) (*domain.Employee, error)
	FindByEmail(ctx context.Context, email string) (*domain.Employee, error)
	Update(ctx context.Context, id string, e *domain.Employee) (*domain.Employee, error)
	SoftDelete(ctx context.Context, id string) error
	SoftDeleteMany(ctx context.Context, ids []string) (int64, error)
	List(ctx context.Context, q ListQuery) ([]domain.Employee, int64, error)
	Stats(ctx context.Context) (*StatsResult, error)
}
