package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/staffdesk/employee-api/internal/core/domain"
	"github.com/staffdesk/employee-api/internal/core/ports"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// EmployeeService orchestrates guard checks, validation and persistence for
// employee records.
type EmployeeService struct {
	repo     ports.EmployeeRepository
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewEmployeeService(repo ports.EmployeeRepository, logger zerolog.Logger) *EmployeeService {
	return &EmployeeService{repo: repo, validate: validator.New(), logger: logger}
}

// List returns a filtered, sorted, page-bounded slice of employees plus the
// pagination envelope. Pages beyond the last yield an empty slice, not an
// error, and the caller-supplied page number is echoed back unclamped.
func (s *EmployeeService) List(ctx context.Context, q ports.ListQuery) (*ports.EmployeeConnection, error) {
	if q.Page <= 0 {
		q.Page = defaultPage
	}
	if q.Limit <= 0 {
		q.Limit = defaultLimit
	}

	employees, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(q.Limit) - 1) / int64(q.Limit))
	return &ports.EmployeeConnection{
		Employees: employees,
		PageInfo: ports.PageInfo{
			TotalCount:      total,
			HasNextPage:     q.Page < totalPages,
			HasPreviousPage: q.Page > 1,
			CurrentPage:     q.Page,
			TotalPages:      totalPages,
		},
	}, nil
}

// Get retrieves a single employee by id.
func (s *EmployeeService) Get(ctx context.Context, id string) (*domain.Employee, error) {
	return s.repo.FindByID(ctx, id)
}

// Stats returns aggregate figures over active employees. Admin only.
func (s *EmployeeService) Stats(ctx context.Context, caller *domain.User) (*ports.StatsResult, error) {
	if _, err := RequireAdmin(caller); err != nil {
		return nil, err
	}
	return s.repo.Stats(ctx)
}

// Create persists a new employee owned by the caller. The email pre-check
// covers active and inactive records alike; the unique index on email is the
// backstop when two creates race past the check.
func (s *EmployeeService) Create(ctx context.Context, input ports.CreateEmployeeInput, caller *domain.User) (*domain.Employee, error) {
	user, err := RequireAuthenticated(caller)
	if err != nil {
		return nil, err
	}

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}

	if existing, err := s.repo.FindByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, domain.ErrDuplicateEmail
	} else if err != nil && err != domain.ErrEmployeeNotFound {
		return nil, err
	}

	now := time.Now().UTC()
	subjects := input.Subjects
	if subjects == nil {
		subjects = []string{}
	}

	created, err := s.repo.Create(ctx, &domain.Employee{
		Name:       input.Name,
		Age:        input.Age,
		Position:   input.Position,
		Department: input.Department,
		Email:      input.Email,
		Phone:      input.Phone,
		Salary:     input.Salary,
		JoinDate:   input.JoinDate,
		Subjects:   subjects,
		Attendance: input.Attendance,
		Bio:        input.Bio,
		IsActive:   true,
		CreatedBy:  user.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("email", input.Email).Msg("failed to create employee")
		return nil, err
	}

	s.logger.Info().Str("employee_id", created.ID).Str("created_by", user.ID).Msg("employee created")
	return created, nil
}

// Update applies the fields present in input and leaves the rest untouched.
// The merged record is re-validated before persisting.
func (s *EmployeeService) Update(ctx context.Context, id string, input ports.UpdateEmployeeInput, caller *domain.User) (*domain.Employee, error) {
	if _, err := RequireAuthenticated(caller); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := RequireOwnerOrAdmin(caller, existing.CreatedBy); err != nil {
		return nil, err
	}

	merged := *existing
	applyUpdate(&merged, input)
	merged.UpdatedAt = time.Now().UTC()

	if err := s.validate.Struct(constraintsFor(&merged)); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, &merged)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("employee_id", id).Str("caller", caller.ID).Msg("employee updated")
	return updated, nil
}

// SoftDelete marks the record inactive; the document is retained. Repeating
// the call on an already-inactive record still reports success.
func (s *EmployeeService) SoftDelete(ctx context.Context, id string, caller *domain.User) (bool, error) {
	if _, err := RequireAuthenticated(caller); err != nil {
		return false, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	if _, err := RequireOwnerOrAdmin(caller, existing.CreatedBy); err != nil {
		return false, err
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return false, err
	}

	s.logger.Info().Str("employee_id", id).Str("caller", caller.ID).Msg("employee soft-deleted")
	return true, nil
}

// SoftDeleteMany deactivates every matching id in one batch and returns the
// number of records actually modified. Unknown ids and records that were
// already inactive are silently excluded from the count.
func (s *EmployeeService) SoftDeleteMany(ctx context.Context, ids []string, caller *domain.User) (int64, error) {
	if _, err := RequireAdmin(caller); err != nil {
		return 0, err
	}

	modified, err := s.repo.SoftDeleteMany(ctx, ids)
	if err != nil {
		return 0, err
	}

	s.logger.Info().Int("requested", len(ids)).Int64("modified", modified).Str("caller", caller.ID).Msg("bulk soft-delete")
	return modified, nil
}

// applyUpdate copies only the present fields of input onto e.
func applyUpdate(e *domain.Employee, input ports.UpdateEmployeeInput) {
	if input.Name != nil {
		e.Name = *input.Name
	}
	if input.Age != nil {
		e.Age = *input.Age
	}
	if input.Position != nil {
		e.Position = *input.Position
	}
	if input.Department != nil {
		e.Department = *input.Department
	}
	if input.Email != nil {
		e.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.Phone != nil {
		e.Phone = *input.Phone
	}
	if input.Salary != nil {
		e.Salary = *input.Salary
	}
	if input.JoinDate != nil {
		e.JoinDate = *input.JoinDate
	}
	if input.Subjects != nil {
		e.Subjects = input.Subjects
	}
	if input.Attendance != nil {
		e.Attendance = *input.Attendance
	}
	if input.Bio != nil {
		e.Bio = *input.Bio
	}
	if input.IsActive != nil {
		e.IsActive = *input.IsActive
	}
}

// employeeConstraints mirrors the field constraints so a merged record can be
// re-validated through the same validator as a create input.
type employeeConstraints struct {
	Name       string  `validate:"required"`
	Age        int     `validate:"gte=18,lte=100"`
	Position   string  `validate:"required"`
	Department string  `validate:"required"`
	Email      string  `validate:"required,email"`
	Phone      string  `validate:"required"`
	Salary     float64 `validate:"gte=0"`
	Attendance float64 `validate:"gte=0,lte=100"`
}

func constraintsFor(e *domain.Employee) employeeConstraints {
	return employeeConstraints{
		Name:       e.Name,
		Age:        e.Age,
		Position:   e.Position,
		Department: e.Department,
		Email:      e.Email,
		Phone:      e.Phone,
		Salary:     e.Salary,
		Attendance: e.Attendance,
	}
}
