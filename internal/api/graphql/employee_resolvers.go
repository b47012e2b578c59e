package graphql

import (
	"errors"
	"fmt"
	"time"

	"github.com/graphql-go/graphql"

	"github.com/staffdesk/employee-api/internal/api/metrics"
	"github.com/staffdesk/employee-api/internal/core/domain"
	"github.com/staffdesk/employee-api/internal/core/ports"
)

// guardError reports whether err is an authentication-level failure that
// should surface with its own message instead of the operation prefix.
func guardError(err error) bool {
	return errors.Is(err, domain.ErrAuthRequired) || errors.Is(err, domain.ErrAdminRequired)
}

func (s *Schema) resolveEmployees(p graphql.ResolveParams) (interface{}, error) {
	q := ports.ListQuery{
		Filter: parseFilter(p.Args["filter"]),
		Sort:   parseSort(p.Args["sort"]),
		Page:   intArg(p.Args, "page", 1),
		Limit:  intArg(p.Args, "limit", 10),
	}

	conn, err := s.employees.List(p.Context, q)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employees: %v", err)
	}

	return map[string]interface{}{
		"employees": conn.Employees,
		"pageInfo": map[string]interface{}{
			"totalCount":      int(conn.PageInfo.TotalCount),
			"hasNextPage":     conn.PageInfo.HasNextPage,
			"hasPreviousPage": conn.PageInfo.HasPreviousPage,
			"currentPage":     conn.PageInfo.CurrentPage,
			"totalPages":      conn.PageInfo.TotalPages,
		},
	}, nil
}

func (s *Schema) resolveEmployee(p graphql.ResolveParams) (interface{}, error) {
	id, _ := p.Args["id"].(string)

	employee, err := s.employees.Get(p.Context, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employee: %v", err)
	}
	return employee, nil
}

func (s *Schema) resolveEmployeeStats(p graphql.ResolveParams) (interface{}, error) {
	stats, err := s.employees.Stats(p.Context, UserFrom(p.Context))
	if err != nil {
		if guardError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch employee stats: %v", err)
	}

	counts := make([]map[string]interface{}, 0, len(stats.DepartmentCounts))
	for _, dc := range stats.DepartmentCounts {
		counts = append(counts, map[string]interface{}{
			"department": dc.Department,
			"count":      dc.Count,
		})
	}

	return map[string]interface{}{
		"totalEmployees":   stats.TotalEmployees,
		"departmentCounts": counts,
		"averageSalary":    stats.AverageSalary,
		"averageAge":       stats.AverageAge,
	}, nil
}

func (s *Schema) resolveCreateEmployee(p graphql.ResolveParams) (interface{}, error) {
	input, ok := p.Args["input"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("failed to create employee: invalid input")
	}

	createInput, err := parseCreateInput(input)
	if err != nil {
		return nil, fmt.Errorf("failed to create employee: %v", err)
	}

	employee, err := s.employees.Create(p.Context, createInput, UserFrom(p.Context))
	if err != nil {
		if guardError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create employee: %v", err)
	}

	metrics.EmployeesCreatedTotal.WithLabelValues(employee.Department).Inc()
	return employee, nil
}

func (s *Schema) resolveUpdateEmployee(p graphql.ResolveParams) (interface{}, error) {
	id, _ := p.Args["id"].(string)
	input, ok := p.Args["input"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("failed to update employee: invalid input")
	}

	updateInput, err := parseUpdateInput(input)
	if err != nil {
		return nil, fmt.Errorf("failed to update employee: %v", err)
	}

	employee, err := s.employees.Update(p.Context, id, updateInput, UserFrom(p.Context))
	if err != nil {
		if guardError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update employee: %v", err)
	}
	return employee, nil
}

func (s *Schema) resolveDeleteEmployee(p graphql.ResolveParams) (interface{}, error) {
	id, _ := p.Args["id"].(string)

	ok, err := s.employees.SoftDelete(p.Context, id, UserFrom(p.Context))
	if err != nil {
		if guardError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to delete employee: %v", err)
	}
	return ok, nil
}

func (s *Schema) resolveDeleteMultipleEmployees(p graphql.ResolveParams) (interface{}, error) {
	rawIDs, _ := p.Args["ids"].([]interface{})
	ids := make([]string, 0, len(rawIDs))
	for _, raw := range rawIDs {
		if id, ok := raw.(string); ok {
			ids = append(ids, id)
		}
	}

	modified, err := s.employees.SoftDeleteMany(p.Context, ids, UserFrom(p.Context))
	if err != nil {
		if guardError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to delete employees: %v", err)
	}
	return int(modified), nil
}

// --- argument parsing ---

func parseFilter(raw interface{}) ports.EmployeeFilter {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return ports.EmployeeFilter{}
	}

	f := ports.EmployeeFilter{
		Department: strField(m, "department"),
		Position:   strField(m, "position"),
		Search:     strField(m, "search"),
	}
	if v, ok := m["minAge"].(int); ok {
		f.MinAge = v
	}
	if v, ok := m["maxAge"].(int); ok {
		f.MaxAge = v
	}
	if v, ok := m["minSalary"].(float64); ok {
		f.MinSalary = v
	}
	if v, ok := m["maxSalary"].(float64); ok {
		f.MaxSalary = v
	}
	if v, ok := m["isActive"].(bool); ok {
		f.IsActive = &v
	}
	return f
}

func parseSort(raw interface{}) *ports.SortSpec {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return nil
	}
	return &ports.SortSpec{
		Field: strField(m, "field"),
		Order: strField(m, "order"),
	}
}

func parseCreateInput(m map[string]interface{}) (ports.CreateEmployeeInput, error) {
	joinDate, err := parseJoinDate(strField(m, "joinDate"))
	if err != nil {
		return ports.CreateEmployeeInput{}, err
	}

	input := ports.CreateEmployeeInput{
		Name:       strField(m, "name"),
		Position:   strField(m, "position"),
		Department: strField(m, "department"),
		Email:      strField(m, "email"),
		Phone:      strField(m, "phone"),
		Bio:        strField(m, "bio"),
		JoinDate:   joinDate,
	}
	if v, ok := m["age"].(int); ok {
		input.Age = v
	}
	if v, ok := m["salary"].(float64); ok {
		input.Salary = v
	}
	if v, ok := m["attendance"].(float64); ok {
		input.Attendance = v
	}
	if v, ok := m["subjects"].([]interface{}); ok {
		input.Subjects = toStringSlice(v)
	}
	return input, nil
}

func parseUpdateInput(m map[string]interface{}) (ports.UpdateEmployeeInput, error) {
	var input ports.UpdateEmployeeInput

	if v, ok := m["name"].(string); ok {
		input.Name = &v
	}
	if v, ok := m["age"].(int); ok {
		input.Age = &v
	}
	if v, ok := m["position"].(string); ok {
		input.Position = &v
	}
	if v, ok := m["department"].(string); ok {
		input.Department = &v
	}
	if v, ok := m["email"].(string); ok {
		input.Email = &v
	}
	if v, ok := m["phone"].(string); ok {
		input.Phone = &v
	}
	if v, ok := m["salary"].(float64); ok {
		input.Salary = &v
	}
	if v, ok := m["joinDate"].(string); ok {
		joinDate, err := parseJoinDate(v)
		if err != nil {
			return ports.UpdateEmployeeInput{}, err
		}
		input.JoinDate = &joinDate
	}
	if v, ok := m["subjects"].([]interface{}); ok {
		input.Subjects = toStringSlice(v)
	}
	if v, ok := m["attendance"].(float64); ok {
		input.Attendance = &v
	}
	if v, ok := m["bio"].(string); ok {
		input.Bio = &v
	}
	if v, ok := m["isActive"].(bool); ok {
		input.IsActive = &v
	}
	return input, nil
}

func parseJoinDate(s string) (time.Time, error) {
	t, err := time.Parse(dateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid joinDate %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

func strField(m map[string]interface{}, key string) string {
	v, _ := m[key].(string)
	return v
}

func intArg(args map[string]interface{}, key string, fallback int) int {
	if v, ok := args[key].(int); ok {
		return v
	}
	return fallback
}

func toStringSlice(raw []interface{}) []string {
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
