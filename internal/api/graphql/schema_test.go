package graphql

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/rs/zerolog"

	"github.com/staffdesk/employee-api/internal/core/domain"
	"github.com/staffdesk/employee-api/internal/core/ports"
	"github.com/staffdesk/employee-api/internal/core/service"
)

type memEmployeeRepo struct {
	order  []string
	byID   map[string]*domain.Employee
	nextID int
}

func newMemEmployeeRepo() *memEmployeeRepo {
	return &memEmployeeRepo{byID: make(map[string]*domain.Employee)}
}

func (r *memEmployeeRepo) Create(_ context.Context, e *domain.Employee) (*domain.Employee, error) {
	for _, existing := range r.byID {
		if existing.Email == e.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	r.nextID++
	created := *e
	created.ID = fmt.Sprintf("emp_%d", r.nextID)
	r.byID[created.ID] = &created
	r.order = append(r.order, created.ID)
	return &created, nil
}

func (r *memEmployeeRepo) FindByID(_ context.Context, id string) (*domain.Employee, error) {
	if e, ok := r.byID[id]; ok {
		clone := *e
		return &clone, nil
	}
	return nil, domain.ErrEmployeeNotFound
}

func (r *memEmployeeRepo) FindByEmail(_ context.Context, email string) (*domain.Employee, error) {
	for _, e := range r.byID {
		if e.Email == email {
			clone := *e
			return &clone, nil
		}
	}
	return nil, domain.ErrEmployeeNotFound
}

func (r *memEmployeeRepo) Update(_ context.Context, id string, e *domain.Employee) (*domain.Employee, error) {
	if _, ok := r.byID[id]; !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	updated := *e
	updated.ID = id
	r.byID[id] = &updated
	return &updated, nil
}

func (r *memEmployeeRepo) SoftDelete(_ context.Context, id string) error {
	e, ok := r.byID[id]
	if !ok {
		return domain.ErrEmployeeNotFound
	}
	e.IsActive = false
	return nil
}

func (r *memEmployeeRepo) SoftDeleteMany(_ context.Context, ids []string) (int64, error) {
	var n int64
	for _, id := range ids {
		if e, ok := r.byID[id]; ok && e.IsActive {
			e.IsActive = false
			n++
		}
	}
	return n, nil
}

func (r *memEmployeeRepo) List(_ context.Context, q ports.ListQuery) ([]domain.Employee, int64, error) {
	out := []domain.Employee{}
	for _, id := range r.order {
		if e := r.byID[id]; e.IsActive {
			out = append(out, *e)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memEmployeeRepo) Stats(_ context.Context) (*ports.StatsResult, error) {
	return &ports.StatsResult{TotalEmployees: len(r.byID)}, nil
}

type memUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.nextID++
	created := *u
	created.ID = fmt.Sprintf("user_%d", r.nextID)
	r.users[created.ID] = &created
	return &created, nil
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) FindActiveByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email && u.IsActive {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) ExistsByEmailOrUsername(_ context.Context, email, username string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email || u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

type fixture struct {
	schema *Schema
	repo   *memEmployeeRepo
	users  *memUserRepo
}

func newFixture() *fixture {
	repo := newMemEmployeeRepo()
	users := newMemUserRepo()
	tokens := service.NewTokenIssuer("secret", time.Hour)
	authSvc := service.NewAuthService(users, tokens, nil, zerolog.Nop())
	employeeSvc := service.NewEmployeeService(repo, zerolog.Nop())
	return &fixture{
		schema: NewSchema(employeeSvc, authSvc, zerolog.Nop()),
		repo:   repo,
		users:  users,
	}
}

func (f *fixture) exec(t *testing.T, query string, user *domain.User) *graphql.Result {
	t.Helper()
	ctx := context.Background()
	if user != nil {
		ctx = WithUser(ctx, user)
	}
	return graphql.Do(graphql.Params{
		Schema:        f.schema.Schema(),
		RequestString: query,
		Context:       ctx,
	})
}

func mustSucceed(t *testing.T, result *graphql.Result) map[string]interface{} {
	t.Helper()
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	data, ok := result.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected data shape: %T", result.Data)
	}
	return data
}

func firstError(t *testing.T, result *graphql.Result) string {
	t.Helper()
	if len(result.Errors) == 0 {
		t.Fatalf("expected errors, got none (data: %v)", result.Data)
	}
	return result.Errors[0].Message
}

const createJohn = `mutation {
	createEmployee(input: {
		name: "John Doe", age: 28, position: "Software Engineer",
		department: "Engineering", email: "john@example.com",
		phone: "+1 555 0100", salary: 75000, joinDate: "2022-01-15",
		subjects: ["Go", "SQL"], attendance: 95
	}) { id name joinDate isActive subjects }
}`

func adminUser() *domain.User {
	return &domain.User{ID: "admin_1", Username: "root", Role: domain.RoleAdmin}
}

func TestSchema_CreateEmployee(t *testing.T) {
	f := newFixture()

	data := mustSucceed(t, f.exec(t, createJohn, adminUser()))
	employee := data["createEmployee"].(map[string]interface{})

	if employee["joinDate"] != "2022-01-15" {
		t.Fatalf("expected wire-format joinDate, got %v", employee["joinDate"])
	}
	if employee["isActive"] != true {
		t.Fatalf("expected isActive true, got %v", employee["isActive"])
	}
	subjects := employee["subjects"].([]interface{})
	if len(subjects) != 2 || subjects[0] != "Go" || subjects[1] != "SQL" {
		t.Fatalf("subjects order not preserved: %v", subjects)
	}
}

func TestSchema_CreateEmployee_Anonymous(t *testing.T) {
	f := newFixture()

	msg := firstError(t, f.exec(t, createJohn, nil))
	if msg != "authentication required" {
		t.Fatalf("expected bare guard message, got %q", msg)
	}
}

func TestSchema_Employees_Envelope(t *testing.T) {
	f := newFixture()
	mustSucceed(t, f.exec(t, createJohn, adminUser()))

	query := `{ employees(page: 1, limit: 10) {
		employees { name email }
		pageInfo { totalCount hasNextPage hasPreviousPage currentPage totalPages }
	} }`

	data := mustSucceed(t, f.exec(t, query, nil))
	conn := data["employees"].(map[string]interface{})
	pageInfo := conn["pageInfo"].(map[string]interface{})

	if pageInfo["totalCount"] != 1 || pageInfo["totalPages"] != 1 {
		t.Fatalf("unexpected envelope: %v", pageInfo)
	}
	if pageInfo["hasNextPage"] != false || pageInfo["hasPreviousPage"] != false {
		t.Fatalf("unexpected page flags: %v", pageInfo)
	}

	list := conn["employees"].([]interface{})
	if len(list) != 1 {
		t.Fatalf("expected 1 employee, got %d", len(list))
	}
}

func TestSchema_RoleCaseTranslation(t *testing.T) {
	f := newFixture()

	data := mustSucceed(t, f.exec(t, `mutation {
		register(username: "alice", email: "alice@example.com", password: "pass123", role: ADMIN) {
			token
			user { username role }
		}
	}`, nil))

	payload := data["register"].(map[string]interface{})
	if payload["token"] == "" {
		t.Fatalf("expected a token")
	}
	user := payload["user"].(map[string]interface{})
	if user["role"] != "ADMIN" {
		t.Fatalf("expected wire role ADMIN, got %v", user["role"])
	}

	// Stored lower-case.
	for _, u := range f.users.users {
		if u.Role != domain.RoleAdmin {
			t.Fatalf("expected stored role %q, got %q", domain.RoleAdmin, u.Role)
		}
	}
}

func TestSchema_LoginFailureMessage(t *testing.T) {
	f := newFixture()

	msg := firstError(t, f.exec(t, `mutation {
		login(email: "nobody@example.com", password: "nope") { token }
	}`, nil))
	if msg != "login failed: invalid credentials" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestSchema_Me(t *testing.T) {
	f := newFixture()

	msg := firstError(t, f.exec(t, `{ me { username } }`, nil))
	if msg != "authentication required" {
		t.Fatalf("unexpected anonymous message: %q", msg)
	}

	user := &domain.User{ID: "u1", Username: "carol", Email: "carol@example.com", Role: domain.RoleEmployee, IsActive: true}
	data := mustSucceed(t, f.exec(t, `{ me { username role isActive } }`, user))
	me := data["me"].(map[string]interface{})
	if me["username"] != "carol" || me["role"] != "EMPLOYEE" {
		t.Fatalf("unexpected me payload: %v", me)
	}
}

func TestSchema_DeleteMultiple_AdminOnly(t *testing.T) {
	f := newFixture()

	employee := &domain.User{ID: "u2", Username: "worker", Role: domain.RoleEmployee}
	msg := firstError(t, f.exec(t, `mutation { deleteMultipleEmployees(ids: ["abc"]) }`, employee))
	if msg != "admin access required" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestSchema_GetEmployee_NotFound(t *testing.T) {
	f := newFixture()

	msg := firstError(t, f.exec(t, `{ employee(id: "missing") { name } }`, nil))
	if !strings.Contains(msg, "employee not found") {
		t.Fatalf("unexpected message: %q", msg)
	}
}
