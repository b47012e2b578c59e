package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/staffdesk/employee-api/internal/core/domain"
	"github.com/staffdesk/employee-api/internal/core/ports"
)

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by id
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = fmt.Sprintf("user_%d", r.nextID)
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindActiveByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email && u.IsActive {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ExistsByEmailOrUsername(_ context.Context, email, username string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email || u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

type stubThrottle struct {
	blocked  bool
	failures int
	resets   int
}

func (t *stubThrottle) Allow(_ context.Context, _ string) bool    { return !t.blocked }
func (t *stubThrottle) RecordFailure(_ context.Context, _ string) { t.failures++ }
func (t *stubThrottle) Reset(_ context.Context, _ string)         { t.resets++ }

func newAuthService(repo ports.UserRepository, throttle ports.LoginThrottle) *AuthService {
	return NewAuthService(repo, NewTokenIssuer("secret", time.Hour), throttle, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, nil)

	payload, err := svc.Register(context.Background(), "alice", "Alice@Example.com", "pass123", "")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if payload.Token == "" {
		t.Fatalf("expected a token")
	}
	if payload.User.Email != "alice@example.com" {
		t.Fatalf("expected lowercased email, got %q", payload.User.Email)
	}
	if payload.User.Role != domain.RoleEmployee {
		t.Fatalf("expected default employee role, got %q", payload.User.Role)
	}
	if !payload.User.IsActive {
		t.Fatalf("expected active user")
	}
	if payload.User.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(payload.User.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), nil)

	if _, err := svc.Register(context.Background(), "", "a@b.com", "pass", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for empty username, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob", "b@b.com", "pass", "superuser"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for bad role, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, nil)

	if _, err := svc.Register(context.Background(), "bob", "bob@example.com", "pass", ""); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	// Same email, different username.
	if _, err := svc.Register(context.Background(), "bobby", "bob@example.com", "pass", ""); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists for duplicate email, got %v", err)
	}
	// Same username, different email.
	if _, err := svc.Register(context.Background(), "bob", "other@example.com", "pass", ""); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists for duplicate username, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, nil)

	if _, err := svc.Register(context.Background(), "carol", "carol@example.com", "s3cret", "admin"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	payload, err := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if payload.Token == "" {
		t.Fatalf("expected token")
	}
	if payload.User.Username != "carol" {
		t.Fatalf("unexpected user: %+v", payload.User)
	}

	userID, err := NewTokenIssuer("secret", time.Hour).Verify(payload.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if userID != payload.User.ID {
		t.Fatalf("token embeds %q, want %q", userID, payload.User.ID)
	}
}

// Wrong password and unknown email must be indistinguishable.
func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, nil)

	if _, err := svc.Register(context.Background(), "dave", "dave@example.com", "correct", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, wrongPass := svc.Login(context.Background(), "dave@example.com", "wrong")
	_, unknownEmail := svc.Login(context.Background(), "nobody@example.com", "whatever")

	if wrongPass != domain.ErrInvalidCredentials {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPass)
	}
	if unknownEmail != domain.ErrInvalidCredentials {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownEmail)
	}
	if wrongPass != unknownEmail {
		t.Fatalf("outcomes differ: %v vs %v", wrongPass, unknownEmail)
	}
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, nil)

	payload, err := svc.Register(context.Background(), "eve", "eve@example.com", "pass", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	repo.users[payload.User.ID].IsActive = false

	if _, err := svc.Login(context.Background(), "eve@example.com", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for inactive user, got %v", err)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newStubUserRepo()
	throttle := &stubThrottle{}
	svc := newAuthService(repo, throttle)

	if _, err := svc.Register(context.Background(), "frank", "frank@example.com", "pass", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.Login(context.Background(), "frank@example.com", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if throttle.failures != 1 {
		t.Fatalf("expected 1 recorded failure, got %d", throttle.failures)
	}

	if _, err := svc.Login(context.Background(), "frank@example.com", "pass"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if throttle.resets != 1 {
		t.Fatalf("expected throttle reset after success, got %d", throttle.resets)
	}

	throttle.blocked = true
	if _, err := svc.Login(context.Background(), "frank@example.com", "pass"); err != domain.ErrTooManyAttempts {
		t.Fatalf("expected ErrTooManyAttempts when blocked, got %v", err)
	}
}
