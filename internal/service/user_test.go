package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hireloop/interview-api/internal/dto"
	domerr "github.com/hireloop/interview-api/internal/errors"
	"github.com/hireloop/interview-api/internal/model"
	"gorm.io/gorm"
)

// stubUserStore is an in-memory UserStore keyed by username.
type stubUserStore struct {
	users map[string]*model.User
}

func (s *stubUserStore) lookup(match func(*model.User) bool) (*model.User, error) {
	for _, user := range s.users {
		if match(user) {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserStore) GetByID(_ context.Context, id uint) (*model.User, error) {
	return s.lookup(func(u *model.User) bool { return u.ID == id })
}

func (s *stubUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	return s.lookup(func(u *model.User) bool { return u.Email == email })
}

func (s *stubUserStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	return s.lookup(func(u *model.User) bool { return u.Username == username })
}

func (s *stubUserStore) GetByUsernameOrEmail(_ context.Context, identifier string) (*model.User, error) {
	return s.lookup(func(u *model.User) bool {
		return u.Username == identifier || u.Email == identifier
	})
}

func (s *stubUserStore) Create(_ context.Context, user *model.User) error {
	user.ID = uint(len(s.users) + 1)
	s.users[user.Username] = user
	return nil
}

func (s *stubUserStore) UpdateProfile(_ context.Context, _ uint, _ map[string]interface{}) error {
	return nil
}

func (s *stubUserStore) UpdatePassword(_ context.Context, _ uint, _ string) error {
	return nil
}

func (s *stubUserStore) UpdateLastLogin(_ context.Context, _ uint) error {
	return nil
}

func (s *stubUserStore) SetActive(_ context.Context, _ uint, _ bool) error {
	return nil
}

func (s *stubUserStore) List(_ context.Context, _, _ int, _ bool, _ string) ([]model.User, int64, error) {
	return nil, 0, nil
}

func (s *stubUserStore) CountStats(_ context.Context, _ time.Time) (int64, int64, int64, int64, error) {
	return 0, 0, 0, 0, nil
}

func newUserTestService(t *testing.T) (*UserService, *stubUserStore) {
	t.Helper()

	passwords := NewPasswordService()
	hash, err := passwords.Hash("correct-horse")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	inactiveHash, err := passwords.Hash("sleepy-horse")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	store := &stubUserStore{users: map[string]*model.User{
		"alice": {
			Model:          gorm.Model{ID: 1},
			Email:          "alice@example.com",
			Username:       "alice",
			HashedPassword: hash,
			IsActive:       true,
		},
		"dormant": {
			Model:          gorm.Model{ID: 2},
			Email:          "dormant@example.com",
			Username:       "dormant",
			HashedPassword: inactiveHash,
			IsActive:       false,
		},
	}}

	return NewUserService(store, passwords, NewJWTService("test-secret", 30*time.Minute)), store
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newUserTestService(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		identifier string
		password   string
		wantErr    error
	}{
		{"valid username", "alice", "correct-horse", nil},
		{"valid email", "alice@example.com", "correct-horse", nil},
		{"unknown identifier", "nobody", "correct-horse", domerr.ErrBadCredentials},
		{"wrong password", "alice", "wrong-horse", domerr.ErrBadCredentials},
		{"inactive account", "dormant", "sleepy-horse", domerr.ErrInactiveAccount},
		{"inactive with wrong password", "dormant", "wrong-horse", domerr.ErrBadCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Authenticate(ctx, tt.identifier, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Authenticate() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && (user == nil || user.Username != "alice") {
				t.Errorf("Authenticate() user = %v, want alice", user)
			}
		})
	}
}

// Unknown identifier and wrong password must be indistinguishable to the
// caller: same error value, same message.
func TestAuthenticateFailuresAreUniform(t *testing.T) {
	svc, _ := newUserTestService(t)
	ctx := context.Background()

	_, unknownErr := svc.Authenticate(ctx, "nobody", "whatever")
	_, wrongPwErr := svc.Authenticate(ctx, "alice", "wrong-horse")

	if !errors.Is(unknownErr, domerr.ErrBadCredentials) || !errors.Is(wrongPwErr, domerr.ErrBadCredentials) {
		t.Fatalf("both failures must be ErrBadCredentials, got %v and %v", unknownErr, wrongPwErr)
	}
	if unknownErr.Error() != wrongPwErr.Error() {
		t.Errorf("failure messages differ: %q vs %q", unknownErr.Error(), wrongPwErr.Error())
	}
}

// Account state must not leak before the password is verified.
func TestAuthenticateInactiveOnlyAfterPasswordVerifies(t *testing.T) {
	svc, _ := newUserTestService(t)

	_, err := svc.Authenticate(context.Background(), "dormant", "wrong-horse")
	if !errors.Is(err, domerr.ErrBadCredentials) {
		t.Errorf("wrong password on an inactive account = %v, want ErrBadCredentials", err)
	}
}

func TestRegisterDuplicates(t *testing.T) {
	svc, _ := newUserTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{
		Email:    "alice@example.com",
		Username: "freshname",
		Password: "password123",
	})
	if !errors.Is(err, domerr.ErrEmailExists) {
		t.Errorf("duplicate email = %v, want ErrEmailExists", err)
	}

	_, err = svc.Register(ctx, &dto.RegisterRequest{
		Email:    "fresh@example.com",
		Username: "alice",
		Password: "password123",
	})
	if !errors.Is(err, domerr.ErrUsernameExists) {
		t.Errorf("duplicate username = %v, want ErrUsernameExists", err)
	}
}

func TestRegisterCreatesActiveUser(t *testing.T) {
	svc, store := newUserTestService(t)

	user, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "bob@example.com",
		Username: "bob",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if !user.IsActive || user.IsAdmin {
		t.Errorf("new user active=%v admin=%v, want active non-admin", user.IsActive, user.IsAdmin)
	}
	if store.users["bob"].HashedPassword == "password123" {
		t.Error("password must be stored hashed")
	}
}

func TestSetUserActiveSelfDeactivation(t *testing.T) {
	svc, _ := newUserTestService(t)

	_, err := svc.SetUserActive(context.Background(), 1, 1, false)
	if !errors.Is(err, domerr.ErrSelfDeactivation) {
		t.Errorf("self-deactivation = %v, want ErrSelfDeactivation", err)
	}
}
