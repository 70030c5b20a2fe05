package database

import (
	"testing"

	"github.com/hireloop/interview-api/config"
	"github.com/hireloop/interview-api/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type memoryAdminStore struct {
	users        []*model.User
	flagRestores int
}

func (s *memoryAdminStore) findByEmail(email string) (*model.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memoryAdminStore) create(user *model.User) error {
	user.ID = uint(len(s.users) + 1)
	s.users = append(s.users, user)
	return nil
}

func (s *memoryAdminStore) restoreFlags(user *model.User) error {
	s.flagRestores++
	user.IsAdmin = true
	user.IsActive = true
	return nil
}

func TestSeedAdminUserIdempotent(t *testing.T) {
	store := &memoryAdminStore{}
	cfg := config.AdminConfig{Email: "admin@example.com", Password: "bootstrap-secret"}

	if err := seedAdminUser(store, cfg); err != nil {
		t.Fatalf("first seed error = %v", err)
	}

	if len(store.users) != 1 {
		t.Fatalf("got %d admin rows, want 1", len(store.users))
	}
	admin := store.users[0]
	if !admin.IsAdmin || !admin.IsActive {
		t.Errorf("seeded admin is_admin=%v is_active=%v, want both true", admin.IsAdmin, admin.IsActive)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.HashedPassword), []byte("bootstrap-secret")); err != nil {
		t.Errorf("seeded password hash does not verify: %v", err)
	}

	firstHash := admin.HashedPassword

	// Second run, even with a different configured password, must neither
	// add a row nor touch the stored hash.
	cfg.Password = "rotated-secret"
	if err := seedAdminUser(store, cfg); err != nil {
		t.Fatalf("second seed error = %v", err)
	}

	if len(store.users) != 1 {
		t.Errorf("got %d admin rows after reseed, want 1", len(store.users))
	}
	if store.users[0].HashedPassword != firstHash {
		t.Error("reseed must not reset the existing admin password")
	}
	if store.flagRestores != 0 {
		t.Errorf("flagRestores = %d, healthy admin must be left alone", store.flagRestores)
	}
}

func TestSeedAdminUserRepairsFlagsOnly(t *testing.T) {
	demoted := &model.User{
		Model:          gorm.Model{ID: 1},
		Email:          "admin@example.com",
		Username:       "admin",
		HashedPassword: "$2a$10$existinghashexistinghashexistingha",
		IsAdmin:        false,
		IsActive:       false,
	}
	store := &memoryAdminStore{users: []*model.User{demoted}}

	cfg := config.AdminConfig{Email: "admin@example.com", Password: "ignored"}
	if err := seedAdminUser(store, cfg); err != nil {
		t.Fatalf("seed error = %v", err)
	}

	if len(store.users) != 1 {
		t.Fatalf("got %d rows, want the existing one only", len(store.users))
	}
	if !demoted.IsAdmin || !demoted.IsActive {
		t.Error("flags were not restored")
	}
	if store.flagRestores != 1 {
		t.Errorf("flagRestores = %d, want 1", store.flagRestores)
	}
	if demoted.HashedPassword != "$2a$10$existinghashexistinghashexistingha" {
		t.Error("repair must not touch the stored password")
	}
}
