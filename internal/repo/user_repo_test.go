package repo

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-cards-backend/internal/domain"
)

func newRepoDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("repo_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// Ensure the file handle is released before TempDir cleanup (Windows needs this).
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

func TestCreateUser_AssignsIDAndTimestamps(t *testing.T) {
	db := newRepoDB(t, &domain.User{})

	u := &domain.User{Email: "a@b.c", Password: "hash", Name: "n", About: "a", Avatar: "https://x/y"}
	if err := CreateUser(context.Background(), db, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if !domain.ValidID(u.ID) {
		t.Fatalf("assigned id %q is not 24-hex", u.ID)
	}
	if u.CreatedAt.IsZero() {
		t.Fatalf("CreatedAt not set")
	}

	got, err := GetUser(context.Background(), db, u.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.Email != "a@b.c" || got.Name != "n" {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	db := newRepoDB(t, &domain.User{})

	first := &domain.User{Email: "dup@b.c", Password: "h"}
	if err := CreateUser(context.Background(), db, first); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	second := &domain.User{Email: "dup@b.c", Password: "h2"}
	if err := CreateUser(context.Background(), db, second); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestGetUserByEmail(t *testing.T) {
	db := newRepoDB(t, &domain.User{})

	u := &domain.User{Email: "find@me.io", Password: "h"}
	if err := CreateUser(context.Background(), db, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	got, err := GetUserByEmail(context.Background(), db, "find@me.io")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("wrong user: %+v", got)
	}

	if _, err := GetUserByEmail(context.Background(), db, "ghost@me.io"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListUsers_OrderAscending(t *testing.T) {
	db := newRepoDB(t, &domain.User{})

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, email := range []string{"one@x.io", "two@x.io", "three@x.io"} {
		u := domain.User{ID: domain.NewID(), Email: email, Password: "h", CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := db.Create(&u).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	users, err := ListUsers(context.Background(), db)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("len = %d, want 3", len(users))
	}
	if users[0].Email != "one@x.io" || users[2].Email != "three@x.io" {
		t.Fatalf("order wrong: %q .. %q", users[0].Email, users[2].Email)
	}
}

func TestUpdateUserProfile(t *testing.T) {
	db := newRepoDB(t, &domain.User{})

	u := &domain.User{Email: "p@x.io", Password: "h", Name: "old", About: "old"}
	if err := CreateUser(context.Background(), db, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if err := UpdateUserProfile(context.Background(), db, u.ID, "new name", "new about"); err != nil {
		t.Fatalf("UpdateUserProfile: %v", err)
	}
	got, err := GetUser(context.Background(), db, u.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.Name != "new name" || got.About != "new about" {
		t.Fatalf("fields not updated: %+v", got)
	}

	// Missing user
	if err := UpdateUserProfile(context.Background(), db, domain.NewID(), "n", "a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing user, got %v", err)
	}
}

func TestUpdateUserAvatar(t *testing.T) {
	db := newRepoDB(t, &domain.User{})

	u := &domain.User{Email: "av@x.io", Password: "h"}
	if err := CreateUser(context.Background(), db, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if err := UpdateUserAvatar(context.Background(), db, u.ID, "https://pics.example/new.png"); err != nil {
		t.Fatalf("UpdateUserAvatar: %v", err)
	}
	got, _ := GetUser(context.Background(), db, u.ID)
	if got.Avatar != "https://pics.example/new.png" {
		t.Fatalf("avatar not updated: %q", got.Avatar)
	}

	if err := UpdateUserAvatar(context.Background(), db, domain.NewID(), "https://x/y"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing user, got %v", err)
	}
}
