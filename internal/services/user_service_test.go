package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-cards-backend/internal/auth"
	"github.com/tbourn/go-cards-backend/internal/domain"
)

func newServiceDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("svc_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := db.AutoMigrate(&domain.User{}, &domain.Card{}, &domain.CardLike{}, &domain.Idempotency{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func newUserService(t *testing.T) (*UserService, *gorm.DB) {
	t.Helper()
	db := newServiceDB(t)
	svc := NewUserService(db, auth.NewIssuer("test-secret", time.Hour))
	svc.HashCost = bcrypt.MinCost // keep tests fast
	return svc, db
}

func TestRegister_AppliesDefaultsAndHashes(t *testing.T) {
	svc, _ := newUserService(t)

	u, err := svc.Register(context.Background(), RegisterInput{Email: "cap@calypso.sea", Password: "hunter2"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.Name != domain.DefaultName || u.About != domain.DefaultAbout || u.Avatar != domain.DefaultAvatar {
		t.Fatalf("defaults not applied: %+v", u)
	}
	if u.Password == "hunter2" {
		t.Fatalf("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("hunter2")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestRegister_KeepsProvidedProfile(t *testing.T) {
	svc, _ := newUserService(t)

	u, err := svc.Register(context.Background(), RegisterInput{
		Email: "x@y.z", Password: "pw",
		Name: "Ada", About: "Engineer", Avatar: "https://pics.example/ada.png",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.Name != "Ada" || u.About != "Engineer" || u.Avatar != "https://pics.example/ada.png" {
		t.Fatalf("profile overridden: %+v", u)
	}
}

func TestRegister_EmailTaken(t *testing.T) {
	svc, _ := newUserService(t)

	if _, err := svc.Register(context.Background(), RegisterInput{Email: "dup@y.z", Password: "pw"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, err := svc.Register(context.Background(), RegisterInput{Email: "dup@y.z", Password: "pw2"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	de, ok := AsDomain(err)
	if !ok || de.Status != 409 {
		t.Fatalf("ErrEmailTaken should map to 409, got %+v", de)
	}
}

func TestLogin_SuccessIssuesToken(t *testing.T) {
	svc, _ := newUserService(t)

	u, err := svc.Register(context.Background(), RegisterInput{Email: "log@in.io", Password: "pw"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	tok, uid, err := svc.Login(context.Background(), "log@in.io", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if uid != u.ID {
		t.Fatalf("Login userID = %q, want %q", uid, u.ID)
	}
	got, err := svc.Tokens.UserID(tok)
	if err != nil || got != u.ID {
		t.Fatalf("issued token does not verify: uid=%q err=%v", got, err)
	}
}

func TestLogin_BadCredentialsIndistinguishable(t *testing.T) {
	svc, _ := newUserService(t)

	if _, err := svc.Register(context.Background(), RegisterInput{Email: "real@u.io", Password: "pw"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// wrong password
	if _, _, err := svc.Login(context.Background(), "real@u.io", "nope"); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("wrong password: expected ErrBadCredentials, got %v", err)
	}
	// unknown email
	if _, _, err := svc.Login(context.Background(), "ghost@u.io", "pw"); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("unknown email: expected ErrBadCredentials, got %v", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	svc, _ := newUserService(t)

	if _, err := svc.Get(context.Background(), domain.NewID()); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUpdateProfileAndAvatar(t *testing.T) {
	svc, _ := newUserService(t)

	u, err := svc.Register(context.Background(), RegisterInput{Email: "up@d.io", Password: "pw"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.UpdateProfile(context.Background(), u.ID, "New", "Bio"); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if err := svc.UpdateAvatar(context.Background(), u.ID, "https://pics.example/n.png"); err != nil {
		t.Fatalf("UpdateAvatar: %v", err)
	}
	got, err := svc.Get(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "New" || got.About != "Bio" || got.Avatar != "https://pics.example/n.png" {
		t.Fatalf("updates not applied: %+v", got)
	}

	if err := svc.UpdateProfile(context.Background(), domain.NewID(), "N", "A"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if err := svc.UpdateAvatar(context.Background(), domain.NewID(), "https://x/y"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
