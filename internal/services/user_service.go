// Package services – UserService
//
// This file implements the UserService, which manages registration,
// authentication, and profile maintenance. It hashes passwords with bcrypt,
// applies profile defaults at registration, and exchanges valid credentials
// for a signed session token. Domain errors (ErrEmailTaken, ErrBadCredentials,
// ErrUserNotFound) are returned for predictable cases so handlers can map
// them to HTTP results consistently.
package services

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tbourn/go-cards-backend/internal/auth"
	"github.com/tbourn/go-cards-backend/internal/domain"
	"github.com/tbourn/go-cards-backend/internal/repo"
)

// UserService implements the use-cases around accounts and profiles.
type UserService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Tokens signs session tokens at login.
	Tokens *auth.Issuer
	// HashCost is the bcrypt cost used for new passwords.
	HashCost int
}

// NewUserService constructs a UserService with the standard bcrypt cost.
func NewUserService(db *gorm.DB, tokens *auth.Issuer) *UserService {
	return &UserService{DB: db, Tokens: tokens, HashCost: 10}
}

// RegisterInput carries the signup fields. Name, About, and Avatar are
// optional; defaults are applied when empty.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	About    string
	Avatar   string
}

// Register creates an account for in.Email. The stored password is a bcrypt
// hash; the returned user carries only public fields plus the hash, which the
// caller must not serialize (the model excludes it from JSON).
//
// Returns ErrEmailTaken when the email is already registered.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.HashCost)
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		Email:    in.Email,
		Password: string(hash),
		Name:     defaultString(in.Name, domain.DefaultName),
		About:    defaultString(in.About, domain.DefaultAbout),
		Avatar:   defaultString(in.Avatar, domain.DefaultAvatar),
	}
	if err := repo.CreateUser(ctx, s.DB, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// Login verifies the credentials and returns a signed session token together
// with the account id. Unknown email and wrong password are indistinguishable
// to the caller: both yield ErrBadCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (token, userID string, err error) {
	u, err := repo.GetUserByEmail(ctx, s.DB, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", "", ErrBadCredentials
		}
		return "", "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return "", "", ErrBadCredentials
	}
	tok, err := s.Tokens.Token(u.ID)
	if err != nil {
		return "", "", err
	}
	return tok, u.ID, nil
}

// Get returns the user identified by id, or ErrUserNotFound.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	u, err := repo.GetUser(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// List returns all registered users.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return repo.ListUsers(ctx, s.DB)
}

// UpdateProfile sets the acting user's name and about fields.
// Returns ErrUserNotFound when the id does not resolve.
func (s *UserService) UpdateProfile(ctx context.Context, id, name, about string) error {
	if err := repo.UpdateUserProfile(ctx, s.DB, id, name, about); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// UpdateAvatar sets the acting user's avatar URL.
// Returns ErrUserNotFound when the id does not resolve.
func (s *UserService) UpdateAvatar(ctx context.Context, id, avatar string) error {
	if err := repo.UpdateUserAvatar(ctx, s.DB, id, avatar); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// defaultString returns v, or def when v is empty.
func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
