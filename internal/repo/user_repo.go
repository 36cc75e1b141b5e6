// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the User model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a user is not found, functions return ErrNotFound.
//   - On unique violation (email already registered), CreateUser returns
//     ErrDuplicate.
//   - Other DB errors are propagated for classification by Classify.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-cards-backend/internal/domain"
)

// CreateUser inserts a new User row. The caller supplies the already-hashed
// password and the defaulted profile fields. A fresh 24-hex identifier is
// assigned when u.ID is empty, and CreatedAt is set to UTC.
//
// Returns ErrDuplicate when the email is already registered.
func CreateUser(ctx context.Context, db *gorm.DB, u *domain.User) error {
	if u.ID == "" {
		u.ID = domain.NewID()
	}
	u.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// GetUserByEmail fetches a user by email, including the password hash.
// Returns ErrNotFound when no account matches.
func GetUserByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.User, error) {
	var u domain.User
	err := db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUser fetches a user by id. Returns ErrNotFound when missing.
func GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// ListUsers returns all registered users ordered by creation time ascending.
func ListUsers(ctx context.Context, db *gorm.DB) ([]domain.User, error) {
	var out []domain.User
	err := db.WithContext(ctx).
		Order("created_at asc").
		Find(&out).Error
	return out, err
}

// UpdateUserProfile sets the name and about fields of the user identified by
// id. Returns ErrNotFound when no rows are affected.
func UpdateUserProfile(ctx context.Context, db *gorm.DB, id, name, about string) error {
	res := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Updates(map[string]any{"name": name, "about": about})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateUserAvatar sets the avatar URL of the user identified by id.
// Returns ErrNotFound when no rows are affected.
func UpdateUserAvatar(ctx context.Context, db *gorm.DB, id, avatar string) error {
	res := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Update("avatar", avatar)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
