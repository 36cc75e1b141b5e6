// Package services – CardService
//
// This file implements the CardService, which governs card creation, listing,
// owner-only deletion, and the likes set. Existence and ownership checks run
// in the same transaction as the mutation they guard. Domain errors
// (ErrCardNotFound, ErrNotCardOwner) are returned for predictable cases so
// handlers can map them to HTTP results consistently.
package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-cards-backend/internal/domain"
	"github.com/tbourn/go-cards-backend/internal/repo"
)

// CardService implements the use-cases around cards and likes.
type CardService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// IdempotencyTTL is how long a recorded create may be replayed.
	IdempotencyTTL time.Duration
}

// NewCardService constructs a CardService over db.
func NewCardService(db *gorm.DB, idemTTL time.Duration) *CardService {
	return &CardService{DB: db, IdempotencyTTL: idemTTL}
}

// Create inserts a new card owned by ownerID. The request gate has already
// checked name length and link shape.
//
// When idemKey is non-empty the create is safely retryable: a still-valid
// record for (ownerID, idemKey) short-circuits to the originally created
// card with replayed=true; otherwise the insert and the idempotency record
// are written in one transaction. A concurrent retry losing the record race
// is served the winner's card.
func (s *CardService) Create(ctx context.Context, ownerID, name, link, idemKey string) (*domain.Card, bool, error) {
	if idemKey == "" {
		c, err := repo.CreateCard(ctx, s.DB, ownerID, name, link)
		return c, false, err
	}

	if rec, err := repo.GetIdempotency(ctx, s.DB, ownerID, idemKey, time.Now().UTC()); err == nil {
		c, err := repo.GetCard(ctx, s.DB, rec.CardID)
		if err == nil {
			return c, true, nil
		}
		// Recorded card vanished; fall through and create anew below.
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, false, err
	}

	var card *domain.Card
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		card, err = repo.CreateCard(ctx, tx, ownerID, name, link)
		if err != nil {
			return err
		}
		_, err = repo.CreateIdempotency(ctx, tx, ownerID, idemKey, card.ID, 201, s.IdempotencyTTL)
		return err
	})
	if errors.Is(err, repo.ErrDuplicate) {
		// Lost the race to a concurrent retry; serve the stored result.
		if rec, lerr := repo.GetIdempotency(ctx, s.DB, ownerID, idemKey, time.Now().UTC()); lerr == nil {
			c, gerr := repo.GetCard(ctx, s.DB, rec.CardID)
			if gerr == nil {
				return c, true, nil
			}
		}
		return nil, false, err
	}
	if err != nil {
		return nil, false, err
	}
	return card, false, nil
}

// List returns every card with its likes, newest first.
func (s *CardService) List(ctx context.Context) ([]domain.Card, error) {
	return repo.ListCards(ctx, s.DB)
}

// Get returns the card identified by id, or ErrCardNotFound.
func (s *CardService) Get(ctx context.Context, id string) (*domain.Card, error) {
	c, err := repo.GetCard(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	return c, nil
}

// Delete removes cardID on behalf of userID.
//
// Semantics:
//   - The card must exist; otherwise ErrCardNotFound.
//   - Only the owner may delete it; otherwise ErrNotCardOwner and the card
//     is left untouched.
//
// The ownership check and the delete run in one transaction.
func (s *CardService) Delete(ctx context.Context, userID, cardID string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := repo.GetCard(ctx, tx, cardID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrCardNotFound
			}
			return err
		}
		if c.OwnerID != userID {
			return ErrNotCardOwner
		}
		return repo.DeleteCard(ctx, tx, cardID)
	})
}

// Like adds userID to cardID's likes set. Liking an already-liked card has no
// additional effect. Returns ErrCardNotFound when the card does not exist.
func (s *CardService) Like(ctx context.Context, userID, cardID string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureCard(ctx, tx, cardID); err != nil {
			return err
		}
		return repo.AddLike(ctx, tx, cardID, userID)
	})
}

// Unlike removes userID from cardID's likes set. Removing an absent like is a
// no-op. Returns ErrCardNotFound when the card does not exist.
func (s *CardService) Unlike(ctx context.Context, userID, cardID string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureCard(ctx, tx, cardID); err != nil {
			return err
		}
		return repo.RemoveLike(ctx, tx, cardID, userID)
	})
}

// ensureCard verifies cardID resolves to a record, translating the repo
// sentinel into the domain error.
func ensureCard(ctx context.Context, tx *gorm.DB, cardID string) error {
	var n int64
	if err := tx.WithContext(ctx).Model(&domain.Card{}).Where("id = ?", cardID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrCardNotFound
	}
	return nil
}
