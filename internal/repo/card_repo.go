// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Card model
// and its likes set.
//
// Like operations are single atomic statements: AddLike inserts with
// ON CONFLICT DO NOTHING (add-to-set) and RemoveLike is a plain delete
// (remove-from-set). Concurrent like/unlike on the same card therefore never
// race read-modify-write style.
//
// Functions:
//
//   - CreateCard(ctx, db, ownerID, name, link) -> *domain.Card, error
//     Inserts a new Card row with a 24-hex id and UTC timestamp.
//
//   - ListCards(ctx, db) -> []domain.Card, error
//     Returns all cards, newest first, with their likes loaded.
//
//   - GetCard(ctx, db, id) -> *domain.Card, error
//     Fetches a single card by id with likes, or ErrNotFound.
//
//   - DeleteCard(ctx, db, id) -> error
//     Removes a card and its likes rows. ErrNotFound when missing.
//
//   - AddLike / RemoveLike(ctx, db, cardID, userID) -> error
//     Atomic set membership updates on the likes set.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-cards-backend/internal/domain"
)

// CreateCard inserts a new Card row owned by ownerID. The card id is a fresh
// 24-hex identifier and CreatedAt is set to UTC.
func CreateCard(ctx context.Context, db *gorm.DB, ownerID, name, link string) (*domain.Card, error) {
	c := &domain.Card{
		ID:        domain.NewID(),
		Name:      name,
		Link:      link,
		OwnerID:   ownerID,
		Likes:     []string{},
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// ListCards returns all cards ordered by creation time descending, each with
// its likes list populated. It returns an empty slice when no cards exist.
func ListCards(ctx context.Context, db *gorm.DB) ([]domain.Card, error) {
	var out []domain.Card
	if err := db.WithContext(ctx).Order("created_at desc").Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return []domain.Card{}, nil
	}

	ids := make([]string, len(out))
	for i := range out {
		out[i].Likes = []string{}
		ids[i] = out[i].ID
	}
	var likes []domain.CardLike
	if err := db.WithContext(ctx).Where("card_id IN ?", ids).Find(&likes).Error; err != nil {
		return nil, err
	}
	byCard := make(map[string][]string, len(out))
	for _, l := range likes {
		byCard[l.CardID] = append(byCard[l.CardID], l.UserID)
	}
	for i := range out {
		if ls, ok := byCard[out[i].ID]; ok {
			out[i].Likes = ls
		}
	}
	return out, nil
}

// GetCard fetches a single card by id with its likes list populated.
// Returns ErrNotFound when the card does not exist.
func GetCard(ctx context.Context, db *gorm.DB, id string) (*domain.Card, error) {
	var c domain.Card
	if err := db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	c.Likes = []string{}
	var likes []domain.CardLike
	if err := db.WithContext(ctx).Where("card_id = ?", id).Find(&likes).Error; err != nil {
		return nil, err
	}
	for _, l := range likes {
		c.Likes = append(c.Likes, l.UserID)
	}
	return &c, nil
}

// DeleteCard removes the card identified by id together with its likes rows.
// Returns ErrNotFound when no card was deleted.
func DeleteCard(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("card_id = ?", id).Delete(&domain.CardLike{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&domain.Card{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// AddLike records that userID likes cardID. The insert is a single
// ON CONFLICT DO NOTHING statement, so repeating it for the same pair has no
// additional effect.
func AddLike(ctx context.Context, db *gorm.DB, cardID, userID string) error {
	l := &domain.CardLike{
		CardID:    cardID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(l).Error
}

// RemoveLike deletes userID's like of cardID. Removing an absent like is a
// no-op, matching set semantics.
func RemoveLike(ctx context.Context, db *gorm.DB, cardID, userID string) error {
	return db.WithContext(ctx).
		Where("card_id = ? AND user_id = ?", cardID, userID).
		Delete(&domain.CardLike{}).Error
}
