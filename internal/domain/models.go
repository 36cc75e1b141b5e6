// Package domain defines the persistence models for users, cards, and likes.
// These types are mapped with GORM and form the core data layer of the
// photo-cards application.
package domain

import "time"

// Default profile values applied at registration when the corresponding
// fields are omitted from the signup payload.
const (
	DefaultName   = "Жак-Ив Кусто"
	DefaultAbout  = "Исследователь"
	DefaultAvatar = "https://pictures.s3.yandex.net/resources/jacques-cousteau_1604399756.png"
)

// User represents a registered account. The password hash is stored with the
// record but is never serialized into API responses.
//
// Fields:
//   - ID: stable 24-character hex identifier (primary key).
//   - Email: unique login identifier; indexed.
//   - Password: bcrypt hash; excluded from JSON.
//   - Name / About: short profile strings (2–30 chars, defaults applied).
//   - Avatar: profile picture URL (default applied).
type User struct {
	ID        string    `json:"_id"     gorm:"type:char(24);primaryKey"`
	Email     string    `json:"email"   gorm:"type:varchar(254);not null;uniqueIndex:ux_users_email"`
	Password  string    `json:"-"       gorm:"type:varchar(128);not null"`
	Name      string    `json:"name"    gorm:"type:varchar(30);not null"`
	About     string    `json:"about"   gorm:"type:varchar(30);not null"`
	Avatar    string    `json:"avatar"  gorm:"type:text;not null"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Card represents a picture card owned by a user. Likes live in the
// card_likes join table and are surfaced here as a plain list of user ids.
//
// Fields:
//   - ID: 24-character hex identifier (primary key).
//   - Name: card title (2–30 chars).
//   - Link: picture URL.
//   - OwnerID: id of the creating user; immutable after creation.
//   - Likes: ids of users who liked the card (set semantics; loaded by repo).
//   - CreatedAt: creation timestamp.
type Card struct {
	ID        string    `json:"_id"       gorm:"type:char(24);primaryKey"`
	Name      string    `json:"name"      gorm:"type:varchar(30);not null"`
	Link      string    `json:"link"      gorm:"type:text;not null"`
	OwnerID   string    `json:"owner"     gorm:"type:char(24);not null;index:idx_cards_owner"`
	Likes     []string  `json:"likes"     gorm:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the database table name for Card.
func (Card) TableName() string { return "cards" }

// CardLike is a single row of a card's likes set. The unique (card_id, user_id)
// index gives inserts add-to-set semantics: a second like by the same user
// conflicts instead of producing another row.
type CardLike struct {
	CardID    string `gorm:"type:char(24);not null;primaryKey;uniqueIndex:ux_card_likes,priority:1"`
	UserID    string `gorm:"type:char(24);not null;primaryKey;uniqueIndex:ux_card_likes,priority:2"`
	CreatedAt time.Time
}

// TableName returns the database table name for CardLike.
func (CardLike) TableName() string { return "card_likes" }
