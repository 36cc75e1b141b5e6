// Package validation declares the per-route request schemas and evaluates
// incoming payloads against them. Schemas are pure data: each route names the
// body fields and path parameters it accepts and the constraint set for each.
// Evaluation happens once per request, in the gate middleware, before any
// handler or persistence access.
package validation

import (
	"regexp"

	"github.com/tbourn/go-cards-backend/internal/domain"
)

// validHexID delegates to the canonical identifier check so the gate and the
// model layer agree on the id shape.
func validHexID(s string) bool { return domain.ValidID(s) }

// Format names a well-known value shape checked beyond length constraints.
type Format int

const (
	// FormatNone applies no shape check.
	FormatNone Format = iota
	// FormatEmail requires a syntactically valid email address.
	FormatEmail
	// FormatURL requires a scheme-prefixed or www./user-info-prefixed URL.
	FormatURL
	// FormatHexID requires exactly 24 hex characters.
	FormatHexID
)

var (
	// urlRE accepts scheme-prefixed or bare www./user-info-prefixed hostnames
	// followed by an optional path, query, and fragment.
	urlRE = regexp.MustCompile(`^(([A-Za-z]{3,9}:(?://)?)(?:[\-;:&=\+\$,\w]+@)?[A-Za-z0-9.\-]+|(?:www\.|[\-;:&=\+\$,\w]+@)[A-Za-z0-9.\-]+)((?:/[\+~%/.\w\-_]*)?\??(?:[\-\+=&;%@.\w_]*)#?(?:[.!/\\\w]*))?$`)

	emailRE = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)
)

// Rule constrains a single named field.
type Rule struct {
	Field    string
	Required bool
	MinLen   int // rune count; 0 disables
	MaxLen   int // rune count; 0 disables
	Format   Format
}

// Schema is the full rule set bound to one route: path parameters and
// body fields. Body fields not named in the schema are rejected.
type Schema struct {
	Params []Rule
	Body   []Rule
}

// FieldError is one itemized violation reported back to the client.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Route schemas. These reproduce the API's validation contract exactly:
// card name 2–30 required, link URL required, ids 24 hex chars, signup
// profile fields optional 2–30, email/password required, profile update
// fields required 2–30, avatar update URL required.
var (
	CreateCard = Schema{Body: []Rule{
		{Field: "name", Required: true, MinLen: 2, MaxLen: 30},
		{Field: "link", Required: true, Format: FormatURL},
	}}

	CardID = Schema{Params: []Rule{
		{Field: "cardId", Required: true, Format: FormatHexID},
	}}

	UserID = Schema{Params: []Rule{
		{Field: "userId", Required: true, Format: FormatHexID},
	}}

	CreateUser = Schema{Body: []Rule{
		{Field: "name", MinLen: 2, MaxLen: 30},
		{Field: "about", MinLen: 2, MaxLen: 30},
		{Field: "avatar", Format: FormatURL},
		{Field: "email", Required: true, Format: FormatEmail},
		{Field: "password", Required: true},
	}}

	Login = Schema{Body: []Rule{
		{Field: "email", Required: true, Format: FormatEmail},
		{Field: "password", Required: true},
	}}

	UpdateProfile = Schema{Body: []Rule{
		{Field: "name", Required: true, MinLen: 2, MaxLen: 30},
		{Field: "about", Required: true, MinLen: 2, MaxLen: 30},
	}}

	UpdateAvatar = Schema{Body: []Rule{
		{Field: "avatar", Required: true, Format: FormatURL},
	}}
)
