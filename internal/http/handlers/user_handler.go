// User HTTP handlers.
//
// This file exposes the REST endpoints for accounts and profiles:
//   - POST  /signup           (register)
//   - POST  /signin           (login, sets the session cookie)
//   - GET   /users            (list)
//   - GET   /users/me         (own profile)
//   - GET   /users/:userId    (profile by id)
//   - PATCH /users/me         (update name/about)
//   - PATCH /users/me/avatar  (update avatar)
//
// Handlers are transport-thin: the validation gate has already enforced
// request shape, so they bind, call the service, and translate the outcome.
// Every failure goes to the error normalizer unchanged.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-cards-backend/internal/domain"
	"github.com/tbourn/go-cards-backend/internal/http/middleware"
	"github.com/tbourn/go-cards-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// UserService defines the account operations consumed by HTTP handlers.
//
// Implementations must be safe for concurrent use and honor the provided
// context for cancellation and timeouts.
type UserService interface {
	// Register creates an account, applying profile defaults.
	Register(ctx context.Context, in services.RegisterInput) (*domain.User, error)
	// Login exchanges credentials for a session token and the account id.
	Login(ctx context.Context, email, password string) (token, userID string, err error)
	// Get returns one user by id.
	Get(ctx context.Context, id string) (*domain.User, error)
	// List returns all registered users.
	List(ctx context.Context) ([]domain.User, error)
	// UpdateProfile sets name and about for the given user.
	UpdateProfile(ctx context.Context, id, name, about string) error
	// UpdateAvatar sets the avatar URL for the given user.
	UpdateAvatar(ctx context.Context, id, avatar string) error
}

// CardService defines the card operations consumed by HTTP handlers.
type CardService interface {
	// Create inserts a card; an optional idempotency key makes the call
	// safely retryable. replayed is true when a stored result was returned.
	Create(ctx context.Context, ownerID, name, link, idemKey string) (card *domain.Card, replayed bool, err error)
	// List returns every card with its likes.
	List(ctx context.Context) ([]domain.Card, error)
	// Delete removes a card on behalf of userID (owner only).
	Delete(ctx context.Context, userID, cardID string) error
	// Like / Unlike are idempotent set-membership updates.
	Like(ctx context.Context, userID, cardID string) error
	Unlike(ctx context.Context, userID, cardID string) error
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for users and cards. It depends on
// abstract service interfaces to keep transport concerns separate from
// business logic.
type Handlers struct {
	userSvc UserService
	cardSvc CardService

	// cookieMaxAge bounds the session cookie lifetime (distinct from the
	// token's own validity window).
	cookieMaxAge time.Duration
}

// New constructs a Handlers instance bound to the given services.
func New(userSvc UserService, cardSvc CardService, cookieMaxAge time.Duration) *Handlers {
	return &Handlers{userSvc: userSvc, cardSvc: cardSvc, cookieMaxAge: cookieMaxAge}
}

//
// DTOs
//

// SignUpRequest is the JSON payload for registration. Profile fields are
// optional; defaults are applied server-side.
type SignUpRequest struct {
	Name     string `json:"name" example:"Жак-Ив Кусто"`
	About    string `json:"about" example:"Исследователь"`
	Avatar   string `json:"avatar" example:"https://example.com/me.png"`
	Email    string `json:"email" binding:"required" example:"captain@calypso.sea"`
	Password string `json:"password" binding:"required"`
}

// SignInRequest is the JSON payload for login.
type SignInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignInResponse carries the issued session token and account id.
type SignInResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// UpdateProfileRequest is the JSON payload for PATCH /users/me.
type UpdateProfileRequest struct {
	Name  string `json:"name" binding:"required"`
	About string `json:"about" binding:"required"`
}

// UpdateAvatarRequest is the JSON payload for PATCH /users/me/avatar.
type UpdateAvatarRequest struct {
	Avatar string `json:"avatar" binding:"required"`
}

// ListUsersResponse wraps the users collection.
type ListUsersResponse struct {
	Users []domain.User `json:"users"`
}

// UserResponse wraps a single user.
type UserResponse struct {
	User *domain.User `json:"user"`
}

const msgProfileUpdated = "Пользователь успешно обновлен"

//
// Handlers
//

// SignUp godoc
// @ID          signUp
// @Summary     Register a new user
// @Description Creates an account and returns the public profile. The password is never returned.
// @Tags        Users
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.SignUpRequest  true  "Registration payload"
// @Success     201  {object}  domain.User
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     409  {object}  handlers.ErrorResponse  "Email already registered"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /signup [post]
func (h *Handlers) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	u, err := h.userSvc.Register(c.Request.Context(), services.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		About:    req.About,
		Avatar:   req.Avatar,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusCreated, u)
}

// SignIn godoc
// @ID          signIn
// @Summary     Log in
// @Description Exchanges credentials for a session token and sets the HTTP-only session cookie.
// @Tags        Users
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.SignInRequest  true  "Login payload"
// @Success     200  {object}  handlers.SignInResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     401  {object}  handlers.ErrorResponse  "Wrong email or password"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /signin [post]
func (h *Handlers) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	token, userID, err := h.userSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetCookie(middleware.SessionCookie, token, int(h.cookieMaxAge.Seconds()), "/", "", false, true)
	ok(c, http.StatusOK, SignInResponse{Token: token, UserID: userID})
}

// ListUsers godoc
// @ID          listUsers
// @Summary     List users
// @Tags        Users
// @Produce     json
// @Success     200  {object}  handlers.ListUsersResponse
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /users [get]
func (h *Handlers) ListUsers(c *gin.Context) {
	users, err := h.userSvc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusOK, ListUsersResponse{Users: users})
}

// GetMe godoc
// @ID          getMe
// @Summary     Get own profile
// @Tags        Users
// @Produce     json
// @Success     200  {object}  handlers.UserResponse
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     404  {object}  handlers.ErrorResponse  "User not found"
// @Router      /users/me [get]
func (h *Handlers) GetMe(c *gin.Context) {
	u, err := h.userSvc.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusOK, UserResponse{User: u})
}

// GetUser godoc
// @ID          getUser
// @Summary     Get a user by id
// @Tags        Users
// @Produce     json
// @Param       userId  path  string  true  "User id (24 hex chars)"
// @Success     200  {object}  handlers.UserResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Malformed id"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     404  {object}  handlers.ErrorResponse  "User not found"
// @Router      /users/{userId} [get]
func (h *Handlers) GetUser(c *gin.Context) {
	u, err := h.userSvc.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusOK, UserResponse{User: u})
}

// UpdateProfile godoc
// @ID          updateProfile
// @Summary     Update own name and about
// @Tags        Users
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.UpdateProfileRequest  true  "Profile payload"
// @Success     200  {object}  map[string]string
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     404  {object}  handlers.ErrorResponse  "User not found"
// @Router      /users/me [patch]
func (h *Handlers) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	if err := h.userSvc.UpdateProfile(c.Request.Context(), middleware.UserID(c), req.Name, req.About); err != nil {
		respondError(c, err)
		return
	}
	message(c, msgProfileUpdated)
}

// UpdateAvatar godoc
// @ID          updateAvatar
// @Summary     Update own avatar
// @Tags        Users
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.UpdateAvatarRequest  true  "Avatar payload"
// @Success     200  {object}  map[string]string
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     404  {object}  handlers.ErrorResponse  "User not found"
// @Router      /users/me/avatar [patch]
func (h *Handlers) UpdateAvatar(c *gin.Context) {
	var req UpdateAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	if err := h.userSvc.UpdateAvatar(c.Request.Context(), middleware.UserID(c), req.Avatar); err != nil {
		respondError(c, err)
		return
	}
	message(c, msgProfileUpdated)
}
