// Card HTTP handlers.
//
// This file exposes the REST endpoints for picture cards:
//   - POST   /cards                 (create, Idempotency-Key aware)
//   - GET    /cards                 (list)
//   - DELETE /cards/:cardId         (owner-only delete)
//   - PUT    /cards/:cardId/likes   (like)
//   - DELETE /cards/:cardId/likes   (unlike)
//
// The validation gate has already checked body shape and identifier format,
// so handlers bind, call the service, and translate the outcome. Failures go
// to the error normalizer unchanged.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-cards-backend/internal/domain"
	"github.com/tbourn/go-cards-backend/internal/http/middleware"
)

// CreateCardRequest is the JSON payload for creating a card.
type CreateCardRequest struct {
	Name string `json:"name" binding:"required" example:"Байкал"`
	Link string `json:"link" binding:"required" example:"https://example.com/baikal.png"`
}

// ListCardsResponse wraps the cards collection.
type ListCardsResponse struct {
	Cards []domain.Card `json:"cards"`
}

// Confirmation messages for card mutations.
const (
	msgCardDeleted = "Карточка удалена"
	msgLikeSet     = "Лайк поставлен."
	msgLikeRemoved = "Лайк удален"
)

// CreateCard godoc
// @ID          createCard
// @Summary     Create a card
// @Description Creates a card owned by the current user. An Idempotency-Key header makes the call safely retryable.
// @Tags        Cards
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key  header  string  false  "Retry-safe creation key"
// @Param       body  body  handlers.CreateCardRequest  true  "Card payload"
// @Success     201  {object}  domain.Card
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /cards [post]
func (h *Handlers) CreateCard(c *gin.Context) {
	var req CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	idemKey, _ := middleware.GetIdempotencyKey(c)
	card, _, err := h.cardSvc.Create(c.Request.Context(), middleware.UserID(c), req.Name, req.Link, idemKey)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusCreated, card)
}

// ListCards godoc
// @ID          listCards
// @Summary     List all cards
// @Tags        Cards
// @Produce     json
// @Success     200  {object}  handlers.ListCardsResponse
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /cards [get]
func (h *Handlers) ListCards(c *gin.Context) {
	cards, err := h.cardSvc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusOK, ListCardsResponse{Cards: cards})
}

// DeleteCard godoc
// @ID          deleteCard
// @Summary     Delete own card
// @Tags        Cards
// @Produce     json
// @Param       cardId  path  string  true  "Card id (24 hex chars)"
// @Success     200  {object}  map[string]string
// @Failure     400  {object}  handlers.ErrorResponse  "Malformed id"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     403  {object}  handlers.ErrorResponse  "Not the owner"
// @Failure     404  {object}  handlers.ErrorResponse  "Card not found"
// @Router      /cards/{cardId} [delete]
func (h *Handlers) DeleteCard(c *gin.Context) {
	if err := h.cardSvc.Delete(c.Request.Context(), middleware.UserID(c), c.Param("cardId")); err != nil {
		respondError(c, err)
		return
	}
	message(c, msgCardDeleted)
}

// LikeCard godoc
// @ID          likeCard
// @Summary     Like a card
// @Description Adds the current user to the card's likes set. Repeating the call has no additional effect.
// @Tags        Cards
// @Produce     json
// @Param       cardId  path  string  true  "Card id (24 hex chars)"
// @Success     200  {object}  map[string]string
// @Failure     400  {object}  handlers.ErrorResponse  "Malformed id"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     404  {object}  handlers.ErrorResponse  "Card not found"
// @Router      /cards/{cardId}/likes [put]
func (h *Handlers) LikeCard(c *gin.Context) {
	if err := h.cardSvc.Like(c.Request.Context(), middleware.UserID(c), c.Param("cardId")); err != nil {
		respondError(c, err)
		return
	}
	message(c, msgLikeSet)
}

// UnlikeCard godoc
// @ID          unlikeCard
// @Summary     Remove a like from a card
// @Description Removes the current user from the card's likes set. Removing an absent like is a no-op.
// @Tags        Cards
// @Produce     json
// @Param       cardId  path  string  true  "Card id (24 hex chars)"
// @Success     200  {object}  map[string]string
// @Failure     400  {object}  handlers.ErrorResponse  "Malformed id"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     404  {object}  handlers.ErrorResponse  "Card not found"
// @Router      /cards/{cardId}/likes [delete]
func (h *Handlers) UnlikeCard(c *gin.Context) {
	if err := h.cardSvc.Unlike(c.Request.Context(), middleware.UserID(c), c.Param("cardId")); err != nil {
		respondError(c, err)
		return
	}
	message(c, msgLikeRemoved)
}
