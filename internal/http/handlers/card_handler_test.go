package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/tbourn/go-cards-backend/internal/domain"
)

func TestCreateCard_Created(t *testing.T) {
	bootstrap, _, db := newAPI(t, "")
	u := signup(t, bootstrap, "owner@x.io", "pw")
	r := remount(t, db, u.ID)

	w := doJSON(t, r, http.MethodPost, "/cards",
		`{"name":"Байкал","link":"https://pics.example/lake.png"}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	var card domain.Card
	if err := json.Unmarshal(w.Body.Bytes(), &card); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if card.OwnerID != u.ID || card.Name != "Байкал" {
		t.Fatalf("unexpected card: %+v", card)
	}
	if card.Likes == nil || len(card.Likes) != 0 {
		t.Fatalf("likes should serialize as [], got %#v", card.Likes)
	}
}

func TestCreateCard_IdempotencyKeyReplays(t *testing.T) {
	bootstrap, _, db := newAPI(t, "")
	u := signup(t, bootstrap, "retry@x.io", "pw")
	r := remount(t, db, u.ID)

	hdr := map[string]string{"Idempotency-Key": "create-once"}
	first := doJSON(t, r, http.MethodPost, "/cards", `{"name":"n","link":"https://x/1"}`, hdr)
	second := doJSON(t, r, http.MethodPost, "/cards", `{"name":"n","link":"https://x/1"}`, hdr)
	if first.Code != http.StatusCreated || second.Code != http.StatusCreated {
		t.Fatalf("codes = %d/%d", first.Code, second.Code)
	}

	var a, b domain.Card
	_ = json.Unmarshal(first.Body.Bytes(), &a)
	_ = json.Unmarshal(second.Body.Bytes(), &b)
	if a.ID != b.ID {
		t.Fatalf("retry created a second card: %q vs %q", a.ID, b.ID)
	}

	list := doJSON(t, r, http.MethodGet, "/cards", "", nil)
	var resp ListCardsResponse
	if err := json.Unmarshal(list.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(resp.Cards) != 1 {
		t.Fatalf("cards = %d, want 1", len(resp.Cards))
	}
}

func TestDeleteCard_OwnershipAndMessages(t *testing.T) {
	bootstrap, _, db := newAPI(t, "")
	owner := signup(t, bootstrap, "owner@y.io", "pw")
	intruder := signup(t, bootstrap, "intruder@y.io", "pw")

	asOwner := remount(t, db, owner.ID)
	asIntruder := remount(t, db, intruder.ID)

	w := doJSON(t, asOwner, http.MethodPost, "/cards", `{"name":"n","link":"https://x/1"}`, nil)
	var card domain.Card
	_ = json.Unmarshal(w.Body.Bytes(), &card)

	// Foreign delete → 403, verbatim message, card survives.
	w = doJSON(t, asIntruder, http.MethodDelete, "/cards/"+card.ID, "", nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("foreign delete = %d, want 403: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Пользователь не может удалять чужие карточки") {
		t.Fatalf("unexpected message: %s", w.Body.String())
	}

	// Owner delete → confirmation.
	w = doJSON(t, asOwner, http.MethodDelete, "/cards/"+card.ID, "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Карточка удалена") {
		t.Fatalf("owner delete = %d: %s", w.Code, w.Body.String())
	}

	// Gone now.
	w = doJSON(t, asOwner, http.MethodDelete, "/cards/"+card.ID, "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("repeat delete = %d, want 404", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Карточки с таким ID не существует") {
		t.Fatalf("unexpected message: %s", w.Body.String())
	}
}

func TestLikeUnlike_Confirmations(t *testing.T) {
	bootstrap, _, db := newAPI(t, "")
	owner := signup(t, bootstrap, "owner@z.io", "pw")
	fan := signup(t, bootstrap, "fan@z.io", "pw")

	asOwner := remount(t, db, owner.ID)
	asFan := remount(t, db, fan.ID)

	w := doJSON(t, asOwner, http.MethodPost, "/cards", `{"name":"n","link":"https://x/1"}`, nil)
	var card domain.Card
	_ = json.Unmarshal(w.Body.Bytes(), &card)

	w = doJSON(t, asFan, http.MethodPut, "/cards/"+card.ID+"/likes", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Лайк поставлен.") {
		t.Fatalf("like = %d: %s", w.Code, w.Body.String())
	}

	// visible in the list
	list := doJSON(t, asFan, http.MethodGet, "/cards", "", nil)
	var resp ListCardsResponse
	_ = json.Unmarshal(list.Body.Bytes(), &resp)
	if len(resp.Cards) != 1 || len(resp.Cards[0].Likes) != 1 || resp.Cards[0].Likes[0] != fan.ID {
		t.Fatalf("like not reflected: %+v", resp.Cards)
	}

	w = doJSON(t, asFan, http.MethodDelete, "/cards/"+card.ID+"/likes", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Лайк удален") {
		t.Fatalf("unlike = %d: %s", w.Code, w.Body.String())
	}

	// missing card → 404
	w = doJSON(t, asFan, http.MethodPut, "/cards/"+domain.NewID()+"/likes", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("like missing card = %d, want 404", w.Code)
	}
}
