package handlers_test

import (
	"market/internal/handlers"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func proposal(price int) map[string]any {
	return map[string]any{"status": "SUGGEST", "suggestedPrice": price}
}

func reviewPath(itemID, revieweeID int64) string {
	return "/item/" + itoa(itemID) + "/" + itoa(revieweeID) + "/review"
}

func TestCreateNegotiation(t *testing.T) {
	api := newTestAPI(t)
	_, seller := api.join(t, "seller")
	_, buyer := api.join(t, "buyer")
	itemID := api.createItem(t, seller, "guitar")

	rr := api.do(t, http.MethodPost, itemPath(itemID, "proposals"), map[string]any{"suggestedPrice": 1}, buyer)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "제안 상태는 필수입니다.", decodeEnvelope(t, rr).Message)

	rr = api.do(t, http.MethodPost, itemPath(itemID, "proposals"), proposal(-5), buyer)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "가격은 양수여야 합니다.", decodeEnvelope(t, rr).Message)

	rr = api.do(t, http.MethodPost, itemPath(itemID, "proposals"), proposal(9000), seller)
	require.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "CANNOT_NEGOTIATION_OWN_ITEM", decodeError(t, rr).ErrorCode)

	rr = api.do(t, http.MethodPost, itemPath(itemID, "proposals"), proposal(9000), buyer)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var n handlers.NegotiationResponse
	decodeData(t, rr, &n)
	assert.Equal(t, "SUGGEST", string(n.Status))
	assert.Equal(t, 9000, n.SuggestedPrice)

	rr = api.do(t, http.MethodPost, itemPath(itemID, "proposals"), proposal(9500), buyer)
	require.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "ALREADY_USER_NEGOTIATION", decodeError(t, rr).ErrorCode)

	rr = api.do(t, http.MethodPost, "/items/777/proposals", proposal(1), buyer)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	t.Run("lists", func(t *testing.T) {
		var p pageBody[handlers.NegotiationResponse]
		rr := api.do(t, http.MethodGet, "/items/received/proposals", nil, seller)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		decodeData(t, rr, &p)
		require.Len(t, p.Content, 1)
		assert.Equal(t, "buyer", p.Content[0].Username)
		assert.Equal(t, "guitar", p.Content[0].ItemTitle)

		rr = api.do(t, http.MethodGet, "/items/sent/proposals?page=0", nil, buyer)
		decodeData(t, rr, &p)
		assert.Len(t, p.Content, 1)

		rr = api.do(t, http.MethodGet, "/items/sent/proposals", nil, seller)
		decodeData(t, rr, &p)
		assert.Empty(t, p.Content)
	})

	t.Run("sold item", func(t *testing.T) {
		_, late := api.join(t, "late")
		api.setStatus(t, seller, itemID, "SOLD")
		rr := api.do(t, http.MethodPost, itemPath(itemID, "proposals"), proposal(9000), late)
		require.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, "ALREADY_ITEM_SOLD", decodeError(t, rr).ErrorCode)
	})
}

func TestCreateReview(t *testing.T) {
	api := newTestAPI(t)
	sellerID, seller := api.join(t, "seller")
	buyerID, buyer := api.join(t, "buyer")
	itemID := api.createItem(t, seller, "watch")

	body := map[string]any{"score": 4.5, "content": "smooth deal"}

	rr := api.do(t, http.MethodPost, reviewPath(itemID, buyerID), map[string]any{"content": "x"}, seller)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "평가 점수는 필수입니다.", decodeEnvelope(t, rr).Message)

	rr = api.do(t, http.MethodPost, reviewPath(itemID, buyerID), body, seller)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "NOT_MATCH_ITEM_STATUS_SOLD", decodeError(t, rr).ErrorCode)

	api.setStatus(t, seller, itemID, "SOLD")

	rr = api.do(t, http.MethodPost, reviewPath(itemID, sellerID), body, buyer)
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "NOT_FOUND_BUY", decodeError(t, rr).ErrorCode)

	rr = api.do(t, http.MethodPost, reviewPath(itemID, buyerID), body, seller)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var rv handlers.ReviewResponse
	decodeData(t, rr, &rv)
	assert.Equal(t, "SELLER", string(rv.ReviewerType))
	assert.InDelta(t, 4.5, rv.Score, 1e-9)

	rr = api.do(t, http.MethodPost, reviewPath(itemID, buyerID), body, seller)
	require.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "ALREADY_REVIEW", decodeError(t, rr).ErrorCode)

	rr = api.do(t, http.MethodPost, reviewPath(itemID, sellerID), body, buyer)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	decodeData(t, rr, &rv)
	assert.Equal(t, "BUYER", string(rv.ReviewerType))

	t.Run("reviews of user", func(t *testing.T) {
		var p pageBody[handlers.ReviewResponse]
		rr := api.do(t, http.MethodGet, "/users/"+itoa(sellerID)+"/reviews", nil, "")
		require.Equal(t, http.StatusOK, rr.Code)
		decodeData(t, rr, &p)
		require.Len(t, p.Content, 1)
		assert.Equal(t, buyerID, p.Content[0].ReviewerID)

		rr = api.do(t, http.MethodGet, "/users/4242/reviews", nil, "")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
