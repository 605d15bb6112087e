package handlers

import (
	"market/internal/config"
	"market/internal/middleware"
	"market/internal/model"
	"market/internal/service"
	"net/http"

	"go.uber.org/zap"
)

type NegotiationHandler struct {
	NegotiationService *service.NegotiationService
	Logger             *zap.SugaredLogger
	Config             *config.Config
}

func NewNegotiationHandler(negotiationService *service.NegotiationService, logger *zap.SugaredLogger, cfg *config.Config) *NegotiationHandler {
	return &NegotiationHandler{NegotiationService: negotiationService, Logger: logger, Config: cfg}
}

// NegotiationCreateRequest: status обязателен в запросе, но новое предложение всегда создаётся в SUGGEST.
type NegotiationCreateRequest struct {
	Status         model.NegotiationStatus `json:"status" validate:"required" msg:"제안 상태는 필수입니다."`
	SuggestedPrice int                     `json:"suggestedPrice" validate:"gt=0" msg:"가격은 양수여야 합니다."`
}

type NegotiationResponse struct {
	ID             int64                   `json:"id"`
	ItemID         int64                   `json:"itemId"`
	SuggestedPrice int                     `json:"suggestedPrice"`
	Status         model.NegotiationStatus `json:"status"`
	Username       string                  `json:"username,omitempty"`
	ItemTitle      string                  `json:"itemTitle,omitempty"`
}

func toNegotiationResponse(n model.Negotiation) NegotiationResponse {
	res := NegotiationResponse{ID: n.ID, ItemID: n.ItemID, SuggestedPrice: n.SuggestedPrice, Status: n.Status}
	if n.Buyer != nil {
		res.Username = n.Buyer.Username
	}
	if n.Item != nil {
		res.ItemTitle = n.Item.Title
	}
	return res
}

// CreateNegotiation предложение цены покупателем
func (h *NegotiationHandler) CreateNegotiation(w http.ResponseWriter, r *http.Request) {
	itemID, valid := pathID(r, "itemId")
	if !valid {
		badRequest(w, msgInvalidRequest)
		return
	}
	var req NegotiationCreateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	n, err := h.NegotiationService.CreateNegotiation(r.Context(), itemID, req.SuggestedPrice, userID)
	if err != nil {
		writeError(w, h.Logger, r, err)
		return
	}
	ok(w, toNegotiationResponse(*n))
}

// GetReceived предложения по объявлениям текущего продавца
func (h *NegotiationHandler) GetReceived(w http.ResponseWriter, r *http.Request) {
	page, valid := queryInt(r, "page", 0)
	if !valid {
		badRequest(w, msgInvalidRequest)
		return
	}
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	p, err := h.NegotiationService.GetReceivedNegotiations(r.Context(), userID, page)
	if err != nil {
		writeError(w, h.Logger, r, err)
		return
	}
	ok(w, service.MapPage(p, toNegotiationResponse))
}

// GetSent предложения, отправленные текущим покупателем
func (h *NegotiationHandler) GetSent(w http.ResponseWriter, r *http.Request) {
	page, valid := queryInt(r, "page", 0)
	if !valid {
		badRequest(w, msgInvalidRequest)
		return
	}
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	p, err := h.NegotiationService.GetSentNegotiations(r.Context(), userID, page)
	if err != nil {
		writeError(w, h.Logger, r, err)
		return
	}
	ok(w, service.MapPage(p, toNegotiationResponse))
}
