package handlers

import (
	"market/internal/config"
	"market/internal/middleware"
	"market/internal/model"
	"market/internal/service"
	"net/http"

	"go.uber.org/zap"
)

type ReviewHandler struct {
	ReviewService *service.ReviewService
	Logger        *zap.SugaredLogger
	Config        *config.Config
}

func NewReviewHandler(reviewService *service.ReviewService, logger *zap.SugaredLogger, cfg *config.Config) *ReviewHandler {
	return &ReviewHandler{ReviewService: reviewService, Logger: logger, Config: cfg}
}

type ReviewCreateRequest struct {
	Score   *float64 `json:"score" validate:"required" msg:"평가 점수는 필수입니다."`
	Content string   `json:"content" validate:"notblank" msg:"리뷰 내용은 필수입니다."`
}

type ReviewResponse struct {
	ID           int64              `json:"id"`
	ItemID       int64              `json:"itemId"`
	ReviewerID   int64              `json:"reviewerId"`
	RevieweeID   int64              `json:"revieweeId"`
	Score        float64            `json:"score"`
	Content      string             `json:"content"`
	ReviewerType model.ReviewerType `json:"reviewerType"`
}

func toReviewResponse(rv model.Review) ReviewResponse {
	return ReviewResponse{
		ID:           rv.ID,
		ItemID:       rv.ItemID,
		ReviewerID:   rv.ReviewerID,
		RevieweeID:   rv.RevieweeID,
		Score:        rv.Score,
		Content:      rv.Content,
		ReviewerType: rv.ReviewerType,
	}
}

// CreateReview отзыв о контрагенте по проданному объявлению
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	itemID, okItem := pathID(r, "itemId")
	revieweeID, okReviewee := pathID(r, "revieweeId")
	if !okItem || !okReviewee {
		badRequest(w, msgInvalidRequest)
		return
	}
	var req ReviewCreateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	rv, err := h.ReviewService.CreateReview(r.Context(), userID, revieweeID, service.ReviewInput{
		Score:   *req.Score,
		Content: req.Content,
	}, itemID)
	if err != nil {
		writeError(w, h.Logger, r, err)
		return
	}
	ok(w, toReviewResponse(*rv))
}

func (h *ReviewHandler) ListUserReviews(w http.ResponseWriter, r *http.Request) {
	userID, okUser := pathID(r, "userId")
	page, okPage := queryInt(r, "page", 0)
	if !okUser || !okPage {
		badRequest(w, msgInvalidRequest)
		return
	}
	p, err := h.ReviewService.ListUserReviews(r.Context(), userID, page)
	if err != nil {
		writeError(w, h.Logger, r, err)
		return
	}
	ok(w, service.MapPage(p, toReviewResponse))
}
