package handlers

import (
	"market/internal/config"
	"market/internal/middleware"
	"market/internal/model"
	"market/internal/service"
	"net/http"

	"go.uber.org/zap"
)

type CommentHandler struct {
	CommentService *service.CommentService
	Logger         *zap.SugaredLogger
	Config         *config.Config
}

func NewCommentHandler(commentService *service.CommentService, logger *zap.SugaredLogger, cfg *config.Config) *CommentHandler {
	return &CommentHandler{CommentService: commentService, Logger: logger, Config: cfg}
}

type CommentRequest struct {
	Content string `json:"content" validate:"notblank" msg:"댓글 내용은 필수입니다."`
}

type CommentReplyRequest struct {
	Reply string `json:"reply" validate:"notblank" msg:"답글 내용은 필수입니다."`
}

type CommentResponse struct {
	ID       int64  `json:"id"`
	ItemID   int64  `json:"itemId"`
	Content  string `json:"content"`
	Reply    string `json:"reply"`
	Username string `json:"username,omitempty"`
}

func toCommentResponse(c model.Comment) CommentResponse {
	res := CommentResponse{ID: c.ID, ItemID: c.ItemID, Content: c.Content, Reply: c.Reply}
	if c.User != nil {
		res.Username = c.User.Username
	}
	return res
}

// itemAndComment читает itemId и commentId из пути
func itemAndComment(r *http.Request) (itemID, commentID int64, valid bool) {
	itemID, okItem := pathID(r, "itemId")
	commentID, okComment := pathID(r, "commentId")
	return itemID, commentID, okItem && okComment
}

func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	itemID, valid := pathID(r, "itemId")
	if !valid {
		badRequest(w, msgInvalidRequest)
		return
	}
	var req CommentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	c, err := h.CommentService.Create(r.Context(), itemID, req.Content, userID)
	if err != nil {
		writeError(w, h.Logger, r, err)
		return
	}
	ok(w, toCommentResponse(*c))
}

func (h *CommentHandler) ReadCommentList(w http.ResponseWriter, r *http.Request) {
	itemID, valid := pathID(r, "itemId")
	page, limit, validPage := pageParams(r, service.DefaultPageSize)
	if !valid || !validPage {
		badRequest(w, msgInvalidRequest)
		return
	}
	p, err := h.CommentService.ReadCommentList(r.Context(), itemID, page, limit)
	if err != nil {
		writeError(w, h.Logger, r, err)
		return
	}
	ok(w, service.MapPage(p, toCommentResponse))
}

func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	itemID, commentID, valid := itemAndComment(r)
	if !valid {
		badRequest(w, msgInvalidRequest)
		return
	}
	var req CommentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	c, err := h.CommentService.UpdateComment(r.Context(), itemID, commentID, req.Content, userID)
	if err != nil {
		writeError(w, h.Logger, r, err)
		return
	}
	ok(w, toCommentResponse(*c))
}

func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	itemID, commentID, valid := itemAndComment(r)
	if !valid {
		badRequest(w, msgInvalidRequest)
		return
	}
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	c, err := h.CommentService.DeleteComment(r.Context(), itemID, commentID, userID)
	if err != nil {
		writeError(w, h.Logger, r, err)
		return
	}
	ok(w, toCommentResponse(*c))
}

// UpdateCommentReply ответ продавца на комментарий
func (h *CommentHandler) UpdateCommentReply(w http.ResponseWriter, r *http.Request) {
	itemID, commentID, valid := itemAndComment(r)
	if !valid {
		badRequest(w, msgInvalidRequest)
		return
	}
	var req CommentReplyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	c, err := h.CommentService.UpdateCommentReply(r.Context(), itemID, commentID, req.Reply, userID)
	if err != nil {
		writeError(w, h.Logger, r, err)
		return
	}
	ok(w, toCommentResponse(*c))
}
