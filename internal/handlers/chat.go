package handlers

import (
	"market/internal/config"
	"market/internal/middleware"
	"market/internal/model"
	"market/internal/service"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type ChatHandler struct {
	ChatService *service.ChatService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

func NewChatHandler(chatService *service.ChatService, logger *zap.SugaredLogger, cfg *config.Config) *ChatHandler {
	return &ChatHandler{ChatService: chatService, Logger: logger, Config: cfg}
}

type ChatRoomCreateRequest struct {
	ItemID   int64  `json:"itemId" validate:"gt=0" msg:"아이템 번호는 필수입니다."`
	RoomName string `json:"roomName"`
}

type ChatMessageRequest struct {
	Content string `json:"content" validate:"notblank" msg:"메시지 내용은 필수입니다."`
}

type ChatRoomResponse struct {
	ID       int64  `json:"id"`
	ItemID   int64  `json:"itemId"`
	SellerID int64  `json:"sellerId"`
	BuyerID  int64  `json:"buyerId"`
	RoomName string `json:"roomName"`
}

type ChatMessageResponse struct {
	ID        int64     `json:"id"`
	RoomID    int64     `json:"roomId"`
	Writer    string    `json:"writer"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func toChatRoomResponse(room model.ChatRoom) ChatRoomResponse {
	return ChatRoomResponse{ID: room.ID, ItemID: room.ItemID, SellerID: room.SellerID, BuyerID: room.BuyerID, RoomName: room.RoomName}
}

func toChatMessageResponse(m model.ChatMessage) ChatMessageResponse {
	return ChatMessageResponse{ID: m.ID, RoomID: m.RoomID, Writer: m.Writer, Content: m.Content, CreatedAt: m.CreatedAt}
}

func (h *ChatHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req ChatRoomCreateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	room, err := h.ChatService.CreateRoom(r.Context(), userID, req.ItemID, req.RoomName)
	if err != nil {
		writeError(w, h.Logger, r, err)
		return
	}
	ok(w, toChatRoomResponse(*room))
}

func (h *ChatHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	rooms, err := h.ChatService.ListRooms(r.Context(), userID)
	if err != nil {
		writeError(w, h.Logger, r, err)
		return
	}
	out := make([]ChatRoomResponse, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, toChatRoomResponse(room))
	}
	ok(w, out)
}

func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	roomID, valid := pathID(r, "roomId")
	if !valid {
		badRequest(w, msgInvalidRequest)
		return
	}
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	msgs, err := h.ChatService.ListMessages(r.Context(), roomID, userID)
	if err != nil {
		writeError(w, h.Logger, r, err)
		return
	}
	out := make([]ChatMessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toChatMessageResponse(m))
	}
	ok(w, out)
}

func (h *ChatHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	roomID, valid := pathID(r, "roomId")
	if !valid {
		badRequest(w, msgInvalidRequest)
		return
	}
	var req ChatMessageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	msg, err := h.ChatService.PostMessage(r.Context(), roomID, userID, req.Content)
	if err != nil {
		writeError(w, h.Logger, r, err)
		return
	}
	ok(w, toChatMessageResponse(*msg))
}
