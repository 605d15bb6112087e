// Package events публикует доменные события маркетплейса во внешнюю шину.
package events

import "context"

// Темы событий.
const (
	SubjectNegotiationCreated = "market.negotiation.created"
	SubjectReviewCreated      = "market.review.created"
	SubjectItemStatusChanged  = "market.item.status_changed"
	SubjectChatMessage        = "market.chat.message"
)

// Publisher отправляет событие в тему subject. Ошибка публикации не откатывает операцию.
type Publisher interface {
	Publish(ctx context.Context, subject string, payload any) error
}

// NegotiationCreated: предложение цены создано.
type NegotiationCreated struct {
	NegotiationID  int64 `json:"negotiationId"`
	ItemID         int64 `json:"itemId"`
	SellerID       int64 `json:"sellerId"`
	BuyerID        int64 `json:"buyerId"`
	SuggestedPrice int   `json:"suggestedPrice"`
}

// ReviewCreated: оставлен отзыв.
type ReviewCreated struct {
	ReviewID     int64   `json:"reviewId"`
	ItemID       int64   `json:"itemId"`
	ReviewerID   int64   `json:"reviewerId"`
	RevieweeID   int64   `json:"revieweeId"`
	Score        float64 `json:"score"`
	ReviewerType string  `json:"reviewerType"`
}

// ItemStatusChanged: продавец сменил статус объявления.
type ItemStatusChanged struct {
	ItemID int64  `json:"itemId"`
	From   string `json:"from"`
	To     string `json:"to"`
}

// ChatMessagePosted: сообщение в комнате, внешний ретранслятор доставляет его участникам.
type ChatMessagePosted struct {
	RoomID    int64  `json:"roomId"`
	MessageID int64  `json:"messageId"`
	Writer    string `json:"writer"`
	Content   string `json:"content"`
}

// Noop используется, когда NATS не настроен.
type Noop struct{}

func (Noop) Publish(context.Context, string, any) error { return nil }
