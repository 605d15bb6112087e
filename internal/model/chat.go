package model

import "time"

// ChatRoom — комната переписки покупателя и продавца по объявлению.
type ChatRoom struct {
	ID       int64 `gorm:"primaryKey;autoIncrement"`
	ItemID   int64 `gorm:"not null;uniqueIndex:idx_chat_room_item_buyer"`
	SellerID int64 `gorm:"not null;index"`
	BuyerID  int64 `gorm:"not null;index;uniqueIndex:idx_chat_room_item_buyer"`

	Item   *Item
	Seller *User `gorm:"foreignKey:SellerID"`
	Buyer  *User `gorm:"foreignKey:BuyerID"`

	RoomName string

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// ChatMessage сообщение в комнате.
type ChatMessage struct {
	ID      int64  `gorm:"primaryKey;autoIncrement"`
	RoomID  int64  `gorm:"not null;index"`
	Writer  string `gorm:"not null"`
	Content string `gorm:"not null"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// IsParticipant сообщает, является ли пользователь участником комнаты.
func (r *ChatRoom) IsParticipant(userID int64) bool {
	return r.SellerID == userID || r.BuyerID == userID
}
