package model

import "time"

// NegotiationStatus состояние ценового предложения.
type NegotiationStatus string

const (
	NegotiationSuggest NegotiationStatus = "SUGGEST"
	NegotiationAccept  NegotiationStatus = "ACCEPT"
	NegotiationReject  NegotiationStatus = "REJECT"
)

func (s NegotiationStatus) Valid() bool {
	switch s {
	case NegotiationSuggest, NegotiationAccept, NegotiationReject:
		return true
	}
	return false
}

// Negotiation — предложение цены покупателем по объявлению продавца.
// На пару (item, buyer) допускается одна запись: уникальный индекс idx_negotiation_item_buyer.
type Negotiation struct {
	ID       int64 `gorm:"primaryKey;autoIncrement"`
	ItemID   int64 `gorm:"not null;uniqueIndex:idx_negotiation_item_buyer"`
	SellerID int64 `gorm:"not null;index"`
	BuyerID  int64 `gorm:"not null;index;uniqueIndex:idx_negotiation_item_buyer"`

	Item   *Item
	Seller *User `gorm:"foreignKey:SellerID"`
	Buyer  *User `gorm:"foreignKey:BuyerID"`

	SuggestedPrice int               `gorm:"not null"`
	Status         NegotiationStatus `gorm:"type:varchar(16);not null;default:SUGGEST"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
