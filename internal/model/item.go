package model

import "time"

// ItemStatus статус продажи объявления.
type ItemStatus string

const (
	ItemStatusSale        ItemStatus = "SALE"
	ItemStatusReservation ItemStatus = "RESERVATION"
	ItemStatusSold        ItemStatus = "SOLD"
)

// Label возвращает человекочитаемое название статуса.
func (s ItemStatus) Label() string {
	switch s {
	case ItemStatusSale:
		return "판매중"
	case ItemStatusReservation:
		return "예약중"
	case ItemStatusSold:
		return "판매완료"
	}
	return string(s)
}

func (s ItemStatus) Valid() bool {
	switch s {
	case ItemStatusSale, ItemStatusReservation, ItemStatusSold:
		return true
	}
	return false
}

// Item — объявление о продаже.
type Item struct {
	ID     int64 `gorm:"primaryKey;autoIncrement"`
	UserID int64 `gorm:"not null;index"` // ссылка на users.id

	// Связи
	User *User `gorm:"constraint:OnUpdate:CASCADE"`

	Title          string `gorm:"not null"`
	Description    string `gorm:"not null"`
	ImageURL       string
	MinPriceWanted int        `gorm:"not null"`
	Status         ItemStatus `gorm:"type:varchar(16);not null;default:SALE;index"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
