package model

import "time"

// Comment — комментарий к объявлению с необязательным ответом продавца.
type Comment struct {
	ID     int64 `gorm:"primaryKey;autoIncrement"`
	ItemID int64 `gorm:"not null;index"`
	UserID int64 `gorm:"not null;index"`

	Item *Item
	User *User

	Content string `gorm:"not null"`
	Reply   string

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
