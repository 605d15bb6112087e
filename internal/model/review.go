package model

import "time"

// ReviewerType: роль автора отзыва в сделке.
type ReviewerType string

const (
	ReviewerSeller ReviewerType = "SELLER"
	ReviewerBuyer  ReviewerType = "BUYER"
)

// Review отзыв после продажи. Тройка (item, reviewer, reviewee) уникальна.
type Review struct {
	ID         int64 `gorm:"primaryKey;autoIncrement"`
	ItemID     int64 `gorm:"not null;uniqueIndex:idx_review_item_reviewer_reviewee"`
	ReviewerID int64 `gorm:"not null;uniqueIndex:idx_review_item_reviewer_reviewee"`
	RevieweeID int64 `gorm:"not null;index;uniqueIndex:idx_review_item_reviewer_reviewee"`

	Item     *Item
	Reviewer *User `gorm:"foreignKey:ReviewerID"`
	Reviewee *User `gorm:"foreignKey:RevieweeID"`

	Score        float64      `gorm:"not null"`
	Content      string       `gorm:"not null"`
	ReviewerType ReviewerType `gorm:"type:varchar(16);not null"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
