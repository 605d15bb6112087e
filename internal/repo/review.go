package repo

import (
	"context"
	"market/internal/model"

	"gorm.io/gorm"
)

// ReviewRepository хранит отзывы по сделкам.
type ReviewRepository interface {
	Create(ctx context.Context, rv *model.Review) error
	// Exists проверяет отзыв по тройке (объявление, автор, адресат).
	Exists(ctx context.Context, itemID, reviewerID, revieweeID int64) (bool, error)
	ListByReviewee(ctx context.Context, revieweeID int64, page, size int) ([]model.Review, int64, error)
}

type reviewRepo struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepo{db: db}
}

func (r *reviewRepo) Create(ctx context.Context, rv *model.Review) error {
	return wrapCreate(conn(ctx, r.db).Omit("Item", "Reviewer", "Reviewee").Create(rv).Error)
}

func (r *reviewRepo) Exists(ctx context.Context, itemID, reviewerID, revieweeID int64) (bool, error) {
	var cnt int64
	err := conn(ctx, r.db).Model(&model.Review{}).
		Where("item_id = ? AND reviewer_id = ? AND reviewee_id = ?", itemID, reviewerID, revieweeID).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *reviewRepo) ListByReviewee(ctx context.Context, revieweeID int64, page, size int) ([]model.Review, int64, error) {
	var total int64
	if err := conn(ctx, r.db).Model(&model.Review{}).Where("reviewee_id = ?", revieweeID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.Review
	err := conn(ctx, r.db).Scopes(paginate(page, size)).
		Preload("Reviewer").
		Where("reviewee_id = ?", revieweeID).
		Order("id DESC").
		Find(&list).Error
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}
