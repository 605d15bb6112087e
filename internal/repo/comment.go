package repo

import (
	"context"
	"market/internal/model"

	"gorm.io/gorm"
)

// CommentRepository хранит комментарии к объявлениям.
type CommentRepository interface {
	Create(ctx context.Context, c *model.Comment) error
	GetByID(ctx context.Context, id int64) (*model.Comment, error)
	Update(ctx context.Context, c *model.Comment) error
	Delete(ctx context.Context, id int64) error
	ListByItem(ctx context.Context, itemID int64, page, size int) ([]model.Comment, int64, error)
}

type commentRepo struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepo{db: db}
}

func (r *commentRepo) Create(ctx context.Context, c *model.Comment) error {
	return wrapCreate(conn(ctx, r.db).Create(c).Error)
}

func (r *commentRepo) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	var c model.Comment
	if err := conn(ctx, r.db).Preload("User").First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *commentRepo) Update(ctx context.Context, c *model.Comment) error {
	return conn(ctx, r.db).Omit("Item", "User").Save(c).Error
}

func (r *commentRepo) Delete(ctx context.Context, id int64) error {
	return conn(ctx, r.db).Delete(&model.Comment{}, id).Error
}

func (r *commentRepo) ListByItem(ctx context.Context, itemID int64, page, size int) ([]model.Comment, int64, error) {
	var total int64
	if err := conn(ctx, r.db).Model(&model.Comment{}).Where("item_id = ?", itemID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.Comment
	err := conn(ctx, r.db).Scopes(paginate(page, size)).
		Preload("User").
		Where("item_id = ?", itemID).
		Order("id ASC").
		Find(&list).Error
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}
