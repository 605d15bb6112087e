package repo

import (
	"context"
	"market/internal/model"

	"gorm.io/gorm"
)

// NegotiationRepository хранит ценовые предложения покупателей.
// На паре (item_id, buyer_id) стоит уникальный индекс: повторная вставка даёт ErrDuplicate.
type NegotiationRepository interface {
	Create(ctx context.Context, n *model.Negotiation) error
	ExistsByItemAndBuyer(ctx context.Context, itemID, buyerID int64) (bool, error)
	ListBySeller(ctx context.Context, sellerID int64, page, size int) ([]model.Negotiation, int64, error)
	ListByBuyer(ctx context.Context, buyerID int64, page, size int) ([]model.Negotiation, int64, error)
}

type negotiationRepo struct {
	db *gorm.DB
}

func NewNegotiationRepository(db *gorm.DB) NegotiationRepository {
	return &negotiationRepo{db: db}
}

func (r *negotiationRepo) Create(ctx context.Context, n *model.Negotiation) error {
	return wrapCreate(conn(ctx, r.db).Omit("Item", "Seller", "Buyer").Create(n).Error)
}

func (r *negotiationRepo) ExistsByItemAndBuyer(ctx context.Context, itemID, buyerID int64) (bool, error) {
	var cnt int64
	err := conn(ctx, r.db).Model(&model.Negotiation{}).
		Where("item_id = ? AND buyer_id = ?", itemID, buyerID).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *negotiationRepo) ListBySeller(ctx context.Context, sellerID int64, page, size int) ([]model.Negotiation, int64, error) {
	return r.listBy(ctx, "seller_id = ?", sellerID, page, size)
}

func (r *negotiationRepo) ListByBuyer(ctx context.Context, buyerID int64, page, size int) ([]model.Negotiation, int64, error) {
	return r.listBy(ctx, "buyer_id = ?", buyerID, page, size)
}

func (r *negotiationRepo) listBy(ctx context.Context, cond string, userID int64, page, size int) ([]model.Negotiation, int64, error) {
	var total int64
	if err := conn(ctx, r.db).Model(&model.Negotiation{}).Where(cond, userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.Negotiation
	err := conn(ctx, r.db).Scopes(paginate(page, size)).
		Preload("Buyer").
		Preload("Item").
		Where(cond, userID).
		Order("id ASC").
		Find(&list).Error
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}
