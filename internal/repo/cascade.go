package repo

import (
	"context"
	"market/internal/model"

	"gorm.io/gorm"
)

// Cascade удаляет агрегаты вместе с зависимыми записями.
// Вызывать внутри TxManager.WithinTx, иначе удаление не атомарно.
type Cascade interface {
	// DeleteItem удаляет объявление, его комментарии, предложения, отзывы и чаты.
	DeleteItem(ctx context.Context, itemID int64) error
	// DeleteUser удаляет пользователя, его объявления (каскадом) и всё, где он участник.
	// Возвращает id удалённых объявлений.
	DeleteUser(ctx context.Context, userID int64) ([]int64, error)
}

type cascadeRepo struct {
	db *gorm.DB
}

func NewCascade(db *gorm.DB) Cascade {
	return &cascadeRepo{db: db}
}

func (r *cascadeRepo) DeleteItem(ctx context.Context, itemID int64) error {
	db := conn(ctx, r.db)
	if err := deleteRooms(db, "item_id = ?", itemID); err != nil {
		return err
	}
	for _, m := range []any{&model.Comment{}, &model.Negotiation{}, &model.Review{}} {
		if err := db.Where("item_id = ?", itemID).Delete(m).Error; err != nil {
			return err
		}
	}
	return db.Delete(&model.Item{}, itemID).Error
}

func (r *cascadeRepo) DeleteUser(ctx context.Context, userID int64) ([]int64, error) {
	db := conn(ctx, r.db)

	var itemIDs []int64
	if err := db.Model(&model.Item{}).Where("user_id = ?", userID).Pluck("id", &itemIDs).Error; err != nil {
		return nil, err
	}
	for _, id := range itemIDs {
		if err := r.DeleteItem(ctx, id); err != nil {
			return nil, err
		}
	}

	if err := deleteRooms(db, "seller_id = ? OR buyer_id = ?", userID, userID); err != nil {
		return nil, err
	}
	if err := db.Where("user_id = ?", userID).Delete(&model.Comment{}).Error; err != nil {
		return nil, err
	}
	if err := db.Where("seller_id = ? OR buyer_id = ?", userID, userID).Delete(&model.Negotiation{}).Error; err != nil {
		return nil, err
	}
	if err := db.Where("reviewer_id = ? OR reviewee_id = ?", userID, userID).Delete(&model.Review{}).Error; err != nil {
		return nil, err
	}
	if err := db.Delete(&model.User{}, userID).Error; err != nil {
		return nil, err
	}
	return itemIDs, nil
}

func deleteRooms(db *gorm.DB, cond string, args ...any) error {
	var roomIDs []int64
	if err := db.Model(&model.ChatRoom{}).Where(cond, args...).Pluck("id", &roomIDs).Error; err != nil {
		return err
	}
	if len(roomIDs) == 0 {
		return nil
	}
	if err := db.Where("room_id IN ?", roomIDs).Delete(&model.ChatMessage{}).Error; err != nil {
		return err
	}
	return db.Where("id IN ?", roomIDs).Delete(&model.ChatRoom{}).Error
}
