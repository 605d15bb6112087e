package repo

import (
	"context"
	"market/internal/model"

	"gorm.io/gorm"
)

// ChatRepository хранит комнаты переписки покупателя с продавцом и сообщения в них.
type ChatRepository interface {
	CreateRoom(ctx context.Context, room *model.ChatRoom) error
	GetRoom(ctx context.Context, id int64) (*model.ChatRoom, error)
	// FindRoom ищет комнату покупателя по объявлению.
	FindRoom(ctx context.Context, itemID, buyerID int64) (*model.ChatRoom, error)
	ListRoomsByUser(ctx context.Context, userID int64) ([]model.ChatRoom, error)
	CreateMessage(ctx context.Context, msg *model.ChatMessage) error
	ListMessages(ctx context.Context, roomID int64) ([]model.ChatMessage, error)
}

type chatRepo struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepo{db: db}
}

func (r *chatRepo) CreateRoom(ctx context.Context, room *model.ChatRoom) error {
	return wrapCreate(conn(ctx, r.db).Omit("Item", "Seller", "Buyer").Create(room).Error)
}

func (r *chatRepo) GetRoom(ctx context.Context, id int64) (*model.ChatRoom, error) {
	var room model.ChatRoom
	if err := conn(ctx, r.db).First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *chatRepo) FindRoom(ctx context.Context, itemID, buyerID int64) (*model.ChatRoom, error) {
	var room model.ChatRoom
	err := conn(ctx, r.db).Where("item_id = ? AND buyer_id = ?", itemID, buyerID).First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *chatRepo) ListRoomsByUser(ctx context.Context, userID int64) ([]model.ChatRoom, error) {
	var rooms []model.ChatRoom
	err := conn(ctx, r.db).
		Where("seller_id = ? OR buyer_id = ?", userID, userID).
		Order("id DESC").
		Find(&rooms).Error
	return rooms, err
}

func (r *chatRepo) CreateMessage(ctx context.Context, msg *model.ChatMessage) error {
	return conn(ctx, r.db).Create(msg).Error
}

func (r *chatRepo) ListMessages(ctx context.Context, roomID int64) ([]model.ChatMessage, error) {
	var msgs []model.ChatMessage
	err := conn(ctx, r.db).Where("room_id = ?", roomID).Order("id ASC").Find(&msgs).Error
	return msgs, err
}
