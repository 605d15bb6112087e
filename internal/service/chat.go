package service

import (
	"context"
	"errors"
	"fmt"
	"market/internal/apperr"
	"market/internal/events"
	"market/internal/metrics"
	"market/internal/model"
	"market/internal/repo"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// WelcomeMessage первое сообщение новой комнаты.
const WelcomeMessage = "환영합니다"

// ChatService — комнаты переписки покупателя с продавцом. Доставку в реальном времени
// выполняет внешний ретранслятор по событиям chat.message.
type ChatService struct {
	chats   repo.ChatRepository
	items   repo.ItemRepository
	users   repo.UserRepository
	tx      repo.TxManager
	events  events.Publisher
	metrics *metrics.Metrics
	logger  *zap.SugaredLogger
}

func NewChatService(
	chats repo.ChatRepository,
	items repo.ItemRepository,
	users repo.UserRepository,
	tx repo.TxManager,
	pub events.Publisher,
	m *metrics.Metrics,
	logger *zap.SugaredLogger,
) *ChatService {
	return &ChatService{chats: chats, items: items, users: users, tx: tx, events: pub, metrics: m, logger: logger}
}

// CreateRoom открывает комнату покупателя по объявлению или возвращает существующую.
func (s *ChatService) CreateRoom(ctx context.Context, userID, itemID int64, roomName string) (*model.ChatRoom, error) {
	var room *model.ChatRoom
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		it, err := s.items.GetByID(ctx, itemID)
		if err != nil {
			return notFound(err, apperr.ErrNotFoundItem, "item")
		}
		buyer, err := s.users.GetUserByID(ctx, userID)
		if err != nil {
			return notFound(err, apperr.ErrNotFoundUser, "user")
		}
		if it.UserID == buyer.ID {
			return apperr.ErrCannotChatOwnItem
		}

		room, err = s.chats.FindRoom(ctx, it.ID, buyer.ID)
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("find room: %w", err)
		}

		if roomName == "" {
			roomName = it.Title
		}
		room = &model.ChatRoom{ItemID: it.ID, SellerID: it.UserID, BuyerID: buyer.ID, RoomName: roomName}
		if err := s.chats.CreateRoom(ctx, room); err != nil {
			return fmt.Errorf("save room: %w", err)
		}
		return s.chats.CreateMessage(ctx, &model.ChatMessage{RoomID: room.ID, Writer: WelcomeMessage, Content: WelcomeMessage})
	})
	if err != nil {
		return nil, err
	}
	return room, nil
}

// ListRooms возвращает комнаты, где пользователь продавец или покупатель.
func (s *ChatService) ListRooms(ctx context.Context, userID int64) ([]model.ChatRoom, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, notFound(err, apperr.ErrNotFoundUser, "user")
	}
	rooms, err := s.chats.ListRoomsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

// ListMessages возвращает историю комнаты. Только участникам.
func (s *ChatService) ListMessages(ctx context.Context, roomID, userID int64) ([]model.ChatMessage, error) {
	if _, err := s.participantRoom(ctx, roomID, userID); err != nil {
		return nil, err
	}
	msgs, err := s.chats.ListMessages(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return msgs, nil
}

// PostMessage пишет сообщение от имени участника и публикует его для ретранслятора.
func (s *ChatService) PostMessage(ctx context.Context, roomID, userID int64, content string) (*model.ChatMessage, error) {
	var msg *model.ChatMessage
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.participantRoom(ctx, roomID, userID); err != nil {
			return err
		}
		u, err := s.users.GetUserByID(ctx, userID)
		if err != nil {
			return notFound(err, apperr.ErrNotFoundUser, "user")
		}
		msg = &model.ChatMessage{RoomID: roomID, Writer: u.Username, Content: content}
		return s.chats.CreateMessage(ctx, msg)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ChatMessages.Inc()
	ev := events.ChatMessagePosted{RoomID: roomID, MessageID: msg.ID, Writer: msg.Writer, Content: msg.Content}
	if err := s.events.Publish(ctx, events.SubjectChatMessage, ev); err != nil {
		s.logger.Warnw("publish chat message failed", "room_id", roomID, "error", err)
	}
	return msg, nil
}

func (s *ChatService) participantRoom(ctx context.Context, roomID, userID int64) (*model.ChatRoom, error) {
	room, err := s.chats.GetRoom(ctx, roomID)
	if err != nil {
		return nil, notFound(err, apperr.ErrNotFoundChatRoom, "chat room")
	}
	if !room.IsParticipant(userID) {
		return nil, apperr.ErrInvalidWriter
	}
	return room, nil
}
