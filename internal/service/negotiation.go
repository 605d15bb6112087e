package service

import (
	"context"
	"fmt"
	"market/internal/apperr"
	"market/internal/events"
	"market/internal/metrics"
	"market/internal/model"
	"market/internal/repo"

	"go.uber.org/zap"
)

// NegotiationService — ценовые предложения покупателей.
type NegotiationService struct {
	negotiations repo.NegotiationRepository
	items        repo.ItemRepository
	users        repo.UserRepository
	tx           repo.TxManager
	events       events.Publisher
	metrics      *metrics.Metrics
	logger       *zap.SugaredLogger
}

func NewNegotiationService(
	negotiations repo.NegotiationRepository,
	items repo.ItemRepository,
	users repo.UserRepository,
	tx repo.TxManager,
	pub events.Publisher,
	m *metrics.Metrics,
	logger *zap.SugaredLogger,
) *NegotiationService {
	return &NegotiationService{
		negotiations: negotiations,
		items:        items,
		users:        users,
		tx:           tx,
		events:       pub,
		metrics:      m,
		logger:       logger,
	}
}

// CreateNegotiation проверяет правила и сохраняет предложение со статусом SUGGEST.
// Порядок проверок: объявление, покупатель, повтор, продано, своё объявление.
// Статус объявления не меняется.
func (s *NegotiationService) CreateNegotiation(ctx context.Context, itemID int64, suggestedPrice int, buyerID int64) (*model.Negotiation, error) {
	var n *model.Negotiation
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		it, err := s.items.GetByID(ctx, itemID)
		if err != nil {
			return notFound(err, apperr.ErrNotFoundItem, "item")
		}
		buyer, err := s.users.GetUserByID(ctx, buyerID)
		if err != nil {
			return notFound(err, apperr.ErrNotFoundUser, "user")
		}

		exists, err := s.negotiations.ExistsByItemAndBuyer(ctx, it.ID, buyer.ID)
		if err != nil {
			return fmt.Errorf("check negotiation: %w", err)
		}
		if exists {
			return apperr.ErrAlreadyNegotiation
		}
		if it.Status == model.ItemStatusSold {
			return apperr.ErrAlreadyItemSold
		}
		if it.UserID == buyer.ID {
			return apperr.ErrCannotNegotiateOwnItem
		}

		n = &model.Negotiation{
			ItemID:         it.ID,
			SellerID:       it.UserID,
			BuyerID:        buyer.ID,
			SuggestedPrice: suggestedPrice,
			Status:         model.NegotiationSuggest,
		}
		if err := s.negotiations.Create(ctx, n); err != nil {
			return duplicate(err, apperr.ErrAlreadyNegotiation, "negotiation")
		}
		n.Buyer = buyer
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.NegotiationsCreated.Inc()
	ev := events.NegotiationCreated{
		NegotiationID:  n.ID,
		ItemID:         n.ItemID,
		SellerID:       n.SellerID,
		BuyerID:        n.BuyerID,
		SuggestedPrice: n.SuggestedPrice,
	}
	if err := s.events.Publish(ctx, events.SubjectNegotiationCreated, ev); err != nil {
		s.logger.Warnw("publish negotiation failed", "negotiation_id", n.ID, "error", err)
	}
	return n, nil
}

// GetReceivedNegotiations возвращает предложения по объявлениям пользователя-продавца.
func (s *NegotiationService) GetReceivedNegotiations(ctx context.Context, userID int64, page int) (Page[model.Negotiation], error) {
	return s.list(ctx, userID, page, s.negotiations.ListBySeller)
}

// GetSentNegotiations возвращает предложения, отправленные пользователем-покупателем.
func (s *NegotiationService) GetSentNegotiations(ctx context.Context, userID int64, page int) (Page[model.Negotiation], error) {
	return s.list(ctx, userID, page, s.negotiations.ListByBuyer)
}

type negotiationLister func(ctx context.Context, userID int64, page, size int) ([]model.Negotiation, int64, error)

func (s *NegotiationService) list(ctx context.Context, userID int64, page int, fetch negotiationLister) (Page[model.Negotiation], error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return Page[model.Negotiation]{}, notFound(err, apperr.ErrNotFoundUser, "user")
	}
	list, total, err := fetch(ctx, userID, page, DefaultPageSize)
	if err != nil {
		return Page[model.Negotiation]{}, fmt.Errorf("list negotiations: %w", err)
	}
	return NewPage(list, page, DefaultPageSize, total), nil
}
