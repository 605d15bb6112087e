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

// ReviewInput: оценка и текст отзыва.
type ReviewInput struct {
	Score   float64
	Content string
}

// ReviewService управляет отзывами после продажи.
type ReviewService struct {
	reviews repo.ReviewRepository
	items   repo.ItemRepository
	users   repo.UserRepository
	tx      repo.TxManager
	events  events.Publisher
	metrics *metrics.Metrics
	logger  *zap.SugaredLogger
}

func NewReviewService(
	reviews repo.ReviewRepository,
	items repo.ItemRepository,
	users repo.UserRepository,
	tx repo.TxManager,
	pub events.Publisher,
	m *metrics.Metrics,
	logger *zap.SugaredLogger,
) *ReviewService {
	return &ReviewService{
		reviews: reviews,
		items:   items,
		users:   users,
		tx:      tx,
		events:  pub,
		metrics: m,
		logger:  logger,
	}
}

// CreateReview сохраняет отзыв reviewer о reviewee по объявлению.
// Автор-владелец объявления пишет как SELLER, иначе как BUYER.
// Покупатель может оставить отзыв только после отзыва продавца о нём.
func (s *ReviewService) CreateReview(ctx context.Context, reviewerID, revieweeID int64, in ReviewInput, itemID int64) (*model.Review, error) {
	var rv *model.Review
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		reviewer, err := s.users.GetUserByID(ctx, reviewerID)
		if err != nil {
			return notFound(err, apperr.ErrNotFoundUser, "reviewer")
		}
		reviewee, err := s.users.GetUserByID(ctx, revieweeID)
		if err != nil {
			return notFound(err, apperr.ErrNotFoundUser, "reviewee")
		}
		it, err := s.items.GetByID(ctx, itemID)
		if err != nil {
			return notFound(err, apperr.ErrNotFoundItem, "item")
		}

		exists, err := s.reviews.Exists(ctx, it.ID, reviewer.ID, reviewee.ID)
		if err != nil {
			return fmt.Errorf("check review: %w", err)
		}
		if exists {
			return apperr.ErrAlreadyReview
		}

		reviewerType := reviewerTypeOf(it, reviewer.ID)
		if reviewerType == model.ReviewerBuyer {
			sellerFirst, err := s.reviews.Exists(ctx, it.ID, reviewee.ID, reviewer.ID)
			if err != nil {
				return fmt.Errorf("check seller review: %w", err)
			}
			if !sellerFirst {
				return apperr.ErrNotFoundBuy
			}
		}
		if it.Status != model.ItemStatusSold {
			return apperr.ErrNotMatchItemStatusSold
		}

		rv = &model.Review{
			ItemID:       it.ID,
			ReviewerID:   reviewer.ID,
			RevieweeID:   reviewee.ID,
			Score:        in.Score,
			Content:      in.Content,
			ReviewerType: reviewerType,
		}
		if err := s.reviews.Create(ctx, rv); err != nil {
			return duplicate(err, apperr.ErrAlreadyReview, "review")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ReviewsCreated.WithLabelValues(string(rv.ReviewerType)).Inc()
	ev := events.ReviewCreated{
		ReviewID:     rv.ID,
		ItemID:       rv.ItemID,
		ReviewerID:   rv.ReviewerID,
		RevieweeID:   rv.RevieweeID,
		Score:        rv.Score,
		ReviewerType: string(rv.ReviewerType),
	}
	if err := s.events.Publish(ctx, events.SubjectReviewCreated, ev); err != nil {
		s.logger.Warnw("publish review failed", "review_id", rv.ID, "error", err)
	}
	return rv, nil
}

// ListUserReviews возвращает отзывы о пользователе, новые первыми.
func (s *ReviewService) ListUserReviews(ctx context.Context, userID int64, page int) (Page[model.Review], error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return Page[model.Review]{}, notFound(err, apperr.ErrNotFoundUser, "user")
	}
	list, total, err := s.reviews.ListByReviewee(ctx, userID, page, DefaultPageSize)
	if err != nil {
		return Page[model.Review]{}, fmt.Errorf("list reviews: %w", err)
	}
	return NewPage(list, page, DefaultPageSize, total), nil
}

func reviewerTypeOf(it *model.Item, reviewerID int64) model.ReviewerType {
	if it.UserID == reviewerID {
		return model.ReviewerSeller
	}
	return model.ReviewerBuyer
}
