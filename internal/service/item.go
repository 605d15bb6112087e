package service

import (
	"context"
	"fmt"
	"io"
	"market/internal/apperr"
	"market/internal/cache"
	"market/internal/events"
	"market/internal/metrics"
	"market/internal/model"
	"market/internal/repo"
	"market/internal/storage"

	"go.uber.org/zap"
)

// ItemInput: поля объявления при создании и редактировании.
type ItemInput struct {
	Title          string
	Description    string
	MinPriceWanted int
	Status         model.ItemStatus
}

// ImageUpload: загружаемая картинка объявления.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ItemService — объявления: CRUD, картинка, статус и выборки по расстоянию.
type ItemService struct {
	items   repo.ItemRepository
	users   repo.UserRepository
	cascade repo.Cascade
	tx      repo.TxManager
	images  storage.ImageStorage
	cache   cache.ItemCache
	events  events.Publisher
	metrics *metrics.Metrics
	logger  *zap.SugaredLogger
}

func NewItemService(
	items repo.ItemRepository,
	users repo.UserRepository,
	cascade repo.Cascade,
	tx repo.TxManager,
	images storage.ImageStorage,
	itemCache cache.ItemCache,
	pub events.Publisher,
	m *metrics.Metrics,
	logger *zap.SugaredLogger,
) *ItemService {
	return &ItemService{
		items:   items,
		users:   users,
		cascade: cascade,
		tx:      tx,
		images:  images,
		cache:   itemCache,
		events:  pub,
		metrics: m,
		logger:  logger,
	}
}

// Create публикует объявление от имени пользователя. Статус по умолчанию SALE.
func (s *ItemService) Create(ctx context.Context, in ItemInput, userID int64) (*model.Item, error) {
	var it *model.Item
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		u, err := s.users.GetUserByID(ctx, userID)
		if err != nil {
			return notFound(err, apperr.ErrNotFoundUser, "user")
		}
		status := in.Status
		if status == "" {
			status = model.ItemStatusSale
		}
		it = &model.Item{
			UserID:         u.ID,
			Title:          in.Title,
			Description:    in.Description,
			MinPriceWanted: in.MinPriceWanted,
			Status:         status,
		}
		if err := s.items.Create(ctx, it); err != nil {
			return fmt.Errorf("save item: %w", err)
		}
		it.User = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return it, nil
}

// ReadItemOne читает объявление, сначала из кеша.
func (s *ItemService) ReadItemOne(ctx context.Context, itemID int64) (*model.Item, error) {
	if it, err := s.cache.GetItem(ctx, itemID); err != nil {
		s.logger.Warnw("item cache get failed", "item_id", itemID, "error", err)
	} else if it != nil {
		return it, nil
	}

	it, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, notFound(err, apperr.ErrNotFoundItem, "item")
	}
	if err := s.cache.SetItem(ctx, it); err != nil {
		s.logger.Warnw("item cache set failed", "item_id", itemID, "error", err)
	}
	return it, nil
}

// ReadItemList возвращает все объявления, новые первыми.
func (s *ItemService) ReadItemList(ctx context.Context, page, limit int) (Page[model.Item], error) {
	list, total, err := s.items.List(ctx, page, limit)
	if err != nil {
		return Page[model.Item]{}, fmt.Errorf("list items: %w", err)
	}
	return NewPage(list, page, limit, total), nil
}

// ReadItemListByDistance возвращает объявления продавцов в радиусе поиска пользователя.
func (s *ItemService) ReadItemListByDistance(ctx context.Context, userID int64, page, limit int) (Page[model.Item], error) {
	u, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return Page[model.Item]{}, notFound(err, apperr.ErrNotFoundUser, "user")
	}
	list, total, err := s.items.ListWithinDistance(ctx, u.Latitude, u.Longitude, u.SearchScope.Meters(), page, limit)
	if err != nil {
		return Page[model.Item]{}, fmt.Errorf("list items by distance: %w", err)
	}
	return NewPage(list, page, limit, total), nil
}

var (
	forSale = []model.ItemStatus{model.ItemStatusSale, model.ItemStatusReservation}
	sold    = []model.ItemStatus{model.ItemStatusSold}
)

// ReadMyItemListForSale возвращает свои объявления в продаже или в резерве.
func (s *ItemService) ReadMyItemListForSale(ctx context.Context, userID int64, page int) (Page[model.Item], error) {
	return s.listByUser(ctx, userID, forSale, page)
}

// ReadMyItemListForSold возвращает свои проданные объявления.
func (s *ItemService) ReadMyItemListForSold(ctx context.Context, userID int64, page int) (Page[model.Item], error) {
	return s.listByUser(ctx, userID, sold, page)
}

func (s *ItemService) ReadUserItemListForSale(ctx context.Context, targetID int64, page int) (Page[model.Item], error) {
	return s.listByUser(ctx, targetID, forSale, page)
}

func (s *ItemService) ReadUserItemListForSold(ctx context.Context, targetID int64, page int) (Page[model.Item], error) {
	return s.listByUser(ctx, targetID, sold, page)
}

func (s *ItemService) listByUser(ctx context.Context, userID int64, statuses []model.ItemStatus, page int) (Page[model.Item], error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return Page[model.Item]{}, notFound(err, apperr.ErrNotFoundUser, "user")
	}
	list, total, err := s.items.ListByUserAndStatuses(ctx, userID, statuses, page, DefaultPageSize)
	if err != nil {
		return Page[model.Item]{}, fmt.Errorf("list user items: %w", err)
	}
	return NewPage(list, page, DefaultPageSize, total), nil
}

// UpdateItem меняет поля объявления. Только владелец.
func (s *ItemService) UpdateItem(ctx context.Context, itemID int64, in ItemInput, userID int64) (*model.Item, error) {
	var it *model.Item
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		it, err = loadOwnedItem(ctx, s.items, s.users, itemID, userID)
		if err != nil {
			return err
		}
		it.Title = in.Title
		it.Description = in.Description
		it.MinPriceWanted = in.MinPriceWanted
		return s.items.Update(ctx, it)
	})
	if err != nil {
		return nil, err
	}
	s.evict(ctx, itemID)
	return it, nil
}

// DeleteItem удаляет объявление каскадом. Только владелец.
func (s *ItemService) DeleteItem(ctx context.Context, itemID, userID int64) (*model.Item, error) {
	var it *model.Item
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		it, err = loadOwnedItem(ctx, s.items, s.users, itemID, userID)
		if err != nil {
			return err
		}
		return s.cascade.DeleteItem(ctx, itemID)
	})
	if err != nil {
		return nil, err
	}
	s.evict(ctx, itemID)
	s.logger.Infow("item deleted", "item_id", itemID, "user_id", userID)
	return it, nil
}

// UpdateItemImage сохраняет картинку в хранилище и записывает её URL. Только владелец.
func (s *ItemService) UpdateItemImage(ctx context.Context, itemID int64, img ImageUpload, userID int64) (*model.Item, error) {
	var it *model.Item
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		it, err = loadOwnedItem(ctx, s.items, s.users, itemID, userID)
		if err != nil {
			return err
		}
		key := storage.ObjectKey(itemID, img.Filename)
		url, err := s.images.Upload(ctx, key, img.Body, img.Size, img.ContentType)
		if err != nil {
			s.logger.Errorw("image upload failed", "item_id", itemID, "error", err)
			return apperr.ErrServer
		}
		it.ImageURL = url
		if err := s.items.Update(ctx, it); err != nil {
			// объект без ссылки из БД не нужен
			if derr := s.images.Delete(ctx, key); derr != nil {
				s.logger.Warnw("orphan image not removed", "item_id", itemID, "key", key, "error", derr)
			}
			return fmt.Errorf("save image url: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.evict(ctx, itemID)
	return it, nil
}

// UpdateItemStatus меняет статус продажи. Только владелец.
func (s *ItemService) UpdateItemStatus(ctx context.Context, itemID int64, status model.ItemStatus, userID int64) (*model.Item, error) {
	var (
		it   *model.Item
		from model.ItemStatus
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		it, err = loadOwnedItem(ctx, s.items, s.users, itemID, userID)
		if err != nil {
			return err
		}
		from = it.Status
		it.Status = status
		return s.items.Update(ctx, it)
	})
	if err != nil {
		return nil, err
	}
	s.evict(ctx, itemID)

	s.metrics.ItemStatusChanges.WithLabelValues(string(status)).Inc()
	ev := events.ItemStatusChanged{ItemID: itemID, From: string(from), To: string(status)}
	if err := s.events.Publish(ctx, events.SubjectItemStatusChanged, ev); err != nil {
		s.logger.Warnw("publish item status failed", "item_id", itemID, "error", err)
	}
	return it, nil
}

func (s *ItemService) evict(ctx context.Context, itemID int64) {
	if err := s.cache.DeleteItem(ctx, itemID); err != nil {
		s.logger.Warnw("item cache evict failed", "item_id", itemID, "error", err)
	}
}

// loadOwnedItem загружает объявление и пользователя и проверяет, что пользователь владеет объявлением.
func loadOwnedItem(ctx context.Context, items repo.ItemRepository, users repo.UserRepository, itemID, userID int64) (*model.Item, error) {
	it, err := items.GetByID(ctx, itemID)
	if err != nil {
		return nil, notFound(err, apperr.ErrNotFoundItem, "item")
	}
	u, err := users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, apperr.ErrNotFoundUser, "user")
	}
	if it.UserID != u.ID {
		return nil, apperr.ErrInvalidWriter
	}
	return it, nil
}
