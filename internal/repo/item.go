package repo

import (
	"context"
	"market/internal/model"

	"gorm.io/gorm"
)

// distanceSQL: расстояние в метрах по большому кругу (формула гаверсинусов, R = 6371 км)
// от точки до местоположения владельца объявления. Параметры: lat, lat, lng.
const distanceSQL = `6371000 * 2 * asin(sqrt(
	power(sin(radians(users.latitude - ?) / 2), 2) +
	cos(radians(?)) * cos(radians(users.latitude)) *
	power(sin(radians(users.longitude - ?) / 2), 2)))`

// ItemRepository — доступ к объявлениям. Списки возвращают страницу и общее число записей.
type ItemRepository interface {
	Create(ctx context.Context, it *model.Item) error
	GetByID(ctx context.Context, id int64) (*model.Item, error)
	Update(ctx context.Context, it *model.Item) error
	List(ctx context.Context, page, size int) ([]model.Item, int64, error)
	ListByUserAndStatuses(ctx context.Context, userID int64, statuses []model.ItemStatus, page, size int) ([]model.Item, int64, error)
	// ListWithinDistance: объявления, чей владелец находится не дальше radius метров от точки.
	ListWithinDistance(ctx context.Context, lat, lng, radius float64, page, size int) ([]model.Item, int64, error)
}

type itemRepo struct {
	db *gorm.DB
}

// NewItemRepository создаёт реализацию репозитория для Item.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepo{db: db}
}

func (r *itemRepo) Create(ctx context.Context, it *model.Item) error {
	return wrapCreate(conn(ctx, r.db).Create(it).Error)
}

func (r *itemRepo) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	var it model.Item
	if err := conn(ctx, r.db).Preload("User").First(&it, id).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *itemRepo) Update(ctx context.Context, it *model.Item) error {
	return conn(ctx, r.db).Omit("User").Save(it).Error
}

func (r *itemRepo) List(ctx context.Context, page, size int) ([]model.Item, int64, error) {
	return r.list(ctx, page, size, func(db *gorm.DB) *gorm.DB { return db })
}

func (r *itemRepo) ListByUserAndStatuses(ctx context.Context, userID int64, statuses []model.ItemStatus, page, size int) ([]model.Item, int64, error) {
	return r.list(ctx, page, size, func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ? AND status IN ?", userID, statuses)
	})
}

func (r *itemRepo) list(ctx context.Context, page, size int, scope func(*gorm.DB) *gorm.DB) ([]model.Item, int64, error) {
	var total int64
	if err := conn(ctx, r.db).Model(&model.Item{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var items []model.Item
	err := conn(ctx, r.db).Scopes(scope, paginate(page, size)).
		Preload("User").
		Order("id DESC").
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *itemRepo) ListWithinDistance(ctx context.Context, lat, lng, radius float64, page, size int) ([]model.Item, int64, error) {
	within := func(db *gorm.DB) *gorm.DB {
		return db.Joins("JOIN users ON users.id = items.user_id").
			Where(distanceSQL+" <= ?", lat, lat, lng, radius)
	}

	var total int64
	if err := conn(ctx, r.db).Model(&model.Item{}).Scopes(within).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var items []model.Item
	err := conn(ctx, r.db).Model(&model.Item{}).Scopes(within, paginate(page, size)).
		Select("items.*").
		Preload("User").
		Order("items.id DESC").
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
