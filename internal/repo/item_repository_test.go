package repo

import (
	"context"
	"market/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestItemRepository_CRUD(t *testing.T) {
	db := newTestDB(t)
	r := NewItemRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "seller", 37.56, 126.97)
	it := seedItem(t, db, owner.ID, "bike", model.ItemStatusSale)
	assert.NotZero(t, it.ID)

	got, err := r.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, "bike", got.Title)
	require.NotNil(t, got.User)
	assert.Equal(t, "seller", got.User.Username)

	got.Title = "road bike"
	got.Status = model.ItemStatusReservation
	require.NoError(t, r.Update(ctx, got))

	got, err = r.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, "road bike", got.Title)
	assert.Equal(t, model.ItemStatusReservation, got.Status)

	_, err = r.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestItemRepository_ListPagingNewestFirst(t *testing.T) {
	db := newTestDB(t)
	r := NewItemRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "seller", 0, 0)
	for _, title := range []string{"a", "b", "c"} {
		seedItem(t, db, owner.ID, title, model.ItemStatusSale)
	}

	items, total, err := r.List(ctx, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, items, 2)
	assert.Equal(t, "c", items[0].Title)
	assert.Equal(t, "b", items[1].Title)

	items, _, err = r.List(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].Title)
}

func TestItemRepository_ListByUserAndStatuses(t *testing.T) {
	db := newTestDB(t)
	r := NewItemRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "seller", 0, 0)
	other := seedUser(t, db, "other", 0, 0)
	seedItem(t, db, owner.ID, "sale", model.ItemStatusSale)
	seedItem(t, db, owner.ID, "reserved", model.ItemStatusReservation)
	seedItem(t, db, owner.ID, "sold", model.ItemStatusSold)
	seedItem(t, db, other.ID, "foreign", model.ItemStatusSale)

	onSale, total, err := r.ListByUserAndStatuses(ctx, owner.ID,
		[]model.ItemStatus{model.ItemStatusSale, model.ItemStatusReservation}, 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, onSale, 2)

	sold, total, err := r.ListByUserAndStatuses(ctx, owner.ID, []model.ItemStatus{model.ItemStatusSold}, 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, sold, 1)
	assert.Equal(t, "sold", sold[0].Title)
}

func TestItemRepository_ListWithinDistance(t *testing.T) {
	db := newTestDB(t)
	r := NewItemRepository(db)
	ctx := context.Background()

	// Сеул и Пусан: около 325 км по прямой
	seoul := seedUser(t, db, "seoul", 37.5665, 126.9780)
	busan := seedUser(t, db, "busan", 35.1796, 129.0756)
	near := seedItem(t, db, seoul.ID, "near", model.ItemStatusSale)
	far := seedItem(t, db, busan.ID, "far", model.ItemStatusSale)

	// NORMAL (200 км) от Сеула: только своё
	items, total, err := r.ListWithinDistance(ctx, 37.5665, 126.9780, model.SearchScopeNormal.Meters(), 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, near.ID, items[0].ID)
	require.NotNil(t, items[0].User)
	assert.Equal(t, "seoul", items[0].User.Username)

	// WIDE (400 км): оба, новые первыми
	items, total, err = r.ListWithinDistance(ctx, 37.5665, 126.9780, model.SearchScopeWide.Meters(), 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, items, 2)
	assert.Equal(t, far.ID, items[0].ID)
	assert.Equal(t, near.ID, items[1].ID)
}
