// Package cache содержит кеш карточек объявлений для ReadItemOne.
package cache

import (
	"context"
	"io"
	"market/internal/model"
)

// ItemCache: read-through кеш объявлений. Промах возвращает (nil, nil).
type ItemCache interface {
	GetItem(ctx context.Context, id int64) (*model.Item, error)
	SetItem(ctx context.Context, it *model.Item) error
	DeleteItem(ctx context.Context, id int64) error
}

// Closer: кеш с соединением, которое закрывается при остановке сервера.
type Closer interface {
	ItemCache
	io.Closer
}

// Noop используется, когда Redis не настроен.
type Noop struct{}

func (Noop) GetItem(context.Context, int64) (*model.Item, error) { return nil, nil }
func (Noop) SetItem(context.Context, *model.Item) error          { return nil }
func (Noop) DeleteItem(context.Context, int64) error             { return nil }
func (Noop) Close() error                                        { return nil }

var (
	_ Closer = Noop{}
	_ Closer = (*RedisItemCache)(nil)
)
