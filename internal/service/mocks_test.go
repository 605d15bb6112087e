package service

import (
	"context"
	"io"
	"market/internal/model"
	"market/internal/repo"
	"sync"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// мок для repo.UserRepository
type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) UpdateUser(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

// мок для repo.ItemRepository
type mockItemRepo struct{ mock.Mock }

func (m *mockItemRepo) Create(ctx context.Context, it *model.Item) error {
	return m.Called(ctx, it).Error(0)
}

func (m *mockItemRepo) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Item); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockItemRepo) Update(ctx context.Context, it *model.Item) error {
	return m.Called(ctx, it).Error(0)
}

func (m *mockItemRepo) List(ctx context.Context, page, size int) ([]model.Item, int64, error) {
	args := m.Called(ctx, page, size)
	v, _ := args.Get(0).([]model.Item)
	return v, args.Get(1).(int64), args.Error(2)
}

func (m *mockItemRepo) ListByUserAndStatuses(ctx context.Context, userID int64, statuses []model.ItemStatus, page, size int) ([]model.Item, int64, error) {
	args := m.Called(ctx, userID, statuses, page, size)
	v, _ := args.Get(0).([]model.Item)
	return v, args.Get(1).(int64), args.Error(2)
}

func (m *mockItemRepo) ListWithinDistance(ctx context.Context, lat, lng, radius float64, page, size int) ([]model.Item, int64, error) {
	args := m.Called(ctx, lat, lng, radius, page, size)
	v, _ := args.Get(0).([]model.Item)
	return v, args.Get(1).(int64), args.Error(2)
}

var _ repo.ItemRepository = (*mockItemRepo)(nil)

// мок для repo.CommentRepository
type mockCommentRepo struct{ mock.Mock }

func (m *mockCommentRepo) Create(ctx context.Context, c *model.Comment) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCommentRepo) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Comment); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCommentRepo) Update(ctx context.Context, c *model.Comment) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCommentRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCommentRepo) ListByItem(ctx context.Context, itemID int64, page, size int) ([]model.Comment, int64, error) {
	args := m.Called(ctx, itemID, page, size)
	v, _ := args.Get(0).([]model.Comment)
	return v, args.Get(1).(int64), args.Error(2)
}

var _ repo.CommentRepository = (*mockCommentRepo)(nil)

// мок для repo.NegotiationRepository
type mockNegotiationRepo struct{ mock.Mock }

func (m *mockNegotiationRepo) Create(ctx context.Context, n *model.Negotiation) error {
	return m.Called(ctx, n).Error(0)
}

func (m *mockNegotiationRepo) ExistsByItemAndBuyer(ctx context.Context, itemID, buyerID int64) (bool, error) {
	args := m.Called(ctx, itemID, buyerID)
	return args.Bool(0), args.Error(1)
}

func (m *mockNegotiationRepo) ListBySeller(ctx context.Context, sellerID int64, page, size int) ([]model.Negotiation, int64, error) {
	args := m.Called(ctx, sellerID, page, size)
	v, _ := args.Get(0).([]model.Negotiation)
	return v, args.Get(1).(int64), args.Error(2)
}

func (m *mockNegotiationRepo) ListByBuyer(ctx context.Context, buyerID int64, page, size int) ([]model.Negotiation, int64, error) {
	args := m.Called(ctx, buyerID, page, size)
	v, _ := args.Get(0).([]model.Negotiation)
	return v, args.Get(1).(int64), args.Error(2)
}

var _ repo.NegotiationRepository = (*mockNegotiationRepo)(nil)

// мок для repo.ReviewRepository
type mockReviewRepo struct{ mock.Mock }

func (m *mockReviewRepo) Create(ctx context.Context, rv *model.Review) error {
	return m.Called(ctx, rv).Error(0)
}

func (m *mockReviewRepo) Exists(ctx context.Context, itemID, reviewerID, revieweeID int64) (bool, error) {
	args := m.Called(ctx, itemID, reviewerID, revieweeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockReviewRepo) ListByReviewee(ctx context.Context, revieweeID int64, page, size int) ([]model.Review, int64, error) {
	args := m.Called(ctx, revieweeID, page, size)
	v, _ := args.Get(0).([]model.Review)
	return v, args.Get(1).(int64), args.Error(2)
}

var _ repo.ReviewRepository = (*mockReviewRepo)(nil)

// мок для repo.Cascade
type mockCascade struct{ mock.Mock }

func (m *mockCascade) DeleteItem(ctx context.Context, itemID int64) error {
	return m.Called(ctx, itemID).Error(0)
}

func (m *mockCascade) DeleteUser(ctx context.Context, userID int64) ([]int64, error) {
	args := m.Called(ctx, userID)
	ids, _ := args.Get(0).([]int64)
	return ids, args.Error(1)
}

var _ repo.Cascade = (*mockCascade)(nil)

// fakeTx выполняет fn без транзакции.
type fakeTx struct{}

func (fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// recordingPublisher запоминает опубликованные события.
type recordingPublisher struct {
	mu       sync.Mutex
	subjects []string
	payloads []any
}

func (p *recordingPublisher) Publish(_ context.Context, subject string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subjects = append(p.subjects, subject)
	p.payloads = append(p.payloads, payload)
	return nil
}

// memCache кеш объявлений в памяти.
type memCache struct {
	items map[int64]*model.Item
}

func newMemCache() *memCache { return &memCache{items: map[int64]*model.Item{}} }

func (c *memCache) GetItem(_ context.Context, id int64) (*model.Item, error) {
	return c.items[id], nil
}

func (c *memCache) SetItem(_ context.Context, it *model.Item) error {
	c.items[it.ID] = it
	return nil
}

func (c *memCache) DeleteItem(_ context.Context, id int64) error {
	delete(c.items, id)
	return nil
}

// fakeStorage сохраняет последний загруженный ключ и тело.
type fakeStorage struct {
	key     string
	body    []byte
	err     error
	deleted []string
}

func (s *fakeStorage) Delete(_ context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *fakeStorage) Upload(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.key = key
	s.body, _ = io.ReadAll(r)
	return "/static/" + key, nil
}

var errNotFound = gorm.ErrRecordNotFound
