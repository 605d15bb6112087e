package service

import (
	"context"
	"fmt"
	"market/internal/apperr"
	"market/internal/middleware"
	"market/internal/model"
	"market/internal/repo"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func ptrFloat(v float64) *float64 { return &v }

func newUserSvc() (*UserService, *mockUserRepo, *mockCascade) {
	svc, m, c, _ := newUserSvcWithCache()
	return svc, m, c
}

func newUserSvcWithCache() (*UserService, *mockUserRepo, *mockCascade, *memCache) {
	m, c, mc := new(mockUserRepo), new(mockCascade), newMemCache()
	svc := NewUserService(m, c, fakeTx{}, mc, TokenConfig{Secret: "s", TTL: time.Hour}, zap.NewNop().Sugar())
	return svc, m, c, mc
}

func TestUserService_CreateUser(t *testing.T) {
	ctx := context.Background()
	svc, m, _ := newUserSvc()
	in := CreateUserInput{
		Username:   "john",
		Password:   "p@ss",
		Address:    "Seoul",
		Coordinate: Coordinate{Lat: ptrFloat(37.5), Lng: ptrFloat(127.0)},
	}

	t.Run("ok when username free", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByUsername", mock.Anything, "john").Return((*model.User)(nil), errNotFound).Once()
		m.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.Username == "john" &&
				bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("p@ss")) == nil &&
				u.Latitude == 37.5 && u.Longitude == 127.0 &&
				u.SearchScope == model.SearchScopeNormal && u.Role == model.RoleUser
		})).Return(&model.User{ID: 10, Username: "john"}, nil).Once()

		user, err := svc.CreateUser(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, int64(10), user.ID)
		m.AssertExpectations(t)
	})

	t.Run("conflict when username taken", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByUsername", mock.Anything, "john").Return(&model.User{ID: 1, Username: "john"}, nil).Once()

		user, err := svc.CreateUser(ctx, in)
		assert.Nil(t, user)
		assert.ErrorIs(t, err, apperr.ErrAlreadyUsername)
	})

	t.Run("missing coordinate", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByUsername", mock.Anything, "john").Return((*model.User)(nil), errNotFound).Once()

		noLng := in
		noLng.Coordinate = Coordinate{Lat: ptrFloat(1)}
		_, err := svc.CreateUser(ctx, noLng)
		assert.ErrorIs(t, err, apperr.ErrNotFoundCoordinate)
		m.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("insert race maps to conflict", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByUsername", mock.Anything, "john").Return((*model.User)(nil), errNotFound).Once()
		m.On("CreateUser", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("%w: users", repo.ErrDuplicate)).Once()

		_, err := svc.CreateUser(ctx, in)
		assert.ErrorIs(t, err, apperr.ErrAlreadyUsername)
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()
	svc, m, _ := newUserSvc()

	// готовим хеш для пароля "secret"
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)

	t.Run("ok with valid credentials", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByUsername", mock.Anything, "alice").Return(&model.User{ID: 2, Username: "alice", Password: string(hash)}, nil).Once()

		user, token, err := svc.Login(ctx, "alice", "secret")
		require.NoError(t, err)
		assert.Equal(t, int64(2), user.ID)

		uid, err := middleware.ParseToken(token, "s")
		require.NoError(t, err)
		assert.Equal(t, int64(2), uid)
	})

	t.Run("wrong password", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByUsername", mock.Anything, "alice").Return(&model.User{ID: 2, Username: "alice", Password: string(hash)}, nil).Once()

		_, token, err := svc.Login(ctx, "alice", "nope")
		assert.ErrorIs(t, err, apperr.ErrLoginFailed)
		assert.Empty(t, token)
	})

	t.Run("unknown user", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByUsername", mock.Anything, "ghost").Return((*model.User)(nil), errNotFound).Once()

		_, _, err := svc.Login(ctx, "ghost", "x")
		assert.ErrorIs(t, err, apperr.ErrLoginFailed)
	})
}

func TestUserService_Profile(t *testing.T) {
	ctx := context.Background()
	svc, m, c := newUserSvc()

	t.Run("update coordinate", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByID", mock.Anything, int64(3)).Return(&model.User{ID: 3}, nil).Once()
		m.On("UpdateUser", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.Latitude == 35.1 && u.Longitude == 129.0
		})).Return(nil).Once()

		u, err := svc.UpdateCoordinate(ctx, 3, Coordinate{Lat: ptrFloat(35.1), Lng: ptrFloat(129.0)})
		require.NoError(t, err)
		assert.Equal(t, 35.1, u.Latitude)
		m.AssertExpectations(t)
	})

	t.Run("update coordinate: user missing", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByID", mock.Anything, int64(3)).Return((*model.User)(nil), errNotFound).Once()
		_, err := svc.UpdateCoordinate(ctx, 3, Coordinate{Lat: ptrFloat(1), Lng: ptrFloat(1)})
		assert.ErrorIs(t, err, apperr.ErrNotFoundUser)
	})

	t.Run("update search scope", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByID", mock.Anything, int64(3)).Return(&model.User{ID: 3, SearchScope: model.SearchScopeNormal}, nil).Once()
		m.On("UpdateUser", mock.Anything, mock.Anything).Return(nil).Once()

		u, err := svc.UpdateSearchScope(ctx, 3, model.SearchScopeWide)
		require.NoError(t, err)
		assert.Equal(t, model.SearchScopeWide, u.SearchScope)
	})

	t.Run("withdraw cascades", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByID", mock.Anything, int64(3)).Return(&model.User{ID: 3}, nil).Once()
		c.On("DeleteUser", mock.Anything, int64(3)).Return([]int64(nil), nil).Once()

		require.NoError(t, svc.Withdraw(ctx, 3))
		c.AssertExpectations(t)
	})

	t.Run("me: not found", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByID", mock.Anything, int64(4)).Return((*model.User)(nil), errNotFound).Once()
		_, err := svc.Me(ctx, 4)
		assert.ErrorIs(t, err, apperr.ErrNotFoundUser)
	})
}

func TestUserService_Withdraw_EvictsItems(t *testing.T) {
	ctx := context.Background()
	svc, m, c, mc := newUserSvcWithCache()
	mc.items[10] = &model.Item{ID: 10, UserID: 3}
	mc.items[11] = &model.Item{ID: 11, UserID: 3}
	mc.items[20] = &model.Item{ID: 20, UserID: 4}

	m.On("GetUserByID", mock.Anything, int64(3)).Return(&model.User{ID: 3}, nil).Once()
	c.On("DeleteUser", mock.Anything, int64(3)).Return([]int64{10, 11}, nil).Once()

	require.NoError(t, svc.Withdraw(ctx, 3))
	assert.NotContains(t, mc.items, int64(10))
	assert.NotContains(t, mc.items, int64(11))
	// чужое объявление остаётся в кеше
	assert.Contains(t, mc.items, int64(20))
	c.AssertExpectations(t)
}

func TestUserService_Withdraw_CascadeErrorKeepsCache(t *testing.T) {
	ctx := context.Background()
	svc, m, c, mc := newUserSvcWithCache()
	mc.items[10] = &model.Item{ID: 10, UserID: 3}

	m.On("GetUserByID", mock.Anything, int64(3)).Return(&model.User{ID: 3}, nil).Once()
	c.On("DeleteUser", mock.Anything, int64(3)).Return([]int64(nil), fmt.Errorf("db down")).Once()

	require.Error(t, svc.Withdraw(ctx, 3))
	assert.Contains(t, mc.items, int64(10))
}
