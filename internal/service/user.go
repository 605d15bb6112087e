package service

import (
	"context"
	"errors"
	"fmt"
	"market/internal/apperr"
	"market/internal/cache"
	"market/internal/middleware"
	"market/internal/model"
	"market/internal/repo"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Coordinate: точка на сфере. Пустые поля означают, что координата не передана.
type Coordinate struct {
	Lat *float64
	Lng *float64
}

// CreateUserInput данные регистрации.
type CreateUserInput struct {
	Username    string
	Password    string
	Nickname    string
	Email       string
	PhoneNumber string
	Address     string
	UserImage   string
	Coordinate  Coordinate
}

// TokenConfig параметры выпуска JWT.
type TokenConfig struct {
	Secret string
	TTL    time.Duration
}

// UserService — регистрация, вход и профиль пользователя.
type UserService struct {
	users   repo.UserRepository
	cascade repo.Cascade
	tx      repo.TxManager
	cache   cache.ItemCache
	token   TokenConfig
	logger  *zap.SugaredLogger
}

func NewUserService(
	users repo.UserRepository,
	cascade repo.Cascade,
	tx repo.TxManager,
	itemCache cache.ItemCache,
	token TokenConfig,
	logger *zap.SugaredLogger,
) *UserService {
	return &UserService{users: users, cascade: cascade, tx: tx, cache: itemCache, token: token, logger: logger}
}

// CreateUser регистрирует пользователя: уникальный логин, обязательные координаты, bcrypt-хеш пароля.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*model.User, error) {
	var created *model.User
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		_, err := s.users.GetUserByUsername(ctx, in.Username)
		switch {
		case err == nil:
			return apperr.ErrAlreadyUsername
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("lookup username: %w", err)
		}
		if err := validateCoordinate(in.Coordinate); err != nil {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		created, err = s.users.CreateUser(ctx, &model.User{
			Username:    in.Username,
			Password:    string(hash),
			Nickname:    in.Nickname,
			Email:       in.Email,
			PhoneNumber: in.PhoneNumber,
			Address:     in.Address,
			UserImage:   in.UserImage,
			Role:        model.RoleUser,
			Latitude:    *in.Coordinate.Lat,
			Longitude:   *in.Coordinate.Lng,
			SearchScope: model.SearchScopeNormal,
		})
		if err != nil {
			return duplicate(err, apperr.ErrAlreadyUsername, "user")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Infow("user registered", "user_id", created.ID, "username", created.Username)
	return created, nil
}

// Login проверяет логин и пароль и выпускает JWT.
func (s *UserService) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	u, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperr.ErrLoginFailed
		}
		return nil, "", fmt.Errorf("lookup username: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, "", apperr.ErrLoginFailed
	}

	token, err := middleware.IssueToken(u.ID, s.token.Secret, s.token.TTL)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return u, token, nil
}

// Me возвращает профиль текущего пользователя.
func (s *UserService) Me(ctx context.Context, userID int64) (*model.User, error) {
	u, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, apperr.ErrNotFoundUser, "user")
	}
	return u, nil
}

func (s *UserService) UpdateCoordinate(ctx context.Context, userID int64, c Coordinate) (*model.User, error) {
	var u *model.User
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		u, err = s.users.GetUserByID(ctx, userID)
		if err != nil {
			return notFound(err, apperr.ErrNotFoundUser, "user")
		}
		if err := validateCoordinate(c); err != nil {
			return err
		}
		u.Latitude, u.Longitude = *c.Lat, *c.Lng
		return s.users.UpdateUser(ctx, u)
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) UpdateSearchScope(ctx context.Context, userID int64, scope model.SearchScope) (*model.User, error) {
	var u *model.User
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		u, err = s.users.GetUserByID(ctx, userID)
		if err != nil {
			return notFound(err, apperr.ErrNotFoundUser, "user")
		}
		u.SearchScope = scope
		return s.users.UpdateUser(ctx, u)
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Withdraw удаляет пользователя вместе с его объявлениями и всем, где он участвовал.
// Удалённые объявления вытесняются из кеша после коммита.
func (s *UserService) Withdraw(ctx context.Context, userID int64) error {
	var itemIDs []int64
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.users.GetUserByID(ctx, userID); err != nil {
			return notFound(err, apperr.ErrNotFoundUser, "user")
		}
		var err error
		itemIDs, err = s.cascade.DeleteUser(ctx, userID)
		return err
	})
	if err != nil {
		return err
	}
	for _, id := range itemIDs {
		if err := s.cache.DeleteItem(ctx, id); err != nil {
			s.logger.Warnw("item cache evict failed", "item_id", id, "error", err)
		}
	}
	s.logger.Infow("user withdrawn", "user_id", userID, "items", len(itemIDs))
	return nil
}

func validateCoordinate(c Coordinate) error {
	if c.Lat == nil || c.Lng == nil {
		return apperr.ErrNotFoundCoordinate
	}
	return nil
}
