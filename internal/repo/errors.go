package repo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicate: нарушение уникального индекса при вставке.
var ErrDuplicate = errors.New("duplicate key")

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	// modernc.org/sqlite не транслируется драйвером gorm
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// wrapCreate приводит ошибку вставки к ErrDuplicate, если это конфликт уникальности.
func wrapCreate(err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", ErrDuplicate, err.Error())
	}
	return err
}

// paginate: страница с нуля, size записей на страницу.
func paginate(page, size int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 0 {
			page = 0
		}
		if size <= 0 {
			size = 20
		}
		return db.Offset(page * size).Limit(size)
	}
}
