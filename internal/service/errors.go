package service

import (
	"errors"
	"fmt"
	"market/internal/apperr"
	"market/internal/repo"

	"gorm.io/gorm"
)

// notFound переводит отсутствие записи в доменную ошибку nf, прочие ошибки оборачивает.
func notFound(err error, nf *apperr.Error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nf
	}
	return fmt.Errorf("load %s: %w", what, err)
}

// duplicate переводит нарушение уникальности в доменный конфликт dup.
func duplicate(err error, dup *apperr.Error, what string) error {
	if errors.Is(err, repo.ErrDuplicate) {
		return dup
	}
	return fmt.Errorf("save %s: %w", what, err)
}
