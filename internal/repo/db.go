package repo

import (
	"fmt"
	"io"
	"log"
	"market/internal/model"
	"os"
	"time"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// InitDB открывает подключение к БД и применяет миграции.
// driver: "postgres" (по умолчанию) или "sqlite" (modernc, без cgo).
func InitDB(driver, dsn string) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch driver {
	case "sqlite":
		dial = gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	default:
		dial = postgres.Open(dsn)
	}

	db, err := gorm.Open(dial, &gorm.Config{
		Logger:         newGormLogger(os.Stdout),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// SQLite не любит конкурентных писателей
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// newGormLogger пишет предупреждения и ошибки SQL. Промах по записи (gorm.ErrRecordNotFound)
// штатный исход проверок вроде уникальности логина и в лог не попадает.
func newGormLogger(w io.Writer) logger.Interface {
	return logger.New(log.New(w, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

// Migrate создаёт/обновляет схему для всех моделей.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Item{},
		&model.Comment{},
		&model.Negotiation{},
		&model.Review{},
		&model.ChatRoom{},
		&model.ChatMessage{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}
