package repo

import (
	"context"
	"market/internal/model"
	"strings"
	"testing"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// newTestDB инициализирует in-memory SQLite (modernc.org/sqlite) для тестов репозитория.
// У каждого теста своя база, чтобы данные не пересекались.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: "file:" + name + "?mode=memory&cache=shared"}
	db, err := gorm.Open(dial, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}
	return db
}

// seedUser создаёт пользователя с координатами.
func seedUser(t *testing.T, db *gorm.DB, username string, lat, lng float64) *model.User {
	t.Helper()
	u, err := NewUserRepository(db).CreateUser(context.Background(), &model.User{
		Username: username, Password: "hash", Latitude: lat, Longitude: lng,
		SearchScope: model.SearchScopeNormal, Role: model.RoleUser,
	})
	if err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}

// seedItem создаёт объявление пользователя в статусе status.
func seedItem(t *testing.T, db *gorm.DB, ownerID int64, title string, status model.ItemStatus) *model.Item {
	t.Helper()
	it := &model.Item{UserID: ownerID, Title: title, Description: "desc", MinPriceWanted: 1000, Status: status}
	if err := NewItemRepository(db).Create(context.Background(), it); err != nil {
		t.Fatalf("seed item %s: %v", title, err)
	}
	return it
}
