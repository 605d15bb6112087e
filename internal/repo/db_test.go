package repo

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestGormLogger_SkipsRecordNotFound(t *testing.T) {
	var buf bytes.Buffer
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: "file:gormlog?mode=memory&cache=shared"}
	db, err := gorm.Open(dial, &gorm.Config{Logger: newGormLogger(&buf)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, Migrate(db))
	buf.Reset()

	// проверка свободного логина не шумит в логе
	_, err = NewUserRepository(db).GetUserByUsername(context.Background(), "nobody")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	// настоящая ошибка SQL логируется
	require.Error(t, db.Exec("SELECT * FROM missing_table").Error)
	assert.Contains(t, buf.String(), "missing_table")
}
