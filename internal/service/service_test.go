package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pocket-planner/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Category{}, &model.Item{}, &model.Medication{}))
	return db
}

// fakeNotifier records sends instead of delivering them.
type fakeNotifier struct {
	mu   sync.Mutex
	sent []string // "title|body"
}

func (f *fakeNotifier) Send(title, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, title+"|"+body)
	return nil
}

func (f *fakeNotifier) countByTitle(title string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, s := range f.sent {
		if len(s) >= len(title) && s[:len(title)] == title {
			n++
		}
	}
	return n
}
