package testutil

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/productflow-backend/internal/data/db"
	"github.com/yungbote/productflow-backend/internal/pkg/logger"
)

var (
	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// DB opens a private in-memory sqlite database with every table migrated.
// A single connection keeps the memory database alive for the test.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		tb.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrateAll(gdb); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	return gdb
}

func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}

// WriteCounter counts successful create, update and delete statements issued through gorm.
type WriteCounter struct {
	creates atomic.Int64
	updates atomic.Int64
	deletes atomic.Int64
}

func CountWrites(tb testing.TB, gdb *gorm.DB) *WriteCounter {
	tb.Helper()
	c := &WriteCounter{}
	count := func(n *atomic.Int64) func(*gorm.DB) {
		return func(tx *gorm.DB) {
			if tx.Statement != nil && tx.Error == nil {
				n.Add(1)
			}
		}
	}
	cb := gdb.Callback()
	if err := cb.Create().After("gorm:create").Register("testutil:count_create", count(&c.creates)); err != nil {
		tb.Fatalf("register create counter: %v", err)
	}
	if err := cb.Update().After("gorm:update").Register("testutil:count_update", count(&c.updates)); err != nil {
		tb.Fatalf("register update counter: %v", err)
	}
	if err := cb.Delete().After("gorm:delete").Register("testutil:count_delete", count(&c.deletes)); err != nil {
		tb.Fatalf("register delete counter: %v", err)
	}
	return c
}

func (c *WriteCounter) Creates() int64 { return c.creates.Load() }
func (c *WriteCounter) Updates() int64 { return c.updates.Load() }
func (c *WriteCounter) Deletes() int64 { return c.deletes.Load() }
func (c *WriteCounter) Total() int64   { return c.Creates() + c.Updates() + c.Deletes() }

func (c *WriteCounter) Reset() {
	c.creates.Store(0)
	c.updates.Store(0)
	c.deletes.Store(0)
}
