package gorm

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"todo-api/configs"
	"todo-api/internal/domain/entity"
	"todo-api/pkg/log"
	"todo-api/pkg/msg"
)

var ErrUnsupportedDatabaseURL = errors.New("unsupported database url")

// Open connects to the database named by cfg.URL and makes sure the todos table exists.
// Accepted URLs: postgres://..., postgresql://..., a key=value postgres DSN, or
// sqlite:<path> / sqlite:///<path> (":memory:" for an in-memory database).
func Open(cfg configs.DatabaseConfig) (*gorm.DB, error) {
	dialector, inMemory, err := dialectorFor(cfg.URL)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(log.GormWriter{}, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("fail to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if inMemory {
		// every new connection to :memory: would be a fresh, empty database
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info(msg.GetMessage("db.connected", db.Dialector.Name()))
	return db, nil
}

// Migrate creates or updates the todos table. It is safe to run on every start.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entity.Todo{}); err != nil {
		return fmt.Errorf("fail to migrate todos table: %w", err)
	}
	log.Debug(msg.GetMessage("db.migrated"))
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func dialectorFor(url string) (gorm.Dialector, bool, error) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return postgres.Open(url), false, nil
	case strings.HasPrefix(url, "sqlite:"):
		path := sqlitePath(url)
		return sqlite.Open(path), isMemory(path), nil
	case strings.Contains(url, "host="):
		return postgres.Open(url), false, nil
	default:
		return nil, false, fmt.Errorf("%w: %q", ErrUnsupportedDatabaseURL, url)
	}
}

func sqlitePath(url string) string {
	path := strings.TrimPrefix(url, "sqlite:")
	if strings.HasPrefix(path, "//") {
		path = strings.TrimPrefix(path, "//")
		path = strings.TrimPrefix(path, "/")
	}
	if path == "" {
		return ":memory:"
	}
	return path
}

func isMemory(path string) bool {
	return path == ":memory:" || strings.Contains(path, "mode=memory")
}
