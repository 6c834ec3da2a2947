package store

import (
	"context"
	"fmt"
	"log"
	"reflect"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/leandertoney/tastelanc/config"
)

// PostgresStore writes through a direct database connection. Bulk loads run
// noticeably faster here than through the REST surface, and RowsAffected
// gives exact accepted counts.
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore opens the connection and configures the pool.
func NewPostgresStore(cfg config.Config) (*PostgresStore, error) {
	log.Println("🔌 Initializing database connection...")

	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), gormCfg)
	if err != nil {
		log.Printf("❌ Database connection failed: %v", err)
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	log.Println("✅ Successfully connected to PostgreSQL")

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying *sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &PostgresStore{db: db}, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *PostgresStore) Select(ctx context.Context, q Query, dest any) error {
	tx := s.db.WithContext(ctx).Table(q.Collection)
	if len(q.Columns) > 0 {
		tx = tx.Select(strings.Join(q.Columns, ", "))
	}
	if q.ActiveOnly {
		tx = tx.Where("is_active = ?", true)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	if err := tx.Find(dest).Error; err != nil {
		return fmt.Errorf("failed to query %s: %w", q.Collection, err)
	}
	return nil
}

// UserIDs reads the Supabase auth schema directly.
func (s *PostgresStore) UserIDs(ctx context.Context, limit int) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).
		Table("auth.users").
		Limit(limit).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return ids, nil
}

func (s *PostgresStore) Insert(ctx context.Context, collection string, rows any, policy DuplicatePolicy) (int, error) {
	rv := reflect.ValueOf(rows)
	if rv.Kind() != reflect.Slice {
		return 0, fmt.Errorf("insert rows must be a slice, got %T", rows)
	}
	if rv.Len() == 0 {
		return 0, nil
	}

	tx := s.db.WithContext(ctx).Table(collection)
	if policy == IgnoreDuplicates {
		tx = tx.Clauses(clause.OnConflict{DoNothing: true})
	}

	result := tx.Create(rows)
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}
