package database

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"homequest/server/internal/models"
)

type Database struct {
	db *gorm.DB
}

// NewDatabase opens (creating if needed) the sqlite store at dbPath with
// foreign keys enabled.
func NewDatabase(dbPath string) (*Database, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dbPath+"?_foreign_keys=on"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}

	return &Database{db: db}, nil
}

var memoryDBSeq int64

// NewMemoryDatabase opens a throwaway in-memory store, used by tests. Each
// call gets its own database; the shared cache only ties together the
// connections of one pool.
func NewMemoryDatabase() (*Database, error) {
	name := fmt.Sprintf("file:memdb%d?mode=memory&cache=shared&_foreign_keys=on", atomic.AddInt64(&memoryDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(name), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	return &Database{db: db}, nil
}

func (d *Database) RunMigrations() error {
	return d.db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Property{},
		&models.CityInsight{},
		&models.LocalityInsight{},
		&models.SocietyInsight{},
		&models.InsightHistory{},
		&models.Favorite{},
		&models.Deal{},
		&models.Offer{},
	)
}

func (d *Database) DB() *gorm.DB {
	return d.db
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
