package storage

import (
	"errors"

	"pollos-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore keeps every key as a row of kv_entries.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (g *GormStore) Get(key string) (string, bool, error) {
	var entry models.KVEntry
	err := g.db.First(&entry, "store_key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

func (g *GormStore) Set(key, value string) error {
	entry := models.KVEntry{Key: key, Value: value}
	return g.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "store_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (g *GormStore) Remove(key string) error {
	return g.db.Delete(&models.KVEntry{}, "store_key = ?", key).Error
}

func (g *GormStore) Keys() ([]string, error) {
	var keys []string
	if err := g.db.Model(&models.KVEntry{}).Order("store_key ASC").Pluck("store_key", &keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}
