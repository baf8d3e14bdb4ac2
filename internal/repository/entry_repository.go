package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront/internal/model"
)

// EntryRepository defines persistence operations for key-value entries.
type EntryRepository interface {
	// Find returns gorm.ErrRecordNotFound when the key is absent.
	Find(ctx context.Context, namespace, key string) (*model.StorageEntry, error)
	Upsert(ctx context.Context, entry *model.StorageEntry) error
	Delete(ctx context.Context, namespace string, keys ...string) error
}

type entryRepository struct {
	db *gorm.DB
}

// NewEntryRepository builds a GORM-backed repository.
func NewEntryRepository(db *gorm.DB) EntryRepository {
	return &entryRepository{db: db}
}

func (r *entryRepository) Find(ctx context.Context, namespace, key string) (*model.StorageEntry, error) {
	var entry model.StorageEntry
	err := r.db.WithContext(ctx).
		Where("namespace = ? AND entry_key = ?", namespace, key).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *entryRepository) Upsert(ctx context.Context, entry *model.StorageEntry) error {
	entry.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "namespace"}, {Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(entry).Error
}

func (r *entryRepository) Delete(ctx context.Context, namespace string, keys ...string) error {
	return r.db.WithContext(ctx).
		Where("namespace = ? AND entry_key IN ?", namespace, keys).
		Delete(&model.StorageEntry{}).Error
}
