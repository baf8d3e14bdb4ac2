package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"storefront/internal/model"
	"storefront/internal/repository"
)

// SQL stores entries as rows of storage_entries, scoped by namespace.
type SQL struct {
	repo      repository.EntryRepository
	namespace string
}

var _ Store = (*SQL)(nil)

// NewSQL creates a store over an entry repository.
func NewSQL(repo repository.EntryRepository, namespace string) *SQL {
	return &SQL{repo: repo, namespace: namespace}
}

func (s *SQL) Get(ctx context.Context, key string) (string, bool, error) {
	entry, err := s.repo.Find(ctx, s.namespace, key)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("find entry %s: %w", key, err)
	}
	return entry.Value, true, nil
}

func (s *SQL) Set(ctx context.Context, key, value string) error {
	entry := &model.StorageEntry{
		Namespace: s.namespace,
		Key:       key,
		Value:     value,
	}
	if err := s.repo.Upsert(ctx, entry); err != nil {
		return fmt.Errorf("upsert entry %s: %w", key, err)
	}
	return nil
}

func (s *SQL) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.repo.Delete(ctx, s.namespace, keys...); err != nil {
		return fmt.Errorf("delete entries: %w", err)
	}
	return nil
}
