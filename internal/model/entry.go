package model

import "time"

// StorageEntry is one key of the client's durable key-value store when it
// is kept in MySQL.
type StorageEntry struct {
	ID        uint      `gorm:"primaryKey"`
	Namespace string    `gorm:"size:191;not null;uniqueIndex:idx_storage_ns_key"`
	Key       string    `gorm:"column:entry_key;size:191;not null;uniqueIndex:idx_storage_ns_key"`
	Value     string    `gorm:"type:longtext;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName pins the table name.
func (StorageEntry) TableName() string {
	return "storage_entries"
}
