package models

import "time"

// PersistedRecord is one named JSON blob of a session namespace.
type PersistedRecord struct {
	Namespace string    `gorm:"column:namespace;primaryKey;size:128"`
	Key       string    `gorm:"column:record_key;primaryKey;size:64"`
	Value     []byte    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (PersistedRecord) TableName() string {
	return "persisted_records"
}
