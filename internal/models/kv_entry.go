package models

import "time"

// KVEntry: one key of the operator's local store (a day ledger, a client list, the schedule)
type KVEntry struct {
	Key       string `gorm:"primaryKey;column:store_key;size:191"`
	Value     string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (KVEntry) TableName() string { return "kv_entries" }
