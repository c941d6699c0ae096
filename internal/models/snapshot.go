package model

import "time"

// Snapshot is the row shape used by the database-backed document stores.
type Snapshot struct {
	Name      string    `gorm:"primaryKey;size:128"`
	Document  string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Snapshot) TableName() string {
	return "snapshots"
}
