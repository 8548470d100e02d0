package models

import "time"

// BaseModel is gorm.Model without soft deletes, for rows that are removed
// for real (a soft-deleted row would still occupy its unique index slot).
type BaseModel struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
