package model

import (
	"time"
)

// BaseModel carries the shared columns. There is no soft-delete column:
// nothing in this application hard-deletes domain records, moderation
// locks them instead.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
