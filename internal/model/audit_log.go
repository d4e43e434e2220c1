package model

import "time"

// AuditLog is append-only: one row per applied state transition, written
// in the same transaction as the state change. Rows are never updated
// or deleted.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ModelName string    `gorm:"size:255;not null" json:"modelName"`
	ObjectID  uint      `gorm:"index;not null" json:"objectId"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
