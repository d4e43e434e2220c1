package repository

import (
	"practice_hub_backend/internal/model"

	"gorm.io/gorm"
)

type AuditLogRepository struct {
	DB *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{DB: db}
}

// Write appends one audit row inside the caller's transaction, so the
// log and the transition it describes commit or roll back together.
func (r *AuditLogRepository) Write(tx *gorm.DB, modelName string, objectID, actorID uint, content string) error {
	return tx.Create(&model.AuditLog{
		ModelName: modelName,
		ObjectID:  objectID,
		UserID:    actorID,
		Content:   content,
	}).Error
}

func (r *AuditLogRepository) ListByObject(modelName string, objectID uint) ([]model.AuditLog, error) {
	var logs []model.AuditLog
	err := r.DB.Where("model_name = ? AND object_id = ?", modelName, objectID).
		Order("created_at ASC").
		Find(&logs).Error
	return logs, err
}
