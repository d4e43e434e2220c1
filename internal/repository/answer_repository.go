package repository

import (
	"practice_hub_backend/internal/model"

	"gorm.io/gorm"
)

type AnswerRepository struct {
	DB *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) *AnswerRepository {
	return &AnswerRepository{DB: db}
}

func (r *AnswerRepository) Create(answer *model.Answer) error {
	return r.DB.Create(answer).Error
}

// ListByQuestionAndUser returns the user's full answer history on one
// question, oldest first. Repeat submissions are kept, never merged.
func (r *AnswerRepository) ListByQuestionAndUser(questionID, userID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.DB.Where("question_id = ? AND user_id = ?", questionID, userID).
		Order("created_at ASC").
		Find(&answers).Error
	return answers, err
}

func (r *AnswerRepository) CountByQuestion(questionID uint) (int64, error) {
	var total int64
	err := r.DB.Model(&model.Answer{}).Where("question_id = ?", questionID).Count(&total).Error
	return total, err
}

func (r *AnswerRepository) HasAnswered(questionID, userID uint) bool {
	var count int64
	r.DB.Model(&model.Answer{}).
		Where("question_id = ? AND user_id = ?", questionID, userID).
		Count(&count)
	return count > 0
}
