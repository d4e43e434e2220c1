package repository

import (
	"practice_hub_backend/internal/listing"
	"practice_hub_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionTagRepository struct {
	DB *gorm.DB
}

func NewQuestionTagRepository(db *gorm.DB) *QuestionTagRepository {
	return &QuestionTagRepository{DB: db}
}

func (r *QuestionTagRepository) Create(tag *model.QuestionTag) error {
	return r.DB.Create(tag).Error
}

func (r *QuestionTagRepository) FindByID(id uint) (*model.QuestionTag, error) {
	var tag model.QuestionTag
	err := r.DB.First(&tag, id).Error
	return &tag, err
}

// First returns the default tag, the oldest one. Non-admin question
// listings fall back to it when no tag was asked for.
func (r *QuestionTagRepository) First() (*model.QuestionTag, error) {
	var tag model.QuestionTag
	err := r.DB.Order("id ASC").First(&tag).Error
	return &tag, err
}

func (r *QuestionTagRepository) All() ([]model.QuestionTag, error) {
	var tags []model.QuestionTag
	err := r.DB.Order("id ASC").Find(&tags).Error
	return tags, err
}

func (r *QuestionTagRepository) Exists(id uint) bool {
	var count int64
	r.DB.Model(&model.QuestionTag{}).Where("id = ?", id).Count(&count)
	return count > 0
}

func (r *QuestionTagRepository) NameTaken(name string) bool {
	var count int64
	r.DB.Model(&model.QuestionTag{}).Where("LOWER(name) = LOWER(?)", name).Count(&count)
	return count > 0
}

func (r *QuestionTagRepository) applyCriteria(q *gorm.DB, c *listing.Criteria) *gorm.DB {
	if cond, args, ok := listing.ContainsAny("question_tags.name", c.Name); ok {
		q = q.Where(cond, args...)
	}
	return q
}

func (r *QuestionTagRepository) Count(c *listing.Criteria) (int64, error) {
	var total int64
	err := r.applyCriteria(r.DB.Model(&model.QuestionTag{}), c).Count(&total).Error
	return total, err
}

func (r *QuestionTagRepository) List(c *listing.Criteria, page listing.Page) ([]model.QuestionTag, error) {
	var tags []model.QuestionTag
	q := r.applyCriteria(r.DB.Model(&model.QuestionTag{}), c)
	if c.SortCreatedAsc {
		q = q.Order("question_tags.created_at ASC")
	} else {
		q = q.Order("question_tags.created_at DESC")
	}
	err := q.Offset(page.RowOffset()).Limit(page.Limit).Find(&tags).Error
	return tags, err
}
