package repository

import (
	"practice_hub_backend/internal/listing"
	"practice_hub_backend/internal/model"

	"gorm.io/gorm"
)

type EvaluationRepository struct {
	DB *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) *EvaluationRepository {
	return &EvaluationRepository{DB: db}
}

func (r *EvaluationRepository) Create(evaluation *model.Evaluation) error {
	return r.DB.Create(evaluation).Error
}

func (r *EvaluationRepository) FindByID(id uint) (*model.Evaluation, error) {
	var evaluation model.Evaluation
	err := r.DB.Preload("User").Preload("Question").Preload("Comment").
		First(&evaluation, id).Error
	return &evaluation, err
}

func (r *EvaluationRepository) UpdateStateIf(tx *gorm.DB, id uint, from, to model.EvaluationState) (bool, error) {
	res := tx.Model(&model.Evaluation{}).
		Where("id = ? AND state = ?", id, from).
		Update("state", to)
	return res.RowsAffected == 1, res.Error
}

func (r *EvaluationRepository) applyCriteria(q *gorm.DB, c *listing.Criteria) *gorm.DB {
	if t, ok := c.CreatedFromTime(); ok {
		q = q.Where("evaluations.created_at >= ?", t)
	}
	if t, ok := c.CreatedToTime(); ok {
		q = q.Where("evaluations.created_at <= ?", t)
	}
	if cond, args, ok := listing.ContainsAny("evaluations.content", c.Content); ok {
		q = q.Where(cond, args...)
	}
	if cond, args, ok := listing.ContainsAny("users.name", c.AuthorName); ok {
		q = q.Where("evaluations.user_id IN (?)",
			r.DB.Model(&model.User{}).Select("users.id").Where(cond, args...))
	}
	if cond, args, ok := listing.ContainsAny("users.code", c.AuthorCode); ok {
		q = q.Where("evaluations.user_id IN (?)",
			r.DB.Model(&model.User{}).Select("users.id").Where(cond, args...))
	}
	return q
}

// stateQuery partitions evaluations by state and by what they target:
// comment evaluations carry a comment reference, question evaluations
// do not.
func (r *EvaluationRepository) stateQuery(state model.EvaluationState, targetsComment bool, c *listing.Criteria) *gorm.DB {
	q := r.DB.Model(&model.Evaluation{}).Where("evaluations.state = ?", state)
	if targetsComment {
		q = q.Where("evaluations.comment_id IS NOT NULL")
	} else {
		q = q.Where("evaluations.comment_id IS NULL")
	}
	return r.applyCriteria(q, c)
}

func (r *EvaluationRepository) CountByState(state model.EvaluationState, targetsComment bool, c *listing.Criteria) (int64, error) {
	var total int64
	err := r.stateQuery(state, targetsComment, c).Count(&total).Error
	return total, err
}

func (r *EvaluationRepository) ListByState(state model.EvaluationState, targetsComment bool, c *listing.Criteria, page listing.Page) ([]model.Evaluation, error) {
	var evaluations []model.Evaluation
	q := r.stateQuery(state, targetsComment, c)
	if c.SortCreatedAsc {
		q = q.Order("evaluations.created_at ASC")
	} else {
		q = q.Order("evaluations.created_at DESC")
	}
	err := q.Preload("User").Preload("Question").Preload("Comment").
		Offset(page.RowOffset()).Limit(page.Limit).
		Find(&evaluations).Error
	return evaluations, err
}
