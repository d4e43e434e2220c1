package repository

import (
	"practice_hub_backend/internal/listing"
	"practice_hub_backend/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	DB *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{DB: db}
}

func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.DB.Create(comment).Error
}

func (r *CommentRepository) FindByID(id uint) (*model.Comment, error) {
	var comment model.Comment
	err := r.DB.Preload("User").Preload("Question").First(&comment, id).Error
	return &comment, err
}

func (r *CommentRepository) UpdateStateIf(tx *gorm.DB, id uint, from, to model.CommentState) (bool, error) {
	res := tx.Model(&model.Comment{}).
		Where("id = ? AND state = ?", id, from).
		Update("state", to)
	return res.RowsAffected == 1, res.Error
}

// ListByQuestion returns a question's comments for display. Locked
// comments stay visible only to admins.
func (r *CommentRepository) ListByQuestion(questionID uint, includeLocked bool) ([]model.Comment, error) {
	var comments []model.Comment
	q := r.DB.Preload("User").Where("comments.question_id = ?", questionID)
	if !includeLocked {
		q = q.Where("comments.state = ?", model.CommentNormal)
	}
	err := q.Order("comments.created_at ASC").Find(&comments).Error
	return comments, err
}

func (r *CommentRepository) applyCriteria(q *gorm.DB, c *listing.Criteria) *gorm.DB {
	if t, ok := c.CreatedFromTime(); ok {
		q = q.Where("comments.created_at >= ?", t)
	}
	if t, ok := c.CreatedToTime(); ok {
		q = q.Where("comments.created_at <= ?", t)
	}
	if cond, args, ok := listing.ContainsAny("comments.content", c.Content); ok {
		q = q.Where(cond, args...)
	}
	if cond, args, ok := listing.ContainsAny("users.name", c.AuthorName); ok {
		q = q.Where("comments.user_id IN (?)",
			r.DB.Model(&model.User{}).Select("users.id").Where(cond, args...))
	}
	if cond, args, ok := listing.ContainsAny("users.code", c.AuthorCode); ok {
		q = q.Where("comments.user_id IN (?)",
			r.DB.Model(&model.User{}).Select("users.id").Where(cond, args...))
	}
	return q
}

func (r *CommentRepository) CountByState(state model.CommentState, c *listing.Criteria) (int64, error) {
	var total int64
	q := r.DB.Model(&model.Comment{}).Where("comments.state = ?", state)
	err := r.applyCriteria(q, c).Count(&total).Error
	return total, err
}

func (r *CommentRepository) ListByState(state model.CommentState, c *listing.Criteria, page listing.Page) ([]model.Comment, error) {
	var comments []model.Comment
	q := r.DB.Model(&model.Comment{}).Where("comments.state = ?", state)
	q = r.applyCriteria(q, c)
	if c.SortCreatedAsc {
		q = q.Order("comments.created_at ASC")
	} else {
		q = q.Order("comments.created_at DESC")
	}
	err := q.Preload("User").Preload("Question").
		Offset(page.RowOffset()).Limit(page.Limit).
		Find(&comments).Error
	return comments, err
}
