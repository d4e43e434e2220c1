package repository

import (
	"practice_hub_backend/internal/listing"
	"practice_hub_backend/internal/model"

	"gorm.io/gorm"
)

// UnscopedTag disables the tag partition on an admin question listing.
const UnscopedTag = -1

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	err := r.DB.Preload("Tag").Preload("User").First(&question, id).Error
	return &question, err
}

// UpdateStateIf applies a transition only when the row is still in the
// expected source state, so two concurrent moderators cannot both win.
func (r *QuestionRepository) UpdateStateIf(tx *gorm.DB, id uint, from, to model.QuestionState) (bool, error) {
	res := tx.Model(&model.Question{}).
		Where("id = ? AND state = ?", id, from).
		Update("state", to)
	return res.RowsAffected == 1, res.Error
}

func (r *QuestionRepository) applyCriteria(q *gorm.DB, c *listing.Criteria) *gorm.DB {
	if t, ok := c.CreatedFromTime(); ok {
		q = q.Where("questions.created_at >= ?", t)
	}
	if t, ok := c.CreatedToTime(); ok {
		q = q.Where("questions.created_at <= ?", t)
	}
	if cond, args, ok := listing.ContainsAny("questions.content", c.Content); ok {
		q = q.Where(cond, args...)
	}
	if cond, args, ok := listing.ContainsAny("questions.hashtags", c.Hashtag); ok {
		q = q.Where(cond, args...)
	}
	if cond, args, ok := listing.ContainsAny("users.name", c.AuthorName); ok {
		q = q.Where("questions.user_id IN (?)",
			r.DB.Model(&model.User{}).Select("users.id").Where(cond, args...))
	}
	if cond, args, ok := listing.ContainsAny("users.code", c.AuthorCode); ok {
		q = q.Where("questions.user_id IN (?)",
			r.DB.Model(&model.User{}).Select("users.id").Where(cond, args...))
	}
	return q
}

func applyQuestionOrder(q *gorm.DB, c *listing.Criteria) *gorm.DB {
	if c.MoreAnswersFirst {
		q = q.Order("(SELECT COUNT(*) FROM answers WHERE answers.question_id = questions.id) DESC")
	}
	if c.MoreCommentsFirst {
		q = q.Order("(SELECT COUNT(*) FROM comments WHERE comments.question_id = questions.id) DESC")
	}
	if c.SortCreatedAsc {
		return q.Order("questions.created_at ASC")
	}
	return q.Order("questions.created_at DESC")
}

// stateQuery is the admin partition: one state, optionally one tag.
func (r *QuestionRepository) stateQuery(state model.QuestionState, tagID int, c *listing.Criteria) *gorm.DB {
	q := r.DB.Model(&model.Question{}).Where("questions.state = ?", state)
	if tagID != UnscopedTag {
		q = q.Where("questions.tag_id = ?", tagID)
	}
	return r.applyCriteria(q, c)
}

func (r *QuestionRepository) CountByState(state model.QuestionState, tagID int, c *listing.Criteria) (int64, error) {
	var total int64
	err := r.stateQuery(state, tagID, c).Count(&total).Error
	return total, err
}

func (r *QuestionRepository) ListByState(state model.QuestionState, tagID int, c *listing.Criteria, page listing.Page) ([]model.Question, error) {
	var questions []model.Question
	q := applyQuestionOrder(r.stateQuery(state, tagID, c), c)
	err := q.Preload("Tag").Preload("User").
		Offset(page.RowOffset()).Limit(page.Limit).
		Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) createdQuery(userID uint, c *listing.Criteria) *gorm.DB {
	q := r.DB.Model(&model.Question{}).Where("questions.user_id = ?", userID)
	return r.applyCriteria(q, c)
}

func (r *QuestionRepository) CountCreatedBy(userID uint, c *listing.Criteria) (int64, error) {
	var total int64
	err := r.createdQuery(userID, c).Count(&total).Error
	return total, err
}

func (r *QuestionRepository) ListCreatedBy(userID uint, c *listing.Criteria, page listing.Page) ([]model.Question, error) {
	var questions []model.Question
	q := applyQuestionOrder(r.createdQuery(userID, c), c)
	err := q.Preload("Tag").
		Offset(page.RowOffset()).Limit(page.Limit).
		Find(&questions).Error
	return questions, err
}

// answeredQuery partitions the approved questions of one tag by
// whether the user has answered them at least once.
func (r *QuestionRepository) answeredQuery(userID, tagID uint, answered bool, c *listing.Criteria) *gorm.DB {
	q := r.DB.Model(&model.Question{}).
		Where("questions.state = ?", model.QuestionApproved).
		Where("questions.tag_id = ?", tagID)
	exists := "EXISTS (SELECT 1 FROM answers WHERE answers.question_id = questions.id AND answers.user_id = ?)"
	if !answered {
		exists = "NOT " + exists
	}
	q = q.Where(exists, userID)
	return r.applyCriteria(q, c)
}

func (r *QuestionRepository) CountAnswered(userID, tagID uint, answered bool, c *listing.Criteria) (int64, error) {
	var total int64
	err := r.answeredQuery(userID, tagID, answered, c).Count(&total).Error
	return total, err
}

func (r *QuestionRepository) ListAnswered(userID, tagID uint, answered bool, c *listing.Criteria, page listing.Page) ([]model.Question, error) {
	var questions []model.Question
	q := applyQuestionOrder(r.answeredQuery(userID, tagID, answered, c), c)
	err := q.Preload("Tag").Preload("User").
		Offset(page.RowOffset()).Limit(page.Limit).
		Find(&questions).Error
	return questions, err
}
