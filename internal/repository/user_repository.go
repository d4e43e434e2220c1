package repository

import (
	"errors"

	"practice_hub_backend/internal/listing"
	"practice_hub_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindByCode(code string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("code = ?", code).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

// EmailTaken reports whether another account already holds the address.
func (r *UserRepository) EmailTaken(email string, excludeID uint) bool {
	var count int64
	q := r.DB.Model(&model.User{}).Where("email = ?", email)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	q.Count(&count)
	return count > 0
}

// CodeTaken reports whether an account code is already in use.
func (r *UserRepository) CodeTaken(code string) bool {
	var count int64
	r.DB.Model(&model.User{}).Where("code = ?", code).Count(&count)
	return count > 0
}

// UpdateStateIf moves the user's state only when it still matches the
// expected source state. Returns false when the row was not in that
// state, for whatever reason.
func (r *UserRepository) UpdateStateIf(tx *gorm.DB, id uint, from, to model.UserState) (bool, error) {
	res := tx.Model(&model.User{}).
		Where("id = ? AND state = ?", id, from).
		Update("state", to)
	return res.RowsAffected == 1, res.Error
}

func (r *UserRepository) applyCriteria(q *gorm.DB, c *listing.Criteria) *gorm.DB {
	if t, ok := c.CreatedFromTime(); ok {
		q = q.Where("users.created_at >= ?", t)
	}
	if t, ok := c.CreatedToTime(); ok {
		q = q.Where("users.created_at <= ?", t)
	}
	if cond, args, ok := listing.ContainsAny("users.name", c.Name); ok {
		q = q.Where(cond, args...)
	}
	if cond, args, ok := listing.ContainsAny("users.code", c.AuthorCode); ok {
		q = q.Where(cond, args...)
	}
	return q
}

// stateQuery scopes to the member accounts in a state. Admins never
// appear in the moderation listings.
func (r *UserRepository) stateQuery(state model.UserState, c *listing.Criteria) *gorm.DB {
	q := r.DB.Model(&model.User{}).
		Where("users.state = ?", state).
		Where("users.role <> ?", model.RoleAdmin)
	return r.applyCriteria(q, c)
}

func (r *UserRepository) CountByState(state model.UserState, c *listing.Criteria) (int64, error) {
	var total int64
	err := r.stateQuery(state, c).Count(&total).Error
	return total, err
}

func (r *UserRepository) ListByState(state model.UserState, c *listing.Criteria, page listing.Page) ([]model.User, error) {
	var users []model.User
	q := r.stateQuery(state, c)
	if c.SortCreatedAsc {
		q = q.Order("users.created_at ASC")
	} else {
		q = q.Order("users.created_at DESC")
	}
	err := q.Offset(page.RowOffset()).Limit(page.Limit).Find(&users).Error
	return users, err
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
