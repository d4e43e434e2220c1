package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

type QuestionState string

const (
	QuestionPending    QuestionState = "Pending"
	QuestionUnapproved QuestionState = "Unapproved"
	QuestionApproved   QuestionState = "Approved"
	QuestionLocked     QuestionState = "Locked"
)

// Choice is one option of a multiple-choice question.
type Choice struct {
	Content string `json:"content"`
	IsTrue  bool   `json:"is_true"`
}

// ChoiceList is stored as a JSON column; order is significant because
// answers reference choices by 1-based position.
type ChoiceList []Choice

func (l ChoiceList) Value() (driver.Value, error) {
	if l == nil {
		l = ChoiceList{}
	}
	return json.Marshal(l)
}

func (l *ChoiceList) Scan(value interface{}) error {
	if value == nil {
		*l = ChoiceList{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("unsupported type for ChoiceList")
	}
	return json.Unmarshal(raw, l)
}

type Question struct {
	BaseModel
	Content  string        `gorm:"type:text;not null" json:"content"`
	State    QuestionState `gorm:"type:enum('Pending','Unapproved','Approved','Locked');default:'Pending'" json:"state"`
	Choices  ChoiceList    `gorm:"type:json" json:"choices"`
	TagID    uint          `gorm:"index;not null" json:"tagId"`
	Tag      QuestionTag   `gorm:"foreignKey:TagID;constraint:OnDelete:RESTRICT" json:"tag"`
	UserID   uint          `gorm:"index;not null" json:"userId"`
	User     User          `gorm:"foreignKey:UserID" json:"user"`
	Hashtags string        `gorm:"size:255" json:"hashtags"`
	ImageURL string        `gorm:"size:255" json:"imageUrl"`
}

func (Question) TableName() string {
	return "questions"
}

// IsSingleChoice reports whether exactly one choice is marked true, which
// decides whether the answer form accepts one or many selections.
func (q *Question) IsSingleChoice() bool {
	count := 0
	for _, c := range q.Choices {
		if c.IsTrue {
			count++
		}
	}
	return count == 1
}

// TrueChoiceIndexes returns the 1-based positions of the true choices.
func (q *Question) TrueChoiceIndexes() []int {
	var idx []int
	for i, c := range q.Choices {
		if c.IsTrue {
			idx = append(idx, i+1)
		}
	}
	return idx
}

// QuestionVisibleTo is the per-role visibility predicate for question
// detail pages: admins see everything, regular users see approved
// questions plus their own in any state.
func QuestionVisibleTo(q *Question, userID uint, role UserRole) bool {
	if role == RoleAdmin {
		return true
	}
	return q.State == QuestionApproved || q.UserID == userID
}
