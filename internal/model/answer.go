package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// IndexList holds the 1-based choice positions a user selected,
// stored as a JSON column.
type IndexList []int

func (l IndexList) Value() (driver.Value, error) {
	if l == nil {
		l = IndexList{}
	}
	return json.Marshal(l)
}

func (l *IndexList) Scan(value interface{}) error {
	if value == nil {
		*l = IndexList{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("unsupported type for IndexList")
	}
	return json.Unmarshal(raw, l)
}

// Answer is immutable after creation; a user may answer the same
// question any number of times and the history is kept.
type Answer struct {
	BaseModel
	Choices    IndexList `gorm:"type:json" json:"choices"`
	IsCorrect  bool      `gorm:"not null" json:"isCorrect"`
	QuestionID uint      `gorm:"index;not null" json:"questionId"`
	Question   Question  `gorm:"foreignKey:QuestionID" json:"question"`
	UserID     uint      `gorm:"index;not null" json:"userId"`
	User       User      `gorm:"foreignKey:UserID" json:"user"`
}

func (Answer) TableName() string {
	return "answers"
}

// GradeChoices reports whether the selected 1-based indexes are exactly
// the set of true choices: every selection must be true and every true
// choice must be selected.
func GradeChoices(choices ChoiceList, selected []int) bool {
	for _, i := range selected {
		if i < 1 || i > len(choices) || !choices[i-1].IsTrue {
			return false
		}
	}
	for i, c := range choices {
		if !c.IsTrue {
			continue
		}
		found := false
		for _, s := range selected {
			if s == i+1 {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
