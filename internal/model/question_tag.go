package model

// QuestionTag is the admin-curated category every question belongs to.
// Non-admin listings are always scoped to one tag.
type QuestionTag struct {
	BaseModel
	Name string `gorm:"size:255;uniqueIndex;not null" json:"name"`
}

func (QuestionTag) TableName() string {
	return "question_tags"
}
