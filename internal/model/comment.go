package model

type CommentState string

const (
	CommentNormal CommentState = "Normal"
	CommentLocked CommentState = "Locked"
)

type Comment struct {
	BaseModel
	Content    string       `gorm:"type:text;not null" json:"content"`
	State      CommentState `gorm:"type:enum('Normal','Locked');default:'Normal'" json:"state"`
	QuestionID uint         `gorm:"index;not null" json:"questionId"`
	Question   Question     `gorm:"foreignKey:QuestionID" json:"question"`
	UserID     uint         `gorm:"index;not null" json:"userId"`
	User       User         `gorm:"foreignKey:UserID" json:"user"`
}

func (Comment) TableName() string {
	return "comments"
}
