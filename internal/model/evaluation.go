package model

type EvaluationState string

const (
	EvaluationPending EvaluationState = "Pending"
	EvaluationLocked  EvaluationState = "Locked"
)

// Evaluation is user feedback on a question or on a comment, itself
// subject to moderation. One polymorphic table: a non-nil CommentID
// means the evaluation targets a comment, otherwise the question.
type Evaluation struct {
	BaseModel
	Content    string          `gorm:"type:text" json:"content"`
	Rating     *int            `json:"rating"` // 1..5, question evaluations only
	State      EvaluationState `gorm:"type:enum('Pending','Locked');default:'Pending'" json:"state"`
	QuestionID uint            `gorm:"index;not null" json:"questionId"`
	Question   Question        `gorm:"foreignKey:QuestionID" json:"question"`
	CommentID  *uint           `gorm:"index" json:"commentId"`
	Comment    *Comment        `gorm:"foreignKey:CommentID" json:"comment,omitempty"`
	UserID     uint            `gorm:"index;not null" json:"userId"`
	User       User            `gorm:"foreignKey:UserID" json:"user"`
}

func (Evaluation) TableName() string {
	return "evaluations"
}

// TargetsComment decides cascade eligibility from the reference itself,
// not from a separate type tag that could disagree with it.
func (e *Evaluation) TargetsComment() bool {
	return e.CommentID != nil
}
