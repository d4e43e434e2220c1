package controller

import (
	"testing"

	"practice_hub_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestCanEvaluate(t *testing.T) {
	question := func(state model.QuestionState) *model.Question {
		return &model.Question{State: state}
	}
	comment := func(state model.CommentState) *model.Comment {
		return &model.Comment{State: state}
	}

	tests := []struct {
		name     string
		question *model.Question
		comment  *model.Comment
		want     bool
	}{
		{"approved question", question(model.QuestionApproved), nil, true},
		{"pending question", question(model.QuestionPending), nil, false},
		{"unapproved question", question(model.QuestionUnapproved), nil, false},
		{"locked question", question(model.QuestionLocked), nil, false},
		{"normal comment", question(model.QuestionApproved), comment(model.CommentNormal), true},
		{"locked comment", question(model.QuestionApproved), comment(model.CommentLocked), false},
		{"normal comment on pending question", question(model.QuestionPending), comment(model.CommentNormal), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, canEvaluate(tt.question, tt.comment))
		})
	}
}
