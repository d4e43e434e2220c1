package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSingleChoice(t *testing.T) {
	q := &Question{Choices: ChoiceList{
		{Content: "A", IsTrue: false},
		{Content: "B", IsTrue: true},
		{Content: "", IsTrue: false},
		{Content: "", IsTrue: false},
	}}
	assert.True(t, q.IsSingleChoice())

	q.Choices[0].IsTrue = true
	assert.False(t, q.IsSingleChoice())

	q = &Question{Choices: ChoiceList{{Content: "A"}, {Content: "B"}}}
	assert.False(t, q.IsSingleChoice())
}

func TestTrueChoiceIndexes(t *testing.T) {
	q := &Question{Choices: ChoiceList{
		{Content: "A", IsTrue: true},
		{Content: "B", IsTrue: false},
		{Content: "C", IsTrue: true},
	}}
	assert.Equal(t, []int{1, 3}, q.TrueChoiceIndexes())
}

func TestQuestionVisibleTo(t *testing.T) {
	owner := uint(7)
	stranger := uint(9)

	tests := []struct {
		name   string
		state  QuestionState
		viewer uint
		role   UserRole
		want   bool
	}{
		{"approved visible to anyone", QuestionApproved, stranger, RoleUser, true},
		{"pending hidden from strangers", QuestionPending, stranger, RoleUser, false},
		{"pending visible to its author", QuestionPending, owner, RoleUser, true},
		{"unapproved visible to its author", QuestionUnapproved, owner, RoleUser, true},
		{"locked hidden from strangers", QuestionLocked, stranger, RoleUser, false},
		{"locked visible to its author", QuestionLocked, owner, RoleUser, true},
		{"admin sees everything", QuestionPending, stranger, RoleAdmin, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &Question{State: tt.state, UserID: owner}
			assert.Equal(t, tt.want, QuestionVisibleTo(q, tt.viewer, tt.role))
		})
	}
}
