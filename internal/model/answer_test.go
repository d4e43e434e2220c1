package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradeChoices(t *testing.T) {
	choices := ChoiceList{
		{Content: "A", IsTrue: false},
		{Content: "B", IsTrue: true},
		{Content: "", IsTrue: false},
		{Content: "", IsTrue: false},
	}

	tests := []struct {
		name     string
		selected []int
		want     bool
	}{
		{"the true choice", []int{2}, true},
		{"a false choice", []int{1}, false},
		{"true plus false", []int{1, 2}, false},
		{"nothing selected", nil, false},
		{"index out of range", []int{5}, false},
		{"zero index", []int{0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GradeChoices(choices, tt.selected))
		})
	}
}

func TestGradeChoicesMultiTrue(t *testing.T) {
	choices := ChoiceList{
		{Content: "A", IsTrue: true},
		{Content: "B", IsTrue: false},
		{Content: "C", IsTrue: true},
	}

	assert.True(t, GradeChoices(choices, []int{1, 3}))
	assert.True(t, GradeChoices(choices, []int{3, 1}), "order must not matter")
	assert.False(t, GradeChoices(choices, []int{1}), "a missing true choice fails")
	assert.False(t, GradeChoices(choices, []int{1, 2, 3}))
}
