package moderation

import (
	"testing"

	"practice_hub_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveQuestionActions(t *testing.T) {
	tests := []struct {
		name    string
		action  Action
		current string
		want    string
		wantErr bool
	}{
		{"approve pending", QuestionApprove, "Pending", "Approved", false},
		{"reject pending", QuestionReject, "Pending", "Unapproved", false},
		{"lock approved", QuestionLock, "Approved", "Locked", false},
		{"unlock locked", QuestionUnlock, "Locked", "Approved", false},
		{"reapprove unapproved", QuestionReapprove, "Unapproved", "Approved", false},
		{"approve twice", QuestionApprove, "Approved", "", true},
		{"lock pending", QuestionLock, "Pending", "", true},
		{"unknown action", Action("9"), "Pending", "", true},
		{"empty action", Action(""), "Pending", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(QuestionTable, tt.action, tt.current)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsIllegal(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveCommentActions(t *testing.T) {
	got, err := Resolve(CommentTable, CommentLock, string(model.CommentNormal))
	require.NoError(t, err)
	assert.Equal(t, string(model.CommentLocked), got)

	got, err = Resolve(CommentTable, CommentUnlock, string(model.CommentLocked))
	require.NoError(t, err)
	assert.Equal(t, string(model.CommentNormal), got)

	_, err = Resolve(CommentTable, CommentLock, string(model.CommentLocked))
	assert.True(t, IsIllegal(err))
}

func TestResolveEvaluationActions(t *testing.T) {
	for _, action := range []Action{EvaluationDismiss, EvaluationLockComment, EvaluationLockQuestion} {
		got, err := Resolve(EvaluationTable, action, string(model.EvaluationPending))
		require.NoError(t, err)
		assert.Equal(t, string(model.EvaluationLocked), got)

		_, err = Resolve(EvaluationTable, action, string(model.EvaluationLocked))
		assert.True(t, IsIllegal(err), "action %q must be illegal on a locked evaluation", action)
	}
}

func TestResolveUserActions(t *testing.T) {
	got, err := Resolve(UserTable, UserLock, string(model.UserNormal))
	require.NoError(t, err)
	assert.Equal(t, string(model.UserLocked), got)

	_, err = Resolve(UserTable, UserUnlock, string(model.UserNormal))
	assert.True(t, IsIllegal(err))
}

func TestLogContent(t *testing.T) {
	assert.Equal(t, "Pending -> Approved", LogContent("Pending", "Approved"))
	assert.Equal(t, "Normal -> Locked", LogContent("Normal", "Locked"))
}
