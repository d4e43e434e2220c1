package service

import (
	"testing"

	"practice_hub_backend/internal/moderation"
	"practice_hub_backend/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyActionLockQuestionConditionsOnLoadedState(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewEvaluationService(
		repository.NewEvaluationRepository(db),
		repository.NewCommentRepository(db),
		repository.NewQuestionRepository(db),
		repository.NewAuditLogRepository(db),
	)

	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("SELECT \\* FROM `evaluations`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "state", "question_id", "user_id"}).
			AddRow(5, "Pending", 7, 3))
	mock.ExpectQuery("SELECT \\* FROM `questions`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "state", "user_id"}).
			AddRow(7, "Approved", 3))
	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(3, "pat"))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `evaluations`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	// The cascade may only lock from the state it loaded, so the audit
	// row and the update predicate cannot disagree.
	mock.ExpectExec("UPDATE `questions`").
		WithArgs("Locked", sqlmock.AnyArg(), 7, "Approved").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `audit_logs`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `audit_logs`").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	message, err := svc.ApplyAction(1, 5, moderation.EvaluationLockQuestion)
	require.NoError(t, err)
	assert.Equal(t, "The evaluation has been processed and the question locked.", message)
	assert.NoError(t, mock.ExpectationsWereMet())
}
