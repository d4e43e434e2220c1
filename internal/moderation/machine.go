// Package moderation holds the transition tables that gate every state
// change on a moderated entity. Resolving an action is pure; applying
// the resulting transition (conditional update + audit log row) is the
// owning service's job.
package moderation

import (
	"errors"
	"fmt"

	"practice_hub_backend/internal/model"
)

var ErrIllegalTransition = errors.New("illegal state transition")

// Action is the small request literal naming a transition ("1", "2", ...).
type Action string

type Transition struct {
	From string
	To   string
}

// Table maps action codes to the single transition each one performs.
type Table map[Action]Transition

// Resolve returns the target state for applying action a to an entity
// currently in state current. Unknown actions and source-state
// mismatches both come back as ErrIllegalTransition; callers must not
// mutate anything in that case.
func Resolve(t Table, a Action, current string) (string, error) {
	tr, ok := t[a]
	if !ok {
		return "", fmt.Errorf("%w: unknown action %q", ErrIllegalTransition, a)
	}
	if tr.From != current {
		return "", fmt.Errorf("%w: action %q requires state %q, entity is %q", ErrIllegalTransition, a, tr.From, current)
	}
	return tr.To, nil
}

// IsIllegal reports whether err is an illegal-transition failure.
func IsIllegal(err error) bool {
	return errors.Is(err, ErrIllegalTransition)
}

// LogContent is the exact audit log body for a transition.
func LogContent(from, to string) string {
	return from + " -> " + to
}

const (
	QuestionApprove   Action = "1" // Pending -> Approved
	QuestionReject    Action = "2" // Pending -> Unapproved
	QuestionLock      Action = "3" // Approved -> Locked
	QuestionUnlock    Action = "4" // Locked -> Approved
	QuestionReapprove Action = "5" // Unapproved -> Approved
)

var QuestionTable = Table{
	QuestionApprove:   {From: string(model.QuestionPending), To: string(model.QuestionApproved)},
	QuestionReject:    {From: string(model.QuestionPending), To: string(model.QuestionUnapproved)},
	QuestionLock:      {From: string(model.QuestionApproved), To: string(model.QuestionLocked)},
	QuestionUnlock:    {From: string(model.QuestionLocked), To: string(model.QuestionApproved)},
	QuestionReapprove: {From: string(model.QuestionUnapproved), To: string(model.QuestionApproved)},
}

const (
	CommentLock   Action = "1"
	CommentUnlock Action = "2"
)

var CommentTable = Table{
	CommentLock:   {From: string(model.CommentNormal), To: string(model.CommentLocked)},
	CommentUnlock: {From: string(model.CommentLocked), To: string(model.CommentNormal)},
}

const (
	EvaluationDismiss      Action = "1" // mark processed
	EvaluationLockComment  Action = "2" // mark processed, cascade-lock target comment
	EvaluationLockQuestion Action = "3" // mark processed, cascade-lock target question
)

var EvaluationTable = Table{
	EvaluationDismiss:      {From: string(model.EvaluationPending), To: string(model.EvaluationLocked)},
	EvaluationLockComment:  {From: string(model.EvaluationPending), To: string(model.EvaluationLocked)},
	EvaluationLockQuestion: {From: string(model.EvaluationPending), To: string(model.EvaluationLocked)},
}

const (
	UserLock   Action = "lock"
	UserUnlock Action = "unlock"
)

var UserTable = Table{
	UserLock:   {From: string(model.UserNormal), To: string(model.UserLocked)},
	UserUnlock: {From: string(model.UserLocked), To: string(model.UserNormal)},
}
