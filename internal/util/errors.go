package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email is already registered")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrEvaluationNotFound = errors.New("evaluation not found")
	ErrTagNotFound        = errors.New("tag not found")
	ErrNoTags             = errors.New("no question tags exist")
	ErrAccountLocked      = errors.New("account is locked")
	ErrBadCredentials     = errors.New("bad credentials")
)
