package service

import (
	"practice_hub_backend/internal/listing"
	"practice_hub_backend/internal/model"
	"practice_hub_backend/internal/moderation"
	"practice_hub_backend/internal/repository"
	"practice_hub_backend/internal/util"
	"practice_hub_backend/pkg/monitoring"

	"gorm.io/gorm"
)

type CommentService struct {
	CommentRepo *repository.CommentRepository
	AuditRepo   *repository.AuditLogRepository
}

func NewCommentService(commentRepo *repository.CommentRepository, auditRepo *repository.AuditLogRepository) *CommentService {
	return &CommentService{CommentRepo: commentRepo, AuditRepo: auditRepo}
}

func (s *CommentService) Create(questionID, userID uint, content string) (*model.Comment, error) {
	comment := &model.Comment{
		Content:    content,
		State:      model.CommentNormal,
		QuestionID: questionID,
		UserID:     userID,
	}
	if err := s.CommentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) ListByQuestion(questionID uint, includeLocked bool) ([]model.Comment, error) {
	return s.CommentRepo.ListByQuestion(questionID, includeLocked)
}

func (s *CommentService) CountByState(state model.CommentState, c *listing.Criteria) (int64, error) {
	return s.CommentRepo.CountByState(state, c)
}

func (s *CommentService) ListByState(state model.CommentState, c *listing.Criteria, page listing.Page) ([]model.Comment, error) {
	return s.CommentRepo.ListByState(state, c, page)
}

func (s *CommentService) ApplyAction(actorID, commentID uint, action moderation.Action) (string, error) {
	comment, err := s.CommentRepo.FindByID(commentID)
	if err != nil {
		if repository.IsNotFound(err) {
			return "", util.ErrCommentNotFound
		}
		return "", err
	}

	next, err := moderation.Resolve(moderation.CommentTable, action, string(comment.State))
	if err != nil {
		return "", err
	}

	err = s.CommentRepo.DB.Transaction(func(tx *gorm.DB) error {
		ok, err := s.CommentRepo.UpdateStateIf(tx, comment.ID, comment.State, model.CommentState(next))
		if err != nil {
			return err
		}
		if !ok {
			return moderation.ErrIllegalTransition
		}
		return s.AuditRepo.Write(tx, "Comment", comment.ID, actorID,
			moderation.LogContent(string(comment.State), next))
	})
	if err != nil {
		return "", err
	}

	monitoring.StateTransitions.WithLabelValues("Comment", string(action)).Inc()
	return "The comment is now " + next + ".", nil
}
