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

type EvaluationService struct {
	EvaluationRepo *repository.EvaluationRepository
	CommentRepo    *repository.CommentRepository
	QuestionRepo   *repository.QuestionRepository
	AuditRepo      *repository.AuditLogRepository
}

func NewEvaluationService(evaluationRepo *repository.EvaluationRepository, commentRepo *repository.CommentRepository, questionRepo *repository.QuestionRepository, auditRepo *repository.AuditLogRepository) *EvaluationService {
	return &EvaluationService{
		EvaluationRepo: evaluationRepo,
		CommentRepo:    commentRepo,
		QuestionRepo:   questionRepo,
		AuditRepo:      auditRepo,
	}
}

func (s *EvaluationService) Create(userID, questionID uint, commentID *uint, content string, rating *int) (*model.Evaluation, error) {
	if commentID != nil {
		// Rating belongs to question evaluations only.
		rating = nil
	}
	evaluation := &model.Evaluation{
		Content:    content,
		Rating:     rating,
		State:      model.EvaluationPending,
		QuestionID: questionID,
		CommentID:  commentID,
		UserID:     userID,
	}
	if err := s.EvaluationRepo.Create(evaluation); err != nil {
		return nil, err
	}
	return evaluation, nil
}

func (s *EvaluationService) CountByState(state model.EvaluationState, targetsComment bool, c *listing.Criteria) (int64, error) {
	return s.EvaluationRepo.CountByState(state, targetsComment, c)
}

func (s *EvaluationService) ListByState(state model.EvaluationState, targetsComment bool, c *listing.Criteria, page listing.Page) ([]model.Evaluation, error) {
	return s.EvaluationRepo.ListByState(state, targetsComment, c, page)
}

// ApplyAction processes a pending evaluation. Action "2" additionally
// locks the referenced comment, "3" the referenced question; each
// cascade is legal only against the matching target kind, skips a
// target that is already locked, and commits atomically with the
// evaluation's own transition and both audit rows.
func (s *EvaluationService) ApplyAction(actorID, evaluationID uint, action moderation.Action) (string, error) {
	evaluation, err := s.EvaluationRepo.FindByID(evaluationID)
	if err != nil {
		if repository.IsNotFound(err) {
			return "", util.ErrEvaluationNotFound
		}
		return "", err
	}

	next, err := moderation.Resolve(moderation.EvaluationTable, action, string(evaluation.State))
	if err != nil {
		return "", err
	}

	if action == moderation.EvaluationLockComment && !evaluation.TargetsComment() {
		return "", moderation.ErrIllegalTransition
	}
	if action == moderation.EvaluationLockQuestion && evaluation.TargetsComment() {
		return "", moderation.ErrIllegalTransition
	}

	message := "The evaluation has been processed."

	err = s.EvaluationRepo.DB.Transaction(func(tx *gorm.DB) error {
		ok, err := s.EvaluationRepo.UpdateStateIf(tx, evaluation.ID, evaluation.State, model.EvaluationState(next))
		if err != nil {
			return err
		}
		if !ok {
			return moderation.ErrIllegalTransition
		}
		if err := s.AuditRepo.Write(tx, "Evaluation", evaluation.ID, actorID,
			moderation.LogContent(string(evaluation.State), next)); err != nil {
			return err
		}

		switch action {
		case moderation.EvaluationLockComment:
			ok, err := s.CommentRepo.UpdateStateIf(tx, *evaluation.CommentID, model.CommentNormal, model.CommentLocked)
			if err != nil {
				return err
			}
			if ok {
				message = "The evaluation has been processed and the comment locked."
				return s.AuditRepo.Write(tx, "Comment", *evaluation.CommentID, actorID,
					moderation.LogContent(string(model.CommentNormal), string(model.CommentLocked)))
			}
		case moderation.EvaluationLockQuestion:
			if evaluation.Question.State == model.QuestionLocked {
				break
			}
			// Conditioned on the loaded state so the audit row cannot
			// record a source state the update did not match.
			ok, err := s.QuestionRepo.UpdateStateIf(tx, evaluation.QuestionID, evaluation.Question.State, model.QuestionLocked)
			if err != nil {
				return err
			}
			if ok {
				message = "The evaluation has been processed and the question locked."
				return s.AuditRepo.Write(tx, "Question", evaluation.QuestionID, actorID,
					moderation.LogContent(string(evaluation.Question.State), string(model.QuestionLocked)))
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	monitoring.StateTransitions.WithLabelValues("Evaluation", string(action)).Inc()
	return message, nil
}
