package service

import (
	"context"

	"practice_hub_backend/internal/form"
	"practice_hub_backend/internal/listing"
	"practice_hub_backend/internal/model"
	"practice_hub_backend/internal/moderation"
	"practice_hub_backend/internal/repository"
	"practice_hub_backend/internal/util"
	"practice_hub_backend/pkg/logger"
	"practice_hub_backend/pkg/monitoring"
	"practice_hub_backend/pkg/session"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserService struct {
	UserRepo     *repository.UserRepository
	QuestionRepo *repository.QuestionRepository
	AuditRepo    *repository.AuditLogRepository
	Sessions     *session.Manager
}

func NewUserService(userRepo *repository.UserRepository, questionRepo *repository.QuestionRepository, auditRepo *repository.AuditLogRepository, sessions *session.Manager) *UserService {
	return &UserService{
		UserRepo:     userRepo,
		QuestionRepo: questionRepo,
		AuditRepo:    auditRepo,
		Sessions:     sessions,
	}
}

func (s *UserService) Profile(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// CreatedQuestionCount is shown on public profiles.
func (s *UserService) CreatedQuestionCount(userID uint) int64 {
	count, err := s.QuestionRepo.CountCreatedBy(userID, &listing.Criteria{})
	if err != nil {
		return 0
	}
	return count
}

func (s *UserService) EmailTakenByOther(email string, userID uint) bool {
	return s.UserRepo.EmailTaken(email, userID)
}

func (s *UserService) UpdateProfile(user *model.User, name, email string) error {
	user.Name = name
	user.Email = form.NormalizeEmail(email)
	return s.UserRepo.Update(user)
}

func (s *UserService) CountByState(state model.UserState, c *listing.Criteria) (int64, error) {
	return s.UserRepo.CountByState(state, c)
}

func (s *UserService) ListByState(state model.UserState, c *listing.Criteria, page listing.Page) ([]model.User, error) {
	return s.UserRepo.ListByState(state, c, page)
}

// ApplyAction locks or unlocks an account. Admin accounts never
// transition, whoever asks. Locking also destroys the target's live
// sessions so open tokens die immediately.
func (s *UserService) ApplyAction(ctx context.Context, actorID, targetID uint, action moderation.Action) (string, error) {
	target, err := s.UserRepo.FindByID(targetID)
	if err != nil {
		if repository.IsNotFound(err) {
			return "", util.ErrUserNotFound
		}
		return "", err
	}
	if target.IsAdmin() {
		return "", util.ErrPermissionDenied
	}

	next, err := moderation.Resolve(moderation.UserTable, action, string(target.State))
	if err != nil {
		return "", err
	}

	err = s.UserRepo.DB.Transaction(func(tx *gorm.DB) error {
		ok, err := s.UserRepo.UpdateStateIf(tx, target.ID, target.State, model.UserState(next))
		if err != nil {
			return err
		}
		if !ok {
			return moderation.ErrIllegalTransition
		}
		return s.AuditRepo.Write(tx, "User", target.ID, actorID,
			moderation.LogContent(string(target.State), next))
	})
	if err != nil {
		return "", err
	}

	monitoring.StateTransitions.WithLabelValues("User", string(action)).Inc()

	if model.UserState(next) == model.UserLocked {
		if err := s.Sessions.DestroyUserSessions(ctx, target.ID); err != nil {
			logger.Log.Error("Failed to destroy sessions of locked user",
				zap.Uint("user_id", target.ID), zap.Error(err))
		}
	}

	return "The account of " + target.Name + " is now " + next + ".", nil
}
