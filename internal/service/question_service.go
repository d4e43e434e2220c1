package service

import (
	"context"
	"io"

	"practice_hub_backend/internal/listing"
	"practice_hub_backend/internal/model"
	"practice_hub_backend/internal/moderation"
	"practice_hub_backend/internal/repository"
	"practice_hub_backend/internal/util"
	"practice_hub_backend/pkg/monitoring"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuestionService struct {
	QuestionRepo *repository.QuestionRepository
	TagRepo      *repository.QuestionTagRepository
	AuditRepo    *repository.AuditLogRepository
	Storage      StorageProvider
}

func NewQuestionService(questionRepo *repository.QuestionRepository, tagRepo *repository.QuestionTagRepository, auditRepo *repository.AuditLogRepository, storage StorageProvider) *QuestionService {
	return &QuestionService{
		QuestionRepo: questionRepo,
		TagRepo:      tagRepo,
		AuditRepo:    auditRepo,
		Storage:      storage,
	}
}

// UploadImage stores a validated illustration and returns its URL.
func (s *QuestionService) UploadImage(ctx context.Context, reader io.Reader, size int64, contentType, ext string) (string, error) {
	filename := "questions/" + uuid.New().String() + ext
	return s.Storage.Upload(ctx, filename, reader, size, contentType)
}

func (s *QuestionService) Create(userID, tagID uint, content, hashtags, imageURL string, choices model.ChoiceList) (*model.Question, error) {
	question := &model.Question{
		Content:  content,
		State:    model.QuestionPending,
		Choices:  choices,
		TagID:    tagID,
		UserID:   userID,
		Hashtags: hashtags,
		ImageURL: imageURL,
	}
	if err := s.QuestionRepo.Create(question); err != nil {
		return nil, err
	}
	return question, nil
}

// Detail loads one question, answering 404 rather than 403 when the
// viewer may not see it: invisible rows do not exist for them.
func (s *QuestionService) Detail(id, viewerID uint, role model.UserRole) (*model.Question, error) {
	question, err := s.QuestionRepo.FindByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	if !model.QuestionVisibleTo(question, viewerID, role) {
		return nil, util.ErrQuestionNotFound
	}
	return question, nil
}

// ResolveTag picks the tag partition of a non-admin question listing.
// An unknown or absent request falls back to the first tag; a platform
// with no tags at all cannot serve tag-scoped listings.
func (s *QuestionService) ResolveTag(requested int) (*model.QuestionTag, error) {
	if requested > 0 {
		if tag, err := s.TagRepo.FindByID(uint(requested)); err == nil {
			return tag, nil
		}
	}
	tag, err := s.TagRepo.First()
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, util.ErrNoTags
		}
		return nil, err
	}
	return tag, nil
}

func (s *QuestionService) Tags() ([]model.QuestionTag, error) {
	return s.TagRepo.All()
}

func (s *QuestionService) CountByState(state model.QuestionState, tagID int, c *listing.Criteria) (int64, error) {
	return s.QuestionRepo.CountByState(state, tagID, c)
}

func (s *QuestionService) ListByState(state model.QuestionState, tagID int, c *listing.Criteria, page listing.Page) ([]model.Question, error) {
	return s.QuestionRepo.ListByState(state, tagID, c, page)
}

func (s *QuestionService) CountCreatedBy(userID uint, c *listing.Criteria) (int64, error) {
	return s.QuestionRepo.CountCreatedBy(userID, c)
}

func (s *QuestionService) ListCreatedBy(userID uint, c *listing.Criteria, page listing.Page) ([]model.Question, error) {
	return s.QuestionRepo.ListCreatedBy(userID, c, page)
}

func (s *QuestionService) CountAnswered(userID, tagID uint, answered bool, c *listing.Criteria) (int64, error) {
	return s.QuestionRepo.CountAnswered(userID, tagID, answered, c)
}

func (s *QuestionService) ListAnswered(userID, tagID uint, answered bool, c *listing.Criteria, page listing.Page) ([]model.Question, error) {
	return s.QuestionRepo.ListAnswered(userID, tagID, answered, c, page)
}

// ApplyAction runs one moderation action. The conditional update and
// its audit row commit in the same transaction; a concurrent loser
// rolls back with ErrIllegalTransition and the state is untouched.
func (s *QuestionService) ApplyAction(actorID, questionID uint, action moderation.Action) (string, error) {
	question, err := s.QuestionRepo.FindByID(questionID)
	if err != nil {
		if repository.IsNotFound(err) {
			return "", util.ErrQuestionNotFound
		}
		return "", err
	}

	next, err := moderation.Resolve(moderation.QuestionTable, action, string(question.State))
	if err != nil {
		return "", err
	}

	err = s.QuestionRepo.DB.Transaction(func(tx *gorm.DB) error {
		ok, err := s.QuestionRepo.UpdateStateIf(tx, question.ID, question.State, model.QuestionState(next))
		if err != nil {
			return err
		}
		if !ok {
			return moderation.ErrIllegalTransition
		}
		return s.AuditRepo.Write(tx, "Question", question.ID, actorID,
			moderation.LogContent(string(question.State), next))
	})
	if err != nil {
		return "", err
	}

	monitoring.StateTransitions.WithLabelValues("Question", string(action)).Inc()
	return "The question is now " + next + ".", nil
}
