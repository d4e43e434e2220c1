package service

import (
	"strings"

	"practice_hub_backend/internal/listing"
	"practice_hub_backend/internal/model"
	"practice_hub_backend/internal/repository"
)

type QuestionTagService struct {
	TagRepo *repository.QuestionTagRepository
}

func NewQuestionTagService(tagRepo *repository.QuestionTagRepository) *QuestionTagService {
	return &QuestionTagService{TagRepo: tagRepo}
}

func (s *QuestionTagService) NameTaken(name string) bool {
	return s.TagRepo.NameTaken(name)
}

func (s *QuestionTagService) Create(name string) (*model.QuestionTag, error) {
	tag := &model.QuestionTag{Name: strings.TrimSpace(name)}
	if err := s.TagRepo.Create(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *QuestionTagService) Count(c *listing.Criteria) (int64, error) {
	return s.TagRepo.Count(c)
}

func (s *QuestionTagService) List(c *listing.Criteria, page listing.Page) ([]model.QuestionTag, error) {
	return s.TagRepo.List(c, page)
}

func (s *QuestionTagService) All() ([]model.QuestionTag, error) {
	return s.TagRepo.All()
}
