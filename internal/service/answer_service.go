package service

import (
	"practice_hub_backend/internal/model"
	"practice_hub_backend/internal/repository"
)

type AnswerService struct {
	AnswerRepo *repository.AnswerRepository
}

func NewAnswerService(answerRepo *repository.AnswerRepository) *AnswerService {
	return &AnswerService{AnswerRepo: answerRepo}
}

// Submit grades the selection against the question's true choices and
// appends it to the user's answer history. Answers are immutable and
// repeat submissions all count.
func (s *AnswerService) Submit(question *model.Question, userID uint, selected []int) (*model.Answer, error) {
	indexes := make(model.IndexList, len(selected))
	copy(indexes, selected)

	answer := &model.Answer{
		Choices:    indexes,
		IsCorrect:  model.GradeChoices(question.Choices, selected),
		QuestionID: question.ID,
		UserID:     userID,
	}
	if err := s.AnswerRepo.Create(answer); err != nil {
		return nil, err
	}
	return answer, nil
}

func (s *AnswerService) History(questionID, userID uint) ([]model.Answer, error) {
	return s.AnswerRepo.ListByQuestionAndUser(questionID, userID)
}
