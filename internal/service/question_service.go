package service

import (
	"revhub/internal/apperr"
	"revhub/internal/model"
	"revhub/internal/repository"
)

// QuestionService owns the question/answer content flows; acceptance
// transitions live in AcceptanceService.
type QuestionService interface {
	Create(area, userID, targetID, content string) (*model.Question, error)
	Get(area, id string) (*model.Question, error)
	ListByTarget(area, targetID string, limit, offset int) ([]*model.Question, int64, error)
	CreateAnswer(area, questionID, userID, content string) (*model.Answer, error)
	ListAnswers(area, questionID string, limit, offset int) ([]*model.Answer, error)
}

type questionService struct {
	questionRepo repository.QuestionRepository
	catalogRepo  repository.CatalogRepository
	kinds        map[string]model.QuestionKind
	notifier     NotificationService
}

func NewQuestionService(
	questionRepo repository.QuestionRepository,
	catalogRepo repository.CatalogRepository,
	kinds map[string]model.QuestionKind,
	notifier NotificationService,
) QuestionService {
	return &questionService{
		questionRepo: questionRepo,
		catalogRepo:  catalogRepo,
		kinds:        kinds,
		notifier:     notifier,
	}
}

func (s *questionService) kind(area string) (model.QuestionKind, error) {
	k, ok := s.kinds[area]
	if !ok {
		return model.QuestionKind{}, apperr.ErrBadRequest
	}
	return k, nil
}

func (s *questionService) Create(area, userID, targetID, content string) (*model.Question, error) {
	kind, err := s.kind(area)
	if err != nil {
		return nil, err
	}

	var exists bool
	if area == model.AreaPhone {
		phone, err := s.catalogRepo.FindPhone(targetID)
		if err != nil {
			return nil, apperr.Internal("question target guard", err)
		}
		exists = phone != nil
	} else {
		company, err := s.catalogRepo.FindCompany(targetID)
		if err != nil {
			return nil, apperr.Internal("question target guard", err)
		}
		exists = company != nil
	}
	if !exists {
		return nil, apperr.ErrTargetNotFound
	}

	question := &model.Question{
		UserID:   userID,
		TargetID: targetID,
		Content:  content,
	}
	if err := s.questionRepo.Create(kind.QuestionTable, question); err != nil {
		return nil, apperr.Internal("question create", err)
	}
	return question, nil
}

func (s *questionService) Get(area, id string) (*model.Question, error) {
	kind, err := s.kind(area)
	if err != nil {
		return nil, err
	}
	question, err := s.questionRepo.FindByID(kind.QuestionTable, id)
	if err != nil {
		return nil, apperr.Internal("question read", err)
	}
	if question == nil || question.Hidden {
		return nil, apperr.ErrTargetNotFound
	}
	return question, nil
}

func (s *questionService) ListByTarget(area, targetID string, limit, offset int) ([]*model.Question, int64, error) {
	kind, err := s.kind(area)
	if err != nil {
		return nil, 0, err
	}
	questions, total, err := s.questionRepo.ListByTarget(kind.QuestionTable, targetID, limit, offset)
	if err != nil {
		return nil, 0, apperr.Internal("question list", err)
	}
	return questions, total, nil
}

func (s *questionService) CreateAnswer(area, questionID, userID, content string) (*model.Answer, error) {
	kind, err := s.kind(area)
	if err != nil {
		return nil, err
	}

	question, err := s.questionRepo.FindByID(kind.QuestionTable, questionID)
	if err != nil {
		return nil, apperr.Internal("answer question guard", err)
	}
	if question == nil || question.Hidden {
		return nil, apperr.ErrTargetNotFound
	}

	answer := &model.Answer{
		QuestionID: questionID,
		UserID:     userID,
		Content:    content,
	}
	if err := s.questionRepo.CreateAnswer(kind.AnswerTable, answer); err != nil {
		return nil, apperr.Internal("answer create", err)
	}

	if err := s.questionRepo.IncrementAnsCount(kind.QuestionTable, questionID, 1); err != nil {
		return nil, apperr.Internal("answer counter mutation", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyAnswered(question.UserID, userID, kind.Name, questionID)
	}

	return answer, nil
}

func (s *questionService) ListAnswers(area, questionID string, limit, offset int) ([]*model.Answer, error) {
	kind, err := s.kind(area)
	if err != nil {
		return nil, err
	}
	answers, err := s.questionRepo.ListAnswers(kind.AnswerTable, questionID, limit, offset)
	if err != nil {
		return nil, apperr.Internal("answer list", err)
	}
	return answers, nil
}
