package service

import (
	"time"

	"revhub/internal/apperr"
	"revhub/internal/model"
	"revhub/internal/repository"
	"revhub/pkg/logger"
)

// AcceptanceService governs the question → accepted-answer relationship:
// none → accepted → accepted(other) → none. Point transfers between old
// and new answer authors net to zero on a swap, and every transition emits
// exactly one delta row (accepted / changed / removed) per sync window so
// the external trainer sees the net effect, not the churn.
type AcceptanceService interface {
	Accept(kind model.QuestionKind, questionID, answerID, actorID string) error
	Reject(kind model.QuestionKind, questionID, answerID, actorID string) error
}

type acceptanceService struct {
	questionRepo repository.QuestionRepository
	deltaRepo    repository.DeltaRepository
	syncRepo     repository.SyncCheckpointRepository
	points       PointsService
	notifier     NotificationService
}

func NewAcceptanceService(
	questionRepo repository.QuestionRepository,
	deltaRepo repository.DeltaRepository,
	syncRepo repository.SyncCheckpointRepository,
	points PointsService,
	notifier NotificationService,
) AcceptanceService {
	return &acceptanceService{
		questionRepo: questionRepo,
		deltaRepo:    deltaRepo,
		syncRepo:     syncRepo,
		points:       points,
		notifier:     notifier,
	}
}

// loadPair fetches and cross-checks the question/answer pair and enforces
// the ownership rules shared by Accept and Reject.
func (s *acceptanceService) loadPair(kind model.QuestionKind, questionID, answerID, actorID string) (*model.Question, *model.Answer, error) {
	question, err := s.questionRepo.FindByID(kind.QuestionTable, questionID)
	if err != nil {
		return nil, nil, apperr.Internal("acceptance question guard", err)
	}
	if question == nil {
		return nil, nil, apperr.ErrTargetNotFound
	}

	answer, err := s.questionRepo.FindAnswerByID(kind.AnswerTable, answerID)
	if err != nil {
		return nil, nil, apperr.Internal("acceptance answer guard", err)
	}
	if answer == nil || answer.QuestionID != questionID {
		return nil, nil, apperr.ErrTargetNotFound
	}

	if question.UserID != actorID {
		return nil, nil, apperr.ErrForbidden
	}
	if answer.UserID == actorID {
		// Owners cannot accept (or revoke) their own answers.
		return nil, nil, apperr.ErrForbidden
	}

	return question, answer, nil
}

func (s *acceptanceService) Accept(kind model.QuestionKind, questionID, answerID, actorID string) error {
	question, answer, err := s.loadPair(kind, questionID, answerID, actorID)
	if err != nil {
		return err
	}

	lastQuery, err := s.syncRepo.LastQuery()
	if err != nil {
		return apperr.Internal("acceptance checkpoint read", err)
	}

	if question.AcceptedAnsID == nil {
		return s.acceptFirst(kind, question, answer, lastQuery)
	}
	if *question.AcceptedAnsID == answerID {
		return apperr.ErrAlreadyAccepted
	}
	return s.acceptSwap(kind, question, answer, lastQuery)
}

// acceptFirst handles the none → accepted transition.
func (s *acceptanceService) acceptFirst(kind model.QuestionKind, question *model.Question, answer *model.Answer, lastQuery time.Time) error {
	if err := s.questionRepo.SetAcceptedAnswer(kind.QuestionTable, question.ID, &answer.ID); err != nil {
		return apperr.Internal("accept question mutation", err)
	}
	if err := s.questionRepo.SetAnswerAccepted(kind.AnswerTable, answer.ID, true); err != nil {
		return apperr.Internal("accept answer mutation", err)
	}

	if err := s.points.Award(answer.UserID, kind.PointsPerAccept, model.ActionAnswerAccepted); err != nil {
		logger.Warnf("points credit failed for accepted answer %s: %v", answer.ID, err)
	}

	// If this question already went through an accept/revoke cycle inside
	// the current window, a pending removed row exists; its cancellation
	// makes this a net "changed", not a fresh "accepted".
	removed, err := s.deltaRepo.DeleteSince(kind.AcceptedRemovedTable, question.UserID, question.ID, lastQuery)
	if err != nil {
		return apperr.Internal("accept delta cleanup", err)
	}
	deltaTable := kind.AcceptedTable
	if removed > 0 {
		deltaTable = kind.AcceptedChangedTable
	}
	if err := s.deltaRepo.Create(deltaTable, question.UserID, question.ID); err != nil {
		return apperr.Internal("accept delta record", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyAccepted(answer.UserID, question.UserID, kind.Name, question.ID)
	}
	return nil
}

// acceptSwap handles accepted(old) → accepted(new).
func (s *acceptanceService) acceptSwap(kind model.QuestionKind, question *model.Question, answer *model.Answer, lastQuery time.Time) error {
	oldID := *question.AcceptedAnsID
	oldAnswer, err := s.questionRepo.FindAnswerByID(kind.AnswerTable, oldID)
	if err != nil {
		return apperr.Internal("accept swap old-answer guard", err)
	}

	if err := s.questionRepo.SetAcceptedAnswer(kind.QuestionTable, question.ID, &answer.ID); err != nil {
		return apperr.Internal("accept swap question mutation", err)
	}
	if err := s.questionRepo.SetAnswerAccepted(kind.AnswerTable, oldID, false); err != nil {
		return apperr.Internal("accept swap old-answer mutation", err)
	}
	if err := s.questionRepo.SetAnswerAccepted(kind.AnswerTable, answer.ID, true); err != nil {
		return apperr.Internal("accept swap new-answer mutation", err)
	}

	// Net-zero transfer across the two authors.
	if oldAnswer != nil {
		if err := s.points.Award(oldAnswer.UserID, -kind.PointsPerAccept, model.ActionAcceptRevoked); err != nil {
			logger.Warnf("points debit failed for replaced answer %s: %v", oldID, err)
		}
	}
	if err := s.points.Award(answer.UserID, kind.PointsPerAccept, model.ActionAnswerAccepted); err != nil {
		logger.Warnf("points credit failed for accepted answer %s: %v", answer.ID, err)
	}

	// An in-window "accepted" row already tells the trainer everything;
	// otherwise upsert a single "changed" marker for the window.
	acceptedInWindow, err := s.deltaRepo.ExistsSince(kind.AcceptedTable, question.UserID, question.ID, lastQuery)
	if err != nil {
		return apperr.Internal("accept swap delta check", err)
	}
	if !acceptedInWindow {
		changedInWindow, err := s.deltaRepo.ExistsSince(kind.AcceptedChangedTable, question.UserID, question.ID, lastQuery)
		if err != nil {
			return apperr.Internal("accept swap delta check", err)
		}
		if !changedInWindow {
			if err := s.deltaRepo.Create(kind.AcceptedChangedTable, question.UserID, question.ID); err != nil {
				return apperr.Internal("accept swap delta record", err)
			}
		}
	}

	if s.notifier != nil {
		s.notifier.NotifyAccepted(answer.UserID, question.UserID, kind.Name, question.ID)
		if oldAnswer != nil {
			s.notifier.NotifyAcceptRevoked(oldAnswer.UserID, question.UserID, kind.Name, question.ID)
		}
	}
	return nil
}

func (s *acceptanceService) Reject(kind model.QuestionKind, questionID, answerID, actorID string) error {
	question, answer, err := s.loadPair(kind, questionID, answerID, actorID)
	if err != nil {
		return err
	}

	if question.AcceptedAnsID == nil {
		return apperr.ErrNotYetAccepted
	}
	if *question.AcceptedAnsID != answerID {
		return apperr.ErrNotAccepted
	}

	lastQuery, err := s.syncRepo.LastQuery()
	if err != nil {
		return apperr.Internal("reject checkpoint read", err)
	}

	if err := s.questionRepo.SetAcceptedAnswer(kind.QuestionTable, question.ID, nil); err != nil {
		return apperr.Internal("reject question mutation", err)
	}
	if err := s.questionRepo.SetAnswerAccepted(kind.AnswerTable, answer.ID, false); err != nil {
		return apperr.Internal("reject answer mutation", err)
	}

	if err := s.points.Award(answer.UserID, -kind.PointsPerAccept, model.ActionAcceptRevoked); err != nil {
		logger.Warnf("points debit failed for rejected answer %s: %v", answer.ID, err)
	}

	// If the acceptance itself happened inside this window, deleting its
	// row cancels the pair out and nothing more is needed. Otherwise the
	// accept predates the window: clear any in-window "changed" marker
	// and record the removal.
	removed, err := s.deltaRepo.DeleteSince(kind.AcceptedTable, question.UserID, question.ID, lastQuery)
	if err != nil {
		return apperr.Internal("reject delta cleanup", err)
	}
	if removed == 0 {
		if _, err := s.deltaRepo.DeleteSince(kind.AcceptedChangedTable, question.UserID, question.ID, lastQuery); err != nil {
			return apperr.Internal("reject delta cleanup", err)
		}
		if err := s.deltaRepo.Create(kind.AcceptedRemovedTable, question.UserID, question.ID); err != nil {
			return apperr.Internal("reject delta record", err)
		}
	}

	if s.notifier != nil {
		s.notifier.NotifyAcceptRevoked(answer.UserID, question.UserID, kind.Name, question.ID)
	}
	return nil
}
