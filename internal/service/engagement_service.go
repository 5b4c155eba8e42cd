package service

import (
	"revhub/internal/apperr"
	"revhub/internal/model"
	"revhub/internal/repository"
	"revhub/pkg/logger"
)

// EngagementService is the like/unlike state machine. A (user, target)
// pair owns at most one ledger record, reused across like→unlike→like
// cycles by flipping its unliked flag; the counter on the target and the
// author's point balance move in lockstep with every transition.
//
// Consistency is best-effort: each step is an independent write, and a
// failure mid-sequence is surfaced with the step name rather than rolled
// back. The one compensation is the negative-counter repair in Unlike.
type EngagementService interface {
	Like(kind model.EngagementKind, userID, targetID string) (*model.LikeRecord, error)
	Unlike(kind model.EngagementKind, userID, targetID string) error
}

type engagementService struct {
	targetRepo repository.TargetRepository
	ledgerRepo repository.LedgerRepository
	syncRepo   repository.SyncCheckpointRepository
	points     PointsService
	notifier   NotificationService
}

func NewEngagementService(
	targetRepo repository.TargetRepository,
	ledgerRepo repository.LedgerRepository,
	syncRepo repository.SyncCheckpointRepository,
	points PointsService,
	notifier NotificationService,
) EngagementService {
	return &engagementService{
		targetRepo: targetRepo,
		ledgerRepo: ledgerRepo,
		syncRepo:   syncRepo,
		points:     points,
		notifier:   notifier,
	}
}

func (s *engagementService) Like(kind model.EngagementKind, userID, targetID string) (*model.LikeRecord, error) {
	target, err := s.targetRepo.Find(kind, targetID)
	if err != nil {
		return nil, apperr.Internal("like target guard", err)
	}
	if target == nil || target.UserID == userID {
		// Self-likes come back as not-found so the ownership check does
		// not leak whether the entity exists.
		return nil, apperr.ErrTargetNotFound
	}

	rec, err := s.ledgerRepo.FindByUserAndTarget(kind, userID, targetID)
	if err != nil {
		return nil, apperr.Internal("like ledger guard", err)
	}
	if rec != nil && !rec.Unliked {
		return nil, apperr.ErrAlreadyLiked
	}

	rows, err := s.targetRepo.AdjustCounter(kind, targetID, userID, 1)
	if err != nil {
		return nil, apperr.Internal("like counter mutation", err)
	}
	if rows == 0 {
		return nil, apperr.ErrTargetNotFound
	}

	if rec == nil {
		rec = &model.LikeRecord{UserID: userID, TargetID: targetID}
		if err := s.ledgerRepo.Create(kind, rec); err != nil {
			return nil, apperr.Internal("like ledger create", err)
		}
	} else {
		// Re-like: the flag flips back, and if the unlike that produced a
		// pending unlike event happened inside the current training
		// window, that event is cancelled out — from the trainer's next
		// pull nothing net happened.
		priorChange := rec.UpdatedAt
		if err := s.ledgerRepo.SetUnliked(kind, rec.ID, false); err != nil {
			return nil, apperr.Internal("like ledger flip", err)
		}
		rec.Unliked = false

		lastQuery, err := s.syncRepo.LastQuery()
		if err != nil {
			return nil, apperr.Internal("like checkpoint read", err)
		}
		if !priorChange.Before(lastQuery) {
			if _, err := s.ledgerRepo.DeleteUnlikesSince(kind, userID, targetID, lastQuery); err != nil {
				return nil, apperr.Internal("like delta cleanup", err)
			}
		}
	}

	if err := s.points.Award(target.UserID, kind.PointsPerLike, kind.PointsAction); err != nil {
		logger.Warnf("points credit failed for %s on %s: %v", target.UserID, kind.Name, err)
	}

	if s.notifier != nil {
		s.notifier.NotifyLiked(target.UserID, userID, kind.Name, targetID)
	}

	return rec, nil
}

func (s *engagementService) Unlike(kind model.EngagementKind, userID, targetID string) error {
	target, err := s.targetRepo.Find(kind, targetID)
	if err != nil {
		return apperr.Internal("unlike target guard", err)
	}
	if target == nil || target.UserID == userID {
		return apperr.ErrTargetNotFound
	}

	rec, err := s.ledgerRepo.FindByUserAndTarget(kind, userID, targetID)
	if err != nil {
		return apperr.Internal("unlike ledger guard", err)
	}
	if rec == nil {
		return apperr.ErrNotLikedBefore
	}
	if rec.Unliked {
		return apperr.ErrAlreadyUnliked
	}

	// Defensive floor before touching anything.
	if target.Counter <= 0 {
		return apperr.ErrNoLikes
	}

	rows, err := s.targetRepo.AdjustCounter(kind, targetID, userID, -1)
	if err != nil {
		return apperr.Internal("unlike counter mutation", err)
	}
	if rows == 0 {
		return apperr.ErrTargetNotFound
	}

	// Two concurrent unlikes can both pass the floor check before either
	// decrement lands. Re-read and repair if we drove it negative.
	post, err := s.targetRepo.CounterValue(kind, targetID)
	if err != nil {
		return apperr.Internal("unlike counter readback", err)
	}
	if post < 0 {
		if _, err := s.targetRepo.AdjustCounter(kind, targetID, userID, 1); err != nil {
			return apperr.Internal("unlike counter compensation", err)
		}
		return apperr.ErrNoLikes
	}

	if err := s.ledgerRepo.SetUnliked(kind, rec.ID, true); err != nil {
		return apperr.Internal("unlike ledger flip", err)
	}

	lastQuery, err := s.syncRepo.LastQuery()
	if err != nil {
		return apperr.Internal("unlike checkpoint read", err)
	}
	// The trainer scans like rows by updated_at, so a like both created
	// and last touched inside the current window already carries its net
	// state in the flipped flag. Only a like established before the
	// window needs a discrete unlike event for the next pull to see.
	if rec.CreatedAt.Before(lastQuery) {
		if err := s.ledgerRepo.CreateUnlike(kind, userID, targetID); err != nil {
			return apperr.Internal("unlike delta record", err)
		}
	}

	if err := s.points.Award(target.UserID, -kind.PointsPerLike, kind.PointsAction); err != nil {
		logger.Warnf("points debit failed for %s on %s: %v", target.UserID, kind.Name, err)
	}

	return nil
}
