package service

import (
	"time"

	"revhub/internal/apperr"
	"revhub/internal/repository"
	"revhub/pkg/logger"
)

// SyncService handles the trainer's callback after a successful data
// pull: advance the checkpoint and restart everyone's recommendation
// rounds so the next recommendations come from the fresh model.
type SyncService interface {
	SetLastQuery(date time.Time) error
}

type syncService struct {
	syncRepo repository.SyncCheckpointRepository
	userRepo repository.UserRepository
}

func NewSyncService(syncRepo repository.SyncCheckpointRepository, userRepo repository.UserRepository) SyncService {
	return &syncService{syncRepo: syncRepo, userRepo: userRepo}
}

func (s *syncService) SetLastQuery(date time.Time) error {
	if date.IsZero() {
		return apperr.ErrBadRequest
	}

	if err := s.syncRepo.Advance(date); err != nil {
		if apperr.KindOf(err) != apperr.KindInternal {
			return err
		}
		return apperr.Internal("checkpoint advance", err)
	}

	if err := s.userRepo.ResetRecommendationRounds(); err != nil {
		// The checkpoint moved but rounds did not reset; log and surface.
		logger.Errorf("recommendation round reset failed after checkpoint advance: %v", err)
		return apperr.Internal("recommendation round reset", err)
	}

	logger.Infof("sync checkpoint advanced to %s", date.Format(time.RFC3339))
	return nil
}
