package service

import (
	"revhub/internal/repository"
	"revhub/internal/util"
	"revhub/pkg/logger"
)

// PointsService adjusts a user's point balances. Every award lands in the
// lifetime pool; the competition pool is touched only while a competition
// window is active, resolved by a best-effort external check.
type PointsService interface {
	Award(userID string, amount int, action string) error
}

// CompetitionChecker reports whether a competition window is currently
// active. Implementations must fail closed: any error means "no
// competition".
type CompetitionChecker interface {
	Active() bool
}

type pointsService struct {
	pointsRepo  repository.PointsRepository
	competition CompetitionChecker
}

func NewPointsService(pointsRepo repository.PointsRepository, competition CompetitionChecker) PointsService {
	return &pointsService{pointsRepo: pointsRepo, competition: competition}
}

func (s *pointsService) Award(userID string, amount int, action string) error {
	inCompetition := false
	if s.competition != nil {
		inCompetition = s.competition.Active()
	}
	return s.pointsRepo.Award(userID, amount, action, inCompetition)
}

// redisCompetitionChecker resolves the competition flag from redis.
type redisCompetitionChecker struct {
	redis *util.RedisClient
	key   string
}

func NewRedisCompetitionChecker(redis *util.RedisClient, key string) CompetitionChecker {
	return &redisCompetitionChecker{redis: redis, key: key}
}

func (c *redisCompetitionChecker) Active() bool {
	if c.redis == nil {
		return false
	}
	val, err := c.redis.Get(c.key)
	if err != nil {
		// Flag missing or redis down: default to no competition.
		return false
	}
	active := val == "1" || val == "true"
	if active {
		logger.Debug("competition window active")
	}
	return active
}
