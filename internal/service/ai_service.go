package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"revhub/internal/config"
	"revhub/internal/repository"
	"revhub/internal/util"
	"revhub/pkg/logger"
)

// AIService talks to the external grading/recommendation collaborator.
// Every call carries the API key header and a bounded timeout, and every
// failure degrades to a deterministic local routine instead of surfacing
// an error to the user-facing request.
type AIService interface {
	// Grade scores a review text. Never fails: falls back to the local
	// heuristic on any transport or decode error.
	Grade(ctx context.Context, text string) float64
	// Recommend returns the next round of recommended reviews for a user,
	// falling back to popularity ordering.
	Recommend(ctx context.Context, userID string) (*RecommendationSet, error)
}

type RecommendationSet struct {
	Items  []string `json:"items"`
	Total  int      `json:"total"`
	Round  int      `json:"round"`
	Source string   `json:"source"` // "ai" or "popularity"
}

type aiService struct {
	cfg        *config.Config
	client     *http.Client
	userRepo   repository.UserRepository
	reviewRepo repository.ReviewRepository
	redis      *util.RedisClient
}

func NewAIService(cfg *config.Config, userRepo repository.UserRepository, reviewRepo repository.ReviewRepository, redis *util.RedisClient) AIService {
	return &aiService{
		cfg:        cfg,
		client:     &http.Client{Timeout: cfg.AITimeout},
		userRepo:   userRepo,
		reviewRepo: reviewRepo,
		redis:      redis,
	}
}

type gradeResponse struct {
	Score float64 `json:"score"`
}

func (s *aiService) Grade(ctx context.Context, text string) float64 {
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return heuristicGrade(text)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.AIBaseURL+"/grade", bytes.NewReader(payload))
	if err != nil {
		return heuristicGrade(text)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", s.cfg.AIAPIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Warnf("AI grade call failed, using heuristic: %v", err)
		return heuristicGrade(text)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warnf("AI grade returned %d, using heuristic", resp.StatusCode)
		return heuristicGrade(text)
	}

	var out gradeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		logger.Warnf("AI grade decode failed, using heuristic: %v", err)
		return heuristicGrade(text)
	}
	return out.Score
}

// heuristicGrade is the deterministic local fallback: longer, word-dense
// reviews score higher, capped at 100.
func heuristicGrade(text string) float64 {
	words := strings.Fields(text)
	score := 40.0 + float64(len(words))*1.5
	if score > 100 {
		score = 100
	}
	return score
}

type recommendResponse struct {
	Items []string `json:"items"`
	Total int      `json:"total"`
}

func (s *aiService) Recommend(ctx context.Context, userID string) (*RecommendationSet, error) {
	round, err := s.userRepo.IncrementRecommendationRound(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to advance recommendation round: %w", err)
	}

	url := fmt.Sprintf("%s/recommend?user=%s&round=%d", s.cfg.AIBaseURL, userID, round)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return s.popularityFallback(round)
	}
	req.Header.Set("X-API-Key", s.cfg.AIAPIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Warnf("AI recommend call failed, using popularity: %v", err)
		return s.popularityFallback(round)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warnf("AI recommend returned %d, using popularity", resp.StatusCode)
		return s.popularityFallback(round)
	}

	var out recommendResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		logger.Warnf("AI recommend decode failed, using popularity: %v", err)
		return s.popularityFallback(round)
	}

	return &RecommendationSet{Items: out.Items, Total: out.Total, Round: round, Source: "ai"}, nil
}

// popularityFallback serves the most-liked phone reviews: first from the
// redis popularity ranking the counter mutator maintains, then straight
// from the database.
func (s *aiService) popularityFallback(round int) (*RecommendationSet, error) {
	limit := s.cfg.RoundSize

	if s.redis != nil {
		ids, err := s.redis.ZRevRange("popular:phone_reviews", 0, int64(limit-1))
		if err == nil && len(ids) > 0 {
			return &RecommendationSet{Items: ids, Total: len(ids), Round: round, Source: "popularity"}, nil
		}
	}

	reviews, err := s.reviewRepo.ListTop("phone_reviews", limit)
	if err != nil {
		return nil, fmt.Errorf("popularity fallback failed: %w", err)
	}
	items := make([]string, 0, len(reviews))
	for _, r := range reviews {
		items = append(items, r.ID)
	}
	return &RecommendationSet{Items: items, Total: len(items), Round: round, Source: "popularity"}, nil
}
