package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"revhub/internal/config"
	"revhub/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aiConfig(baseURL string) *config.Config {
	return &config.Config{
		AIBaseURL: baseURL,
		AIAPIKey:  "test-key",
		AITimeout: 2 * time.Second,
		RoundSize: 3,
	}
}

func TestGradeUsesRemoteScore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/grade", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-API-Key"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "great phone", body["text"])

		json.NewEncoder(w).Encode(map[string]float64{"score": 87.5})
	}))
	defer srv.Close()

	svc := NewAIService(aiConfig(srv.URL), newFakeUserRepo(), newFakeReviewRepo(), nil)

	score := svc.Grade(context.Background(), "great phone")
	assert.Equal(t, 87.5, score)
}

func TestGradeFallsBackToHeuristic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := NewAIService(aiConfig(srv.URL), newFakeUserRepo(), newFakeReviewRepo(), nil)

	// 40 base + 4 words * 1.5
	score := svc.Grade(context.Background(), "solid battery great screen")
	assert.Equal(t, 46.0, score)
}

func TestHeuristicGradeCapsAtHundred(t *testing.T) {
	text := ""
	for i := 0; i < 100; i++ {
		text += "word "
	}
	assert.Equal(t, 100.0, heuristicGrade(text))
	assert.Equal(t, 40.0, heuristicGrade(""))
}

func TestRecommendAdvancesRoundAndReturnsItems(t *testing.T) {
	var rounds []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recommend", r.URL.Path)
		assert.Equal(t, "u1", r.URL.Query().Get("user"))
		rounds = append(rounds, r.URL.Query().Get("round"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"items": []string{"r1", "r2"},
			"total": 2,
		})
	}))
	defer srv.Close()

	users := newFakeUserRepo()
	svc := NewAIService(aiConfig(srv.URL), users, newFakeReviewRepo(), nil)

	set, err := svc.Recommend(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r2"}, set.Items)
	assert.Equal(t, 1, set.Round)
	assert.Equal(t, "ai", set.Source)

	// Each call advances the user's round.
	set, err = svc.Recommend(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, set.Round)
	assert.Equal(t, []string{"1", "2"}, rounds)
}

func TestRecommendFallsBackToPopularity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	reviews := newFakeReviewRepo()
	reviews.top = []*model.Review{
		{ID: "top1", Likes: 9},
		{ID: "top2", Likes: 7},
		{ID: "top3", Likes: 4},
		{ID: "top4", Likes: 1},
	}

	svc := NewAIService(aiConfig(srv.URL), newFakeUserRepo(), reviews, nil)

	set, err := svc.Recommend(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "popularity", set.Source)
	// Capped at the configured round size.
	assert.Equal(t, []string{"top1", "top2", "top3"}, set.Items)
}
