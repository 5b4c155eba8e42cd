package service

import (
	"testing"

	"revhub/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwardOutsideCompetition(t *testing.T) {
	repo := &fakePointsRepo{}
	svc := NewPointsService(repo, staticCompetition(false))

	require.NoError(t, svc.Award("u1", 5, model.ActionReviewLiked))
	assert.Equal(t, "u1", repo.lastUserID)
	assert.Equal(t, 5, repo.lastAmount)
	assert.False(t, repo.lastCompetition)
}

func TestAwardDuringCompetition(t *testing.T) {
	repo := &fakePointsRepo{}
	svc := NewPointsService(repo, staticCompetition(true))

	require.NoError(t, svc.Award("u1", -5, model.ActionReviewLiked))
	assert.Equal(t, -5, repo.lastAmount)
	assert.True(t, repo.lastCompetition)
}

func TestAwardWithoutCheckerDefaultsToLifetimeOnly(t *testing.T) {
	repo := &fakePointsRepo{}
	svc := NewPointsService(repo, nil)

	require.NoError(t, svc.Award("u1", 1, model.ActionCommentLiked))
	assert.False(t, repo.lastCompetition)
}
