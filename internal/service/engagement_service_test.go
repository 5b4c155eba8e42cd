package service

import (
	"testing"
	"time"

	"revhub/internal/apperr"
	"revhub/internal/model"
	"revhub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reviewKind() model.EngagementKind {
	return model.Kinds(5, 5, 1, 1)["phone_review"]
}

type engagementFixture struct {
	targets *fakeTargetRepo
	ledger  *fakeLedgerRepo
	sync    *fakeSyncRepo
	points  *fakePoints
	svc     EngagementService
}

func newEngagementFixture() *engagementFixture {
	f := &engagementFixture{
		targets: newFakeTargetRepo(),
		ledger:  newFakeLedgerRepo(),
		sync:    &fakeSyncRepo{},
		points:  &fakePoints{},
	}
	f.svc = NewEngagementService(f.targets, f.ledger, f.sync, f.points, nil)
	return f
}

func (f *engagementFixture) addTarget(id, ownerID string, counter int) {
	f.targets.rows[id] = &repository.TargetRow{ID: id, UserID: ownerID, Counter: counter}
}

func TestLikeCreatesLedgerAndMovesCounter(t *testing.T) {
	f := newEngagementFixture()
	f.addTarget("r1", "author", 0)

	rec, err := f.svc.Like(reviewKind(), "liker", "r1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.False(t, rec.Unliked)

	assert.Equal(t, 1, f.targets.rows["r1"].Counter)
	assert.Equal(t, 5, f.points.total("author"))
	require.Len(t, f.points.awards, 1)
	assert.Equal(t, model.ActionReviewLiked, f.points.awards[0].action)
}

func TestLikeMissingTarget(t *testing.T) {
	f := newEngagementFixture()

	_, err := f.svc.Like(reviewKind(), "liker", "missing")
	assert.ErrorIs(t, err, apperr.ErrTargetNotFound)
}

func TestLikeOwnContentLooksLikeNotFound(t *testing.T) {
	f := newEngagementFixture()
	f.addTarget("r1", "author", 0)

	_, err := f.svc.Like(reviewKind(), "author", "r1")
	assert.ErrorIs(t, err, apperr.ErrTargetNotFound)

	assert.Equal(t, 0, f.targets.rows["r1"].Counter)
	assert.Empty(t, f.points.awards)
	assert.Empty(t, f.ledger.recs)
}

func TestLikeTwiceConflicts(t *testing.T) {
	f := newEngagementFixture()
	f.addTarget("r1", "author", 0)

	_, err := f.svc.Like(reviewKind(), "liker", "r1")
	require.NoError(t, err)

	_, err = f.svc.Like(reviewKind(), "liker", "r1")
	assert.ErrorIs(t, err, apperr.ErrAlreadyLiked)
	assert.Equal(t, 1, f.targets.rows["r1"].Counter)
}

func TestUnlikeRequiresPriorLike(t *testing.T) {
	f := newEngagementFixture()
	f.addTarget("r1", "author", 3)

	err := f.svc.Unlike(reviewKind(), "liker", "r1")
	assert.ErrorIs(t, err, apperr.ErrNotLikedBefore)
	assert.Equal(t, 3, f.targets.rows["r1"].Counter)
}

func TestLikeUnlikeLifecycleReusesLedgerRecord(t *testing.T) {
	f := newEngagementFixture()
	f.addTarget("r1", "author", 0)
	kind := reviewKind()

	_, err := f.svc.Like(kind, "liker", "r1")
	require.NoError(t, err)

	require.NoError(t, f.svc.Unlike(kind, "liker", "r1"))
	assert.Equal(t, 0, f.targets.rows["r1"].Counter)
	assert.True(t, f.ledger.recs["liker|r1"].Unliked)

	err = f.svc.Unlike(kind, "liker", "r1")
	assert.ErrorIs(t, err, apperr.ErrAlreadyUnliked)

	rec, err := f.svc.Like(kind, "liker", "r1")
	require.NoError(t, err)
	assert.False(t, rec.Unliked)

	// One record throughout the whole cycle, flipped in place.
	assert.Len(t, f.ledger.recs, 1)
	assert.Equal(t, 1, f.targets.rows["r1"].Counter)

	// +5, -5, +5 for the author across the cycle.
	assert.Equal(t, 5, f.points.total("author"))
}

func TestUnlikeRespectsCounterFloor(t *testing.T) {
	f := newEngagementFixture()
	f.addTarget("r1", "author", 0)
	f.ledger.recs["liker|r1"] = &model.LikeRecord{
		ID: "rec1", UserID: "liker", TargetID: "r1",
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}

	err := f.svc.Unlike(reviewKind(), "liker", "r1")
	assert.ErrorIs(t, err, apperr.ErrNoLikes)
	assert.Equal(t, 0, f.targets.rows["r1"].Counter)
	assert.False(t, f.ledger.recs["liker|r1"].Unliked)
	assert.Empty(t, f.points.awards)
}

func TestUnlikeCompensatesRacingDecrement(t *testing.T) {
	f := newEngagementFixture()
	f.addTarget("r1", "author", 1)
	f.ledger.recs["liker|r1"] = &model.LikeRecord{
		ID: "rec1", UserID: "liker", TargetID: "r1",
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}

	// The readback sees a concurrent unlike having driven the counter
	// negative.
	negative := -1
	f.targets.readbackOverride = &negative

	err := f.svc.Unlike(reviewKind(), "liker", "r1")
	assert.ErrorIs(t, err, apperr.ErrNoLikes)

	// Decremented then re-incremented: back where it started.
	assert.Equal(t, 1, f.targets.rows["r1"].Counter)
	assert.False(t, f.ledger.recs["liker|r1"].Unliked)
}

func TestUnlikeOfPreWindowLikeRecordsEvent(t *testing.T) {
	f := newEngagementFixture()
	f.addTarget("r1", "author", 1)
	f.sync.last = time.Now()

	// The like predates the checkpoint.
	past := f.sync.last.Add(-time.Hour)
	f.ledger.recs["liker|r1"] = &model.LikeRecord{
		ID: "rec1", UserID: "liker", TargetID: "r1",
		CreatedAt: past, UpdatedAt: past,
	}

	require.NoError(t, f.svc.Unlike(reviewKind(), "liker", "r1"))
	require.Len(t, f.ledger.unlikes, 1)
	assert.Equal(t, "liker", f.ledger.unlikes[0].userID)
}

func TestUnlikeOfInWindowLikeLeavesNoEvent(t *testing.T) {
	f := newEngagementFixture()
	f.addTarget("r1", "author", 0)
	f.sync.last = time.Now().Add(-time.Hour)

	// Liked after the checkpoint: the flipped flag already carries the net
	// state for the next pull.
	_, err := f.svc.Like(reviewKind(), "liker", "r1")
	require.NoError(t, err)

	require.NoError(t, f.svc.Unlike(reviewKind(), "liker", "r1"))
	assert.Empty(t, f.ledger.unlikes)
}

func TestRelikeCancelsInWindowUnlikeEvent(t *testing.T) {
	f := newEngagementFixture()
	f.addTarget("r1", "author", 1)
	f.sync.last = time.Now().Add(-time.Hour)
	kind := reviewKind()

	// Pre-window like, in-window unlike: the discrete event is recorded.
	past := f.sync.last.Add(-time.Hour)
	f.ledger.recs["liker|r1"] = &model.LikeRecord{
		ID: "rec1", UserID: "liker", TargetID: "r1",
		CreatedAt: past, UpdatedAt: past,
	}
	require.NoError(t, f.svc.Unlike(kind, "liker", "r1"))
	require.Len(t, f.ledger.unlikes, 1)

	// Re-like inside the same window cancels it: the trainer sees nothing
	// net happened.
	_, err := f.svc.Like(kind, "liker", "r1")
	require.NoError(t, err)
	assert.Empty(t, f.ledger.unlikes)
	assert.Equal(t, 1, f.targets.rows["r1"].Counter)
}

func TestRelikeKeepsPreWindowUnlikeEvent(t *testing.T) {
	f := newEngagementFixture()
	f.addTarget("r1", "author", 0)
	f.sync.last = time.Now()
	kind := reviewKind()

	// The unlike and its event both predate the checkpoint: the trainer
	// already consumed that window, so the event must survive a re-like.
	past := f.sync.last.Add(-time.Hour)
	f.ledger.recs["liker|r1"] = &model.LikeRecord{
		ID: "rec1", UserID: "liker", TargetID: "r1", Unliked: true,
		CreatedAt: past.Add(-time.Hour), UpdatedAt: past,
	}
	f.ledger.unlikes = append(f.ledger.unlikes, unlikeEvent{userID: "liker", targetID: "r1", createdAt: past})

	_, err := f.svc.Like(kind, "liker", "r1")
	require.NoError(t, err)
	assert.Len(t, f.ledger.unlikes, 1)
	assert.False(t, f.ledger.recs["liker|r1"].Unliked)
}
