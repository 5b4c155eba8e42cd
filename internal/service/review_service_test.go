package service

import (
	"context"
	"testing"

	"revhub/internal/apperr"
	"revhub/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reviewFixture struct {
	reviews  *fakeReviewRepo
	comments *fakeCommentRepo
	catalog  *fakeCatalogRepo
	svc      ReviewService
}

func newReviewFixture() *reviewFixture {
	f := &reviewFixture{
		reviews:  newFakeReviewRepo(),
		comments: newFakeCommentRepo(),
		catalog:  newFakeCatalogRepo(),
	}
	f.svc = NewReviewService(f.reviews, f.comments, f.catalog, staticAI(72), nil)
	return f
}

func TestCreateReviewGradesAndStores(t *testing.T) {
	f := newReviewFixture()
	f.catalog.phones["p1"] = &model.Phone{ID: "p1", Name: "Pixel"}

	review, err := f.svc.Create(context.Background(), model.AreaPhone, "u1", "p1", "fast", "pricey", 4)
	require.NoError(t, err)
	assert.Equal(t, 72.0, review.Grade)
	assert.Equal(t, 4, review.Rating)
	assert.Equal(t, 1, f.catalog.phones["p1"].Views)
}

func TestCreateReviewForMissingTarget(t *testing.T) {
	f := newReviewFixture()

	_, err := f.svc.Create(context.Background(), model.AreaPhone, "u1", "ghost", "fast", "", 5)
	assert.ErrorIs(t, err, apperr.ErrTargetNotFound)
}

func TestCreateReviewUnknownArea(t *testing.T) {
	f := newReviewFixture()

	_, err := f.svc.Create(context.Background(), "tablet", "u1", "p1", "fast", "", 5)
	assert.ErrorIs(t, err, apperr.ErrBadRequest)
}

func TestGetHiddenReviewLooksMissing(t *testing.T) {
	f := newReviewFixture()
	f.reviews.reviews["r1"] = &model.Review{ID: "r1", UserID: "u1", TargetID: "p1", Hidden: true}

	_, err := f.svc.Get(model.AreaPhone, "r1", "")
	assert.ErrorIs(t, err, apperr.ErrTargetNotFound)

	_, err = f.svc.Get(model.AreaPhone, "r1", "someone-else")
	assert.ErrorIs(t, err, apperr.ErrTargetNotFound)

	// The owner still sees their hidden review.
	review, err := f.svc.Get(model.AreaPhone, "r1", "u1")
	require.NoError(t, err)
	assert.True(t, review.Hidden)
}

func TestSetHiddenRequiresOwnership(t *testing.T) {
	f := newReviewFixture()
	f.reviews.reviews["r1"] = &model.Review{ID: "r1", UserID: "u1", TargetID: "p1"}

	err := f.svc.SetHidden(model.AreaPhone, "r1", "intruder", true)
	assert.ErrorIs(t, err, apperr.ErrTargetNotFound)
	assert.False(t, f.reviews.reviews["r1"].Hidden)

	require.NoError(t, f.svc.SetHidden(model.AreaPhone, "r1", "u1", true))
	assert.True(t, f.reviews.reviews["r1"].Hidden)
}

func TestCreateCommentBumpsCounter(t *testing.T) {
	f := newReviewFixture()
	f.reviews.reviews["r1"] = &model.Review{ID: "r1", UserID: "author", TargetID: "p1"}

	comment, err := f.svc.CreateComment(model.AreaPhone, "u2", "r1", nil, "agreed")
	require.NoError(t, err)
	assert.Equal(t, "r1", comment.ReviewID)
	assert.Equal(t, 1, f.reviews.reviews["r1"].CommentsCount)
}

func TestCreateReplyValidatesParent(t *testing.T) {
	f := newReviewFixture()
	f.reviews.reviews["r1"] = &model.Review{ID: "r1", UserID: "author", TargetID: "p1"}
	f.reviews.reviews["r2"] = &model.Review{ID: "r2", UserID: "author", TargetID: "p1"}
	f.comments.comments["c1"] = &model.Comment{ID: "c1", ReviewID: "r2", UserID: "u2"}

	// Parent belongs to a different review.
	parent := "c1"
	_, err := f.svc.CreateComment(model.AreaPhone, "u3", "r1", &parent, "reply")
	assert.ErrorIs(t, err, apperr.ErrTargetNotFound)

	missing := "nope"
	_, err = f.svc.CreateComment(model.AreaPhone, "u3", "r1", &missing, "reply")
	assert.ErrorIs(t, err, apperr.ErrTargetNotFound)
}
