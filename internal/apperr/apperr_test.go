package apperr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelsMatchAfterWrapping(t *testing.T) {
	wrapped := Wrap(ErrAlreadyLiked, errors.New("db detail"))

	assert.ErrorIs(t, wrapped, ErrAlreadyLiked)
	assert.NotErrorIs(t, wrapped, ErrAlreadyUnliked)
	assert.Equal(t, KindConflict, KindOf(wrapped))
	assert.Equal(t, "ALREADY_LIKED", CodeOf(wrapped))
}

func TestInternalRecordsStep(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("like counter mutation", cause)

	assert.Equal(t, KindInternal, KindOf(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "like counter mutation")
}

func TestUnknownErrorDefaultsToInternal(t *testing.T) {
	err := errors.New("plain")

	assert.Equal(t, KindInternal, KindOf(err))
	assert.Equal(t, "INTERNAL", CodeOf(err))
	assert.Equal(t, "internal server error", MessageOf(err))
}
