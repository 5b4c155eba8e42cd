package service

import (
	"testing"
	"time"

	"revhub/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLastQueryRejectsZeroDate(t *testing.T) {
	sync := &fakeSyncRepo{}
	users := newFakeUserRepo()
	svc := NewSyncService(sync, users)

	err := svc.SetLastQuery(time.Time{})
	assert.ErrorIs(t, err, apperr.ErrBadRequest)
	assert.False(t, users.roundReset)
}

func TestSetLastQueryIsMonotonic(t *testing.T) {
	now := time.Now()
	sync := &fakeSyncRepo{last: now}
	users := newFakeUserRepo()
	svc := NewSyncService(sync, users)

	err := svc.SetLastQuery(now.Add(-time.Hour))
	assert.ErrorIs(t, err, apperr.ErrStaleCheckpoint)
	assert.False(t, users.roundReset)

	err = svc.SetLastQuery(now)
	assert.ErrorIs(t, err, apperr.ErrStaleCheckpoint)
}

func TestSetLastQueryAdvancesAndResetsRounds(t *testing.T) {
	sync := &fakeSyncRepo{last: time.Now().Add(-time.Hour)}
	users := newFakeUserRepo()
	users.rounds["u1"] = 4
	svc := NewSyncService(sync, users)

	next := time.Now()
	require.NoError(t, svc.SetLastQuery(next))

	assert.Equal(t, next, sync.last)
	assert.True(t, users.roundReset)
	assert.Zero(t, users.rounds["u1"])
}
