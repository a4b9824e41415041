package auction

import (
	"strings"
	"testing"
	"time"

	"auctiondesk/internal/models"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2025, 4, 10, 12, 0, 0, 0, time.UTC)

func at(d time.Duration) *time.Time {
	t := now.Add(d)
	return &t
}

func TestCheckPublish(t *testing.T) {
	cases := []struct {
		name string
		a    models.Auction
		want error
	}{
		{"ok", models.Auction{Status: models.StatusPending, StartsAt: at(time.Hour), EndsAt: at(2 * time.Hour)}, nil},
		{"start is now", models.Auction{Status: models.StatusPending, StartsAt: at(0), EndsAt: at(time.Hour)}, ErrStartPassed},
		{"start passed", models.Auction{Status: models.StatusPending, StartsAt: at(-time.Minute), EndsAt: at(time.Hour)}, ErrStartPassed},
		{"end passed", models.Auction{Status: models.StatusPending, StartsAt: at(time.Hour), EndsAt: at(-time.Hour)}, ErrEndPassed},
		{"end equals start", models.Auction{Status: models.StatusPending, StartsAt: at(time.Hour), EndsAt: at(time.Hour)}, ErrEndBeforeStart},
		{"no dates", models.Auction{Status: models.StatusPending}, ErrMissingSchedule},
		{"not pending", models.Auction{Status: models.StatusActive, StartsAt: at(time.Hour), EndsAt: at(2 * time.Hour)}, ErrNotPending},
		{"in flight", models.Auction{Status: models.StatusPublishing}, ErrInFlight},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckPublish(tc.a, now)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCheckStop(t *testing.T) {
	assert.NoError(t, CheckStop(models.Auction{Status: models.StatusPublished}))
	assert.ErrorIs(t, CheckStop(models.Auction{Status: models.StatusPending}), ErrNotPublished)
	assert.ErrorIs(t, CheckStop(models.Auction{Status: models.StatusPausing}), ErrInFlight)
}

func TestCheckCancel(t *testing.T) {
	active := models.Auction{Status: models.StatusActive}

	reason, err := CheckCancel(active, "  vehicle withdrawn  ")
	assert.NoError(t, err)
	assert.Equal(t, "vehicle withdrawn", reason)

	_, err = CheckCancel(active, "   ")
	assert.ErrorIs(t, err, ErrReasonRequired)

	_, err = CheckCancel(active, strings.Repeat("á", MaxCancelReasonLen))
	assert.NoError(t, err)

	_, err = CheckCancel(active, strings.Repeat("a", MaxCancelReasonLen+1))
	assert.ErrorIs(t, err, ErrReasonTooLong)

	_, err = CheckCancel(models.Auction{Status: models.StatusPublished}, "x")
	assert.ErrorIs(t, err, ErrNotActive)
}

func TestCheckDelete(t *testing.T) {
	for _, s := range []models.Status{models.StatusPending, models.StatusFinalized, models.StatusExpired, models.StatusCancelled} {
		assert.NoError(t, CheckDelete(models.Auction{Status: s}), s)
	}
	for _, s := range []models.Status{models.StatusPublished, models.StatusActive} {
		assert.ErrorIs(t, CheckDelete(models.Auction{Status: s}), ErrNotDeletable, s)
	}
	assert.ErrorIs(t, CheckDelete(models.Auction{Status: models.StatusCancelling}), ErrInFlight)
}

func TestNextAutomatic(t *testing.T) {
	next, ok := NextAutomatic(models.Auction{Status: models.StatusPublished, StartsAt: at(0)}, now, false)
	assert.True(t, ok)
	assert.Equal(t, models.StatusActive, next)

	_, ok = NextAutomatic(models.Auction{Status: models.StatusPublished, StartsAt: at(time.Second)}, now, false)
	assert.False(t, ok)

	next, ok = NextAutomatic(models.Auction{Status: models.StatusActive, EndsAt: at(-time.Hour)}, now, false)
	assert.True(t, ok)
	assert.Equal(t, models.StatusExpired, next)

	_, ok = NextAutomatic(models.Auction{Status: models.StatusExpired}, now, false)
	assert.False(t, ok)

	next, ok = NextAutomatic(models.Auction{Status: models.StatusExpired}, now, true)
	assert.True(t, ok)
	assert.Equal(t, models.StatusFinalized, next)

	// one step per pass even when both boundaries are behind us
	next, ok = NextAutomatic(models.Auction{Status: models.StatusPublished, StartsAt: at(-2 * time.Hour), EndsAt: at(-time.Hour)}, now, true)
	assert.True(t, ok)
	assert.Equal(t, models.StatusActive, next)

	for _, s := range []models.Status{models.StatusFinalized, models.StatusCancelled, models.StatusPending} {
		_, ok = NextAutomatic(models.Auction{Status: s, StartsAt: at(-time.Hour), EndsAt: at(-time.Minute)}, now, true)
		assert.False(t, ok, s)
	}
}
