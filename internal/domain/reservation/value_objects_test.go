//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"space-booking/internal/domain/reservation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustStay(t *testing.T, start, end time.Time) reservation.Stay {
	t.Helper()
	s, err := reservation.NewStay(start, end)
	require.NoError(t, err)
	return s
}

func TestNewStay(t *testing.T) {
	t.Run("end before start", func(t *testing.T) {
		_, err := reservation.NewStay(date(2026, 3, 17), date(2026, 3, 15))
		assert.ErrorIs(t, err, reservation.ErrInvalidDateRange)
	})

	t.Run("single day stay", func(t *testing.T) {
		s := mustStay(t, date(2026, 3, 15), date(2026, 3, 15))
		assert.Equal(t, 1, s.Days())
	})

	t.Run("truncates time of day", func(t *testing.T) {
		s, err := reservation.NewStay(
			time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC),
			time.Date(2026, 3, 17, 9, 0, 0, 0, time.UTC),
		)
		require.NoError(t, err)
		assert.Equal(t, date(2026, 3, 15), s.Start())
		assert.Equal(t, date(2026, 3, 17), s.End())
	})
}

func TestNewFutureStay(t *testing.T) {
	today := date(2026, 3, 10)

	t.Run("start in the past", func(t *testing.T) {
		_, err := reservation.NewFutureStay(date(2026, 3, 9), date(2026, 3, 12), today)
		assert.ErrorIs(t, err, reservation.ErrStartInPast)
	})

	t.Run("start today is allowed", func(t *testing.T) {
		_, err := reservation.NewFutureStay(date(2026, 3, 10), date(2026, 3, 12), today)
		assert.NoError(t, err)
	})
}

func TestStayDays(t *testing.T) {
	cases := []struct {
		start, end time.Time
		want       int
	}{
		{date(2026, 3, 15), date(2026, 3, 15), 1},
		{date(2026, 3, 15), date(2026, 3, 16), 2},
		{date(2026, 3, 1), date(2026, 3, 31), 31},
		{date(2026, 2, 27), date(2026, 3, 2), 4},
	}
	for _, c := range cases {
		s := mustStay(t, c.start, c.end)
		assert.Equal(t, c.want, s.Days())
	}
}

func TestStayOverlaps(t *testing.T) {
	base := mustStay(t, date(2026, 3, 10), date(2026, 3, 15))

	cases := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"identical", date(2026, 3, 10), date(2026, 3, 15), true},
		{"contained", date(2026, 3, 11), date(2026, 3, 13), true},
		{"overlapping tail", date(2026, 3, 14), date(2026, 3, 20), true},
		{"overlapping head", date(2026, 3, 5), date(2026, 3, 11), true},
		{"back to back after", date(2026, 3, 15), date(2026, 3, 20), false},
		{"back to back before", date(2026, 3, 5), date(2026, 3, 10), false},
		{"disjoint after", date(2026, 3, 20), date(2026, 3, 25), false},
		{"disjoint before", date(2026, 3, 1), date(2026, 3, 5), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			other := mustStay(t, c.start, c.end)
			assert.Equal(t, c.want, base.Overlaps(other))
			assert.Equal(t, c.want, other.Overlaps(base))
		})
	}
}

func TestMoney(t *testing.T) {
	a := reservation.NewMoney(1500)
	b := reservation.NewMoney(250)

	assert.Equal(t, int64(1750), a.Add(b).Cents())
	assert.True(t, reservation.NewMoney(0).IsZero())
	assert.False(t, a.IsZero())
}
