//go:build unit

package booking_test

import (
	"testing"
	"time"

	"lendly/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

func mustInterval(t *testing.T, start, end time.Time) booking.Interval {
	t.Helper()
	iv, err := booking.NewInterval(start, end)
	require.NoError(t, err)
	return iv
}

func TestNewInterval(t *testing.T) {
	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		errIs error
	}{
		{name: "start before end", start: base, end: base.Add(time.Hour)},
		{name: "start equals end", start: base, end: base, errIs: booking.ErrInvalidInterval},
		{name: "start after end", start: base.Add(time.Hour), end: base, errIs: booking.ErrInvalidInterval},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := booking.NewInterval(tc.start, tc.end)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIntervalValidateNotPast(t *testing.T) {
	iv := mustInterval(t, base, base.Add(time.Hour))

	t.Run("start strictly before now", func(t *testing.T) {
		assert.ErrorIs(t, iv.ValidateNotPast(base.Add(time.Second)), booking.ErrStartInPast)
	})
	t.Run("start exactly at now", func(t *testing.T) {
		assert.NoError(t, iv.ValidateNotPast(base))
	})
	t.Run("start in the future", func(t *testing.T) {
		assert.NoError(t, iv.ValidateNotPast(base.Add(-time.Minute)))
	})
}

func TestIntervalOverlaps(t *testing.T) {
	h := func(n int) time.Time { return base.Add(time.Duration(n) * time.Hour) }

	cases := []struct {
		name string
		a    booking.Interval
		b    booking.Interval
		want bool
	}{
		{name: "disjoint before", a: mustInterval(t, h(0), h(1)), b: mustInterval(t, h(2), h(3)), want: false},
		{name: "disjoint after", a: mustInterval(t, h(2), h(3)), b: mustInterval(t, h(0), h(1)), want: false},
		{name: "partial overlap", a: mustInterval(t, h(0), h(2)), b: mustInterval(t, h(1), h(3)), want: true},
		{name: "containment", a: mustInterval(t, h(0), h(4)), b: mustInterval(t, h(1), h(2)), want: true},
		{name: "identical", a: mustInterval(t, h(0), h(2)), b: mustInterval(t, h(0), h(2)), want: true},
		{name: "touching end to start", a: mustInterval(t, h(0), h(1)), b: mustInterval(t, h(1), h(2)), want: true},
		{name: "touching start to end", a: mustInterval(t, h(1), h(2)), b: mustInterval(t, h(0), h(1)), want: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Overlaps(tc.b))
			// overlap is symmetric
			assert.Equal(t, tc.want, tc.b.Overlaps(tc.a))
		})
	}
}

func TestIntervalQueries(t *testing.T) {
	iv := mustInterval(t, base, base.Add(2*time.Hour))

	assert.True(t, iv.Contains(base))
	assert.True(t, iv.Contains(base.Add(time.Hour)))
	assert.True(t, iv.Contains(base.Add(2*time.Hour)))
	assert.False(t, iv.Contains(base.Add(-time.Second)))
	assert.False(t, iv.Contains(base.Add(2*time.Hour+time.Second)))

	assert.False(t, iv.EndedBefore(base.Add(2*time.Hour)))
	assert.True(t, iv.EndedBefore(base.Add(2*time.Hour+time.Second)))

	assert.False(t, iv.StartsAfter(base))
	assert.True(t, iv.StartsAfter(base.Add(-time.Second)))

	assert.Equal(t, 2*time.Hour, iv.Duration())
}
