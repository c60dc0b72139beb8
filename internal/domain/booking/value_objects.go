package booking

import (
	"errors"
	"time"
)

var (
	ErrInvalidInterval = errors.New("invalid booking interval")
	ErrStartInPast     = errors.New("booking start cannot be in the past")
)

// Interval is the closed time range [start, end] a booking reserves.
type Interval struct {
	start time.Time
	end   time.Time
}

// NewInterval requires start strictly before end. Temporal validity against
// "now" is a separate concern, see ValidateNotPast.
func NewInterval(start, end time.Time) (Interval, error) {
	if !start.Before(end) {
		return Interval{}, ErrInvalidInterval
	}
	return Interval{start: start, end: end}, nil
}

// ValidateNotPast rejects intervals starting strictly before now. Starting
// exactly at now is allowed.
func (iv Interval) ValidateNotPast(now time.Time) error {
	if iv.start.Before(now) {
		return ErrStartInPast
	}
	return nil
}

func (iv Interval) Start() time.Time {
	return iv.start
}

func (iv Interval) End() time.Time {
	return iv.end
}

func (iv Interval) Duration() time.Duration {
	return iv.end.Sub(iv.start)
}

// Overlaps reports whether two closed intervals share any instant. Touching
// endpoints count as overlap: [s1,e1] and [s2,e2] overlap iff
// s1 <= e2 && e1 >= s2.
func (iv Interval) Overlaps(other Interval) bool {
	return !iv.start.After(other.end) && !iv.end.Before(other.start)
}

// Contains reports whether t falls inside the closed interval.
func (iv Interval) Contains(t time.Time) bool {
	return !iv.start.After(t) && !iv.end.Before(t)
}

// EndedBefore reports whether the interval lies strictly in the past of t.
func (iv Interval) EndedBefore(t time.Time) bool {
	return iv.end.Before(t)
}

// StartsAfter reports whether the interval lies strictly in the future of t.
func (iv Interval) StartsAfter(t time.Time) bool {
	return iv.start.After(t)
}
