package reservation

import (
	"errors"
	"time"
)

var (
	ErrInvalidDateRange = errors.New("end date must not be before start date")
	ErrStartInPast      = errors.New("start date cannot be in the past")
)

// Stay is an inclusive civil-date range. Both bounds are dates at UTC
// midnight; the end date is part of the stay.
type Stay struct {
	start time.Time
	end   time.Time
}

func NewStay(start, end time.Time) (Stay, error) {
	start = toDate(start)
	end = toDate(end)
	if end.Before(start) {
		return Stay{}, ErrInvalidDateRange
	}
	return Stay{start: start, end: end}, nil
}

// NewFutureStay additionally rejects start dates before today.
func NewFutureStay(start, end, today time.Time) (Stay, error) {
	s, err := NewStay(start, end)
	if err != nil {
		return Stay{}, err
	}
	if s.start.Before(toDate(today)) {
		return Stay{}, ErrStartInPast
	}
	return s, nil
}

func toDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s Stay) Start() time.Time {
	return s.start
}

func (s Stay) End() time.Time {
	return s.end
}

// Days counts the reserved days; both bounds are inclusive so a one-day
// stay has start == end and Days() == 1.
func (s Stay) Days() int {
	return int(s.end.Sub(s.start).Hours()/24) + 1
}

// Overlaps reports whether two stays conflict. Back-to-back stays where one
// ends the day another starts do NOT conflict.
func (s Stay) Overlaps(other Stay) bool {
	return s.start.Before(other.end) && other.start.Before(s.end)
}

func (s Stay) StartsOn(day time.Time) bool {
	return s.start.Equal(toDate(day))
}

func (s Stay) EndedBefore(day time.Time) bool {
	return s.end.Before(toDate(day))
}

type Money struct {
	cents int64
}

func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) IsZero() bool {
	return m.cents == 0
}
