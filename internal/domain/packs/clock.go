package packs

import (
	"errors"
	"time"
)

var ErrNoPacksAvailable = errors.New("no packs available")

const (
	DefaultInterval = 4 * time.Hour
	DefaultMaxPacks = 2
)

// Status is a user's pack entitlement.
type Status struct {
	UserID         string
	PacksAvailable int
	LastOpenedAt   time.Time
}

// Clock holds the regeneration rules. Its methods are pure.
type Clock struct {
	Interval time.Duration
	MaxPacks int
}

func NewClock(interval time.Duration, maxPacks int) Clock {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if maxPacks <= 0 {
		maxPacks = DefaultMaxPacks
	}
	return Clock{Interval: interval, MaxPacks: maxPacks}
}

func (c Clock) Initial(userID string, now time.Time) Status {
	return Status{
		UserID:         userID,
		PacksAvailable: c.MaxPacks,
		LastOpenedAt:   now,
	}
}

// Regenerate credits one pack per whole interval since LastOpenedAt, capped at
// MaxPacks. LastOpenedAt advances by whole intervals only, so the partial
// interval carries over. The bool reports whether the status changed.
func (c Clock) Regenerate(s Status, now time.Time) (Status, bool) {
	elapsed := now.Sub(s.LastOpenedAt)
	intervals := int64(elapsed / c.Interval)
	if intervals <= 0 {
		return s, false
	}

	packs := int64(s.PacksAvailable) + intervals
	if packs > int64(c.MaxPacks) {
		packs = int64(c.MaxPacks)
	}

	s.PacksAvailable = int(packs)
	s.LastOpenedAt = s.LastOpenedAt.Add(time.Duration(intervals) * c.Interval)
	return s, true
}

// Consume takes one pack and restarts the interval at now. With no packs the
// status is returned unchanged along with ErrNoPacksAvailable.
func (c Clock) Consume(s Status, now time.Time) (Status, error) {
	if s.PacksAvailable <= 0 {
		return s, ErrNoPacksAvailable
	}
	s.PacksAvailable--
	s.LastOpenedAt = now
	return s, nil
}

// NextPackAt is when the next pack regenerates. ok is false at the cap.
func (c Clock) NextPackAt(s Status) (next time.Time, ok bool) {
	if s.PacksAvailable >= c.MaxPacks {
		return time.Time{}, false
	}
	return s.LastOpenedAt.Add(c.Interval), true
}
