package packs

import (
	"errors"
	"testing"
	"time"
)

var t0 = time.Date(2024, 11, 4, 8, 0, 0, 0, time.UTC)

func TestClock_Regenerate(t *testing.T) {
	clock := NewClock(4*time.Hour, 2)

	tests := []struct {
		name        string
		status      Status
		now         time.Time
		want        Status
		wantChanged bool
	}{
		{
			name:   "under one interval",
			status: Status{PacksAvailable: 0, LastOpenedAt: t0},
			now:    t0.Add(3*time.Hour + 59*time.Minute),
			want:   Status{PacksAvailable: 0, LastOpenedAt: t0},
		},
		{
			name:        "exactly one interval",
			status:      Status{PacksAvailable: 0, LastOpenedAt: t0},
			now:         t0.Add(4 * time.Hour),
			want:        Status{PacksAvailable: 1, LastOpenedAt: t0.Add(4 * time.Hour)},
			wantChanged: true,
		},
		{
			name:        "capped keeps the partial hour",
			status:      Status{PacksAvailable: 0, LastOpenedAt: t0},
			now:         t0.Add(9 * time.Hour),
			want:        Status{PacksAvailable: 2, LastOpenedAt: t0.Add(8 * time.Hour)},
			wantChanged: true,
		},
		{
			name:        "already at cap still advances",
			status:      Status{PacksAvailable: 2, LastOpenedAt: t0},
			now:         t0.Add(5 * time.Hour),
			want:        Status{PacksAvailable: 2, LastOpenedAt: t0.Add(4 * time.Hour)},
			wantChanged: true,
		},
		{
			name:   "clock behind last open",
			status: Status{PacksAvailable: 1, LastOpenedAt: t0},
			now:    t0.Add(-5 * time.Hour),
			want:   Status{PacksAvailable: 1, LastOpenedAt: t0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := clock.Regenerate(tt.status, tt.now)
			if changed != tt.wantChanged {
				t.Errorf("Regenerate() changed = %v, want %v", changed, tt.wantChanged)
			}
			if got.PacksAvailable != tt.want.PacksAvailable || !got.LastOpenedAt.Equal(tt.want.LastOpenedAt) {
				t.Errorf("Regenerate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestClock_Consume(t *testing.T) {
	clock := NewClock(0, 0)
	now := t0.Add(90 * time.Minute)

	got, err := clock.Consume(Status{PacksAvailable: 2, LastOpenedAt: t0}, now)
	if err != nil {
		t.Fatalf("Consume() error = %v", err)
	}
	if got.PacksAvailable != 1 || !got.LastOpenedAt.Equal(now) {
		t.Errorf("Consume() = %+v, want 1 pack opened at %v", got, now)
	}

	empty := Status{PacksAvailable: 0, LastOpenedAt: t0}
	got, err = clock.Consume(empty, now)
	if !errors.Is(err, ErrNoPacksAvailable) {
		t.Fatalf("Consume() error = %v, want ErrNoPacksAvailable", err)
	}
	if got != empty {
		t.Errorf("Consume() changed an empty status: %+v", got)
	}
}

func TestClock_ConsumeThenRegenerate(t *testing.T) {
	clock := NewClock(DefaultInterval, DefaultMaxPacks)
	status := clock.Initial("u1", t0)
	if status.PacksAvailable != 2 || !status.LastOpenedAt.Equal(t0) {
		t.Fatalf("Initial() = %+v", status)
	}

	var err error
	status, err = clock.Consume(status, t0.Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	status, err = clock.Consume(status, t0.Add(2*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := clock.Consume(status, t0.Add(3*time.Hour)); !errors.Is(err, ErrNoPacksAvailable) {
		t.Fatalf("third Consume() error = %v", err)
	}

	// consumption restarted the window at t0+2h
	status, _ = clock.Regenerate(status, t0.Add(5*time.Hour))
	if status.PacksAvailable != 0 {
		t.Errorf("regenerated too early: %+v", status)
	}
	status, _ = clock.Regenerate(status, t0.Add(6*time.Hour))
	if status.PacksAvailable != 1 {
		t.Errorf("Regenerate() = %+v, want 1 pack", status)
	}

	next, ok := clock.NextPackAt(status)
	if !ok || !next.Equal(t0.Add(10*time.Hour)) {
		t.Errorf("NextPackAt() = %v, %v", next, ok)
	}
}

func TestClock_NextPackAtCap(t *testing.T) {
	clock := NewClock(DefaultInterval, DefaultMaxPacks)
	if _, ok := clock.NextPackAt(clock.Initial("u1", t0)); ok {
		t.Errorf("NextPackAt() ok at cap")
	}
}
