package logger

import (
	"bytes"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestQueryLogger_Log(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		startedAt time.Duration
		wantLevel string
		wantMsg   string
	}{
		{name: "success", wantLevel: "level=DEBUG", wantMsg: "Query executed"},
		{name: "no rows is not a failure", err: sql.ErrNoRows, wantLevel: "level=DEBUG", wantMsg: "Query executed"},
		{name: "failure", err: errors.New("syntax error"), wantLevel: "level=ERROR", wantMsg: "Query failed"},
		{name: "slow", startedAt: time.Second, wantLevel: "level=WARN", wantMsg: "Slow query"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t)

			ql := NewQueryLogger("select", "SELECT 1")
			ql.StartTime = ql.StartTime.Add(-tt.startedAt)
			ql.Log(tt.err, 1)

			out := buf.String()
			if !strings.Contains(out, tt.wantLevel) || !strings.Contains(out, tt.wantMsg) {
				t.Errorf("Log() wrote %q, want %s %q", out, tt.wantLevel, tt.wantMsg)
			}
		})
	}
}
