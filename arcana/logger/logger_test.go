package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestCustomHandler_Format(t *testing.T) {
	tests := []struct {
		name  string
		log   func(l *slog.Logger)
		want  []string
		empty bool
	}{
		{
			name: "system info",
			log:  func(l *slog.Logger) { l.Info("Pack opened", slog.String("type", "sys"), slog.Int("cards", 5)) },
			want: []string{"[Arcana]", "[INFO]", "[SYS]", "Pack opened", "cards=5"},
		},
		{
			name: "command",
			log:  func(l *slog.Logger) { l.Info("Command executed", slog.String("type", "cmd"), slog.String("name", "pack open")) },
			want: []string{"[CMD]", "Command executed [pack open]"},
		},
		{
			name: "error details",
			log:  func(l *slog.Logger) { l.Error("Query failed", slog.String("type", "db"), slog.Any("error", errors.New("boom"))) },
			want: []string{"[ERROR]", "[DB]", ": boom"},
		},
		{
			name:  "below level",
			log:   func(l *slog.Logger) { l.Debug("hidden") },
			empty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(slog.New(NewHandler(&buf, slog.LevelInfo, false)))

			out := buf.String()
			if tt.empty {
				if out != "" {
					t.Errorf("handler wrote %q, want nothing", out)
				}
				return
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("handler wrote %q, missing %q", out, w)
				}
			}
			if strings.Contains(out, "\033[") {
				t.Errorf("handler wrote color codes with color disabled: %q", out)
			}
		})
	}
}

func TestCustomHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewHandler(&buf, slog.LevelDebug, false)).With(slog.String("service", "packs"))
	l.Debug("Packs regenerated")

	if !strings.Contains(buf.String(), "service=packs") {
		t.Errorf("handler wrote %q, missing service attr", buf.String())
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, slog.LevelInfo, "json", false).Info("ready")

	if !strings.HasPrefix(buf.String(), "{") || !strings.Contains(buf.String(), `"msg":"ready"`) {
		t.Errorf("New(json) wrote %q", buf.String())
	}
}
