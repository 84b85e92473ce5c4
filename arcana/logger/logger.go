package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/arcana-cards/arcana/arcana/config"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorPurple = "\033[35m"
	colorWhite  = "\033[37m"
)

type LogType string

const (
	TypeCommand LogType = "CMD"
	TypeDB      LogType = "DB"
	TypeSystem  LogType = "SYS"
	TypeError   LogType = "ERR"
)

// CustomHandler writes one colored line per record:
// [Arcana] [15:04:05] [INFO] [SYS] message key=value
type CustomHandler struct {
	opts   *slog.HandlerOptions
	out    io.Writer
	mu     *sync.Mutex
	color  bool
	attrs  []slog.Attr
	groups []string
}

func NewHandler(out io.Writer, level slog.Leveler, color bool) *CustomHandler {
	if out == nil {
		out = os.Stdout
	}
	return &CustomHandler{
		opts:  &slog.HandlerOptions{Level: level},
		out:   out,
		mu:    &sync.Mutex{},
		color: color,
	}
}

func (h *CustomHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

func (h *CustomHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

func (h *CustomHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.groups = append(append([]string{}, h.groups...), name)
	return &clone
}

func (h *CustomHandler) Handle(_ context.Context, r slog.Record) error {
	var levelColor, levelText string
	switch {
	case r.Level >= slog.LevelError:
		levelColor, levelText = colorRed, "ERROR"
	case r.Level >= slog.LevelWarn:
		levelColor, levelText = colorYellow, "WARN"
	case r.Level >= slog.LevelInfo:
		levelColor, levelText = colorGreen, "INFO"
	default:
		levelColor, levelText = colorPurple, "DEBUG"
	}

	logType := getLogType(&r)
	message := r.Message
	if r.Level >= slog.LevelError {
		if location := getErrorLocation(&r); location != "" {
			message = fmt.Sprintf("%s (%s)", message, location)
		}
		if details := getAttr(&r, "error"); details != "" {
			message = fmt.Sprintf("%s: %s", message, details)
		}
	}
	if cmdName := getAttr(&r, "name"); cmdName != "" && logType == TypeCommand {
		message = fmt.Sprintf("%s [%s]", message, cmdName)
	}

	var sb strings.Builder
	prefix := strings.Join(h.groups, ".")
	if prefix != "" {
		prefix += "."
	}
	for _, attr := range h.attrs {
		if !isInternalAttr(attr.Key) {
			fmt.Fprintf(&sb, " %s%s=%v", prefix, attr.Key, attr.Value)
		}
	}
	r.Attrs(func(a slog.Attr) bool {
		if !isInternalAttr(a.Key) {
			fmt.Fprintf(&sb, " %s%s=%v", prefix, a.Key, a.Value)
		}
		return true
	})

	white, reset := colorWhite, colorReset
	if !h.color {
		white, reset, levelColor = "", "", ""
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintf(h.out, "%s%s [%s] [%s%s%s] [%s] %s%s%s\n",
		white,
		config.LogPrefix,
		r.Time.Format("15:04:05"),
		levelColor,
		levelText,
		white,
		logType,
		message,
		sb.String(),
		reset,
	)
	return err
}

func getLogType(r *slog.Record) LogType {
	switch getAttr(r, "type") {
	case "cmd":
		return TypeCommand
	case "db":
		return TypeDB
	case "error":
		return TypeError
	}
	if r.Level >= slog.LevelError {
		return TypeError
	}
	return TypeSystem
}

func getAttr(r *slog.Record, key string) string {
	var value string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == key {
			value = a.Value.String()
			return false
		}
		return true
	})
	return value
}

func isInternalAttr(key string) bool {
	switch key {
	case "type", "name", "error", "error_location":
		return true
	}
	return false
}

func getErrorLocation(r *slog.Record) string {
	if location := getAttr(r, "error_location"); location != "" {
		return location
	}
	if r.PC == 0 {
		return ""
	}
	frames := runtime.CallersFrames([]uintptr{r.PC})
	frame, _ := frames.Next()
	if frame.File == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)
}

// New builds the process logger. format "json" selects slog's JSON handler,
// anything else the colored console handler.
func New(out io.Writer, level slog.Level, format string, addSource bool) *slog.Logger {
	if format == "json" {
		return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
			Level:     level,
			AddSource: addSource,
		}))
	}
	return slog.New(NewHandler(out, level, isTerminal(out)))
}

func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// Since is a helper for duration attributes.
func Since(start time.Time) slog.Attr {
	return slog.Duration("took", time.Since(start))
}
