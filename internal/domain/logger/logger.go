package logger

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"
)

// DefaultSlowQuery is the duration after which a successful query is logged
// as a warning.
const DefaultSlowQuery = 500 * time.Millisecond

type QueryLogger struct {
	Operation     string
	Query         string
	Args          []any
	StartTime     time.Time
	SlowThreshold time.Duration
}

func NewQueryLogger(operation, query string, args ...any) *QueryLogger {
	return &QueryLogger{
		Operation:     operation,
		Query:         query,
		Args:          args,
		StartTime:     time.Now(),
		SlowThreshold: DefaultSlowQuery,
	}
}

// Log reports the query outcome. sql.ErrNoRows is an expected result and is
// not logged as a failure.
func (l *QueryLogger) Log(err error, rowsAffected int64) {
	duration := time.Since(l.StartTime)

	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		slog.Error("Query failed",
			slog.String("type", "db"),
			slog.String("operation", l.Operation),
			slog.String("query", l.Query),
			slog.Any("args", l.Args),
			slog.Duration("took", duration),
			slog.Any("error", err),
		)
		return
	}

	level := slog.LevelDebug
	msg := "Query executed"
	if l.SlowThreshold > 0 && duration > l.SlowThreshold {
		level = slog.LevelWarn
		msg = "Slow query"
	}

	slog.Log(context.Background(), level, msg,
		slog.String("type", "db"),
		slog.String("operation", l.Operation),
		slog.String("query", l.Query),
		slog.Any("args", l.Args),
		slog.Duration("took", duration),
		slog.Int64("affected_rows", rowsAffected),
	)
}
