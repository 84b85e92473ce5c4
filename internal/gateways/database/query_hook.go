package database

import (
	"context"

	"github.com/arcana-cards/arcana/internal/domain/logger"
	"github.com/uptrace/bun"
)

type queryLoggerKey struct{}

// queryHook logs every bun query through the shared QueryLogger.
type queryHook struct{}

var _ bun.QueryHook = queryHook{}

func (queryHook) BeforeQuery(ctx context.Context, event *bun.QueryEvent) context.Context {
	return context.WithValue(ctx, queryLoggerKey{}, logger.NewQueryLogger(event.Operation(), event.Query))
}

func (queryHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	ql, ok := ctx.Value(queryLoggerKey{}).(*logger.QueryLogger)
	if !ok {
		return
	}
	ql.StartTime = event.StartTime

	var affected int64
	if event.Result != nil {
		affected, _ = event.Result.RowsAffected()
	}
	ql.Log(event.Err, affected)
}
