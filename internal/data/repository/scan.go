package repository

import (
	"context"
	"fmt"

	"event-marketplace/pkg/database"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// execUpdate applies set to the row with the given id and reports
// ErrNotFound when nothing matched.
func execUpdate(ctx context.Context, db database.Querier, log *zap.Logger, table string, id uuid.UUID, set map[string]any) error {
	query, args, err := psql.Update(table).SetMap(set).Where(squirrel.Eq{"id": id.String()}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: update %s: %v", ErrBuildQuery, table, err)
	}

	result, err := database.Executor(ctx, db).Exec(ctx, query, args...)
	if err != nil {
		log.Error("Failed to update row",
			zap.Error(err),
			zap.String("table", table),
			zap.String("id", id.String()),
		)
		return fmt.Errorf("update %s %s: %w", table, id.String(), translate(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", table, id.String(), ErrNotFound)
	}

	return nil
}
