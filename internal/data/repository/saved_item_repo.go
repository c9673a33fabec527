package repository

import (
	"context"
	"fmt"

	"classifieds-market/internal/data/entity"
	"classifieds-market/pkg/database"

	"go.uber.org/zap"
)

type SavedItemRepository interface {
	Toggle(ctx context.Context, userSeq, itemSeq int64) (bool, error)
	Exists(ctx context.Context, userSeq, itemSeq int64) (bool, error)
	ListSummaries(ctx context.Context, userSeq int64) ([]*entity.ItemSummary, error)
}

type savedItemRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSavedItemRepository(db database.PgxIface, log *zap.Logger) SavedItemRepository {
	return &savedItemRepository{
		db:  db,
		log: log.With(zap.String("repository", "saved_item")),
	}
}

// Toggle removes the pair when present, otherwise adds it.
// It reports whether the item is saved afterwards.
func (sr *savedItemRepository) Toggle(ctx context.Context, userSeq, itemSeq int64) (bool, error) {
	result, err := sr.db.Exec(ctx,
		`DELETE FROM saved_items WHERE user_seq = $1 AND item_seq = $2`, userSeq, itemSeq)
	if err != nil {
		sr.log.Error("Failed to unsave item", zap.Error(err), zap.Int64("user_seq", userSeq), zap.Int64("item_seq", itemSeq))
		return false, fmt.Errorf("unsave item %d for %d: %w", itemSeq, userSeq, err)
	}
	if result.RowsAffected() > 0 {
		return false, nil
	}

	_, err = sr.db.Exec(ctx,
		`INSERT INTO saved_items (user_seq, item_seq) VALUES ($1, $2) ON CONFLICT DO NOTHING`, userSeq, itemSeq)
	if err != nil {
		sr.log.Error("Failed to save item", zap.Error(err), zap.Int64("user_seq", userSeq), zap.Int64("item_seq", itemSeq))
		return false, fmt.Errorf("save item %d for %d: %w", itemSeq, userSeq, err)
	}

	return true, nil
}

func (sr *savedItemRepository) Exists(ctx context.Context, userSeq, itemSeq int64) (bool, error) {
	var exists bool
	err := sr.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM saved_items WHERE user_seq = $1 AND item_seq = $2)`,
		userSeq, itemSeq).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check saved item %d for %d: %w", itemSeq, userSeq, err)
	}
	return exists, nil
}

// ListSummaries returns the user's saved items, most recently saved first.
func (sr *savedItemRepository) ListSummaries(ctx context.Context, userSeq int64) ([]*entity.ItemSummary, error) {
	query := itemSummarySelect + `
		JOIN saved_items sv ON sv.item_seq = i.seq
		WHERE sv.user_seq = $1
		ORDER BY sv.saved_at DESC, i.seq
	`

	rows, err := sr.db.Query(ctx, query, userSeq)
	if err != nil {
		sr.log.Error("Failed to list saved items", zap.Error(err), zap.Int64("user_seq", userSeq))
		return nil, fmt.Errorf("list saved items %d: %w", userSeq, err)
	}

	return collectSummaries(rows)
}
