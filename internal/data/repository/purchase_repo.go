package repository

import (
	"context"
	"errors"
	"fmt"

	"classifieds-market/internal/data/entity"
	"classifieds-market/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ErrItemUnavailable means the item already has a purchase in progress.
var ErrItemUnavailable = errors.New("item already in purchase")

type PurchaseRepository interface {
	Request(ctx context.Context, buyerSeq, itemSeq int64) error
	Find(ctx context.Context, buyerSeq, itemSeq int64) (*entity.Purchase, error)
	ListInProgress(ctx context.Context, buyerSeq int64) ([]*entity.ItemSummary, error)
	Complete(ctx context.Context, buyerSeq, itemSeq int64) error
}

type purchaseRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPurchaseRepository(db database.PgxIface, log *zap.Logger) PurchaseRepository {
	return &purchaseRepository{
		db:  db,
		log: log.With(zap.String("repository", "purchase")),
	}
}

// Request flags the item and records the purchase in one transaction.
func (pr *purchaseRepository) Request(ctx context.Context, buyerSeq, itemSeq int64) error {
	tx, err := pr.db.Begin(ctx)
	if err != nil {
		pr.log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("begin purchase: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx,
		`UPDATE item SET purchase_type = TRUE WHERE seq = $1 AND purchase_type = FALSE`, itemSeq)
	if err != nil {
		pr.log.Error("Failed to flag item", zap.Error(err), zap.Int64("item_seq", itemSeq))
		return fmt.Errorf("flag item %d: %w", itemSeq, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("flag item %d: %w", itemSeq, ErrItemUnavailable)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO purchase (user_seq, item_seq) VALUES ($1, $2)`, buyerSeq, itemSeq)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create purchase %d/%d: %w", buyerSeq, itemSeq, ErrDuplicate)
		}
		pr.log.Error("Failed to create purchase", zap.Error(err), zap.Int64("user_seq", buyerSeq), zap.Int64("item_seq", itemSeq))
		return fmt.Errorf("create purchase %d/%d: %w", buyerSeq, itemSeq, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit purchase %d/%d: %w", buyerSeq, itemSeq, err)
	}

	pr.log.Info("Purchase requested", zap.Int64("user_seq", buyerSeq), zap.Int64("item_seq", itemSeq))
	return nil
}

func (pr *purchaseRepository) Find(ctx context.Context, buyerSeq, itemSeq int64) (*entity.Purchase, error) {
	query := `
		SELECT user_seq, item_seq, start_at, end_at, complete
		FROM purchase
		WHERE user_seq = $1 AND item_seq = $2
	`

	var p entity.Purchase
	err := pr.db.QueryRow(ctx, query, buyerSeq, itemSeq).Scan(
		&p.UserSeq,
		&p.ItemSeq,
		&p.StartAt,
		&p.EndAt,
		&p.Complete,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		pr.log.Error("Failed to find purchase", zap.Error(err), zap.Int64("user_seq", buyerSeq), zap.Int64("item_seq", itemSeq))
		return nil, fmt.Errorf("find purchase %d/%d: %w", buyerSeq, itemSeq, err)
	}

	return &p, nil
}

func (pr *purchaseRepository) ListInProgress(ctx context.Context, buyerSeq int64) ([]*entity.ItemSummary, error) {
	query := itemSummarySelect + `
		JOIN purchase p ON p.item_seq = i.seq
		WHERE p.user_seq = $1 AND p.complete = FALSE
		ORDER BY p.start_at DESC, i.seq
	`

	rows, err := pr.db.Query(ctx, query, buyerSeq)
	if err != nil {
		pr.log.Error("Failed to list purchases", zap.Error(err), zap.Int64("user_seq", buyerSeq))
		return nil, fmt.Errorf("list purchases %d: %w", buyerSeq, err)
	}

	return collectSummaries(rows)
}

// Complete closes an open purchase and takes one unit off the item. The item
// returns to the listings while units remain.
func (pr *purchaseRepository) Complete(ctx context.Context, buyerSeq, itemSeq int64) error {
	tx, err := pr.db.Begin(ctx)
	if err != nil {
		pr.log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("begin complete purchase: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `
		UPDATE purchase SET complete = TRUE, end_at = NOW()
		WHERE user_seq = $1 AND item_seq = $2 AND complete = FALSE
	`, buyerSeq, itemSeq)
	if err != nil {
		pr.log.Error("Failed to complete purchase", zap.Error(err), zap.Int64("user_seq", buyerSeq), zap.Int64("item_seq", itemSeq))
		return fmt.Errorf("complete purchase %d/%d: %w", buyerSeq, itemSeq, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("complete purchase %d/%d: %w", buyerSeq, itemSeq, ErrNotFound)
	}

	_, err = tx.Exec(ctx, `
		UPDATE item SET cnt = GREATEST(cnt - 1, 0), purchase_type = (cnt - 1 <= 0)
		WHERE seq = $1
	`, itemSeq)
	if err != nil {
		pr.log.Error("Failed to decrement item count", zap.Error(err), zap.Int64("item_seq", itemSeq))
		return fmt.Errorf("decrement item %d: %w", itemSeq, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit complete purchase %d/%d: %w", buyerSeq, itemSeq, err)
	}

	pr.log.Info("Purchase completed", zap.Int64("user_seq", buyerSeq), zap.Int64("item_seq", itemSeq))
	return nil
}
