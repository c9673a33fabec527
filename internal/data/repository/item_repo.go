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

// ErrNotFound is returned by writes that matched no row.
var ErrNotFound = errors.New("no matching row")

type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	FindBySeq(ctx context.Context, seq int64) (*entity.Item, error)
	FindDetail(ctx context.Context, seq int64) (*entity.ItemDetail, error)
	IncrementViews(ctx context.Context, seq int64) error
	SearchNames(ctx context.Context, value string, start, count int) ([]string, error)
	Search(ctx context.Context, value string, start, count int) ([]*entity.ItemSummary, error)
	Recommend(ctx context.Context, start, count int) ([]*entity.ItemSummary, error)
	Update(ctx context.Context, seq int64, patch entity.ItemPatch) error
	Delete(ctx context.Context, seq int64) error
}

type itemRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewItemRepository(db database.PgxIface, log *zap.Logger) ItemRepository {
	return &itemRepository{
		db:  db,
		log: log.With(zap.String("repository", "item")),
	}
}

// itemSummarySelect is shared by every listing that renders item cards.
const itemSummarySelect = `
	SELECT i.seq, i.name, i.price, i.created_at,
	       (SELECT COUNT(*) FROM saved_items s WHERE s.item_seq = i.seq) AS saved_cnt,
	       (SELECT im.path FROM item_images im WHERE im.item_seq = i.seq AND im."index" = 0) AS image_path
	FROM item i`

func collectSummaries(rows pgx.Rows) ([]*entity.ItemSummary, error) {
	defer rows.Close()

	items := []*entity.ItemSummary{}
	for rows.Next() {
		var item entity.ItemSummary
		err := rows.Scan(
			&item.Seq,
			&item.Name,
			&item.Price,
			&item.CreatedAt,
			&item.SavedCount,
			&item.ImagePath,
		)
		if err != nil {
			return nil, fmt.Errorf("scan item summary: %w", err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate item summaries: %w", err)
	}

	return items, nil
}

func (ir *itemRepository) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO item (user_seq, name, cnt, price, description, category_seq)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING seq, created_at
	`

	err := ir.db.QueryRow(ctx, query,
		item.UserSeq,
		item.Name,
		item.Cnt,
		item.Price,
		item.Description,
		item.CategorySeq,
	).Scan(&item.Seq, &item.CreatedAt)

	if err != nil {
		ir.log.Error("Failed to create item",
			zap.Error(err),
			zap.Int64("user_seq", item.UserSeq),
			zap.String("name", item.Name),
		)
		return fmt.Errorf("create item %s: %w", item.Name, err)
	}

	return nil
}

func (ir *itemRepository) FindBySeq(ctx context.Context, seq int64) (*entity.Item, error) {
	query := `
		SELECT seq, user_seq, name, cnt, price, description, views,
		       created_at, category_seq, purchase_type
		FROM item
		WHERE seq = $1
	`

	var item entity.Item
	err := ir.db.QueryRow(ctx, query, seq).Scan(
		&item.Seq,
		&item.UserSeq,
		&item.Name,
		&item.Cnt,
		&item.Price,
		&item.Description,
		&item.Views,
		&item.CreatedAt,
		&item.CategorySeq,
		&item.PurchaseType,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ir.log.Error("Failed to find item", zap.Error(err), zap.Int64("seq", seq))
		return nil, fmt.Errorf("find item %d: %w", seq, err)
	}

	return &item, nil
}

func (ir *itemRepository) FindDetail(ctx context.Context, seq int64) (*entity.ItemDetail, error) {
	query := `
		SELECT i.seq, i.user_seq, i.name, i.cnt, i.price, i.description, i.views,
		       i.created_at, i.category_seq, i.purchase_type,
		       u.name, c.name,
		       (SELECT COUNT(*) FROM saved_items s WHERE s.item_seq = i.seq)
		FROM item i
		JOIN users u ON u.seq = i.user_seq
		JOIN category c ON c.seq = i.category_seq
		WHERE i.seq = $1
	`

	var item entity.ItemDetail
	err := ir.db.QueryRow(ctx, query, seq).Scan(
		&item.Seq,
		&item.UserSeq,
		&item.Name,
		&item.Cnt,
		&item.Price,
		&item.Description,
		&item.Views,
		&item.CreatedAt,
		&item.CategorySeq,
		&item.PurchaseType,
		&item.OwnerName,
		&item.CategoryName,
		&item.SavedCount,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ir.log.Error("Failed to find item detail", zap.Error(err), zap.Int64("seq", seq))
		return nil, fmt.Errorf("find item detail %d: %w", seq, err)
	}

	return &item, nil
}

func (ir *itemRepository) IncrementViews(ctx context.Context, seq int64) error {
	if _, err := ir.db.Exec(ctx, `UPDATE item SET views = views + 1 WHERE seq = $1`, seq); err != nil {
		ir.log.Error("Failed to increment views", zap.Error(err), zap.Int64("seq", seq))
		return fmt.Errorf("increment views %d: %w", seq, err)
	}
	return nil
}

// SearchNames returns distinct names of open items containing value,
// in the order their first listing was created.
func (ir *itemRepository) SearchNames(ctx context.Context, value string, start, count int) ([]string, error) {
	query := `
		SELECT name
		FROM item
		WHERE name ILIKE $1 AND purchase_type = FALSE
		GROUP BY name
		ORDER BY MIN(seq)
		LIMIT $2 OFFSET $3
	`

	rows, err := ir.db.Query(ctx, query, likePattern(value), count, start)
	if err != nil {
		ir.log.Error("Failed to search item names", zap.Error(err), zap.String("value", value))
		return nil, fmt.Errorf("search item names %s: %w", value, err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan item name: %w", err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate item names: %w", err)
	}

	return names, nil
}

func (ir *itemRepository) Search(ctx context.Context, value string, start, count int) ([]*entity.ItemSummary, error) {
	query := itemSummarySelect + `
		WHERE i.name ILIKE $1 AND i.purchase_type = FALSE
		ORDER BY i.seq
		LIMIT $2 OFFSET $3
	`

	rows, err := ir.db.Query(ctx, query, likePattern(value), count, start)
	if err != nil {
		ir.log.Error("Failed to search items", zap.Error(err), zap.String("value", value))
		return nil, fmt.Errorf("search items %s: %w", value, err)
	}

	return collectSummaries(rows)
}

func (ir *itemRepository) Recommend(ctx context.Context, start, count int) ([]*entity.ItemSummary, error) {
	query := itemSummarySelect + `
		WHERE i.purchase_type = FALSE
		ORDER BY i.views DESC, i.seq
		LIMIT $1 OFFSET $2
	`

	rows, err := ir.db.Query(ctx, query, count, start)
	if err != nil {
		ir.log.Error("Failed to load recommended items", zap.Error(err))
		return nil, fmt.Errorf("recommend items: %w", err)
	}

	return collectSummaries(rows)
}

// Update overwrites only the non-nil fields of patch.
func (ir *itemRepository) Update(ctx context.Context, seq int64, patch entity.ItemPatch) error {
	query := `
		UPDATE item
		SET name = COALESCE($2, name),
		    cnt = COALESCE($3, cnt),
		    price = COALESCE($4, price),
		    description = COALESCE($5, description)
		WHERE seq = $1
	`

	result, err := ir.db.Exec(ctx, query, seq, patch.Name, patch.Cnt, patch.Price, patch.Description)
	if err != nil {
		ir.log.Error("Failed to update item", zap.Error(err), zap.Int64("seq", seq))
		return fmt.Errorf("update item %d: %w", seq, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update item %d: %w", seq, ErrNotFound)
	}

	return nil
}

func (ir *itemRepository) Delete(ctx context.Context, seq int64) error {
	result, err := ir.db.Exec(ctx, `DELETE FROM item WHERE seq = $1`, seq)
	if err != nil {
		ir.log.Error("Failed to delete item", zap.Error(err), zap.Int64("seq", seq))
		return fmt.Errorf("delete item %d: %w", seq, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete item %d: %w", seq, ErrNotFound)
	}

	ir.log.Info("Item deleted", zap.Int64("seq", seq))
	return nil
}
