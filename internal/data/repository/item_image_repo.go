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

type ItemImageRepository interface {
	Create(ctx context.Context, image *entity.ItemImage) error
	Find(ctx context.Context, itemSeq int64, index int) (*entity.ItemImage, error)
	ListByItem(ctx context.Context, itemSeq int64) ([]*entity.ItemImage, error)
	Delete(ctx context.Context, itemSeq int64, index int) (*entity.ItemImage, error)
	DeleteByItem(ctx context.Context, itemSeq int64) ([]*entity.ItemImage, error)
}

type itemImageRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewItemImageRepository(db database.PgxIface, log *zap.Logger) ItemImageRepository {
	return &itemImageRepository{
		db:  db,
		log: log.With(zap.String("repository", "item_image")),
	}
}

func (r *itemImageRepository) Create(ctx context.Context, image *entity.ItemImage) error {
	query := `INSERT INTO item_images (item_seq, "index", path) VALUES ($1, $2, $3)`

	if _, err := r.db.Exec(ctx, query, image.ItemSeq, image.Index, image.Path); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create image %d/%d: %w", image.ItemSeq, image.Index, ErrDuplicate)
		}
		r.log.Error("Failed to create item image",
			zap.Error(err),
			zap.Int64("item_seq", image.ItemSeq),
			zap.Int("index", image.Index),
		)
		return fmt.Errorf("create image %d/%d: %w", image.ItemSeq, image.Index, err)
	}

	return nil
}

func (r *itemImageRepository) Find(ctx context.Context, itemSeq int64, index int) (*entity.ItemImage, error) {
	query := `SELECT item_seq, "index", path FROM item_images WHERE item_seq = $1 AND "index" = $2`

	var image entity.ItemImage
	err := r.db.QueryRow(ctx, query, itemSeq, index).Scan(&image.ItemSeq, &image.Index, &image.Path)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find item image", zap.Error(err), zap.Int64("item_seq", itemSeq), zap.Int("index", index))
		return nil, fmt.Errorf("find image %d/%d: %w", itemSeq, index, err)
	}

	return &image, nil
}

func (r *itemImageRepository) ListByItem(ctx context.Context, itemSeq int64) ([]*entity.ItemImage, error) {
	query := `SELECT item_seq, "index", path FROM item_images WHERE item_seq = $1 ORDER BY "index"`

	rows, err := r.db.Query(ctx, query, itemSeq)
	if err != nil {
		r.log.Error("Failed to list item images", zap.Error(err), zap.Int64("item_seq", itemSeq))
		return nil, fmt.Errorf("list images %d: %w", itemSeq, err)
	}

	return collectImages(rows)
}

// Delete removes one image row and returns it, nil when there was none.
func (r *itemImageRepository) Delete(ctx context.Context, itemSeq int64, index int) (*entity.ItemImage, error) {
	query := `DELETE FROM item_images WHERE item_seq = $1 AND "index" = $2 RETURNING item_seq, "index", path`

	var image entity.ItemImage
	err := r.db.QueryRow(ctx, query, itemSeq, index).Scan(&image.ItemSeq, &image.Index, &image.Path)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to delete item image", zap.Error(err), zap.Int64("item_seq", itemSeq), zap.Int("index", index))
		return nil, fmt.Errorf("delete image %d/%d: %w", itemSeq, index, err)
	}

	return &image, nil
}

// DeleteByItem removes every image row of an item and returns them.
func (r *itemImageRepository) DeleteByItem(ctx context.Context, itemSeq int64) ([]*entity.ItemImage, error) {
	query := `DELETE FROM item_images WHERE item_seq = $1 RETURNING item_seq, "index", path`

	rows, err := r.db.Query(ctx, query, itemSeq)
	if err != nil {
		r.log.Error("Failed to delete item images", zap.Error(err), zap.Int64("item_seq", itemSeq))
		return nil, fmt.Errorf("delete images %d: %w", itemSeq, err)
	}

	return collectImages(rows)
}

func collectImages(rows pgx.Rows) ([]*entity.ItemImage, error) {
	defer rows.Close()

	images := []*entity.ItemImage{}
	for rows.Next() {
		var image entity.ItemImage
		if err := rows.Scan(&image.ItemSeq, &image.Index, &image.Path); err != nil {
			return nil, fmt.Errorf("scan item image: %w", err)
		}
		images = append(images, &image)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate item images: %w", err)
	}

	return images, nil
}
