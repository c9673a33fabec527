package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Categories is the fixed seed list for the category table.
var Categories = []string{
	"디지털 기기", "생활 가전", "패션", "보석", "명품", "취미·생활",
	"뷰티·미용", "반려동물", "식물", "도서", "기타",
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		seq                  BIGSERIAL PRIMARY KEY,
		user_id              VARCHAR(15) NOT NULL UNIQUE,
		password             VARCHAR(60) NOT NULL,
		name                 VARCHAR(20) NOT NULL,
		email                VARCHAR(255) NOT NULL UNIQUE,
		phone                VARCHAR(11) NOT NULL,
		idnum                VARCHAR(13) NOT NULL,
		profile              TEXT NULL,
		is_broker            BOOLEAN NOT NULL DEFAULT FALSE,
		signup_date          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		password_update_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		last_login           TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		last_logout          TIMESTAMPTZ NULL
	)`,
	`CREATE TABLE IF NOT EXISTS category (
		seq  BIGSERIAL PRIMARY KEY,
		name VARCHAR(10) NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS item (
		seq           BIGSERIAL PRIMARY KEY,
		user_seq      BIGINT NOT NULL REFERENCES users(seq) ON DELETE CASCADE ON UPDATE CASCADE,
		name          TEXT NOT NULL,
		cnt           INT NOT NULL DEFAULT 1,
		price         INT NOT NULL DEFAULT 0,
		description   TEXT NOT NULL DEFAULT '',
		views         INT NOT NULL DEFAULT 0,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		category_seq  BIGINT NOT NULL REFERENCES category(seq) ON DELETE CASCADE ON UPDATE CASCADE,
		purchase_type BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_item_views ON item (views DESC) WHERE purchase_type = FALSE`,
	`CREATE TABLE IF NOT EXISTS item_images (
		item_seq BIGINT NOT NULL REFERENCES item(seq) ON DELETE CASCADE ON UPDATE CASCADE,
		"index"  INT NOT NULL DEFAULT 0,
		path     TEXT NOT NULL,
		PRIMARY KEY (item_seq, "index")
	)`,
	`CREATE TABLE IF NOT EXISTS address (
		user_seq       BIGINT NOT NULL REFERENCES users(seq) ON DELETE CASCADE ON UPDATE CASCADE,
		road_full_addr VARCHAR(255) NOT NULL,
		is_default     BOOLEAN NOT NULL DEFAULT FALSE,
		eng_addr       TEXT NOT NULL,
		zip_no         TEXT NOT NULL,
		addr_detail    TEXT NULL,
		adm_cd         TEXT NOT NULL,
		rn_mgt_sn      TEXT NOT NULL,
		bg_mgt_sn      TEXT NOT NULL,
		si_nm          TEXT NOT NULL,
		sgg_nm         TEXT NOT NULL,
		emd_nm         TEXT NOT NULL,
		rn             TEXT NOT NULL,
		PRIMARY KEY (user_seq, road_full_addr)
	)`,
	`CREATE TABLE IF NOT EXISTS saved_items (
		user_seq BIGINT NOT NULL REFERENCES users(seq) ON DELETE CASCADE ON UPDATE CASCADE,
		item_seq BIGINT NOT NULL REFERENCES item(seq) ON DELETE CASCADE ON UPDATE CASCADE,
		saved_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (user_seq, item_seq)
	)`,
	`CREATE TABLE IF NOT EXISTS purchase (
		user_seq BIGINT NOT NULL REFERENCES users(seq) ON DELETE CASCADE ON UPDATE CASCADE,
		item_seq BIGINT NOT NULL REFERENCES item(seq) ON DELETE CASCADE ON UPDATE CASCADE,
		start_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		end_at   TIMESTAMPTZ NULL,
		complete BOOLEAN NOT NULL DEFAULT FALSE,
		PRIMARY KEY (user_seq, item_seq)
	)`,
}

// Migrate creates missing tables and seeds the category list. Safe to rerun.
func Migrate(ctx context.Context, db PgxIface, log *zap.Logger) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	for _, name := range Categories {
		if _, err := db.Exec(ctx,
			`INSERT INTO category (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name); err != nil {
			return fmt.Errorf("seed category %s: %w", name, err)
		}
	}

	log.Info("Schema ready", zap.Int("tables", 7), zap.Int("categories", len(Categories)))
	return nil
}
