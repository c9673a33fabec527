package repository

import (
	"context"
	"fmt"

	"classifieds-market/internal/data/entity"
	"classifieds-market/pkg/database"

	"go.uber.org/zap"
)

type AddressRepository interface {
	Create(ctx context.Context, address *entity.Address) error
	List(ctx context.Context, userSeq int64, defaultOnly bool) ([]*entity.Address, error)
	Delete(ctx context.Context, userSeq int64, roadFullAddr string) error
	SetDefault(ctx context.Context, userSeq int64, roadFullAddr string) error
}

type addressRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAddressRepository(db database.PgxIface, log *zap.Logger) AddressRepository {
	return &addressRepository{
		db:  db,
		log: log.With(zap.String("repository", "address")),
	}
}

// Create inserts the address; the first one of a user becomes the default.
// IsDefault is filled from the stored row.
func (ar *addressRepository) Create(ctx context.Context, address *entity.Address) error {
	query := `
		INSERT INTO address (user_seq, road_full_addr, is_default, eng_addr, zip_no, addr_detail,
		                     adm_cd, rn_mgt_sn, bg_mgt_sn, si_nm, sgg_nm, emd_nm, rn)
		VALUES ($1, $2, NOT EXISTS (SELECT 1 FROM address WHERE user_seq = $1),
		        $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING is_default
	`

	err := ar.db.QueryRow(ctx, query,
		address.UserSeq,
		address.RoadFullAddr,
		address.EngAddr,
		address.ZipNo,
		address.AddrDetail,
		address.AdmCd,
		address.RnMgtSn,
		address.BgMgtSn,
		address.SiNm,
		address.SggNm,
		address.EmdNm,
		address.Rn,
	).Scan(&address.IsDefault)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create address for %d: %w", address.UserSeq, ErrDuplicate)
		}
		ar.log.Error("Failed to create address", zap.Error(err), zap.Int64("user_seq", address.UserSeq))
		return fmt.Errorf("create address for %d: %w", address.UserSeq, err)
	}

	return nil
}

func (ar *addressRepository) List(ctx context.Context, userSeq int64, defaultOnly bool) ([]*entity.Address, error) {
	query := `
		SELECT user_seq, road_full_addr, is_default, eng_addr, zip_no, addr_detail,
		       adm_cd, rn_mgt_sn, bg_mgt_sn, si_nm, sgg_nm, emd_nm, rn
		FROM address
		WHERE user_seq = $1 AND ($2 = FALSE OR is_default = TRUE)
		ORDER BY is_default DESC, road_full_addr
	`

	rows, err := ar.db.Query(ctx, query, userSeq, defaultOnly)
	if err != nil {
		ar.log.Error("Failed to list addresses", zap.Error(err), zap.Int64("user_seq", userSeq))
		return nil, fmt.Errorf("list addresses %d: %w", userSeq, err)
	}
	defer rows.Close()

	addresses := []*entity.Address{}
	for rows.Next() {
		var a entity.Address
		err := rows.Scan(
			&a.UserSeq,
			&a.RoadFullAddr,
			&a.IsDefault,
			&a.EngAddr,
			&a.ZipNo,
			&a.AddrDetail,
			&a.AdmCd,
			&a.RnMgtSn,
			&a.BgMgtSn,
			&a.SiNm,
			&a.SggNm,
			&a.EmdNm,
			&a.Rn,
		)
		if err != nil {
			return nil, fmt.Errorf("scan address row: %w", err)
		}
		addresses = append(addresses, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate address rows: %w", err)
	}

	return addresses, nil
}

func (ar *addressRepository) Delete(ctx context.Context, userSeq int64, roadFullAddr string) error {
	result, err := ar.db.Exec(ctx, `DELETE FROM address WHERE user_seq = $1 AND road_full_addr = $2`, userSeq, roadFullAddr)
	if err != nil {
		ar.log.Error("Failed to delete address", zap.Error(err), zap.Int64("user_seq", userSeq))
		return fmt.Errorf("delete address %d: %w", userSeq, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete address %d: %w", userSeq, ErrNotFound)
	}

	return nil
}

// SetDefault clears the user's default flag and sets it on one address in
// a single transaction. Two concurrent calls can still interleave.
func (ar *addressRepository) SetDefault(ctx context.Context, userSeq int64, roadFullAddr string) error {
	tx, err := ar.db.Begin(ctx)
	if err != nil {
		ar.log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("begin set default address: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE address SET is_default = FALSE WHERE user_seq = $1`, userSeq); err != nil {
		ar.log.Error("Failed to clear default address", zap.Error(err), zap.Int64("user_seq", userSeq))
		return fmt.Errorf("clear default address %d: %w", userSeq, err)
	}

	result, err := tx.Exec(ctx,
		`UPDATE address SET is_default = TRUE WHERE user_seq = $1 AND road_full_addr = $2`,
		userSeq, roadFullAddr)
	if err != nil {
		ar.log.Error("Failed to set default address", zap.Error(err), zap.Int64("user_seq", userSeq))
		return fmt.Errorf("set default address %d: %w", userSeq, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("set default address %d: %w", userSeq, ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit default address %d: %w", userSeq, err)
	}

	return nil
}
