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

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindBySeq(ctx context.Context, seq int64) (*entity.User, error)
	FindByUserID(ctx context.Context, userID string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateInfo(ctx context.Context, seq int64, patch entity.UserPatch) error
	UpdatePassword(ctx context.Context, seq int64, hash string) error
	UpdateProfile(ctx context.Context, seq int64, profile *string) error
	TouchLastLogin(ctx context.Context, seq int64) error
	TouchLastLogout(ctx context.Context, seq int64) error
	Delete(ctx context.Context, seq int64) error
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

const userColumns = `seq, user_id, password, name, email, phone, idnum, profile, is_broker,
		       signup_date, password_update_date, last_login, last_logout`

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.Seq,
		&user.UserID,
		&user.PasswordHash,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.IDNum,
		&user.Profile,
		&user.IsBroker,
		&user.SignupDate,
		&user.PasswordUpdateDate,
		&user.LastLogin,
		&user.LastLogout,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts the user and fills Seq and the server-side timestamps.
func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (user_id, password, name, email, phone, idnum, profile, is_broker)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING seq, signup_date, password_update_date, last_login
	`

	err := ur.db.QueryRow(ctx, query,
		user.UserID,
		user.PasswordHash,
		user.Name,
		user.Email,
		user.Phone,
		user.IDNum,
		user.Profile,
		user.IsBroker,
	).Scan(&user.Seq, &user.SignupDate, &user.PasswordUpdateDate, &user.LastLogin)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create user %s: %w", user.UserID, ErrDuplicate)
		}
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("user_id", user.UserID),
			zap.String("email", user.Email),
		)
		return fmt.Errorf("create user %s: %w", user.UserID, err)
	}

	return nil
}

func (ur *userRepository) FindBySeq(ctx context.Context, seq int64) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE seq = $1`

	user, err := scanUser(ur.db.QueryRow(ctx, query, seq))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by seq", zap.Error(err), zap.Int64("seq", seq))
		return nil, fmt.Errorf("find user by seq %d: %w", seq, err)
	}

	return user, nil
}

func (ur *userRepository) FindByUserID(ctx context.Context, userID string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`

	user, err := scanUser(ur.db.QueryRow(ctx, query, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by user_id", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("find user by user_id %s: %w", userID, err)
	}

	return user, nil
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(ur.db.QueryRow(ctx, query, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by email", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("find user by email %s: %w", email, err)
	}

	return user, nil
}

// UpdateInfo overwrites only the non-nil fields of patch.
func (ur *userRepository) UpdateInfo(ctx context.Context, seq int64, patch entity.UserPatch) error {
	query := `
		UPDATE users
		SET name = COALESCE($2, name),
		    email = COALESCE($3, email),
		    phone = COALESCE($4, phone)
		WHERE seq = $1
	`

	result, err := ur.db.Exec(ctx, query, seq, patch.Name, patch.Email, patch.Phone)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update user %d: %w", seq, ErrDuplicate)
		}
		ur.log.Error("Failed to update user", zap.Error(err), zap.Int64("seq", seq))
		return fmt.Errorf("update user %d: %w", seq, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update user %d: %w", seq, ErrNotFound)
	}

	return nil
}

func (ur *userRepository) UpdatePassword(ctx context.Context, seq int64, hash string) error {
	query := `UPDATE users SET password = $2, password_update_date = NOW() WHERE seq = $1`

	if _, err := ur.db.Exec(ctx, query, seq, hash); err != nil {
		ur.log.Error("Failed to update password", zap.Error(err), zap.Int64("seq", seq))
		return fmt.Errorf("update password %d: %w", seq, err)
	}

	return nil
}

func (ur *userRepository) UpdateProfile(ctx context.Context, seq int64, profile *string) error {
	query := `UPDATE users SET profile = $2 WHERE seq = $1`

	if _, err := ur.db.Exec(ctx, query, seq, profile); err != nil {
		ur.log.Error("Failed to update profile image", zap.Error(err), zap.Int64("seq", seq))
		return fmt.Errorf("update profile %d: %w", seq, err)
	}

	return nil
}

func (ur *userRepository) TouchLastLogin(ctx context.Context, seq int64) error {
	if _, err := ur.db.Exec(ctx, `UPDATE users SET last_login = NOW() WHERE seq = $1`, seq); err != nil {
		ur.log.Error("Failed to stamp last_login", zap.Error(err), zap.Int64("seq", seq))
		return fmt.Errorf("touch last_login %d: %w", seq, err)
	}
	return nil
}

func (ur *userRepository) TouchLastLogout(ctx context.Context, seq int64) error {
	if _, err := ur.db.Exec(ctx, `UPDATE users SET last_logout = NOW() WHERE seq = $1`, seq); err != nil {
		ur.log.Error("Failed to stamp last_logout", zap.Error(err), zap.Int64("seq", seq))
		return fmt.Errorf("touch last_logout %d: %w", seq, err)
	}
	return nil
}

// Delete removes the user; items, addresses, saves and purchases cascade.
func (ur *userRepository) Delete(ctx context.Context, seq int64) error {
	result, err := ur.db.Exec(ctx, `DELETE FROM users WHERE seq = $1`, seq)
	if err != nil {
		ur.log.Error("Failed to delete user", zap.Error(err), zap.Int64("seq", seq))
		return fmt.Errorf("delete user %d: %w", seq, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete user %d: %w", seq, ErrNotFound)
	}

	ur.log.Info("User deleted", zap.Int64("seq", seq))
	return nil
}
