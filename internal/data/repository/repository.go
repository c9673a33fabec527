package repository

import (
	"errors"
	"strings"

	"classifieds-market/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ErrDuplicate is returned when an insert or update hits a unique key.
var ErrDuplicate = errors.New("duplicate key")

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// likePattern escapes LIKE wildcards so value is matched literally.
func likePattern(value string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(value) + "%"
}

type Repository struct {
	DB        database.PgxIface
	User      UserRepository
	Category  CategoryRepository
	Item      ItemRepository
	ItemImage ItemImageRepository
	Address   AddressRepository
	SavedItem SavedItemRepository
	Purchase  PurchaseRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		DB:        db,
		User:      NewUserRepository(db, log),
		Category:  NewCategoryRepository(db, log),
		Item:      NewItemRepository(db, log),
		ItemImage: NewItemImageRepository(db, log),
		Address:   NewAddressRepository(db, log),
		SavedItem: NewSavedItemRepository(db, log),
		Purchase:  NewPurchaseRepository(db, log),
	}
}
