package usecase

import (
	"context"
	"errors"
	"io"
	"time"

	"classifieds-market/internal/data/entity"
	"classifieds-market/internal/data/repository"
	"classifieds-market/internal/data/session"
	"classifieds-market/pkg/mailer"
	"classifieds-market/pkg/storage"
	"classifieds-market/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth      AuthService
	User      UserService
	Item      ItemService
	ItemImage ItemImageService
	Address   AddressService
	Purchase  PurchaseService
}

func NewService(
	repo *repository.Repository,
	store session.Store,
	images storage.ImageStore,
	mail mailer.Mailer,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:      NewAuthService(repo, store, images, mail, config, log),
		User:      NewUserService(repo, store, images, config, log),
		Item:      NewItemService(repo, images, log),
		ItemImage: NewItemImageService(repo, images, config, log),
		Address:   NewAddressService(repo, log),
		Purchase:  NewPurchaseService(repo, log),
	}
}

// loginTTL is how long a login marker lives; zero keeps it until logout.
func loginTTL(config *utils.Config) time.Duration {
	return time.Duration(config.Session.TTLHours) * time.Hour
}

func maxImageBytes(config *utils.Config) int64 {
	if config.Storage.MaxImageBytes <= 0 {
		return 5 << 20
	}
	return config.Storage.MaxImageBytes
}

// openImage streams a stored file, mapping store errors to results.
func openImage(ctx context.Context, images storage.ImageStore, path string, log *zap.Logger) (io.ReadCloser, entity.Result) {
	if path == "" {
		return nil, entity.ResultEntityError
	}

	rc, err := images.Open(ctx, path)
	switch {
	case err == nil:
		return rc, entity.ResultSuccess
	case errors.Is(err, storage.ErrInvalidPath):
		return nil, entity.ResultEntityError
	case errors.Is(err, storage.ErrNotFound):
		return nil, entity.ResultNotFound
	default:
		log.Error("Failed to open image", zap.Error(err), zap.String("path", path))
		return nil, entity.ResultInternalServerError
	}
}

// removeImages deletes stored files; a failure only leaves an orphan behind.
func removeImages(ctx context.Context, images storage.ImageStore, log *zap.Logger, paths ...string) {
	for _, path := range paths {
		if err := images.Remove(ctx, path); err != nil {
			log.Warn("Failed to remove image", zap.Error(err), zap.String("path", path))
		}
	}
}
