package usecase

import (
	"context"
	"errors"
	"io"
	"math"

	"classifieds-market/internal/data/entity"
	"classifieds-market/internal/data/repository"
	"classifieds-market/internal/dto/response"
	"classifieds-market/pkg/storage"
	"classifieds-market/pkg/utils"

	"go.uber.org/zap"
)

type ItemImageService interface {
	Upload(ctx context.Context, userID string, itemSeq int64, index int, data []byte) entity.Result
	ListPaths(ctx context.Context, itemSeq int64) ([]response.ItemImageResponse, entity.Result)
	GetPath(ctx context.Context, itemSeq int64, index int) (string, entity.Result)
	Delete(ctx context.Context, userID string, itemSeq int64, index *int) entity.Result
	Open(ctx context.Context, path string) (io.ReadCloser, entity.Result)
}

type itemImageService struct {
	repo   *repository.Repository
	images storage.ImageStore
	config *utils.Config
	log    *zap.Logger
}

func NewItemImageService(
	repo *repository.Repository,
	images storage.ImageStore,
	config *utils.Config,
	log *zap.Logger,
) ItemImageService {
	return &itemImageService{
		repo:   repo,
		images: images,
		config: config,
		log:    log.With(zap.String("service", "item_image")),
	}
}

func (s *itemImageService) ownedItem(ctx context.Context, userID string, itemSeq int64) (*entity.Item, entity.Result) {
	item, err := s.repo.Item.FindBySeq(ctx, itemSeq)
	if err != nil {
		s.log.Error("Failed to find item", zap.Error(err), zap.Int64("item_seq", itemSeq))
		return nil, entity.ResultInternalServerError
	}
	if item == nil {
		return nil, entity.ResultNotFound
	}

	user, err := s.repo.User.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID))
		return nil, entity.ResultInternalServerError
	}
	if user == nil || user.Seq != item.UserSeq {
		return nil, entity.ResultForbidden
	}

	return item, entity.ResultSuccess
}

// validIndex keeps slot numbers inside the INT column.
func validIndex(index int) bool {
	return index >= 0 && index <= math.MaxInt32
}

func (s *itemImageService) Upload(ctx context.Context, userID string, itemSeq int64, index int, data []byte) entity.Result {
	// 1. Ownership
	item, result := s.ownedItem(ctx, userID, itemSeq)
	if item == nil {
		return result
	}

	// 2. Content
	if !validIndex(index) {
		return entity.ResultEntityError
	}
	ext, contentType, err := storage.DetectImage(data, maxImageBytes(s.config))
	if err != nil {
		s.log.Warn("Rejected item image", zap.Error(err), zap.Int64("item_seq", itemSeq))
		return entity.ResultEntityError
	}

	// 3. Slot must be free before anything is written
	existing, err := s.repo.ItemImage.Find(ctx, itemSeq, index)
	if err != nil {
		s.log.Error("Failed to find item image", zap.Error(err), zap.Int64("item_seq", itemSeq), zap.Int("index", index))
		return entity.ResultInternalServerError
	}
	if existing != nil {
		return entity.ResultConflict
	}

	// 4. Store file, then row
	name, err := s.images.Save(ctx, data, ext, contentType)
	if err != nil {
		s.log.Error("Failed to store item image", zap.Error(err), zap.Int64("item_seq", itemSeq))
		return entity.ResultInternalServerError
	}

	img := &entity.ItemImage{ItemSeq: itemSeq, Index: index, Path: name}
	if err := s.repo.ItemImage.Create(ctx, img); err != nil {
		removeImages(ctx, s.images, s.log, name)
		if errors.Is(err, repository.ErrDuplicate) {
			return entity.ResultConflict
		}
		s.log.Error("Failed to create item image", zap.Error(err), zap.Int64("item_seq", itemSeq))
		return entity.ResultInternalServerError
	}

	s.log.Info("Item image uploaded", zap.Int64("item_seq", itemSeq), zap.Int("index", index), zap.String("path", name))
	return entity.ResultSuccess
}

func (s *itemImageService) ListPaths(ctx context.Context, itemSeq int64) ([]response.ItemImageResponse, entity.Result) {
	images, err := s.repo.ItemImage.ListByItem(ctx, itemSeq)
	if err != nil {
		s.log.Error("Failed to list item images", zap.Error(err), zap.Int64("item_seq", itemSeq))
		return nil, entity.ResultInternalServerError
	}
	return response.ItemImagesToResponse(images), entity.ResultSuccess
}

func (s *itemImageService) GetPath(ctx context.Context, itemSeq int64, index int) (string, entity.Result) {
	if !validIndex(index) {
		return "", entity.ResultEntityError
	}
	img, err := s.repo.ItemImage.Find(ctx, itemSeq, index)
	if err != nil {
		s.log.Error("Failed to find item image", zap.Error(err), zap.Int64("item_seq", itemSeq), zap.Int("index", index))
		return "", entity.ResultInternalServerError
	}
	if img == nil {
		return "", entity.ResultNotFound
	}
	return img.Path, entity.ResultSuccess
}

// Delete removes one image when index is set, otherwise every image of the item.
func (s *itemImageService) Delete(ctx context.Context, userID string, itemSeq int64, index *int) entity.Result {
	item, result := s.ownedItem(ctx, userID, itemSeq)
	if item == nil {
		return result
	}

	var removed []*entity.ItemImage
	if index != nil {
		if !validIndex(*index) {
			return entity.ResultEntityError
		}
		img, err := s.repo.ItemImage.Delete(ctx, itemSeq, *index)
		if err != nil {
			s.log.Error("Failed to delete item image", zap.Error(err), zap.Int64("item_seq", itemSeq), zap.Int("index", *index))
			return entity.ResultInternalServerError
		}
		if img == nil {
			return entity.ResultNotFound
		}
		removed = append(removed, img)
	} else {
		imgs, err := s.repo.ItemImage.DeleteByItem(ctx, itemSeq)
		if err != nil {
			s.log.Error("Failed to delete item images", zap.Error(err), zap.Int64("item_seq", itemSeq))
			return entity.ResultInternalServerError
		}
		removed = imgs
	}

	for _, img := range removed {
		removeImages(ctx, s.images, s.log, img.Path)
	}

	s.log.Info("Item images deleted", zap.Int64("item_seq", itemSeq), zap.Int("count", len(removed)))
	return entity.ResultSuccess
}

func (s *itemImageService) Open(ctx context.Context, path string) (io.ReadCloser, entity.Result) {
	return openImage(ctx, s.images, path, s.log)
}
