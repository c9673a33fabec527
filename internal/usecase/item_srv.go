package usecase

import (
	"context"
	"errors"
	"time"

	"classifieds-market/internal/data/entity"
	"classifieds-market/internal/data/repository"
	"classifieds-market/internal/dto/request"
	"classifieds-market/internal/dto/response"
	"classifieds-market/pkg/storage"
	"classifieds-market/pkg/utils"

	"go.uber.org/zap"
)

type ItemService interface {
	GetItem(ctx context.Context, seq int64) (*response.ItemDetailResponse, entity.Result)
	Search(ctx context.Context, value string, window request.WindowRequest) ([]response.ItemNameResponse, entity.Result)
	SearchDetail(ctx context.Context, value string, window request.WindowRequest) ([]response.ItemSummaryResponse, entity.Result)
	Recommend(ctx context.Context, window request.WindowRequest) ([]response.ItemSummaryResponse, entity.Result)
	Insert(ctx context.Context, userID string, req *request.InsertItemRequest) (int64, entity.Result)
	Update(ctx context.Context, userID string, seq int64, req *request.UpdateItemRequest) entity.Result
	Delete(ctx context.Context, userID string, seq int64) entity.Result
	Categories(ctx context.Context) ([]string, entity.Result)
}

type itemService struct {
	repo   *repository.Repository
	images storage.ImageStore
	log    *zap.Logger
	now    func() time.Time
}

func NewItemService(repo *repository.Repository, images storage.ImageStore, log *zap.Logger) ItemService {
	return &itemService{
		repo:   repo,
		images: images,
		log:    log.With(zap.String("service", "item")),
		now:    time.Now,
	}
}

// GetItem returns the detail page and counts the view.
func (s *itemService) GetItem(ctx context.Context, seq int64) (*response.ItemDetailResponse, entity.Result) {
	detail, err := s.repo.Item.FindDetail(ctx, seq)
	if err != nil {
		s.log.Error("Failed to find item", zap.Error(err), zap.Int64("seq", seq))
		return nil, entity.ResultInternalServerError
	}
	if detail == nil {
		return nil, entity.ResultFail
	}

	images, err := s.repo.ItemImage.ListByItem(ctx, seq)
	if err != nil {
		s.log.Error("Failed to list item images", zap.Error(err), zap.Int64("seq", seq))
		return nil, entity.ResultInternalServerError
	}

	if err := s.repo.Item.IncrementViews(ctx, seq); err != nil {
		s.log.Warn("Failed to count view", zap.Error(err), zap.Int64("seq", seq))
	} else {
		detail.Views++
	}

	resp := response.ItemDetailToResponse(detail, images, s.now())
	return &resp, entity.ResultSuccess
}

func (s *itemService) Search(ctx context.Context, value string, window request.WindowRequest) ([]response.ItemNameResponse, entity.Result) {
	if err := utils.ValidateWindow(window.Start, window.Count); err != nil {
		s.log.Warn("Rejected search window", zap.Error(err))
		return nil, entity.ResultEntityError
	}

	names, err := s.repo.Item.SearchNames(ctx, value, window.Start, window.Count)
	if err != nil {
		s.log.Error("Failed to search item names", zap.Error(err), zap.String("value", value))
		return nil, entity.ResultInternalServerError
	}
	if len(names) == 0 {
		return []response.ItemNameResponse{}, entity.ResultFail
	}

	return response.ItemNamesToResponse(names), entity.ResultSuccess
}

func (s *itemService) SearchDetail(ctx context.Context, value string, window request.WindowRequest) ([]response.ItemSummaryResponse, entity.Result) {
	if err := utils.ValidateWindow(window.Start, window.Count); err != nil {
		s.log.Warn("Rejected search window", zap.Error(err))
		return nil, entity.ResultEntityError
	}

	items, err := s.repo.Item.Search(ctx, value, window.Start, window.Count)
	if err != nil {
		s.log.Error("Failed to search items", zap.Error(err), zap.String("value", value))
		return nil, entity.ResultInternalServerError
	}

	return summaries(items, s.now())
}

func (s *itemService) Recommend(ctx context.Context, window request.WindowRequest) ([]response.ItemSummaryResponse, entity.Result) {
	if err := utils.ValidateWindow(window.Start, window.Count); err != nil {
		s.log.Warn("Rejected recommend window", zap.Error(err))
		return nil, entity.ResultEntityError
	}

	items, err := s.repo.Item.Recommend(ctx, window.Start, window.Count)
	if err != nil {
		s.log.Error("Failed to load recommendations", zap.Error(err))
		return nil, entity.ResultInternalServerError
	}

	return summaries(items, s.now())
}

// summaries answers FAIL with an empty list when nothing matched.
func summaries(items []*entity.ItemSummary, now time.Time) ([]response.ItemSummaryResponse, entity.Result) {
	out := response.ItemSummariesToResponse(items, now)
	if len(out) == 0 {
		return out, entity.ResultFail
	}
	return out, entity.ResultSuccess
}

func (s *itemService) Insert(ctx context.Context, userID string, req *request.InsertItemRequest) (int64, entity.Result) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Insert item validation failed", zap.Any("errors", errs))
		return 0, entity.ResultEntityError
	}

	// 2. Only brokers list items
	user, err := s.repo.User.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID))
		return 0, entity.ResultInternalServerError
	}
	if user == nil {
		return 0, entity.ResultFail
	}
	if !user.IsBroker {
		return 0, entity.ResultForbidden
	}

	// 3. Resolve category
	category, err := s.repo.Category.FindByName(ctx, req.Category)
	if err != nil {
		s.log.Error("Failed to find category", zap.Error(err), zap.String("category", req.Category))
		return 0, entity.ResultInternalServerError
	}
	if category == nil {
		return 0, entity.ResultEntityError
	}

	// 4. Save item
	item := &entity.Item{
		UserSeq:     user.Seq,
		Name:        req.Name,
		Cnt:         req.Cnt,
		Price:       req.Price,
		Description: req.Description,
		CategorySeq: category.Seq,
	}
	if err := s.repo.Item.Create(ctx, item); err != nil {
		s.log.Error("Failed to create item", zap.Error(err), zap.String("user_id", userID))
		return 0, entity.ResultInternalServerError
	}

	s.log.Info("Item listed", zap.Int64("seq", item.Seq), zap.String("user_id", userID))
	return item.Seq, entity.ResultSuccess
}

// ownedItem loads the item and checks userID owns it. A nil item comes with
// the Result to answer.
func (s *itemService) ownedItem(ctx context.Context, userID string, seq int64) (*entity.Item, entity.Result) {
	item, err := s.repo.Item.FindBySeq(ctx, seq)
	if err != nil {
		s.log.Error("Failed to find item", zap.Error(err), zap.Int64("seq", seq))
		return nil, entity.ResultInternalServerError
	}
	if item == nil {
		return nil, entity.ResultFail
	}

	user, err := s.repo.User.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID))
		return nil, entity.ResultInternalServerError
	}
	if user == nil || user.Seq != item.UserSeq {
		s.log.Warn("Item access denied", zap.String("user_id", userID), zap.Int64("seq", seq))
		return nil, entity.ResultForbidden
	}

	return item, entity.ResultSuccess
}

func (s *itemService) Update(ctx context.Context, userID string, seq int64, req *request.UpdateItemRequest) entity.Result {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return entity.ResultEntityError
	}

	item, result := s.ownedItem(ctx, userID, seq)
	if item == nil {
		return result
	}

	patch := req.Patch()
	if patch.Empty() {
		return entity.ResultFail
	}

	if err := s.repo.Item.Update(ctx, item.Seq, patch); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.ResultFail
		}
		s.log.Error("Failed to update item", zap.Error(err), zap.Int64("seq", seq))
		return entity.ResultInternalServerError
	}

	s.log.Info("Item updated", zap.Int64("seq", seq))
	return entity.ResultSuccess
}

func (s *itemService) Delete(ctx context.Context, userID string, seq int64) entity.Result {
	item, result := s.ownedItem(ctx, userID, seq)
	if item == nil {
		return result
	}

	// image rows go with the item through ON DELETE CASCADE, files after commit
	images, err := s.repo.ItemImage.ListByItem(ctx, item.Seq)
	if err != nil {
		s.log.Error("Failed to list item images", zap.Error(err), zap.Int64("seq", seq))
		return entity.ResultInternalServerError
	}

	if err := s.repo.Item.Delete(ctx, item.Seq); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.ResultFail
		}
		s.log.Error("Failed to delete item", zap.Error(err), zap.Int64("seq", seq))
		return entity.ResultInternalServerError
	}

	for _, img := range images {
		removeImages(ctx, s.images, s.log, img.Path)
	}

	s.log.Info("Item deleted", zap.Int64("seq", seq), zap.Int("images", len(images)))
	return entity.ResultSuccess
}

func (s *itemService) Categories(ctx context.Context) ([]string, entity.Result) {
	categories, err := s.repo.Category.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list categories", zap.Error(err))
		return nil, entity.ResultInternalServerError
	}

	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	return names, entity.ResultSuccess
}
