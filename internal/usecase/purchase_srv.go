package usecase

import (
	"context"
	"errors"
	"time"

	"classifieds-market/internal/data/entity"
	"classifieds-market/internal/data/repository"
	"classifieds-market/internal/dto/response"

	"go.uber.org/zap"
)

type PurchaseService interface {
	Request(ctx context.Context, userID string, itemSeq int64) entity.Result
	List(ctx context.Context, userID string) ([]response.ItemSummaryResponse, entity.Result)
	Complete(ctx context.Context, sellerID, buyerID string, itemSeq int64) entity.Result
}

type purchaseService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewPurchaseService(repo *repository.Repository, log *zap.Logger) PurchaseService {
	return &purchaseService{
		repo: repo,
		log:  log.With(zap.String("service", "purchase")),
		now:  time.Now,
	}
}

func (s *purchaseService) Request(ctx context.Context, userID string, itemSeq int64) entity.Result {
	// 1. Buyer and item must exist
	user, err := s.repo.User.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID))
		return entity.ResultInternalServerError
	}
	if user == nil {
		return entity.ResultNotFound
	}

	item, err := s.repo.Item.FindBySeq(ctx, itemSeq)
	if err != nil {
		s.log.Error("Failed to find item", zap.Error(err), zap.Int64("item_seq", itemSeq))
		return entity.ResultInternalServerError
	}
	if item == nil {
		return entity.ResultNotFound
	}

	// 2. No buying your own listing, no second buyer
	if item.UserSeq == user.Seq {
		return entity.ResultForbidden
	}
	if item.PurchaseType {
		return entity.ResultConflict
	}

	// 3. Flag item and record purchase
	if err := s.repo.Purchase.Request(ctx, user.Seq, item.Seq); err != nil {
		if errors.Is(err, repository.ErrItemUnavailable) || errors.Is(err, repository.ErrDuplicate) {
			return entity.ResultConflict
		}
		s.log.Error("Failed to request purchase", zap.Error(err), zap.String("user_id", userID), zap.Int64("item_seq", itemSeq))
		return entity.ResultInternalServerError
	}

	return entity.ResultSuccess
}

func (s *purchaseService) List(ctx context.Context, userID string) ([]response.ItemSummaryResponse, entity.Result) {
	user, err := s.repo.User.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID))
		return nil, entity.ResultInternalServerError
	}
	if user == nil {
		return nil, entity.ResultNotFound
	}

	items, err := s.repo.Purchase.ListInProgress(ctx, user.Seq)
	if err != nil {
		s.log.Error("Failed to list purchases", zap.Error(err), zap.String("user_id", userID))
		return nil, entity.ResultInternalServerError
	}

	return response.ItemSummariesToResponse(items, s.now()), entity.ResultSuccess
}

// Complete is called by the seller once the buyer has paid and received the item.
func (s *purchaseService) Complete(ctx context.Context, sellerID, buyerID string, itemSeq int64) entity.Result {
	seller, err := s.repo.User.FindByUserID(ctx, sellerID)
	if err != nil {
		s.log.Error("Failed to find seller", zap.Error(err), zap.String("user_id", sellerID))
		return entity.ResultInternalServerError
	}
	if seller == nil {
		return entity.ResultNotFound
	}

	item, err := s.repo.Item.FindBySeq(ctx, itemSeq)
	if err != nil {
		s.log.Error("Failed to find item", zap.Error(err), zap.Int64("item_seq", itemSeq))
		return entity.ResultInternalServerError
	}
	if item == nil {
		return entity.ResultNotFound
	}
	if item.UserSeq != seller.Seq {
		return entity.ResultForbidden
	}

	buyer, err := s.repo.User.FindByUserID(ctx, buyerID)
	if err != nil {
		s.log.Error("Failed to find buyer", zap.Error(err), zap.String("user_id", buyerID))
		return entity.ResultInternalServerError
	}
	if buyer == nil {
		return entity.ResultNotFound
	}

	purchase, err := s.repo.Purchase.Find(ctx, buyer.Seq, item.Seq)
	if err != nil {
		s.log.Error("Failed to find purchase", zap.Error(err), zap.Int64("item_seq", itemSeq))
		return entity.ResultInternalServerError
	}
	if purchase == nil {
		return entity.ResultNotFound
	}
	if purchase.Complete {
		return entity.ResultConflict
	}

	if err := s.repo.Purchase.Complete(ctx, buyer.Seq, item.Seq); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.ResultConflict
		}
		s.log.Error("Failed to complete purchase", zap.Error(err), zap.Int64("item_seq", itemSeq))
		return entity.ResultInternalServerError
	}

	return entity.ResultSuccess
}
