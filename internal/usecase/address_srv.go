package usecase

import (
	"context"
	"errors"

	"classifieds-market/internal/data/entity"
	"classifieds-market/internal/data/repository"
	"classifieds-market/internal/dto/request"
	"classifieds-market/internal/dto/response"
	"classifieds-market/pkg/utils"

	"go.uber.org/zap"
)

type AddressService interface {
	Insert(ctx context.Context, userID string, req *request.AddressRequest) entity.Result
	Delete(ctx context.Context, userID, roadFullAddr string) entity.Result
	List(ctx context.Context, userID string, defaultOnly bool) ([]response.AddressResponse, entity.Result)
	SetDefault(ctx context.Context, userID, roadFullAddr string) entity.Result
}

type addressService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAddressService(repo *repository.Repository, log *zap.Logger) AddressService {
	return &addressService{
		repo: repo,
		log:  log.With(zap.String("service", "address")),
	}
}

func (s *addressService) findUser(ctx context.Context, userID string) (*entity.User, entity.Result) {
	user, err := s.repo.User.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID))
		return nil, entity.ResultInternalServerError
	}
	if user == nil {
		return nil, entity.ResultFail
	}
	return user, entity.ResultSuccess
}

// Insert stores a new address; a user's first address becomes the default.
func (s *addressService) Insert(ctx context.Context, userID string, req *request.AddressRequest) entity.Result {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Address validation failed", zap.Any("errors", errs))
		return entity.ResultEntityError
	}

	user, result := s.findUser(ctx, userID)
	if user == nil {
		return result
	}

	address := req.ToEntity(user.Seq)
	if err := s.repo.Address.Create(ctx, address); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return entity.ResultConflict
		}
		s.log.Error("Failed to create address", zap.Error(err), zap.String("user_id", userID))
		return entity.ResultInternalServerError
	}

	s.log.Info("Address added", zap.String("user_id", userID), zap.Bool("default", address.IsDefault))
	return entity.ResultSuccess
}

func (s *addressService) Delete(ctx context.Context, userID, roadFullAddr string) entity.Result {
	user, result := s.findUser(ctx, userID)
	if user == nil {
		return result
	}

	if err := s.repo.Address.Delete(ctx, user.Seq, entity.NormalizeRoadAddr(roadFullAddr)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.ResultFail
		}
		s.log.Error("Failed to delete address", zap.Error(err), zap.String("user_id", userID))
		return entity.ResultInternalServerError
	}

	return entity.ResultSuccess
}

func (s *addressService) List(ctx context.Context, userID string, defaultOnly bool) ([]response.AddressResponse, entity.Result) {
	user, result := s.findUser(ctx, userID)
	if user == nil {
		return nil, result
	}

	addresses, err := s.repo.Address.List(ctx, user.Seq, defaultOnly)
	if err != nil {
		s.log.Error("Failed to list addresses", zap.Error(err), zap.String("user_id", userID))
		return nil, entity.ResultInternalServerError
	}

	return response.AddressesToResponse(addresses), entity.ResultSuccess
}

func (s *addressService) SetDefault(ctx context.Context, userID, roadFullAddr string) entity.Result {
	user, result := s.findUser(ctx, userID)
	if user == nil {
		return result
	}

	if err := s.repo.Address.SetDefault(ctx, user.Seq, entity.NormalizeRoadAddr(roadFullAddr)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.ResultFail
		}
		s.log.Error("Failed to set default address", zap.Error(err), zap.String("user_id", userID))
		return entity.ResultInternalServerError
	}

	s.log.Info("Default address changed", zap.String("user_id", userID))
	return entity.ResultSuccess
}
