package usecase

import (
	"context"
	"errors"
	"io"
	"time"

	"classifieds-market/internal/data/entity"
	"classifieds-market/internal/data/repository"
	"classifieds-market/internal/data/session"
	"classifieds-market/internal/dto/request"
	"classifieds-market/internal/dto/response"
	"classifieds-market/pkg/storage"
	"classifieds-market/pkg/utils"

	"go.uber.org/zap"
)

type UserService interface {
	GetInfo(ctx context.Context, userID string) (*response.UserResponse, entity.Result)
	UpdateInfo(ctx context.Context, userID string, req *request.UpdateInfoRequest) entity.Result
	UpdateProfileImage(ctx context.Context, userID string, data []byte) entity.Result
	OpenProfileImage(ctx context.Context, path string) (io.ReadCloser, entity.Result)
	ToggleSavedItem(ctx context.Context, userID string, itemSeq int64) (bool, entity.Result)
	ListSavedItems(ctx context.Context, userID string) ([]response.ItemSummaryResponse, entity.Result)
}

type userService struct {
	repo   *repository.Repository
	store  session.Store
	images storage.ImageStore
	config *utils.Config
	log    *zap.Logger
	now    func() time.Time
}

func NewUserService(
	repo *repository.Repository,
	store session.Store,
	images storage.ImageStore,
	config *utils.Config,
	log *zap.Logger,
) UserService {
	return &userService{
		repo:   repo,
		store:  store,
		images: images,
		config: config,
		log:    log.With(zap.String("service", "user")),
		now:    time.Now,
	}
}

func (s *userService) GetInfo(ctx context.Context, userID string) (*response.UserResponse, entity.Result) {
	user, err := s.repo.User.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID))
		return nil, entity.ResultInternalServerError
	}
	if user == nil {
		return nil, entity.ResultNotFound
	}

	resp := response.UserToResponse(user)
	return &resp, entity.ResultSuccess
}

// loggedInUser resolves userID and checks its login marker. A nil user comes
// with the Result to answer.
func (s *userService) loggedInUser(ctx context.Context, userID string) (*entity.User, entity.Result) {
	user, err := s.repo.User.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID))
		return nil, entity.ResultInternalServerError
	}
	if user == nil {
		return nil, entity.ResultFail
	}

	ok, err := s.store.Exists(ctx, session.LoginKey(userID))
	if err != nil {
		s.log.Error("Failed to read login marker", zap.Error(err), zap.String("user_id", userID))
		return nil, entity.ResultInternalServerError
	}
	if !ok {
		return nil, entity.ResultTimeOut
	}

	return user, entity.ResultSuccess
}

func (s *userService) UpdateInfo(ctx context.Context, userID string, req *request.UpdateInfoRequest) entity.Result {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return entity.ResultEntityError
	}

	user, result := s.loggedInUser(ctx, userID)
	if user == nil {
		return result
	}

	patch := req.Patch()
	if patch.Empty() {
		return entity.ResultFail
	}

	if patch.Email != nil && *patch.Email != user.Email {
		other, err := s.repo.User.FindByEmail(ctx, *patch.Email)
		if err != nil {
			s.log.Error("Failed to check email", zap.Error(err), zap.String("email", *patch.Email))
			return entity.ResultInternalServerError
		}
		if other != nil && other.Seq != user.Seq {
			return entity.ResultConflict
		}
	}

	if err := s.repo.User.UpdateInfo(ctx, user.Seq, patch); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return entity.ResultConflict
		case errors.Is(err, repository.ErrNotFound):
			return entity.ResultFail
		}
		s.log.Error("Failed to update user", zap.Error(err), zap.String("user_id", userID))
		return entity.ResultInternalServerError
	}

	s.log.Info("User info updated", zap.String("user_id", userID))
	return entity.ResultSuccess
}

// UpdateProfileImage replaces the profile picture; nil data clears it.
func (s *userService) UpdateProfileImage(ctx context.Context, userID string, data []byte) entity.Result {
	user, result := s.loggedInUser(ctx, userID)
	if user == nil {
		return result
	}

	var newPath *string
	if data != nil {
		ext, contentType, err := storage.DetectImage(data, maxImageBytes(s.config))
		if err != nil {
			s.log.Warn("Rejected profile image", zap.Error(err), zap.String("user_id", userID))
			return entity.ResultEntityError
		}

		name, err := s.images.Save(ctx, data, ext, contentType)
		if err != nil {
			s.log.Error("Failed to store profile image", zap.Error(err), zap.String("user_id", userID))
			return entity.ResultInternalServerError
		}
		newPath = &name
	}

	if err := s.repo.User.UpdateProfile(ctx, user.Seq, newPath); err != nil {
		if newPath != nil {
			removeImages(ctx, s.images, s.log, *newPath)
		}
		if errors.Is(err, repository.ErrNotFound) {
			return entity.ResultFail
		}
		s.log.Error("Failed to update profile", zap.Error(err), zap.String("user_id", userID))
		return entity.ResultInternalServerError
	}

	if user.Profile != nil {
		removeImages(ctx, s.images, s.log, *user.Profile)
	}

	s.log.Info("Profile image updated", zap.String("user_id", userID), zap.Bool("cleared", newPath == nil))
	return entity.ResultSuccess
}

func (s *userService) OpenProfileImage(ctx context.Context, path string) (io.ReadCloser, entity.Result) {
	return openImage(ctx, s.images, path, s.log)
}

// ToggleSavedItem flips the saved state and reports the new one.
func (s *userService) ToggleSavedItem(ctx context.Context, userID string, itemSeq int64) (bool, entity.Result) {
	user, err := s.repo.User.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID))
		return false, entity.ResultInternalServerError
	}
	if user == nil {
		return false, entity.ResultFail
	}

	item, err := s.repo.Item.FindBySeq(ctx, itemSeq)
	if err != nil {
		s.log.Error("Failed to find item", zap.Error(err), zap.Int64("item_seq", itemSeq))
		return false, entity.ResultInternalServerError
	}
	if item == nil {
		return false, entity.ResultFail
	}

	saved, err := s.repo.SavedItem.Toggle(ctx, user.Seq, item.Seq)
	if err != nil {
		s.log.Error("Failed to toggle saved item", zap.Error(err), zap.String("user_id", userID), zap.Int64("item_seq", itemSeq))
		return false, entity.ResultInternalServerError
	}

	return saved, entity.ResultSuccess
}

func (s *userService) ListSavedItems(ctx context.Context, userID string) ([]response.ItemSummaryResponse, entity.Result) {
	user, err := s.repo.User.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID))
		return nil, entity.ResultInternalServerError
	}
	if user == nil {
		return nil, entity.ResultFail
	}

	items, err := s.repo.SavedItem.ListSummaries(ctx, user.Seq)
	if err != nil {
		s.log.Error("Failed to list saved items", zap.Error(err), zap.String("user_id", userID))
		return nil, entity.ResultInternalServerError
	}

	return response.ItemSummariesToResponse(items, s.now()), entity.ResultSuccess
}
