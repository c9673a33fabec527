package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

	"classifieds-market/internal/data/entity"
	"classifieds-market/internal/data/repository"
	"classifieds-market/internal/data/session"
	"classifieds-market/internal/dto/request"
	"classifieds-market/pkg/mailer"
	"classifieds-market/pkg/storage"
	"classifieds-market/pkg/utils"

	"go.uber.org/zap"
)

// emailStateTTL only bounds how long abandoned codes linger in the store.
// Expiry of a code is decided by comparing its stored send time.
const emailStateTTL = 24 * time.Hour

type AuthService interface {
	CheckDuplicate(ctx context.Context, userID, email string) entity.Result
	Signup(ctx context.Context, req *request.SignupRequest) entity.Result
	Login(ctx context.Context, req *request.LoginRequest) entity.Result
	Logout(ctx context.Context, userID string) entity.Result
	Signout(ctx context.Context, req *request.SignoutRequest) entity.Result
	SendEmail(ctx context.Context, email string) entity.Result
	VerifyEmail(ctx context.Context, email, code string) entity.Result
	ForgotID(ctx context.Context, email string) (string, entity.Result)
	ForgotPassword(ctx context.Context, req *request.ForgotPasswordRequest) entity.Result
}

type authService struct {
	repo   *repository.Repository // users
	store  session.Store
	images storage.ImageStore
	mail   mailer.Mailer
	config *utils.Config
	log    *zap.Logger
	now    func() time.Time
}

func NewAuthService(
	repo *repository.Repository,
	store session.Store,
	images storage.ImageStore,
	mail mailer.Mailer,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		store:  store,
		images: images,
		mail:   mail,
		config: config,
		log:    log.With(zap.String("service", "auth")),
		now:    time.Now,
	}
}

func (s *authService) codeTTL() time.Duration {
	if s.config.Email.CodeTTLSeconds <= 0 {
		return 300 * time.Second
	}
	return time.Duration(s.config.Email.CodeTTLSeconds) * time.Second
}

// CheckDuplicate looks up exactly one of userID or email.
func (s *authService) CheckDuplicate(ctx context.Context, userID, email string) entity.Result {
	if (userID == "") == (email == "") {
		return entity.ResultEntityError
	}

	var (
		user *entity.User
		err  error
	)
	if userID != "" {
		user, err = s.repo.User.FindByUserID(ctx, userID)
	} else {
		user, err = s.repo.User.FindByEmail(ctx, email)
	}
	if err != nil {
		s.log.Error("Failed to check duplicate", zap.Error(err))
		return entity.ResultInternalServerError
	}
	if user != nil {
		return entity.ResultConflict
	}

	return entity.ResultSuccess
}

func (s *authService) Signup(ctx context.Context, req *request.SignupRequest) entity.Result {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Signup validation failed", zap.Any("errors", errs))
		return entity.ResultEntityError
	}

	// 2. user_id and email must both be free
	existing, err := s.repo.User.FindByUserID(ctx, req.UserID)
	if err != nil {
		s.log.Error("Failed to check user_id", zap.Error(err), zap.String("user_id", req.UserID))
		return entity.ResultInternalServerError
	}
	if existing != nil {
		return entity.ResultConflict
	}

	existing, err = s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return entity.ResultInternalServerError
	}
	if existing != nil {
		return entity.ResultConflict
	}

	// 3. Hash password
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return entity.ResultInternalServerError
	}

	// 4. Save user
	user := &entity.User{
		UserID:       req.UserID,
		PasswordHash: hash,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		IDNum:        req.IDNum,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return entity.ResultConflict
		}
		s.log.Error("Failed to create user", zap.Error(err), zap.String("user_id", req.UserID))
		return entity.ResultInternalServerError
	}

	s.log.Info("User signed up", zap.String("user_id", user.UserID), zap.Int64("seq", user.Seq))
	return entity.ResultSuccess
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) entity.Result {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return entity.ResultEntityError
	}

	user, err := s.repo.User.FindByUserID(ctx, req.UserID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", req.UserID))
		return entity.ResultInternalServerError
	}
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Login failed", zap.String("user_id", req.UserID))
		return entity.ResultFail
	}

	// Set overwrites, so a repeated login keeps a single marker.
	stamp := strconv.FormatInt(s.now().Unix(), 10)
	if err := s.store.Set(ctx, session.LoginKey(user.UserID), stamp, loginTTL(s.config)); err != nil {
		s.log.Error("Failed to write login marker", zap.Error(err), zap.String("user_id", user.UserID))
		return entity.ResultInternalServerError
	}

	if err := s.repo.User.TouchLastLogin(ctx, user.Seq); err != nil {
		s.log.Warn("Failed to stamp last_login", zap.Error(err), zap.String("user_id", user.UserID))
	}

	s.log.Info("User logged in", zap.String("user_id", user.UserID))
	return entity.ResultSuccess
}

func (s *authService) Logout(ctx context.Context, userID string) entity.Result {
	key := session.LoginKey(userID)
	ok, err := s.store.Exists(ctx, key)
	if err != nil {
		s.log.Error("Failed to read login marker", zap.Error(err), zap.String("user_id", userID))
		return entity.ResultInternalServerError
	}
	if !ok {
		return entity.ResultFail
	}

	if err := s.store.Delete(ctx, key); err != nil {
		s.log.Error("Failed to delete login marker", zap.Error(err), zap.String("user_id", userID))
		return entity.ResultInternalServerError
	}

	user, err := s.repo.User.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Warn("Failed to find user on logout", zap.Error(err), zap.String("user_id", userID))
	}
	if user != nil {
		if err := s.repo.User.TouchLastLogout(ctx, user.Seq); err != nil {
			s.log.Warn("Failed to stamp last_logout", zap.Error(err), zap.String("user_id", userID))
		}
	}

	s.log.Info("User logged out", zap.String("user_id", userID))
	return entity.ResultSuccess
}

func (s *authService) Signout(ctx context.Context, req *request.SignoutRequest) entity.Result {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return entity.ResultEntityError
	}

	// 1. Verify credentials
	user, err := s.repo.User.FindByUserID(ctx, req.UserID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", req.UserID))
		return entity.ResultInternalServerError
	}
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return entity.ResultFail
	}

	// 2. Must be logged in
	key := session.LoginKey(user.UserID)
	ok, err := s.store.Exists(ctx, key)
	if err != nil {
		s.log.Error("Failed to read login marker", zap.Error(err), zap.String("user_id", user.UserID))
		return entity.ResultInternalServerError
	}
	if !ok {
		return entity.ResultTimeOut
	}

	// 3. Delete the row; items, addresses, saves and purchases cascade
	if err := s.repo.User.Delete(ctx, user.Seq); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.ResultFail
		}
		s.log.Error("Failed to delete user", zap.Error(err), zap.String("user_id", user.UserID))
		return entity.ResultInternalServerError
	}

	// 4. Clean up profile image and marker
	if user.Profile != nil {
		removeImages(ctx, s.images, s.log, *user.Profile)
	}
	if err := s.store.Delete(ctx, key); err != nil {
		s.log.Warn("Failed to delete login marker", zap.Error(err), zap.String("user_id", user.UserID))
	}

	s.log.Info("User signed out", zap.String("user_id", user.UserID))
	return entity.ResultSuccess
}

func (s *authService) SendEmail(ctx context.Context, email string) entity.Result {
	if errs := utils.ValidateStruct(&request.EmailRequest{Email: email}); len(errs) > 0 {
		return entity.ResultEntityError
	}

	code, err := utils.GenerateCode(6)
	if err != nil {
		s.log.Error("Failed to generate code", zap.Error(err))
		return entity.ResultInternalServerError
	}

	sentAt := strconv.FormatInt(s.now().Unix(), 10)
	if err := s.store.Set(ctx, session.EmailCodeKey(email), code, emailStateTTL); err != nil {
		s.log.Error("Failed to store email code", zap.Error(err), zap.String("email", email))
		return entity.ResultInternalServerError
	}
	if err := s.store.Set(ctx, session.EmailTimeKey(email), sentAt, emailStateTTL); err != nil {
		s.log.Error("Failed to store email time", zap.Error(err), zap.String("email", email))
		return entity.ResultInternalServerError
	}

	if err := s.mail.Send(ctx, mailer.VerificationMessage(email, code)); err != nil {
		s.log.Error("Failed to send verification mail", zap.Error(err), zap.String("email", email))
		return entity.ResultFail
	}

	s.log.Info("Verification mail sent", zap.String("email", email))
	return entity.ResultSuccess
}

func (s *authService) VerifyEmail(ctx context.Context, email, code string) entity.Result {
	codeKey := session.EmailCodeKey(email)
	timeKey := session.EmailTimeKey(email)

	stored, found, err := s.store.Get(ctx, codeKey)
	if err != nil {
		s.log.Error("Failed to read email code", zap.Error(err), zap.String("email", email))
		return entity.ResultInternalServerError
	}
	sentAt, timeFound, err := s.store.Get(ctx, timeKey)
	if err != nil {
		s.log.Error("Failed to read email time", zap.Error(err), zap.String("email", email))
		return entity.ResultInternalServerError
	}

	// A code is good for one attempt.
	for _, key := range []string{codeKey, timeKey} {
		if err := s.store.Delete(ctx, key); err != nil {
			s.log.Warn("Failed to clear email state", zap.Error(err), zap.String("key", key))
		}
	}

	if !found || !timeFound {
		return entity.ResultFail
	}

	sent, err := strconv.ParseInt(sentAt, 10, 64)
	if err != nil {
		s.log.Error("Corrupt email time", zap.Error(err), zap.String("email", email))
		return entity.ResultFail
	}
	if s.now().Sub(time.Unix(sent, 0)) >= s.codeTTL() {
		return entity.ResultTimeOut
	}
	if stored != code {
		return entity.ResultFail
	}

	if err := s.store.Set(ctx, session.EmailVerifiedKey(email), "1", s.codeTTL()); err != nil {
		s.log.Error("Failed to mark email verified", zap.Error(err), zap.String("email", email))
		return entity.ResultInternalServerError
	}

	s.log.Info("Email verified", zap.String("email", email))
	return entity.ResultSuccess
}

func (s *authService) ForgotID(ctx context.Context, email string) (string, entity.Result) {
	if errs := utils.ValidateStruct(&request.EmailRequest{Email: email}); len(errs) > 0 {
		return "", entity.ResultEntityError
	}

	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to find user by email", zap.Error(err), zap.String("email", email))
		return "", entity.ResultInternalServerError
	}
	if user == nil {
		return "", entity.ResultNotFound
	}

	return user.UserID, entity.ResultSuccess
}

// ForgotPassword needs a fresh email verification for the account's address.
func (s *authService) ForgotPassword(ctx context.Context, req *request.ForgotPasswordRequest) entity.Result {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return entity.ResultEntityError
	}

	user, err := s.repo.User.FindByUserID(ctx, req.UserID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", req.UserID))
		return entity.ResultInternalServerError
	}
	if user == nil {
		return entity.ResultFail
	}

	key := session.EmailVerifiedKey(user.Email)
	verified, err := s.store.Exists(ctx, key)
	if err != nil {
		s.log.Error("Failed to read verification marker", zap.Error(err), zap.String("user_id", req.UserID))
		return entity.ResultInternalServerError
	}
	if !verified {
		return entity.ResultFail
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return entity.ResultInternalServerError
	}
	if err := s.repo.User.UpdatePassword(ctx, user.Seq, hash); err != nil {
		s.log.Error("Failed to update password", zap.Error(err), zap.String("user_id", req.UserID))
		return entity.ResultInternalServerError
	}

	if err := s.store.Delete(ctx, key); err != nil {
		s.log.Warn("Failed to consume verification marker", zap.Error(err), zap.String("user_id", req.UserID))
	}

	s.log.Info("Password reset", zap.String("user_id", user.UserID))
	return entity.ResultSuccess
}
