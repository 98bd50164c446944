package service

import (
	"alcyxob/fitness-planner/internal/apperr"
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/logger"
	"alcyxob/fitness-planner/internal/mailer"
	"alcyxob/fitness-planner/internal/repository"
	"alcyxob/fitness-planner/internal/storage"
	"alcyxob/fitness-planner/internal/verification"
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// UpdateUserInput is a partial update; nil fields are left alone.
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
}

type ChangePasswordInput struct {
	OldPassword     string
	NewPassword     string
	ConfirmPassword string
}

// AvatarUpload tells the client where to PUT the avatar bytes.
type AvatarUpload struct {
	UploadURL string
	ObjectKey string
	ExpiresIn time.Duration
}

// AccountService manages the authenticated user's own account.
type AccountService interface {
	Me(ctx context.Context, userID string) (*domain.User, error)
	UpdateMe(ctx context.Context, userID string, in UpdateUserInput) (*domain.User, error)
	DeleteMe(ctx context.Context, userID string) error
	Verify(ctx context.Context, userID, code string) error
	ResendCode(ctx context.Context, userID string) error
	ChangePassword(ctx context.Context, userID string, in ChangePasswordInput) error
	AvatarUploadURL(ctx context.Context, userID, fileName, contentType string) (*AvatarUpload, error)
	AvatarURL(ctx context.Context, userID string) (string, error)
}

type accountService struct {
	log      *logger.Logger
	userRepo repository.UserRepository
	files    storage.FileStorage
	store    verification.Store
	codes    *codeSender
	now      func() time.Time
}

func NewAccountService(
	log *logger.Logger,
	userRepo repository.UserRepository,
	files storage.FileStorage,
	store verification.Store,
	mail mailer.Mailer,
	codeTTL time.Duration,
) AccountService {
	return &accountService{
		log:      log.With("service", "AccountService"),
		userRepo: userRepo,
		files:    files,
		store:    store,
		codes:    newCodeSender(log, store, mail, codeTTL),
		now:      time.Now,
	}
}

func (s *accountService) Me(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, userError(err)
	}
	return user, nil
}

func (s *accountService) UpdateMe(ctx context.Context, userID string, in UpdateUserInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, userError(err)
	}
	if in.FirstName != nil {
		user.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		user.LastName = strings.TrimSpace(*in.LastName)
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, userError(err)
	}
	return user, nil
}

func (s *accountService) DeleteMe(ctx context.Context, userID string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return userError(err)
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return userError(err)
	}
	if user.HasAvatar() {
		// The account is already gone; a leftover object is only logged.
		if err := s.files.DeleteObject(ctx, user.AvatarKey); err != nil {
			s.log.Warn("avatar not removed", "user_id", userID, "error", err)
		}
	}
	s.log.Info("user deleted", "user_id", userID)
	return nil
}

func (s *accountService) Verify(ctx context.Context, userID, code string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return userError(err)
	}
	if user.IsVerified {
		return apperr.InvalidRequest("email already verified")
	}
	ok, err := s.store.Verify(ctx, userID, strings.TrimSpace(code))
	if err != nil {
		return apperr.Internal(err)
	}
	if !ok {
		return apperr.InvalidRequest("invalid or expired verification code")
	}
	user.IsVerified = true
	if err := s.userRepo.Update(ctx, user); err != nil {
		return userError(err)
	}
	s.log.Info("email verified", "user_id", userID)
	return nil
}

func (s *accountService) ResendCode(ctx context.Context, userID string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return userError(err)
	}
	if user.IsVerified {
		return apperr.InvalidRequest("email already verified")
	}
	if err := s.codes.send(ctx, user); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *accountService) ChangePassword(ctx context.Context, userID string, in ChangePasswordInput) error {
	fields := map[string]string{}
	if in.NewPassword != in.ConfirmPassword {
		fields["confirm_password"] = "must match new_password"
	}
	if len(in.NewPassword) < 8 {
		fields["new_password"] = "must be at least 8 characters"
	}
	if len(fields) > 0 {
		return apperr.Validation(fields)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return userError(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.OldPassword)); err != nil {
		return apperr.Validation(map[string]string{"old_password": "is incorrect"})
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Internal(err)
	}
	user.PasswordHash = string(hashed)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return userError(err)
	}
	s.log.Info("password changed", "user_id", userID)
	return nil
}

func (s *accountService) AvatarUploadURL(ctx context.Context, userID, fileName, contentType string) (*AvatarUpload, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, userError(err)
	}
	key, err := storage.AvatarKey(userID, fileName, contentType, s.now())
	if err != nil {
		return nil, apperr.Validation(map[string]string{"content_type": "must be an image type (jpeg, png, webp, gif)"})
	}
	url, err := s.files.GeneratePresignedUploadURL(ctx, key, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	previous := user.AvatarKey
	user.AvatarKey = key
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, userError(err)
	}
	if previous != "" {
		if err := s.files.DeleteObject(ctx, previous); err != nil {
			s.log.Warn("previous avatar not removed", "user_id", userID, "error", err)
		}
	}
	return &AvatarUpload{UploadURL: url, ObjectKey: key, ExpiresIn: storage.DefaultPresignedURLExpiry}, nil
}

func (s *accountService) AvatarURL(ctx context.Context, userID string) (string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", userError(err)
	}
	if !user.HasAvatar() {
		return "", apperr.NotFound("avatar")
	}
	url, err := s.files.GeneratePresignedDownloadURL(ctx, user.AvatarKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", apperr.Internal(err)
	}
	return url, nil
}

func userError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("user")
	}
	return apperr.Internal(err)
}
