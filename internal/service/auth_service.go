package service

import (
	"alcyxob/fitness-planner/internal/apperr"
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/logger"
	"alcyxob/fitness-planner/internal/mailer"
	"alcyxob/fitness-planner/internal/repository"
	"alcyxob/fitness-planner/internal/verification"
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const msgInvalidCredentials = "invalid email or password"

type RegisterInput struct {
	Nickname  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// AuthResult is returned by register and login.
type AuthResult struct {
	Access  string
	Refresh string
	User    *domain.User
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// Refresh exchanges a refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (string, error)
	// Authenticate returns the user id of a valid access token.
	Authenticate(accessToken string) (string, error)
}

type authService struct {
	log      *logger.Logger
	userRepo repository.UserRepository
	tokens   *Tokens
	codes    *codeSender
}

func NewAuthService(
	log *logger.Logger,
	userRepo repository.UserRepository,
	tokens *Tokens,
	store verification.Store,
	mail mailer.Mailer,
	codeTTL time.Duration,
) AuthService {
	return &authService{
		log:      log.With("service", "AuthService"),
		userRepo: userRepo,
		tokens:   tokens,
		codes:    newCodeSender(log, store, mail, codeTTL),
	}
}

// Register creates an unverified user and mails a verification code.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := normalizeEmail(in.Email)

	// Check if user already exists
	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, apperr.Conflict("user with this email already exists")
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Internal(err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &domain.User{
		Nickname:     strings.TrimSpace(in.Nickname),
		Email:        email,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		PasswordHash: string(hashedPassword),
	}
	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		// Unique indexes catch both a taken nickname and a concurrent
		// registration of the same email.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("user with this email or nickname already exists")
		}
		return nil, apperr.Internal(err)
	}
	user.ID = userID
	s.log.Info("user registered", "user_id", userID)

	// Registration succeeds even when the code cannot be delivered; the user
	// can ask for a new one.
	if err := s.codes.send(ctx, user); err != nil {
		s.log.Warn("verification code not sent", "user_id", userID, "error", err)
	}

	return s.issue(user)
}

func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Unauthorized(msgInvalidCredentials)
		}
		return nil, apperr.Internal(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.Unauthorized(msgInvalidCredentials)
	}
	return s.issue(user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, err := s.tokens.Parse(refreshToken, TokenRefresh)
	if err != nil {
		return "", apperr.Unauthorized(err.Error())
	}
	// A deleted account must not keep minting tokens.
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", apperr.Unauthorized(ErrInvalidToken.Error())
		}
		return "", apperr.Internal(err)
	}
	access, _, err := s.tokens.Pair(userID)
	if err != nil {
		return "", apperr.Internal(err)
	}
	return access, nil
}

func (s *authService) Authenticate(accessToken string) (string, error) {
	userID, err := s.tokens.Parse(accessToken, TokenAccess)
	if err != nil {
		return "", apperr.Unauthorized(err.Error())
	}
	return userID, nil
}

func (s *authService) issue(user *domain.User) (*AuthResult, error) {
	access, refresh, err := s.tokens.Pair(user.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &AuthResult{Access: access, Refresh: refresh, User: user}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// codeSender issues verification codes and mails them.
type codeSender struct {
	log   *logger.Logger
	store verification.Store
	mail  mailer.Mailer
	ttl   time.Duration
}

func newCodeSender(log *logger.Logger, store verification.Store, mail mailer.Mailer, ttl time.Duration) *codeSender {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &codeSender{log: log, store: store, mail: mail, ttl: ttl}
}

func (c *codeSender) send(ctx context.Context, user *domain.User) error {
	code, err := verification.NewCode()
	if err != nil {
		return err
	}
	if err := c.store.Save(ctx, user.ID, code, c.ttl); err != nil {
		return err
	}
	return c.mail.Send(ctx, mailer.VerificationMessage(user.Email, user.Nickname, code))
}
