package service

import (
	"alcyxob/fitness-planner/internal/apperr"
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/logger"
	"alcyxob/fitness-planner/internal/repository"
	"context"
	"errors"
)

type ProfileInput struct {
	Age    int
	Height float64
	Weight float64
}

// ProfilePatch is a partial update; nil fields are left alone.
type ProfilePatch struct {
	Age    *int
	Height *float64
	Weight *float64
}

type ProfileService interface {
	Get(ctx context.Context, userID string) (*domain.Profile, error)
	// Create fails with a conflict when the user already has a profile.
	Create(ctx context.Context, userID string, in ProfileInput) (*domain.Profile, error)
	Update(ctx context.Context, userID string, patch ProfilePatch) (*domain.Profile, error)
}

type profileService struct {
	log         *logger.Logger
	profileRepo repository.ProfileRepository
}

func NewProfileService(log *logger.Logger, profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{log: log.With("service", "ProfileService"), profileRepo: profileRepo}
}

func (s *profileService) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, profileError(err)
	}
	return profile, nil
}

func (s *profileService) Create(ctx context.Context, userID string, in ProfileInput) (*domain.Profile, error) {
	if _, err := s.profileRepo.GetByUserID(ctx, userID); err == nil {
		return nil, apperr.Conflict("profile already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Internal(err)
	}

	profile := &domain.Profile{UserID: userID, Age: in.Age, Height: in.Height, Weight: in.Weight}
	id, err := s.profileRepo.Create(ctx, profile)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("profile already exists")
		}
		return nil, apperr.Internal(err)
	}
	profile.ID = id
	return profile, nil
}

func (s *profileService) Update(ctx context.Context, userID string, patch ProfilePatch) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, profileError(err)
	}
	if patch.Age != nil {
		profile.Age = *patch.Age
	}
	if patch.Height != nil {
		profile.Height = *patch.Height
	}
	if patch.Weight != nil {
		profile.Weight = *patch.Weight
	}
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, profileError(err)
	}
	return profile, nil
}

func profileError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("profile")
	}
	return apperr.Internal(err)
}
