package service

import (
	"alcyxob/fitness-planner/internal/apperr"
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/logger"
	"alcyxob/fitness-planner/internal/repository"
	"context"
	"errors"
	"strings"
)

type PreferenceInput struct {
	Gender             string
	Age                *int
	Height             *float64
	Weight             *float64
	Goal               string
	ExperienceLevel    domain.ExperienceLevel
	WorkoutFrequency   int
	PreferredExercises string
	ProgramMonths      int
}

// PreferencePatch is a partial update; nil fields are left alone.
type PreferencePatch struct {
	Gender             *string
	Age                *int
	Height             *float64
	Weight             *float64
	Goal               *string
	ExperienceLevel    *domain.ExperienceLevel
	WorkoutFrequency   *int
	PreferredExercises *string
	ProgramMonths      *int
}

// PreferenceService manages the caller's preferences. Preferences of other
// users are reported as not found.
type PreferenceService interface {
	Create(ctx context.Context, userID string, in PreferenceInput) (*domain.Preference, error)
	Get(ctx context.Context, userID, id string) (*domain.Preference, error)
	List(ctx context.Context, userID string, filter repository.PreferenceFilter) ([]domain.Preference, error)
	Update(ctx context.Context, userID, id string, patch PreferencePatch) (*domain.Preference, error)
	// Delete removes the preference and the plans generated from it.
	Delete(ctx context.Context, userID, id string) error
}

type preferenceService struct {
	log      *logger.Logger
	prefRepo repository.PreferenceRepository
}

func NewPreferenceService(log *logger.Logger, prefRepo repository.PreferenceRepository) PreferenceService {
	return &preferenceService{log: log.With("service", "PreferenceService"), prefRepo: prefRepo}
}

func (s *preferenceService) Create(ctx context.Context, userID string, in PreferenceInput) (*domain.Preference, error) {
	if !in.ExperienceLevel.Valid() {
		return nil, apperr.Validation(map[string]string{"experience_level": "must be one of beginner, middle, professional"})
	}
	goal, exercises := strings.TrimSpace(in.Goal), strings.TrimSpace(in.PreferredExercises)
	if fields := blankFields(map[string]string{"goal": goal, "prefer_workout_ex": exercises}); fields != nil {
		return nil, apperr.Validation(fields)
	}
	pref := &domain.Preference{
		UserID:             userID,
		Gender:             strings.TrimSpace(in.Gender),
		Age:                in.Age,
		Height:             in.Height,
		Weight:             in.Weight,
		Goal:               goal,
		ExperienceLevel:    in.ExperienceLevel,
		WorkoutFrequency:   in.WorkoutFrequency,
		PreferredExercises: exercises,
		ProgramMonths:      in.ProgramMonths,
	}
	id, err := s.prefRepo.Create(ctx, pref)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	pref.ID = id
	s.log.Info("preference created", "user_id", userID, "preference_id", id)
	return pref, nil
}

func (s *preferenceService) Get(ctx context.Context, userID, id string) (*domain.Preference, error) {
	pref, err := s.prefRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, preferenceError(err)
	}
	return pref, nil
}

func (s *preferenceService) List(ctx context.Context, userID string, filter repository.PreferenceFilter) ([]domain.Preference, error) {
	prefs, err := s.prefRepo.List(ctx, userID, filter)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return prefs, nil
}

func (s *preferenceService) Update(ctx context.Context, userID, id string, patch PreferencePatch) (*domain.Preference, error) {
	pref, err := s.prefRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, preferenceError(err)
	}
	if patch.ExperienceLevel != nil && !patch.ExperienceLevel.Valid() {
		return nil, apperr.Validation(map[string]string{"experience_level": "must be one of beginner, middle, professional"})
	}
	patched := map[string]string{}
	if patch.Goal != nil {
		patched["goal"] = strings.TrimSpace(*patch.Goal)
	}
	if patch.PreferredExercises != nil {
		patched["prefer_workout_ex"] = strings.TrimSpace(*patch.PreferredExercises)
	}
	if fields := blankFields(patched); fields != nil {
		return nil, apperr.Validation(fields)
	}

	if patch.Gender != nil {
		pref.Gender = strings.TrimSpace(*patch.Gender)
	}
	if patch.Age != nil {
		pref.Age = patch.Age
	}
	if patch.Height != nil {
		pref.Height = patch.Height
	}
	if patch.Weight != nil {
		pref.Weight = patch.Weight
	}
	if patch.Goal != nil {
		pref.Goal = patched["goal"]
	}
	if patch.ExperienceLevel != nil {
		pref.ExperienceLevel = *patch.ExperienceLevel
	}
	if patch.WorkoutFrequency != nil {
		pref.WorkoutFrequency = *patch.WorkoutFrequency
	}
	if patch.PreferredExercises != nil {
		pref.PreferredExercises = patched["prefer_workout_ex"]
	}
	if patch.ProgramMonths != nil {
		pref.ProgramMonths = *patch.ProgramMonths
	}

	if err := s.prefRepo.Update(ctx, pref); err != nil {
		return nil, preferenceError(err)
	}
	return pref, nil
}

func (s *preferenceService) Delete(ctx context.Context, userID, id string) error {
	if err := s.prefRepo.Delete(ctx, id, userID); err != nil {
		return preferenceError(err)
	}
	s.log.Info("preference deleted", "user_id", userID, "preference_id", id)
	return nil
}

// blankFields reports the required text fields that are empty after trimming.
func blankFields(values map[string]string) map[string]string {
	var fields map[string]string
	for name, v := range values {
		if v == "" {
			if fields == nil {
				fields = map[string]string{}
			}
			fields[name] = "is required"
		}
	}
	return fields
}

func preferenceError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("preference")
	}
	return apperr.Internal(err)
}
