package gormdb

import (
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/repository"
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type preferenceRepository struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) repository.PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) Create(ctx context.Context, pref *domain.Preference) (string, error) {
	pref.ID = uuid.NewString()
	now := time.Now().UTC()
	pref.CreatedAt = now
	pref.UpdatedAt = now
	if err := r.db.WithContext(ctx).Create(pref).Error; err != nil {
		return "", translate(err)
	}
	return pref.ID, nil
}

func (r *preferenceRepository) GetByID(ctx context.Context, id, userID string) (*domain.Preference, error) {
	var pref domain.Preference
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&pref).Error
	if err != nil {
		return nil, translate(err)
	}
	return &pref, nil
}

func (r *preferenceRepository) List(ctx context.Context, userID string, filter repository.PreferenceFilter) ([]domain.Preference, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.Age != nil {
		q = q.Where("age = ?", *filter.Age)
	}
	if filter.Goal != "" {
		q = q.Where("goal = ?", filter.Goal)
	}
	if filter.ExperienceLevel != "" {
		q = q.Where("experience_level = ?", filter.ExperienceLevel)
	}
	if filter.Gender != "" {
		q = q.Where("gender = ?", filter.Gender)
	}
	if filter.PreferredExercises != "" {
		q = q.Where("preferred_exercises = ?", filter.PreferredExercises)
	}

	prefs := []domain.Preference{}
	if err := q.Order("created_at DESC").Order("id ASC").Find(&prefs).Error; err != nil {
		return nil, err
	}
	return prefs, nil
}

func (r *preferenceRepository) Update(ctx context.Context, pref *domain.Preference) error {
	pref.UpdatedAt = time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&domain.Preference{}).
		Where("id = ? AND user_id = ?", pref.ID, pref.UserID).
		Select("gender", "age", "height", "weight", "goal", "experience_level",
			"workout_frequency", "preferred_exercises", "program_months", "updated_at").
		Updates(pref)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *preferenceRepository) Delete(ctx context.Context, id, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var planIDs []string
		err := tx.Model(&domain.Plan{}).
			Where("preference_id = ? AND user_id = ?", id, userID).
			Pluck("id", &planIDs).Error
		if err != nil {
			return err
		}
		if err := deletePlanTrees(tx, planIDs); err != nil {
			return err
		}
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&domain.Preference{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repository.ErrNotFound
		}
		return nil
	})
}
