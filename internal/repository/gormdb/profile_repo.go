package gormdb

import (
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/repository"
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) (string, error) {
	profile.ID = uuid.NewString()
	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return "", translate(err)
	}
	return profile.ID, nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	var profile domain.Profile
	if err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	profile.UpdatedAt = time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&domain.Profile{}).
		Where("user_id = ?", profile.UserID).
		Select("age", "height", "weight", "updated_at").
		Updates(profile)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
