package gormdb

import (
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/repository"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type planRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) repository.PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) WithinTransaction(ctx context.Context, fn func(ctx context.Context, w repository.PlanWriter) error) error {
	if fn == nil {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &planWriter{tx: tx})
	})
}

func (r *planRepository) GetByID(ctx context.Context, id, userID string) (*domain.Plan, error) {
	var plan domain.Plan
	err := withSubtree(r.db.WithContext(ctx)).
		Where("id = ? AND user_id = ?", id, userID).
		First(&plan).Error
	if err != nil {
		return nil, translate(err)
	}
	return &plan, nil
}

func (r *planRepository) List(ctx context.Context, userID string, filter repository.PlanFilter) ([]domain.Plan, error) {
	q := scopePlans(r.db.WithContext(ctx), userID, filter)
	plans := []domain.Plan{}
	err := withSubtree(q).
		Order("created_at DESC").
		Order("id ASC").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *planRepository) Delete(ctx context.Context, userID string, filter repository.PlanFilter) (int64, error) {
	if !filter.Scoped() {
		return 0, errors.New("plan delete requires a plan or preference id")
	}
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var planIDs []string
		if err := scopePlans(tx.Model(&domain.Plan{}), userID, filter).Pluck("id", &planIDs).Error; err != nil {
			return err
		}
		if len(planIDs) == 0 {
			return repository.ErrNotFound
		}
		if err := deletePlanTrees(tx, planIDs); err != nil {
			return err
		}
		deleted = int64(len(planIDs))
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func scopePlans(q *gorm.DB, userID string, filter repository.PlanFilter) *gorm.DB {
	q = q.Where("user_id = ?", userID)
	if filter.PlanID != "" {
		q = q.Where("id = ?", filter.PlanID)
	}
	if filter.PreferenceID != "" {
		q = q.Where("preference_id = ?", filter.PreferenceID)
	}
	return q
}

func withSubtree(q *gorm.DB) *gorm.DB {
	return q.
		Preload("WeeklySchedules", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("WeeklySchedules.Exercises", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		})
}

// deletePlanTrees removes plans and their descendants. The FK cascade would
// do the same on postgres; deleting explicitly keeps sqlite without the
// foreign_keys pragma consistent.
func deletePlanTrees(tx *gorm.DB, planIDs []string) error {
	if len(planIDs) == 0 {
		return nil
	}
	if err := tx.Where("plan_id IN ?", planIDs).Delete(&domain.Exercise{}).Error; err != nil {
		return err
	}
	if err := tx.Where("plan_id IN ?", planIDs).Delete(&domain.WeeklySchedule{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", planIDs).Delete(&domain.Plan{}).Error
}

type planWriter struct {
	tx *gorm.DB
}

func (w *planWriter) CreatePlan(ctx context.Context, plan *domain.Plan) error {
	if plan.UserID == "" || plan.PreferenceID == "" || plan.Name == "" {
		return errors.New("plan requires user id, preference id and name")
	}
	plan.ID = uuid.NewString()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now
	return translate(w.tx.WithContext(ctx).Omit(clause.Associations).Create(plan).Error)
}

func (w *planWriter) CreateWeeklySchedule(ctx context.Context, schedule *domain.WeeklySchedule) error {
	if schedule.PlanID == "" {
		return errors.New("weekly schedule requires plan id")
	}
	schedule.ID = uuid.NewString()
	schedule.CreatedAt = time.Now().UTC()
	return translate(w.tx.WithContext(ctx).Omit(clause.Associations).Create(schedule).Error)
}

func (w *planWriter) CreateExercise(ctx context.Context, exercise *domain.Exercise) error {
	if exercise.WeeklyScheduleID == "" || exercise.PlanID == "" {
		return errors.New("exercise requires weekly schedule id and plan id")
	}
	exercise.ID = uuid.NewString()
	exercise.CreatedAt = time.Now().UTC()
	return translate(w.tx.WithContext(ctx).Create(exercise).Error)
}
