package mongo

import (
	"alcyxob/fitness-planner/internal/domain"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// mongoPlanWriter inserts plan rows. The ctx handed to each method is the
// session context of the surrounding transaction.
type mongoPlanWriter struct {
	repo *mongoPlanRepository
}

func (w *mongoPlanWriter) CreatePlan(ctx context.Context, plan *domain.Plan) error {
	if plan.UserID == "" || plan.PreferenceID == "" || plan.Name == "" {
		return errors.New("plan requires user id, preference id and name")
	}
	plan.ID = uuid.NewString()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now
	_, err := w.repo.plans.InsertOne(ctx, plan)
	return err
}

func (w *mongoPlanWriter) CreateWeeklySchedule(ctx context.Context, schedule *domain.WeeklySchedule) error {
	if schedule.PlanID == "" {
		return errors.New("weekly schedule requires plan id")
	}
	schedule.ID = uuid.NewString()
	schedule.CreatedAt = time.Now().UTC()
	_, err := w.repo.schedules.InsertOne(ctx, schedule)
	return err
}

func (w *mongoPlanWriter) CreateExercise(ctx context.Context, exercise *domain.Exercise) error {
	if exercise.WeeklyScheduleID == "" || exercise.PlanID == "" {
		return errors.New("exercise requires weekly schedule id and plan id")
	}
	exercise.ID = uuid.NewString()
	exercise.CreatedAt = time.Now().UTC()
	_, err := w.repo.exercises.InsertOne(ctx, exercise)
	return err
}
