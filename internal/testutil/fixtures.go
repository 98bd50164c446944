package testutil

import (
	"alcyxob/fitness-planner/internal/domain"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func SeedUser(tb testing.TB, ctx context.Context, db *gorm.DB, nickname string) *domain.User {
	tb.Helper()
	now := time.Now().UTC()
	u := &domain.User{
		ID:           uuid.NewString(),
		Nickname:     nickname,
		Email:        nickname + "@example.com",
		PasswordHash: "hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedPreference(tb testing.TB, ctx context.Context, db *gorm.DB, userID string) *domain.Preference {
	tb.Helper()
	now := time.Now().UTC()
	p := &domain.Preference{
		ID:                 uuid.NewString(),
		UserID:             userID,
		Goal:               "build strength",
		ExperienceLevel:    domain.ExperienceMiddle,
		WorkoutFrequency:   3,
		PreferredExercises: "free weights",
		ProgramMonths:      2,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed preference: %v", err)
	}
	return p
}

// SeedPlan creates a plan with the given number of schedules and exercises per schedule.
func SeedPlan(tb testing.TB, ctx context.Context, db *gorm.DB, userID, preferenceID string, schedules, exercises int) *domain.Plan {
	tb.Helper()
	now := time.Now().UTC()
	plan := &domain.Plan{
		ID:              uuid.NewString(),
		UserID:          userID,
		PreferenceID:    preferenceID,
		Name:            "seeded plan",
		ProgramDuration: "8 weeks",
		StartDate:       now,
		EndDate:         now.AddDate(0, 0, 56),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := db.WithContext(ctx).Omit("WeeklySchedules").Create(plan).Error; err != nil {
		tb.Fatalf("seed plan: %v", err)
	}
	for i := 0; i < schedules; i++ {
		ws := domain.WeeklySchedule{ID: uuid.NewString(), PlanID: plan.ID, Position: i, Day: "Day", Focus: "Focus", CreatedAt: now}
		if err := db.WithContext(ctx).Omit("Exercises").Create(&ws).Error; err != nil {
			tb.Fatalf("seed schedule: %v", err)
		}
		for j := 0; j < exercises; j++ {
			ex := domain.Exercise{ID: uuid.NewString(), WeeklyScheduleID: ws.ID, PlanID: plan.ID, Position: j, Name: "Squat", Sets: "3", Reps: "10", CreatedAt: now}
			if err := db.WithContext(ctx).Create(&ex).Error; err != nil {
				tb.Fatalf("seed exercise: %v", err)
			}
			ws.Exercises = append(ws.Exercises, ex)
		}
		plan.WeeklySchedules = append(plan.WeeklySchedules, ws)
	}
	return plan
}
