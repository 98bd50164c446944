package service

import (
	"alcyxob/fitness-planner/internal/apperr"
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/repository"
	"alcyxob/fitness-planner/internal/repository/gormdb"
	"alcyxob/fitness-planner/internal/testutil"
	"context"
	"testing"
)

func TestPreferenceLifecycle(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	alice := testutil.SeedUser(t, ctx, db, "alice")
	bob := testutil.SeedUser(t, ctx, db, "bob")
	svc := NewPreferenceService(testutil.Logger(t), gormdb.NewPreferenceRepository(db))

	age := 30
	pref, err := svc.Create(ctx, alice.ID, PreferenceInput{
		Age:                &age,
		Goal:               " lose weight ",
		ExperienceLevel:    domain.ExperienceBeginner,
		WorkoutFrequency:   3,
		PreferredExercises: "running",
		ProgramMonths:      3,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if pref.Goal != "lose weight" {
		t.Errorf("goal not trimmed: %q", pref.Goal)
	}

	if _, err := svc.Create(ctx, alice.ID, PreferenceInput{ExperienceLevel: "guru"}); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("bad level err = %v", err)
	}
	if _, err := svc.Get(ctx, bob.ID, pref.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("cross-user get err = %v", err)
	}

	freq := 5
	level := domain.ExperienceProfessional
	updated, err := svc.Update(ctx, alice.ID, pref.ID, PreferencePatch{WorkoutFrequency: &freq, ExperienceLevel: &level})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.WorkoutFrequency != 5 || updated.Goal != "lose weight" || *updated.Age != 30 {
		t.Fatalf("partial update = %+v", updated)
	}
	if _, err := svc.Update(ctx, bob.ID, pref.ID, PreferencePatch{WorkoutFrequency: &freq}); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("cross-user update err = %v", err)
	}

	list, err := svc.List(ctx, alice.ID, repository.PreferenceFilter{ExperienceLevel: domain.ExperienceProfessional})
	if err != nil || len(list) != 1 {
		t.Fatalf("List = %v, %v", list, err)
	}

	if err := svc.Delete(ctx, bob.ID, pref.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("cross-user delete err = %v", err)
	}
	if err := svc.Delete(ctx, alice.ID, pref.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, alice.ID, pref.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("second delete err = %v", err)
	}
}

func TestProfileLifecycle(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, ctx, db, "alice")
	svc := NewProfileService(testutil.Logger(t), gormdb.NewProfileRepository(db))

	if _, err := svc.Get(ctx, user.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("Get before create err = %v", err)
	}
	if _, err := svc.Create(ctx, user.ID, ProfileInput{Age: 30, Height: 180, Weight: 80}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, user.ID, ProfileInput{Age: 31, Height: 180, Weight: 80}); !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("second create err = %v", err)
	}
	weight := 75.5
	p, err := svc.Update(ctx, user.ID, ProfilePatch{Weight: &weight})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if p.Weight != 75.5 || p.Age != 30 || p.Height != 180 {
		t.Fatalf("partial update = %+v", p)
	}
}
