package gormdb_test

import (
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/repository"
	"alcyxob/fitness-planner/internal/repository/gormdb"
	"alcyxob/fitness-planner/internal/testutil"
	"context"
	"errors"
	"testing"
)

func TestPreferenceListFilters(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	user := testutil.SeedUser(t, ctx, db, "alice")
	other := testutil.SeedUser(t, ctx, db, "bob")
	repo := gormdb.NewPreferenceRepository(db)

	age := 30
	prefs := []*domain.Preference{
		{UserID: user.ID, Goal: "lose weight", ExperienceLevel: domain.ExperienceBeginner, WorkoutFrequency: 3, PreferredExercises: "cardio", ProgramMonths: 1, Age: &age},
		{UserID: user.ID, Goal: "build muscle", ExperienceLevel: domain.ExperienceProfessional, WorkoutFrequency: 5, PreferredExercises: "weights", ProgramMonths: 6, Gender: "female"},
		{UserID: other.ID, Goal: "lose weight", ExperienceLevel: domain.ExperienceBeginner, WorkoutFrequency: 2, PreferredExercises: "cardio", ProgramMonths: 1},
	}
	for _, p := range prefs {
		if _, err := repo.Create(ctx, p); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	cases := []struct {
		name   string
		filter repository.PreferenceFilter
		want   int
	}{
		{"all", repository.PreferenceFilter{}, 2},
		{"goal", repository.PreferenceFilter{Goal: "lose weight"}, 1},
		{"level", repository.PreferenceFilter{ExperienceLevel: domain.ExperienceProfessional}, 1},
		{"gender", repository.PreferenceFilter{Gender: "female"}, 1},
		{"age", repository.PreferenceFilter{Age: &age}, 1},
		{"style", repository.PreferenceFilter{PreferredExercises: "yoga"}, 0},
	}
	for _, tc := range cases {
		got, err := repo.List(ctx, user.ID, tc.filter)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if len(got) != tc.want {
			t.Errorf("%s: got %d, want %d", tc.name, len(got), tc.want)
		}
	}
}

func TestPreferenceScopedByOwner(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	alice := testutil.SeedUser(t, ctx, db, "alice")
	bob := testutil.SeedUser(t, ctx, db, "bob")
	pref := testutil.SeedPreference(t, ctx, db, alice.ID)
	repo := gormdb.NewPreferenceRepository(db)

	if _, err := repo.GetByID(ctx, pref.ID, bob.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("cross-user GetByID: %v", err)
	}
	stolen := *pref
	stolen.UserID = bob.ID
	stolen.Goal = "hijacked"
	if err := repo.Update(ctx, &stolen); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("cross-user Update: %v", err)
	}
	if err := repo.Delete(ctx, pref.ID, bob.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("cross-user Delete: %v", err)
	}
	got, err := repo.GetByID(ctx, pref.ID, alice.ID)
	if err != nil || got.Goal != pref.Goal {
		t.Fatalf("owner view changed: %+v, %v", got, err)
	}
}

func TestPreferenceDeleteCascadesPlans(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	user := testutil.SeedUser(t, ctx, db, "alice")
	pref := testutil.SeedPreference(t, ctx, db, user.ID)
	keep := testutil.SeedPreference(t, ctx, db, user.ID)
	testutil.SeedPlan(t, ctx, db, user.ID, pref.ID, 2, 3)
	kept := testutil.SeedPlan(t, ctx, db, user.ID, keep.ID, 1, 1)

	if err := gormdb.NewPreferenceRepository(db).Delete(ctx, pref.ID, user.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if n := testutil.Count(t, db, &domain.Plan{}); n != 1 {
		t.Fatalf("plans = %d, want 1", n)
	}
	if n := testutil.Count(t, db, &domain.Exercise{}); n != 1 {
		t.Fatalf("exercises = %d, want 1", n)
	}
	if _, err := gormdb.NewPlanRepository(db).GetByID(ctx, kept.ID, user.ID); err != nil {
		t.Fatalf("unrelated plan removed: %v", err)
	}
}
