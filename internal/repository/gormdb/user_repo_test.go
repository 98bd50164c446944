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

func TestUserCreateDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	repo := gormdb.NewUserRepository(db)

	if _, err := repo.Create(ctx, &domain.User{Nickname: "alice", Email: "a@x.io", PasswordHash: "h"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := repo.Create(ctx, &domain.User{Nickname: "alice2", Email: "a@x.io", PasswordHash: "h"})
	if !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("duplicate email err = %v", err)
	}
}

func TestUserUpdateAndLookup(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	repo := gormdb.NewUserRepository(db)

	id, err := repo.Create(ctx, &domain.User{Nickname: "alice", Email: "a@x.io", PasswordHash: "h"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	user, err := repo.GetByEmail(ctx, "a@x.io")
	if err != nil || user.ID != id {
		t.Fatalf("GetByEmail = %+v, %v", user, err)
	}
	user.IsVerified = true
	user.FirstName = "Alice"
	if err := repo.Update(ctx, user); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.IsVerified || got.FirstName != "Alice" {
		t.Fatalf("update not persisted: %+v", got)
	}
	if err := repo.Update(ctx, &domain.User{ID: "missing"}); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("update missing: %v", err)
	}
}

func TestUserDeleteCascades(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	alice := testutil.SeedUser(t, ctx, db, "alice")
	bob := testutil.SeedUser(t, ctx, db, "bob")
	pref := testutil.SeedPreference(t, ctx, db, alice.ID)
	testutil.SeedPlan(t, ctx, db, alice.ID, pref.ID, 2, 3)
	bobPref := testutil.SeedPreference(t, ctx, db, bob.ID)
	testutil.SeedPlan(t, ctx, db, bob.ID, bobPref.ID, 1, 1)
	if _, err := gormdb.NewProfileRepository(db).Create(ctx, &domain.Profile{UserID: alice.ID, Age: 30, Height: 170, Weight: 70}); err != nil {
		t.Fatalf("profile: %v", err)
	}

	if err := gormdb.NewUserRepository(db).Delete(ctx, alice.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	checks := []struct {
		name  string
		model interface{}
		want  int64
	}{
		{"users", &domain.User{}, 1},
		{"profiles", &domain.Profile{}, 0},
		{"preferences", &domain.Preference{}, 1},
		{"plans", &domain.Plan{}, 1},
		{"schedules", &domain.WeeklySchedule{}, 1},
		{"exercises", &domain.Exercise{}, 1},
	}
	for _, c := range checks {
		if got := testutil.Count(t, db, c.model); got != c.want {
			t.Errorf("%s = %d, want %d", c.name, got, c.want)
		}
	}
}
