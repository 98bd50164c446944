package repository

import (
	"alcyxob/fitness-planner/internal/domain"
	"context"
)

// Error constants for repository layer
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (string, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// Update writes the mutable fields: names, password hash, verification flag, avatar key.
	Update(ctx context.Context, user *domain.User) error
	// Delete removes the user along with profile, preferences and plans.
	Delete(ctx context.Context, id string) error
}

// ProfileRepository stores the single profile of a user.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) (string, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
}

// PreferenceFilter narrows a preference listing. Zero fields do not filter.
type PreferenceFilter struct {
	Age                *int
	Goal               string
	ExperienceLevel    domain.ExperienceLevel
	Gender             string
	PreferredExercises string
}

// PreferenceRepository defines preference storage. Every lookup is scoped by
// the owning user; a preference of another user is reported as ErrNotFound.
type PreferenceRepository interface {
	Create(ctx context.Context, pref *domain.Preference) (string, error)
	GetByID(ctx context.Context, id, userID string) (*domain.Preference, error)
	List(ctx context.Context, userID string, filter PreferenceFilter) ([]domain.Preference, error)
	Update(ctx context.Context, pref *domain.Preference) error
	// Delete removes the preference and every plan generated from it.
	Delete(ctx context.Context, id, userID string) error
}

// PlanFilter scopes plan queries below the owning user.
type PlanFilter struct {
	PlanID       string
	PreferenceID string
}

// Scoped reports whether the filter names a plan or a preference.
func (f PlanFilter) Scoped() bool {
	return f.PlanID != "" || f.PreferenceID != ""
}

// PlanWriter creates the rows of one plan. It is only valid inside
// PlanRepository.WithinTransaction. Each Create fills in the ID and timestamps.
type PlanWriter interface {
	CreatePlan(ctx context.Context, plan *domain.Plan) error
	CreateWeeklySchedule(ctx context.Context, schedule *domain.WeeklySchedule) error
	CreateExercise(ctx context.Context, exercise *domain.Exercise) error
}

// PlanRepository defines plan storage.
type PlanRepository interface {
	// WithinTransaction runs fn in one transaction. Any error returned by fn
	// rolls back everything written through the PlanWriter.
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, w PlanWriter) error) error
	// GetByID returns the plan with its schedules and exercises in stored order.
	GetByID(ctx context.Context, id, userID string) (*domain.Plan, error)
	// List returns the user's plans newest first, ties broken by id.
	List(ctx context.Context, userID string, filter PlanFilter) ([]domain.Plan, error)
	// Delete removes the matching plans with their subtrees and returns how
	// many plans were removed. ErrNotFound when nothing matched.
	Delete(ctx context.Context, userID string, filter PlanFilter) (int64, error)
}
