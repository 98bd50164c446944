package service

import (
	"alcyxob/fitness-planner/internal/apperr"
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/generator"
	"alcyxob/fitness-planner/internal/logger"
	"alcyxob/fitness-planner/internal/planner"
	"alcyxob/fitness-planner/internal/repository"
	"context"
	"errors"
	"time"
)

// A program month is counted as four weeks.
const daysPerProgramMonth = 28

const defaultGenerationTimeout = 20 * time.Second

// PlanConfig tunes generation.
type PlanConfig struct {
	Model            string
	MaxTokens        int64
	Temperature      float64
	Timeout          time.Duration
	StructuredOutput bool
}

// GeneratedPlan is the result of one successful generation.
type GeneratedPlan struct {
	PlanID string                `json:"plan_id"`
	Plan   *planner.PlanDocument `json:"plan"`
}

type PlanService interface {
	// Generate builds a plan for one of the caller's preferences, stores it
	// with all schedules and exercises, and returns the decoded document.
	Generate(ctx context.Context, userID, preferenceID string) (*GeneratedPlan, error)
	List(ctx context.Context, userID string, filter repository.PlanFilter) ([]domain.Plan, error)
	Get(ctx context.Context, userID, planID string) (*domain.Plan, error)
	// Delete removes the plans matched by filter and returns how many were removed.
	Delete(ctx context.Context, userID string, filter repository.PlanFilter) (int64, error)
}

type planService struct {
	log      *logger.Logger
	prefRepo repository.PreferenceRepository
	planRepo repository.PlanRepository
	gen      generator.Generator
	cfg      PlanConfig
	now      func() time.Time
}

func NewPlanService(
	log *logger.Logger,
	prefRepo repository.PreferenceRepository,
	planRepo repository.PlanRepository,
	gen generator.Generator,
	cfg PlanConfig,
) PlanService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultGenerationTimeout
	}
	return &planService{
		log:      log.With("service", "PlanService"),
		prefRepo: prefRepo,
		planRepo: planRepo,
		gen:      gen,
		cfg:      cfg,
		now:      time.Now,
	}
}

func (s *planService) Generate(ctx context.Context, userID, preferenceID string) (*GeneratedPlan, error) {
	log := s.log.With("user_id", userID, "preference_id", preferenceID)

	pref, err := s.prefRepo.GetByID(ctx, preferenceID, userID)
	if err != nil {
		return nil, preferenceError(err)
	}

	prompt, err := planner.BuildPrompt(pref)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	started := time.Now()
	raw, err := s.generate(ctx, prompt)
	if err != nil {
		log.Warn("plan generation failed", "error", err, "duration_ms", time.Since(started).Milliseconds())
		return nil, err
	}

	doc, err := planner.Normalize(raw)
	if err != nil {
		var me *planner.MalformedError
		if errors.As(err, &me) {
			log.Warn("generated plan rejected", "detail", me.Detail)
			return nil, apperr.MalformedGeneration(me.Detail, err)
		}
		return nil, apperr.MalformedGeneration(err.Error(), err)
	}

	planID, err := s.persist(ctx, userID, pref, doc)
	if err != nil {
		log.Error("plan not saved", "error", err)
		return nil, apperr.Persistence(err)
	}

	log.Info("plan generated", "plan_id", planID,
		"schedules", len(doc.WeeklySchedule), "duration_ms", time.Since(started).Milliseconds())
	return &GeneratedPlan{PlanID: planID, Plan: doc}, nil
}

// generate makes the single generator call under the configured deadline.
func (s *planService) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	params := generator.Params{
		Model:       s.cfg.Model,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}
	if s.cfg.StructuredOutput {
		params.Schema = planner.Schema()
		params.SchemaName = "workout_plan"
	}

	raw, err := s.gen.Generate(ctx, prompt, params)
	switch {
	case err == nil:
		return raw, nil
	case errors.Is(err, generator.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return "", apperr.GenerationTimeout(err)
	default:
		return "", apperr.GenerationUpstream(err)
	}
}

// persist writes the plan, its schedules and their exercises in one
// transaction, each level in document order.
func (s *planService) persist(ctx context.Context, userID string, pref *domain.Preference, doc *planner.PlanDocument) (string, error) {
	start := startOfDay(s.now())
	plan := &domain.Plan{
		UserID:          userID,
		PreferenceID:    pref.ID,
		Name:            doc.Name,
		Description:     doc.Description,
		ProgramDuration: doc.ProgramDuration.String(),
		StartDate:       start,
		EndDate:         start.AddDate(0, 0, pref.ProgramMonths*daysPerProgramMonth),
		CreatedByAI:     true,
	}

	err := s.planRepo.WithinTransaction(ctx, func(ctx context.Context, w repository.PlanWriter) error {
		if err := w.CreatePlan(ctx, plan); err != nil {
			return err
		}
		for i, sd := range doc.WeeklySchedule {
			schedule := &domain.WeeklySchedule{
				PlanID:   plan.ID,
				Position: i,
				Day:      sd.Day.String(),
				Focus:    sd.Focus.String(),
			}
			if err := w.CreateWeeklySchedule(ctx, schedule); err != nil {
				return err
			}
			for j, ed := range sd.Exercises {
				exercise := &domain.Exercise{
					WeeklyScheduleID: schedule.ID,
					PlanID:           plan.ID,
					Position:         j,
					Name:             ed.Name,
					Sets:             ed.Sets.String(),
					Reps:             ed.Reps.String(),
					Rest:             ed.Rest.String(),
					Notes:            ed.Notes.String(),
				}
				if err := w.CreateExercise(ctx, exercise); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return plan.ID, nil
}

func (s *planService) List(ctx context.Context, userID string, filter repository.PlanFilter) ([]domain.Plan, error) {
	plans, err := s.planRepo.List(ctx, userID, filter)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return plans, nil
}

func (s *planService) Get(ctx context.Context, userID, planID string) (*domain.Plan, error) {
	plan, err := s.planRepo.GetByID(ctx, planID, userID)
	if err != nil {
		return nil, planError(err)
	}
	return plan, nil
}

func (s *planService) Delete(ctx context.Context, userID string, filter repository.PlanFilter) (int64, error) {
	if !filter.Scoped() {
		return 0, apperr.InvalidRequest("plan_id or preference_id is required")
	}
	n, err := s.planRepo.Delete(ctx, userID, filter)
	if err != nil {
		return 0, planError(err)
	}
	s.log.Info("plans deleted", "user_id", userID, "count", n)
	return n, nil
}

func planError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("plan")
	}
	return apperr.Internal(err)
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
