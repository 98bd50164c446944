package mongo

import (
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoPlanRepository stores plans, weekly schedules and exercises in three
// collections linked by parent id fields.
type mongoPlanRepository struct {
	db        *mongo.Database
	plans     *mongo.Collection
	schedules *mongo.Collection
	exercises *mongo.Collection
}

// NewMongoPlanRepository creates a new plan repository.
func NewMongoPlanRepository(db *mongo.Database) repository.PlanRepository {
	return &mongoPlanRepository{
		db:        db,
		plans:     db.Collection(planCollectionName),
		schedules: db.Collection(weeklyScheduleCollectionName),
		exercises: db.Collection(exerciseCollectionName),
	}
}

func (r *mongoPlanRepository) WithinTransaction(ctx context.Context, fn func(ctx context.Context, w repository.PlanWriter) error) error {
	if fn == nil {
		return nil
	}
	return withTransaction(ctx, r.db.Client(), func(sc mongo.SessionContext) error {
		return fn(sc, &mongoPlanWriter{repo: r})
	})
}

// GetByID retrieves a plan owned by userID, including its subtree.
func (r *mongoPlanRepository) GetByID(ctx context.Context, id, userID string) (*domain.Plan, error) {
	var plan domain.Plan
	if err := r.plans.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&plan); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	plans := []domain.Plan{plan}
	if err := r.loadSubtrees(ctx, plans); err != nil {
		return nil, err
	}
	return &plans[0], nil
}

// List retrieves the user's plans, newest first.
func (r *mongoPlanRepository) List(ctx context.Context, userID string, filter repository.PlanFilter) ([]domain.Plan, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}})
	cursor, err := r.plans.Find(ctx, planQuery(userID, filter), findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	plans := []domain.Plan{}
	if err = cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	if err := r.loadSubtrees(ctx, plans); err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *mongoPlanRepository) Delete(ctx context.Context, userID string, filter repository.PlanFilter) (int64, error) {
	if !filter.Scoped() {
		return 0, errors.New("plan delete requires a plan or preference id")
	}
	var deleted int64
	err := withTransaction(ctx, r.db.Client(), func(sc mongo.SessionContext) error {
		planIDs, err := findPlanIDs(sc, r.plans, planQuery(userID, filter))
		if err != nil {
			return err
		}
		if len(planIDs) == 0 {
			return repository.ErrNotFound
		}
		if err := deletePlanTrees(sc, r.db, planIDs); err != nil {
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

func planQuery(userID string, filter repository.PlanFilter) bson.M {
	query := bson.M{"userId": userID}
	if filter.PlanID != "" {
		query["_id"] = filter.PlanID
	}
	if filter.PreferenceID != "" {
		query["preferenceId"] = filter.PreferenceID
	}
	return query
}

// loadSubtrees attaches schedules and exercises to plans, in position order.
func (r *mongoPlanRepository) loadSubtrees(ctx context.Context, plans []domain.Plan) error {
	if len(plans) == 0 {
		return nil
	}
	planIDs := make([]string, len(plans))
	for i := range plans {
		planIDs[i] = plans[i].ID
	}
	byPosition := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})

	var schedules []domain.WeeklySchedule
	cursor, err := r.schedules.Find(ctx, bson.M{"planId": bson.M{"$in": planIDs}}, byPosition)
	if err != nil {
		return err
	}
	if err = cursor.All(ctx, &schedules); err != nil {
		return err
	}

	var exercises []domain.Exercise
	cursor, err = r.exercises.Find(ctx, bson.M{"planId": bson.M{"$in": planIDs}}, byPosition)
	if err != nil {
		return err
	}
	if err = cursor.All(ctx, &exercises); err != nil {
		return err
	}

	exercisesBySchedule := make(map[string][]domain.Exercise)
	for _, ex := range exercises {
		exercisesBySchedule[ex.WeeklyScheduleID] = append(exercisesBySchedule[ex.WeeklyScheduleID], ex)
	}
	schedulesByPlan := make(map[string][]domain.WeeklySchedule)
	for _, ws := range schedules {
		ws.Exercises = exercisesBySchedule[ws.ID]
		if ws.Exercises == nil {
			ws.Exercises = []domain.Exercise{}
		}
		schedulesByPlan[ws.PlanID] = append(schedulesByPlan[ws.PlanID], ws)
	}
	for i := range plans {
		plans[i].WeeklySchedules = schedulesByPlan[plans[i].ID]
		if plans[i].WeeklySchedules == nil {
			plans[i].WeeklySchedules = []domain.WeeklySchedule{}
		}
	}
	return nil
}

func findPlanIDs(ctx context.Context, plans *mongo.Collection, query bson.M) ([]string, error) {
	cursor, err := plans.Find(ctx, query, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID string `bson:"_id"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	return ids, nil
}

// deletePlanTrees removes plans with their schedules and exercises. Callers
// run it inside a transaction.
func deletePlanTrees(ctx context.Context, db *mongo.Database, planIDs []string) error {
	if len(planIDs) == 0 {
		return nil
	}
	in := bson.M{"$in": planIDs}
	if _, err := db.Collection(exerciseCollectionName).DeleteMany(ctx, bson.M{"planId": in}); err != nil {
		return err
	}
	if _, err := db.Collection(weeklyScheduleCollectionName).DeleteMany(ctx, bson.M{"planId": in}); err != nil {
		return err
	}
	_, err := db.Collection(planCollectionName).DeleteMany(ctx, bson.M{"_id": in})
	return err
}

// EnsurePlanIndexes creates the indexes for plans, schedules and exercises.
func EnsurePlanIndexes(ctx context.Context, db *mongo.Database) error {
	if _, err := db.Collection(planCollectionName).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "preferenceId", Value: 1}}},
	}); err != nil {
		return err
	}
	if _, err := db.Collection(weeklyScheduleCollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "planId", Value: 1}, {Key: "position", Value: 1}},
	}); err != nil {
		return err
	}
	_, err := db.Collection(exerciseCollectionName).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "planId", Value: 1}}},
		{Keys: bson.D{{Key: "weeklyScheduleId", Value: 1}, {Key: "position", Value: 1}}},
	})
	return err
}
