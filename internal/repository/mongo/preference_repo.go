package mongo

import (
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/repository"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoPreferenceRepository struct {
	db         *mongo.Database
	collection *mongo.Collection
}

func NewMongoPreferenceRepository(db *mongo.Database) repository.PreferenceRepository {
	return &mongoPreferenceRepository{
		db:         db,
		collection: db.Collection(preferenceCollectionName),
	}
}

func (r *mongoPreferenceRepository) Create(ctx context.Context, pref *domain.Preference) (string, error) {
	pref.ID = uuid.NewString()
	now := time.Now().UTC()
	pref.CreatedAt = now
	pref.UpdatedAt = now
	if _, err := r.collection.InsertOne(ctx, pref); err != nil {
		return "", err
	}
	return pref.ID, nil
}

func (r *mongoPreferenceRepository) GetByID(ctx context.Context, id, userID string) (*domain.Preference, error) {
	var pref domain.Preference
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&pref)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &pref, nil
}

func (r *mongoPreferenceRepository) List(ctx context.Context, userID string, filter repository.PreferenceFilter) ([]domain.Preference, error) {
	query := bson.M{"userId": userID}
	if filter.Age != nil {
		query["age"] = *filter.Age
	}
	if filter.Goal != "" {
		query["goal"] = filter.Goal
	}
	if filter.ExperienceLevel != "" {
		query["experienceLevel"] = filter.ExperienceLevel
	}
	if filter.Gender != "" {
		query["gender"] = filter.Gender
	}
	if filter.PreferredExercises != "" {
		query["preferredExercises"] = filter.PreferredExercises
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	prefs := []domain.Preference{}
	if err = cursor.All(ctx, &prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}

func (r *mongoPreferenceRepository) Update(ctx context.Context, pref *domain.Preference) error {
	pref.UpdatedAt = time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"gender":             pref.Gender,
		"age":                pref.Age,
		"height":             pref.Height,
		"weight":             pref.Weight,
		"goal":               pref.Goal,
		"experienceLevel":    pref.ExperienceLevel,
		"workoutFrequency":   pref.WorkoutFrequency,
		"preferredExercises": pref.PreferredExercises,
		"programMonths":      pref.ProgramMonths,
		"updatedAt":          pref.UpdatedAt,
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": pref.ID, "userId": pref.UserID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the preference and the plans generated from it.
func (r *mongoPreferenceRepository) Delete(ctx context.Context, id, userID string) error {
	return withTransaction(ctx, r.db.Client(), func(sc mongo.SessionContext) error {
		planIDs, err := findPlanIDs(sc, r.db.Collection(planCollectionName), bson.M{"preferenceId": id, "userId": userID})
		if err != nil {
			return err
		}
		if err := deletePlanTrees(sc, r.db, planIDs); err != nil {
			return err
		}
		result, err := r.collection.DeleteOne(sc, bson.M{"_id": id, "userId": userID})
		if err != nil {
			return err
		}
		if result.DeletedCount == 0 {
			return repository.ErrNotFound
		}
		return nil
	})
}

func EnsurePreferenceIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(preferenceCollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return err
}
