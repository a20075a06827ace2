package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"ayurcare/internal/model"
)

// MealPlanRepo persists structured meal-plan documents. The plan resolver
// tolerates stale references, so GetByID returns (nil, nil) for missing ids.
type MealPlanRepo interface {
	Create(ctx context.Context, plan *model.MealPlan) error
	GetByID(ctx context.Context, id string) (*model.MealPlan, error)
	GetByPatientID(ctx context.Context, patientID string) ([]*model.MealPlan, error)
	Update(ctx context.Context, plan *model.MealPlan) error
	Delete(ctx context.Context, id string) error
}

type mealPlanRepo struct {
	collection *mongo.Collection
}

// NewMealPlanRepo creates a new meal plan repository
func NewMealPlanRepo(db *mongo.Database) MealPlanRepo {
	return &mealPlanRepo{
		collection: db.Collection("meal_plans"),
	}
}

func (r *mealPlanRepo) Create(ctx context.Context, plan *model.MealPlan) error {
	now := time.Now()
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = now
	}
	plan.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, plan)
	if err != nil {
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		plan.ID = oid.Hex()
	}

	return nil
}

func (r *mealPlanRepo) GetByID(ctx context.Context, id string) (*model.MealPlan, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var plan model.MealPlan
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&plan)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &plan, nil
}

func (r *mealPlanRepo) GetByPatientID(ctx context.Context, patientID string) ([]*model.MealPlan, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"patientId": patientID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var plans []*model.MealPlan
	if err = cursor.All(ctx, &plans); err != nil {
		return nil, err
	}

	return plans, nil
}

func (r *mealPlanRepo) Update(ctx context.Context, plan *model.MealPlan) error {
	oid, err := primitive.ObjectIDFromHex(plan.ID)
	if err != nil {
		return err
	}

	plan.UpdatedAt = time.Now()

	update := bson.M{"$set": bson.M{
		"title":     plan.Title,
		"meals":     plan.Meals,
		"updatedAt": plan.UpdatedAt,
	}}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	return err
}

func (r *mealPlanRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
