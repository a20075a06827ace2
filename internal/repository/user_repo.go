package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"ayurcare/internal/model"
	"ayurcare/internal/prakriti"
)

// UserRepo persists users of all roles. Lookups return (nil, nil) when no
// document matches, so callers can map absence to their own error kinds.
type UserRepo interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	// UpdatePatientPlanState atomically replaces the embedded plan state.
	UpdatePatientPlanState(ctx context.Context, patientID string, state model.PlanState) error
	// UpdatePatientPrakriti atomically writes the classification onto the
	// patient profile and marks the assessment as done.
	UpdatePatientPrakriti(ctx context.Context, patientID string, c prakriti.Classification) error
}

type userRepo struct {
	collection *mongo.Collection
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *mongo.Database) UserRepo {
	return &userRepo{
		collection: db.Collection("users"),
	}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid.Hex()
	}

	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var user model.User
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepo) Update(ctx context.Context, user *model.User) error {
	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return err
	}

	user.UpdatedAt = time.Now()

	update := bson.M{"$set": bson.M{
		"name":      user.Name,
		"email":     user.Email,
		"role":      user.Role,
		"doctor":    user.Doctor,
		"patient":   user.Patient,
		"updatedAt": user.UpdatedAt,
	}}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	return err
}

func (r *userRepo) UpdatePatientPlanState(ctx context.Context, patientID string, state model.PlanState) error {
	oid, err := primitive.ObjectIDFromHex(patientID)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{
		"patient.planState": state,
		"updatedAt":         time.Now(),
	}}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid, "role": model.RolePatient}, update)
	return err
}

func (r *userRepo) UpdatePatientPrakriti(ctx context.Context, patientID string, c prakriti.Classification) error {
	oid, err := primitive.ObjectIDFromHex(patientID)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{
		"patient.prakriti":         c,
		"patient.prakritiAssessed": true,
		"updatedAt":                time.Now(),
	}}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid, "role": model.RolePatient}, update)
	return err
}
