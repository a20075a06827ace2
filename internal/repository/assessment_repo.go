package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ayurcare/internal/model"
)

// AssessmentRepo persists prakriti assessment attempts.
type AssessmentRepo interface {
	Create(ctx context.Context, assessment *model.Assessment) error
	GetByID(ctx context.Context, id string) (*model.Assessment, error)
	GetInProgressByPatient(ctx context.Context, patientID string) (*model.Assessment, error)
	GetCompletedByPatient(ctx context.Context, patientID string) ([]*model.Assessment, error)
	Update(ctx context.Context, assessment *model.Assessment) error
}

type assessmentRepo struct {
	collection *mongo.Collection
}

// NewAssessmentRepo creates a new assessment repository
func NewAssessmentRepo(db *mongo.Database) AssessmentRepo {
	return &assessmentRepo{
		collection: db.Collection("assessments"),
	}
}

func (r *assessmentRepo) Create(ctx context.Context, assessment *model.Assessment) error {
	now := time.Now()
	if assessment.CreatedAt.IsZero() {
		assessment.CreatedAt = now
	}
	assessment.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, assessment)
	if err != nil {
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		assessment.ID = oid.Hex()
	}

	return nil
}

func (r *assessmentRepo) GetByID(ctx context.Context, id string) (*model.Assessment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var assessment model.Assessment
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&assessment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &assessment, nil
}

func (r *assessmentRepo) GetInProgressByPatient(ctx context.Context, patientID string) (*model.Assessment, error) {
	var assessment model.Assessment
	err := r.collection.FindOne(ctx, bson.M{"patientId": patientID, "completed": false}).Decode(&assessment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &assessment, nil
}

func (r *assessmentRepo) GetCompletedByPatient(ctx context.Context, patientID string) ([]*model.Assessment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "completedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"patientId": patientID, "completed": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var assessments []*model.Assessment
	if err = cursor.All(ctx, &assessments); err != nil {
		return nil, err
	}

	return assessments, nil
}

func (r *assessmentRepo) Update(ctx context.Context, assessment *model.Assessment) error {
	oid, err := primitive.ObjectIDFromHex(assessment.ID)
	if err != nil {
		return err
	}

	assessment.UpdatedAt = time.Now()

	update := bson.M{"$set": bson.M{
		"responses":      assessment.Responses,
		"totals":         assessment.Totals,
		"completed":      assessment.Completed,
		"completedAt":    assessment.CompletedAt,
		"classification": assessment.Classification,
		"updatedAt":      assessment.UpdatedAt,
	}}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	return err
}
