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

// AppointmentRepo persists appointments and answers the plan resolver's
// questions about a patient's completed visits.
type AppointmentRepo interface {
	Create(ctx context.Context, appointment *model.Appointment) error
	GetByID(ctx context.Context, id string) (*model.Appointment, error)
	GetByPatientID(ctx context.Context, patientID string) ([]*model.Appointment, error)
	// GetLatestCompletedByPatient returns the most recently dated completed
	// appointment, or nil when the patient has none.
	GetLatestCompletedByPatient(ctx context.Context, patientID string) (*model.Appointment, error)
	HasCompletedByPatient(ctx context.Context, patientID string) (bool, error)
	Update(ctx context.Context, appointment *model.Appointment) error
}

type appointmentRepo struct {
	collection *mongo.Collection
}

// NewAppointmentRepo creates a new appointment repository
func NewAppointmentRepo(db *mongo.Database) AppointmentRepo {
	return &appointmentRepo{
		collection: db.Collection("appointments"),
	}
}

func (r *appointmentRepo) Create(ctx context.Context, appointment *model.Appointment) error {
	now := time.Now()
	if appointment.CreatedAt.IsZero() {
		appointment.CreatedAt = now
	}
	appointment.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, appointment)
	if err != nil {
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		appointment.ID = oid.Hex()
	}

	return nil
}

func (r *appointmentRepo) GetByID(ctx context.Context, id string) (*model.Appointment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var appointment model.Appointment
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&appointment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &appointment, nil
}

func (r *appointmentRepo) GetByPatientID(ctx context.Context, patientID string) ([]*model.Appointment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"patientId": patientID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var appointments []*model.Appointment
	if err = cursor.All(ctx, &appointments); err != nil {
		return nil, err
	}

	return appointments, nil
}

func (r *appointmentRepo) GetLatestCompletedByPatient(ctx context.Context, patientID string) (*model.Appointment, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "date", Value: -1}})
	filter := bson.M{"patientId": patientID, "status": model.AppointmentCompleted}

	var appointment model.Appointment
	err := r.collection.FindOne(ctx, filter, opts).Decode(&appointment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &appointment, nil
}

func (r *appointmentRepo) HasCompletedByPatient(ctx context.Context, patientID string) (bool, error) {
	filter := bson.M{"patientId": patientID, "status": model.AppointmentCompleted}
	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *appointmentRepo) Update(ctx context.Context, appointment *model.Appointment) error {
	oid, err := primitive.ObjectIDFromHex(appointment.ID)
	if err != nil {
		return err
	}

	appointment.UpdatedAt = time.Now()

	update := bson.M{"$set": bson.M{
		"date":      appointment.Date,
		"reason":    appointment.Reason,
		"status":    appointment.Status,
		"dietPlan":  appointment.DietPlan,
		"updatedAt": appointment.UpdatedAt,
	}}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	return err
}
