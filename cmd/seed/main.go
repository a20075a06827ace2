package main

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"ayurcare/internal/config"
	"ayurcare/internal/model"
	"ayurcare/internal/repository"
)

// Seeds a demo doctor, a demo patient, and a scheduled appointment between
// them, for local development.
func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB)
	users := repository.NewUserRepo(db)
	appointments := repository.NewAppointmentRepo(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	now := time.Now()

	doctor := &model.User{
		Name:         "Dr. Meera Sharma",
		Email:        "meera.sharma@example.com",
		PasswordHash: string(hash),
		Role:         model.RoleDoctor,
		Doctor: &model.DoctorProfile{
			Specialization: "Ayurvedic Medicine",
			RegistrationNo: "AYU-2019-4471",
		},
	}
	if err := users.Create(ctx, doctor); err != nil {
		log.Fatalf("Failed to create doctor: %v", err)
	}
	log.Printf("Seeded doctor %s (%s)", doctor.Name, doctor.ID)

	patient := &model.User{
		Name:         "Arjun Patel",
		Email:        "arjun.patel@example.com",
		PasswordHash: string(hash),
		Role:         model.RolePatient,
		Patient: &model.PatientProfile{
			Gender: "male",
			PlanState: model.PlanState{
				Type:      model.PlanTypeNone,
				Visible:   false,
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
	}
	if err := users.Create(ctx, patient); err != nil {
		log.Fatalf("Failed to create patient: %v", err)
	}
	log.Printf("Seeded patient %s (%s)", patient.Name, patient.ID)

	appointment := &model.Appointment{
		BookingNumber: "apt_seed0001",
		PatientID:     patient.ID,
		DoctorID:      doctor.ID,
		Date:          now.Add(72 * time.Hour),
		Reason:        "Initial consultation",
		Status:        model.AppointmentScheduled,
	}
	if err := appointments.Create(ctx, appointment); err != nil {
		log.Fatalf("Failed to create appointment: %v", err)
	}
	log.Printf("Seeded appointment %s on %s", appointment.BookingNumber, appointment.Date.Format(time.RFC3339))

	log.Println("Seed complete")
}
