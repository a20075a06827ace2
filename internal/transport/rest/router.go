package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"ayurcare/internal/service"
	"ayurcare/internal/transport/rest/handler"
	"ayurcare/internal/transport/rest/middleware"
	"ayurcare/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService        *service.AuthService
	AssessmentService  *service.AssessmentService
	PlanService        *service.PlanService
	AppointmentService *service.AppointmentService
	WSHub              *ws.Hub
	Logger             zerolog.Logger
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	questionHandler := handler.NewQuestionHandler()
	assessmentHandler := handler.NewAssessmentHandler(c.AssessmentService)
	planHandler := handler.NewPlanHandler(c.PlanService)
	appointmentHandler := handler.NewAppointmentHandler(c.AppointmentService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)
	r.Use(middleware.Logger(c.Logger))

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/auth/register", authHandler.Register).Methods("POST", "OPTIONS")
	v1.HandleFunc("/questions", questionHandler.List).Methods("GET", "OPTIONS")

	// WebSocket route (token in query param)
	v1.HandleFunc("/ws/patients/{patientId}", wsHandler.PatientWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Patient routes (require patient auth)
	patientRoutes := v1.NewRoute().Subrouter()
	patientRoutes.Use(authMW.RequirePatient)

	patientRoutes.HandleFunc("/assessments", assessmentHandler.Start).Methods("POST", "OPTIONS")
	patientRoutes.HandleFunc("/assessments/history", assessmentHandler.History).Methods("GET", "OPTIONS")
	patientRoutes.HandleFunc("/assessments/{assessmentId}/answers", assessmentHandler.SubmitAnswer).Methods("POST", "OPTIONS")
	patientRoutes.HandleFunc("/assessments/{assessmentId}/progress", assessmentHandler.GetProgress).Methods("GET", "OPTIONS")
	patientRoutes.HandleFunc("/plans/current", planHandler.GetCurrent).Methods("GET", "OPTIONS")
	patientRoutes.HandleFunc("/plans/ai", planHandler.SetAIPlan).Methods("POST", "OPTIONS")
	patientRoutes.HandleFunc("/plans/reset", planHandler.Reset).Methods("POST", "OPTIONS")
	patientRoutes.HandleFunc("/appointments", appointmentHandler.Book).Methods("POST", "OPTIONS")
	patientRoutes.HandleFunc("/appointments", appointmentHandler.List).Methods("GET", "OPTIONS")
	patientRoutes.HandleFunc("/appointments/{appointmentId}/cancel", appointmentHandler.Cancel).Methods("POST", "OPTIONS")

	// Doctor routes (require doctor auth)
	doctorRoutes := v1.NewRoute().Subrouter()
	doctorRoutes.Use(authMW.RequireDoctor)

	doctorRoutes.HandleFunc("/appointments/{appointmentId}/complete", appointmentHandler.Complete).Methods("POST", "OPTIONS")
	doctorRoutes.HandleFunc("/patients/{patientId}/plans/current", planHandler.GetCurrentForPatient).Methods("GET", "OPTIONS")
	doctorRoutes.HandleFunc("/patients/{patientId}/plans/doctor", planHandler.AssignDoctorPlan).Methods("POST", "OPTIONS")
	doctorRoutes.HandleFunc("/patients/{patientId}/plans/meal-plan", planHandler.AssignMealPlan).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
