package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"travelhealth/internal/service"
	"travelhealth/internal/transport/rest/handler"
	"travelhealth/internal/transport/rest/middleware"
	"travelhealth/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService        *service.AuthService
	InterviewService   *service.InterviewService
	SubmissionService  *service.SubmissionService
	TripService        *service.TripService
	ProfileService     *service.ProfileService
	TranslationService *service.TranslationService
	WSHub              *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	interviewHandler := handler.NewInterviewHandler(c.InterviewService, c.SubmissionService)
	tripHandler := handler.NewTripHandler(c.TripService)
	profileHandler := handler.NewProfileHandler(c.ProfileService)
	translateHandler := handler.NewTranslateHandler(c.TranslationService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/register", authHandler.Register).Methods("POST", "OPTIONS")
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// WebSocket route (public with token in query param)
	v1.HandleFunc("/ws", wsHandler.UserWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Authenticated routes
	userRoutes := v1.NewRoute().Subrouter()
	userRoutes.Use(authMW.RequireUser)

	userRoutes.HandleFunc("/interview/current", interviewHandler.Current).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/interview/answers", interviewHandler.Answer).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/interview/submission", interviewHandler.Resubmit).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/interview/progress", interviewHandler.Progress).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/interview/categories", interviewHandler.Categories).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/submissions/latest", interviewHandler.LatestSubmission).Methods("GET", "OPTIONS")

	userRoutes.HandleFunc("/trips", tripHandler.Analyze).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/trips", tripHandler.History).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/trips/cities", tripHandler.Cities).Methods("GET", "OPTIONS")

	userRoutes.HandleFunc("/profile", profileHandler.Get).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/profile", profileHandler.Update).Methods("PUT", "OPTIONS")
	userRoutes.HandleFunc("/vaccinations", profileHandler.ListVaccinations).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/vaccinations", profileHandler.AddVaccination).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/vaccinations/{id}", profileHandler.DeleteVaccination).Methods("DELETE", "OPTIONS")

	userRoutes.HandleFunc("/translate", translateHandler.Translate).Methods("POST", "OPTIONS")

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
