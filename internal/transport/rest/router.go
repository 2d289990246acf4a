package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"vetsupport/internal/service"
	"vetsupport/internal/transport/rest/handler"
	"vetsupport/internal/transport/rest/middleware"
	"vetsupport/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService       *service.AuthService
	AssessmentService *service.AssessmentService
	CompanionService  *service.CompanionService
	CrisisService     *service.CrisisService
	ProfileService    *service.ProfileService
	WSHub             *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	assessmentHandler := handler.NewAssessmentHandler(c.AssessmentService)
	chatHandler := handler.NewChatHandler(c.CompanionService)
	crisisHandler := handler.NewCrisisHandler(c.CrisisService)
	profileHandler := handler.NewProfileHandler(c.ProfileService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes. Crisis resources stay public so the support screen
	// works without a login.
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/crisis/resources", crisisHandler.Resources).Methods("GET", "OPTIONS")
	v1.HandleFunc("/assessments/instruments", assessmentHandler.Instruments).Methods("GET", "OPTIONS")

	// WebSocket route (token in query param)
	v1.HandleFunc("/ws/veteran", wsHandler.VeteranWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Veteran routes (require veteran auth)
	vetRoutes := v1.NewRoute().Subrouter()
	vetRoutes.Use(authMW.RequireVeteran)

	vetRoutes.HandleFunc("/assessments", assessmentHandler.Submit).Methods("POST", "OPTIONS")
	vetRoutes.HandleFunc("/assessments", assessmentHandler.History).Methods("GET", "OPTIONS")

	vetRoutes.HandleFunc("/chat/session", chatHandler.StartSession).Methods("POST", "OPTIONS")
	vetRoutes.HandleFunc("/chat/session", chatHandler.GetSession).Methods("GET", "OPTIONS")
	vetRoutes.HandleFunc("/chat/session", chatHandler.EndSession).Methods("DELETE", "OPTIONS")
	vetRoutes.HandleFunc("/chat/messages", chatHandler.SendMessage).Methods("POST", "OPTIONS")
	vetRoutes.HandleFunc("/chat/messages", chatHandler.History).Methods("GET", "OPTIONS")

	vetRoutes.HandleFunc("/crisis/state", crisisHandler.GetState).Methods("GET", "OPTIONS")
	vetRoutes.HandleFunc("/crisis/alerts/{alertId}/ack", crisisHandler.Acknowledge).Methods("POST", "OPTIONS")
	vetRoutes.HandleFunc("/crisis/overlay/dismiss", crisisHandler.DismissOverlay).Methods("POST", "OPTIONS")

	vetRoutes.HandleFunc("/profile", profileHandler.Get).Methods("GET", "OPTIONS")
	vetRoutes.HandleFunc("/profile", profileHandler.Update).Methods("PUT", "OPTIONS")
	vetRoutes.HandleFunc("/profile/onboarding", profileHandler.CompleteOnboarding).Methods("POST", "OPTIONS")

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
