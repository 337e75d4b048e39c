package rest

import (
	"net/http"
	"os"

	"appraisals/internal/app"
	"appraisals/internal/transport/rest/handler"
	"appraisals/internal/transport/ws"

	"github.com/gorilla/mux"
)

// NewRouter creates the API router with all endpoints
func NewRouter(a *app.App) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	assessmentHandler := handler.NewAssessmentHandler(a.AssessService)
	healthHandler := handler.NewHealthHandler(a.Bank, a.QuestionRepo)
	wsHandler := ws.NewHandler(a.SessionService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// Health check
	r.HandleFunc("/health", healthHandler.Check).Methods("GET")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/roles", assessmentHandler.Roles).Methods("GET", "OPTIONS")
	v1.HandleFunc("/assessment/start", assessmentHandler.Start).Methods("POST", "OPTIONS")
	v1.HandleFunc("/assessment/questions/{role}", assessmentHandler.QuestionsByRole).Methods("GET", "OPTIONS")
	v1.HandleFunc("/assessment/submit", assessmentHandler.Submit).Methods("POST", "OPTIONS")
	v1.HandleFunc("/stats/role/{role}", assessmentHandler.RoleStats).Methods("GET", "OPTIONS")

	// WebSocket route for the step-through quiz session
	v1.HandleFunc("/ws/session", wsHandler.Session).Methods("GET")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
