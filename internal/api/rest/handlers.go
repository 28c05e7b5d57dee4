package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/service"
	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/store"
	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/store/repository"
)

// SessionHeader carries the login token on authenticated requests.
const SessionHeader = "X-Session-Token"

// Handler contains dependencies for HTTP handlers
type Handler struct {
	db               *store.Database
	log              *logrus.Logger
	analyticsService *service.AnalyticsService
	userService      *service.UserService
}

// NewHandler creates a new handler
func NewHandler(db *store.Database, log *logrus.Logger) *Handler {
	return &Handler{
		db:               db,
		log:              log,
		analyticsService: service.NewAnalyticsService(db),
		userService:      service.NewUserService(db),
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK
	if err := h.db.HealthCheck(); err != nil {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	respondJSON(w, code, map[string]string{
		"status":  status,
		"service": "nba-stats-hub",
	})
}

// GetTopPlayersByStat returns the top-N players by an advanced stat
func (h *Handler) GetTopPlayersByStat(w http.ResponseWriter, r *http.Request) {
	statAbbr := r.URL.Query().Get("stat")
	limit := queryLimit(r, 5)

	ranked, err := h.analyticsService.TopPlayersByStat(r.Context(), statAbbr, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch top players", err)
		return
	}

	respondJSON(w, http.StatusOK, ranked)
}

// GetMostInjuredPlayers returns the players with the most injury events
func (h *Handler) GetMostInjuredPlayers(w http.ResponseWriter, r *http.Request) {
	freqs, err := h.analyticsService.MostInjuredPlayers(r.Context(), queryLimit(r, 5))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch injured players", err)
		return
	}

	respondJSON(w, http.StatusOK, freqs)
}

// GetTopCities returns cities ranked by median household income
func (h *Handler) GetTopCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.analyticsService.TopCitiesByIncome(r.Context(), queryLimit(r, 10))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch cities", err)
		return
	}

	respondJSON(w, http.StatusOK, cities)
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new user account
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	userID, err := h.userService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			respondError(w, http.StatusConflict, "This email is already registered", nil)
			return
		}
		respondError(w, http.StatusBadRequest, "Registration failed", err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"user_id": userID,
		"email":   req.Email,
	})
}

// Login verifies credentials and returns a session token
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	token, err := h.userService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "Invalid email or password", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "Login failed", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Logout drops the caller's session
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.userService.Logout(r.Header.Get(SessionHeader))
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

type predictionRequest struct {
	PlayerName      string `json:"player_name"`
	PredictionType  string `json:"prediction_type"`
	PredictionValue string `json:"prediction_value"`
}

// SubmitPrediction stores a prediction for the logged-in user
func (h *Handler) SubmitPrediction(w http.ResponseWriter, r *http.Request) {
	var req predictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	prediction, err := h.userService.SubmitPrediction(
		r.Context(), r.Header.Get(SessionHeader),
		req.PlayerName, req.PredictionType, req.PredictionValue,
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotLoggedIn):
			respondError(w, http.StatusUnauthorized, "You must be logged in to submit a prediction", nil)
		case errors.Is(err, service.ErrPlayerNotFound):
			respondError(w, http.StatusNotFound, "Player not found", nil)
		default:
			respondError(w, http.StatusBadRequest, "Prediction submission failed", err)
		}
		return
	}

	respondJSON(w, http.StatusCreated, prediction)
}

// GetPredictions returns the logged-in user's predictions
func (h *Handler) GetPredictions(w http.ResponseWriter, r *http.Request) {
	preds, err := h.userService.Predictions(r.Context(), r.Header.Get(SessionHeader))
	if err != nil {
		if errors.Is(err, service.ErrNotLoggedIn) {
			respondError(w, http.StatusUnauthorized, "You must be logged in", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to fetch predictions", err)
		return
	}

	respondJSON(w, http.StatusOK, preds)
}

// queryLimit parses the limit query parameter, falling back to a default.
func queryLimit(r *http.Request, def int) int {
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if l, err := strconv.Atoi(raw); err == nil && l > 0 && l <= 100 {
			return l
		}
	}
	return def
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
