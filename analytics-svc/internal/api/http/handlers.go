package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"food-platform/analytics-svc/internal/service"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Handler struct {
	Analytics service.AnalyticsInterface
	Logger    *zap.Logger
}

func NewHandler(svc service.AnalyticsInterface, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Analytics: svc, Logger: logger}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.HandleFunc("/api/analytics/summary", h.getSummary).Methods("GET")
	r.HandleFunc("/api/analytics/top-today", h.getTopToday).Methods("GET")
	r.HandleFunc("/api/analytics/top", h.getTopForDay).Methods("GET")
	r.HandleFunc("/api/restaurants/{restaurantId}/analytics", h.getRestaurantStats).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "analytics-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getSummary(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Analytics.GlobalStats(r.Context())
	if err != nil {
		h.unavailable(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) getTopToday(w http.ResponseWriter, r *http.Request) {
	limit, ok := limitParam(w, r)
	if !ok {
		return
	}
	data, err := h.Analytics.TopToday(r.Context(), limit)
	if err != nil {
		h.unavailable(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (h *Handler) getTopForDay(w http.ResponseWriter, r *http.Request) {
	limit, ok := limitParam(w, r)
	if !ok {
		return
	}
	day, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "date must be YYYY-MM-DD")
		return
	}
	data, err := h.Analytics.TopRestaurants(r.Context(), day, limit)
	if err != nil {
		h.unavailable(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (h *Handler) getRestaurantStats(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := strconv.Atoi(mux.Vars(r)["restaurantId"])
	if err != nil || restaurantID <= 0 {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid restaurantId")
		return
	}
	stats, err := h.Analytics.RestaurantStats(r.Context(), restaurantID)
	if err != nil {
		h.unavailable(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) unavailable(w http.ResponseWriter, err error) {
	h.Logger.Error("analytics store unavailable", zap.Error(err))
	writeError(w, http.StatusServiceUnavailable, "analytics_unavailable", "analytics store unavailable")
}

func limitParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return service.DefaultLimit, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		writeError(w, http.StatusBadRequest, "bad_request", "limit must be a positive integer")
		return 0, false
	}
	return limit, true
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{"error": code, "message": message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
