package gateway

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const RequestIDHeader = "X-Request-ID"

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	UserSvcURL       string
	RestaurantSvcURL string
	OrderSvcURL      string
	AnalyticsSvcURL  string
}

type Gateway struct {
	config Config
	client HTTPClient
	logger *zap.Logger
}

func NewGateway(config Config, client HTTPClient, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{
		config: config,
		client: client,
		logger: logger,
	}
}

func (g *Gateway) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"status":  "healthy",
		"service": "api-gateway",
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": code, "message": message})
}

// hopHeaders are connection-scoped and must not be forwarded.
var hopHeaders = map[string]bool{
	"Connection":          true,
	"Keep-Alive":          true,
	"Proxy-Authenticate":  true,
	"Proxy-Authorization": true,
	"Te":                  true,
	"Trailer":             true,
	"Transfer-Encoding":   true,
	"Upgrade":             true,
}

func (g *Gateway) ProxyRequest(w http.ResponseWriter, r *http.Request, targetURL string) {
	requestID := r.Header.Get(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	logger := g.logger.With(
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("upstream", targetURL),
	)

	url := targetURL + r.URL.Path
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, url, r.Body)
	if err != nil {
		logger.Error("failed to build upstream request", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	for k, v := range r.Header {
		if !hopHeaders[k] {
			req.Header[k] = v
		}
	}
	req.Header.Set(RequestIDHeader, requestID)

	resp, err := g.client.Do(req)
	if err != nil {
		logger.Error("upstream unreachable", zap.Error(err))
		writeError(w, http.StatusBadGateway, "upstream_unavailable", "upstream service unavailable")
		return
	}
	defer resp.Body.Close()

	for k, v := range resp.Header {
		if !hopHeaders[k] {
			w.Header()[k] = v
		}
	}
	w.Header().Set(RequestIDHeader, requestID)
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		logger.Warn("failed to copy upstream response", zap.Error(err))
	}
	logger.Debug("proxied", zap.Int("status", resp.StatusCode))
}

// Upstream picks the service that owns path, or "" when none does.
func (g *Gateway) Upstream(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) < 2 || segments[0] != "api" {
		return ""
	}

	switch segments[1] {
	case "auth":
		return g.config.UserSvcURL
	case "analytics":
		return g.config.AnalyticsSvcURL
	case "orders":
		return g.config.OrderSvcURL
	case "menu-items":
		return g.config.RestaurantSvcURL
	case "users":
		// /api/users/{id}/cart... and /api/users/{id}/orders belong to orders.
		if len(segments) >= 4 && (segments[3] == "cart" || segments[3] == "orders") {
			return g.config.OrderSvcURL
		}
		return g.config.UserSvcURL
	case "restaurants":
		if len(segments) >= 4 {
			switch segments[3] {
			case "orders":
				return g.config.OrderSvcURL
			case "analytics":
				return g.config.AnalyticsSvcURL
			}
		}
		return g.config.RestaurantSvcURL
	}
	return ""
}

func (g *Gateway) RouteHandler(w http.ResponseWriter, r *http.Request) {
	target := g.Upstream(r.URL.Path)
	if target == "" {
		g.logger.Info("unmatched api route", zap.String("path", r.URL.Path))
		writeError(w, http.StatusNotFound, "not_found", "API route not found")
		return
	}
	g.ProxyRequest(w, r, target)
}

func (g *Gateway) SetupRoutes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", g.HealthCheck).Methods("GET")
	r.PathPrefix("/api/").HandlerFunc(g.RouteHandler)
	return r
}
