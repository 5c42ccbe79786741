// Package api exposes the parsed configuration and its diagnostics over a
// small HTTP status interface.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/eworm-de/keepalived/internal/config"
	"github.com/eworm-de/keepalived/internal/notify"
)

// ConfigProvider supplies the current configuration snapshot and the
// diagnostics of the pass that produced it.
type ConfigProvider interface {
	Snapshot() (*config.GlobalConfig, []string)
}

// DataResponse wraps successful responses with a "data" field.
type DataResponse struct {
	Data interface{} `json:"data"`
}

// DiagnosticsResponse returns the parse diagnostics of the active
// configuration.
type DiagnosticsResponse struct {
	Count       int      `json:"count"`
	Diagnostics []string `json:"diagnostics"`
}

// NotifyPreviewResponse shows the alert mail that would be sent for a
// given state transition under the active configuration.
type NotifyPreviewResponse struct {
	WouldSend bool   `json:"would_send"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// HealthResponse returns the result of the health check.
type HealthResponse struct {
	Healthy bool              `json:"healthy"`
	Checks  map[string]string `json:"checks"`
}

// Server represents the status API server.
type Server struct {
	provider   ConfigProvider
	httpServer *http.Server
}

// NewServer creates a status API server bound to the given address.
func NewServer(bindAddr string, provider ConfigProvider) *Server {
	s := &Server{provider: provider}

	s.httpServer = &http.Server{
		Addr:         bindAddr,
		Handler:      NewRouter(provider),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// NewRouter creates the HTTP router with all API endpoints.
func NewRouter(provider ConfigProvider) http.Handler {
	r := chi.NewRouter()

	r.Use(Recovery)
	r.Use(Logger)

	h := &handler{provider: provider}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/config", h.GetConfig)
		r.Get("/config/toml", h.GetConfigTOML)
		r.Get("/diagnostics", h.GetDiagnostics)
		r.Get("/health", h.GetHealth)
		r.Get("/notify/preview", h.GetNotifyPreview)
	})

	return r
}

// ListenAndServe runs the server until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errs := make(chan error, 1)
	go func() {
		errs <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

type handler struct {
	provider ConfigProvider
}

// GetConfig returns the active configuration as JSON.
// GET /api/v1/config
func (h *handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, _ := h.provider.Snapshot()
	if cfg == nil {
		WriteNotFound(w, "configuration")
		return
	}
	writeJSON(w, DataResponse{Data: cfg})
}

// GetConfigTOML returns the active configuration rendered as TOML.
// GET /api/v1/config/toml
func (h *handler) GetConfigTOML(w http.ResponseWriter, r *http.Request) {
	cfg, _ := h.provider.Snapshot()
	if cfg == nil {
		WriteNotFound(w, "configuration")
		return
	}
	buf, err := cfg.SerializeConfig()
	if err != nil {
		WriteInternalError(w, "Failed to serialize configuration: "+err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/toml")
	w.Write(buf.Bytes())
}

// GetDiagnostics returns the diagnostics of the last configuration pass.
// GET /api/v1/diagnostics
func (h *handler) GetDiagnostics(w http.ResponseWriter, r *http.Request) {
	_, diags := h.provider.Snapshot()
	writeJSON(w, DiagnosticsResponse{Count: len(diags), Diagnostics: diags})
}

// GetHealth reports configuration validity.
// GET /api/v1/health
func (h *handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	cfg, diags := h.provider.Snapshot()

	response := HealthResponse{Healthy: true, Checks: make(map[string]string)}

	if cfg == nil {
		response.Healthy = false
		response.Checks["config"] = "no configuration loaded"
		writeJSON(w, response)
		return
	}

	if err := cfg.ValidateConfig(); err != nil {
		response.Healthy = false
		response.Checks["config_validation"] = err.Error()
	} else {
		response.Checks["config_validation"] = "ok"
	}

	if len(diags) > 0 {
		response.Checks["parse_diagnostics"] = "configuration parsed with diagnostics"
	} else {
		response.Checks["parse_diagnostics"] = "ok"
	}

	writeJSON(w, response)
}

// GetNotifyPreview renders the alert mail for a hypothetical state
// transition, so operators can inspect what smtp_alert would produce.
// GET /api/v1/notify/preview?element=NAME&state=STATE
func (h *handler) GetNotifyPreview(w http.ResponseWriter, r *http.Request) {
	cfg, _ := h.provider.Snapshot()
	if cfg == nil {
		WriteNotFound(w, "configuration")
		return
	}

	element := r.URL.Query().Get("element")
	state := r.URL.Query().Get("state")
	if element == "" || state == "" {
		WriteInvalidRequest(w, "element and state query parameters are required")
		return
	}

	renderer := notify.NewRenderer(cfg)
	event := notify.Event{Element: element, State: state}
	writeJSON(w, DataResponse{Data: NotifyPreviewResponse{
		WouldSend: notify.ShouldAlert(cfg, state),
		Subject:   renderer.Subject(event),
		Body:      renderer.Body(event),
	}})
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}
