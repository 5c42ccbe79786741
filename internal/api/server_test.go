package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"strings"
	"testing"

	"github.com/eworm-de/keepalived/internal/config"
)

type stubProvider struct {
	cfg   *config.GlobalConfig
	diags []string
}

func (s *stubProvider) Snapshot() (*config.GlobalConfig, []string) {
	return s.cfg, s.diags
}

func testConfig() *config.GlobalConfig {
	cfg := config.NewGlobalConfig()
	cfg.RouterID = "lvs1"
	return cfg
}

func TestGetConfig(t *testing.T) {
	router := NewRouter(&stubProvider{cfg: testConfig()})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/config", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"router_id":"lvs1"`) {
		t.Errorf("Expected router_id in response, got: %s", rec.Body.String())
	}
}

func TestGetConfig_NoConfiguration(t *testing.T) {
	router := NewRouter(&stubProvider{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/config", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}

func TestGetConfigTOML(t *testing.T) {
	router := NewRouter(&stubProvider{cfg: testConfig()})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/config/toml", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/toml" {
		t.Errorf("Expected TOML content type, got %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "router_id") {
		t.Errorf("Expected router_id in TOML, got: %s", rec.Body.String())
	}
}

func TestGetDiagnostics(t *testing.T) {
	router := NewRouter(&stubProvider{
		cfg:   testConfig(),
		diags: []string{"Unknown global directive bogus - ignoring"},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/diagnostics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var resp DiagnosticsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Count != 1 || len(resp.Diagnostics) != 1 {
		t.Errorf("Unexpected diagnostics: %+v", resp)
	}
}

func TestGetHealth(t *testing.T) {
	router := NewRouter(&stubProvider{cfg: testConfig()})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !resp.Healthy {
		t.Errorf("Expected healthy, got %+v", resp)
	}
}

func TestGetNotifyPreview(t *testing.T) {
	cfg := testConfig()
	cfg.Mail.SMTPAlert = true
	cfg.Mail.NotificationEmails = []string{"admin@example.com"}
	cfg.Mail.SMTPServer = netip.MustParseAddrPort("192.0.2.1:25")

	router := NewRouter(&stubProvider{cfg: cfg})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notify/preview?element=VI_1&state=MASTER", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data NotifyPreviewResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !resp.Data.WouldSend {
		t.Errorf("Expected would_send true, got %+v", resp.Data)
	}
	if resp.Data.Subject != "[lvs1] VI_1 - Entering MASTER state" {
		t.Errorf("Unexpected subject: %q", resp.Data.Subject)
	}
}

func TestGetNotifyPreview_MissingParams(t *testing.T) {
	router := NewRouter(&stubProvider{cfg: testConfig()})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notify/preview?element=VI_1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
}

func TestGetHealth_InvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Mail.SMTPAlert = true // no server, no recipients

	router := NewRouter(&stubProvider{cfg: cfg})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Healthy {
		t.Errorf("Expected unhealthy, got %+v", resp)
	}
}
