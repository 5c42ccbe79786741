package notify

import (
	"testing"

	"github.com/eworm-de/keepalived/internal/config"
)

func TestRenderer_Subject(t *testing.T) {
	cfg := config.NewGlobalConfig()
	cfg.RouterID = "lvs1"

	r := NewRenderer(cfg)
	got := r.Subject(Event{Element: "VRRP Instance VI_1", State: "MASTER"})
	want := "[lvs1] VRRP Instance VI_1 - Entering MASTER state"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestRenderer_SubjectWithInstance(t *testing.T) {
	cfg := config.NewGlobalConfig()
	cfg.RouterID = "lvs1"
	cfg.Instance = "primary"

	r := NewRenderer(cfg)
	got := r.Subject(Event{Element: "VI_1", State: "BACKUP"})
	if got != "[lvs1/primary] VI_1 - Entering BACKUP state" {
		t.Errorf("Unexpected subject: %q", got)
	}
}

func TestShouldAlert(t *testing.T) {
	cfg := config.NewGlobalConfig()
	cfg.Mail.NotificationEmails = []string{"admin@example.com"}

	if ShouldAlert(cfg, "MASTER") {
		t.Error("No alert toggle set, must not alert")
	}

	cfg.Mail.SMTPAlert = true
	if !ShouldAlert(cfg, "MASTER") {
		t.Error("Expected alert with smtp_alert enabled")
	}

	cfg.Mail.NoEmailFaults = true
	if ShouldAlert(cfg, "FAULT") {
		t.Error("no_email_faults must suppress fault alerts")
	}
	if !ShouldAlert(cfg, "MASTER") {
		t.Error("no_email_faults must not suppress other alerts")
	}

	cfg.Mail.NotificationEmails = nil
	if ShouldAlert(cfg, "MASTER") {
		t.Error("No recipients, must not alert")
	}
}
