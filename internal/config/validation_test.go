package config

import (
	"strings"
	"testing"
)

func TestValidateConfig_Defaults(t *testing.T) {
	if err := NewGlobalConfig().ValidateConfig(); err != nil {
		t.Errorf("Default configuration must validate: %v", err)
	}
}

func TestValidateConfig_ParsedConfig(t *testing.T) {
	p := newTestParser()
	cfg := p.ParseAll([]Line{
		mkLine("router_id", "lvs1"),
		mkLine("smtp_server", "192.0.2.1"),
		mkLine("notification_email_from", "keepalived@example.com"),
		{Tokens: TokenLine{"notification_email"}, Block: []string{"admin@example.com"}},
		mkLine("smtp_alert"),
		mkLine("vrrp_version", "3"),
		mkLine("lvs_sync_daemon", "eth0", "VI_1", "id", "7"),
	})

	if err := cfg.ValidateConfig(); err != nil {
		t.Errorf("Parsed configuration must validate: %v", err)
	}
}

func TestValidateConfig_AlertsWithoutServer(t *testing.T) {
	cfg := NewGlobalConfig()
	cfg.Mail.SMTPAlert = true

	err := cfg.ValidateConfig()
	if err == nil {
		t.Fatal("Expected validation to fail")
	}
	if !strings.Contains(err.Error(), "smtp_server") {
		t.Errorf("Expected smtp_server finding, got: %v", err)
	}
	if !strings.Contains(err.Error(), "notification_email") {
		t.Errorf("Expected notification_email finding, got: %v", err)
	}
}

func TestValidateConfig_SyncDaemonWithoutInstance(t *testing.T) {
	cfg := NewGlobalConfig()
	cfg.LVS.SyncDaemon.Interface = "eth0"

	err := cfg.ValidateConfig()
	if err == nil {
		t.Fatal("Expected validation to fail")
	}
	if !strings.Contains(err.Error(), "vrrp_instance") {
		t.Errorf("Expected vrrp_instance finding, got: %v", err)
	}
}

func TestValidateConfig_FIFOScriptWithoutPath(t *testing.T) {
	cfg := NewGlobalConfig()
	cfg.VRRP.NotifyFIFO.Script = []string{"/usr/bin/drain"}

	err := cfg.ValidateConfig()
	if err == nil {
		t.Fatal("Expected validation to fail")
	}
	if !strings.Contains(err.Error(), "vrrp_notify_fifo") {
		t.Errorf("Expected vrrp_notify_fifo finding, got: %v", err)
	}
}

func TestValidateConfig_StructTags(t *testing.T) {
	cfg := NewGlobalConfig()
	cfg.VRRP.Version = 7

	err := cfg.ValidateConfig()
	if err == nil {
		t.Fatal("Expected validation to fail")
	}
	if !strings.Contains(err.Error(), "version") {
		t.Errorf("Expected version finding, got: %v", err)
	}
}

func TestValidateConfig_DBusNameWithoutEnable(t *testing.T) {
	cfg := NewGlobalConfig()
	cfg.DBus.ServiceName = "org.example.keepalived"

	err := cfg.ValidateConfig()
	if err == nil {
		t.Fatal("Expected validation to fail")
	}
	if !strings.Contains(err.Error(), "enable_dbus") {
		t.Errorf("Expected enable_dbus finding, got: %v", err)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{ItemName: "mail", FieldPath: "smtp_server", Message: "missing"},
		{FieldPath: "version", Message: "bad"},
	}
	text := errs.Error()
	if !strings.Contains(text, "2 error(s)") {
		t.Errorf("Expected error count in message, got: %s", text)
	}
	if !strings.Contains(text, "[mail] smtp_server: missing") {
		t.Errorf("Expected formatted item entry, got: %s", text)
	}
}

func TestSerializeConfig(t *testing.T) {
	cfg := NewGlobalConfig()
	cfg.RouterID = "lvs1"

	buf, err := cfg.SerializeConfig()
	if err != nil {
		t.Fatalf("Failed to serialize config: %v", err)
	}
	if buf == nil || buf.Len() == 0 {
		t.Fatal("Expected serialized content to be non-empty")
	}
	if !strings.Contains(buf.String(), "router_id") {
		t.Errorf("Expected router_id in output, got: %s", buf.String())
	}
}
