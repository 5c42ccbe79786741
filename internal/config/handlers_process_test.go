package config

import (
	"fmt"
	"testing"
	"time"
)

func TestProcessPriority_Clamping(t *testing.T) {
	tests := []struct {
		token string
		want  int
		diags int
	}{
		{"-10", -10, 0},
		{"-20", -20, 0},
		{"19", 19, 0},
		{"-100", -20, 1},
		{"100", 19, 1},
	}
	for _, tt := range tests {
		p := newTestParser()
		p.Apply(mkLine("vrrp_priority", tt.token))
		if p.Result().VRRP.Process.Priority != tt.want {
			t.Errorf("vrrp_priority %s: expected %d, got %d", tt.token, tt.want, p.Result().VRRP.Process.Priority)
		}
		if len(p.Diagnostics()) != tt.diags {
			t.Errorf("vrrp_priority %s: expected %d diagnostic(s), got %v", tt.token, tt.diags, p.Diagnostics())
		}
	}
}

func TestProcessPriority_Invalid(t *testing.T) {
	p := newTestParser()
	p.Apply(mkLine("checker_priority", "-5"))
	p.Apply(mkLine("checker_priority", "high"))

	if p.Result().Checker.Priority != -5 {
		t.Errorf("Invalid priority must leave the previous value, got %d", p.Result().Checker.Priority)
	}
	if len(p.Diagnostics()) != 1 {
		t.Errorf("Expected one diagnostic, got %v", p.Diagnostics())
	}
}

func TestRealtimePriority_Clamping(t *testing.T) {
	p := newTestParser()
	p.Apply(mkLine("bfd_rt_priority", "0"))
	if p.Result().BFD.RealtimePriority != MinRealtimePriority {
		t.Errorf("Expected clamp to minimum, got %d", p.Result().BFD.RealtimePriority)
	}

	p.Apply(mkLine("bfd_rt_priority", "150"))
	if p.Result().BFD.RealtimePriority != MaxRealtimePriority {
		t.Errorf("Expected clamp to maximum, got %d", p.Result().BFD.RealtimePriority)
	}

	p.Apply(mkLine("bfd_rt_priority", "50"))
	if p.Result().BFD.RealtimePriority != 50 {
		t.Errorf("Valid priority not applied: %d", p.Result().BFD.RealtimePriority)
	}
}

func TestRlimitRTime(t *testing.T) {
	p := newTestParser()
	p.Apply(mkLine("vrrp_rlimit_rtime", "10000"))
	if p.Result().VRRP.Process.RlimitRTTime != 10000 {
		t.Errorf("Unexpected rlimit: %d", p.Result().VRRP.Process.RlimitRTTime)
	}

	for _, token := range []string{"0", "-1", "10s"} {
		p.Apply(mkLine("vrrp_rlimit_rtime", token))
		if p.Result().VRRP.Process.RlimitRTTime != 10000 {
			t.Errorf("Invalid rlimit %q must leave the previous value", token)
		}
	}
	if len(p.Diagnostics()) != 3 {
		t.Errorf("Expected three diagnostics, got %v", p.Diagnostics())
	}
}

func TestNoSwapDirectives(t *testing.T) {
	p := newTestParser()
	p.Apply(mkLine("vrrp_no_swap"))
	p.Apply(mkLine("checker_no_swap"))
	p.Apply(mkLine("bfd_no_swap"))

	cfg := p.Result()
	if !cfg.VRRP.Process.NoSwap || !cfg.Checker.NoSwap || !cfg.BFD.NoSwap {
		t.Errorf("no_swap directives not applied: %+v", cfg)
	}
}

func TestHandleInstance_FirstWins(t *testing.T) {
	p := newTestParser()
	p.Apply(mkLine("instance", "primary"))
	p.Apply(mkLine("instance", "secondary"))

	if p.Result().Instance != "primary" {
		t.Errorf("Expected first instance to win, got %q", p.Result().Instance)
	}
	if len(p.Diagnostics()) != 1 {
		t.Errorf("Expected one diagnostic, got %v", p.Diagnostics())
	}
}

func TestHandleNetNamespace_FirstWins(t *testing.T) {
	p := newTestParser()
	p.Apply(mkLine("net_namespace", "blue"))
	p.Apply(mkLine("net_namespace", "green"))

	if p.Result().NetNamespace != "blue" {
		t.Errorf("Expected first namespace to win, got %q", p.Result().NetNamespace)
	}
}

func TestHandleInstance_ImpliesPIDDir(t *testing.T) {
	p := newTestParser()
	p.Apply(mkLine("instance", "primary"))

	if !p.Result().UsePIDDir {
		t.Errorf("Naming the instance must enable the per-instance pid directory")
	}
}

func TestHandleNetNamespace_ImpliesPIDDir(t *testing.T) {
	p := newTestParser()
	p.Apply(mkLine("net_namespace", "blue"))

	if !p.Result().UsePIDDir {
		t.Errorf("Setting the namespace must enable the per-instance pid directory")
	}
}

func TestHandleChildWaitTime(t *testing.T) {
	p := newTestParser()
	p.Apply(mkLine("child_wait_time", "30"))
	if p.Result().ChildWaitTime != 30*time.Second {
		t.Errorf("Unexpected wait time: %v", p.Result().ChildWaitTime)
	}

	p.Apply(mkLine("child_wait_time", "never"))
	if p.Result().ChildWaitTime != 30*time.Second {
		t.Error("Invalid wait time must leave the previous value")
	}
}

// stubInterfaces reports a fixed set of interfaces as present.
type stubInterfaces map[string]bool

func (s stubInterfaces) InterfaceExists(name string) bool {
	return s[name]
}

func TestHandleDefaultInterface(t *testing.T) {
	p := NewParser(ParserOptions{
		Features:   AllFeatures(),
		Interfaces: stubInterfaces{"eth0": true},
	})

	p.Apply(mkLine("default_interface", "eth0"))
	if p.Result().DefaultInterface != "eth0" {
		t.Errorf("Unexpected interface: %q", p.Result().DefaultInterface)
	}
	if len(p.Diagnostics()) != 0 {
		t.Errorf("Expected no diagnostics, got %v", p.Diagnostics())
	}

	p.Apply(mkLine("default_interface", "eth9"))
	if p.Result().DefaultInterface != "eth9" {
		t.Error("Missing interface is a warning, the name must still be stored")
	}
	if len(p.Diagnostics()) != 1 {
		t.Errorf("Expected one diagnostic, got %v", p.Diagnostics())
	}
}

// stubUsers rejects every user except the ones listed.
type stubUsers map[string]bool

func (s stubUsers) Lookup(user, group string) error {
	if !s[user] {
		return fmt.Errorf("unknown user %s", user)
	}
	return nil
}

func TestHandleScriptUser(t *testing.T) {
	p := NewParser(ParserOptions{
		Features: AllFeatures(),
		Users:    stubUsers{"keepalived_script": true},
	})

	p.Apply(mkLine("script_user", "keepalived_script", "nogroup"))
	cfg := p.Result()
	if cfg.ScriptUser != "keepalived_script" || cfg.ScriptGroup != "nogroup" {
		t.Errorf("Unexpected script user/group: %q, %q", cfg.ScriptUser, cfg.ScriptGroup)
	}

	p.Apply(mkLine("script_user", "nobody_here"))
	if cfg.ScriptUser != "keepalived_script" {
		t.Error("Unknown user must leave the previous value")
	}
	if len(p.Diagnostics()) != 1 {
		t.Errorf("Expected one diagnostic, got %v", p.Diagnostics())
	}
}

func TestSNMPSocket_FirstWins(t *testing.T) {
	p := newTestParser()
	p.Apply(mkLine("snmp_socket", "unix:/var/agentx/master"))
	p.Apply(mkLine("snmp_socket", "unix:/var/agentx/other"))

	if p.Result().SNMP.Socket != "unix:/var/agentx/master" {
		t.Errorf("Expected first socket to win, got %q", p.Result().SNMP.Socket)
	}
	if len(p.Diagnostics()) != 1 {
		t.Errorf("Expected one diagnostic, got %v", p.Diagnostics())
	}
}

func TestSNMPSocket_TooManyArguments(t *testing.T) {
	p := newTestParser()
	p.Apply(mkLine("snmp_socket", "unix:/var/agentx/master", "extra"))

	if p.Result().SNMP.Socket != "" {
		t.Error("Extra arguments must reject the directive")
	}
	if len(p.Diagnostics()) != 1 {
		t.Errorf("Expected one diagnostic, got %v", p.Diagnostics())
	}
}

func TestEnableSNMPRFC_EnablesBoth(t *testing.T) {
	p := newTestParser()
	p.Apply(mkLine("enable_snmp_rfc"))

	cfg := p.Result()
	if !cfg.SNMP.EnableRFCv2 || !cfg.SNMP.EnableRFCv3 {
		t.Errorf("enable_snmp_rfc must enable both MIBs: %+v", cfg.SNMP)
	}
}

func TestEnableSNMPKeepalived_DeprecatedAlias(t *testing.T) {
	p := newTestParser()
	p.Apply(mkLine("enable_snmp_keepalived"))

	if !p.Result().SNMP.EnableVRRP {
		t.Error("Deprecated alias must still enable the MIB")
	}
	if len(p.Diagnostics()) != 1 {
		t.Errorf("Expected deprecation diagnostic, got %v", p.Diagnostics())
	}
}
