package networking

import (
	"fmt"
	"testing"

	"github.com/eworm-de/keepalived/internal/config"
)

// stubChains reports a fixed set of chains as present.
type stubChains struct {
	chains map[string]bool
	err    error
}

func (s *stubChains) ChainExists(table, chain string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.chains[chain], nil
}

func TestVerifyChains(t *testing.T) {
	checker := &ChainChecker{
		ipt4: &stubChains{chains: map[string]bool{"INPUT": true, "KEEPALIVED_OUT": true}},
	}

	cfg := config.NewGlobalConfig()
	if err := checker.VerifyChains(cfg); err != nil {
		t.Errorf("Default chains must verify: %v", err)
	}

	cfg.VRRP.IPTablesOutChain = "KEEPALIVED_OUT"
	if err := checker.VerifyChains(cfg); err != nil {
		t.Errorf("Existing chains must verify: %v", err)
	}
}

func TestVerifyChains_Missing(t *testing.T) {
	checker := &ChainChecker{
		ipt4: &stubChains{chains: map[string]bool{}},
	}

	cfg := config.NewGlobalConfig()
	if err := checker.VerifyChains(cfg); err == nil {
		t.Error("Expected error for missing chain")
	}
}

func TestVerifyChains_DisabledChainsSkipped(t *testing.T) {
	checker := &ChainChecker{
		ipt4: &stubChains{err: fmt.Errorf("must not be called")},
	}

	cfg := config.NewGlobalConfig()
	cfg.VRRP.IPTablesInChain = ""
	if err := checker.VerifyChains(cfg); err != nil {
		t.Errorf("Disabled chains must not be checked: %v", err)
	}
}

func TestVerifyChains_IPv6Optional(t *testing.T) {
	checker := &ChainChecker{
		ipt4: &stubChains{chains: map[string]bool{"INPUT": true}},
		ipt6: nil,
	}

	if err := checker.VerifyChains(config.NewGlobalConfig()); err != nil {
		t.Errorf("Missing IPv6 iptables must not fail the check: %v", err)
	}
}
