package networking

import (
	"fmt"

	"github.com/coreos/go-iptables/iptables"

	"github.com/eworm-de/keepalived/internal/config"
	"github.com/eworm-de/keepalived/internal/log"
)

// filterTable is where the advert block chains live.
const filterTable = "filter"

// chainLister is the slice of go-iptables used by the chain check. Tests
// inject stubs.
type chainLister interface {
	ChainExists(table, chain string) (bool, error)
}

// ChainChecker verifies that the chains named by vrrp_iptables exist
// before rules are installed into them.
type ChainChecker struct {
	ipt4 chainLister
	ipt6 chainLister
}

// NewChainChecker creates a checker backed by the system iptables. IPv6
// support is optional; its absence only disables the IPv6 half of the
// check.
func NewChainChecker() (*ChainChecker, error) {
	ipt4, err := iptables.NewWithProtocol(iptables.ProtocolIPv4)
	if err != nil {
		return nil, fmt.Errorf("failed to create iptables (IPv4): %w", err)
	}

	checker := &ChainChecker{ipt4: ipt4}

	ipt6, err := iptables.NewWithProtocol(iptables.ProtocolIPv6)
	if err != nil {
		log.Debugf("IPv6 iptables not available: %v", err)
	} else {
		checker.ipt6 = ipt6
	}

	return checker, nil
}

// VerifyChains checks that every chain named by the configuration exists.
// A missing chain is an error; an unnamed chain is simply not checked.
func (c *ChainChecker) VerifyChains(cfg *config.GlobalConfig) error {
	for _, chain := range []string{cfg.VRRP.IPTablesInChain, cfg.VRRP.IPTablesOutChain} {
		if chain == "" {
			continue
		}
		if err := c.verifyChain(chain); err != nil {
			return err
		}
	}
	return nil
}

func (c *ChainChecker) verifyChain(chain string) error {
	for _, ipt := range []chainLister{c.ipt4, c.ipt6} {
		if ipt == nil {
			continue
		}
		exists, err := ipt.ChainExists(filterTable, chain)
		if err != nil {
			return fmt.Errorf("failed to check chain %s: %w", chain, err)
		}
		if !exists {
			return fmt.Errorf("iptables chain '%s' does not exist", chain)
		}
	}
	return nil
}
