package commands

import (
	"flag"
	"fmt"

	"github.com/eworm-de/keepalived/internal/log"
	"github.com/eworm-de/keepalived/internal/networking"
)

func CreateCheckCommand() *CheckCommand {
	cc := &CheckCommand{
		fs: flag.NewFlagSet("check", flag.ExitOnError),
	}

	cc.fs.BoolVar(&cc.Strict, "strict", false, "Treat parse diagnostics as failures")

	return cc
}

// CheckCommand parses the configuration, reports every diagnostic, and
// verifies that the referenced system objects (interfaces, iptables
// chains) are present.
type CheckCommand struct {
	fs     *flag.FlagSet
	ctx    *AppContext
	Strict bool
}

func (c *CheckCommand) Name() string {
	return c.fs.Name()
}

func (c *CheckCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx
	return c.fs.Parse(args)
}

func (c *CheckCommand) Run() error {
	cfg, diags, err := parseConfig(c.ctx, false, nil)
	if err != nil {
		return err
	}

	if len(diags) > 0 {
		log.Warnf("Configuration parsed with %d diagnostic(s)", len(diags))
	}

	if err := cfg.ValidateConfig(); err != nil {
		log.Errorf("Configuration validation failed: %v", err)
		return err
	}

	if err := networking.ValidateInterfacesArePresent(cfg, c.ctx.Interfaces); err != nil {
		log.Errorf("Interface check failed: %v", err)
		return err
	}

	if checker, err := networking.NewChainChecker(); err != nil {
		log.Warnf("Skipping iptables chain check: %v", err)
	} else if err := checker.VerifyChains(cfg); err != nil {
		log.Errorf("iptables chain check failed: %v", err)
		return err
	}

	if c.Strict && len(diags) > 0 {
		return fmt.Errorf("%d diagnostic(s) reported in strict mode", len(diags))
	}

	log.Infof("Configuration check passed")
	return nil
}
