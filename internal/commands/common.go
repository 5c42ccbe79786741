package commands

import (
	"fmt"

	"github.com/eworm-de/keepalived/internal/config"
	"github.com/eworm-de/keepalived/internal/log"
	"github.com/eworm-de/keepalived/internal/networking"
	"github.com/eworm-de/keepalived/internal/process"
	"github.com/eworm-de/keepalived/internal/resolve"
)

type Runner interface {
	Init(args []string, globalArgs *AppContext) error
	Run() error
	Name() string
}

type AppContext struct {
	ConfigPath string
	Verbose    bool
	Features   config.Features
	Interfaces []networking.Interface
}

// parseConfig runs one full parse pass over the configuration file.
// Diagnostics are non-fatal and returned alongside the configuration;
// only an unreadable or lexically broken file is an error.
func parseConfig(ctx *AppContext, reload bool, previous *config.GlobalConfig) (*config.GlobalConfig, []string, error) {
	lines, err := config.Load(ctx.ConfigPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %v", err)
	}

	var resolver config.AddressResolver
	if r, err := resolve.NewResolver(); err != nil {
		log.Debugf("DNS resolver unavailable, address directives are limited to literals: %v", err)
	} else {
		resolver = r
	}

	parser := config.NewParser(config.ParserOptions{
		Features:   ctx.Features,
		Reload:     reload,
		Previous:   previous,
		Interfaces: networking.NewLinkResolverFrom(ctx.Interfaces),
		Resolver:   resolver,
		Users:      process.OSUserLookup{},
	})

	cfg := parser.ParseAll(lines)
	return cfg, parser.Diagnostics(), nil
}

// parseAndValidateConfigOrFail parses the configuration and validates the
// result. Parse diagnostics do not fail the load; validation errors do.
func parseAndValidateConfigOrFail(ctx *AppContext) (*config.GlobalConfig, []string, error) {
	cfg, diags, err := parseConfig(ctx, false, nil)
	if err != nil {
		return nil, nil, err
	}

	if err := cfg.ValidateConfig(); err != nil {
		return nil, nil, fmt.Errorf("configuration validation failed: %v", err)
	}

	return cfg, diags, nil
}
