package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/eworm-de/keepalived/internal/commands"
	"github.com/eworm-de/keepalived/internal/config"
	"github.com/eworm-de/keepalived/internal/log"
	"github.com/eworm-de/keepalived/internal/networking"
)

var (
	version = "dev"
	commit  = "n/a"
	date    = "n/a"
)

func main() {
	ctx := &commands.AppContext{}
	ctx.Features = config.AllFeatures()

	// Define flags
	flag.StringVar(&ctx.ConfigPath, "config", "/etc/keepalived/keepalived.conf", "Path to configuration file")
	flag.BoolVar(&ctx.Verbose, "verbose", false, "Enable debug logging")

	var noLVS, noVRRP, noBFD bool
	flag.BoolVar(&noLVS, "no-lvs", false, "Disable the LVS subsystem (lvs_* and checker_* directives become unknown)")
	flag.BoolVar(&noVRRP, "no-vrrp", false, "Disable the VRRP subsystem (vrrp_* directives become unknown)")
	flag.BoolVar(&noBFD, "no-bfd", false, "Disable the BFD subsystem (bfd_* directives become unknown)")

	// Custom usage message
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Keepalived global configuration daemon\n")
		fmt.Fprintf(os.Stderr, "Version: %s (Commit: %s, Date: %s)\n\n", version, commit, date)
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <command>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  service                 Run as a daemon (includes API server and SIGHUP reload)\n")
		fmt.Fprintf(os.Stderr, "  check                   Parse and validate the configuration file\n")
		fmt.Fprintf(os.Stderr, "  dump                    Print the effective configuration to stdout\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if ctx.Verbose {
		log.SetVerbose(true)
	}

	if noLVS {
		ctx.Features.LVS = false
	}
	if noVRRP {
		ctx.Features.VRRP = false
	}
	if noBFD {
		ctx.Features.BFD = false
	}

	// Ensure cfg file exists
	if _, err := os.Stat(ctx.ConfigPath); errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Configuration file not found: %s", ctx.ConfigPath)
	}

	// Get interfaces list
	var err error
	if ctx.Interfaces, err = networking.GetInterfaceList(); err != nil {
		log.Fatalf("Failed to get interfaces list: %v", err)
	}

	cmds := []commands.Runner{
		commands.CreateServiceCommand(),
		commands.CreateCheckCommand(),
		commands.CreateDumpCommand(),
	}

	args := flag.Args()

	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}

	subcommand := args[0]
	for _, cmd := range cmds {
		if cmd.Name() == subcommand {
			if err := cmd.Init(args[1:], ctx); err != nil {
				log.Fatalf("Failed to initialize command: %v", err)
			}

			if err := cmd.Run(); err != nil {
				log.Fatalf("Failed to run command: %v", err)
			}

			os.Exit(0)
		}
	}

	log.Fatalf("Unknown subcommand: %s", subcommand)
}
