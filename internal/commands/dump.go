package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/eworm-de/keepalived/internal/config"
	"github.com/eworm-de/keepalived/internal/log"
)

func CreateDumpCommand() *DumpCommand {
	dc := &DumpCommand{
		fs: flag.NewFlagSet("dump", flag.ExitOnError),
	}

	dc.fs.StringVar(&dc.Format, "format", "toml", "Output format: toml or json")

	return dc
}

// DumpCommand parses the configuration and prints the effective result,
// defaults and all, to stdout.
type DumpCommand struct {
	fs     *flag.FlagSet
	ctx    *AppContext
	cfg    *config.GlobalConfig
	Format string
}

func (d *DumpCommand) Name() string {
	return d.fs.Name()
}

func (d *DumpCommand) Init(args []string, ctx *AppContext) error {
	d.ctx = ctx

	if err := d.fs.Parse(args); err != nil {
		return err
	}

	cfg, diags, err := parseConfig(ctx, false, nil)
	if err != nil {
		return err
	}
	if len(diags) > 0 {
		log.Warnf("Configuration parsed with %d diagnostic(s)", len(diags))
	}
	d.cfg = cfg

	return nil
}

func (d *DumpCommand) Run() error {
	switch d.Format {
	case "toml":
		buf, err := d.cfg.SerializeConfig()
		if err != nil {
			return fmt.Errorf("failed to serialize config: %v", err)
		}
		_, err = os.Stdout.Write(buf.Bytes())
		return err
	case "json":
		out, err := json.MarshalIndent(d.cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to serialize config: %v", err)
		}
		_, err = fmt.Println(string(out))
		return err
	default:
		return fmt.Errorf("unknown format: %s", d.Format)
	}
}
