package commands

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/eworm-de/keepalived/internal/api"
	"github.com/eworm-de/keepalived/internal/config"
	"github.com/eworm-de/keepalived/internal/log"
	"github.com/eworm-de/keepalived/internal/networking"
	"github.com/eworm-de/keepalived/internal/notify"
	"github.com/eworm-de/keepalived/internal/process"
)

func CreateServiceCommand() *ServiceCommand {
	sc := &ServiceCommand{
		fs: flag.NewFlagSet("service", flag.ExitOnError),
	}

	sc.fs.StringVar(&sc.ListenAddr, "listen", "127.0.0.1:9595", "Bind address of the HTTP API server (empty to disable)")

	return sc
}

// ServiceCommand runs the daemon: it parses the configuration, applies
// process settings, serves the HTTP API, and re-reads the configuration
// on SIGHUP.
type ServiceCommand struct {
	fs         *flag.FlagSet
	ctx        *AppContext
	ListenAddr string

	state     *configState
	apiRunner *RestartableRunner
}

// configState is the live configuration snapshot shared between the
// signal loop and the API server.
type configState struct {
	mu    sync.RWMutex
	cfg   *config.GlobalConfig
	diags []string
}

func (s *configState) Snapshot() (*config.GlobalConfig, []string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg, s.diags
}

func (s *configState) Replace(cfg *config.GlobalConfig, diags []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	s.diags = diags
}

func (s *ServiceCommand) Name() string {
	return s.fs.Name()
}

func (s *ServiceCommand) Init(args []string, ctx *AppContext) error {
	s.ctx = ctx

	if err := s.fs.Parse(args); err != nil {
		return err
	}

	cfg, diags, err := parseAndValidateConfigOrFail(ctx)
	if err != nil {
		return err
	}

	if err := networking.ValidateInterfacesArePresent(cfg, ctx.Interfaces); err != nil {
		log.Errorf("Interface check failed: %v", err)
		return err
	}

	s.state = &configState{cfg: cfg, diags: diags}

	return nil
}

func (s *ServiceCommand) Run() error {
	log.Infof("Starting keepalived service...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	cfg, _ := s.state.Snapshot()
	if err := process.Apply(cfg.VRRP.Process); err != nil {
		log.Warnf("Failed to apply process settings: %v", err)
	}

	if notify.ShouldAlert(cfg, "RUNNING") {
		renderer := notify.NewRenderer(cfg)
		subject := renderer.Subject(notify.Event{Element: "keepalived", State: "RUNNING"})
		log.Infof("SMTP alerts enabled, startup alert: %s", subject)
	}

	if s.ListenAddr != "" {
		server := api.NewServer(s.ListenAddr, s.state)
		s.apiRunner = NewRestartableRunner("api-server", server.ListenAndServe)
		if err := s.apiRunner.Start(ctx); err != nil {
			log.Errorf("Failed to start API server: %v", err)
		} else {
			log.Infof("API server listening on %s", s.ListenAddr)
		}
	}

	for {
		sig := <-sigChan
		switch sig {
		case syscall.SIGHUP:
			s.reload()
		case syscall.SIGINT, syscall.SIGTERM:
			log.Infof("Received %v, shutting down...", sig)
			cancel()
			if s.apiRunner != nil {
				if err := s.apiRunner.Stop(); err != nil {
					log.Warnf("API server shutdown: %v", err)
				}
			}
			return nil
		}
	}
}

// reload re-reads the configuration file. Identity-like fields are kept
// from the running snapshot; a file that fails to load leaves the running
// configuration untouched.
func (s *ServiceCommand) reload() {
	log.Infof("Reloading configuration...")

	previous, _ := s.state.Snapshot()
	cfg, diags, err := parseConfig(s.ctx, true, previous)
	if err != nil {
		log.Errorf("Reload failed, keeping the running configuration: %v", err)
		return
	}

	if err := cfg.ValidateConfig(); err != nil {
		log.Errorf("Reload failed, keeping the running configuration: %v", err)
		return
	}

	s.state.Replace(cfg, diags)
	log.Infof("Configuration reloaded with %d diagnostic(s)", len(diags))
}
