package commands

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/eworm-de/keepalived/internal/log"
)

// RestartableRunner supervises a goroutine and restarts it when it
// crashes, with exponential backoff. A crashing API server must not take
// the daemon down with it.
type RestartableRunner struct {
	name    string
	runFunc func(ctx context.Context) error

	mu       sync.Mutex
	running  bool
	cancel   context.CancelFunc
	done     chan struct{}
	restarts int

	maxRestarts int // 0 means unlimited
	backoff     time.Duration
	maxBackoff  time.Duration
}

func NewRestartableRunner(name string, runFunc func(ctx context.Context) error) *RestartableRunner {
	return &RestartableRunner{
		name:       name,
		runFunc:    runFunc,
		backoff:    1 * time.Second,
		maxBackoff: 30 * time.Second,
	}
}

func (r *RestartableRunner) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return fmt.Errorf("%s is already running", r.name)
	}

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})
	r.running = true
	r.restarts = 0

	go r.runLoop(runCtx)

	return nil
}

func (r *RestartableRunner) Stop() error {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return nil
	}
	cancel := r.cancel
	done := r.done
	r.mu.Unlock()

	cancel()

	select {
	case <-done:
	case <-time.After(30 * time.Second):
		return fmt.Errorf("%s: timeout waiting for stop", r.name)
	}

	r.mu.Lock()
	r.running = false
	r.mu.Unlock()

	return nil
}

func (r *RestartableRunner) runLoop(ctx context.Context) {
	defer close(r.done)

	delay := r.backoff

	for {
		err := r.runWithRecovery(ctx)

		select {
		case <-ctx.Done():
			log.Infof("%s: stopped", r.name)
			return
		default:
		}

		if err == nil {
			log.Infof("%s: exited cleanly", r.name)
			return
		}

		r.mu.Lock()
		r.restarts++
		restarts := r.restarts
		r.mu.Unlock()

		if r.maxRestarts > 0 && restarts >= r.maxRestarts {
			log.Errorf("%s: max restarts (%d) reached, giving up. Last error: %v", r.name, r.maxRestarts, err)
			return
		}

		log.Errorf("%s: crashed with error: %v. Restarting in %v (restart #%d)", r.name, err, delay, restarts)

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}

		delay *= 2
		if delay > r.maxBackoff {
			delay = r.maxBackoff
		}
	}
}

func (r *RestartableRunner) runWithRecovery(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("panic: %v", recovered)
		}
	}()

	return r.runFunc(ctx)
}
