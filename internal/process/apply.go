// Package process applies the configured scheduling settings to the
// current process.
package process

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/eworm-de/keepalived/internal/config"
	"github.com/eworm-de/keepalived/internal/log"
)

// Apply sets nice value, memory locking, realtime scheduling and the
// RLIMIT_RTTIME of the calling process from a ProcessConfig. Zero values
// leave the corresponding setting unchanged.
func Apply(pc config.ProcessConfig) error {
	if pc.Priority != 0 {
		if err := unix.Setpriority(unix.PRIO_PROCESS, 0, pc.Priority); err != nil {
			return fmt.Errorf("failed to set priority %d: %w", pc.Priority, err)
		}
		log.Debugf("Process priority set to %d", pc.Priority)
	}

	if pc.NoSwap {
		if err := unix.Mlockall(unix.MCL_CURRENT | unix.MCL_FUTURE); err != nil {
			return fmt.Errorf("failed to lock process memory: %w", err)
		}
		log.Debugf("Process memory locked")
	}

	if pc.RealtimePriority != 0 {
		attr := unix.SchedAttr{
			Size:     unix.SizeofSchedAttr,
			Policy:   unix.SCHED_RR,
			Priority: uint32(pc.RealtimePriority),
		}
		if err := unix.SchedSetAttr(0, &attr, 0); err != nil {
			return fmt.Errorf("failed to set realtime priority %d: %w", pc.RealtimePriority, err)
		}
		log.Debugf("Realtime priority set to %d", pc.RealtimePriority)

		if pc.RlimitRTTime != 0 {
			limit := unix.Rlimit{Cur: pc.RlimitRTTime, Max: pc.RlimitRTTime}
			if err := unix.Setrlimit(unix.RLIMIT_RTTIME, &limit); err != nil {
				return fmt.Errorf("failed to set RLIMIT_RTTIME %d: %w", pc.RlimitRTTime, err)
			}
			log.Debugf("RLIMIT_RTTIME set to %d us", pc.RlimitRTTime)
		}
	}

	return nil
}
