package config

import "math"

// handleInstance names this process instance. The name is set once and
// frozen for the process lifetime, including across reloads.
func (p *Parser) handleInstance(line Line) {
	if line.Tokens.Len() < 2 {
		p.diagf("instance requires a name")
		return
	}
	name := line.Tokens.At(1)
	if p.opts.Reload {
		if name != p.cfg.Instance {
			p.diagf("instance cannot be changed on reload - ignoring %s", name)
		}
		return
	}
	if p.cfg.Instance != "" {
		p.diagf("instance already specified as %s - ignoring %s", p.cfg.Instance, name)
		return
	}
	p.cfg.Instance = name
	// A named instance gets its own pid directory.
	p.cfg.UsePIDDir = true
}

// handleNetNamespace follows the same set-once policy as handleInstance,
// since moving the process between namespaces at runtime is not possible.
func (p *Parser) handleNetNamespace(line Line) {
	if line.Tokens.Len() < 2 {
		p.diagf("net_namespace requires a name")
		return
	}
	name := line.Tokens.At(1)
	if p.opts.Reload {
		if name != p.cfg.NetNamespace {
			p.diagf("net_namespace cannot be changed on reload - ignoring %s", name)
		}
		return
	}
	if p.cfg.NetNamespace != "" {
		p.diagf("net_namespace already specified as %s - ignoring %s", p.cfg.NetNamespace, name)
		return
	}
	p.cfg.NetNamespace = name
	// A namespaced daemon gets its own pid directory.
	p.cfg.UsePIDDir = true
}

func (p *Parser) handleNamespaceWithIPSets(line Line) {
	p.cfg.NamespaceWithIPSets = true
}

func (p *Parser) handleUsePIDDir(line Line) {
	if p.opts.Reload {
		return
	}
	p.cfg.UsePIDDir = true
}

func (p *Parser) handleChildWaitTime(line Line) {
	if line.Tokens.Len() < 2 {
		p.diagf("child_wait_time requires a time in seconds")
		return
	}
	wait, err := parseSeconds(line.Tokens.At(1), 0, 3600)
	if err != nil {
		p.diagf("Invalid child_wait_time (%s) - ignoring", line.Tokens.At(1))
		return
	}
	p.cfg.ChildWaitTime = wait
}

func (p *Parser) handleLinkbeatUsePolling(line Line) {
	p.cfg.LinkbeatUsePolling = true
}

func (p *Parser) handleDynamicInterfaces(line Line) {
	p.cfg.DynamicInterfaces = true
}

func (p *Parser) handleDefaultInterface(line Line) {
	if line.Tokens.Len() < 2 {
		p.diagf("default_interface requires an interface name")
		return
	}
	name := line.Tokens.At(1)
	if p.opts.Interfaces != nil && !p.opts.Interfaces.InterfaceExists(name) {
		p.diagf("WARNING - default interface %s doesn't exist", name)
	}
	p.cfg.DefaultInterface = name
}

// handleScriptUser sets the default user, and optionally group, that
// notification scripts run as. Both must resolve or neither is applied.
func (p *Parser) handleScriptUser(line Line) {
	if line.Tokens.Len() < 2 {
		p.diagf("script_user requires a username")
		return
	}
	user := line.Tokens.At(1)
	group := line.Tokens.At(2)
	if p.opts.Users != nil {
		if err := p.opts.Users.Lookup(user, group); err != nil {
			p.diagf("Unable to set default script user/group: %v", err)
			return
		}
	}
	p.cfg.ScriptUser = user
	p.cfg.ScriptGroup = group
}

func (p *Parser) handleScriptSecurity(line Line) {
	p.cfg.EnableScriptSecurity = true
}

// processPriority reads a nice value, clamping out-of-range values to the
// nearest bound instead of discarding them.
func (p *Parser) processPriority(line Line, directive string, field *int) {
	if line.Tokens.Len() < 2 {
		p.diagf("%s requires a priority", directive)
		return
	}
	prio, err := parseInt(line.Tokens.At(1))
	if err != nil {
		p.diagf("Invalid %s (%s) - ignoring", directive, line.Tokens.At(1))
		return
	}
	val, clamped := clamp(int(prio), MinProcessPriority, MaxProcessPriority)
	if clamped {
		p.diagf("%s (%d) out of range [%d, %d] - setting to %d",
			directive, prio, MinProcessPriority, MaxProcessPriority, val)
	}
	*field = val
}

// realtimePriority reads a SCHED_RR priority, clamping to the scheduler's
// valid range.
func (p *Parser) realtimePriority(line Line, directive string, field *int) {
	if line.Tokens.Len() < 2 {
		p.diagf("%s requires a priority", directive)
		return
	}
	prio, err := parseInt(line.Tokens.At(1))
	if err != nil {
		p.diagf("Invalid %s (%s) - ignoring", directive, line.Tokens.At(1))
		return
	}
	val, clamped := clamp(int(prio), MinRealtimePriority, MaxRealtimePriority)
	if clamped {
		if int(prio) < MinRealtimePriority {
			p.diagf("%s (%d) is less than minimum %d - setting to minimum", directive, prio, MinRealtimePriority)
		} else {
			p.diagf("%s (%d) is greater than maximum %d - setting to maximum", directive, prio, MaxRealtimePriority)
		}
	}
	*field = val
}

// rtRlimit reads an RLIMIT_RTTIME value in microseconds.
func (p *Parser) rtRlimit(line Line, directive string, field *uint64) {
	if line.Tokens.Len() < 2 {
		p.diagf("%s requires a time in microseconds", directive)
		return
	}
	limit, err := parseBoundedUint(line.Tokens.At(1), 1, math.MaxUint64)
	if err != nil {
		p.diagf("Invalid %s (%s) - ignoring", directive, line.Tokens.At(1))
		return
	}
	*field = limit
}

func (p *Parser) handleVRRPPriority(line Line) {
	p.processPriority(line, "vrrp_priority", &p.cfg.VRRP.Process.Priority)
}

func (p *Parser) handleVRRPNoSwap(line Line) {
	p.cfg.VRRP.Process.NoSwap = true
}

func (p *Parser) handleVRRPRTPriority(line Line) {
	p.realtimePriority(line, "vrrp_rt_priority", &p.cfg.VRRP.Process.RealtimePriority)
}

func (p *Parser) handleVRRPRlimitRTime(line Line) {
	p.rtRlimit(line, "vrrp_rlimit_rtime", &p.cfg.VRRP.Process.RlimitRTTime)
}

func (p *Parser) handleCheckerPriority(line Line) {
	p.processPriority(line, "checker_priority", &p.cfg.Checker.Priority)
}

func (p *Parser) handleCheckerNoSwap(line Line) {
	p.cfg.Checker.NoSwap = true
}

func (p *Parser) handleCheckerRTPriority(line Line) {
	p.realtimePriority(line, "checker_rt_priority", &p.cfg.Checker.RealtimePriority)
}

func (p *Parser) handleCheckerRlimitRTime(line Line) {
	p.rtRlimit(line, "checker_rlimit_rtime", &p.cfg.Checker.RlimitRTTime)
}

func (p *Parser) handleBFDPriority(line Line) {
	p.processPriority(line, "bfd_priority", &p.cfg.BFD.Priority)
}

func (p *Parser) handleBFDNoSwap(line Line) {
	p.cfg.BFD.NoSwap = true
}

func (p *Parser) handleBFDRTPriority(line Line) {
	p.realtimePriority(line, "bfd_rt_priority", &p.cfg.BFD.RealtimePriority)
}

func (p *Parser) handleBFDRlimitRTime(line Line) {
	p.rtRlimit(line, "bfd_rlimit_rtime", &p.cfg.BFD.RlimitRTTime)
}
