package config

import (
	"net/netip"
	"unicode"
)

func (p *Parser) handleLVSTimeouts(line Line) {
	if line.Tokens.Len() < 3 {
		p.diagf("lvs_timeouts requires at least one option")
		return
	}

	p.scanSubOptions(line, 1, "lvs_timeouts", subOptions{
		"tcp": func(value string) {
			secs, err := parseBoundedInt(value, 0, LVSMaxTimeout)
			if err != nil {
				p.diagf("Invalid lvs_timeouts tcp (%s) - ignoring", value)
				return
			}
			p.cfg.LVS.TCPTimeout = int(secs)
		},
		"tcpfin": func(value string) {
			secs, err := parseBoundedInt(value, 1, LVSMaxTimeout)
			if err != nil {
				p.diagf("Invalid lvs_timeouts tcpfin (%s) - ignoring", value)
				return
			}
			p.cfg.LVS.TCPFinTimeout = int(secs)
		},
		"udp": func(value string) {
			secs, err := parseBoundedInt(value, 1, LVSMaxTimeout)
			if err != nil {
				p.diagf("Invalid lvs_timeouts udp (%s) - ignoring", value)
				return
			}
			p.cfg.LVS.UDPTimeout = int(secs)
		},
	})
}

func (p *Parser) handleLVSFlush(line Line) {
	p.cfg.LVS.Flush = true
}

// handleLVSSyncDaemon parses the sync daemon directive: two mandatory
// leading arguments (interface, VRRP instance), an optional legacy
// positional sync id, then named sub-options in any order.
func (p *Parser) handleLVSSyncDaemon(line Line) {
	syncd := &p.cfg.LVS.SyncDaemon

	if syncd.Interface != "" {
		p.diagf("lvs_sync_daemon has already been specified as %s %s - ignoring",
			syncd.Interface, syncd.VRRPInstance)
		return
	}

	if line.Tokens.Len() < 3 {
		p.diagf("lvs_sync_daemon requires interface, VRRP instance")
		return
	}

	if len(line.Tokens.At(1)) >= IfNameMaxLen {
		p.diagf("lvs_sync_daemon interface name '%s' too long - ignoring", line.Tokens.At(1))
		return
	}
	if len(line.Tokens.At(2)) >= IfNameMaxLen {
		p.diagf("lvs_sync_daemon vrrp instance name '%s' too long - ignoring", line.Tokens.At(2))
		return
	}

	syncd.Interface = line.Tokens.At(1)
	syncd.VRRPInstance = line.Tokens.At(2)

	// A bare number here predates the "id" sub-option and is kept for
	// backwards compatibility.
	start := 3
	if line.Tokens.Len() >= 4 && leadingDigit(line.Tokens.At(3)) {
		p.diagf("Please use keyword \"id\" before lvs_sync_daemon syncid value")
		id, err := parseBoundedInt(line.Tokens.At(3), 0, MaxSyncID)
		if err != nil {
			p.diagf("Invalid syncid (%s) - defaulting to vrid", line.Tokens.At(3))
		} else {
			syncd.SyncID = int(id)
		}
		start = 4
	}

	p.scanSubOptions(line, start, "lvs_sync_daemon", subOptions{
		"id": func(value string) {
			id, err := parseBoundedInt(value, 0, MaxSyncID)
			if err != nil {
				p.diagf("Invalid syncid (%s) - defaulting to vrid", value)
				return
			}
			syncd.SyncID = int(id)
		},
		"maxlen": func(value string) {
			maxlen, err := parseBoundedInt(value, 1, MaxSyncMaxLen)
			if err != nil {
				p.diagf("Invalid lvs_sync_daemon maxlen (%s) - ignoring", value)
				return
			}
			syncd.MaxLen = int(maxlen)
		},
		"port": func(value string) {
			port, err := parsePort(value)
			if err != nil {
				p.diagf("Invalid lvs_sync_daemon port (%s) - ignoring", value)
				return
			}
			syncd.McastPort = int(port)
		},
		"ttl": func(value string) {
			ttl, err := parseBoundedInt(value, 1, 255)
			if err != nil {
				p.diagf("Invalid lvs_sync_daemon ttl (%s) - ignoring", value)
				return
			}
			syncd.TTL = int(ttl)
		},
		"group": func(value string) {
			addr, err := netip.ParseAddr(value)
			if err != nil {
				p.diagf("Invalid lvs_sync_daemon group (%s) - ignoring", value)
				return
			}
			if !addr.IsMulticast() {
				p.diagf("lvs_sync_daemon group address %s is not multicast - ignoring", value)
				syncd.McastGroup = netip.Addr{}
				return
			}
			syncd.McastGroup = addr
		},
	})
}

// leadingDigit reports whether the token starts with a decimal digit.
func leadingDigit(token string) bool {
	return token != "" && unicode.IsDigit(rune(token[0]))
}

func (p *Parser) handleLVSNetlinkCmdRcvBufs(line Line) {
	if val := p.rcvBufsSize(line, "lvs_netlink_cmd_rcv_bufs"); val != 0 {
		p.cfg.LVS.NetlinkCmdRcvBufs = val
	}
}

func (p *Parser) handleLVSNetlinkCmdRcvBufsForce(line Line) {
	if val, ok := p.boolArg(line, "lvs_netlink_cmd_rcv_bufs_force"); ok {
		p.cfg.LVS.NetlinkCmdRcvBufsForce = val
	}
}

func (p *Parser) handleLVSNetlinkMonitorRcvBufs(line Line) {
	if val := p.rcvBufsSize(line, "lvs_netlink_monitor_rcv_bufs"); val != 0 {
		p.cfg.LVS.NetlinkMonitorRcvBufs = val
	}
}

func (p *Parser) handleLVSNetlinkMonitorRcvBufsForce(line Line) {
	if val, ok := p.boolArg(line, "lvs_netlink_monitor_rcv_bufs_force"); ok {
		p.cfg.LVS.NetlinkMonitorRcvBufsForce = val
	}
}

func (p *Parser) handleLVSNotifyFIFO(line Line) {
	p.notifyFIFO(line, "lvs_notify_fifo", &p.cfg.LVS.NotifyFIFO)
}

func (p *Parser) handleLVSNotifyFIFOScript(line Line) {
	p.notifyFIFOScript(line, "lvs_notify_fifo_script", &p.cfg.LVS.NotifyFIFO)
}
