package config

import (
	"net/netip"
	"strings"
	"time"
)

// handleMcastGroup4 and handleMcastGroup6 set the advert multicast groups.
// A value that parses but is not a multicast address of the right family
// forces the field back to unspecified rather than leaving a half-applied
// state.
func (p *Parser) handleMcastGroup4(line Line) {
	p.setMcastGroup(line, "vrrp_mcast_group4", &p.cfg.VRRP.McastGroup4, func(addr netip.Addr) bool {
		return addr.Is4()
	})
}

func (p *Parser) handleMcastGroup6(line Line) {
	p.setMcastGroup(line, "vrrp_mcast_group6", &p.cfg.VRRP.McastGroup6, func(addr netip.Addr) bool {
		return addr.Is6() && !addr.Is4In6()
	})
}

func (p *Parser) setMcastGroup(line Line, directive string, field *netip.Addr, family func(netip.Addr) bool) {
	if line.Tokens.Len() < 2 {
		p.diagf("%s requires an address", directive)
		return
	}
	token := line.Tokens.At(1)

	addr, err := netip.ParseAddr(token)
	if err != nil || !family(addr) {
		p.diagf("Configuration error: Cant parse %s [%s]. Skipping", directive, token)
		return
	}
	if !addr.IsMulticast() {
		p.diagf("%s address %s is not multicast - ignoring", directive, token)
		*field = netip.Addr{}
		return
	}
	*field = addr
}

func (p *Parser) handleGarpMasterDelay(line Line) {
	if line.Tokens.Len() < 2 {
		p.diagf("vrrp_garp_master_delay requires a delay in seconds")
		return
	}
	delay, err := parseSeconds(line.Tokens.At(1), 0, LVSMaxTimeout)
	if err != nil {
		p.diagf("Invalid vrrp_garp_master_delay (%s) - ignoring", line.Tokens.At(1))
		return
	}
	p.cfg.VRRP.GarpMasterDelay = delay
}

// garpRepeat reads a repeat count, raising it to 1 when below.
func (p *Parser) garpRepeat(line Line, directive string) (int, bool) {
	if line.Tokens.Len() < 2 {
		p.diagf("%s requires a repeat count", directive)
		return 0, false
	}
	rep, err := parseInt(line.Tokens.At(1))
	if err != nil {
		p.diagf("Invalid %s (%s) - ignoring", directive, line.Tokens.At(1))
		return 0, false
	}
	if rep < 1 {
		p.diagf("%s (%d) less than 1 - setting to 1", directive, rep)
		rep = 1
	}
	return int(rep), true
}

func (p *Parser) handleGarpMasterRep(line Line) {
	if rep, ok := p.garpRepeat(line, "vrrp_garp_master_repeat"); ok {
		p.cfg.VRRP.GarpMasterRep = rep
	}
}

func (p *Parser) handleGarpMasterRefresh(line Line) {
	if line.Tokens.Len() < 2 {
		p.diagf("vrrp_garp_master_refresh requires an interval in seconds")
		return
	}
	refresh, err := parseSeconds(line.Tokens.At(1), 0, LVSMaxTimeout)
	if err != nil {
		p.diagf("Invalid vrrp_garp_master_refresh (%s) - ignoring", line.Tokens.At(1))
		return
	}
	p.cfg.VRRP.GarpMasterRefresh = refresh
}

func (p *Parser) handleGarpMasterRefreshRep(line Line) {
	if rep, ok := p.garpRepeat(line, "vrrp_garp_master_refresh_repeat"); ok {
		p.cfg.VRRP.GarpMasterRefreshRep = rep
	}
}

func (p *Parser) handleGarpLowerPrioDelay(line Line) {
	if line.Tokens.Len() < 2 {
		p.diagf("vrrp_garp_lower_prio_delay requires a delay in seconds")
		return
	}
	delay, err := parseSeconds(line.Tokens.At(1), 0, LVSMaxTimeout)
	if err != nil {
		p.diagf("Invalid vrrp_garp_lower_prio_delay (%s) - ignoring", line.Tokens.At(1))
		return
	}
	p.cfg.VRRP.GarpLowerPrioDelay = delay
}

func (p *Parser) handleGarpLowerPrioRep(line Line) {
	if line.Tokens.Len() < 2 {
		p.diagf("vrrp_garp_lower_prio_repeat requires a repeat count")
		return
	}
	rep, err := parseBoundedInt(line.Tokens.At(1), 0, int64(^uint32(0)))
	if err != nil {
		p.diagf("Invalid vrrp_garp_lower_prio_repeat (%s) - ignoring", line.Tokens.At(1))
		return
	}
	p.cfg.VRRP.GarpLowerPrioRep = int(rep)
}

// subSecondInterval reads a fractional-second interval, warning when it is
// a second or more since such values defeat the purpose of burst spacing.
func (p *Parser) subSecondInterval(line Line, directive string) (time.Duration, bool) {
	if line.Tokens.Len() < 2 {
		p.diagf("%s requires an interval in seconds", directive)
		return 0, false
	}
	interval, err := parseFractionalSeconds(line.Tokens.At(1))
	if err != nil {
		p.diagf("Invalid %s (%s) - ignoring", directive, line.Tokens.At(1))
		return 0, false
	}
	if interval >= time.Second {
		p.diagf("The %s is very large - %s seconds", directive, line.Tokens.At(1))
	}
	return interval, true
}

func (p *Parser) handleGarpInterval(line Line) {
	if interval, ok := p.subSecondInterval(line, "vrrp_garp_interval"); ok {
		p.cfg.VRRP.GarpInterval = interval
	}
}

func (p *Parser) handleGnaInterval(line Line) {
	if interval, ok := p.subSecondInterval(line, "vrrp_gna_interval"); ok {
		p.cfg.VRRP.GnaInterval = interval
	}
}

func (p *Parser) handleLowerPrioNoAdvert(line Line) {
	if val, ok := p.boolArg(line, "vrrp_lower_prio_no_advert"); ok {
		p.cfg.VRRP.LowerPrioNoAdvert = val
	}
}

func (p *Parser) handleHigherPrioSendAdvert(line Line) {
	if val, ok := p.boolArg(line, "vrrp_higher_prio_send_advert"); ok {
		p.cfg.VRRP.HigherPrioSendAdvert = val
	}
}

func (p *Parser) handleVRRPVersion(line Line) {
	if line.Tokens.Len() < 2 {
		p.diagf("vrrp_version requires a version")
		return
	}
	version, err := parseBoundedInt(line.Tokens.At(1), 2, 3)
	if err != nil {
		p.diagf("VRRP version must be either 2 or 3 (%s) - ignoring", line.Tokens.At(1))
		return
	}
	p.cfg.VRRP.Version = int(version)
}

// handleVRRPIPTables names the chains receiving advert block rules. The
// bare directive disables both chains.
func (p *Parser) handleVRRPIPTables(line Line) {
	p.cfg.VRRP.IPTablesInChain = ""
	p.cfg.VRRP.IPTablesOutChain = ""

	if line.Tokens.Len() >= 2 {
		if len(line.Tokens.At(1)) > MaxChainNameLen {
			p.diagf("vrrp_iptables in chain name too long - ignored")
			return
		}
		p.cfg.VRRP.IPTablesInChain = line.Tokens.At(1)
	}
	if line.Tokens.Len() >= 3 {
		if len(line.Tokens.At(2)) > MaxChainNameLen {
			p.diagf("vrrp_iptables out chain name too long - ignored")
			return
		}
		p.cfg.VRRP.IPTablesOutChain = line.Tokens.At(2)
	}
}

// handleVRRPIPSets names the ipsets backing the advert block rules. Names
// not given are derived from the previous one: the IPv6 set appends "6",
// the link-local set swaps a trailing "6" for "_if6". The bare directive
// disables ipset usage altogether.
func (p *Parser) handleVRRPIPSets(line Line) {
	if line.Tokens.Len() < 2 {
		p.cfg.VRRP.UsingIPSets = false
		return
	}

	name := line.Tokens.At(1)
	if len(name) > MaxIPSetNameLen {
		p.diagf("ipset address name too long - ignored")
		return
	}
	p.cfg.VRRP.IPSetAddress = name

	if line.Tokens.Len() >= 3 {
		name6 := line.Tokens.At(2)
		if len(name6) > MaxIPSetNameLen {
			p.diagf("ipset IPv6 address name too long - ignored")
			return
		}
		p.cfg.VRRP.IPSetAddress6 = name6
	} else {
		p.cfg.VRRP.IPSetAddress6 = name + "6"
	}

	if line.Tokens.Len() >= 4 {
		iface6 := line.Tokens.At(3)
		if len(iface6) > MaxIPSetNameLen {
			p.diagf("ipset IPv6 address_iface name too long - ignored")
			return
		}
		p.cfg.VRRP.IPSetAddressIface6 = iface6
	} else {
		p.cfg.VRRP.IPSetAddressIface6 = strings.TrimSuffix(p.cfg.VRRP.IPSetAddress6, "6") + "_if6"
	}
}

func (p *Parser) handleCheckUnicastSrc(line Line) {
	p.cfg.VRRP.CheckUnicastSrc = true
}

func (p *Parser) handleSkipCheckAdvAddr(line Line) {
	p.cfg.VRRP.SkipCheckAdvAddr = true
}

func (p *Parser) handleVRRPStrict(line Line) {
	p.cfg.VRRP.Strict = true
}

func (p *Parser) handleVRRPNetlinkCmdRcvBufs(line Line) {
	if val := p.rcvBufsSize(line, "vrrp_netlink_cmd_rcv_bufs"); val != 0 {
		p.cfg.VRRP.NetlinkCmdRcvBufs = val
	}
}

func (p *Parser) handleVRRPNetlinkCmdRcvBufsForce(line Line) {
	if val, ok := p.boolArg(line, "vrrp_netlink_cmd_rcv_bufs_force"); ok {
		p.cfg.VRRP.NetlinkCmdRcvBufsForce = val
	}
}

func (p *Parser) handleVRRPNetlinkMonitorRcvBufs(line Line) {
	if val := p.rcvBufsSize(line, "vrrp_netlink_monitor_rcv_bufs"); val != 0 {
		p.cfg.VRRP.NetlinkMonitorRcvBufs = val
	}
}

func (p *Parser) handleVRRPNetlinkMonitorRcvBufsForce(line Line) {
	if val, ok := p.boolArg(line, "vrrp_netlink_monitor_rcv_bufs_force"); ok {
		p.cfg.VRRP.NetlinkMonitorRcvBufsForce = val
	}
}

func (p *Parser) handleVRRPNotifyFIFO(line Line) {
	p.notifyFIFO(line, "vrrp_notify_fifo", &p.cfg.VRRP.NotifyFIFO)
}

func (p *Parser) handleVRRPNotifyFIFOScript(line Line) {
	p.notifyFIFOScript(line, "vrrp_notify_fifo_script", &p.cfg.VRRP.NotifyFIFO)
}
