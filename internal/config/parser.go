package config

import (
	"fmt"

	"github.com/eworm-de/keepalived/internal/log"
)

// Handler is the validation/mutation logic bound to one directive name.
// Handlers never fail: every outcome is either a mutation of the
// configuration under construction or a diagnostic, and the parse pass
// continues regardless.
type Handler func(line Line)

// InterfaceResolver answers whether a network interface exists. The
// production implementation is netlink-backed; tests inject stubs.
type InterfaceResolver interface {
	InterfaceExists(name string) bool
}

// UserLookup verifies that a script user (and optional group) exist on the
// system. The production implementation uses the OS user database.
type UserLookup interface {
	Lookup(user, group string) error
}

// ParserOptions configures a configuration parse pass.
type ParserOptions struct {
	// Features selects the directive subsets installed in the registry.
	Features Features
	// Reload marks this pass as a live reload. Identity-like fields
	// (instance, net_namespace) are frozen to the previous snapshot and
	// their handlers mutate nothing.
	Reload bool
	// Previous is the snapshot of the prior pass, consulted for frozen
	// fields during a reload. Ignored when Reload is false.
	Previous *GlobalConfig
	// Interfaces checks interface existence for default_interface.
	// Optional; nil skips the check.
	Interfaces InterfaceResolver
	// Resolver performs name resolution for address-valued directives.
	// Optional; nil restricts those directives to numeric literals.
	Resolver AddressResolver
	// Users verifies script_user accounts. Optional; nil skips the check.
	Users UserLookup
}

// Parser drives one configuration pass: it dispatches token lines to
// directive handlers which validate arguments and assemble the global
// configuration. A Parser must not be shared between goroutines; the pass
// is strictly sequential and the configuration has exactly one writer
// until Result is called.
type Parser struct {
	cfg      *GlobalConfig
	opts     ParserOptions
	keywords map[string]Handler
	diags    []string
}

// NewParser creates a parser with a fresh default configuration.
func NewParser(opts ParserOptions) *Parser {
	p := &Parser{
		cfg:  NewGlobalConfig(),
		opts: opts,
	}
	if opts.Reload && opts.Previous != nil {
		// Identity must not change across a live reload.
		p.cfg.Instance = opts.Previous.Instance
		p.cfg.NetNamespace = opts.Previous.NetNamespace
		p.cfg.UsePIDDir = opts.Previous.UsePIDDir
	}
	p.keywords = p.installKeywords()
	return p
}

// Apply processes one directive line. An empty line is a no-op with no
// side effect and no diagnostic.
func (p *Parser) Apply(line Line) {
	if line.Tokens.Len() == 0 {
		return
	}
	handler, ok := p.keywords[line.Tokens.Directive()]
	if !ok {
		p.diagf("Unknown global directive %s - ignoring", line.Tokens.Directive())
		return
	}
	handler(line)
}

// ParseAll processes every line in order and returns the assembled
// configuration. Failures are local to the offending line; the pass never
// aborts.
func (p *Parser) ParseAll(lines []Line) *GlobalConfig {
	for _, line := range lines {
		p.Apply(line)
	}
	return p.Result()
}

// Result returns the configuration assembled so far. After the parse pass
// the returned value is treated as a read-only snapshot.
func (p *Parser) Result() *GlobalConfig {
	return p.cfg
}

// Diagnostics returns every diagnostic emitted so far, in order.
func (p *Parser) Diagnostics() []string {
	return p.diags
}

// diagf records a diagnostic and forwards it to the log. Exactly one
// message is emitted per validation failure or policy decision.
func (p *Parser) diagf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	p.diags = append(p.diags, msg)
	log.Warnf("%s", msg)
}

// installKeywords builds the directive registry once per parse pass. The
// table is static for the selected feature set: a directive belonging to a
// disabled subsystem is simply absent.
func (p *Parser) installKeywords() map[string]Handler {
	kw := map[string]Handler{
		"router_id":               p.handleRouterID,
		"notification_email_from": p.handleEmailFrom,
		"smtp_server":             p.handleSMTPServer,
		"smtp_helo_name":          p.handleSMTPHelo,
		"smtp_connect_timeout":    p.handleSMTPConnectTimeout,
		"notification_email":      p.handleNotificationEmail,
		"smtp_alert":              p.handleSMTPAlert,
		"instance":                p.handleInstance,
		"use_pid_dir":             p.handleUsePIDDir,
		"child_wait_time":         p.handleChildWaitTime,
		"linkbeat_use_polling":    p.handleLinkbeatUsePolling,
		"script_user":             p.handleScriptUser,
		"enable_script_security":  p.handleScriptSecurity,
		"notify_fifo":             p.handleNotifyFIFO,
		"notify_fifo_script":      p.handleNotifyFIFOScript,
	}

	if p.opts.Features.NetNamespace {
		kw["net_namespace"] = p.handleNetNamespace
		kw["namespace_with_ipsets"] = p.handleNamespaceWithIPSets
	}

	if p.opts.Features.VRRP {
		kw["smtp_alert_vrrp"] = p.handleSMTPAlertVRRP
		kw["dynamic_interfaces"] = p.handleDynamicInterfaces
		kw["no_email_faults"] = p.handleNoEmailFaults
		kw["default_interface"] = p.handleDefaultInterface
		kw["vrrp_mcast_group4"] = p.handleMcastGroup4
		kw["vrrp_mcast_group6"] = p.handleMcastGroup6
		kw["vrrp_garp_master_delay"] = p.handleGarpMasterDelay
		kw["vrrp_garp_master_repeat"] = p.handleGarpMasterRep
		kw["vrrp_garp_master_refresh"] = p.handleGarpMasterRefresh
		kw["vrrp_garp_master_refresh_repeat"] = p.handleGarpMasterRefreshRep
		kw["vrrp_garp_lower_prio_delay"] = p.handleGarpLowerPrioDelay
		kw["vrrp_garp_lower_prio_repeat"] = p.handleGarpLowerPrioRep
		kw["vrrp_garp_interval"] = p.handleGarpInterval
		kw["vrrp_gna_interval"] = p.handleGnaInterval
		kw["vrrp_lower_prio_no_advert"] = p.handleLowerPrioNoAdvert
		kw["vrrp_higher_prio_send_advert"] = p.handleHigherPrioSendAdvert
		kw["vrrp_version"] = p.handleVRRPVersion
		kw["vrrp_iptables"] = p.handleVRRPIPTables
		kw["vrrp_ipsets"] = p.handleVRRPIPSets
		kw["vrrp_check_unicast_src"] = p.handleCheckUnicastSrc
		kw["vrrp_skip_check_adv_addr"] = p.handleSkipCheckAdvAddr
		kw["vrrp_strict"] = p.handleVRRPStrict
		kw["vrrp_priority"] = p.handleVRRPPriority
		kw["vrrp_no_swap"] = p.handleVRRPNoSwap
		kw["vrrp_rt_priority"] = p.handleVRRPRTPriority
		kw["vrrp_rlimit_rtime"] = p.handleVRRPRlimitRTime
		kw["vrrp_notify_fifo"] = p.handleVRRPNotifyFIFO
		kw["vrrp_notify_fifo_script"] = p.handleVRRPNotifyFIFOScript
		kw["vrrp_netlink_cmd_rcv_bufs"] = p.handleVRRPNetlinkCmdRcvBufs
		kw["vrrp_netlink_cmd_rcv_bufs_force"] = p.handleVRRPNetlinkCmdRcvBufsForce
		kw["vrrp_netlink_monitor_rcv_bufs"] = p.handleVRRPNetlinkMonitorRcvBufs
		kw["vrrp_netlink_monitor_rcv_bufs_force"] = p.handleVRRPNetlinkMonitorRcvBufsForce
	}

	if p.opts.Features.LVS {
		kw["smtp_alert_checker"] = p.handleSMTPAlertChecker
		kw["lvs_timeouts"] = p.handleLVSTimeouts
		kw["lvs_flush"] = p.handleLVSFlush
		kw["checker_priority"] = p.handleCheckerPriority
		kw["checker_no_swap"] = p.handleCheckerNoSwap
		kw["checker_rt_priority"] = p.handleCheckerRTPriority
		kw["checker_rlimit_rtime"] = p.handleCheckerRlimitRTime
		kw["lvs_notify_fifo"] = p.handleLVSNotifyFIFO
		kw["lvs_notify_fifo_script"] = p.handleLVSNotifyFIFOScript
		kw["lvs_netlink_cmd_rcv_bufs"] = p.handleLVSNetlinkCmdRcvBufs
		kw["lvs_netlink_cmd_rcv_bufs_force"] = p.handleLVSNetlinkCmdRcvBufsForce
		kw["lvs_netlink_monitor_rcv_bufs"] = p.handleLVSNetlinkMonitorRcvBufs
		kw["lvs_netlink_monitor_rcv_bufs_force"] = p.handleLVSNetlinkMonitorRcvBufsForce
	}

	if p.opts.Features.LVS && p.opts.Features.VRRP {
		kw["lvs_sync_daemon"] = p.handleLVSSyncDaemon
	}

	if p.opts.Features.BFD {
		kw["bfd_priority"] = p.handleBFDPriority
		kw["bfd_no_swap"] = p.handleBFDNoSwap
		kw["bfd_rt_priority"] = p.handleBFDRTPriority
		kw["bfd_rlimit_rtime"] = p.handleBFDRlimitRTime
	}

	if p.opts.Features.SNMP {
		kw["snmp_socket"] = p.handleSNMPSocket
		kw["enable_traps"] = p.handleEnableTraps
		kw["enable_snmp_vrrp"] = p.handleEnableSNMPVRRP
		kw["enable_snmp_keepalived"] = p.handleEnableSNMPVRRP // Deprecated alias
		kw["enable_snmp_rfc"] = p.handleEnableSNMPRFC
		kw["enable_snmp_rfcv2"] = p.handleEnableSNMPRFCv2
		kw["enable_snmp_rfcv3"] = p.handleEnableSNMPRFCv3
		kw["enable_snmp_checker"] = p.handleEnableSNMPChecker
	}

	if p.opts.Features.DBus {
		kw["enable_dbus"] = p.handleEnableDBus
		kw["dbus_service_name"] = p.handleDBusServiceName
	}

	return kw
}

// boolArg reads the optional boolean argument of an enable-style
// directive. Absence enables the feature; an unrecognized token rejects
// the whole line with a diagnostic.
func (p *Parser) boolArg(line Line, directive string) (bool, bool) {
	if line.Tokens.Len() < 2 {
		return true, true
	}
	val, err := parseBool(line.Tokens.At(1))
	if err != nil {
		p.diagf("Invalid value '%s' for global %s specified", line.Tokens.At(1), directive)
		return false, false
	}
	return val, true
}
