package config

import (
	"net/netip"
	"time"
)

const (
	// LVSMaxTimeout is the upper bound for LVS connection timeouts (31 days).
	LVSMaxTimeout = 86400 * 31

	// SyncIDUnset marks the sync daemon id as "derive from the virtual router id".
	SyncIDUnset = -1

	// MaxSyncID is the largest valid sync daemon id.
	MaxSyncID = 255

	// IfNameMaxLen is the kernel limit for IPVS interface names (IP_VS_IFNAME_MAXLEN).
	IfNameMaxLen = 16

	// MaxSyncMaxLen is the largest sync daemon packet payload (65535 - IP - UDP headers).
	MaxSyncMaxLen = 65535 - 20 - 8

	// MaxChainNameLen is the iptables limit for chain names.
	MaxChainNameLen = 28

	// MaxIPSetNameLen is the longest accepted ipset name (the kernel allows
	// 32 bytes including the terminator; derived names need a suffix too).
	MaxIPSetNameLen = 30

	// MaxSNMPSocketLen is the longest accepted SNMP socket path.
	MaxSNMPSocketLen = 4096

	// MinProcessPriority and MaxProcessPriority bound nice values.
	MinProcessPriority = -20
	MaxProcessPriority = 19

	// MinRealtimePriority and MaxRealtimePriority bound SCHED_RR priorities on Linux.
	MinRealtimePriority = 1
	MaxRealtimePriority = 99

	// MinSMTPConnectTimeout and MaxSMTPConnectTimeout bound smtp_connect_timeout, in seconds.
	MinSMTPConnectTimeout = 1
	MaxSMTPConnectTimeout = 86400

	// DefaultSMTPPort is used when smtp_server carries no port argument.
	DefaultSMTPPort = 25

	// DefaultVRRPVersion is the protocol version advertised unless configured.
	DefaultVRRPVersion = 2
)

// Default multicast groups assigned by IANA for VRRP.
var (
	defaultMcastGroup4 = netip.MustParseAddr("224.0.0.18")
	defaultMcastGroup6 = netip.MustParseAddr("ff02::12")
)

// Features selects which optional directive subsets are installed in the
// keyword registry. It mirrors the build-time feature selection of the
// daemon: a disabled subsystem contributes no keywords at all, so its
// directives are rejected as unknown rather than silently accepted.
type Features struct {
	// LVS installs the load-balancer tuning directives (lvs_*, checker_*).
	LVS bool `toml:"lvs" json:"lvs"`
	// VRRP installs the VRRP tuning directives (vrrp_*).
	VRRP bool `toml:"vrrp" json:"vrrp"`
	// BFD installs the BFD process-control directives (bfd_*).
	BFD bool `toml:"bfd" json:"bfd"`
	// SNMP installs the SNMP socket and trap toggles.
	SNMP bool `toml:"snmp" json:"snmp"`
	// DBus installs the DBus toggles.
	DBus bool `toml:"dbus" json:"dbus"`
	// NetNamespace installs the network namespace directives.
	NetNamespace bool `toml:"net_namespace" json:"net_namespace"`
}

// AllFeatures returns a Features value with every optional subset enabled.
func AllFeatures() Features {
	return Features{
		LVS:          true,
		VRRP:         true,
		BFD:          true,
		SNMP:         true,
		DBus:         true,
		NetNamespace: true,
	}
}

// GlobalConfig holds the process-wide settings of the daemon. It is mutated
// by directive handlers during a configuration pass and treated as a
// read-only snapshot afterwards.
type GlobalConfig struct {
	// RouterID identifies this router in alerts and traps.
	RouterID string `toml:"router_id,omitempty" json:"router_id,omitempty"`
	// Instance is the process instance name. Set once per process lifetime and frozen across reloads.
	Instance string `toml:"instance,omitempty" json:"instance,omitempty"`
	// NetNamespace is the network namespace the daemon runs in. Frozen across reloads.
	NetNamespace string `toml:"net_namespace,omitempty" json:"net_namespace,omitempty"`
	// NamespaceWithIPSets keeps ipset names namespace-local.
	NamespaceWithIPSets bool `toml:"namespace_with_ipsets" json:"namespace_with_ipsets"`
	// UsePIDDir stores pid files in a per-instance directory.
	UsePIDDir bool `toml:"use_pid_dir" json:"use_pid_dir"`
	// LinkbeatUsePolling falls back to MII/ethtool polling for link state.
	LinkbeatUsePolling bool `toml:"linkbeat_use_polling" json:"linkbeat_use_polling"`
	// DynamicInterfaces allows configured interfaces to appear after startup.
	DynamicInterfaces bool `toml:"dynamic_interfaces" json:"dynamic_interfaces"`
	// DefaultInterface is the interface used when none is configured explicitly.
	DefaultInterface string `toml:"default_interface,omitempty" json:"default_interface,omitempty"`
	// ChildWaitTime is how long to wait for child processes on shutdown.
	ChildWaitTime time.Duration `toml:"child_wait_time" json:"child_wait_time" validate:"gte=0"`
	// ScriptUser is the default user notification scripts run as.
	ScriptUser string `toml:"script_user,omitempty" json:"script_user,omitempty"`
	// ScriptGroup is the default group notification scripts run as.
	ScriptGroup string `toml:"script_group,omitempty" json:"script_group,omitempty"`
	// EnableScriptSecurity refuses to run scripts writable by non-root users.
	EnableScriptSecurity bool `toml:"enable_script_security" json:"enable_script_security"`

	// Mail holds the SMTP alerting settings.
	Mail MailConfig `toml:"mail" json:"mail"`
	// LVS holds the load-balancer tuning settings.
	LVS LVSConfig `toml:"lvs" json:"lvs"`
	// VRRP holds the VRRP tuning settings.
	VRRP VRRPConfig `toml:"vrrp" json:"vrrp"`
	// Checker holds process-control settings for the healthcheck child.
	Checker ProcessConfig `toml:"checker" json:"checker"`
	// BFD holds process-control settings for the BFD child.
	BFD ProcessConfig `toml:"bfd" json:"bfd"`
	// SNMP holds the SNMP subsystem toggles.
	SNMP SNMPConfig `toml:"snmp" json:"snmp"`
	// DBus holds the DBus subsystem toggles.
	DBus DBusConfig `toml:"dbus" json:"dbus"`
	// NotifyFIFO is the global state-change notification FIFO.
	NotifyFIFO NotifyFIFO `toml:"notify_fifo" json:"notify_fifo"`
}

// MailConfig holds SMTP alerting settings.
type MailConfig struct {
	// EmailFrom is the sender address of alert mails.
	EmailFrom string `toml:"notification_email_from,omitempty" json:"notification_email_from,omitempty"`
	// SMTPServer is the resolved address and port of the SMTP relay.
	SMTPServer netip.AddrPort `toml:"smtp_server,omitempty" json:"smtp_server,omitempty" validate:"-"`
	// SMTPHeloName is the name presented in the SMTP HELO.
	SMTPHeloName string `toml:"smtp_helo_name,omitempty" json:"smtp_helo_name,omitempty"`
	// SMTPConnectTimeout bounds the SMTP connection establishment.
	SMTPConnectTimeout time.Duration `toml:"smtp_connect_timeout" json:"smtp_connect_timeout" validate:"gte=0"`
	// NotificationEmails are the alert recipients, in configuration order.
	NotificationEmails []string `toml:"notification_email,omitempty" json:"notification_email,omitempty"`
	// SMTPAlert enables alert mails for all subsystems.
	SMTPAlert bool `toml:"smtp_alert" json:"smtp_alert"`
	// SMTPAlertVRRP enables alert mails for VRRP state transitions.
	SMTPAlertVRRP bool `toml:"smtp_alert_vrrp" json:"smtp_alert_vrrp"`
	// SMTPAlertChecker enables alert mails for healthcheck transitions.
	SMTPAlertChecker bool `toml:"smtp_alert_checker" json:"smtp_alert_checker"`
	// NoEmailFaults suppresses alert mails for fault-state transitions.
	NoEmailFaults bool `toml:"no_email_faults" json:"no_email_faults"`
}

// LVSConfig holds IPVS tuning settings.
type LVSConfig struct {
	// TCPTimeout is the idle timeout for established TCP connections, in seconds (0 = kernel default).
	TCPTimeout int `toml:"tcp_timeout" json:"tcp_timeout" validate:"gte=0,lte=2678400"`
	// TCPFinTimeout is the timeout after a FIN, in seconds (0 = kernel default).
	TCPFinTimeout int `toml:"tcpfin_timeout" json:"tcpfin_timeout" validate:"gte=0,lte=2678400"`
	// UDPTimeout is the idle timeout for UDP, in seconds (0 = kernel default).
	UDPTimeout int `toml:"udp_timeout" json:"udp_timeout" validate:"gte=0,lte=2678400"`
	// Flush removes all virtual servers from the kernel on startup.
	Flush bool `toml:"flush" json:"flush"`
	// SyncDaemon holds connection sync daemon settings.
	SyncDaemon SyncDaemonConfig `toml:"sync_daemon" json:"sync_daemon"`
	// NetlinkCmdRcvBufs sizes the receive buffer of the LVS command netlink socket.
	NetlinkCmdRcvBufs uint `toml:"netlink_cmd_rcv_bufs,omitempty" json:"netlink_cmd_rcv_bufs,omitempty"`
	// NetlinkCmdRcvBufsForce sets the buffer size even beyond rmem_max.
	NetlinkCmdRcvBufsForce bool `toml:"netlink_cmd_rcv_bufs_force" json:"netlink_cmd_rcv_bufs_force"`
	// NetlinkMonitorRcvBufs sizes the receive buffer of the LVS monitor netlink socket.
	NetlinkMonitorRcvBufs uint `toml:"netlink_monitor_rcv_bufs,omitempty" json:"netlink_monitor_rcv_bufs,omitempty"`
	// NetlinkMonitorRcvBufsForce sets the buffer size even beyond rmem_max.
	NetlinkMonitorRcvBufsForce bool `toml:"netlink_monitor_rcv_bufs_force" json:"netlink_monitor_rcv_bufs_force"`
	// NotifyFIFO is the healthchecker state-change notification FIFO.
	NotifyFIFO NotifyFIFO `toml:"notify_fifo" json:"notify_fifo"`
}

// SyncDaemonConfig holds IPVS connection sync daemon settings.
type SyncDaemonConfig struct {
	// Interface carries the sync traffic.
	Interface string `toml:"interface,omitempty" json:"interface,omitempty" validate:"max=15"`
	// VRRPInstance is the VRRP instance whose state drives the daemon.
	VRRPInstance string `toml:"vrrp_instance,omitempty" json:"vrrp_instance,omitempty" validate:"max=15"`
	// SyncID distinguishes parallel sync daemons (SyncIDUnset = derive from the virtual router id).
	SyncID int `toml:"sync_id" json:"sync_id" validate:"gte=-1,lte=255"`
	// MaxLen is the sync packet payload limit in bytes (0 = kernel default).
	MaxLen int `toml:"max_len" json:"max_len" validate:"gte=0,lte=65507"`
	// McastPort is the UDP port for sync traffic (0 = kernel default).
	McastPort int `toml:"mcast_port" json:"mcast_port" validate:"gte=0,lte=65535"`
	// TTL is the multicast TTL for sync traffic (0 = kernel default).
	TTL int `toml:"ttl" json:"ttl" validate:"gte=0,lte=255"`
	// McastGroup is the multicast group for sync traffic (unspecified = kernel default).
	McastGroup netip.Addr `toml:"mcast_group,omitempty" json:"mcast_group,omitempty" validate:"-"`
}

// VRRPConfig holds VRRP protocol tuning settings.
type VRRPConfig struct {
	// Version is the VRRP protocol version (2 or 3).
	Version int `toml:"version" json:"version" validate:"oneof=2 3"`
	// McastGroup4 is the IPv4 multicast group adverts are sent to.
	McastGroup4 netip.Addr `toml:"mcast_group4" json:"mcast_group4" validate:"-"`
	// McastGroup6 is the IPv6 multicast group adverts are sent to.
	McastGroup6 netip.Addr `toml:"mcast_group6" json:"mcast_group6" validate:"-"`
	// GarpMasterDelay delays the second gratuitous ARP burst after becoming master.
	GarpMasterDelay time.Duration `toml:"garp_master_delay" json:"garp_master_delay" validate:"gte=0"`
	// GarpMasterRep is the number of gratuitous ARPs per burst.
	GarpMasterRep int `toml:"garp_master_repeat" json:"garp_master_repeat" validate:"gte=1"`
	// GarpMasterRefresh re-sends gratuitous ARPs periodically while master (0 = disabled).
	GarpMasterRefresh time.Duration `toml:"garp_master_refresh" json:"garp_master_refresh" validate:"gte=0"`
	// GarpMasterRefreshRep is the number of gratuitous ARPs per refresh.
	GarpMasterRefreshRep int `toml:"garp_master_refresh_repeat" json:"garp_master_refresh_repeat" validate:"gte=1"`
	// GarpLowerPrioDelay delays the gratuitous ARP burst after a lower-priority advert.
	GarpLowerPrioDelay time.Duration `toml:"garp_lower_prio_delay" json:"garp_lower_prio_delay" validate:"gte=0"`
	// GarpLowerPrioRep is the number of gratuitous ARPs after a lower-priority advert.
	GarpLowerPrioRep int `toml:"garp_lower_prio_repeat" json:"garp_lower_prio_repeat" validate:"gte=0"`
	// GarpInterval spaces gratuitous ARPs within a burst.
	GarpInterval time.Duration `toml:"garp_interval" json:"garp_interval" validate:"gte=0"`
	// GnaInterval spaces unsolicited neighbour advertisements within a burst.
	GnaInterval time.Duration `toml:"gna_interval" json:"gna_interval" validate:"gte=0"`
	// LowerPrioNoAdvert suppresses the advert answering a lower-priority one.
	LowerPrioNoAdvert bool `toml:"lower_prio_no_advert" json:"lower_prio_no_advert"`
	// HigherPrioSendAdvert answers a higher-priority advert with our own.
	HigherPrioSendAdvert bool `toml:"higher_prio_send_advert" json:"higher_prio_send_advert"`
	// IPTablesInChain receives the block rules for incoming advert traffic ("" = disabled).
	IPTablesInChain string `toml:"iptables_in_chain" json:"iptables_in_chain" validate:"max=28"`
	// IPTablesOutChain receives the block rules for outgoing advert traffic ("" = disabled).
	IPTablesOutChain string `toml:"iptables_out_chain" json:"iptables_out_chain" validate:"max=28"`
	// UsingIPSets selects ipset-backed block rules (bare vrrp_ipsets disables them).
	UsingIPSets bool `toml:"using_ipsets" json:"using_ipsets"`
	// IPSetAddress is the ipset holding blocked IPv4 addresses.
	IPSetAddress string `toml:"ipset_address" json:"ipset_address" validate:"max=30"`
	// IPSetAddress6 is the ipset holding blocked IPv6 addresses.
	IPSetAddress6 string `toml:"ipset_address6" json:"ipset_address6"`
	// IPSetAddressIface6 is the ipset holding blocked link-local address/interface pairs.
	IPSetAddressIface6 string `toml:"ipset_address_iface6" json:"ipset_address_iface6"`
	// CheckUnicastSrc verifies the source of unicast adverts.
	CheckUnicastSrc bool `toml:"check_unicast_src" json:"check_unicast_src"`
	// SkipCheckAdvAddr skips address-list verification on adverts from a known master.
	SkipCheckAdvAddr bool `toml:"skip_check_adv_addr" json:"skip_check_adv_addr"`
	// Strict enforces strict RFC compliance.
	Strict bool `toml:"strict" json:"strict"`
	// Process holds process-control settings for the VRRP child.
	Process ProcessConfig `toml:"process" json:"process"`
	// NetlinkCmdRcvBufs sizes the receive buffer of the VRRP command netlink socket.
	NetlinkCmdRcvBufs uint `toml:"netlink_cmd_rcv_bufs,omitempty" json:"netlink_cmd_rcv_bufs,omitempty"`
	// NetlinkCmdRcvBufsForce sets the buffer size even beyond rmem_max.
	NetlinkCmdRcvBufsForce bool `toml:"netlink_cmd_rcv_bufs_force" json:"netlink_cmd_rcv_bufs_force"`
	// NetlinkMonitorRcvBufs sizes the receive buffer of the VRRP monitor netlink socket.
	NetlinkMonitorRcvBufs uint `toml:"netlink_monitor_rcv_bufs,omitempty" json:"netlink_monitor_rcv_bufs,omitempty"`
	// NetlinkMonitorRcvBufsForce sets the buffer size even beyond rmem_max.
	NetlinkMonitorRcvBufsForce bool `toml:"netlink_monitor_rcv_bufs_force" json:"netlink_monitor_rcv_bufs_force"`
	// NotifyFIFO is the VRRP state-change notification FIFO.
	NotifyFIFO NotifyFIFO `toml:"notify_fifo" json:"notify_fifo"`
}

// ProcessConfig holds scheduling settings for one daemon child process.
type ProcessConfig struct {
	// Priority is the nice value (0 = leave unchanged).
	Priority int `toml:"priority" json:"priority" validate:"gte=-20,lte=19"`
	// NoSwap locks the process address space into memory.
	NoSwap bool `toml:"no_swap" json:"no_swap"`
	// RealtimePriority is the SCHED_RR priority (0 = no realtime scheduling).
	RealtimePriority int `toml:"rt_priority" json:"rt_priority" validate:"gte=0,lte=99"`
	// RlimitRTTime is the RLIMIT_RTTIME value in microseconds (0 = unset).
	RlimitRTTime uint64 `toml:"rlimit_rtime" json:"rlimit_rtime"`
}

// NotifyFIFO holds one state-change notification FIFO definition.
type NotifyFIFO struct {
	// Name is the FIFO path. Set once; later definitions are ignored.
	Name string `toml:"name,omitempty" json:"name,omitempty"`
	// Script is the command (with arguments) started to drain the FIFO.
	Script []string `toml:"script,omitempty" json:"script,omitempty"`
}

// SNMPConfig holds SNMP subsystem toggles.
type SNMPConfig struct {
	// Socket is the agentx socket to connect to. Set once; later definitions are ignored.
	Socket string `toml:"socket,omitempty" json:"socket,omitempty" validate:"max=4096"`
	// EnableTraps sends SNMP traps on state changes.
	EnableTraps bool `toml:"enable_traps" json:"enable_traps"`
	// EnableVRRP serves the keepalived VRRP MIB.
	EnableVRRP bool `toml:"enable_vrrp" json:"enable_vrrp"`
	// EnableRFCv2 serves the RFC 2787 (VRRPv2) MIB.
	EnableRFCv2 bool `toml:"enable_rfcv2" json:"enable_rfcv2"`
	// EnableRFCv3 serves the RFC 6527 (VRRPv3) MIB.
	EnableRFCv3 bool `toml:"enable_rfcv3" json:"enable_rfcv3"`
	// EnableChecker serves the keepalived healthchecker MIB.
	EnableChecker bool `toml:"enable_checker" json:"enable_checker"`
}

// DBusConfig holds DBus subsystem toggles.
type DBusConfig struct {
	// Enable exports the VRRP instances on DBus.
	Enable bool `toml:"enable" json:"enable"`
	// ServiceName overrides the DBus service name.
	ServiceName string `toml:"service_name,omitempty" json:"service_name,omitempty"`
}

// NewGlobalConfig returns a configuration with all defaults applied. Every
// directive handler either leaves a default in place or overwrites it under
// the policy documented on the handler.
func NewGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		ChildWaitTime: 5 * time.Second,
		Mail: MailConfig{
			SMTPConnectTimeout: 30 * time.Second,
		},
		LVS: LVSConfig{
			SyncDaemon: SyncDaemonConfig{
				SyncID: SyncIDUnset,
			},
		},
		VRRP: VRRPConfig{
			Version:              DefaultVRRPVersion,
			McastGroup4:          defaultMcastGroup4,
			McastGroup6:          defaultMcastGroup6,
			GarpMasterDelay:      5 * time.Second,
			GarpMasterRep:        5,
			GarpMasterRefreshRep: 1,
			IPTablesInChain:      "INPUT",
			UsingIPSets:          true,
			IPSetAddress:         "keepalived",
			IPSetAddress6:        "keepalived6",
			IPSetAddressIface6:   "keepalived_if6",
		},
	}
}

// Clone returns a deep copy of the configuration.
func (c *GlobalConfig) Clone() *GlobalConfig {
	out := *c
	out.Mail.NotificationEmails = append([]string(nil), c.Mail.NotificationEmails...)
	out.NotifyFIFO.Script = append([]string(nil), c.NotifyFIFO.Script...)
	out.VRRP.NotifyFIFO.Script = append([]string(nil), c.VRRP.NotifyFIFO.Script...)
	out.LVS.NotifyFIFO.Script = append([]string(nil), c.LVS.NotifyFIFO.Script...)
	return &out
}
