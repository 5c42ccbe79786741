package config

// handleSNMPSocket sets the agentx socket path. The socket is set once;
// the daemon cannot re-home a live agentx connection.
func (p *Parser) handleSNMPSocket(line Line) {
	if line.Tokens.Len() < 2 {
		p.diagf("snmp_socket requires a socket path")
		return
	}
	if line.Tokens.Len() > 2 {
		p.diagf("Too many parameters specified for snmp_socket - ignoring")
		return
	}
	socket := line.Tokens.At(1)
	if len(socket) > MaxSNMPSocketLen {
		p.diagf("snmp_socket path too long - ignoring")
		return
	}
	if p.cfg.SNMP.Socket != "" {
		p.diagf("snmp_socket already set to %s - ignoring %s", p.cfg.SNMP.Socket, socket)
		return
	}
	p.cfg.SNMP.Socket = socket
}

func (p *Parser) handleEnableTraps(line Line) {
	p.cfg.SNMP.EnableTraps = true
}

func (p *Parser) handleEnableSNMPVRRP(line Line) {
	if line.Tokens.Directive() == "enable_snmp_keepalived" {
		p.diagf("enable_snmp_keepalived is deprecated - please use enable_snmp_vrrp")
	}
	p.cfg.SNMP.EnableVRRP = true
}

// handleEnableSNMPRFC turns on both RFC MIBs at once.
func (p *Parser) handleEnableSNMPRFC(line Line) {
	p.cfg.SNMP.EnableRFCv2 = true
	p.cfg.SNMP.EnableRFCv3 = true
}

func (p *Parser) handleEnableSNMPRFCv2(line Line) {
	p.cfg.SNMP.EnableRFCv2 = true
}

func (p *Parser) handleEnableSNMPRFCv3(line Line) {
	p.cfg.SNMP.EnableRFCv3 = true
}

func (p *Parser) handleEnableSNMPChecker(line Line) {
	p.cfg.SNMP.EnableChecker = true
}

func (p *Parser) handleEnableDBus(line Line) {
	p.cfg.DBus.Enable = true
}

func (p *Parser) handleDBusServiceName(line Line) {
	if line.Tokens.Len() < 2 {
		p.diagf("dbus_service_name requires a name")
		return
	}
	p.cfg.DBus.ServiceName = line.Tokens.At(1)
}
