package config

func (p *Parser) handleRouterID(line Line) {
	if line.Tokens.Len() < 2 {
		p.diagf("router_id requires an identifier")
		return
	}
	p.cfg.RouterID = line.Tokens.At(1)
}

func (p *Parser) handleEmailFrom(line Line) {
	if line.Tokens.Len() < 2 {
		p.diagf("notification_email_from requires an email address")
		return
	}
	p.cfg.Mail.EmailFrom = line.Tokens.At(1)
}

func (p *Parser) handleSMTPServer(line Line) {
	if line.Tokens.Len() < 2 {
		p.diagf("smtp_server requires an address or host name")
		return
	}

	port := uint16(DefaultSMTPPort)
	if line.Tokens.Len() >= 3 {
		parsed, err := parsePort(line.Tokens.At(2))
		if err != nil {
			p.diagf("Invalid smtp_server port (%s) - ignoring", line.Tokens.At(2))
			return
		}
		port = parsed
	}

	addr, err := resolveSockAddr(p.opts.Resolver, line.Tokens.At(1), port)
	if err != nil {
		p.diagf("Invalid smtp_server %s - ignoring", line.Tokens.At(1))
		return
	}
	p.cfg.Mail.SMTPServer = addr
}

func (p *Parser) handleSMTPHelo(line Line) {
	if line.Tokens.Len() < 2 {
		return
	}
	p.cfg.Mail.SMTPHeloName = line.Tokens.At(1)
}

func (p *Parser) handleSMTPConnectTimeout(line Line) {
	if line.Tokens.Len() < 2 {
		p.diagf("smtp_connect_timeout requires a timeout in seconds")
		return
	}
	timeout, err := parseSeconds(line.Tokens.At(1), MinSMTPConnectTimeout, MaxSMTPConnectTimeout)
	if err != nil {
		p.diagf("Invalid smtp_connect_timeout (%s) - ignoring", line.Tokens.At(1))
		return
	}
	p.cfg.Mail.SMTPConnectTimeout = timeout
}

// handleNotificationEmail registers the recipients listed in the value
// block, one at a time, in input order. An empty or absent block is
// reported informationally, not as an error.
func (p *Parser) handleNotificationEmail(line Line) {
	if len(line.Block) == 0 {
		p.diagf("Warning - empty notification_email block")
		return
	}
	for _, email := range line.Block {
		p.cfg.Mail.NotificationEmails = append(p.cfg.Mail.NotificationEmails, email)
	}
}

func (p *Parser) handleSMTPAlert(line Line) {
	if val, ok := p.boolArg(line, "smtp_alert"); ok {
		p.cfg.Mail.SMTPAlert = val
	}
}

func (p *Parser) handleSMTPAlertVRRP(line Line) {
	if val, ok := p.boolArg(line, "smtp_alert_vrrp"); ok {
		p.cfg.Mail.SMTPAlertVRRP = val
	}
}

func (p *Parser) handleSMTPAlertChecker(line Line) {
	if val, ok := p.boolArg(line, "smtp_alert_checker"); ok {
		p.cfg.Mail.SMTPAlertChecker = val
	}
}

func (p *Parser) handleNoEmailFaults(line Line) {
	p.cfg.Mail.NoEmailFaults = true
}

// rcvBufsSize reads a netlink receive buffer size argument. Zero is never
// a valid size, so it doubles as the failure value.
func (p *Parser) rcvBufsSize(line Line, directive string) uint {
	if line.Tokens.Len() < 2 {
		p.diagf("%s size missing", directive)
		return 0
	}
	val, err := parseBoundedUint(line.Tokens.At(1), 1, uint64(^uint(0)>>1))
	if err != nil {
		p.diagf("%s size (%s) invalid", directive, line.Tokens.At(1))
		return 0
	}
	return uint(val)
}

// notifyFIFO sets a FIFO name, first definition wins.
func (p *Parser) notifyFIFO(line Line, directive string, fifo *NotifyFIFO) {
	if line.Tokens.Len() < 2 {
		p.diagf("No %s name specified", directive)
		return
	}
	if fifo.Name != "" {
		p.diagf("%s already specified - ignoring %s", directive, line.Tokens.At(1))
		return
	}
	fifo.Name = line.Tokens.At(1)
}

// notifyFIFOScript sets a FIFO drain script with its arguments, first
// definition wins.
func (p *Parser) notifyFIFOScript(line Line, directive string, fifo *NotifyFIFO) {
	if line.Tokens.Len() < 2 {
		p.diagf("No %s specified", directive)
		return
	}
	if len(fifo.Script) != 0 {
		p.diagf("%s already specified - ignoring %s", directive, line.Tokens.At(1))
		return
	}
	fifo.Script = append([]string(nil), line.Tokens[1:]...)
}

func (p *Parser) handleNotifyFIFO(line Line) {
	p.notifyFIFO(line, "notify_fifo", &p.cfg.NotifyFIFO)
}

func (p *Parser) handleNotifyFIFOScript(line Line) {
	p.notifyFIFOScript(line, "notify_fifo_script", &p.cfg.NotifyFIFO)
}
