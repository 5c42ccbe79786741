// Package notify renders SMTP alert messages for state transitions.
package notify

import (
	"strings"

	"github.com/valyala/fasttemplate"

	"github.com/eworm-de/keepalived/internal/config"
)

// Template placeholder names available in alert subjects and bodies.
const (
	TmplRouterID = "router_id"
	TmplInstance = "instance"
	TmplElement  = "element"
	TmplState    = "state"
)

// Default alert templates, matching the wording of the mails the daemon
// has always sent.
const (
	DefaultSubject = "[{{router_id}}] {{element}} - Entering {{state}} state"
	DefaultBody    = "=> {{element}} is in {{state}} state <=\n"
)

// Event describes one state transition to be announced.
type Event struct {
	// Element is the VRRP instance, sync group or virtual server concerned.
	Element string
	// State is the state entered (MASTER, BACKUP, FAULT, ...).
	State string
}

// Renderer expands alert templates with configuration and event values.
type Renderer struct {
	cfg     *config.GlobalConfig
	subject *fasttemplate.Template
	body    *fasttemplate.Template
}

// NewRenderer compiles the default templates against a configuration.
func NewRenderer(cfg *config.GlobalConfig) *Renderer {
	return &Renderer{
		cfg:     cfg,
		subject: fasttemplate.New(DefaultSubject, "{{", "}}"),
		body:    fasttemplate.New(DefaultBody, "{{", "}}"),
	}
}

// Subject renders the alert subject line for an event.
func (r *Renderer) Subject(event Event) string {
	return r.subject.ExecuteString(r.values(event))
}

// Body renders the alert mail body for an event.
func (r *Renderer) Body(event Event) string {
	return r.body.ExecuteString(r.values(event))
}

func (r *Renderer) values(event Event) map[string]interface{} {
	routerID := r.cfg.RouterID
	if r.cfg.Instance != "" {
		routerID = r.cfg.RouterID + "/" + r.cfg.Instance
	}
	return map[string]interface{}{
		TmplRouterID: routerID,
		TmplInstance: r.cfg.Instance,
		TmplElement:  event.Element,
		TmplState:    event.State,
	}
}

// ShouldAlert reports whether an alert mail is wanted for the given state
// under the configured mail toggles.
func ShouldAlert(cfg *config.GlobalConfig, state string) bool {
	if !cfg.Mail.SMTPAlert && !cfg.Mail.SMTPAlertVRRP && !cfg.Mail.SMTPAlertChecker {
		return false
	}
	if cfg.Mail.NoEmailFaults && strings.EqualFold(state, "FAULT") {
		return false
	}
	return len(cfg.Mail.NotificationEmails) > 0
}
