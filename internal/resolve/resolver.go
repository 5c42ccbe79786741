// Package resolve provides the DNS resolver used for host-valued
// configuration directives such as smtp_server.
package resolve

import (
	"fmt"
	"net"
	"net/netip"
	"time"

	"github.com/miekg/dns"

	"github.com/eworm-de/keepalived/internal/errors"
	"github.com/eworm-de/keepalived/internal/log"
)

const queryTimeout = 5 * time.Second

// Resolver resolves host names through the system's configured name
// servers. It satisfies the config.AddressResolver interface.
type Resolver struct {
	client  *dns.Client
	servers []string
}

// NewResolver creates a resolver from /etc/resolv.conf.
func NewResolver() (*Resolver, error) {
	conf, err := dns.ClientConfigFromFile("/etc/resolv.conf")
	if err != nil {
		return nil, errors.NewResolveError("failed to read resolver configuration", err)
	}
	if len(conf.Servers) == 0 {
		return nil, errors.New(errors.ErrCodeResolve, "no name servers configured")
	}

	var servers []string
	for _, server := range conf.Servers {
		servers = append(servers, net.JoinHostPort(server, conf.Port))
	}

	return &Resolver{
		client: &dns.Client{
			Net:     "udp",
			Timeout: queryTimeout,
		},
		servers: servers,
	}, nil
}

// LookupHost resolves a host name to its addresses, IPv4 first. Every
// configured server is tried in order until one answers.
func (r *Resolver) LookupHost(host string) ([]netip.Addr, error) {
	var addrs []netip.Addr

	for _, qtype := range []uint16{dns.TypeA, dns.TypeAAAA} {
		resp, err := r.query(host, qtype)
		if err != nil {
			log.Debugf("Lookup %s (type %d) failed: %v", host, qtype, err)
			continue
		}
		addrs = append(addrs, AddrsFromAnswer(resp)...)
	}

	if len(addrs) == 0 {
		return nil, fmt.Errorf("host %s not found", host)
	}
	return addrs, nil
}

func (r *Resolver) query(host string, qtype uint16) (*dns.Msg, error) {
	req := new(dns.Msg)
	req.SetQuestion(dns.Fqdn(host), qtype)
	req.RecursionDesired = true

	var lastErr error
	for _, server := range r.servers {
		resp, _, err := r.client.Exchange(req, server)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.Rcode != dns.RcodeSuccess {
			lastErr = fmt.Errorf("server %s returned %s", server, dns.RcodeToString[resp.Rcode])
			continue
		}
		return resp, nil
	}
	return nil, lastErr
}

// AddrsFromAnswer extracts the A and AAAA addresses from a DNS response,
// in answer order.
func AddrsFromAnswer(resp *dns.Msg) []netip.Addr {
	var addrs []netip.Addr
	for _, rr := range resp.Answer {
		switch record := rr.(type) {
		case *dns.A:
			if addr, ok := netip.AddrFromSlice(record.A.To4()); ok {
				addrs = append(addrs, addr)
			}
		case *dns.AAAA:
			if addr, ok := netip.AddrFromSlice(record.AAAA); ok {
				addrs = append(addrs, addr)
			}
		}
	}
	return addrs
}
