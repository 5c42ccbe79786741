package resolve

import (
	"net"
	"net/netip"
	"reflect"
	"testing"

	"github.com/miekg/dns"
)

func TestAddrsFromAnswer(t *testing.T) {
	resp := new(dns.Msg)
	resp.Answer = []dns.RR{
		&dns.A{
			Hdr: dns.RR_Header{Name: "smtp.example.com.", Rrtype: dns.TypeA, Class: dns.ClassINET},
			A:   net.ParseIP("192.0.2.10"),
		},
		&dns.CNAME{
			Hdr:    dns.RR_Header{Name: "mail.example.com.", Rrtype: dns.TypeCNAME, Class: dns.ClassINET},
			Target: "smtp.example.com.",
		},
		&dns.AAAA{
			Hdr:  dns.RR_Header{Name: "smtp.example.com.", Rrtype: dns.TypeAAAA, Class: dns.ClassINET},
			AAAA: net.ParseIP("2001:db8::10"),
		},
	}

	got := AddrsFromAnswer(resp)
	want := []netip.Addr{
		netip.MustParseAddr("192.0.2.10"),
		netip.MustParseAddr("2001:db8::10"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestAddrsFromAnswer_Empty(t *testing.T) {
	if got := AddrsFromAnswer(new(dns.Msg)); len(got) != 0 {
		t.Errorf("Expected no addresses, got %v", got)
	}
}
