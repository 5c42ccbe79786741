package networking

import (
	"bytes"
	"net"
	"testing"

	"github.com/vishvananda/netlink"

	"github.com/eworm-de/keepalived/internal/config"
	"github.com/eworm-de/keepalived/internal/log"
)

func fakeInterface(name string, flags net.Flags) Interface {
	return Interface{
		&netlink.Dummy{LinkAttrs: netlink.LinkAttrs{Name: name, Flags: flags}},
	}
}

func fakeInterfaces(names ...string) []Interface {
	var interfaces []Interface
	for _, name := range names {
		interfaces = append(interfaces, fakeInterface(name, net.FlagUp))
	}
	return interfaces
}

func TestLinkResolver_InterfaceExists(t *testing.T) {
	resolver := NewLinkResolverFrom(fakeInterfaces("lo", "eth0"))

	if !resolver.InterfaceExists("eth0") {
		t.Error("Expected eth0 to exist")
	}
	if resolver.InterfaceExists("eth9") {
		t.Error("Expected eth9 to be missing")
	}
}

func TestValidateInterfacesArePresent(t *testing.T) {
	cfg := config.NewGlobalConfig()
	cfg.DefaultInterface = "eth0"
	cfg.LVS.SyncDaemon.Interface = "eth1"

	interfaces := fakeInterfaces("lo", "eth0", "eth1")
	if err := ValidateInterfacesArePresent(cfg, interfaces); err != nil {
		t.Errorf("Expected no error: %v", err)
	}
}

func TestValidateInterfacesArePresent_Missing(t *testing.T) {
	cfg := config.NewGlobalConfig()
	cfg.DefaultInterface = "eth9"

	if err := ValidateInterfacesArePresent(cfg, fakeInterfaces("lo")); err == nil {
		t.Error("Expected error for missing default interface")
	}
}

func TestValidateInterfacesArePresent_DownInterfaceWarns(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(nil)

	cfg := config.NewGlobalConfig()
	cfg.DefaultInterface = "eth0"

	interfaces := []Interface{fakeInterface("eth0", 0)}
	if err := ValidateInterfacesArePresent(cfg, interfaces); err != nil {
		t.Errorf("A down interface must only warn: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("is down")) {
		t.Errorf("Expected a down warning, got: %s", buf.String())
	}
}

func TestValidateInterfacesArePresent_SyncDaemonLoopback(t *testing.T) {
	cfg := config.NewGlobalConfig()
	cfg.LVS.SyncDaemon.Interface = "lo"

	interfaces := []Interface{fakeInterface("lo", net.FlagUp | net.FlagLoopback)}
	if err := ValidateInterfacesArePresent(cfg, interfaces); err == nil {
		t.Error("Expected error for sync daemon on a loopback interface")
	}
}

func TestValidateInterfacesArePresent_DynamicInterfaces(t *testing.T) {
	cfg := config.NewGlobalConfig()
	cfg.DefaultInterface = "eth9"
	cfg.DynamicInterfaces = true

	if err := ValidateInterfacesArePresent(cfg, fakeInterfaces("lo")); err != nil {
		t.Errorf("dynamic_interfaces must downgrade the check to a warning: %v", err)
	}
}
