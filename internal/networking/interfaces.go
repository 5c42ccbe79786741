package networking

import (
	"fmt"
	"net"

	"github.com/vishvananda/netlink"

	"github.com/eworm-de/keepalived/internal/config"
	"github.com/eworm-de/keepalived/internal/log"
)

type Interface struct {
	netlink.Link
}

func GetInterfaceList() ([]Interface, error) {
	links, err := netlink.LinkList()
	if err != nil {
		return nil, err
	}
	var interfaces []Interface
	for _, link := range links {
		interfaces = append(interfaces, Interface{link})
	}
	return interfaces, nil
}

func (iface *Interface) IsUp() bool {
	return iface.Attrs().Flags&net.FlagUp != 0
}

func (iface *Interface) IsLoopback() bool {
	return iface.Attrs().Flags&net.FlagLoopback != 0
}

// LinkResolver answers interface existence checks against a snapshot of
// the system's links. It satisfies the config.InterfaceResolver interface.
type LinkResolver struct {
	interfaces []Interface
}

// NewLinkResolverFrom wraps an existing link snapshot.
func NewLinkResolverFrom(interfaces []Interface) *LinkResolver {
	return &LinkResolver{interfaces: interfaces}
}

func (r *LinkResolver) find(name string) *Interface {
	for i := range r.interfaces {
		if r.interfaces[i].Attrs().Name == name {
			return &r.interfaces[i]
		}
	}
	return nil
}

func (r *LinkResolver) InterfaceExists(name string) bool {
	return r.find(name) != nil
}

// ValidateInterfacesArePresent checks every interface the configuration
// names against the link snapshot. Config directives referring to missing
// interfaces already produced parse diagnostics; this is the hard check
// used before starting as a service.
func ValidateInterfacesArePresent(c *config.GlobalConfig, interfaces []Interface) error {
	resolver := NewLinkResolverFrom(interfaces)

	if c.DefaultInterface != "" {
		iface := resolver.find(c.DefaultInterface)
		if iface == nil {
			if !c.DynamicInterfaces {
				return fmt.Errorf("default interface '%s' does not exist", c.DefaultInterface)
			}
			log.Warnf("Default interface '%s' does not exist yet", c.DefaultInterface)
		} else if !iface.IsUp() {
			log.Warnf("Default interface '%s' is down", c.DefaultInterface)
		}
	}

	if name := c.LVS.SyncDaemon.Interface; name != "" {
		iface := resolver.find(name)
		if iface == nil {
			if !c.DynamicInterfaces {
				return fmt.Errorf("sync daemon interface '%s' does not exist", name)
			}
			log.Warnf("Sync daemon interface '%s' does not exist yet", name)
		} else {
			if iface.IsLoopback() {
				return fmt.Errorf("sync daemon interface '%s' is a loopback interface", name)
			}
			if !iface.IsUp() {
				log.Warnf("Sync daemon interface '%s' is down", name)
			}
		}
	}

	return nil
}
