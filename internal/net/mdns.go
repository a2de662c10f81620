package net

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/hashicorp/mdns"

	"TouchTracker/internal/state"
)

// DefaultService is the mDNS service type hosts advertise.
const DefaultService = "_touchtracker._tcp"

// Advertise announces the host's WebSocket endpoint on the local network.
// Shut the returned server down to withdraw it.
func Advertise(service string, port int) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}

	info := []string{"TouchTracker", "path=/ws"}
	zone, err := mdns.NewMDNSService(
		host,
		service,
		"",
		"",
		port,
		[]net.IP{hostIP()},
		info,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: zone})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	state.Logger().Info("[MDNS] advertising", "service", service, "host", host, "port", port)
	return server, nil
}

// Browse looks for hosts for timeout and calls found with each "ip:port".
func Browse(service string, timeout time.Duration, found func(addr string)) error {
	entries := make(chan *mdns.ServiceEntry, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			found(fmt.Sprintf("%s:%d", e.AddrV4.String(), e.Port))
		}
	}()

	params := mdns.DefaultParams(service)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true
	err := mdns.Query(params)
	close(entries)
	<-done
	if err != nil {
		return fmt.Errorf("mDNS lookup failed: %w", err)
	}
	return nil
}
