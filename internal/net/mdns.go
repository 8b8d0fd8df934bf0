package net

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/hashicorp/mdns"
)

const serviceType = "_overlayboard._tcp"

var ErrNoOverlay = errors.New("no overlay found on the local network")

// Advertise announces the command endpoint on the LAN. An empty instance
// uses the hostname.
func Advertise(instance string, port int) (*mdns.Server, error) {
	if instance == "" {
		host, err := os.Hostname()
		if err != nil {
			return nil, fmt.Errorf("could not get hostname: %w", err)
		}
		instance = host
	}

	service, err := mdns.NewMDNSService(instance, serviceType, "", "", port, nil, []string{"OverlayBoard", "path=" + Path})
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}
	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	return server, nil
}

// Discover returns host:port of the first overlay that answers within
// timeout.
func Discover(timeout time.Duration) (string, error) {
	entries := make(chan *mdns.ServiceEntry, 8)
	params := mdns.DefaultParams(serviceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true

	done := make(chan error, 1)
	go func() { done <- mdns.Query(params) }()

	for {
		select {
		case e := <-entries:
			if addr, ok := entryAddr(e); ok {
				return addr, nil
			}
		case err := <-done:
			if err != nil {
				return "", fmt.Errorf("mdns query: %w", err)
			}
			// drain answers that arrived just before the query finished
			for {
				select {
				case e := <-entries:
					if addr, ok := entryAddr(e); ok {
						return addr, nil
					}
				default:
					return "", ErrNoOverlay
				}
			}
		}
	}
}

func entryAddr(e *mdns.ServiceEntry) (string, bool) {
	if e == nil || e.AddrV4 == nil || e.Port == 0 {
		return "", false
	}
	return net.JoinHostPort(e.AddrV4.String(), strconv.Itoa(e.Port)), true
}
