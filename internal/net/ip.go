package net

import (
	"net"
	"net/url"
	"strconv"

	"TouchTracker/internal/state"
)

// hostIP picks the IPv4 address LAN clients should dial: the source address
// the OS would use for the default route, or failing that the first up
// interface.
func hostIP() net.IP {
	// UDP dial sends nothing; it only resolves the route.
	if conn, err := net.Dial("udp4", "8.8.8.8:80"); err == nil {
		defer conn.Close()
		if a, ok := conn.LocalAddr().(*net.UDPAddr); ok && a.IP.To4() != nil && !a.IP.IsLoopback() {
			return a.IP.To4()
		}
	}
	return firstIPv4()
}

// firstIPv4 returns the first non-loopback IPv4 address of an up interface,
// or loopback when there is none.
func firstIPv4() net.IP {
	ifaces, _ := net.Interfaces()
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, _ := iface.Addrs()
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok && ipnet.IP.To4() != nil {
				return ipnet.IP.To4()
			}
		}
	}
	state.Logger().Warn("[NET] no LAN address found, share link only works locally")
	return net.IPv4(127, 0, 0, 1).To4()
}

// ShareLink returns the WebSocket URL clients use to reach the host.
func ShareLink(port int) string {
	u := url.URL{
		Scheme: "ws",
		Host:   net.JoinHostPort(hostIP().String(), strconv.Itoa(port)),
		Path:   "/ws",
	}
	return u.String()
}
