// Package network provides local address discovery for the access URL.
package network

import (
	"errors"
	"net"
	"strconv"
)

// ErrNoAddress is returned when no non-loopback IPv4 address is configured
var ErrNoAddress = errors.New("no local IPv4 address found")

// GetLocalIP returns the primary local IP address: the source address the
// kernel picks for outbound traffic. No packet is sent.
func GetLocalIP() (string, error) {
	conn, err := net.Dial("udp4", "8.8.8.8:80")
	if err != nil {
		return "", err
	}
	defer conn.Close()

	localAddr := conn.LocalAddr().(*net.UDPAddr)
	return localAddr.IP.String(), nil
}

// GetLocalIPs returns all available local IPv4 addresses
func GetLocalIPs() ([]string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	var ips []string
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 {
			continue // interface down
		}
		if iface.Flags&net.FlagLoopback != 0 {
			continue // loopback interface
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		ips = append(ips, ipv4Addrs(addrs)...)
	}
	return ips, nil
}

func ipv4Addrs(addrs []net.Addr) []string {
	var ips []string
	for _, addr := range addrs {
		var ip net.IP
		switch v := addr.(type) {
		case *net.IPNet:
			ip = v.IP
		case *net.IPAddr:
			ip = v.IP
		}
		if ip == nil || ip.IsLoopback() {
			continue
		}
		ip = ip.To4()
		if ip == nil {
			continue // not an ipv4 address
		}
		ips = append(ips, ip.String())
	}
	return ips
}

// PrimaryIPv4 returns GetLocalIP, or the first interface address when there
// is no default route (an offline LAN).
func PrimaryIPv4() (string, error) {
	if ip, err := GetLocalIP(); err == nil && ip != "" && !net.ParseIP(ip).IsUnspecified() {
		return ip, nil
	}
	ips, err := GetLocalIPs()
	if err != nil {
		return "", err
	}
	if len(ips) == 0 {
		return "", ErrNoAddress
	}
	return ips[0], nil
}

// FormatURL builds the page URL for host and port
func FormatURL(host string, port int) string {
	return "http://" + net.JoinHostPort(host, strconv.Itoa(port)) + "/"
}

// AccessURL returns the URL a phone on the LAN should open.
func AccessURL(port int) (string, error) {
	ip, err := PrimaryIPv4()
	if err != nil {
		return "", err
	}
	return FormatURL(ip, port), nil
}
