package network

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatURL(t *testing.T) {
	assert.Equal(t, "http://192.168.1.20:8000/", FormatURL("192.168.1.20", 8000))
	assert.Equal(t, "http://127.0.0.1:9/", FormatURL("127.0.0.1", 9))
}

func TestIPv4AddrsFiltersLoopbackAndIPv6(t *testing.T) {
	addrs := []net.Addr{
		&net.IPNet{IP: net.ParseIP("127.0.0.1"), Mask: net.CIDRMask(8, 32)},
		&net.IPNet{IP: net.ParseIP("fe80::1"), Mask: net.CIDRMask(64, 128)},
		&net.IPNet{IP: net.ParseIP("192.168.1.20"), Mask: net.CIDRMask(24, 32)},
		&net.IPAddr{IP: net.ParseIP("10.0.0.7")},
	}
	assert.Equal(t, []string{"192.168.1.20", "10.0.0.7"}, ipv4Addrs(addrs))
}

func TestGetLocalIPsAreIPv4(t *testing.T) {
	ips, err := GetLocalIPs()
	if err != nil {
		t.Skipf("interfaces unavailable: %v", err)
	}
	for _, ip := range ips {
		parsed := net.ParseIP(ip)
		if assert.NotNil(t, parsed, ip) {
			assert.NotNil(t, parsed.To4(), ip)
			assert.False(t, parsed.IsLoopback(), ip)
		}
	}
}
