package utils

import (
	"net"
	"net/netip"
	"strings"

	"github.com/gin-gonic/gin"
)

const fallbackIP = "127.0.0.1"

// ExtractClientIP returns the caller address recorded on security alerts.
// Order: first X-Forwarded-For hop, X-Real-IP, then RemoteAddr.
func ExtractClientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip, ok := normalizeIP(first); ok {
			return ip
		}
	}

	if ip, ok := normalizeIP(c.GetHeader("X-Real-IP")); ok {
		return ip
	}

	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		// RemoteAddr without a port
		host = c.Request.RemoteAddr
	}
	if ip, ok := normalizeIP(host); ok {
		return ip
	}

	return fallbackIP
}

// normalizeIP trims s and returns its canonical form. IPv4-mapped IPv6
// addresses are unmapped so the same client always logs the same string.
func normalizeIP(s string) (string, bool) {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return "", false
	}
	return addr.Unmap().String(), true
}
