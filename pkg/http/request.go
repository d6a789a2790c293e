package http

import (
	"net"
	"net/http"
	"strings"
)

// ExtractClientIP returns the client address for audit logging. Forwarding
// headers are believed as-is because the portal sits behind the institution's
// reverse proxy; the value is informational, not an access-control input.
func ExtractClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		for _, ip := range strings.Split(xff, ",") {
			ip = strings.TrimSpace(ip)
			if net.ParseIP(ip) != nil {
				return ip
			}
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		if net.ParseIP(xri) != nil {
			return xri
		}
	}

	return remoteAddr(r)
}

// remoteAddr strips the port from RemoteAddr when present.
func remoteAddr(r *http.Request) string {
	if r.RemoteAddr == "" {
		return "unknown"
	}
	if ip, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return ip
	}
	return r.RemoteAddr
}
