package audit

import (
	"net"
	"net/http"
	"strings"
)

// Origin identifies the client behind a panel mutation.
type Origin struct {
	IP        string
	UserAgent string
}

// RequestOrigin resolves the client address and agent of r. The first
// non-empty X-Forwarded-For hop wins over X-Real-IP and RemoteAddr.
func RequestOrigin(r *http.Request) Origin {
	if r == nil {
		return Origin{}
	}
	return Origin{IP: clientIP(r), UserAgent: r.UserAgent()}
}

func clientIP(r *http.Request) string {
	for _, hop := range strings.Split(r.Header.Get("X-Forwarded-For"), ",") {
		if hop = strings.TrimSpace(hop); hop != "" {
			return hop
		}
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
