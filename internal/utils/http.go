package utils

import (
	"net"
	"net/http"
)

// ExtractIDFromParams retrieves a named path wildcard populated by the mux
// pattern the request matched.
func ExtractIDFromParams(r *http.Request, paramName string) string {
	return r.PathValue(paramName)
}

// ClientIP returns the peer address for audit logging, without the port.
func ClientIP(r *http.Request) string {
	if r.RemoteAddr == "" {
		return "unknown"
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
