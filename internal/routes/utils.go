package routes

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// resolveClientIP returns the public address of the requesting client.
// Private and loopback addresses resolve to an empty string, which makes the
// geolocation provider look up the server's own address instead.
func resolveClientIP(request *http.Request) string {
	candidate := ""

	// X-Forwarded-For may hold a chain of proxies, the first entry is the client
	if xff := request.Header.Get("X-Forwarded-For"); xff != "" {
		candidate = strings.TrimSpace(strings.Split(xff, ",")[0])
	}

	if candidate == "" {
		host, _, err := net.SplitHostPort(request.RemoteAddr)
		if err != nil {
			host = request.RemoteAddr
		}
		candidate = host
	}

	ip := net.ParseIP(candidate)
	if ip == nil || ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() {
		return ""
	}
	return ip.String()
}
