package ratelimit

import (
	"net/http"
	"strings"
)

// MatchEndpoint returns the endpoint limit for a request, or nil when the
// default limit applies. Configured paths use ServeMux-style segments: "{id}"
// matches any single non-empty segment and a trailing "/" matches any suffix.
// The first matching config wins.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	// Health checks, metric scrapes and CORS preflights are unlimited
	if method == http.MethodOptions || (method == http.MethodGet && (path == "/health" || path == "/metrics")) {
		return &EndpointConfig{}
	}

	for i := range configs {
		if configs[i].Method == method && pathMatches(configs[i].Path, path) {
			return &configs[i]
		}
	}
	return nil
}

func pathMatches(pattern, path string) bool {
	subtree := strings.HasSuffix(pattern, "/")
	want := strings.Split(strings.Trim(pattern, "/"), "/")
	got := strings.Split(strings.Trim(path, "/"), "/")

	if len(got) < len(want) || (!subtree && len(got) != len(want)) {
		return false
	}
	for i, seg := range want {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			if got[i] == "" {
				return false
			}
			continue
		}
		if seg != got[i] {
			return false
		}
	}
	return true
}
