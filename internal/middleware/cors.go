// Package middleware provides HTTP middleware for the trip sharing API server.
package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/cors"
)

var (
	corsMethods = []string{
		http.MethodGet, http.MethodPost, http.MethodPut,
		http.MethodDelete, http.MethodOptions, http.MethodPatch,
	}
	corsHeaders = []string{"Content-Type", "Authorization"}
)

// NewCORSHandler returns a middleware that applies CORS headers based on allowedOrigins.
// Entries are full origins (scheme + host, no trailing slash), "*" for any
// origin, or a pattern with one wildcard such as "https://*.example.com".
//
// An allowed Origin is echoed back, never "*", because credentials are allowed.
// Requests without an Origin get "Access-Control-Allow-Origin: *" when the list
// contains "*". Every OPTIONS request ends here with 200.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	m := newOriginMatcher(allowedOrigins)
	c := cors.New(cors.Options{
		AllowOriginFunc:      m.allowed,
		AllowedMethods:       corsMethods,
		AllowedHeaders:       corsHeaders,
		AllowCredentials:     true,
		OptionsSuccessStatus: http.StatusOK,
	})

	methods := strings.Join(corsMethods, ", ")
	headers := strings.Join(corsHeaders, ", ")

	return func(next http.Handler) http.Handler {
		// rs/cors answers preflights itself; plain OPTIONS requests reach inner.
		inner := c.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		}))

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Allow-Methods", methods)
			h.Set("Access-Control-Allow-Headers", headers)
			if r.Header.Get("Origin") == "" && m.any {
				h.Set("Access-Control-Allow-Origin", "*")
			}
			inner.ServeHTTP(w, r)
		})
	}
}

// originMatcher holds the parsed allow-list.
type originMatcher struct {
	any      bool
	exact    map[string]bool
	patterns []wildcard
}

type wildcard struct {
	prefix, suffix string
}

func newOriginMatcher(origins []string) originMatcher {
	m := originMatcher{exact: make(map[string]bool)}
	for _, o := range origins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		switch {
		case o == "":
		case o == "*":
			m.any = true
		case strings.Count(o, "*") == 1:
			prefix, suffix, _ := strings.Cut(o, "*")
			m.patterns = append(m.patterns, wildcard{prefix: prefix, suffix: suffix})
		default:
			m.exact[o] = true
		}
	}
	return m
}

// allowed reports whether origin may make credentialed requests.
// A wildcard stands for one or more characters of a host name, never a path
// or port separator.
func (m originMatcher) allowed(origin string) bool {
	if origin == "" {
		return false
	}
	if m.any || m.exact[origin] {
		return true
	}
	for _, w := range m.patterns {
		if len(origin) <= len(w.prefix)+len(w.suffix) {
			continue
		}
		if !strings.HasPrefix(origin, w.prefix) || !strings.HasSuffix(origin, w.suffix) {
			continue
		}
		middle := origin[len(w.prefix) : len(origin)-len(w.suffix)]
		if !strings.ContainsAny(middle, "/:@") {
			return true
		}
	}
	return false
}
