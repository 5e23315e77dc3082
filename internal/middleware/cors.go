package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// wildcardOrigin is an allowed origin with a single leading subdomain
// wildcard, e.g. https://*.example.com
type wildcardOrigin struct {
	scheme string
	suffix string
}

// parseWildcardOrigin returns nil unless pattern is scheme://*.domain.tld
func parseWildcardOrigin(pattern string) *wildcardOrigin {
	scheme, host, ok := strings.Cut(pattern, "://")
	if !ok || scheme == "" {
		return nil
	}
	rest, ok := strings.CutPrefix(host, "*")
	if !ok || strings.Contains(rest, "*") {
		return nil
	}
	if !strings.HasPrefix(rest, ".") || strings.Count(rest, ".") < 2 {
		return nil
	}
	return &wildcardOrigin{scheme: scheme + "://", suffix: rest}
}

// matches accepts exactly one subdomain label in place of the wildcard
func (w *wildcardOrigin) matches(origin string) bool {
	host, ok := strings.CutPrefix(origin, w.scheme)
	if !ok {
		return false
	}
	label, ok := strings.CutSuffix(host, w.suffix)
	return ok && label != "" && !strings.Contains(label, ".")
}

// CORS allows the configured origins. Entries may be exact origins, "*", or
// single-level wildcards such as https://*.example.com.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	exact := make(map[string]struct{}, len(allowedOrigins))
	var wildcards []*wildcardOrigin
	allowAll := false

	for _, o := range allowedOrigins {
		switch {
		case o == "*":
			allowAll = true
		case strings.Contains(o, "*"):
			if w := parseWildcardOrigin(o); w != nil {
				wildcards = append(wildcards, w)
			}
		default:
			exact[o] = struct{}{}
		}
	}

	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", IdempotencyKeyHeader, RequestIDHeader},
		ExposeHeaders: []string{RequestIDHeader, "Retry-After", IdempotencyReplayedHeader},
		MaxAge:        12 * time.Hour,
	}
	if allowAll {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowCredentials = true
		cfg.AllowOriginFunc = func(origin string) bool {
			if _, ok := exact[origin]; ok {
				return true
			}
			for _, w := range wildcards {
				if w.matches(origin) {
					return true
				}
			}
			return false
		}
	}
	return cors.New(cfg)
}
