package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"

	"hostelhub/models"
	"hostelhub/services"
	"hostelhub/utils"
)

type contextKey string

const SessionContextKey contextKey = "session"

var (
	proxyMu        sync.RWMutex
	trustedProxies []*net.IPNet
)

// Authenticate resolves a bearer token into a session. Requests without a usable token pass
// through anonymously and the operations decide whether that is enough.
func Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || bearerToken[0] != "Bearer" {
			slog.Debug("invalid authorization header format", "path", r.URL.Path)
			next.ServeHTTP(w, r)
			return
		}

		claims, err := utils.ValidateToken(bearerToken[1])
		if err != nil {
			slog.Debug("token validation failed", "path", r.URL.Path, "error", err)
			next.ServeHTTP(w, r)
			return
		}

		sess := &services.Session{
			ID:        claims.UserID,
			Email:     claims.Email,
			Role:      models.Role(claims.Role),
			IPAddress: clientIP(r),
			UserAgent: r.UserAgent(),
		}
		ctx := context.WithValue(r.Context(), SessionContextKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionFromContext returns the caller attached by Authenticate, or nil for anonymous requests.
func SessionFromContext(ctx context.Context) *services.Session {
	if sess, ok := ctx.Value(SessionContextKey).(*services.Session); ok {
		return sess
	}
	return nil
}

// TrustProxies sets the addresses allowed to report the client address through
// X-Forwarded-For. Entries are IPs or CIDRs. An empty list ignores the header.
func TrustProxies(entries []string) error {
	nets := make([]*net.IPNet, 0, len(entries))
	for _, entry := range entries {
		if !strings.Contains(entry, "/") {
			if ip := net.ParseIP(entry); ip != nil && ip.To4() != nil {
				entry += "/32"
			} else {
				entry += "/128"
			}
		}
		_, n, err := net.ParseCIDR(entry)
		if err != nil {
			return fmt.Errorf("trusted proxy %q: %w", entry, err)
		}
		nets = append(nets, n)
	}

	proxyMu.Lock()
	trustedProxies = nets
	proxyMu.Unlock()
	return nil
}

func isTrustedProxy(addr string) bool {
	ip := net.ParseIP(addr)
	if ip == nil {
		return false
	}
	proxyMu.RLock()
	defer proxyMu.RUnlock()
	for _, n := range trustedProxies {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

// clientIP keys on the peer address. X-Forwarded-For is only read when the peer is a trusted
// proxy, and then the right-most hop that is not itself a trusted proxy wins.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if !isTrustedProxy(host) {
		return host
	}

	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if !isTrustedProxy(hop) {
			return hop
		}
	}
	return host
}
