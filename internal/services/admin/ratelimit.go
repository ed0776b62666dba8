package admin

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// defaultLoginRate refills one login attempt every six seconds per client.
	defaultLoginRate  = rate.Limit(1.0 / 6)
	defaultLoginBurst = 5

	limiterIdleTTL = 10 * time.Minute
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// loginLimiter throttles sign-in attempts per client address.
type loginLimiter struct {
	limit   rate.Limit
	burst   int
	now     func() time.Time
	proxies []netip.Prefix

	mu      sync.Mutex
	clients map[string]*limiterEntry
}

func newLoginLimiter(limit rate.Limit, burst int, trustedProxies []netip.Prefix) *loginLimiter {
	if limit <= 0 {
		limit = defaultLoginRate
	}
	if burst <= 0 {
		burst = defaultLoginBurst
	}
	return &loginLimiter{
		limit:   limit,
		burst:   burst,
		now:     time.Now,
		proxies: trustedProxies,
		clients: make(map[string]*limiterEntry),
	}
}

// Allow spends one attempt for the client behind r.
func (l *loginLimiter) Allow(r *http.Request) bool {
	key := clientIP(r, l.proxies)
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()
	for k, entry := range l.clients {
		if now.Sub(entry.lastSeen) > limiterIdleTTL {
			delete(l.clients, k)
		}
	}
	entry, ok := l.clients[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

// clientIP keys a request by its peer address. X-Forwarded-For is only
// consulted when the peer is a trusted proxy, and then read right to left
// up to the first hop that is not itself trusted.
func clientIP(r *http.Request, trusted []netip.Prefix) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	peer, err := netip.ParseAddr(host)
	if err != nil || !isTrusted(peer, trusted) {
		return host
	}
	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		addr, err := netip.ParseAddr(strings.TrimSpace(hops[i]))
		if err != nil {
			break
		}
		if !isTrusted(addr, trusted) {
			return addr.String()
		}
	}
	return host
}

func isTrusted(addr netip.Addr, trusted []netip.Prefix) bool {
	addr = addr.Unmap()
	for _, prefix := range trusted {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// ParseTrustedProxies reads proxy addresses or CIDR ranges such as
// "10.0.0.0/8" or "127.0.0.1". Blank entries are skipped.
func ParseTrustedProxies(values []string) ([]netip.Prefix, error) {
	var out []netip.Prefix
	for _, raw := range values {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if strings.Contains(raw, "/") {
			prefix, err := netip.ParsePrefix(raw)
			if err != nil {
				return nil, fmt.Errorf("trusted proxy %q: %w", raw, err)
			}
			out = append(out, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(raw)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", raw, err)
		}
		addr = addr.Unmap()
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out, nil
}
