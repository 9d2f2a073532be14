package httpapi

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/brandonbohn/adebackend/internal/service"

	"go.uber.org/zap"
)

// Middleware wraps a handler.
type Middleware func(http.Handler) http.Handler

// Chain applies mws so the first one is outermost.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = wrap(mws[i], h)
	}
	return h
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

// AccessLog records method, path, status and duration of every request.
func AccessLog(logger *zap.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)
			if rec.status == 0 {
				rec.status = http.StatusOK
			}
			logger.Info("HTTP request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Int("bytes", rec.bytes),
				zap.Duration("duration", time.Since(start)),
				zap.String("remote_ip", remoteHost(r)),
			)
		})
	}
}

// Recover turns a handler panic into a SERVER_ERROR response.
func Recover(logger *zap.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if v := recover(); v != nil {
					if v == http.ErrAbortHandler {
						panic(v)
					}
					logger.Error("Handler panic",
						zap.Any("panic", v),
						zap.String("method", r.Method),
						zap.String("path", r.URL.Path),
						zap.ByteString("stack", debug.Stack()),
					)
					writeJSON(w, http.StatusInternalServerError, Fail(service.CodeServer, "Internal server error", ""))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// CORS allows the configured origins. "*" allows any origin.
func CORS(origins []string) Middleware {
	allowAll := false
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
		allowed[strings.TrimRight(o, "/")] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && (allowAll || allowed[origin]) {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
				h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				h.Set("Access-Control-Max-Age", "600")
			}
			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type adminCtxKey struct{}

// RequireAdmin rejects requests without a valid admin bearer token and puts
// the claims on the request context.
func RequireAdmin(auth *service.AuthService, logger *zap.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeError(w, logger, "RequireAdmin", service.UnauthorizedError("Authorization header is required"))
				return
			}
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				writeError(w, logger, "RequireAdmin", service.UnauthorizedError("Authorization header must be a Bearer token"))
				return
			}
			claims, err := auth.ValidateToken(strings.TrimSpace(token))
			if err != nil {
				writeError(w, logger, "RequireAdmin", err)
				return
			}
			ctx := context.WithValue(r.Context(), adminCtxKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// adminFromContext returns the claims set by RequireAdmin, or nil.
func adminFromContext(ctx context.Context) *service.AdminClaims {
	c, _ := ctx.Value(adminCtxKey{}).(*service.AdminClaims)
	return c
}

// tokenBucket refills rate tokens per second up to capacity.
type tokenBucket struct {
	rate       float64
	capacity   float64
	tokens     float64
	lastRefill time.Time
}

func (tb *tokenBucket) allow(now time.Time) bool {
	tb.tokens += now.Sub(tb.lastRefill).Seconds() * tb.rate
	if tb.tokens > tb.capacity {
		tb.tokens = tb.capacity
	}
	tb.lastRefill = now
	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}
	return false
}

// RateLimiter per-client-IP token buckets. Idle buckets are dropped after expiry.
type RateLimiter struct {
	rate    float64
	burst   int
	expiry  time.Duration
	trusted []*net.IPNet
	mu      sync.Mutex
	buckets map[string]*tokenBucket
	sweptAt time.Time
	now     func() time.Time
}

func NewRateLimiter(rate float64, burst int, expiry time.Duration) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		rate:    rate,
		burst:   burst,
		expiry:  expiry,
		buckets: make(map[string]*tokenBucket),
		now:     time.Now,
	}
}

// Allow takes one token for key.
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	if l.expiry > 0 && now.Sub(l.sweptAt) > l.expiry {
		for k, b := range l.buckets {
			if now.Sub(b.lastRefill) > l.expiry {
				delete(l.buckets, k)
			}
		}
		l.sweptAt = now
	}
	b, ok := l.buckets[key]
	if !ok {
		b = &tokenBucket{rate: l.rate, capacity: float64(l.burst), tokens: float64(l.burst), lastRefill: now}
		l.buckets[key] = b
	}
	return b.allow(now)
}

// Middleware answers 429 once the client's bucket is empty.
func (l *RateLimiter) Middleware(logger *zap.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r, l.trusted)
			if !l.Allow(ip) {
				logger.Warn("Rate limit exceeded", zap.String("remote_ip", ip), zap.String("path", r.URL.Path))
				w.Header().Set("Retry-After", "1")
				writeJSON(w, http.StatusTooManyRequests, Fail("RATE_LIMITED", "Too many requests, please try again later", ""))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// TrustProxies accepts IPs or CIDRs whose X-Forwarded-For and X-Real-IP
// headers are believed. Requests from any other peer are keyed on RemoteAddr.
func (l *RateLimiter) TrustProxies(proxies []string) error {
	nets, err := parseProxies(proxies)
	if err != nil {
		return err
	}
	l.trusted = nets
	return nil
}

func parseProxies(proxies []string) ([]*net.IPNet, error) {
	var nets []*net.IPNet
	for _, p := range proxies {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.Contains(p, "/") {
			ip := net.ParseIP(p)
			if ip == nil {
				return nil, fmt.Errorf("invalid trusted proxy %q", p)
			}
			bits := 128
			if ip.To4() != nil {
				ip, bits = ip.To4(), 32
			}
			nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, n, err := net.ParseCIDR(p)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", p, err)
		}
		nets = append(nets, n)
	}
	return nets, nil
}

// clientIP is the peer address, or the forwarded client address when the
// peer is a trusted proxy.
func clientIP(r *http.Request, trusted []*net.IPNet) string {
	host := remoteHost(r)
	if !isTrusted(host, trusted) {
		return host
	}
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip.String()
		}
	}
	if ip := net.ParseIP(strings.TrimSpace(r.Header.Get("X-Real-IP"))); ip != nil {
		return ip.String()
	}
	return host
}

func isTrusted(host string, trusted []*net.IPNet) bool {
	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	for _, n := range trusted {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
