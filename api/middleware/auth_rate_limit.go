package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/calebhawthorne/regenmarket-backend/api/responses"
	pkgerrors "github.com/calebhawthorne/regenmarket-backend/pkg/errors"
	"github.com/calebhawthorne/regenmarket-backend/pkg/logger"
)

type rateLimiterStore interface {
	IncrWithTTL(context.Context, string, time.Duration) (int64, error)
}

// AuthRateLimitPolicy holds the throttling parameters for one auth
// surface (login, register). A zero window or zero limits disables it.
type AuthRateLimitPolicy struct {
	name       string
	window     time.Duration
	ipLimit    int
	emailLimit int
}

// NewAuthRateLimitPolicy builds a policy with the supplied window and limits.
func NewAuthRateLimitPolicy(name string, window time.Duration, ipLimit, emailLimit int) AuthRateLimitPolicy {
	return AuthRateLimitPolicy{
		name:       strings.ToLower(strings.TrimSpace(name)),
		window:     window,
		ipLimit:    ipLimit,
		emailLimit: emailLimit,
	}
}

func (p AuthRateLimitPolicy) enabled() bool {
	return p.window > 0 && (p.ipLimit > 0 || p.emailLimit > 0)
}

func (p AuthRateLimitPolicy) normalizedName() string {
	if p.name == "" {
		return "auth"
	}
	return p.name
}

func (p AuthRateLimitPolicy) ipKey(ip string) string {
	if ip == "" {
		return ""
	}
	return fmt.Sprintf("rl:ip:%s:%s", p.normalizedName(), ip)
}

func (p AuthRateLimitPolicy) emailKey(hash string) string {
	if hash == "" {
		return ""
	}
	return fmt.Sprintf("rl:email:%s:%s", p.normalizedName(), hash)
}

// AuthRateLimit enforces fixed-window counters for auth endpoints, first
// per client IP and then per normalized email hash. The email check
// buffers and restores the request body so the handler can still decode
// it. Counting emails by hash keeps raw addresses out of Redis keys.
func AuthRateLimit(policy AuthRateLimitPolicy, store rateLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || store == nil {
			return next
		}
		lim := authLimiter{policy: policy, store: store, logg: logg}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !lim.checkIP(w, r) {
				return
			}
			if !lim.checkEmail(w, r) {
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type authLimiter struct {
	policy AuthRateLimitPolicy
	store  rateLimiterStore
	logg   *logger.Logger
}

// checkIP reports whether the request may proceed. On a block or store
// failure it has already written the response.
func (l authLimiter) checkIP(w http.ResponseWriter, r *http.Request) bool {
	if l.policy.ipLimit <= 0 {
		return true
	}
	ip := clientIP(r)
	key := l.policy.ipKey(ip)
	if key == "" {
		return true
	}

	ctx := r.Context()
	allowed, count, err := l.allow(ctx, key, int64(l.policy.ipLimit))
	if err != nil {
		responses.WriteError(ctx, nil, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
		return false
	}
	if !allowed {
		l.block(ctx, w, "ip", map[string]any{"ip": ip}, count, l.policy.ipLimit)
		return false
	}
	return true
}

func (l authLimiter) checkEmail(w http.ResponseWriter, r *http.Request) bool {
	if l.policy.emailLimit <= 0 {
		return true
	}

	ctx := r.Context()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		responses.WriteError(ctx, nil, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read request"))
		return false
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	email := normalizeEmail(extractEmail(body))
	if email == "" {
		return true
	}
	hash := hashValue(email)
	key := l.policy.emailKey(hash)
	if key == "" {
		return true
	}

	allowed, count, err := l.allow(ctx, key, int64(l.policy.emailLimit))
	if err != nil {
		responses.WriteError(ctx, nil, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
		return false
	}
	if !allowed {
		l.block(ctx, w, "email", map[string]any{"email_hash": hash}, count, l.policy.emailLimit)
		return false
	}
	return true
}

func (l authLimiter) allow(ctx context.Context, key string, limit int64) (bool, int64, error) {
	count, err := l.store.IncrWithTTL(ctx, key, l.policy.window)
	if err != nil {
		return false, 0, err
	}
	return count <= limit, count, nil
}

func (l authLimiter) block(ctx context.Context, w http.ResponseWriter, scope string, extra map[string]any, count int64, limit int) {
	if l.logg != nil {
		fields := map[string]any{
			"scope":          scope,
			"policy":         l.policy.normalizedName(),
			"attempts":       count,
			"limit":          limit,
			"window_seconds": int(l.policy.window.Seconds()),
		}
		for k, v := range extra {
			fields[k] = v
		}
		l.logg.Warn(l.logg.WithFields(ctx, fields), "auth.rate_limit.blocked")
	}
	responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded"))
}

func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

func extractEmail(payload []byte) string {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	return body.Email
}

func normalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func hashValue(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
