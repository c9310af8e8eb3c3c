package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"gitlab.com/hirecode-2025.net/internal/core/ports/primary"
	"gitlab.com/hirecode-2025.net/internal/core/services/ratelimit"
	"gitlab.com/hirecode-2025.net/internal/domain"
	"gitlab.com/hirecode-2025.net/internal/handlers/response"
)

// MaxBodyBytes caps every request body
const MaxBodyBytes = 1 << 20

const (
	msgRateLimited   = "Rate limit exceeded. Please wait."
	msgInternalError = "Internal server error"
)

type payloadKey struct{}

type MiddlewareProvider struct {
	jwtProvider primary.JWTService
	limiter     ratelimit.ILimiter
	logger      primary.Logger
}

func New(jwtProvider primary.JWTService, limiter ratelimit.ILimiter, logger primary.Logger) *MiddlewareProvider {
	return &MiddlewareProvider{
		jwtProvider: jwtProvider,
		limiter:     limiter,
		logger:      logger,
	}
}

// RequirePermission admits requests carrying a valid bearer token that grants permission
func (m *MiddlewareProvider) RequirePermission(permission string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Fail(w, http.StatusUnauthorized, "Authorization header missing")
				return
			}

			// Extract token from "Bearer <token>"
			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || tokenString == "" {
				response.Fail(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			payload, err := m.jwtProvider.ParseTokenHMAC(r.Context(), tokenString)
			if err != nil {
				m.logger.Debug("Rejected token", "path", r.URL.Path, "error", err)
				response.Fail(w, http.StatusUnauthorized, "Invalid token")
				return
			}
			if !payload.HasPermission(permission) {
				response.Fail(w, http.StatusForbidden, "Forbidden")
				return
			}

			ctx := context.WithValue(r.Context(), payloadKey{}, payload)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RateLimit rejects clients that went over their request budget
func (m *MiddlewareProvider) RateLimit(next http.Handler) http.Handler {
	return m.RateLimitWith(m.limiter)(next)
}

// RateLimitWith is RateLimit against a budget other than the provider's default
func (m *MiddlewareProvider) RateLimitWith(limiter ratelimit.ILimiter) mux.MiddlewareFunc {
	if limiter == nil {
		limiter = m.limiter
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := ClientIP(r)
			if !limiter.Allow(r.Context(), client) {
				m.logger.Warn("Rate limit exceeded", "client", client, "path", r.URL.Path)
				response.Fail(w, http.StatusTooManyRequests, msgRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Recover turns a handler panic into a 500
func Recover(logger primary.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logger.Error("Handler panicked", "path", r.URL.Path, "panic", rec)
					response.Fail(w, http.StatusInternalServerError, msgInternalError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// LimitBody caps the request body at limit bytes
func LimitBody(limit int64) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AuthPayloadFrom returns the token payload stored by RequirePermission
func AuthPayloadFrom(ctx context.Context) (domain.AuthPayload, bool) {
	payload, ok := ctx.Value(payloadKey{}).(domain.AuthPayload)
	return payload, ok
}

// ClientIP identifies the caller: first X-Forwarded-For entry, then X-Real-IP, then the peer address
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	if r.RemoteAddr != "" {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err == nil && host != "" {
			return host
		}
		return r.RemoteAddr
	}
	return "unknown"
}

// DecodeJSON decodes the body of r into dst, writing the failure response itself
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.Fail(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return false
	}
	response.Fail(w, http.StatusBadRequest, "Invalid request body")
	return false
}
