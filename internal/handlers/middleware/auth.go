// internal/handlers/middleware/auth.go
package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/sntracker/backend/internal/pkg/config"
	"github.com/sntracker/backend/internal/pkg/logger"
)

// Role names for the two fixed accounts.
const (
	RoleAdmin   = "admin"
	RoleCashier = "kasir"
)

// BasicAuth authenticates requests against the two fixed accounts from
// configuration and stores the actor name and role in the request context.
func BasicAuth(sec config.SecurityConfig, slogger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			if !ok {
				unauthorized(w)
				return
			}

			role, authenticated := authenticate(sec, user, pass)
			if !authenticated {
				slogger.WarnContext(r.Context(), "authentication failed",
					slog.String("user", user),
					slog.String("client_ip", clientIPFrom(r)))
				unauthorized(w)
				return
			}

			ctx := logger.WithActor(r.Context(), user, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects requests whose authenticated role does not match.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if logger.RoleFrom(r.Context()) != role {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"error":"insufficient role"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdminPIN gates destructive admin operations behind the X-Admin-PIN
// header on top of the admin role.
func RequireAdminPIN(sec config.SecurityConfig, slogger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			pin := r.Header.Get("X-Admin-PIN")
			if subtle.ConstantTimeCompare([]byte(pin), []byte(sec.AdminPIN)) != 1 {
				slogger.WarnContext(r.Context(), "admin PIN rejected",
					slog.String("actor", logger.ActorFrom(r.Context())),
					slog.String("client_ip", clientIPFrom(r)))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"error":"invalid admin PIN"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func authenticate(sec config.SecurityConfig, user, pass string) (string, bool) {
	switch {
	case constantTimeEq(user, sec.AdminUser) && constantTimeEq(pass, sec.AdminPassword):
		return RoleAdmin, true
	case constantTimeEq(user, sec.CashierUser) && constantTimeEq(pass, sec.CashierPassword):
		return RoleCashier, true
	}
	return "", false
}

func constantTimeEq(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="sn-tracker"`)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"authentication required"}`))
}
