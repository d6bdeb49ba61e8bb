package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/2beens/gymtracker/internal/auth"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"
	"github.com/2beens/gymtracker/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

type AuthMiddlewareHandler struct {
	loginChecker auth.Checker
	// paths reachable without a session
	publicPaths map[string]bool
	// data endpoints answer 401 JSON instead of redirecting to /login
	jsonPathPrefixes []string
}

func NewAuthMiddlewareHandler(loginChecker auth.Checker) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		loginChecker: loginChecker,
		publicPaths: map[string]bool{
			"/":         true,
			"/login":    true,
			"/register": true,
			"/logout":   true,
			"/version":  true,
		},
		jsonPathPrefixes: []string{
			"/peso_data",
			"/progreso_ejercicio/",
		},
	}
}

func (h *AuthMiddlewareHandler) pathServesJSON(path string) bool {
	for _, prefix := range h.jsonPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// AuthCheck resolves the session token into a user id and injects it into
// the request context. Protected paths are denied when the session is
// missing: redirect for the form flows, 401 JSON for the data endpoints.
func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			token := auth.TokenFromRequest(r)
			if token != "" {
				userID, err := h.loginChecker.LoggedUserID(ctx, token)
				switch {
				case err == nil:
					ctx = ContextWithUserID(ctx, userID)
				case errors.Is(err, auth.ErrNotLoggedIn):
					// same as no token at all
				default:
					log.Errorf("[failed login check] => %s: %s", r.URL.Path, err)
				}
			}

			if _, logged := UserIDFromContext(ctx); !logged && !h.publicPaths[r.URL.Path] {
				span.SetStatus(codes.Error, "not-logged")
				if h.pathServesJSON(r.URL.Path) {
					pkg.WriteJSONError(w, "No autenticado", http.StatusUnauthorized)
					return
				}
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
