package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"go-auth-service/internal/model"
	"go-auth-service/internal/service"
	"go-auth-service/pkg/apierror"
)

type tokenCodec interface {
	Parse(raw string) (*service.TokenClaims, error)
	Validate(raw string, expectedSubject string) bool
}

type userLoader interface {
	FindByUsername(ctx context.Context, username string) (model.User, error)
}

type contextKey string

const principalContextKey contextKey = "principal"

// Authenticator derives a per-request principal from the Authorization
// header. It never rejects a request itself: any failure passes through
// unauthenticated and the gate decides whether that matters.
type Authenticator struct {
	codec tokenCodec
	store userLoader
}

func NewAuthenticator(codec tokenCodec, store userLoader) *Authenticator {
	return &Authenticator{codec: codec, store: store}
}

func (a *Authenticator) Attach(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearerToken(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := a.codec.Parse(raw)
		if err != nil {
			slog.Debug("token rejected", "path", r.URL.Path, "reason", err)
			next.ServeHTTP(w, r)
			return
		}

		user, err := a.store.FindByUsername(r.Context(), claims.Subject)
		if err != nil {
			slog.Debug("token subject unknown", "subject", claims.Subject)
			next.ServeHTTP(w, r)
			return
		}

		if !user.Status.MayAuthenticate() {
			slog.Debug("token subject may not authenticate", "subject", user.Username, "status", user.Status)
			next.ServeHTTP(w, r)
			return
		}

		if !a.codec.Validate(raw, user.Username) {
			next.ServeHTTP(w, r)
			return
		}

		principal := &model.Principal{Username: user.Username, Authorities: claims.Authorities}
		next.ServeHTTP(w, r.WithContext(ContextWithPrincipal(r.Context(), principal)))
	})
}

// ContextWithPrincipal returns a copy of ctx carrying the authenticated
// principal.
func ContextWithPrincipal(ctx context.Context, p *model.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

func bearerToken(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "bearer "
	if header == "" || len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

// PrincipalFromContext returns the authenticated principal attached by the
// Authenticator, if any.
func PrincipalFromContext(ctx context.Context) (*model.Principal, bool) {
	principal, ok := ctx.Value(principalContextKey).(*model.Principal)
	return principal, ok
}

// Gate enforces the declarative allow-list of public routes: everything
// else requires a principal and is rejected with a uniform 401 challenge.
// Sessions are stateless; each request re-derives its principal upstream.
type Gate struct {
	publicPrefixes []string
	publicPaths    []string
}

func NewGate() *Gate {
	return &Gate{
		publicPrefixes: []string{"/api/auth/", "/api/public/", "/swagger", "/openapi"},
		publicPaths:    []string{"/actuator/health", "/error"},
	}
}

func (g *Gate) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if g.isPublic(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		if _, ok := PrincipalFromContext(r.Context()); !ok {
			WriteError(w, r, apierror.Authentication("Full authentication is required to access this resource"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (g *Gate) isPublic(path string) bool {
	for _, p := range g.publicPaths {
		if path == p {
			return true
		}
	}
	for _, prefix := range g.publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// WriteError emits the uniform error envelope for failures raised before a
// handler runs (gate rejections, panics, unmatched routes).
func WriteError(w http.ResponseWriter, r *http.Request, e *apierror.APIError) {
	body := model.NewErrorResponse(r.URL.Path, e)
	slog.Warn("request rejected", "trace_id", body.TraceID, "code", e.Code,
		"path", r.URL.Path, "error", e.Message)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(e.HTTPStatus)
	_ = jsonEncode(w, body)
}
