package auth

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apierrors "github.com/Apurer/cafe-api/internal/shared/errors"
)

// Verifier validates a raw bearer token.
type Verifier interface {
	Verify(token string) (Principal, error)
}

// Gate is the request authorization middleware.
type Gate struct {
	verifier Verifier
	policy   Policy
	logger   *slog.Logger
}

type GateOption func(*Gate)

func WithGateLogger(logger *slog.Logger) GateOption {
	return func(g *Gate) {
		if logger != nil {
			g.logger = logger
		}
	}
}

func NewGate(verifier Verifier, policy Policy, opts ...GateOption) *Gate {
	g := &Gate{
		verifier: verifier,
		policy:   policy,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

var (
	problemUnauthenticated = apierrors.ErrUnauthorized.WithDetail("a valid bearer token is required")
	problemForbidden       = apierrors.ErrForbidden.WithDetail("access to this resource is not permitted")
)

// Middleware returns the gin handler enforcing the policy.
func (g *Gate) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestPath := cleanPath(c.Request.URL.Path)
		if g.policy.IsPublic(requestPath) {
			c.Next()
			return
		}
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			g.reject(c, problemUnauthenticated, "missing or malformed bearer credential", requestPath)
			return
		}
		principal, err := g.verifier.Verify(token)
		if err != nil {
			g.reject(c, problemUnauthenticated, "bearer credential rejected", requestPath)
			return
		}
		if !g.policy.Authorize(requestPath, principal.Role) {
			g.reject(c, problemForbidden, "role not permitted", requestPath,
				slog.Int64("identity.id", principal.ID),
				slog.String("identity.role", principal.Role.String()))
			return
		}
		c.Set(ginPrincipalKey, principal)
		c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), principal))
		c.Next()
	}
}

func (g *Gate) reject(c *gin.Context, problem apierrors.ProblemDetail, reason, requestPath string, attrs ...slog.Attr) {
	attrs = append(attrs,
		slog.String("http.path", requestPath),
		slog.Int("http.status", problem.Status),
		slog.String("reason", reason))
	g.logger.LogAttrs(c.Request.Context(), slog.LevelWarn, "request rejected by auth gate", attrs...)
	if problem.Status == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", `Bearer realm="cafe-api"`)
	}
	apierrors.Respond(c, problem)
	c.Abort()
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}
