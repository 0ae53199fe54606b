package auth

import (
	"context"

	"github.com/gin-gonic/gin"

	identitydomain "github.com/Apurer/cafe-api/internal/domains/identity/domain"
)

// Principal is the verified caller attached to a request.
type Principal struct {
	ID    int64
	Email string
	Role  identitydomain.Role
}

type principalKey struct{}

// ginPrincipalKey is the gin.Context key holding the Principal.
const ginPrincipalKey = "auth.principal"

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal injected by the Gate, if any.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	if ctx == nil {
		return Principal{}, false
	}
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// PrincipalFromGin looks up the principal on the gin context, then on the request context.
func PrincipalFromGin(c *gin.Context) (Principal, bool) {
	if v, ok := c.Get(ginPrincipalKey); ok {
		if p, ok := v.(Principal); ok {
			return p, true
		}
	}
	if c.Request == nil {
		return Principal{}, false
	}
	return PrincipalFromContext(c.Request.Context())
}
