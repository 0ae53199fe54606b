package cafeserver

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/Apurer/cafe-api/internal/domains/catalog/application"
	catalogports "github.com/Apurer/cafe-api/internal/domains/catalog/ports"
	contactapp "github.com/Apurer/cafe-api/internal/domains/contact/application"
	identityapp "github.com/Apurer/cafe-api/internal/domains/identity/application"
	ordersapp "github.com/Apurer/cafe-api/internal/domains/orders/application"
	apierrors "github.com/Apurer/cafe-api/internal/shared/errors"
)

const responderKey = "cafeserver.responder"

var defaultResponder = newResponder(nil)

func newResponder(logger *slog.Logger) *apierrors.Responder {
	return apierrors.NewResponder(
		apierrors.WithLogger(logger),
		apierrors.WithMappers(identityProblems, catalogProblems, orderProblems, contactProblems),
	)
}

// withResponder makes the request-scoped responder available to handlers.
func withResponder(r *apierrors.Responder) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(responderKey, r)
		c.Next()
	}
}

func responderFor(c *gin.Context) *apierrors.Responder {
	if v, ok := c.Get(responderKey); ok {
		if r, ok := v.(*apierrors.Responder); ok {
			return r
		}
	}
	return defaultResponder
}

// respondProblem writes problem as application/problem+json.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	responderFor(c).Respond(c, problem)
}

// respondServiceError maps a use-case error onto a problem. Unknown errors
// become a logged, generic 500.
func respondServiceError(c *gin.Context, err error) {
	responderFor(c).RespondError(c, err)
}

func respondBadRequest(c *gin.Context, err error) {
	respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
}

func identityProblems(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, identityapp.ErrInvalidCredentials):
		return apierrors.ErrUnauthorized.WithDetail("invalid email or password"), true
	case errors.Is(err, identityapp.ErrEmailTaken):
		return apierrors.ErrValidation.WithDetail(identityapp.ErrEmailTaken.Error()), true
	case errors.Is(err, identityapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func catalogProblems(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, catalogports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail("product not found"), true
	case errors.Is(err, catalogapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func orderProblems(err error) (apierrors.ProblemDetail, bool) {
	var missing *ordersapp.ProductNotFoundError
	switch {
	case errors.As(err, &missing):
		return apierrors.ErrNotFound.
			WithDetail(missing.Error()).
			WithExtension("productId", missing.ProductID), true
	case errors.Is(err, ordersapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, ordersapp.ErrOrderNotFound):
		return apierrors.ErrNotFound.WithDetail("order not found"), true
	case errors.Is(err, ordersapp.ErrIdempotencyConflict):
		return apierrors.ErrConflict.WithDetail(ordersapp.ErrIdempotencyConflict.Error()), true
	case errors.Is(err, ordersapp.ErrCheckoutInProgress):
		return apierrors.ErrConflict.WithDetail(ordersapp.ErrCheckoutInProgress.Error()), true
	case errors.Is(err, ordersapp.ErrInvalidTransition):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, ordersapp.ErrIdentityNotFound):
		return apierrors.ErrInternal, true
	}
	return apierrors.ProblemDetail{}, false
}

func contactProblems(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, contactapp.ErrInvalidInput) {
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}
