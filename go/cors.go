package cafeserver

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// corsMiddleware allows credentialed requests from one origin. Preflight
// requests are answered here so they never reach the auth gate; requests
// from any other browser origin are refused with 403.
func corsMiddleware(allowedOrigin string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{allowedOrigin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowHeaders:     []string{"Authorization", "Content-Type", IdempotencyKeyHeader},
		ExposeHeaders:    []string{ReplayedHeader},
		AllowCredentials: true,
		MaxAge:           time.Hour,
	})
}
