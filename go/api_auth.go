package cafeserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	identityports "github.com/Apurer/cafe-api/internal/domains/identity/ports"
)

// AuthAPI exposes member registration and login.
type AuthAPI struct {
	service identityports.Service
}

func NewAuthAPI(service identityports.Service) AuthAPI {
	return AuthAPI{service: service}
}

// Post /api/auth/register
// Register a member account and sign it in
func (api *AuthAPI) Register(c *gin.Context) {
	var payload RegisterRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	session, err := api.service.Register(c.Request.Context(), identityports.RegisterInput{
		Email:     payload.Email,
		Password:  payload.Password,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAuthResponse(session))
}

// Post /api/auth/login
// Exchange credentials for a bearer token
func (api *AuthAPI) Login(c *gin.Context) {
	var payload LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	session, err := api.service.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAuthResponse(session))
}
