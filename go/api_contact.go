package cafeserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	contactports "github.com/Apurer/cafe-api/internal/domains/contact/ports"
)

type ContactAPI struct {
	service contactports.Service
}

func NewContactAPI(service contactports.Service) ContactAPI {
	return ContactAPI{service: service}
}

// Post /api/contact/submit
// Leave a message for the café
func (api *ContactAPI) Submit(c *gin.Context) {
	var payload ContactRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	saved, err := api.service.Submit(c.Request.Context(), contactports.SubmitInput{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Phone:     payload.Phone,
		Email:     payload.Email,
		Subject:   payload.Subject,
		Message:   payload.Message,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toContactSubmission(saved))
}
