package cafeserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	catalogports "github.com/Apurer/cafe-api/internal/domains/catalog/ports"
	apierrors "github.com/Apurer/cafe-api/internal/shared/errors"
)

// MenuAPI serves the public menu.
type MenuAPI struct {
	catalog catalogports.Service
}

func NewMenuAPI(catalog catalogports.Service) MenuAPI {
	return MenuAPI{catalog: catalog}
}

// Get /api/menu
// List every product on the menu
func (api *MenuAPI) ListMenu(c *gin.Context) {
	products, err := api.catalog.ListProducts(c.Request.Context(), "")
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMenuProducts(products))
}

// Get /api/menu/description/:productId
// Describe a single product
func (api *MenuAPI) Describe(c *gin.Context) {
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	description, err := api.catalog.Describe(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MenuDescription{ProductId: id, Description: description})
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	value := c.Param(name)
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(name+" must be an integer"))
		return 0, false
	}
	return id, true
}
