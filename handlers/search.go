package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"delish/services"
)

type SearchHandler struct {
	stores *services.StoreService
}

func NewSearchHandler(stores *services.StoreService) *SearchHandler {
	return &SearchHandler{stores: stores}
}

func (h *SearchHandler) Search(c *gin.Context) {
	stores, err := h.stores.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stores)
}

// Near serves the map query. Non-numeric coordinates are a validation
// error, never a search at (NaN, NaN).
func (h *SearchHandler) Near(c *gin.Context) {
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lng must be a number"})
		return
	}
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat must be a number"})
		return
	}

	stores, err := h.stores.Near(c.Request.Context(), lng, lat)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stores)
}
