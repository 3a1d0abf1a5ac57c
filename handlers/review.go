package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"delish/middleware"
	"delish/services"
)

type ReviewHandler struct {
	stores *services.StoreService
}

func NewReviewHandler(stores *services.StoreService) *ReviewHandler {
	return &ReviewHandler{stores: stores}
}

type CreateReviewRequest struct {
	Text   string `json:"text" binding:"required"`
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
}

func (h *ReviewHandler) Create(c *gin.Context) {
	userID, err := middleware.UserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.stores.AddReview(c.Request.Context(), userID, c.Param("id"), req.Text, req.Rating)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Review saved",
		"review":  review,
	})
}
