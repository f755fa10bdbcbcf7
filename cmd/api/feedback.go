package main

import (
	"net/http"

	"iss-sky-scanner/internal/apperr"
	"iss-sky-scanner/internal/bff"
	"iss-sky-scanner/internal/feedback"

	"github.com/gin-gonic/gin"
)

// FeedbackResponse acknowledges stored feedback
type FeedbackResponse struct {
	Message string `json:"message" example:"Feedback stored successfully"`
	ID      string `json:"id" example:"5f0c4a52-0c59-4bb4-9b7e-7b0f1c8a6a11"`
	Status  string `json:"status" example:"success"`
}

// handleStoreFeedback godoc
// @Summary Store user feedback
// @Tags feedback
// @Accept json
// @Produce json
// @Param api_key query string true "Feedback API key"
// @Param feedback body feedback.Submission true "Rating from 1 to 5 and at most 100 words"
// @Success 200 {object} FeedbackResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /v1/feedback [post]
func (app *App) handleStoreFeedback(c *gin.Context) {
	var sub feedback.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		app.respondError(c, apperr.InvalidQuery("Invalid JSON data"))
		return
	}
	if sub.UserAgent == "" {
		sub.UserAgent = c.Request.UserAgent()
	}

	entry, err := app.feedback.Submit(c.Request.Context(), sub)
	if err != nil {
		app.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, FeedbackResponse{
		Message: "Feedback stored successfully",
		ID:      entry.ID,
		Status:  bff.StatusSuccess,
	})
}
