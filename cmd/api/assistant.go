package main

import (
	"net/http"

	"iss-sky-scanner/internal/apperr"
	"iss-sky-scanner/internal/assistant"

	"github.com/gin-gonic/gin"
)

// handleAssistantQuery godoc
// @Summary Ask the ISS assistant
// @Description Classify a free-text question and answer it. Off-topic questions and backend failures still return success with an explanatory response.
// @Tags assistant
// @Accept json
// @Produce json
// @Param query body assistant.Query true "Question"
// @Success 200 {object} assistant.Reply
// @Failure 400 {object} ErrorResponse
// @Router /v1/assistant/query [post]
func (app *App) handleAssistantQuery(c *gin.Context) {
	var q assistant.Query
	if err := c.ShouldBindJSON(&q); err != nil {
		app.respondError(c, apperr.InvalidQuery("No query provided"))
		return
	}
	if q.UserAgent == "" {
		q.UserAgent = c.Request.UserAgent()
	}

	reply, err := app.assistant.Answer(c.Request.Context(), q)
	if err != nil {
		app.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reply)
}
