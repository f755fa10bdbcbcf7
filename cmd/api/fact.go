package main

import (
	"net/http"

	"iss-sky-scanner/internal/apperr"
	"iss-sky-scanner/internal/bff"

	"github.com/gin-gonic/gin"
)

// GetFactInput defines the query parameters for the fact endpoint
type GetFactInput struct {
	Location string `form:"location"`
}

// FactResponse is a generated fact about a place
type FactResponse struct {
	Location string `json:"location" example:"Houston, Texas, United States"`
	Fact     string `json:"fact" example:"Houston hosts the Mission Control Center for every ISS flight."`
	Status   string `json:"status" example:"success"`
	Version  string `json:"version" example:"1.0"`
}

// handleGetFact godoc
// @Summary Generate a fact about a place
// @Tags fact
// @Produce json
// @Param location query string true "Place name" example(Houston, Texas, United States)
// @Success 200 {object} FactResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /v1/fact [get]
func (app *App) handleGetFact(c *gin.Context) {
	var input GetFactInput
	if err := c.ShouldBindQuery(&input); err != nil || input.Location == "" {
		app.respondError(c, apperr.InvalidQuery("Location parameter is required"))
		return
	}

	fact, err := app.facts.Generate(c.Request.Context(), input.Location)
	if err != nil {
		app.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, FactResponse{
		Location: fact.Location,
		Fact:     fact.Fact,
		Status:   bff.StatusSuccess,
		Version:  bff.Version,
	})
}
