package main

import (
	"net/http"

	"iss-sky-scanner/internal/bff"
	"iss-sky-scanner/internal/location"

	"github.com/gin-gonic/gin"
)

// handleBFFESP godoc
// @Summary Latest position and fact for the ESP display
// @Tags bff
// @Produce json
// @Param api_key query string true "ESP API key"
// @Success 200 {object} bff.ESPResponse
// @Failure 400 {object} bff.ErrorResponse
// @Failure 403 {object} bff.ErrorResponse
// @Failure 503 {object} bff.ErrorResponse
// @Router /v1/bff/esp [get]
func (app *App) handleBFFESP(c *gin.Context) {
	lf, ok := app.latestWithFact(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, bff.ESP(lf))
}

// handleBFFWeb godoc
// @Summary Latest position and fact for the web front-end
// @Tags bff
// @Produce json
// @Param api_key query string true "Web API key"
// @Success 200 {object} bff.WebResponse
// @Failure 400 {object} bff.ErrorResponse
// @Failure 403 {object} bff.ErrorResponse
// @Failure 503 {object} bff.ErrorResponse
// @Router /v1/bff/web [get]
func (app *App) handleBFFWeb(c *gin.Context) {
	lf, ok := app.latestWithFact(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, bff.Web(lf))
}

// latestWithFact writes the error response itself when there is no record.
// A failed fact is logged and left for the formatter to replace.
func (app *App) latestWithFact(c *gin.Context) (*location.LocatedFact, bool) {
	lf, err := app.locationService.LatestWithFact(c.Request.Context())
	if lf == nil {
		app.respondError(c, err)
		return nil, false
	}
	if err != nil {
		app.logger.Warn("serving fallback fact", "path", c.FullPath(), "error", err)
	}
	return lf, true
}
