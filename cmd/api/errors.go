package main

import (
	"iss-sky-scanner/internal/apperr"
	"iss-sky-scanner/internal/bff"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the error envelope of every route
type ErrorResponse struct {
	Error  string `json:"error" example:"No location data found"`
	Status string `json:"status" example:"error"`
}

// respondError writes the client-safe envelope for err. The cause is logged
// and never sent.
func (app *App) respondError(c *gin.Context, err error) {
	status := apperr.StatusCode(err)
	attrs := []any{
		"path", c.FullPath(),
		"kind", apperr.Kind(err),
		"status", status,
		"error", err,
	}
	if id, ok := c.Get("request_id"); ok {
		attrs = append(attrs, "request_id", id)
	}

	if status >= 500 {
		app.logger.Error("request failed", attrs...)
	} else {
		app.logger.Info("request rejected", attrs...)
	}

	body := bff.Error(err)
	c.JSON(status, ErrorResponse{Error: body.Error, Status: body.Status})
}

func (app *App) abortWithError(c *gin.Context, err error) {
	app.respondError(c, err)
	c.Abort()
}
