package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// registerRoutes sets up all API endpoints
func (app *App) registerRoutes() {
	// Health check endpoint
	app.router.GET("/ping", app.handlePing)

	v1 := app.router.Group("/v1")

	// Location endpoints
	v1.GET("/location/realtime", app.handleGetRealtimeLocation)
	v1.POST("/location/store", app.handleStoreLocation)
	v1.GET("/location/latest", app.handleGetLatestLocation)
	v1.GET("/location/history", app.handleQueryHistory)
	v1.GET("/location/time-range", app.handleQueryTimeRange)

	v1.GET("/fact", app.handleGetFact)
	v1.POST("/feedback", app.requireAPIKey(app.keys.Feedback), app.handleStoreFeedback)

	// The assistant is called from browsers and is the only route with CORS
	assistantRoutes := v1.Group("/assistant", cors())
	assistantRoutes.POST("/query", app.handleAssistantQuery)
	assistantRoutes.OPTIONS("/query", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	// Backends for the ESP display and the web front-end
	v1.GET("/bff/esp", app.requireAPIKey(app.keys.ESP), app.handleBFFESP)
	v1.GET("/bff/web", app.requireAPIKey(app.keys.Web), app.handleBFFWeb)

	// Swagger documentation
	app.router.GET("/swagger/*any", func(c *gin.Context) {
		path := c.Param("any")
		if path == "/" {
			c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
			return
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler)(c)
	})
}
