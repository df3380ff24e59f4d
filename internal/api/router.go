// Package api exposes the budget impact engine over HTTP.
package api

import (
	"net/http"

	"budget-impact/internal/api/handlers"
	"budget-impact/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// NewRouter wires middleware and every route onto a fresh engine.
func NewRouter(env *handlers.Env) *gin.Engine {
	router := gin.New()

	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/countries", handlers.ListCountries)
		v1.GET("/scenarios", handlers.ListScenarios)
		v1.GET("/parameters", handlers.ListParameters)

		v1.POST("/calculate", env.Calculate)
		v1.POST("/scenarios/compare", env.CompareScenarios)
		v1.POST("/sensitivity", env.Sensitivity)
		v1.POST("/threshold", env.Threshold)

		v1.POST("/full", env.Full)
		v1.POST("/tornado", env.Tornado)
		v1.POST("/multiway", env.Multiway)
		v1.POST("/psa", env.PSA)

		v1.GET("/runs/:id", env.GetRun)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
	})
	return router
}
