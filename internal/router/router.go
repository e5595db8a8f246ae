// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sandeepmed2/pharma-network/internal/gateway"
	"github.com/sandeepmed2/pharma-network/internal/handlers"
	"github.com/sandeepmed2/pharma-network/internal/middleware"
)

func Initialize(invoker gateway.Invoker) *gin.Engine {
	// Initialize handlers
	registrationHandler := handlers.NewRegistrationHandler(invoker)
	transferDrugHandler := handlers.NewTransferDrugHandler(invoker)
	viewLifecycleHandler := handlers.NewViewLifecycleHandler(invoker)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	r.POST("/registerCompany", registrationHandler.RegisterCompany)
	r.POST("/addDrug", registrationHandler.AddDrug)

	r.POST("/createPO", transferDrugHandler.CreatePO)
	r.POST("/createShipment", transferDrugHandler.CreateShipment)
	r.PUT("/updateShipment", transferDrugHandler.UpdateShipment)
	r.PUT("/retailDrug", transferDrugHandler.RetailDrug)

	r.GET("/viewHistory", viewLifecycleHandler.ViewHistory)
	r.GET("/viewDrugCurrentState", viewLifecycleHandler.ViewDrugCurrentState)

	return r
}
