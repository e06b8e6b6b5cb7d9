package router

import (
	"creditrisk/internal/middleware"
	"creditrisk/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupPredictionRoutes(api *echo.Group, handler *rest.PredictHandler) {
	predictions := api.Group("/predictions")
	predictions.POST("", handler.Predict)
}

func SetupModelRoutes(api *echo.Group, handler *rest.ModelAdminHandler) {
	api.GET("/model", handler.GetModel)

	admin := api.Group("/admin/model", middleware.AuthMiddleware(), middleware.AdminOnly())
	admin.POST("/reload", handler.Reload)
}

func SetupAuditRoutes(api *echo.Group, handler *rest.AuditHandler) {
	admin := api.Group("/admin/predictions", middleware.AuthMiddleware(), middleware.AdminOnly())
	admin.GET("", handler.RecentPredictions)
}

func SetupHealthRoutes(e *echo.Echo, handler *rest.HealthHandler) {
	e.GET("/healthz", handler.Healthz)
	e.GET("/readyz", handler.Readyz)
}
