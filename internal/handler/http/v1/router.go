package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Маршруты SOS-запросов
	sos := api.Group("/sos")
	{
		sos.POST("", h.createSos)
		sos.GET("/:id", h.getSos)
		sos.DELETE("/:id", h.deleteSos)
		sos.POST("/filter", h.filterSos)
	}

	// Операторские рассылки защищены API-ключом
	notify := api.Group("/notify")
	notify.Use(APIKeyAuthMiddleware(h.cfg, h.logger))
	{
		notify.POST("/broadcast", h.broadcast)
		notify.POST("/nearby", h.notifyNearby)
	}

	// Регистрация push-токена устройства
	api.POST("/token/register", h.registerToken)

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
