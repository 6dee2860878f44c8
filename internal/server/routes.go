package server

import (
	"app/internal/config"
	"app/internal/handler"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(
	e *echo.Echo,
	cfg config.Config,
	authH *handler.AuthHandler,
	productH *handler.ProductHandler,
	catalogH *handler.CatalogHandler,
	orderH *handler.OrderHandler,
	adminOrderH *handler.AdminOrderHandler,
	adminProductH *handler.AdminProductHandler,
	adminUserH *handler.AdminUserHandler,
	adminAuditH *handler.AdminAuditLogHandler,
) {
	authH.RegisterRoutes(e)
	productH.RegisterRoutes(e)
	catalogH.RegisterRoutes(e)
	orderH.RegisterRoutes(e, cfg)
	adminOrderH.RegisterRoutes(e, cfg)
	adminProductH.RegisterRoutes(e, cfg)
	adminUserH.RegisterRoutes(e, cfg)
	adminAuditH.RegisterRoutes(e, cfg)
}
