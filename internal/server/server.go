package server

import (
	"app/internal/config"
	"app/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

func Start(
	addr string,
	cfg config.Config,
	authH *handler.AuthHandler,
	productH *handler.ProductHandler,
	catalogH *handler.CatalogHandler,
	orderH *handler.OrderHandler,
	adminOrderH *handler.AdminOrderHandler,
	adminProductH *handler.AdminProductHandler,
	adminUserH *handler.AdminUserHandler,
	adminAuditH *handler.AdminAuditLogHandler,
) error {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	RegisterRoutes(e, cfg, authH, productH, catalogH, orderH, adminOrderH, adminProductH, adminUserH, adminAuditH)

	return e.Start(addr)
}
