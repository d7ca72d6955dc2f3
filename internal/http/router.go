package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"serein/internal/handler"
	"serein/internal/service"
)

func NewRouter(
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	journalHandler *handler.JournalHandler,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(RequestLoggerMiddleware())

	api := e.Group("/api")
	authHandler.RegisterPublicRoutes(api)

	protected := api.Group("", JWTAuthMiddleware(authService))
	authHandler.RegisterProtectedRoutes(protected)
	journalHandler.RegisterRoutes(protected)

	return e
}
