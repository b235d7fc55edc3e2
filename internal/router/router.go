package router // package router wires handlers, middleware and routes together

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/property-listing/internal/handler"
	"github.com/iliyamo/property-listing/internal/middleware"
)

// RegisterRoutes registers routes that need no authentication.  Currently
// only the health check lives here.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints.  Register, login,
// refresh and logout are open; /v1/me and the revoke-everything logout sit
// behind the JWT middleware since they act on the authenticated caller.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	auth.POST("/auth/logout-all", a.LogoutAll)
}

// RegisterProperty registers the property catalog endpoints under
// /api/Property.  Every route requires a valid access token with an ADMIN
// or AGENT role.  The optional cache middleware runs after authentication
// so only authorized reads are served from Redis; extra may be empty when
// no Redis client is available.
func RegisterProperty(e *echo.Echo, h *handler.PropertyHandler, jwtSecret string, extra ...echo.MiddlewareFunc) {
	g := e.Group("/api/Property")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("ADMIN", "AGENT"))
	g.Use(extra...)

	g.POST("/CreateProperty", h.CreateProperty)
	g.POST("/:idProperty/AddImageToProperty", h.AddImageToProperty)
	g.PUT("/:idProperty/ChangePrice", h.ChangePrice)
	g.PUT("/:idProperty/UpdateProperty", h.UpdateProperty)
	g.GET("/GetProperties", h.GetProperties)
}
