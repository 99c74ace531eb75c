package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/yunanyuansyah/listPembelian/internal/http/handlers"
	"github.com/yunanyuansyah/listPembelian/internal/http/middleware"
	"github.com/yunanyuansyah/listPembelian/internal/infrastructure/authz"
)

func BuildRouter(ah *handlers.AuthHandlers, uh *handlers.UserHandlers, ph *handlers.ProductHandlers, mw *middleware.AuthMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/register", ah.Register)
	auth.POST("/login", ah.Login)
	auth.POST("/refresh", ah.Refresh)
	auth.GET("/me", ah.Me)
	auth.POST("/logout", ah.Logout)

	users := r.Group("/users")
	users.GET("", mw.RequireCapability(authz.CapViewUsers), uh.List)
	users.POST("", mw.RequireCapability(authz.CapManageUsers), uh.Create)
	users.GET("/:id", mw.RequireCapability(authz.CapManageUsers), uh.Get)
	users.PUT("/:id", mw.RequireCapability(authz.CapManageUsers), uh.Update)
	users.DELETE("/:id", mw.RequireCapability(authz.CapManageUsers), uh.Delete)
	users.PUT("/:id/status", mw.RequireCapability(authz.CapManageUsers), uh.ChangeStatus)

	products := r.Group("/products")
	products.GET("", ph.List)
	products.GET("/search", ph.Search)
	products.GET("/:id", ph.Get)
	products.POST("", mw.RequireCapability(authz.CapManageProducts), ph.Create)
	products.PUT("/:id", mw.RequireCapability(authz.CapManageProducts), ph.Update)
	products.DELETE("/:id", mw.RequireCapability(authz.CapManageProducts), ph.Delete)

	return r
}
