package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yunanyuansyah/listPembelian/internal/config"
	httpx "github.com/yunanyuansyah/listPembelian/internal/http"
	"github.com/yunanyuansyah/listPembelian/internal/http/handlers"
	"github.com/yunanyuansyah/listPembelian/internal/http/middleware"
)

// Run wires the container and serves HTTP until the listener fails.
func Run(cfg *config.Config) error {
	gin.SetMode(cfg.GinMode)

	c, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	authMW := middleware.NewAuthMW(c.TokenSvc, c.UserRepo, c.CapSvc, c.AuditLog)

	authH := handlers.NewAuthHandlers(c.AuthSvc, authMW, c.Logger)
	userH := handlers.NewUserHandlers(c.UserSvc, c.Logger)
	productH := handlers.NewProductHandlers(c.ProductRepo, c.Logger)

	r := httpx.BuildRouter(authH, userH, productH, authMW)

	addr := ":" + cfg.Port
	c.Logger.Info("listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, r)
}
