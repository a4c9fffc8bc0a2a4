package app

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xsiva15/Auth/internal/config"
	httpx "github.com/xsiva15/Auth/internal/http"
	"github.com/xsiva15/Auth/internal/http/handlers"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	c, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	authH := handlers.NewAuthHandlers(c.LoginSvc, c.RegistrationSvc, c.RecoverySvc)
	r := httpx.BuildRouter(authH)

	addr := ":" + cfg.Port
	slog.Info("listening", "addr", addr)
	return http.ListenAndServe(addr, r)
}
