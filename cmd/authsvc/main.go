package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/xsiva15/Auth/internal/app"
	"github.com/xsiva15/Auth/internal/config"
)

func main() {
	_ = godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	if err := app.Run(cfg); err != nil {
		slog.Error("app", "error", err)
		os.Exit(1)
	}
}
