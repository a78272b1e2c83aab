package main

import (
	"embed"
	"log"
	"time"

	"gbsaview/adapters/tabular"
	"gbsaview/app"
	"gbsaview/internal/config"
	"gbsaview/internal/session"
	"gbsaview/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

//go:embed ui/templates/*
var embeddedFiles embed.FS

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Configuration error: %v", err)
	}
	gin.SetMode(cfg.Server.GinMode)

	sessions := session.NewStore(cfg.Session.TTL)
	stop := make(chan struct{})
	defer close(stop)
	sessions.StartSweeper(10*time.Minute, stop)

	service := app.NewViewerService(tabular.NewReader(), cfg.Render.DPI)

	server := ui.NewServer(embeddedFiles)
	if err := server.Initialize(cfg, service, sessions); err != nil {
		log.Fatalf("❌ Server initialization failed: %v", err)
	}

	log.Printf("✅ Trajectory viewer ready (DPI %d, upload limit %d MB)", cfg.Render.DPI, cfg.Upload.MaxFileSizeMB)
	if err := server.Start(":" + cfg.Server.Port); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}
