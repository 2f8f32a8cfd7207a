package routers

import (
	"log"

	"media-uploader/internal/delivery/http/handlers"
	wsdelivery "media-uploader/internal/delivery/ws"
	"media-uploader/internal/domain/repositories"
	"media-uploader/internal/pkg/config"
	"media-uploader/internal/usecases"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/robfig/cron/v3"
)

func SetupUploadRoutes(
	app *fiber.App,
	cfg *config.Config,
	uploadService usecases.UploadService,
	storage repositories.ObjectStorage,
	manager *wsdelivery.Manager,
) {
	uploadHandler := handlers.NewUploadHandler(uploadService)
	adminHandler := handlers.NewAdminHandler(uploadService, storage)

	// Scratch retention sweep'i (per-request temizlikten bağımsız emniyet ağı)
	cleanupUC := usecases.NewCleanupService(cfg.Upload.ScratchDir)
	c := cron.New(cron.WithSeconds())
	c.AddFunc("0 */5 * * * *", func() {
		if err := cleanupUC.CleanupOldScratchFiles(cfg.Upload.ScratchMaxAge); err != nil {
			log.Printf("Error cleaning up old scratch files: %v", err)
		}
	})
	c.Start()

	// Routes:
	api := app.Group("/api/v1")
	api.Post("/upload/image", uploadHandler.UploadImage)
	api.Post("/upload/video", uploadHandler.UploadVideo)
	api.Post("/upload/file", uploadHandler.UploadFile)
	api.Get("/upload/operations/:id", uploadHandler.OperationStatus)

	api.Get("/admin/operations", adminHandler.ListOperations)
	api.Delete("/admin/files", adminHandler.DeleteFile)
	api.Delete("/admin/sessions/:id", adminHandler.AbortSession)

	// Event kanalı
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/progress", websocket.New(wsdelivery.ServeWS(manager)))
}
