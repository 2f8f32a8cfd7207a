package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"media-uploader/internal/delivery/http/routers"
	wsdelivery "media-uploader/internal/delivery/ws"
	"media-uploader/internal/domain/entities"
	domain_repo "media-uploader/internal/domain/repositories"
	"media-uploader/internal/infrastructure/processor"
	infra_repo "media-uploader/internal/infrastructure/repositories"
	"media-uploader/internal/infrastructure/storage"
	"media-uploader/internal/pkg/config"
	"media-uploader/internal/usecases"
	consts "media-uploader/pkg/constants"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/swagger"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	cfg := config.LoadConfig()

	rdb := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
	})

	// Object storage: s3 (default) veya lokal geliştirme için memory
	var objectStorage domain_repo.ObjectStorage
	if cfg.Storage.Driver == "memory" {
		objectStorage = storage.NewMemoryStorage()
		log.Println("Memory storage aktif (lokal geliştirme)")
	} else {
		objectStorage = storage.NewS3Storage(cfg.Storage.Bucket, cfg.Storage.Region)
	}

	app := fiber.New(fiber.Config{
		BodyLimit: int(cfg.MaxBodySize()),
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Event broadcaster
	manager := wsdelivery.NewManager()
	go manager.Run()

	// Repositories & Services
	opRepo := infra_repo.NewInMemoryOperationRepository()
	statusStore := infra_repo.NewRedisStatusStore(rdb, 24*time.Hour)

	intakeService := usecases.NewIntakeService(cfg)
	chunkUploader := usecases.NewChunkUploadService(
		objectStorage,
		cfg.Upload.ChunkSize,
		cfg.Upload.MaxRetries,
		cfg.Upload.RetryDelay,
	)
	transcodeService := usecases.NewTranscodeService(
		objectStorage,
		processor.NewFFmpegTranscoder(),
		entities.DefaultLadder,
		cfg.Upload.ScratchDir,
	)
	uploadService := usecases.NewUploadService(
		intakeService,
		chunkUploader,
		transcodeService,
		objectStorage,
		opRepo,
		statusStore,
		manager,
	)

	// Routes
	routers.SetupUploadRoutes(app, cfg, uploadService, objectStorage, manager)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": consts.StatusOK})
	})

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)

	// Graceful shutdown
	go func() {
		if err := app.Listen(addr); err != nil {
			log.Fatalf("Server başlatılamadı: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Print("Shutdown sinyali alındı, server kapatılıyor...")

	ctxShut, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctxShut); err != nil {
		log.Fatalf("Server düzgün kapatılamadı: %v", err)
	}
	log.Println("Server düzgün bir şekilde kapatıldı")
}
