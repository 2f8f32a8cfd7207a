package errors

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
)

func HandleError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	if ue, ok := err.(*UploadError); ok {
		// Orijinal hatayı logla (debug için)
		if ue.Err != nil {
			log.Printf("Upload error [%s]: %v", ue.Code, ue.Err)
		}

		// Status kodunu hata ailesinden seç
		var status int
		switch {
		case ue.IsValidation():
			status = fiber.StatusBadRequest
		case ue.IsStorage(), ue.IsTranscode():
			status = fiber.StatusBadGateway
		case ue.Code == "not_found":
			status = fiber.StatusNotFound
		default:
			status = fiber.StatusInternalServerError
		}

		resp := fiber.Map{
			"error":   ue.Code,
			"message": ue.Message,
		}
		// Production dışında alttaki hata detayını da client'a göster
		if ue.Err != nil && os.Getenv("APP_ENV") != "production" {
			resp["detail"] = ue.Err.Error()
		}
		return c.Status(status).JSON(resp)
	}

	// Yakalanmayan hatalar için fallback
	log.Printf("Unexpected error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "internal_error",
		"message": "Sunucu hatası",
	})
}
