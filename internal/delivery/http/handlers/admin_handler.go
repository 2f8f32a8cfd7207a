package handlers

import (
	"media-uploader/internal/domain/dto"
	"media-uploader/internal/domain/repositories"
	"media-uploader/internal/usecases"
	consts "media-uploader/pkg/constants"
	"media-uploader/pkg/errors"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler terk edilmiş remote state için manuel kurtarma yüzeyi.
// Otomatik reconciliation yoktur; yarım kalmış oturumlar buradan
// listelenir ve elle temizlenir.
type AdminHandler struct {
	uploadService usecases.UploadService
	storage       repositories.ObjectStorage
}

func NewAdminHandler(uploadService usecases.UploadService, storage repositories.ObjectStorage) *AdminHandler {
	return &AdminHandler{
		uploadService: uploadService,
		storage:       storage,
	}
}

// ListOperations
//
// @Summary      List Unfinished Operations
// @Description  Lists in-flight operations, readable while remote calls are pending
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  dto.OperationListResponse
// @Router       /admin/operations [get]
func (h *AdminHandler) ListOperations(c *fiber.Ctx) error {
	ops, err := h.uploadService.ListUnfinished()
	if err != nil {
		return errors.HandleError(c, err)
	}

	return c.JSON(dto.OperationListResponse{
		Operations: ops,
		Count:      len(ops),
	})
}

// DeleteFile
//
// @Summary      Delete Remote File
// @Description  Manually deletes a committed remote object
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request  body      dto.DeleteFileRequest true "File to delete"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /admin/files [delete]
func (h *AdminHandler) DeleteFile(c *fiber.Ctx) error {
	var req dto.DeleteFileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation_missing_param",
			Message: err.Error(),
		})
	}
	if req.FileName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation_missing_param",
			Message: "file_name eksik",
		})
	}

	if err := h.storage.Delete(c.Context(), req.FileName, req.FileID); err != nil {
		return errors.HandleError(c, errors.ErrRemoteDelete(err))
	}

	return c.JSON(fiber.Map{"status": consts.StatusOK})
}

// AbortSession
//
// @Summary      Abort Multipart Session
// @Description  Manually aborts an orphaned remote multipart session
// @Tags         Admin
// @Produce      json
// @Param        id   path      string true "Session ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /admin/sessions/{id} [delete]
func (h *AdminHandler) AbortSession(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation_missing_param",
			Message: "Eksik parametre",
		})
	}

	if err := h.storage.AbortMultipart(c.Context(), id); err != nil {
		return errors.HandleError(c, err)
	}

	return c.JSON(fiber.Map{"status": consts.StatusOK})
}
