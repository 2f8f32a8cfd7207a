package handlers

import (
	"log"

	"media-uploader/internal/domain/dto"
	"media-uploader/internal/usecases"
	consts "media-uploader/pkg/constants"
	"media-uploader/pkg/errors"

	"github.com/gofiber/fiber/v2"
)

type UploadHandler struct {
	uploadService usecases.UploadService
}

func NewUploadHandler(uploadService usecases.UploadService) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
	}
}

// UploadImage
//
// @Summary      Upload Image
// @Description  Uploads an image, publishes it with a thumbnail variant
// @Tags         Upload
// @Accept       multipart/form-data
// @Produce      json
// @Param        X-Owner-ID  header    string true  "Owner ID"
// @Param        folder      formData  string false "Target folder"
// @Param        async       formData  bool   false "Return operation id immediately"
// @Param        file        formData  file   true  "Image file"
// @Success      200         {object}  dto.UploadResultResponse
// @Failure      400         {object}  dto.ErrorResponse
// @Router       /upload/image [post]
func (h *UploadHandler) UploadImage(c *fiber.Ctx) error {
	return h.handleUpload(c, consts.KindImage, "folder", false)
}

// UploadVideo
//
// @Summary      Upload Video
// @Description  Uploads a video and transcodes it into adaptive HLS renditions; completion is driven over the event channel
// @Tags         Upload
// @Accept       multipart/form-data
// @Produce      json
// @Param        X-Owner-ID  header    string true  "Owner ID"
// @Param        category    formData  string false "Video category"
// @Param        async       formData  bool   false "Return operation id immediately (default true)"
// @Param        file        formData  file   true  "Video file"
// @Success      202         {object}  dto.UploadAcceptedResponse
// @Failure      400         {object}  dto.ErrorResponse
// @Router       /upload/video [post]
func (h *UploadHandler) UploadVideo(c *fiber.Ctx) error {
	return h.handleUpload(c, consts.KindVideo, "category", true)
}

// UploadFile
//
// @Summary      Upload File
// @Description  Uploads a generic file of any type
// @Tags         Upload
// @Accept       multipart/form-data
// @Produce      json
// @Param        X-Owner-ID  header    string true  "Owner ID"
// @Param        async       formData  bool   false "Return operation id immediately"
// @Param        file        formData  file   true  "File"
// @Success      200         {object}  dto.UploadResultResponse
// @Failure      400         {object}  dto.ErrorResponse
// @Router       /upload/file [post]
func (h *UploadHandler) UploadFile(c *fiber.Ctx) error {
	return h.handleUpload(c, consts.KindGeneric, "", false)
}

func (h *UploadHandler) handleUpload(c *fiber.Ctx, kind, categoryParam string, defaultAsync bool) error {
	ownerID := c.Get("X-Owner-ID")
	if ownerID == "" {
		ownerID = c.Query("owner_id")
	}
	if ownerID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation_missing_param",
			Message: "Owner id eksik",
		})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation_missing_file",
			Message: "Dosya bulunamadı",
		})
	}

	var category string
	if categoryParam != "" {
		category = c.FormValue(categoryParam)
		if category == "" {
			category = c.Query(categoryParam)
		}
	}

	async := defaultAsync
	if v := c.FormValue("async", c.Query("async")); v != "" {
		async = v == "true" || v == "1"
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.HandleError(c, errors.ErrMissingFile(err))
	}
	defer file.Close()

	meta := usecases.IntakeMeta{
		OwnerID:  ownerID,
		Kind:     kind,
		Category: category,
		Filename: fileHeader.Filename,
		MimeType: fileHeader.Header.Get("Content-Type"),
		Size:     fileHeader.Size,
	}

	if async {
		// Body scratch'e akıtıldıktan sonra operasyon id hemen döner;
		// tamamlanma yalnızca event kanalından sürülür
		resp, err := h.uploadService.SubmitAsync(meta, file)
		if err != nil {
			return errors.HandleError(c, err)
		}
		log.Printf("DEBUG: Async upload kabul edildi: owner=%s, op=%s", ownerID, resp.OperationID)
		return c.Status(fiber.StatusAccepted).JSON(resp)
	}

	resp, err := h.uploadService.SubmitSync(c.Context(), meta, file)
	if err != nil {
		return errors.HandleError(c, err)
	}
	return c.JSON(resp)
}

// OperationStatus
//
// @Summary      Get Operation Status
// @Description  Authoritative outcome of an upload operation, independent of the event channel
// @Tags         Upload
// @Produce      json
// @Param        id   path      string true "Operation ID"
// @Success      200  {object}  dto.OperationStatusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /upload/operations/{id} [get]
func (h *UploadHandler) OperationStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation_missing_param",
			Message: "Eksik parametre",
		})
	}

	snap, err := h.uploadService.GetOperation(c.Context(), id)
	if err != nil {
		return errors.HandleError(c, err)
	}

	return c.JSON(dto.OperationStatusResponse{Operation: *snap})
}
