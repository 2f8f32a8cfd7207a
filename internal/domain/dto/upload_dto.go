package dto

import "media-uploader/internal/domain/entities"

type UploadAcceptedResponse struct {
	Status      string `json:"status"`
	OperationID string `json:"operation_id"`
	Message     string `json:"message,omitempty"`
}

type UploadResultResponse struct {
	Status          string   `json:"status"`
	OperationID     string   `json:"operation_id"`
	FileURL         string   `json:"file_url"`
	ThumbnailURL    string   `json:"thumbnail_url,omitempty"`
	ManifestURL     string   `json:"manifest_url,omitempty"`
	Renditions      []string `json:"renditions,omitempty"`
	DurationSeconds float64  `json:"duration_seconds,omitempty"`
}

type OperationStatusResponse struct {
	Operation entities.OperationSnapshot `json:"operation"`
}

type OperationListResponse struct {
	Operations []entities.OperationSnapshot `json:"operations"`
	Count      int                          `json:"count"`
}

type DeleteFileRequest struct {
	FileName string `json:"file_name" form:"file_name"`
	FileID   string `json:"file_id" form:"file_id"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
