package errors

import (
	"fmt"
	"strings"
)

type UploadError struct {
	Code    string
	Message string
	Err     error
}

func (e *UploadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// Kod prefix'leri hata ailesini belirler: validation_, storage_, transcode_, lifecycle_
func (e *UploadError) IsValidation() bool { return strings.HasPrefix(e.Code, "validation_") }
func (e *UploadError) IsStorage() bool    { return strings.HasPrefix(e.Code, "storage_") }
func (e *UploadError) IsTranscode() bool  { return strings.HasPrefix(e.Code, "transcode_") }
func (e *UploadError) IsLifecycle() bool  { return strings.HasPrefix(e.Code, "lifecycle_") }

var (
	// Validation hataları (lokal red, remote iş başlamadan döner)
	ErrMissingFile = func(err error) *UploadError {
		return &UploadError{Code: "validation_missing_file", Message: "Dosya bulunamadı", Err: err}
	}
	ErrMissingParam = func(err error) *UploadError {
		return &UploadError{Code: "validation_missing_param", Message: "Eksik parametre", Err: err}
	}
	ErrInvalidKind = func(err error) *UploadError {
		return &UploadError{Code: "validation_invalid_kind", Message: "Geçersiz upload türü", Err: err}
	}
	ErrUnsupportedMime = func(err error) *UploadError {
		return &UploadError{Code: "validation_unsupported_mime", Message: "Desteklenmeyen dosya tipi", Err: err}
	}
	ErrFileTooLarge = func(err error) *UploadError {
		return &UploadError{Code: "validation_file_too_large", Message: "Dosya boyutu limiti aşıyor", Err: err}
	}

	// Storage hataları (retry'lar tükendikten sonra operasyonun tamamı düşer)
	ErrStorageAuth = func(err error) *UploadError {
		return &UploadError{Code: "storage_auth_failed", Message: "Storage yetkilendirmesi başarısız", Err: err}
	}
	ErrOpenSession = func(err error) *UploadError {
		return &UploadError{Code: "storage_session_failed", Message: "Multipart oturumu açılamadı", Err: err}
	}
	ErrChunkUpload = func(err error) *UploadError {
		return &UploadError{Code: "storage_chunk_failed", Message: "Chunk yüklenemedi", Err: err}
	}
	ErrFinalize = func(err error) *UploadError {
		return &UploadError{Code: "storage_finalize_failed", Message: "Upload tamamlanamadı", Err: err}
	}
	ErrAlreadyFinalized = func(err error) *UploadError {
		return &UploadError{Code: "storage_already_finalized", Message: "Oturum zaten kapatılmış", Err: err}
	}
	ErrSessionNotFound = func(err error) *UploadError {
		return &UploadError{Code: "storage_session_not_found", Message: "Oturum bulunamadı", Err: err}
	}
	ErrRemoteDelete = func(err error) *UploadError {
		return &UploadError{Code: "storage_delete_failed", Message: "Dosya silinemedi", Err: err}
	}

	// Transcode hataları (kısmi manifest asla yayınlanmaz)
	ErrTranscodeTool = func(err error) *UploadError {
		return &UploadError{Code: "transcode_tool_failed", Message: "Video dönüştürülemedi", Err: err}
	}
	ErrArtifactUpload = func(err error) *UploadError {
		return &UploadError{Code: "transcode_artifact_failed", Message: "Transcode çıktıları yüklenemedi", Err: err}
	}

	// Lifecycle hataları (loglanır, fatal değil)
	ErrScratchCreate = func(err error) *UploadError {
		return &UploadError{Code: "lifecycle_scratch_create", Message: "Geçici dosya oluşturulamadı", Err: err}
	}
	ErrScratchRemove = func(err error) *UploadError {
		return &UploadError{Code: "lifecycle_scratch_remove", Message: "Geçici dosya kaldırılamadı", Err: err}
	}
	ErrCannotStat = func(err error) *UploadError {
		return &UploadError{Code: "lifecycle_cannot_stat", Message: "Stat alınamadı", Err: err}
	}

	ErrNotFound = func(err error) *UploadError {
		return &UploadError{Code: "not_found", Message: "Kayıt bulunamadı", Err: err}
	}
	ErrInternal = func(err error) *UploadError {
		return &UploadError{Code: "internal_error", Message: "Sunucu hatası", Err: err}
	}
)
