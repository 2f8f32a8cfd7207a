package usecases

import (
	"fmt"
	"io"
	"log"

	"media-uploader/internal/domain/entities"
	"media-uploader/internal/pkg/config"
	"media-uploader/internal/pkg/fileutils"
	"media-uploader/pkg/errors"
	"media-uploader/pkg/helper"

	"github.com/google/uuid"
)

// IntakeMeta client'ın beyan ettiği upload metadata'sı.
type IntakeMeta struct {
	OwnerID  string
	Kind     string
	Category string
	Filename string
	MimeType string
	Size     int64
}

type IntakeService interface {
	Accept(meta IntakeMeta, body io.Reader) (*entities.UploadOperation, *fileutils.ScratchFile, error)
}

// intakeService isteği doğrular ve body'yi belleğe almadan scratch dosyasına
// akıtır. Herhangi bir doğrulama hatasında geriye scratch byte'ı kalmaz.
type intakeService struct {
	cfg *config.Config
}

func NewIntakeService(cfg *config.Config) IntakeService {
	return &intakeService{cfg: cfg}
}

func (s *intakeService) Accept(meta IntakeMeta, body io.Reader) (*entities.UploadOperation, *fileutils.ScratchFile, error) {
	limit, ok := s.cfg.Upload.Limits[meta.Kind]
	if !ok {
		return nil, nil, errors.ErrInvalidKind(fmt.Errorf("kind: %s", meta.Kind))
	}

	if meta.OwnerID == "" {
		return nil, nil, errors.ErrMissingParam(fmt.Errorf("owner id"))
	}
	if body == nil || meta.Filename == "" || meta.Size <= 0 {
		return nil, nil, errors.ErrMissingFile(nil)
	}

	// Boyut tavanı body kopyalanmadan önce kontrol edilir
	if meta.Size > limit.MaxSize {
		return nil, nil, errors.ErrFileTooLarge(fmt.Errorf("%d > %d", meta.Size, limit.MaxSize))
	}

	mime := meta.MimeType
	if mime == "" {
		mime = helper.GetMimeTypeFromExtension(meta.Filename)
	}
	if !limit.AllowsMime(mime) {
		return nil, nil, errors.ErrUnsupportedMime(fmt.Errorf("mime: %s", mime))
	}

	scratch, out, err := fileutils.NewScratchFile(s.cfg.Upload.ScratchDir, meta.Filename)
	if err != nil {
		return nil, nil, errors.ErrScratchCreate(err)
	}

	// Beyan edilen boyutun üstü kabul edilmez; limit+1 ile taşma yakalanır
	written, err := io.Copy(out, io.LimitReader(body, limit.MaxSize+1))
	closeErr := out.Close()
	if err != nil || closeErr != nil {
		s.discard(scratch)
		if err == nil {
			err = closeErr
		}
		return nil, nil, errors.ErrInternal(fmt.Errorf("body scratch'e yazılamadı: %w", err))
	}
	if written > limit.MaxSize {
		s.discard(scratch)
		return nil, nil, errors.ErrFileTooLarge(fmt.Errorf("gerçek boyut tavanı aşıyor"))
	}
	if written == 0 {
		s.discard(scratch)
		return nil, nil, errors.ErrMissingFile(fmt.Errorf("boş body"))
	}

	op := entities.NewUploadOperation(
		uuid.New().String(),
		meta.OwnerID,
		meta.Kind,
		meta.Category,
		helper.SanitizeFilename(meta.Filename),
		mime,
		written,
	)
	op.ScratchPath = scratch.Path

	return op, scratch, nil
}

func (s *intakeService) discard(scratch *fileutils.ScratchFile) {
	if err := scratch.Remove(); err != nil {
		log.Printf("Scratch temizlenemedi [%s]: %v", scratch.Path, err)
	}
}
