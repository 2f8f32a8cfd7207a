package repositories

import (
	"context"

	"media-uploader/internal/domain/entities"
)

// OperationRepository canlı operasyon kayıt defteri.
// Network beklemeleri sırasında da okunabilir kalmalı (admin "list unfinished").
type OperationRepository interface {
	Save(op *entities.UploadOperation) error
	GetByID(id string) (*entities.UploadOperation, error)
	ListUnfinished() ([]entities.OperationSnapshot, error)
	Delete(id string) error
}

// OperationStatusStore terminal sonucun query-by-operation-id yolu için
// snapshot kopyasını tutar; kayıtlar TTL ile kendiliğinden düşer.
type OperationStatusStore interface {
	SaveSnapshot(ctx context.Context, snap entities.OperationSnapshot) error
	GetSnapshot(ctx context.Context, id string) (*entities.OperationSnapshot, error)
}
