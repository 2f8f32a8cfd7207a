package repositories

import (
	"fmt"
	"sync"

	"media-uploader/internal/domain/entities"
)

// InMemoryOperationRepository canlı operasyon kayıt defteri.
// Operasyonlar terminal aşamaya ulaşınca Delete ile düşürülür;
// kalıcı snapshot redis tarafında tutulur.
type InMemoryOperationRepository struct {
	mu   sync.RWMutex
	data map[string]*entities.UploadOperation
}

func NewInMemoryOperationRepository() *InMemoryOperationRepository {
	return &InMemoryOperationRepository{
		data: make(map[string]*entities.UploadOperation),
	}
}

func (r *InMemoryOperationRepository) Save(op *entities.UploadOperation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[op.ID] = op
	return nil
}

func (r *InMemoryOperationRepository) GetByID(id string) (*entities.UploadOperation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	op, exists := r.data[id]
	if !exists {
		return nil, fmt.Errorf("operation not found")
	}
	return op, nil
}

func (r *InMemoryOperationRepository) ListUnfinished() ([]entities.OperationSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]entities.OperationSnapshot, 0)
	for _, op := range r.data {
		if op.IsTerminal() {
			continue
		}
		result = append(result, op.Snapshot())
	}
	return result, nil
}

func (r *InMemoryOperationRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return fmt.Errorf("operation not found")
	}
	delete(r.data, id)
	return nil
}
