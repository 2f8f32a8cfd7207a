package storage

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	uperrors "media-uploader/pkg/errors"

	"github.com/google/uuid"
)

// MemoryStorage ObjectStorage'ın in-process implementasyonu.
// Lokal geliştirme ve testlerde S3 yerine geçer.
type MemoryStorage struct {
	mu       sync.RWMutex
	objects  map[string][]byte
	fileIDs  map[string]string
	sessions map[string]*memorySession
}

type memorySession struct {
	key    string
	parts  map[int][]byte
	ids    map[string]int // partID -> index
	sealed bool
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		objects:  make(map[string][]byte),
		fileIDs:  make(map[string]string),
		sessions: make(map[string]*memorySession),
	}
}

func (m *MemoryStorage) Authorize(ctx context.Context) error {
	return nil
}

func (m *MemoryStorage) OpenMultipart(ctx context.Context, name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sessionID := uuid.New().String()
	m.sessions[sessionID] = &memorySession{
		key:   name,
		parts: make(map[int][]byte),
		ids:   make(map[string]int),
	}
	return sessionID, nil
}

func (m *MemoryStorage) UploadPart(ctx context.Context, sessionID string, index int, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[sessionID]
	if !ok {
		return "", uperrors.ErrSessionNotFound(fmt.Errorf("session %s", sessionID))
	}
	if sess.sealed {
		return "", uperrors.ErrAlreadyFinalized(fmt.Errorf("session %s", sessionID))
	}

	buf := make([]byte, len(data))
	copy(buf, data)
	sess.parts[index] = buf

	partID := fmt.Sprintf("part-%d-%s", index, uuid.New().String()[:8])
	sess.ids[partID] = index
	return partID, nil
}

func (m *MemoryStorage) Finalize(ctx context.Context, sessionID string, orderedPartIDs []string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[sessionID]
	if !ok {
		return "", uperrors.ErrSessionNotFound(fmt.Errorf("session %s", sessionID))
	}
	if sess.sealed {
		return "", uperrors.ErrAlreadyFinalized(fmt.Errorf("session %s", sessionID))
	}

	// Part listesi mühürlemeden önce doğrulanır: reddedilen finalize
	// oturumu kapatmaz, düzeltilmiş listeyle tekrar denenebilir
	indices := make([]int, 0, len(orderedPartIDs))
	covered := make(map[int]bool, len(orderedPartIDs))
	for _, id := range orderedPartIDs {
		idx, ok := sess.ids[id]
		if !ok {
			return "", fmt.Errorf("bilinmeyen part id: %s", id)
		}
		indices = append(indices, idx)
		covered[idx] = true
	}
	if !sort.IntsAreSorted(indices) {
		return "", fmt.Errorf("part listesi sıralı değil")
	}
	if len(covered) != len(sess.parts) {
		return "", fmt.Errorf("part listesi eksik: %d/%d", len(covered), len(sess.parts))
	}
	sess.sealed = true

	var object []byte
	for _, idx := range indices {
		object = append(object, sess.parts[idx]...)
	}

	fileID := uuid.New().String()
	m.objects[sess.key] = object
	m.fileIDs[sess.key] = fileID
	return fileID, nil
}

func (m *MemoryStorage) AbortMultipart(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[sessionID]; !ok {
		return uperrors.ErrSessionNotFound(fmt.Errorf("session %s", sessionID))
	}
	delete(m.sessions, sessionID)
	return nil
}

func (m *MemoryStorage) Upload(ctx context.Context, name string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	m.objects[name] = data
	m.fileIDs[name] = uuid.New().String()
	m.mu.Unlock()

	return m.DeriveURL(name), nil
}

func (m *MemoryStorage) DeriveURL(name string) string {
	return "memory://" + name
}

func (m *MemoryStorage) Delete(ctx context.Context, name, fileID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.objects[name]; !ok {
		return uperrors.ErrNotFound(fmt.Errorf("object %s", name))
	}
	delete(m.objects, name)
	delete(m.fileIDs, name)
	return nil
}

// Test ve admin sorguları için
func (m *MemoryStorage) Object(name string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[name]
	return data, ok
}

func (m *MemoryStorage) ObjectCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
