// fileutils.go
package fileutils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"media-uploader/pkg/helper"

	"github.com/google/uuid"
)

// ScratchFile bir operasyonun lokal geçici dosyasını temsil eder.
// Remove her çıkış yolunda çağrılabilir, silme işlemi yalnızca bir kez yapılır.
type ScratchFile struct {
	Path string

	mu      sync.Mutex
	removed bool
}

// Çakışmaya dayanıklı isim: timestamp + uuid suffix + orijinal ad
func NewScratchFile(dir, originalName string) (*ScratchFile, *os.File, error) {
	name := fmt.Sprintf("%d_%s_%s",
		time.Now().UnixNano(),
		uuid.New().String()[:8],
		helper.SanitizeFilename(originalName),
	)
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return &ScratchFile{Path: path}, f, nil
}

func (s *ScratchFile) Remove() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.removed {
		return nil
	}
	s.removed = true

	if err := os.Remove(s.Path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *ScratchFile) Removed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removed
}

// Atomik dosya kopyalama
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

// Dosya hash hesaplama
func CalculateFileHash(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("dosya açılamadı: %w", err)
	}
	defer file.Close()

	h := sha256.New()
	if _, err := io.Copy(h, file); err != nil {
		return "", fmt.Errorf("hash hesaplanamadı: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
