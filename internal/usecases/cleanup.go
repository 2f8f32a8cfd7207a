package usecases

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"media-uploader/pkg/errors"
)

type CleanupService interface {
	CleanupOldScratchFiles(maxAge time.Duration) error
}

// cleanupService per-request temizlikten bağımsız emniyet ağı:
// retention eşiğini aşan scratch dosyalarını süpürür.
type cleanupService struct {
	scratchDir string
}

func NewCleanupService(scratchDir string) CleanupService {
	return &cleanupService{scratchDir: scratchDir}
}

func (s *cleanupService) CleanupOldScratchFiles(maxAge time.Duration) error {
	entries, err := os.ReadDir(s.scratchDir)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(s.scratchDir, entry.Name())
		info, err := os.Stat(path)
		if err != nil {
			log.Printf("Sweep: %v", errors.ErrCannotStat(err))
			continue
		}

		if now.Sub(info.ModTime()) > maxAge {
			if err := os.Remove(path); err != nil {
				log.Printf("Sweep: %v", errors.ErrScratchRemove(err))
				continue
			}
			log.Printf("Removed old scratch file: %s", path)
		}
	}
	return nil
}
