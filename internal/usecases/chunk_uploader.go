package usecases

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"time"

	"media-uploader/internal/domain/entities"
	"media-uploader/internal/domain/repositories"
	consts "media-uploader/pkg/constants"
	"media-uploader/pkg/errors"
)

// ChunkProgress her başarılı chunk sonrası üretilen telemetri.
type ChunkProgress struct {
	UploadedBytes int64
	TotalBytes    int64
	ChunksDone    int
	TotalChunks   int
	Percent       int
	ThroughputBps float64
	EtaSeconds    float64
}

type ProgressFn func(p ChunkProgress)

// SessionFn açılan multipart oturumunun id'sini dışarı sızdırır; operasyon
// kaydı bu id'yi taşımazsa terk edilmiş oturum elle iptal edilemez.
type SessionFn func(sessionID string)

type ChunkUploadService interface {
	Upload(ctx context.Context, localPath, remoteName string, onSession SessionFn, onProgress ProgressFn) (*entities.UploadResult, error)
}

// chunkUploadService dosyayı sabit boyutlu chunk'lara bölüp sırayla yükler.
// Tek şerit: aynı anda tek chunk buffer'ı tutulur, bellek sınırlı kalır.
type chunkUploadService struct {
	storage    repositories.ObjectStorage
	chunkSize  int64
	maxRetries int
	retryDelay time.Duration
}

func NewChunkUploadService(storage repositories.ObjectStorage, chunkSize int64, maxRetries int, retryDelay time.Duration) ChunkUploadService {
	return &chunkUploadService{
		storage:    storage,
		chunkSize:  chunkSize,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
	}
}

func (s *chunkUploadService) Upload(ctx context.Context, localPath, remoteName string, onSession SessionFn, onProgress ProgressFn) (*entities.UploadResult, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return nil, errors.ErrInternal(err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, errors.ErrCannotStat(err)
	}
	totalBytes := info.Size()

	chunks := entities.PartitionChunks(totalBytes, s.chunkSize)
	if len(chunks) == 0 {
		return nil, errors.ErrMissingFile(fmt.Errorf("boş dosya: %s", localPath))
	}

	if err := s.storage.Authorize(ctx); err != nil {
		return nil, errors.ErrStorageAuth(err)
	}

	sessionID, err := s.storage.OpenMultipart(ctx, remoteName)
	if err != nil {
		return nil, errors.ErrOpenSession(err)
	}
	if onSession != nil {
		onSession(sessionID)
	}

	partIDs := make([]string, 0, len(chunks))
	var uploadedBytes int64
	startTime := time.Now()
	buf := make([]byte, s.chunkSize)

	// Chunk'lar kesin artan sırada işlenir; finalize sıralı part listesini alır
	for i := range chunks {
		chunk := &chunks[i]
		chunk.Status = consts.ChunkUploading

		data := buf[:chunk.Length()]
		n, err := file.ReadAt(data, chunk.Start)
		if err != nil && err != io.EOF {
			chunk.Status = consts.ChunkFailed
			return nil, errors.ErrInternal(fmt.Errorf("chunk %d okunamadı: %w", chunk.Index, err))
		}
		// Stat ile okuma arasında dosya kısalmış olabilir; eksik okunan chunk
		// asla yüklenmez
		if int64(n) != chunk.Length() {
			chunk.Status = consts.ChunkFailed
			return nil, errors.ErrInternal(fmt.Errorf("chunk %d eksik okundu: %d/%d byte", chunk.Index, n, chunk.Length()))
		}

		partID, err := s.uploadChunkWithRetry(ctx, sessionID, chunk, data)
		if err != nil {
			// Retry'lar tükendi: operasyonun tamamı düşer, önceki part'lar
			// remote'ta terk edilir (manuel admin temizliği)
			chunk.Status = consts.ChunkFailed
			return nil, errors.ErrChunkUpload(err)
		}
		chunk.Status = consts.ChunkSucceeded
		partIDs = append(partIDs, partID)

		uploadedBytes += chunk.Length()
		if onProgress != nil {
			onProgress(buildProgress(uploadedBytes, totalBytes, chunk.Index+1, len(chunks), startTime))
		}
	}

	remoteFileID, err := s.storage.Finalize(ctx, sessionID, partIDs)
	if err != nil {
		return nil, errors.ErrFinalize(err)
	}

	return &entities.UploadResult{
		RemoteFileID:   remoteFileID,
		RemoteFileName: remoteName,
		FileURL:        s.storage.DeriveURL(remoteName),
	}, nil
}

// Aynı chunk maxRetries kez denenir; aralarda lineer backoff beklenir.
func (s *chunkUploadService) uploadChunkWithRetry(ctx context.Context, sessionID string, chunk *entities.ChunkTask, data []byte) (string, error) {
	var lastErr error
	for chunk.Attempts < s.maxRetries {
		chunk.Attempts++

		partID, err := s.storage.UploadPart(ctx, sessionID, chunk.Index, data)
		if err == nil {
			return partID, nil
		}
		lastErr = err
		log.Printf("Chunk %d deneme %d/%d başarısız: %v", chunk.Index, chunk.Attempts, s.maxRetries, err)

		if chunk.Attempts < s.maxRetries {
			select {
			case <-time.After(s.retryDelay * time.Duration(chunk.Attempts)):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
	}
	return "", fmt.Errorf("chunk %d, %d denemede yüklenemedi: %w", chunk.Index, s.maxRetries, lastErr)
}

func buildProgress(uploadedBytes, totalBytes int64, chunksDone, totalChunks int, startTime time.Time) ChunkProgress {
	elapsed := time.Since(startTime).Seconds()

	var throughput float64
	if elapsed > 0 {
		throughput = float64(uploadedBytes) / elapsed
	}

	// Sıfır throughput'a karşı korumalı ETA
	var eta float64
	if throughput > 0 {
		eta = float64(totalBytes-uploadedBytes) / throughput
	}

	return ChunkProgress{
		UploadedBytes: uploadedBytes,
		TotalBytes:    totalBytes,
		ChunksDone:    chunksDone,
		TotalChunks:   totalChunks,
		Percent:       int(math.Round(float64(chunksDone) / float64(totalChunks) * 100)),
		ThroughputBps: throughput,
		EtaSeconds:    eta,
	}
}
