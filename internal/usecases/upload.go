package usecases

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"media-uploader/internal/domain/dto"
	"media-uploader/internal/domain/entities"
	"media-uploader/internal/domain/repositories"
	"media-uploader/internal/infrastructure/processor"
	"media-uploader/internal/pkg/fileutils"
	consts "media-uploader/pkg/constants"
	"media-uploader/pkg/errors"
)

type UploadService interface {
	// Sync: sonuç URL'leri response body'de döner
	SubmitSync(ctx context.Context, meta IntakeMeta, body io.Reader) (*dto.UploadResultResponse, error)
	// Async: operasyon id hemen döner, sonuç event kanalından sürülür
	SubmitAsync(meta IntakeMeta, body io.Reader) (*dto.UploadAcceptedResponse, error)

	GetOperation(ctx context.Context, id string) (*entities.OperationSnapshot, error)
	ListUnfinished() ([]entities.OperationSnapshot, error)
}

// uploadService tek operasyonu uçtan uca tek mantıksal worker ile sürer:
// intake -> chunked upload -> (video ise) transcode -> terminal event.
// Operasyonlar arası paylaşılan mutable state yoktur.
type uploadService struct {
	intake      IntakeService
	uploader    ChunkUploadService
	transcoder  TranscodeService
	storage     repositories.ObjectStorage
	repo        repositories.OperationRepository
	statusStore repositories.OperationStatusStore
	notifier    EventNotifier
}

func NewUploadService(
	intake IntakeService,
	uploader ChunkUploadService,
	transcoder TranscodeService,
	storage repositories.ObjectStorage,
	repo repositories.OperationRepository,
	statusStore repositories.OperationStatusStore,
	notifier EventNotifier,
) UploadService {
	return &uploadService{
		intake:      intake,
		uploader:    uploader,
		transcoder:  transcoder,
		storage:     storage,
		repo:        repo,
		statusStore: statusStore,
		notifier:    notifier,
	}
}

func (s *uploadService) SubmitSync(ctx context.Context, meta IntakeMeta, body io.Reader) (*dto.UploadResultResponse, error) {
	op, scratch, err := s.intake.Accept(meta, body)
	if err != nil {
		return nil, err
	}
	s.accepted(ctx, op)

	return s.process(ctx, op, scratch)
}

func (s *uploadService) SubmitAsync(meta IntakeMeta, body io.Reader) (*dto.UploadAcceptedResponse, error) {
	op, scratch, err := s.intake.Accept(meta, body)
	if err != nil {
		return nil, err
	}
	s.accepted(context.Background(), op)

	go func() {
		if _, err := s.process(context.Background(), op, scratch); err != nil {
			log.Printf("Async operasyon %s başarısız: %v", op.ID, err)
		}
	}()

	return &dto.UploadAcceptedResponse{
		Status:      consts.StatusAccepted,
		OperationID: op.ID,
		Message:     "Upload işleme alındı",
	}, nil
}

// Kabul anı: kayıt + stage=uploading progress=0 event'i
func (s *uploadService) accepted(ctx context.Context, op *entities.UploadOperation) {
	if err := s.repo.Save(op); err != nil {
		log.Printf("Operasyon kaydedilemedi [%s]: %v", op.ID, err)
	}
	s.persistSnapshot(ctx, op)
}

func (s *uploadService) process(ctx context.Context, op *entities.UploadOperation, scratch *fileutils.ScratchFile) (*dto.UploadResultResponse, error) {
	// Scratch her çıkış yolunda tam bir kez silinir
	defer func() {
		if err := scratch.Remove(); err != nil {
			ue := errors.ErrScratchRemove(err)
			log.Printf("Lifecycle: %v", ue)
		}
	}()

	if err := op.AdvanceStage(consts.StageUploading); err != nil {
		return nil, s.fail(ctx, op, errors.ErrInternal(err))
	}
	s.persistSnapshot(ctx, op)

	s.notifier.BroadcastProgress(op.OwnerID, dto.Event{
		OperationKind: op.Kind,
		OperationID:   op.ID,
		Stage:         consts.StageUploading,
		Progress:      0,
		Message:       "Dosya yükleniyor",
		TotalBytes:    op.Size,
	})

	remoteDir := remoteDirFor(op)
	remoteName := remoteDir + "/" + op.Filename

	uploadRes, err := s.uploader.Upload(ctx, op.ScratchPath, remoteName, func(sessionID string) {
		// Oturum id'si snapshot'a işlenir: upload yarıda kalırsa admin
		// oturumu buradan bulup iptal edebilir
		op.SetSessionID(sessionID)
		s.persistSnapshot(ctx, op)
	}, func(p ChunkProgress) {
		s.notifier.BroadcastProgress(op.OwnerID, dto.Event{
			OperationKind: op.Kind,
			OperationID:   op.ID,
			Stage:         consts.StageUploading,
			Progress:      p.Percent,
			Message:       "Dosya yükleniyor",
			UploadedBytes: p.UploadedBytes,
			TotalBytes:    p.TotalBytes,
			ThroughputBps: p.ThroughputBps,
			EtaSeconds:    p.EtaSeconds,
			ChunksDone:    p.ChunksDone,
			TotalChunks:   p.TotalChunks,
		})
	})
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}

	result := uploadRes

	switch op.Kind {
	case consts.KindVideo:
		if err := op.AdvanceStage(consts.StageTranscoding); err != nil {
			return nil, s.fail(ctx, op, errors.ErrInternal(err))
		}
		s.persistSnapshot(ctx, op)

		trRes, err := s.transcoder.Transcode(ctx, op, remoteDir, func(percent int) {
			s.notifier.BroadcastProgress(op.OwnerID, dto.Event{
				OperationKind: op.Kind,
				OperationID:   op.ID,
				Stage:         consts.StageTranscoding,
				Progress:      percent,
				Message:       "Video dönüştürülüyor",
			})
		})
		if err != nil {
			// Orijinal artifact zaten commit edildi, storage'da kalır;
			// manifest/rendition yayınlanmadan operasyon düşer
			return nil, s.fail(ctx, op, err)
		}
		result.ManifestURL = trRes.ManifestURL
		result.Renditions = trRes.RenditionURLs
		result.DurationSeconds = trRes.DurationSeconds

	case consts.KindImage:
		// Önizleme varyantı best-effort: üretilemezse orijinal yeterli
		if url, err := s.publishThumbnail(ctx, op, remoteDir); err != nil {
			log.Printf("Thumbnail üretilemedi [%s]: %v", op.ID, err)
		} else {
			result.ThumbnailURL = url
		}
	}

	op.SetResult(result)
	if err := op.AdvanceStage(consts.StageCompleted); err != nil {
		return nil, s.fail(ctx, op, errors.ErrInternal(err))
	}
	s.finish(ctx, op)

	resp := resultResponse(op.ID, result)
	s.notifier.BroadcastComplete(op.OwnerID, dto.Event{
		OperationKind: op.Kind,
		OperationID:   op.ID,
		Stage:         consts.StageCompleted,
		Progress:      100,
		Message:       "Upload tamamlandı",
		Result:        resp,
	})

	return resp, nil
}

func (s *uploadService) publishThumbnail(ctx context.Context, op *entities.UploadOperation, remoteDir string) (string, error) {
	thumbPath, err := processor.CreateThumbnail(op.ScratchPath, os.TempDir(), processor.ThumbnailOption)
	if err != nil {
		return "", err
	}
	defer os.Remove(thumbPath)

	f, err := os.Open(thumbPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	return s.storage.Upload(ctx, remoteDir+"/thumb_"+op.Filename+".jpg", f)
}

// Terminal hata tam bir kez raporlanır: stage=failed + tek error event'i
func (s *uploadService) fail(ctx context.Context, op *entities.UploadOperation, err error) error {
	message := "Upload başarısız"
	if ue, ok := err.(*errors.UploadError); ok {
		message = ue.Message
	}

	if ferr := op.Fail(message); ferr != nil {
		log.Printf("Operasyon %s terminal stage'e alınamadı: %v", op.ID, ferr)
		return err
	}
	s.finish(ctx, op)

	s.notifier.BroadcastError(op.OwnerID, dto.Event{
		OperationKind: op.Kind,
		OperationID:   op.ID,
		Stage:         consts.StageFailed,
		Message:       message,
		Error:         message,
	})
	return err
}

// Terminal aşama: snapshot redis'te kalır, canlı kayıt evict edilir
func (s *uploadService) finish(ctx context.Context, op *entities.UploadOperation) {
	s.persistSnapshot(ctx, op)
	if err := s.repo.Delete(op.ID); err != nil {
		log.Printf("Operasyon evict edilemedi [%s]: %v", op.ID, err)
	}
}

func (s *uploadService) persistSnapshot(ctx context.Context, op *entities.UploadOperation) {
	if s.statusStore == nil {
		return
	}
	if err := s.statusStore.SaveSnapshot(ctx, op.Snapshot()); err != nil {
		log.Printf("Snapshot kaydedilemedi [%s]: %v", op.ID, err)
	}
}

func (s *uploadService) GetOperation(ctx context.Context, id string) (*entities.OperationSnapshot, error) {
	if op, err := s.repo.GetByID(id); err == nil {
		snap := op.Snapshot()
		return &snap, nil
	}
	if s.statusStore != nil {
		if snap, err := s.statusStore.GetSnapshot(ctx, id); err == nil {
			return snap, nil
		}
	}
	return nil, errors.ErrNotFound(fmt.Errorf("operation %s", id))
}

func (s *uploadService) ListUnfinished() ([]entities.OperationSnapshot, error) {
	return s.repo.ListUnfinished()
}

// Orijinal, manifest ve segmentler aynı klasör şeması altında toplanır;
// yan bir veritabanı sorgusu olmadan keşfedilebilir kalırlar.
func remoteDirFor(op *entities.UploadOperation) string {
	category := op.Category
	if category == "" {
		category = "general"
	}

	switch op.Kind {
	case consts.KindImage:
		return fmt.Sprintf("images/%s/%s", category, op.ID)
	case consts.KindVideo:
		return fmt.Sprintf("videos/%s/%s", category, op.ID)
	default:
		return fmt.Sprintf("files/%s", op.ID)
	}
}

func resultResponse(operationID string, res *entities.UploadResult) *dto.UploadResultResponse {
	return &dto.UploadResultResponse{
		Status:          consts.StatusOK,
		OperationID:     operationID,
		FileURL:         res.FileURL,
		ThumbnailURL:    res.ThumbnailURL,
		ManifestURL:     res.ManifestURL,
		Renditions:      res.Renditions,
		DurationSeconds: res.DurationSeconds,
	}
}
