package usecases

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"media-uploader/internal/domain/entities"
	"media-uploader/internal/domain/repositories"
	consts "media-uploader/pkg/constants"
	"media-uploader/pkg/errors"
)

type TranscodeService interface {
	Transcode(ctx context.Context, op *entities.UploadOperation, remoteDir string, onProgress func(percent int)) (*entities.TranscodeResult, error)
}

// transcodeService harici dönüştürücüyü çağırır ve üretilen artifact setini
// tek birim halinde yayınlar. Manifest her zaman en son yüklenir: herhangi bir
// adım düşerse erişilebilir manifest kalmaz, yüklenmiş segmentler best-effort
// geri alınır.
type transcodeService struct {
	storage    repositories.ObjectStorage
	transcoder repositories.Transcoder
	ladder     []entities.Rendition
	workDir    string
}

func NewTranscodeService(storage repositories.ObjectStorage, transcoder repositories.Transcoder, ladder []entities.Rendition, workDir string) TranscodeService {
	return &transcodeService{
		storage:    storage,
		transcoder: transcoder,
		ladder:     ladder,
		workDir:    workDir,
	}
}

func (s *transcodeService) Transcode(ctx context.Context, op *entities.UploadOperation, remoteDir string, onProgress func(percent int)) (*entities.TranscodeResult, error) {
	job := entities.NewTranscodeJob(op.ID, op.ScratchPath, s.ladder)
	job.Status = consts.TranscodeRunning

	outputDir := filepath.Join(s.workDir, op.ID+"_hls")
	defer func() {
		if err := os.RemoveAll(outputDir); err != nil {
			log.Printf("Transcode çıktı dizini temizlenemedi [%s]: %v", outputDir, err)
		}
	}()

	if onProgress != nil {
		onProgress(0)
	}

	output, err := s.transcoder.Transcode(ctx, op.ScratchPath, outputDir, s.ladder)
	if err != nil {
		job.Status = consts.TranscodeFailed
		return nil, errors.ErrTranscodeTool(err)
	}

	// Önce segmentler ve rendition playlist'leri, manifest en son.
	// total+1: manifest de bir ilerleme adımı sayılır.
	artifacts := append([]string{}, output.SegmentPaths...)
	artifacts = append(artifacts, output.RenditionPlaylists...)

	uploaded := make([]string, 0, len(artifacts)+1)
	total := len(artifacts) + 1

	result := &entities.TranscodeResult{DurationSeconds: output.DurationSeconds}

	for i, path := range artifacts {
		remoteName := remoteDir + "/hls/" + filepath.Base(path)

		url, err := s.uploadArtifact(ctx, path, remoteName)
		if err != nil {
			job.Status = consts.TranscodeFailed
			s.rollback(ctx, uploaded)
			return nil, errors.ErrArtifactUpload(fmt.Errorf("%s: %w", filepath.Base(path), err))
		}
		uploaded = append(uploaded, remoteName)

		for _, pl := range output.RenditionPlaylists {
			if pl == path {
				result.RenditionURLs = append(result.RenditionURLs, url)
			}
		}

		if onProgress != nil {
			onProgress((i + 1) * 100 / total)
		}
	}

	manifestName := remoteDir + "/hls/" + filepath.Base(output.ManifestPath)
	manifestURL, err := s.uploadArtifact(ctx, output.ManifestPath, manifestName)
	if err != nil {
		job.Status = consts.TranscodeFailed
		s.rollback(ctx, uploaded)
		return nil, errors.ErrArtifactUpload(fmt.Errorf("manifest: %w", err))
	}
	result.ManifestURL = manifestURL

	if onProgress != nil {
		onProgress(100)
	}

	job.Status = consts.TranscodeSucceeded
	return result, nil
}

func (s *transcodeService) uploadArtifact(ctx context.Context, localPath, remoteName string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	return s.storage.Upload(ctx, remoteName, f)
}

// Yarım kalmış derivative set best-effort silinir; orijinal dosyaya dokunulmaz
func (s *transcodeService) rollback(ctx context.Context, uploaded []string) {
	for _, name := range uploaded {
		if err := s.storage.Delete(ctx, name, ""); err != nil {
			log.Printf("Rollback: %s silinemedi: %v", name, err)
		}
	}
}
