package repositories

import (
	"context"

	"media-uploader/internal/domain/entities"
)

// Transcoder harici dönüştürücünün opak kontratı: tek bloklayan çağrı,
// ara sonuç sinyali yok, başarı ya da hata.
type Transcoder interface {
	Transcode(ctx context.Context, inputPath, outputDir string, ladder []entities.Rendition) (*TranscodeOutput, error)
}

// TranscodeOutput lokal diske üretilen artifact seti.
type TranscodeOutput struct {
	ManifestPath       string   // master playlist
	RenditionPlaylists []string // rendition başına media playlist
	SegmentPaths       []string // tüm .ts segmentleri
	DurationSeconds    float64
}
