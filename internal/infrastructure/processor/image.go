package processor

import (
	"fmt"
	"path/filepath"

	"github.com/disintegration/imaging"
)

type ResizeOption struct {
	Width   int
	Height  int
	Quality int // 1-100
}

// Image upload'larının yanına yayınlanan küçük önizleme varyantı
var ThumbnailOption = ResizeOption{Width: 320, Height: 320, Quality: 85}

// CreateThumbnail oran koruyarak küçültülmüş bir kopya üretir.
func CreateThumbnail(inputPath, outputDir string, opt ResizeOption) (string, error) {
	img, err := imaging.Open(inputPath)
	if err != nil {
		return "", fmt.Errorf("resim açılamadı: %w", err)
	}

	resized := imaging.Fit(img, opt.Width, opt.Height, imaging.Lanczos)

	base := filepath.Base(inputPath)
	outputPath := filepath.Join(outputDir, fmt.Sprintf("thumb_%dx%d_%s.jpg", opt.Width, opt.Height, base))

	if err := imaging.Save(resized, outputPath, imaging.JPEGQuality(opt.Quality)); err != nil {
		return "", fmt.Errorf("thumbnail kaydedilemedi: %w", err)
	}

	return outputPath, nil
}
