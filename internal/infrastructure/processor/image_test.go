package processor

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestPNG(t *testing.T, dir string, width, height int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	path := filepath.Join(dir, "input.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestCreateThumbnail(t *testing.T) {
	dir := t.TempDir()
	input := writeTestPNG(t, dir, 800, 600)

	outPath, err := CreateThumbnail(input, dir, ThumbnailOption)
	require.NoError(t, err)
	require.FileExists(t, outPath)
	assert.Contains(t, filepath.Base(outPath), "thumb_320x320_")

	// Oran korunarak sınırların içine sığdırılır
	thumb, err := imaging.Open(outPath)
	require.NoError(t, err)
	bounds := thumb.Bounds()
	assert.LessOrEqual(t, bounds.Dx(), 320)
	assert.LessOrEqual(t, bounds.Dy(), 320)
	assert.Equal(t, 320, bounds.Dx()) // 800x600 -> 320x240
	assert.Equal(t, 240, bounds.Dy())
}

func TestCreateThumbnail_InvalidInput(t *testing.T) {
	dir := t.TempDir()
	bogus := filepath.Join(dir, "bogus.jpg")
	require.NoError(t, os.WriteFile(bogus, []byte("resim değil"), 0644))

	_, err := CreateThumbnail(bogus, dir, ThumbnailOption)
	assert.Error(t, err)
}
