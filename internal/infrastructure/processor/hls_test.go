package processor

import (
	"os"
	"strings"
	"testing"

	"media-uploader/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readMasterPlaylist(t *testing.T, dir string, ladder []entities.Rendition, srcW, srcH int) string {
	t.Helper()
	path, err := writeMasterPlaylist(dir, ladder, srcW, srcH)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestWriteMasterPlaylist_16x9Source(t *testing.T) {
	content := readMasterPlaylist(t, t.TempDir(), entities.DefaultLadder, 1920, 1080)

	assert.Contains(t, content, "#EXTM3U")
	assert.Contains(t, content, "BANDWIDTH=2800000,RESOLUTION=1280x720")
	assert.Contains(t, content, "BANDWIDTH=1400000,RESOLUTION=854x480")
	assert.Contains(t, content, "BANDWIDTH=800000,RESOLUTION=640x360")
	for _, r := range entities.DefaultLadder {
		assert.Contains(t, content, r.Name+".m3u8")
	}
}

func TestWriteMasterPlaylist_PreservesSourceRatio(t *testing.T) {
	// 4:3 kaynak: genişlik 16:9 varsayımıyla değil kaynak oranıyla yazılır
	ladder := []entities.Rendition{
		{Name: "360p", Height: 360, Bitrate: "800k", Bandwidth: 800000},
	}
	content := readMasterPlaylist(t, t.TempDir(), ladder, 640, 480)

	assert.Contains(t, content, "RESOLUTION=480x360")
	assert.NotContains(t, content, "640x360")
}

func TestWriteMasterPlaylist_UnknownSourceOmitsResolution(t *testing.T) {
	content := readMasterPlaylist(t, t.TempDir(), entities.DefaultLadder, 0, 0)

	assert.NotContains(t, content, "RESOLUTION")
	assert.Contains(t, content, "BANDWIDTH=2800000\n")
}

func TestWriteMasterPlaylist_EvenWidths(t *testing.T) {
	// Tek sayıya düşen genişlikler çifte yuvarlanır (scale=-2 davranışı)
	ladder := []entities.Rendition{
		{Name: "480p", Height: 480, Bitrate: "1400k", Bandwidth: 1400000},
	}
	content := readMasterPlaylist(t, t.TempDir(), ladder, 1920, 1080)

	// 480*1920/1080 = 853.3 -> 854
	assert.Contains(t, content, "RESOLUTION=854x480")
	for _, line := range strings.Split(content, "\n") {
		if !strings.Contains(line, "RESOLUTION=") {
			continue
		}
		res := line[strings.Index(line, "RESOLUTION=")+len("RESOLUTION="):]
		width := strings.Split(res, "x")[0]
		last := width[len(width)-1]
		assert.Contains(t, "02468", string(last), "genişlik çift olmalı: %s", line)
	}
}
