package fileutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScratchFile_RemoveExactlyOnce(t *testing.T) {
	dir := t.TempDir()

	scratch, f, err := NewScratchFile(dir, "video.mp4")
	require.NoError(t, err)
	_, err = f.WriteString("data")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.FileExists(t, scratch.Path)

	require.NoError(t, scratch.Remove())
	assert.NoFileExists(t, scratch.Path)
	assert.True(t, scratch.Removed())

	// İkinci çağrı no-op, hata dönmez
	require.NoError(t, scratch.Remove())
}

func TestScratchFile_RemoveMissingFile(t *testing.T) {
	dir := t.TempDir()

	scratch, f, err := NewScratchFile(dir, "a.bin")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	// Dosya dışarıdan silinmiş olsa bile Remove hata dönmez
	require.NoError(t, os.Remove(scratch.Path))
	require.NoError(t, scratch.Remove())
}

func TestCopyFile_PreservesContent(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")
	require.NoError(t, os.WriteFile(src, []byte("kopyalanacak veri"), 0644))

	require.NoError(t, CopyFile(src, dst))

	srcHash, err := CalculateFileHash(src)
	require.NoError(t, err)
	dstHash, err := CalculateFileHash(dst)
	require.NoError(t, err)
	assert.Equal(t, srcHash, dstHash)
}

func TestCalculateFileHash_MissingFile(t *testing.T) {
	_, err := CalculateFileHash(filepath.Join(t.TempDir(), "yok.bin"))
	assert.Error(t, err)
}

func TestScratchFile_CollisionResistantNames(t *testing.T) {
	dir := t.TempDir()

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		scratch, f, err := NewScratchFile(dir, "same name.mp4")
		require.NoError(t, err)
		require.NoError(t, f.Close())

		assert.False(t, seen[scratch.Path], "isim çakışması: %s", scratch.Path)
		seen[scratch.Path] = true

		// Path bileşenleri temizlenmiş olmalı
		assert.Equal(t, dir, filepath.Dir(scratch.Path))
		assert.NotContains(t, filepath.Base(scratch.Path), " ")
	}
}
