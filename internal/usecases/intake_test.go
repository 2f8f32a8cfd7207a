package usecases

import (
	"os"
	"strings"
	"testing"
	"time"

	"media-uploader/internal/pkg/config"
	consts "media-uploader/pkg/constants"
	uperrors "media-uploader/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Upload: config.UploadConfig{
			ScratchDir: t.TempDir(),
			ChunkSize:  10,
			MaxRetries: 3,
			RetryDelay: time.Millisecond,
			Limits: map[string]config.KindLimit{
				consts.KindImage: {
					MaxSize:          64 * 1024,
					AllowedMimeTypes: []string{"image/jpeg", "image/png"},
				},
				consts.KindVideo: {
					MaxSize:          4096,
					AllowedMimeTypes: []string{"video/mp4"},
				},
				consts.KindGeneric: {
					MaxSize: 2048,
				},
			},
		},
		Env: "test",
	}
}

func scratchEntryCount(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return len(entries)
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	ue, ok := err.(*uperrors.UploadError)
	require.True(t, ok, "UploadError bekleniyordu, geldi: %T", err)
	assert.Equal(t, code, ue.Code)
}

func TestIntake_Success(t *testing.T) {
	cfg := testConfig(t)
	svc := NewIntakeService(cfg)

	body := "fake jpeg bytes"
	op, scratch, err := svc.Accept(IntakeMeta{
		OwnerID:  "owner-1",
		Kind:     consts.KindImage,
		Category: "avatars",
		Filename: "photo.jpg",
		MimeType: "image/jpeg",
		Size:     int64(len(body)),
	}, strings.NewReader(body))
	require.NoError(t, err)
	require.NotNil(t, op)
	require.NotNil(t, scratch)

	assert.Equal(t, consts.StageValidating, op.CurrentStage())
	assert.Equal(t, "owner-1", op.OwnerID)
	assert.Equal(t, int64(len(body)), op.Size)
	assert.NotEmpty(t, op.ID)

	// Body scratch dosyasına aynen akıtıldı
	data, err := os.ReadFile(scratch.Path)
	require.NoError(t, err)
	assert.Equal(t, body, string(data))

	require.NoError(t, scratch.Remove())
}

func TestIntake_MimeFallbackFromExtension(t *testing.T) {
	cfg := testConfig(t)
	svc := NewIntakeService(cfg)

	op, scratch, err := svc.Accept(IntakeMeta{
		OwnerID:  "owner-1",
		Kind:     consts.KindImage,
		Filename: "photo.png",
		Size:     4,
	}, strings.NewReader("data"))
	require.NoError(t, err)
	assert.Equal(t, "image/png", op.MimeType)
	require.NoError(t, scratch.Remove())
}

func TestIntake_InvalidKind(t *testing.T) {
	cfg := testConfig(t)
	svc := NewIntakeService(cfg)

	_, _, err := svc.Accept(IntakeMeta{
		OwnerID:  "owner-1",
		Kind:     "document",
		Filename: "a.pdf",
		Size:     4,
	}, strings.NewReader("data"))
	assertCode(t, err, "validation_invalid_kind")
	assert.Equal(t, 0, scratchEntryCount(t, cfg.Upload.ScratchDir))
}

func TestIntake_MissingOwner(t *testing.T) {
	cfg := testConfig(t)
	svc := NewIntakeService(cfg)

	_, _, err := svc.Accept(IntakeMeta{
		Kind:     consts.KindImage,
		Filename: "a.jpg",
		MimeType: "image/jpeg",
		Size:     4,
	}, strings.NewReader("data"))
	assertCode(t, err, "validation_missing_param")
}

func TestIntake_UnsupportedMime(t *testing.T) {
	cfg := testConfig(t)
	svc := NewIntakeService(cfg)

	_, _, err := svc.Accept(IntakeMeta{
		OwnerID:  "owner-1",
		Kind:     consts.KindImage,
		Filename: "clip.mp4",
		MimeType: "video/mp4",
		Size:     4,
	}, strings.NewReader("data"))
	assertCode(t, err, "validation_unsupported_mime")
	assert.Equal(t, 0, scratchEntryCount(t, cfg.Upload.ScratchDir))
}

func TestIntake_GenericKindAllowsAnyMime(t *testing.T) {
	cfg := testConfig(t)
	svc := NewIntakeService(cfg)

	op, scratch, err := svc.Accept(IntakeMeta{
		OwnerID:  "owner-1",
		Kind:     consts.KindGeneric,
		Filename: "report.pdf",
		MimeType: "application/pdf",
		Size:     4,
	}, strings.NewReader("data"))
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", op.MimeType)
	require.NoError(t, scratch.Remove())
}

func TestIntake_DeclaredSizeOverLimitRejectedBeforeCopy(t *testing.T) {
	cfg := testConfig(t)
	svc := NewIntakeService(cfg)

	// Beyan edilen boyut tavanın üstünde: body hiç okunmadan reddedilir
	var readerTouched bool
	body := readerFunc(func(p []byte) (int, error) {
		readerTouched = true
		return 0, nil
	})

	_, _, err := svc.Accept(IntakeMeta{
		OwnerID:  "owner-1",
		Kind:     consts.KindImage,
		Filename: "huge.jpg",
		MimeType: "image/jpeg",
		Size:     cfg.Upload.Limits[consts.KindImage].MaxSize + 1,
	}, body)
	assertCode(t, err, "validation_file_too_large")
	assert.False(t, readerTouched)
	assert.Equal(t, 0, scratchEntryCount(t, cfg.Upload.ScratchDir))
}

func TestIntake_ActualSizeOverLimitLeavesNoScratch(t *testing.T) {
	cfg := testConfig(t)
	svc := NewIntakeService(cfg)

	// Beyan küçük ama gerçek body tavanı aşıyor
	limit := cfg.Upload.Limits[consts.KindImage].MaxSize
	body := strings.Repeat("x", int(limit)+10)

	_, _, err := svc.Accept(IntakeMeta{
		OwnerID:  "owner-1",
		Kind:     consts.KindImage,
		Filename: "liar.jpg",
		MimeType: "image/jpeg",
		Size:     10,
	}, strings.NewReader(body))
	assertCode(t, err, "validation_file_too_large")
	assert.Equal(t, 0, scratchEntryCount(t, cfg.Upload.ScratchDir))
}

func TestIntake_EmptyBodyLeavesNoScratch(t *testing.T) {
	cfg := testConfig(t)
	svc := NewIntakeService(cfg)

	_, _, err := svc.Accept(IntakeMeta{
		OwnerID:  "owner-1",
		Kind:     consts.KindGeneric,
		Filename: "empty.bin",
		Size:     5,
	}, strings.NewReader(""))
	assertCode(t, err, "validation_missing_file")
	assert.Equal(t, 0, scratchEntryCount(t, cfg.Upload.ScratchDir))
}

func TestIntake_FilenameSanitized(t *testing.T) {
	cfg := testConfig(t)
	svc := NewIntakeService(cfg)

	op, scratch, err := svc.Accept(IntakeMeta{
		OwnerID:  "owner-1",
		Kind:     consts.KindGeneric,
		Filename: "../sneaky name.bin",
		Size:     4,
	}, strings.NewReader("data"))
	require.NoError(t, err)
	assert.NotContains(t, op.Filename, "..")
	assert.NotContains(t, op.Filename, "/")
	require.NoError(t, scratch.Remove())
}

type readerFunc func(p []byte) (int, error)

func (f readerFunc) Read(p []byte) (int, error) { return f(p) }
