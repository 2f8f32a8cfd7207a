package repositories

import (
	"context"
	"io"
)

// ObjectStorage remote bucket üzerindeki ince kontrat.
// Multipart akışı: Authorize -> OpenMultipart -> UploadPart* -> Finalize.
// Finalize tek seferliktir; aynı oturumda ikinci çağrı protokol hatasıdır.
type ObjectStorage interface {
	Authorize(ctx context.Context) error
	OpenMultipart(ctx context.Context, name string) (sessionID string, err error)
	UploadPart(ctx context.Context, sessionID string, index int, data []byte) (partID string, err error)
	Finalize(ctx context.Context, sessionID string, orderedPartIDs []string) (remoteFileID string, err error)
	AbortMultipart(ctx context.Context, sessionID string) error

	// Küçük artifact'lar için tek çağrılık upload (manifest, segment, thumbnail)
	Upload(ctx context.Context, name string, body io.Reader) (url string, err error)

	// URL isimden deterministik türetilir, ekstra round trip yoktur
	DeriveURL(name string) string

	Delete(ctx context.Context, name, fileID string) error
}
