package entities

import (
	"fmt"
	"sync"
	"time"

	consts "media-uploader/pkg/constants"
)

// UploadOperation tek bir kullanıcı upload'ının yaşam döngüsünü taşır.
// Stage geçişleri AdvanceStage üzerinden zorunlu kılınır; hiçbir aşama
// tekrar ziyaret edilmez.
type UploadOperation struct {
	mu sync.RWMutex

	ID          string
	OwnerID     string
	Kind        string // "image", "video", "generic"
	Category    string // image folder / video kategorisi
	ScratchPath string
	Filename    string
	Size        int64
	MimeType    string
	Stage       string
	SessionID   string // açık multipart oturumu; admin abort bu id ile çalışır
	FailReason  string
	Result      *UploadResult
	CreatedAt   time.Time
}

// Upload sonucu; terminal complete event'inde ve sync cevaplarda döner
type UploadResult struct {
	RemoteFileID    string   `json:"remote_file_id"`
	RemoteFileName  string   `json:"remote_file_name"`
	FileURL         string   `json:"file_url"`
	ThumbnailURL    string   `json:"thumbnail_url,omitempty"`
	ManifestURL     string   `json:"manifest_url,omitempty"`
	Renditions      []string `json:"renditions,omitempty"`
	DurationSeconds float64  `json:"duration_seconds,omitempty"`
}

// JSON'a çevrilebilir, mutex'siz kopya
type OperationSnapshot struct {
	ID         string        `json:"id"`
	OwnerID    string        `json:"owner_id"`
	Kind       string        `json:"kind"`
	Category   string        `json:"category,omitempty"`
	Filename   string        `json:"filename"`
	Size       int64         `json:"size"`
	MimeType   string        `json:"mime_type"`
	Stage      string        `json:"stage"`
	SessionID  string        `json:"session_id,omitempty"`
	FailReason string        `json:"fail_reason,omitempty"`
	Result     *UploadResult `json:"result,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
}

var legalTransitions = map[string][]string{
	consts.StageValidating:  {consts.StageUploading, consts.StageFailed},
	consts.StageUploading:   {consts.StageTranscoding, consts.StageCompleted, consts.StageFailed},
	consts.StageTranscoding: {consts.StageCompleted, consts.StageFailed},
}

func NewUploadOperation(id, ownerID, kind, category, filename, mimeType string, size int64) *UploadOperation {
	return &UploadOperation{
		ID:        id,
		OwnerID:   ownerID,
		Kind:      kind,
		Category:  category,
		Filename:  filename,
		MimeType:  mimeType,
		Size:      size,
		Stage:     consts.StageValidating,
		CreatedAt: time.Now(),
	}
}

func (o *UploadOperation) AdvanceStage(next string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, allowed := range legalTransitions[o.Stage] {
		if allowed == next {
			o.Stage = next
			return nil
		}
	}
	return fmt.Errorf("geçersiz stage geçişi: %s -> %s", o.Stage, next)
}

func (o *UploadOperation) Fail(reason string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.Stage == consts.StageCompleted || o.Stage == consts.StageFailed {
		return fmt.Errorf("terminal stage'den geçiş yok: %s", o.Stage)
	}
	o.Stage = consts.StageFailed
	o.FailReason = reason
	return nil
}

func (o *UploadOperation) CurrentStage() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.Stage
}

func (o *UploadOperation) IsTerminal() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.Stage == consts.StageCompleted || o.Stage == consts.StageFailed
}

func (o *UploadOperation) SetResult(res *UploadResult) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Result = res
}

// Açık multipart oturumu operasyona bağlanır; terk edilmiş oturumlar
// snapshot üzerinden keşfedilip elle iptal edilebilir.
func (o *UploadOperation) SetSessionID(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.SessionID = id
}

func (o *UploadOperation) Snapshot() OperationSnapshot {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return OperationSnapshot{
		ID:         o.ID,
		OwnerID:    o.OwnerID,
		Kind:       o.Kind,
		Category:   o.Category,
		Filename:   o.Filename,
		Size:       o.Size,
		MimeType:   o.MimeType,
		Stage:      o.Stage,
		SessionID:  o.SessionID,
		FailReason: o.FailReason,
		Result:     o.Result,
		CreatedAt:  o.CreatedAt,
	}
}
