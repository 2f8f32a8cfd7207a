package entities

import (
	"time"

	consts "media-uploader/pkg/constants"
)

// Rendition hedef çözünürlük merdiveninin tek basamağıdır.
type Rendition struct {
	Name      string `json:"name"`   // "720p" gibi
	Height    int    `json:"height"` // genişlik oran korunarak hesaplanır
	Bitrate   string `json:"bitrate"`
	Bandwidth int    `json:"bandwidth"` // master playlist BANDWIDTH değeri
}

// Varsayılan HLS merdiveni
var DefaultLadder = []Rendition{
	{Name: "720p", Height: 720, Bitrate: "2800k", Bandwidth: 2800000},
	{Name: "480p", Height: 480, Bitrate: "1400k", Bandwidth: 1400000},
	{Name: "360p", Height: 360, Bitrate: "800k", Bandwidth: 800000},
}

type TranscodeJob struct {
	OperationID string      `json:"operation_id"`
	InputPath   string      `json:"input_path"`
	Ladder      []Rendition `json:"ladder"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
}

func NewTranscodeJob(operationID, inputPath string, ladder []Rendition) *TranscodeJob {
	return &TranscodeJob{
		OperationID: operationID,
		InputPath:   inputPath,
		Ladder:      ladder,
		Status:      consts.TranscodeQueued,
		CreatedAt:   time.Now(),
	}
}

// Transcode sonucu; manifest + rendition URL'leri tek birim halinde yayınlanır
type TranscodeResult struct {
	ManifestURL     string   `json:"manifest_url"`
	RenditionURLs   []string `json:"rendition_urls"`
	DurationSeconds float64  `json:"duration_seconds"`
}
