package constants

// Operasyon aşamaları
const (
	StageValidating  = "validating"
	StageUploading   = "uploading"
	StageTranscoding = "transcoding"
	StageCompleted   = "completed"
	StageFailed      = "failed"
)

// Upload türleri
const (
	KindImage   = "image"
	KindVideo   = "video"
	KindGeneric = "generic"
)

// Chunk durumları
const (
	ChunkPending   = "pending"
	ChunkUploading = "uploading"
	ChunkSucceeded = "succeeded"
	ChunkFailed    = "failed"
)

// Transcode job durumları
const (
	TranscodeQueued    = "queued"
	TranscodeRunning   = "running"
	TranscodeSucceeded = "succeeded"
	TranscodeFailed    = "failed"
)

// Event tipleri
const (
	EventProgress = "progress"
	EventComplete = "complete"
	EventError    = "error"
)

const (
	StatusOK       = "ok"
	StatusAccepted = "accepted"
)
