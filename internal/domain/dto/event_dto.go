package dto

// Event websocket kanalından client'a giden tek mesaj şeklidir.
// Üç tip vardır: tekrarlanabilir "progress", terminal "complete" ve "error";
// complete ile error birbirini dışlar. Hiçbir event persist edilmez.
type Event struct {
	Type          string `json:"type"`
	OperationKind string `json:"operation_kind"`
	OperationID   string `json:"operation_id"`
	Stage         string `json:"stage"`
	Progress      int    `json:"progress"`
	Message       string `json:"message,omitempty"`

	// Stage telemetrisi (uploading için)
	UploadedBytes int64   `json:"uploaded_bytes,omitempty"`
	TotalBytes    int64   `json:"total_bytes,omitempty"`
	ThroughputBps float64 `json:"throughput_bps,omitempty"`
	EtaSeconds    float64 `json:"eta_seconds,omitempty"`
	ChunksDone    int     `json:"chunks_done,omitempty"`
	TotalChunks   int     `json:"total_chunks,omitempty"`

	// Terminal alanlar
	Error  string                `json:"error,omitempty"`
	Result *UploadResultResponse `json:"result,omitempty"`
}
