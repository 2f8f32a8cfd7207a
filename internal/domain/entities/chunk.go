package entities

import (
	consts "media-uploader/pkg/constants"
)

// ChunkTask dosyanın [Start,End) aralığındaki tek bir parçasıdır.
type ChunkTask struct {
	Index    int    `json:"index"`
	Start    int64  `json:"start"`
	End      int64  `json:"end"` // exclusive
	Attempts int    `json:"attempts"`
	Status   string `json:"status"`
}

func (c ChunkTask) Length() int64 {
	return c.End - c.Start
}

// PartitionChunks dosyayı sabit boyutlu chunk'lara böler.
// Aralıklar bitişik ve çakışmasızdır; chunk sayısı ceil(fileSize/chunkSize).
// Sınırlar yalnızca dosya boyutu ve chunk boyutundan deterministik çıkar.
func PartitionChunks(fileSize, chunkSize int64) []ChunkTask {
	if fileSize <= 0 || chunkSize <= 0 {
		return nil
	}

	count := int((fileSize + chunkSize - 1) / chunkSize)
	chunks := make([]ChunkTask, 0, count)

	for i := 0; i < count; i++ {
		start := int64(i) * chunkSize
		end := start + chunkSize
		if end > fileSize {
			end = fileSize
		}
		chunks = append(chunks, ChunkTask{
			Index:  i,
			Start:  start,
			End:    end,
			Status: consts.ChunkPending,
		})
	}
	return chunks
}
