package usecases

import "media-uploader/internal/domain/dto"

// EventNotifier progress akışının observer kontratı. Uploader ve orchestrator
// event üretir; websocket manager bir dinleyicidir, test kaydediciler bir
// diğeri. Gönderim best-effort'tur, otoriter sonuç her zaman operasyon
// sorgusundan da okunabilir.
type EventNotifier interface {
	BroadcastProgress(ownerID string, ev dto.Event)
	BroadcastComplete(ownerID string, ev dto.Event)
	BroadcastError(ownerID string, ev dto.Event)
}
