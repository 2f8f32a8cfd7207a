package ws

import (
	"log"
	"sync"

	"media-uploader/internal/domain/dto"
	consts "media-uploader/pkg/constants"
)

// Manager owner başına canlı bağlantı kayıt defteri tutar ve event'leri
// yalnızca ilgili owner'ın bağlantılarına yollar; global fan-out yoktur.
// Gönderim fire-and-forget'tır: bağlantı yoksa ya da buffer doluysa event
// düşer, otoriter sonuç her zaman operasyon sorgusundan okunabilir.
type Manager struct {
	clients    map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (m *Manager) Run() {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			if m.clients[client.OwnerID] == nil {
				m.clients[client.OwnerID] = make(map[*Client]bool)
			}
			m.clients[client.OwnerID][client] = true
			m.mu.Unlock()
			log.Printf("Client registered: %s", client.OwnerID)

		case client := <-m.unregister:
			m.mu.Lock()
			if conns, ok := m.clients[client.OwnerID]; ok {
				if _, ok := conns[client]; ok {
					close(client.Send)
					delete(conns, client)
					if len(conns) == 0 {
						delete(m.clients, client.OwnerID)
					}
					log.Printf("Client unregistered: %s", client.OwnerID)
				}
			}
			m.mu.Unlock()
		}
	}
}

func (m *Manager) BroadcastProgress(ownerID string, ev dto.Event) {
	ev.Type = consts.EventProgress
	m.send(ownerID, ev)
}

func (m *Manager) BroadcastComplete(ownerID string, ev dto.Event) {
	ev.Type = consts.EventComplete
	m.send(ownerID, ev)
}

func (m *Manager) BroadcastError(ownerID string, ev dto.Event) {
	ev.Type = consts.EventError
	m.send(ownerID, ev)
}

func (m *Manager) send(ownerID string, ev dto.Event) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for client := range m.clients[ownerID] {
		select {
		case client.Send <- ev:
		default:
			// Buffer dolu: event düşer, bağlantı koparılmaz
			log.Printf("Event dropped for owner %s (op %s)", ownerID, ev.OperationID)
		}
	}
}

func (m *Manager) IsClientConnected(ownerID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients[ownerID]) > 0
}
