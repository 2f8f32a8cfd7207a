package ws

import (
	"log"

	"media-uploader/internal/domain/dto"

	"github.com/gofiber/websocket/v2"
)

// Client bir owner'ın tek canlı bağlantısıdır. Aynı owner birden fazla
// bağlantı açabilir; event'ler operation id ile demultiplex edilir.
type Client struct {
	OwnerID string
	Conn    *websocket.Conn
	Send    chan dto.Event
}

// ServeWS upgrade edilmiş bağlantıyı manager'a kaydeder ve kapanana kadar
// event'leri yazar. Kanal sadece sunucudan client'a akar; client'tan gelen
// mesajlar yok sayılır, read loop yalnızca kopuşu yakalar.
func ServeWS(manager *Manager) func(*websocket.Conn) {
	return func(conn *websocket.Conn) {
		ownerID := conn.Query("owner_id")
		if ownerID == "" {
			log.Println("WebSocket bağlantısı owner_id olmadan reddedildi")
			conn.Close()
			return
		}

		client := &Client{
			OwnerID: ownerID,
			Conn:    conn,
			Send:    make(chan dto.Event, 16),
		}

		manager.register <- client
		go client.readPump(manager)
		client.writePump()
	}
}

func (c *Client) readPump(manager *Manager) {
	defer func() {
		manager.unregister <- c
	}()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *Client) writePump() {
	for ev := range c.Send {
		if err := c.Conn.WriteJSON(ev); err != nil {
			log.Println("WebSocket write error:", err)
			break
		}
	}
	c.Conn.Close()
}
