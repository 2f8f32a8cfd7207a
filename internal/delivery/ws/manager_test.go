package ws

import (
	"testing"
	"time"

	"media-uploader/internal/domain/dto"
	consts "media-uploader/pkg/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(ownerID string, buffer int) *Client {
	return &Client{
		OwnerID: ownerID,
		Send:    make(chan dto.Event, buffer),
	}
}

func registerAndWait(t *testing.T, m *Manager, c *Client) {
	t.Helper()
	m.register <- c
	require.Eventually(t, func() bool {
		return m.IsClientConnected(c.OwnerID)
	}, time.Second, 5*time.Millisecond)
}

func TestManager_BroadcastOnlyToOwner(t *testing.T) {
	m := NewManager()
	go m.Run()

	alice := newTestClient("alice", 4)
	bob := newTestClient("bob", 4)
	registerAndWait(t, m, alice)
	registerAndWait(t, m, bob)

	m.BroadcastProgress("alice", dto.Event{OperationID: "op-1", Progress: 50})

	select {
	case ev := <-alice.Send:
		assert.Equal(t, consts.EventProgress, ev.Type)
		assert.Equal(t, "op-1", ev.OperationID)
		assert.Equal(t, 50, ev.Progress)
	case <-time.After(time.Second):
		t.Fatal("alice event almalıydı")
	}

	select {
	case ev := <-bob.Send:
		t.Fatalf("bob'a event sızdı: %+v", ev)
	default:
	}
}

func TestManager_MultipleConnectionsSameOwner(t *testing.T) {
	m := NewManager()
	go m.Run()

	first := newTestClient("alice", 4)
	second := newTestClient("alice", 4)
	registerAndWait(t, m, first)
	registerAndWait(t, m, second)

	m.BroadcastComplete("alice", dto.Event{OperationID: "op-1"})

	for _, c := range []*Client{first, second} {
		select {
		case ev := <-c.Send:
			assert.Equal(t, consts.EventComplete, ev.Type)
		case <-time.After(time.Second):
			t.Fatal("her bağlantı event almalıydı")
		}
	}
}

func TestManager_FullBufferDropsEvent(t *testing.T) {
	m := NewManager()
	go m.Run()

	client := newTestClient("alice", 1)
	registerAndWait(t, m, client)

	// Buffer'ı doldur; ikinci event bloklamadan düşmeli
	m.BroadcastProgress("alice", dto.Event{OperationID: "op-1", Progress: 10})

	done := make(chan struct{})
	go func() {
		m.BroadcastProgress("alice", dto.Event{OperationID: "op-1", Progress: 20})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dolu buffer'a gönderim bloklamamalı")
	}

	ev := <-client.Send
	assert.Equal(t, 10, ev.Progress)
	select {
	case ev := <-client.Send:
		t.Fatalf("düşmesi gereken event geldi: %+v", ev)
	default:
	}
}

func TestManager_UnregisterClosesSend(t *testing.T) {
	m := NewManager()
	go m.Run()

	client := newTestClient("alice", 4)
	registerAndWait(t, m, client)

	m.unregister <- client
	require.Eventually(t, func() bool {
		return !m.IsClientConnected("alice")
	}, time.Second, 5*time.Millisecond)

	_, open := <-client.Send
	assert.False(t, open)

	// Bağlantı yokken gönderim sessizce düşer
	m.BroadcastError("alice", dto.Event{OperationID: "op-1"})
}
