package broadcast

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"go-survivor/internal/app"
	"go-survivor/internal/component"
	"go-survivor/pkg/utils"
)

func readSnapshot(t *testing.T, ctx context.Context, conn *websocket.Conn) *app.Snapshot {
	t.Helper()
	typ, data, err := conn.Read(ctx)
	require.NoError(t, err)
	require.Equal(t, websocket.MessageBinary, typ)
	var s app.Snapshot
	require.NoError(t, msgpack.Unmarshal(data, &s))
	return &s
}

func TestHubStreamsSnapshots(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	hub.Present(&app.Snapshot{
		SessionID:  "run-1",
		Status:     component.StatusPlaying,
		StatusName: component.StatusPlaying.String(),
		ElapsedMs:  50,
		Player:     &component.Player{Position: utils.Vector2D{X: 3, Y: 4}, Level: 2},
		Enemies:    []component.Enemy{{ID: 7, TypeID: "bat"}},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	// Новый зритель сразу получает последний кадр.
	first := readSnapshot(t, ctx, conn)
	assert.Equal(t, "run-1", first.SessionID)
	assert.Equal(t, component.StatusPlaying, first.Status)
	require.NotNil(t, first.Player)
	assert.Equal(t, utils.Vector2D{X: 3, Y: 4}, first.Player.Position)
	require.Len(t, first.Enemies, 1)
	assert.Equal(t, "bat", first.Enemies[0].TypeID)
	assert.Equal(t, 1, hub.Clients())

	hub.Present(&app.Snapshot{SessionID: "run-1", ElapsedMs: 100, Status: component.StatusGameOver})
	second := readSnapshot(t, ctx, conn)
	assert.Equal(t, 100.0, second.ElapsedMs)
	assert.Equal(t, component.StatusGameOver, second.Status)

	require.NoError(t, conn.Close(websocket.StatusNormalClosure, ""))
	assert.Eventually(t, func() bool { return hub.Clients() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestOfferKeepsNewestFrame(t *testing.T) {
	ch := make(chan []byte, 1)
	offer(ch, []byte("a"))
	offer(ch, []byte("b"))
	offer(ch, []byte("c"))
	assert.Equal(t, []byte("c"), <-ch)
	assert.Empty(t, ch)
}
