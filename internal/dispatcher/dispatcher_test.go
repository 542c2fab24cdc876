package dispatcher

import (
	"bytes"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asim/chatd/internal/controller"
	"github.com/asim/chatd/internal/journal"
	"github.com/asim/chatd/internal/model"
	"github.com/asim/chatd/internal/timeline"
	"github.com/asim/chatd/internal/uuidgen"
	"github.com/asim/chatd/internal/view"
	"github.com/asim/chatd/internal/wire"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, *timeline.Timeline) {
	t.Helper()
	dir := t.TempDir()
	w, err := journal.Open(dir + "/transaction_log.txt")
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })

	m := model.New()
	gen := uuidgen.New(1)
	ctrl := controller.New(m, gen, w)
	v := view.New(m, wire.UUID{Generator: 0, Sequence: 1})

	tl := timeline.New()
	go tl.Run()
	t.Cleanup(tl.Stop)

	return New(ctrl, v, tl), tl
}

func TestNewUserRoundTrip(t *testing.T) {
	d, tl := newTestDispatcher(t)

	client, server := net.Pipe()
	defer client.Close()

	tl.ScheduleNow(func() { d.handle(server) })

	require.NoError(t, wire.WriteInt(client, int32(wire.NewUser)))
	require.NoError(t, wire.WriteString(client, "alice"))

	op, err := wire.ReadInt(client)
	require.NoError(t, err)
	assert.Equal(t, int32(wire.NewUser), op)

	present, err := wire.ReadBool(client)
	require.NoError(t, err)
	require.True(t, present)

	id, err := wire.ReadUUID(client)
	require.NoError(t, err)
	assert.Equal(t, wire.UUID{Generator: 1, Sequence: 1}, id)

	name, err := wire.ReadString(client)
	require.NoError(t, err)
	assert.Equal(t, "alice", name)

	_, err = wire.ReadTime(client)
	require.NoError(t, err)
}

func TestUnknownOpcodeWritesNoMessage(t *testing.T) {
	d, tl := newTestDispatcher(t)

	client, server := net.Pipe()
	defer client.Close()

	tl.ScheduleNow(func() { d.handle(server) })

	require.NoError(t, wire.WriteInt(client, 0x0DEADBEE))

	op, err := wire.ReadInt(client)
	require.NoError(t, err)
	assert.Equal(t, int32(wire.NoMessage), op)

	// connection should now be closed by the handler
	client.SetReadDeadline(time.Now().Add(time.Second))
	buf := make([]byte, 1)
	_, err = client.Read(buf)
	assert.Error(t, err)
}

func TestConversationRoundTrip(t *testing.T) {
	d, tl := newTestDispatcher(t)

	newUser := func(name string) wire.UUID {
		client, server := net.Pipe()
		defer client.Close()
		tl.ScheduleNow(func() { d.handle(server) })
		require.NoError(t, wire.WriteInt(client, int32(wire.NewUser)))
		require.NoError(t, wire.WriteString(client, name))
		_, err := wire.ReadInt(client)
		require.NoError(t, err)
		present, err := wire.ReadBool(client)
		require.NoError(t, err)
		require.True(t, present)
		id, err := wire.ReadUUID(client)
		require.NoError(t, err)
		_, _ = wire.ReadString(client)
		_, _ = wire.ReadTime(client)
		return id
	}

	owner := newUser("alice")

	client, server := net.Pipe()
	defer client.Close()
	tl.ScheduleNow(func() { d.handle(server) })

	require.NoError(t, wire.WriteInt(client, int32(wire.NewConversation)))
	require.NoError(t, wire.WriteString(client, "general"))
	require.NoError(t, wire.WriteUUID(client, owner))

	_, err := wire.ReadInt(client)
	require.NoError(t, err)
	present, err := wire.ReadBool(client)
	require.NoError(t, err)
	require.True(t, present)
	convID, err := wire.ReadUUID(client)
	require.NoError(t, err)
	assert.Equal(t, wire.UUID{Generator: 1, Sequence: 2}, convID)
}

func TestServeWSCarriesSameOpcodeStream(t *testing.T) {
	d, _ := newTestDispatcher(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, d.ServeWS(w, r))
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	var req bytes.Buffer
	require.NoError(t, wire.WriteInt(&req, int32(wire.NewUser)))
	require.NoError(t, wire.WriteString(&req, "carol"))
	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, req.Bytes()))

	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	resp := bytes.NewReader(data)
	op, err := wire.ReadInt(resp)
	require.NoError(t, err)
	assert.Equal(t, int32(wire.NewUser), op)

	present, err := wire.ReadBool(resp)
	require.NoError(t, err)
	require.True(t, present)

	id, err := wire.ReadUUID(resp)
	require.NoError(t, err)
	assert.Equal(t, wire.UUID{Generator: 1, Sequence: 1}, id)
}
