package dispatcher

import (
	"bytes"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Timings mirror server/socket.go's stream exactly: a read deadline renewed
// by every pong, and a ping sent often enough to keep it alive.
const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 15 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWS upgrades r to a WebSocket and carries the same opcode/body stream
// Serve does over TCP, one binary frame per request and one per response.
// It exists for browser-based debug clients; the wire format itself never
// changes. The ping/pong/deadline handling is carried over nearly verbatim
// from stream.run, only the payload (chatd's binary frames instead of JSON
// push events) differs.
func (d *Dispatcher) ServeWS(w http.ResponseWriter, r *http.Request) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(wsPongWait))
		return nil
	})

	stop := make(chan struct{})
	defer close(stop)
	go d.wsPingLoop(conn, stop)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return nil
		}

		wc := &wsConn{Conn: conn, r: bytes.NewReader(data)}
		trace := uuid.New().String()
		done := make(chan struct{})
		d.tl.ScheduleNow(func() {
			d.handleBody(wc, trace)
			close(done)
		})
		<-done

		if wc.out.Len() == 0 {
			continue
		}
		conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteMessage(websocket.BinaryMessage, wc.out.Bytes()); err != nil {
			return nil
		}
	}
}

func (d *Dispatcher) wsPingLoop(conn *websocket.Conn, stop chan struct{}) {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// wsConn adapts one WebSocket message to the net.Conn a handler expects:
// reads drain the inbound frame already read off the wire, writes buffer
// into one outbound frame flushed by ServeWS after the handler returns.
type wsConn struct {
	*websocket.Conn
	r   *bytes.Reader
	out bytes.Buffer
}

func (c *wsConn) Read(b []byte) (int, error)  { return c.r.Read(b) }
func (c *wsConn) Write(b []byte) (int, error) { return c.out.Write(b) }
func (c *wsConn) Close() error                { return nil }

func (c *wsConn) SetDeadline(t time.Time) error {
	if err := c.Conn.SetReadDeadline(t); err != nil {
		return err
	}
	return c.Conn.SetWriteDeadline(t)
}

var _ net.Conn = (*wsConn)(nil)
