// Package dispatcher owns the connection-handling side of the wire
// protocol: a fixed opcode→handler table, one request/response pair per
// connection, every handler invoked as a Timeline task so Controller/View
// calls never race with anything else touching the Model.
package dispatcher

import (
	"net"

	"github.com/google/uuid"

	"github.com/asim/chatd/internal/controller"
	"github.com/asim/chatd/internal/logging"
	"github.com/asim/chatd/internal/timeline"
	"github.com/asim/chatd/internal/view"
	"github.com/asim/chatd/internal/wire"
)

// handler reads the request body for its opcode from conn, performs the
// Controller/View call, and writes the response opcode followed by the
// response body. If reading the request body fails it returns the error
// without writing anything; handle closes conn as soon as the handler (or
// the initial opcode read) returns.
type handler func(d *Dispatcher, conn net.Conn) error

// Dispatcher accepts connections and runs one task per connection on tl.
type Dispatcher struct {
	ctrl *controller.Controller
	view *view.View
	tl   *timeline.Timeline
	log  *logging.Logger

	table map[wire.Opcode]handler
}

// New wires a Dispatcher around the given Controller/View pair, scheduling
// every connection's handling onto tl.
func New(ctrl *controller.Controller, v *view.View, tl *timeline.Timeline) *Dispatcher {
	d := &Dispatcher{ctrl: ctrl, view: v, tl: tl, log: logging.Default("dispatcher")}
	d.table = defaultTable()
	return d
}

// Serve accepts connections on ln until it returns an error (e.g. the
// listener was closed), enqueueing one handling task per connection. Accept
// itself runs off the Timeline — only request handling is serialized.
func (d *Dispatcher) Serve(ln net.Listener) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		d.tl.ScheduleNow(func() {
			d.handle(conn)
		})
	}
}

func (d *Dispatcher) handle(conn net.Conn) {
	defer conn.Close()
	d.handleBody(conn, uuid.New().String())
}

// handleBody reads one opcode and its body from conn, dispatches it, and
// writes the response, without closing conn — shared by the raw TCP path
// (handle, which closes conn itself) and the WebSocket bridge (ServeWS,
// which keeps the connection open across many request/response frames).
func (d *Dispatcher) handleBody(conn net.Conn, trace string) {
	op, err := wire.ReadInt(conn)
	if err != nil {
		d.log.Printf("[%s] read opcode: %v", trace, err)
		return
	}

	h, ok := d.table[wire.Opcode(op)]
	if !ok {
		if err := wire.WriteInt(conn, int32(wire.NoMessage)); err != nil {
			d.log.Printf("[%s] write NO_MESSAGE: %v", trace, err)
		}
		return
	}

	if err := h(d, conn); err != nil {
		d.log.Printf("[%s] opcode %d: %v", trace, op, err)
	}
}
