// Package uuidgen generates the server-scoped UUIDs described in the
// protocol: a fixed generatorId (this server's own id) paired with a
// sequence counter that starts at 1 and only ever increases.
//
// A second, unrelated id — github.com/google/uuid — is used elsewhere in
// chatd purely to tag log lines (a connection's trace id in the
// dispatcher), the same way server/server.go pervasively stamps
// Message/Stream/Observer with uuid.New().String(). It is never used for a
// protocol UUID: the wire format requires the (generatorId, sequence) pair
// this package produces.
package uuidgen

import (
	"fmt"
	"sync"

	"github.com/asim/chatd/internal/wire"
)

// Gen is a monotonic generator of UUIDs sharing one generatorId.
type Gen struct {
	mu        sync.Mutex
	generator uint32
	next      uint32
}

// New returns a Gen for the given generatorId, with sequence starting at 1.
func New(generatorID uint32) *Gen {
	return &Gen{generator: generatorID, next: 1}
}

// Next returns a fresh UUID and advances the counter.
func (g *Gen) Next() wire.UUID {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := wire.UUID{Generator: g.generator, Sequence: g.next}
	g.next++
	return id
}

// Sequence returns the next sequence number that Next would hand out,
// useful for checkpointing progress without consuming an id.
func (g *Gen) Sequence() uint32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.next
}

// Advance sets the counter to seq if seq is further ahead, for restoring
// progress from a checkpoint's stored sequence rather than a replayed UUID.
func (g *Gen) Advance(seq uint32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if seq > g.next {
		g.next = seq
	}
}

// Observe advances the counter past any externally supplied UUID from this
// generator, so future fresh ids never collide with one replayed from the
// journal. UUIDs from other generators are ignored.
func (g *Gen) Observe(id wire.UUID) {
	if id.Generator != g.generator {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if id.Sequence >= g.next {
		g.next = id.Sequence + 1
	}
}

// Parse accepts only the textual form [g.s] used in the journal.
func Parse(s string) (wire.UUID, error) {
	var g, seq uint32
	var rest string
	n, err := fmt.Sscanf(s, "[%d.%d]%s", &g, &seq, &rest)
	if (err != nil && n != 2) || rest != "" {
		return wire.UUID{}, fmt.Errorf("uuidgen: invalid textual UUID %q", s)
	}
	return wire.UUID{Generator: g, Sequence: seq}, nil
}
