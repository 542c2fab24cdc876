// Package relay implements the federation pump described in the protocol's
// RelayPump: a recurring pull of message bundles from an external relay
// service, applied into the local Model, plus a best-effort push of every
// locally created message. The relay service itself is external and
// unspecified beyond its read/write shape — Client captures exactly that
// shape so a real implementation can be swapped in without touching Pump.
package relay

import (
	"context"

	"github.com/asim/chatd/internal/wire"
)

// Component is one leg of a Bundle: an id/text/time triple. "text" plays
// different roles depending on which component it's read from — it's a
// user's name, a conversation's title, or a message's content — the same
// loose shape the protocol's Bundle exposes for all three.
type Component struct {
	ID   wire.UUID
	Text string
	Time wire.Time
}

// Bundle is one federation record: a (user, conversation, message) triple
// plus the id used to track replication progress (lastSeen).
type Bundle struct {
	ID           wire.UUID
	User         Component
	Conversation Component
	Message      Component
}

// Client is the external relay API consumed (not defined) by this server.
type Client interface {
	// Read returns up to max bundles for serverID/secret since sinceBundleID.
	Read(ctx context.Context, serverID, secret string, sinceBundleID wire.UUID, max int) ([]Bundle, error)
	// Write pushes one (user, conversation, message) triple.
	Write(ctx context.Context, serverID, secret string, user, conversation, message Component) error
}
