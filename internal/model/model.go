// Package model owns the authoritative in-memory state of a chatd server:
// users, conversations, messages, access bits, interest sets, and per-user
// status. It is touched exclusively from the Timeline worker goroutine
// (see internal/timeline) and therefore carries no locking of its own — the
// same "single writer, no per-index lock" trade server.Run()'s select loop
// makes for state reached only from inside that loop.
package model

import "github.com/asim/chatd/internal/wire"

// AccessBits is a per-(conversation,user) bitfield.
type AccessBits int32

const (
	BitCreator AccessBits = 1 << iota
	BitOwner
	BitMember
	BitRemoved
)

func (b AccessBits) Has(bit AccessBits) bool { return b&bit != 0 }

func (b AccessBits) Set(bit AccessBits, on bool) AccessBits {
	if on {
		return b | bit
	}
	return b &^ bit
}

// User is created exactly once and never mutated or deleted.
type User struct {
	ID       wire.UUID
	Name     string
	Creation wire.Time
}

// ConversationHeader is the stable identity/metadata half of a conversation.
type ConversationHeader struct {
	ID       wire.UUID
	Owner    wire.UUID
	Title    string
	Creation wire.Time
}

// ConversationPayload is the mutable half: pointers into the message linked
// list. Split from ConversationHeader because it changes on every message.
type ConversationPayload struct {
	ID    wire.UUID
	First wire.UUID
	Last  wire.UUID
}

// Message forms a doubly-linked list per conversation, insertion-ordered.
type Message struct {
	ID           wire.UUID
	Author       wire.UUID
	Conversation wire.UUID
	Content      string
	Creation     wire.Time
	Prev         wire.UUID
	Next         wire.UUID
}

// pairKey identifies a (conversation, user) pair for access-bit and count maps.
type pairKey struct {
	conversation wire.UUID
	user         wire.UUID
}

// statusEntry is the per-user status record: last status-update time and
// the per-conversation times recorded by SetUpdatedConversation. Unseen
// counts live separately in Model.unseenCounts.
type statusEntry struct {
	lastStatusUpdate   wire.Time
	updatedConversations map[wire.UUID]wire.Time
}

// Model is the indexed arena: every entity lives in a flat map keyed by its
// UUID, referenced by id rather than by pointer cycles (conversations and
// messages link to each other only through UUIDs).
type Model struct {
	usersByID         map[wire.UUID]*User
	conversationsByID map[wire.UUID]*ConversationHeader
	payloadsByID      map[wire.UUID]*ConversationPayload
	messagesByID      map[wire.UUID]*Message

	accessBits map[pairKey]AccessBits

	conversationInterests map[wire.UUID]map[wire.UUID]struct{} // userId -> conv ids
	userInterests         map[wire.UUID]map[wire.UUID]struct{} // userId -> followed user ids

	unseenCounts map[pairKey]int32
	status       map[wire.UUID]*statusEntry

	previewByMessage map[wire.UUID]*MessagePreview

	// userOrder and conversationOrder track insertion order for enumeration stability between
	// mutations, mirroring the spec's "enumeration order unspecified but
	// stable between mutations" contract.
	userOrder         []wire.UUID
	conversationOrder []wire.UUID
}

// MessagePreview is the supplemental Open Graph / Twitter Card enrichment
// attached to a message whose content contains a URL. It is not part of the
// wire protocol's fixed opcode table — it's an internal capability stored by
// internal/preview and read through the View, the same way server.Server.Retrieve
// lazily attaches *Metadata to a retrieved *Message.
type MessagePreview struct {
	Title       string
	Description string
	Image       string
	Site        string
}

// New returns an empty Model.
func New() *Model {
	return &Model{
		usersByID:             make(map[wire.UUID]*User),
		conversationsByID:     make(map[wire.UUID]*ConversationHeader),
		payloadsByID:          make(map[wire.UUID]*ConversationPayload),
		messagesByID:          make(map[wire.UUID]*Message),
		accessBits:            make(map[pairKey]AccessBits),
		conversationInterests: make(map[wire.UUID]map[wire.UUID]struct{}),
		userInterests:         make(map[wire.UUID]map[wire.UUID]struct{}),
		unseenCounts:          make(map[pairKey]int32),
		status:                make(map[wire.UUID]*statusEntry),
		previewByMessage:      make(map[wire.UUID]*MessagePreview),
	}
}
