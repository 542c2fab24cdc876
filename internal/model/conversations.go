package model

import "github.com/asim/chatd/internal/wire"

// AddConversation inserts a new conversation header plus an empty payload.
// Returns false if id already exists.
func (m *Model) AddConversation(h *ConversationHeader) bool {
	if _, exists := m.conversationsByID[h.ID]; exists {
		return false
	}
	m.conversationsByID[h.ID] = h
	m.payloadsByID[h.ID] = &ConversationPayload{ID: h.ID}
	m.conversationOrder = append(m.conversationOrder, h.ID)
	return true
}

// FindConversation returns the header and true, or nil and false if unknown.
func (m *Model) FindConversation(id wire.UUID) (*ConversationHeader, bool) {
	c, ok := m.conversationsByID[id]
	return c, ok
}

// Conversations returns all conversation headers in stable insertion order.
func (m *Model) Conversations() []*ConversationHeader {
	out := make([]*ConversationHeader, 0, len(m.conversationOrder))
	for _, id := range m.conversationOrder {
		out = append(out, m.conversationsByID[id])
	}
	return out
}

// ConversationPayloads returns payloads for the given ids; missing ids are
// silently omitted.
func (m *Model) ConversationPayloads(ids []wire.UUID) []*ConversationPayload {
	out := make([]*ConversationPayload, 0, len(ids))
	for _, id := range ids {
		if p, ok := m.payloadsByID[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// PayloadFor returns the mutable payload for a conversation id.
func (m *Model) PayloadFor(id wire.UUID) (*ConversationPayload, bool) {
	p, ok := m.payloadsByID[id]
	return p, ok
}
