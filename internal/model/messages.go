package model

import "github.com/asim/chatd/internal/wire"

// AppendMessage links msg at the tail of its conversation's list, updating
// the previous last message's Next pointer and the payload's First/Last.
// The conversation must already exist. Returns false if msg.ID already
// exists or the conversation is unknown.
func (m *Model) AppendMessage(msg *Message) bool {
	if _, exists := m.messagesByID[msg.ID]; exists {
		return false
	}
	payload, ok := m.payloadsByID[msg.Conversation]
	if !ok {
		return false
	}

	msg.Next = wire.Null
	if payload.Last.IsNull() {
		msg.Prev = wire.Null
		payload.First = msg.ID
	} else {
		prev := m.messagesByID[payload.Last]
		prev.Next = msg.ID
		msg.Prev = payload.Last
	}
	payload.Last = msg.ID

	m.messagesByID[msg.ID] = msg
	return true
}

// FindMessage returns the message and true, or nil and false if unknown.
func (m *Model) FindMessage(id wire.UUID) (*Message, bool) {
	msg, ok := m.messagesByID[id]
	return msg, ok
}

// Messages returns messages for the given ids; missing ids are silently
// omitted.
func (m *Model) Messages(ids []wire.UUID) []*Message {
	out := make([]*Message, 0, len(ids))
	for _, id := range ids {
		if msg, ok := m.messagesByID[id]; ok {
			out = append(out, msg)
		}
	}
	return out
}

// WalkConversation returns every message in a conversation in append order,
// by following Next pointers from First. Used by tests to verify the linked
// list invariant; the live server never needs a bulk conversation dump over
// the wire (clients fetch by id).
func (m *Model) WalkConversation(conversationID wire.UUID) []*Message {
	payload, ok := m.payloadsByID[conversationID]
	if !ok {
		return nil
	}
	var out []*Message
	for id := payload.First; !id.IsNull(); {
		msg, ok := m.messagesByID[id]
		if !ok {
			break
		}
		out = append(out, msg)
		id = msg.Next
	}
	return out
}

// SetPreview records the Open Graph / Twitter Card enrichment for a message.
func (m *Model) SetPreview(id wire.UUID, p *MessagePreview) {
	m.previewByMessage[id] = p
}

// Preview returns the enrichment for a message, if any was fetched.
func (m *Model) Preview(id wire.UUID) (*MessagePreview, bool) {
	p, ok := m.previewByMessage[id]
	return p, ok
}
