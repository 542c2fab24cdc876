package model

import "github.com/asim/chatd/internal/wire"

func (m *Model) statusFor(user wire.UUID) *statusEntry {
	s, ok := m.status[user]
	if !ok {
		s = &statusEntry{updatedConversations: make(map[wire.UUID]wire.Time)}
		m.status[user] = s
	}
	return s
}

// LastStatusUpdate returns the stored time, or Time(0) if never set.
func (m *Model) LastStatusUpdate(user wire.UUID) wire.Time {
	s, ok := m.status[user]
	if !ok {
		return wire.Time(0)
	}
	return s.lastStatusUpdate
}

// SetLastStatusUpdate stores t, returning the previous value.
func (m *Model) SetLastStatusUpdate(user wire.UUID, t wire.Time) wire.Time {
	s := m.statusFor(user)
	prev := s.lastStatusUpdate
	s.lastStatusUpdate = t
	return prev
}

// UnseenCount returns the unseen-message count for (user, conversation), 0
// if absent.
func (m *Model) UnseenCount(user, conversation wire.UUID) int32 {
	return m.unseenCounts[pairKey{conversation: conversation, user: user}]
}

// SetUnseenCount replaces the stored count with value (clients supply
// absolute values, not deltas) and returns it.
func (m *Model) SetUnseenCount(user, conversation wire.UUID, value int32) int32 {
	m.unseenCounts[pairKey{conversation: conversation, user: user}] = value
	return value
}

// SetUpdatedConversation records t for conv in user's updatedConversations
// map, returning the resulting map.
func (m *Model) SetUpdatedConversation(user, conv wire.UUID, t wire.Time) map[wire.UUID]wire.Time {
	s := m.statusFor(user)
	s.updatedConversations[conv] = t
	return cloneTimeMap(s.updatedConversations)
}

// UpdatedConversations derives the projection described in the view spec:
// for every conversation in the user's conversation-interest set, and every
// conversation owned by a user in the user's user-interest set, the entry
// maps conversationId to the creation time of the most recent message
// created strictly after lastStatusUpdate(user); conversations with no such
// message are omitted.
func (m *Model) UpdatedConversations(user wire.UUID) map[wire.UUID]wire.Time {
	since := m.LastStatusUpdate(user)

	candidates := make(map[wire.UUID]struct{})
	for conv := range m.conversationInterests[user] {
		candidates[conv] = struct{}{}
	}
	for followed := range m.userInterests[user] {
		for _, c := range m.conversationOrder {
			if h, ok := m.conversationsByID[c]; ok && h.Owner == followed {
				candidates[c] = struct{}{}
			}
		}
	}

	out := make(map[wire.UUID]wire.Time)
	for conv := range candidates {
		var latest wire.Time
		var found bool
		for _, msg := range m.WalkConversation(conv) {
			if msg.Creation.After(since) {
				if !found || msg.Creation.After(latest) {
					latest = msg.Creation
					found = true
				}
			}
		}
		if found {
			out[conv] = latest
		}
	}
	return out
}

func cloneTimeMap(in map[wire.UUID]wire.Time) map[wire.UUID]wire.Time {
	out := make(map[wire.UUID]wire.Time, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
