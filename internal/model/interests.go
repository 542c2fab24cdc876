package model

import "github.com/asim/chatd/internal/wire"

// AddConversationInterest adds conv to user's conversation-interest set.
// Idempotent: adding an already-present id is a no-op. Returns the full
// current set.
func (m *Model) AddConversationInterest(user, conv wire.UUID) []wire.UUID {
	set, ok := m.conversationInterests[user]
	if !ok {
		set = make(map[wire.UUID]struct{})
		m.conversationInterests[user] = set
	}
	set[conv] = struct{}{}
	return setToSlice(set)
}

// RemoveConversationInterest removes conv from user's set. Idempotent.
func (m *Model) RemoveConversationInterest(user, conv wire.UUID) []wire.UUID {
	set := m.conversationInterests[user]
	delete(set, conv)
	return setToSlice(set)
}

// ConversationInterests returns the current set (empty if user unknown).
func (m *Model) ConversationInterests(user wire.UUID) []wire.UUID {
	return setToSlice(m.conversationInterests[user])
}

// AddUserInterest adds followed to user's user-interest set. Idempotent.
func (m *Model) AddUserInterest(user, followed wire.UUID) []wire.UUID {
	set, ok := m.userInterests[user]
	if !ok {
		set = make(map[wire.UUID]struct{})
		m.userInterests[user] = set
	}
	set[followed] = struct{}{}
	return setToSlice(set)
}

// RemoveUserInterest removes followed from user's set. Idempotent.
func (m *Model) RemoveUserInterest(user, followed wire.UUID) []wire.UUID {
	set := m.userInterests[user]
	delete(set, followed)
	return setToSlice(set)
}

// UserInterests returns the current set (empty if user unknown).
func (m *Model) UserInterests(user wire.UUID) []wire.UUID {
	return setToSlice(m.userInterests[user])
}

func setToSlice(set map[wire.UUID]struct{}) []wire.UUID {
	out := make([]wire.UUID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}
