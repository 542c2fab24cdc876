package model

import (
	"encoding/json"

	"github.com/asim/chatd/internal/wire"
)

// Snapshot is a JSON-serializable dump of the entire Model, used by
// internal/journal's checkpoint store to skip re-tokenizing a fully-applied
// prefix of the text journal on restart. The text journal remains the sole
// source of truth; a Snapshot is purely a cached derivation of it.
type Snapshot struct {
	Users              []*User
	Conversations      []*ConversationHeader
	Payloads           []*ConversationPayload
	Messages           []*Message
	AccessBits         []AccessBitsEntry
	ConversationInterests []InterestEntry
	UserInterests      []InterestEntry
	UnseenCounts       []UnseenEntry
	Status             []StatusEntry
}

type AccessBitsEntry struct {
	Conversation wire.UUID
	User         wire.UUID
	Bits         AccessBits
}

type InterestEntry struct {
	User wire.UUID
	ID   wire.UUID
}

type UnseenEntry struct {
	Conversation wire.UUID
	User         wire.UUID
	Count        int32
}

type StatusEntry struct {
	User                 wire.UUID
	LastStatusUpdate     wire.Time
	UpdatedConversations []UpdatedConversationEntry
}

type UpdatedConversationEntry struct {
	Conversation wire.UUID
	Time         wire.Time
}

// MarshalSnapshot serializes s for storage in the checkpoint database,
// following the same encoding/json approach data/store.go uses for its
// persisted files.
func MarshalSnapshot(s *Snapshot) ([]byte, error) {
	return json.Marshal(s)
}

// UnmarshalSnapshot is the inverse of MarshalSnapshot.
func UnmarshalSnapshot(b []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Export captures the full Model state.
func (m *Model) Export() *Snapshot {
	s := &Snapshot{
		Users:         m.Users(),
		Conversations: m.Conversations(),
	}
	for _, c := range m.conversationOrder {
		s.Payloads = append(s.Payloads, m.payloadsByID[c])
	}
	for _, c := range m.conversationOrder {
		s.Messages = append(s.Messages, m.WalkConversation(c)...)
	}
	for k, bits := range m.accessBits {
		s.AccessBits = append(s.AccessBits, AccessBitsEntry{Conversation: k.conversation, User: k.user, Bits: bits})
	}
	for user, set := range m.conversationInterests {
		for id := range set {
			s.ConversationInterests = append(s.ConversationInterests, InterestEntry{User: user, ID: id})
		}
	}
	for user, set := range m.userInterests {
		for id := range set {
			s.UserInterests = append(s.UserInterests, InterestEntry{User: user, ID: id})
		}
	}
	for k, count := range m.unseenCounts {
		s.UnseenCounts = append(s.UnseenCounts, UnseenEntry{Conversation: k.conversation, User: k.user, Count: count})
	}
	for user, st := range m.status {
		entry := StatusEntry{User: user, LastStatusUpdate: st.lastStatusUpdate}
		for conv, t := range st.updatedConversations {
			entry.UpdatedConversations = append(entry.UpdatedConversations, UpdatedConversationEntry{Conversation: conv, Time: t})
		}
		s.Status = append(s.Status, entry)
	}
	return s
}

// Import builds a new Model (via New()) holding a Snapshot's contents; it
// never merges into an existing Model.
func Import(s *Snapshot) *Model {
	m := New()
	for _, u := range s.Users {
		m.AddUser(u)
	}
	for _, c := range s.Conversations {
		m.AddConversation(c)
	}
	for _, p := range s.Payloads {
		if existing, ok := m.payloadsByID[p.ID]; ok {
			*existing = *p
		}
	}
	for _, msg := range s.Messages {
		cp := *msg
		m.messagesByID[cp.ID] = &cp
	}
	for _, e := range s.AccessBits {
		m.accessBits[pairKey{conversation: e.Conversation, user: e.User}] = e.Bits
	}
	for _, e := range s.ConversationInterests {
		m.AddConversationInterest(e.User, e.ID)
	}
	for _, e := range s.UserInterests {
		m.AddUserInterest(e.User, e.ID)
	}
	for _, e := range s.UnseenCounts {
		m.SetUnseenCount(e.User, e.Conversation, e.Count)
	}
	for _, e := range s.Status {
		m.SetLastStatusUpdate(e.User, e.LastStatusUpdate)
		for _, uc := range e.UpdatedConversations {
			m.SetUpdatedConversation(e.User, uc.Conversation, uc.Time)
		}
	}
	return m
}
