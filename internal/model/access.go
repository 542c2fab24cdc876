package model

import "github.com/asim/chatd/internal/wire"

// AccessBits returns the bitfield for (conversation, user); 0 if absent.
func (m *Model) AccessBits(conversation, user wire.UUID) AccessBits {
	return m.accessBits[pairKey{conversation: conversation, user: user}]
}

// SetAccessBit sets or clears a single bit, returning the resulting field.
func (m *Model) SetAccessBit(conversation, user wire.UUID, bit AccessBits, on bool) AccessBits {
	k := pairKey{conversation: conversation, user: user}
	next := m.accessBits[k].Set(bit, on)
	m.accessBits[k] = next
	return next
}

// ToggleAccessBit flips a single bit, returning the resulting field.
func (m *Model) ToggleAccessBit(conversation, user wire.UUID, bit AccessBits) AccessBits {
	k := pairKey{conversation: conversation, user: user}
	next := m.accessBits[k] ^ bit
	m.accessBits[k] = next
	return next
}
