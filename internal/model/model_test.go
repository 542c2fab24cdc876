package model

import (
	"testing"

	"github.com/asim/chatd/internal/wire"
	"github.com/stretchr/testify/require"
)

func u(g, s uint32) wire.UUID { return wire.UUID{Generator: g, Sequence: s} }

func TestMessageListInvariant(t *testing.T) {
	m := New()
	owner := u(1, 1)
	require.True(t, m.AddUser(&User{ID: owner, Name: "alice"}))
	conv := u(1, 2)
	require.True(t, m.AddConversation(&ConversationHeader{ID: conv, Owner: owner, Title: "general"}))

	var ids []wire.UUID
	for i := uint32(0); i < 5; i++ {
		id := u(1, 3+i)
		ids = append(ids, id)
		require.True(t, m.AppendMessage(&Message{ID: id, Author: owner, Conversation: conv, Content: "hi"}))
	}

	payload, ok := m.PayloadFor(conv)
	require.True(t, ok)
	require.Equal(t, ids[0], payload.First)
	require.Equal(t, ids[len(ids)-1], payload.Last)

	walked := m.WalkConversation(conv)
	require.Len(t, walked, len(ids))
	for i, msg := range walked {
		require.Equal(t, ids[i], msg.ID)
	}
	require.True(t, walked[len(walked)-1].Next.IsNull())
	require.True(t, walked[0].Prev.IsNull())
}

func TestInterestIdempotence(t *testing.T) {
	m := New()
	user := u(1, 1)
	followed := u(1, 2)

	first := m.AddUserInterest(user, followed)
	second := m.AddUserInterest(user, followed)
	require.ElementsMatch(t, first, second)
	require.Len(t, second, 1)

	removedOnce := m.RemoveUserInterest(user, followed)
	require.Empty(t, removedOnce)
	removedTwice := m.RemoveUserInterest(user, followed)
	require.Empty(t, removedTwice)
}

func TestAccessBitsAfterConversationCreation(t *testing.T) {
	m := New()
	owner := u(1, 1)
	conv := u(1, 2)
	require.True(t, m.AddUser(&User{ID: owner}))
	require.True(t, m.AddConversation(&ConversationHeader{ID: conv, Owner: owner}))

	bits := m.SetAccessBit(conv, owner, BitCreator, true)
	bits = m.SetAccessBit(conv, owner, BitOwner, true)
	bits = m.SetAccessBit(conv, owner, BitMember, true)

	require.True(t, bits.Has(BitCreator))
	require.True(t, bits.Has(BitOwner))
	require.True(t, bits.Has(BitMember))
	require.False(t, bits.Has(BitRemoved))
}

func TestToggleRemovedBitTwiceIsIdentity(t *testing.T) {
	m := New()
	conv, user := u(1, 1), u(1, 2)
	before := m.AccessBits(conv, user)
	m.ToggleAccessBit(conv, user, BitRemoved)
	after := m.ToggleAccessBit(conv, user, BitRemoved)
	require.Equal(t, before, after)
}

func TestUpdatedConversationsProjection(t *testing.T) {
	m := New()
	alice := u(1, 1)
	conv := u(1, 2)
	require.True(t, m.AddUser(&User{ID: alice}))
	require.True(t, m.AddConversation(&ConversationHeader{ID: conv, Owner: alice}))
	m.AddConversationInterest(alice, conv)
	m.SetLastStatusUpdate(alice, wire.Time(100))

	require.True(t, m.AppendMessage(&Message{ID: u(1, 3), Author: alice, Conversation: conv, Creation: wire.Time(50)}))
	require.True(t, m.AppendMessage(&Message{ID: u(1, 4), Author: alice, Conversation: conv, Creation: wire.Time(150)}))
	require.True(t, m.AppendMessage(&Message{ID: u(1, 5), Author: alice, Conversation: conv, Creation: wire.Time(200)}))

	got := m.UpdatedConversations(alice)
	require.Equal(t, map[wire.UUID]wire.Time{conv: wire.Time(200)}, got)
}
