package controller

import "github.com/asim/chatd/internal/wire"

// UpdateUsersLastStatusUpdate records when user last checked their status.
// Not journaled: a full journal replay leaves it at Time(0) until a client
// sets it again (a checkpoint snapshot carries the value it held when saved).
// It only gates which conversations UpdatedConversations reports as fresh.
func (c *Controller) UpdateUsersLastStatusUpdate(user wire.UUID, t wire.Time) wire.Time {
	return c.model.SetLastStatusUpdate(user, t)
}

// UpdateUsersUnseenMessagesCount replaces (not increments) the unseen count
// for (user, conversation). Not journaled, for the same reason as
// UpdateUsersLastStatusUpdate.
func (c *Controller) UpdateUsersUnseenMessagesCount(user, conversation wire.UUID, value int32) int32 {
	return c.model.SetUnseenCount(user, conversation, value)
}

// NewUpdatedConversation marks conversation as updated for user at t and
// returns the full updated-conversations projection. Not journaled.
func (c *Controller) NewUpdatedConversation(user, conversation wire.UUID, t wire.Time) map[wire.UUID]wire.Time {
	return c.model.SetUpdatedConversation(user, conversation, t)
}
