package controller

import (
	"github.com/asim/chatd/internal/model"
	"github.com/asim/chatd/internal/wire"
)

// NewConversation assigns a fresh id and the current time, stores an empty
// conversation, journals ADD-CONVERSATION, then sets CREATOR, OWNER and
// MEMBER on (conversation, owner) — each as its own journaled toggle.
// Returns nil if owner is unknown.
func (c *Controller) NewConversation(title string, owner wire.UUID) *model.ConversationHeader {
	if _, ok := c.model.FindUser(owner); !ok {
		return nil
	}
	h := &model.ConversationHeader{ID: c.gen.Next(), Owner: owner, Title: title, Creation: c.clock.Now()}
	c.model.AddConversation(h)
	c.log.AddConversation(h.ID, h.Owner, h.Title, h.Creation)
	c.countMutation()

	c.ToggleCreatorBit(h.ID, owner, true)
	c.ToggleOwnerBit(h.ID, owner, true)
	c.ToggleMemberBit(h.ID, owner, true)

	return h
}

// ReplayAddConversation is the replay entry point: no journaling, no
// implicit access-bit side effects (those arrive as their own ADD-CONVO-*
// records in the log).
func (c *Controller) ReplayAddConversation(id, owner wire.UUID, title string, t wire.Time) error {
	c.gen.Observe(id)
	if !c.model.AddConversation(&model.ConversationHeader{ID: id, Owner: owner, Title: title, Creation: t}) {
		return ErrDuplicate
	}
	return nil
}
