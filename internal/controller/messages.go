package controller

import (
	"github.com/asim/chatd/internal/model"
	"github.com/asim/chatd/internal/wire"
)

// MessageHook is called after a live (non-replay) message is stored,
// letting callers schedule best-effort follow-up work (e.g. the preview
// fetch in internal/preview) without the Controller importing a transport
// package itself.
type MessageHook func(msg *model.Message)

// OnNewMessage registers hook to run after every live NewMessage call.
// Replay never invokes hooks — historical messages don't need fresh
// network side effects re-run on every restart.
func (c *Controller) OnNewMessage(hook MessageHook) {
	c.messageHooks = append(c.messageHooks, hook)
}

// NewMessage assigns a fresh id and the current time, appends it to the
// conversation's linked list, journals ADD-MESSAGE, and returns nil if
// author or conversation is unknown.
func (c *Controller) NewMessage(author, conversation wire.UUID, content string) *model.Message {
	if _, ok := c.model.FindUser(author); !ok {
		return nil
	}
	if _, ok := c.model.FindConversation(conversation); !ok {
		return nil
	}
	msg := &model.Message{ID: c.gen.Next(), Author: author, Conversation: conversation, Content: content, Creation: c.clock.Now()}
	if !c.model.AppendMessage(msg) {
		return nil
	}
	c.log.AddMessage(msg.ID, msg.Author, msg.Conversation, msg.Content, msg.Creation)
	c.countMutation()

	for _, hook := range c.messageHooks {
		hook(msg)
	}
	return msg
}

// ReplayAddMessage is the replay entry point: no journaling, no hooks.
func (c *Controller) ReplayAddMessage(id, author, conversation wire.UUID, content string, t wire.Time) error {
	c.gen.Observe(id)
	msg := &model.Message{ID: id, Author: author, Conversation: conversation, Content: content, Creation: t}
	if !c.model.AppendMessage(msg) {
		return ErrDuplicate
	}
	return nil
}
