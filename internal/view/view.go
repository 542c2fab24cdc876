// Package view exposes read-only projections over a model.Model. Every
// method here is a pure read; none mutate state. Views run on the same
// Timeline worker as mutations (see internal/timeline), so a caller always
// observes a consistent snapshot — no separate locking is needed.
package view

import (
	"github.com/asim/chatd/internal/model"
	"github.com/asim/chatd/internal/wire"
)

// Info is the fixed server-build identity returned by getInfo().
type Info struct {
	Version wire.UUID
}

// View wraps a Model with the read-only operations described in the
// protocol.
type View struct {
	m       *model.Model
	version wire.UUID
}

// New wraps m. version is the server's fixed build identity.
func New(m *model.Model, version wire.UUID) *View {
	return &View{m: m, version: version}
}

func (v *View) Users() []*model.User                    { return v.m.Users() }
func (v *View) Conversations() []*model.ConversationHeader { return v.m.Conversations() }

func (v *View) ConversationPayloads(ids []wire.UUID) []*model.ConversationPayload {
	return v.m.ConversationPayloads(ids)
}

func (v *View) Messages(ids []wire.UUID) []*model.Message {
	return v.m.Messages(ids)
}

func (v *View) FindUser(id wire.UUID) (*model.User, bool) {
	return v.m.FindUser(id)
}

func (v *View) FindConversation(id wire.UUID) (*model.ConversationHeader, bool) {
	return v.m.FindConversation(id)
}

func (v *View) FindMessage(id wire.UUID) (*model.Message, bool) {
	return v.m.FindMessage(id)
}

func (v *View) ConversationInterests(user wire.UUID) []wire.UUID {
	return v.m.ConversationInterests(user)
}

func (v *View) UserInterests(user wire.UUID) []wire.UUID {
	return v.m.UserInterests(user)
}

func (v *View) LastStatusUpdate(user wire.UUID) wire.Time {
	return v.m.LastStatusUpdate(user)
}

func (v *View) UnseenMessagesCount(user, conversation wire.UUID) int32 {
	return v.m.UnseenCount(user, conversation)
}

func (v *View) UpdatedConversations(user wire.UUID) map[wire.UUID]wire.Time {
	return v.m.UpdatedConversations(user)
}

func (v *View) UserAccessControl(conversation, user wire.UUID) model.AccessBits {
	return v.m.AccessBits(conversation, user)
}

func (v *View) MessagePreview(id wire.UUID) (*model.MessagePreview, bool) {
	return v.m.Preview(id)
}

func (v *View) Info() Info {
	return Info{Version: v.version}
}
