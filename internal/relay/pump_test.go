package relay

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asim/chatd/internal/controller"
	"github.com/asim/chatd/internal/journal"
	"github.com/asim/chatd/internal/model"
	"github.com/asim/chatd/internal/timeline"
	"github.com/asim/chatd/internal/uuidgen"
	"github.com/asim/chatd/internal/wire"
)

type fakeClient struct {
	bundles []Bundle
	writes  []Component
	reads   int
}

func (f *fakeClient) Read(ctx context.Context, serverID, secret string, since wire.UUID, max int) ([]Bundle, error) {
	f.reads++
	var out []Bundle
	for _, b := range f.bundles {
		if b.ID.Sequence > since.Sequence {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeClient) Write(ctx context.Context, serverID, secret string, user, conversation, message Component) error {
	f.writes = append(f.writes, message)
	return nil
}

func newTestController(t *testing.T) *controller.Controller {
	t.Helper()
	dir := t.TempDir()
	w, err := journal.Open(dir + "/transaction_log.txt")
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })
	return controller.New(model.New(), uuidgen.New(9), w)
}

func TestApplyBundleMaterializesUnknownComponents(t *testing.T) {
	ctrl := newTestController(t)
	fc := &fakeClient{bundles: []Bundle{
		{
			ID:           wire.UUID{Generator: 2, Sequence: 1},
			User:         Component{ID: wire.UUID{Generator: 2, Sequence: 10}, Text: "bob", Time: 100},
			Conversation: Component{ID: wire.UUID{Generator: 2, Sequence: 11}, Text: "remote-room", Time: 100},
			Message:      Component{ID: wire.UUID{Generator: 2, Sequence: 12}, Text: "hello from afar", Time: 200},
		},
	}}

	tl := timeline.New()
	go tl.Run()
	defer tl.Stop()

	p := New(fc, ctrl, tl, "local", "secret")
	p.applyBundle(fc.bundles[0])

	u, ok := ctrl.Model().FindUser(wire.UUID{Generator: 2, Sequence: 10})
	require.True(t, ok)
	assert.Equal(t, "bob", u.Name)

	c, ok := ctrl.Model().FindConversation(wire.UUID{Generator: 2, Sequence: 11})
	require.True(t, ok)
	assert.Equal(t, "remote-room", c.Title)
	assert.Equal(t, u.ID, c.Owner)

	msg, ok := ctrl.Model().FindMessage(wire.UUID{Generator: 2, Sequence: 12})
	require.True(t, ok)
	assert.Equal(t, "hello from afar", msg.Content)
	assert.Equal(t, u.ID, msg.Author)
	assert.Equal(t, c.ID, msg.Conversation)
}

func TestApplyBundleTwiceIsNoOp(t *testing.T) {
	ctrl := newTestController(t)
	b := Bundle{
		ID:           wire.UUID{Generator: 2, Sequence: 1},
		User:         Component{ID: wire.UUID{Generator: 2, Sequence: 10}, Text: "bob", Time: 100},
		Conversation: Component{ID: wire.UUID{Generator: 2, Sequence: 11}, Text: "remote-room", Time: 100},
		Message:      Component{ID: wire.UUID{Generator: 2, Sequence: 12}, Text: "hello", Time: 200},
	}

	tl := timeline.New()
	go tl.Run()
	defer tl.Stop()

	p := New(&fakeClient{}, ctrl, tl, "local", "secret")
	p.applyBundle(b)
	p.applyBundle(b)

	assert.Len(t, ctrl.Model().Users(), 1)
	assert.Len(t, ctrl.Model().Conversations(), 1)
}

func TestPushSendsLocallyCreatedMessage(t *testing.T) {
	ctrl := newTestController(t)
	u := ctrl.NewUser("alice")
	conv := ctrl.NewConversation("general", u.ID)

	fc := &fakeClient{}
	tl := timeline.New()
	go tl.Run()
	defer tl.Stop()

	p := New(fc, ctrl, tl, "local", "secret")
	msg := ctrl.NewMessage(u.ID, conv.ID, "hi")
	p.push(msg)

	require.Len(t, fc.writes, 1)
	assert.Equal(t, "hi", fc.writes[0].Text)
}
