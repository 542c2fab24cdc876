package relay

import (
	"context"
	"time"

	"github.com/asim/chatd/internal/controller"
	"github.com/asim/chatd/internal/logging"
	"github.com/asim/chatd/internal/model"
	"github.com/asim/chatd/internal/timeline"
	"github.com/asim/chatd/internal/wire"
)

const (
	pullInterval = 5000 * time.Millisecond
	pullMax      = 32
)

// Pump periodically pulls bundles from a Client and replays any components
// unknown to the Model, and pushes every locally created message out.
type Pump struct {
	client   Client
	ctrl     *controller.Controller
	tl       *timeline.Timeline
	log      *logging.Logger
	serverID string
	secret   string

	lastSeen wire.UUID
}

// New wires a Pump. It does not start until Start is called.
func New(client Client, ctrl *controller.Controller, tl *timeline.Timeline, serverID, secret string) *Pump {
	return &Pump{
		client:   client,
		ctrl:     ctrl,
		tl:       tl,
		log:      logging.Default("relay"),
		serverID: serverID,
		secret:   secret,
	}
}

// Start schedules the first pull task on the Timeline and registers the
// push hook so every locally created message is queued for relay.
func (p *Pump) Start() {
	p.ctrl.OnNewMessage(func(msg *model.Message) {
		p.tl.ScheduleNow(func() { p.push(msg) })
	})
	p.tl.ScheduleNow(p.pull)
}

// pull fetches up to pullMax bundles since lastSeen and reschedules itself
// regardless of outcome — failures are logged, never fatal.
func (p *Pump) pull() {
	defer p.tl.ScheduleIn(pullInterval, p.pull)

	bundles, err := p.client.Read(context.Background(), p.serverID, p.secret, p.lastSeen, pullMax)
	if err != nil {
		p.log.Printf("pull failed: %v", err)
		return
	}

	for _, b := range bundles {
		p.applyBundle(b)
		p.lastSeen = b.ID
	}
}

// applyBundle materializes any component of b unknown to the Model. The
// acting user (b.User) is also used as the conversation's owner and the
// message's author — a Bundle describes "this user posted this message
// into this conversation", not three independent entities. Reading the
// message component's id/text/time from b.Message (not b.User, as a
// tempting copy-paste of the user-materialization step would) is the fix
// for the documented "applies the same component three times" defect.
func (p *Pump) applyBundle(b Bundle) {
	if _, ok := p.ctrl.Model().FindUser(b.User.ID); !ok {
		if err := p.ctrl.ReplayAddUser(b.User.ID, b.User.Text, b.User.Time); err != nil {
			p.log.Printf("apply user %s: %v", b.User.ID, err)
		}
	}

	if _, ok := p.ctrl.Model().FindConversation(b.Conversation.ID); !ok {
		if err := p.ctrl.ReplayAddConversation(b.Conversation.ID, b.User.ID, b.Conversation.Text, b.Conversation.Time); err != nil {
			p.log.Printf("apply conversation %s: %v", b.Conversation.ID, err)
		}
	}

	if _, ok := p.ctrl.Model().FindMessage(b.Message.ID); !ok {
		if err := p.ctrl.ReplayAddMessage(b.Message.ID, b.User.ID, b.Conversation.ID, b.Message.Text, b.Message.Time); err != nil {
			p.log.Printf("apply message %s: %v", b.Message.ID, err)
		}
	}
}

// push sends one locally created message to the relay. Failure is logged;
// the message stays in the Model regardless — relay delivery is best-effort.
func (p *Pump) push(msg *model.Message) {
	user, _ := p.ctrl.Model().FindUser(msg.Author)
	conv, _ := p.ctrl.Model().FindConversation(msg.Conversation)
	if user == nil || conv == nil {
		return
	}

	err := p.client.Write(context.Background(), p.serverID, p.secret,
		Component{ID: user.ID, Text: user.Name, Time: user.Creation},
		Component{ID: conv.ID, Text: conv.Title, Time: conv.Creation},
		Component{ID: msg.ID, Text: msg.Content, Time: msg.Creation},
	)
	if err != nil {
		p.log.Printf("push message %s: %v", msg.ID, err)
	}
}
