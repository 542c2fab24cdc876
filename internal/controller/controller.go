// Package controller implements every state mutation over a model.Model.
// Every live (non-replay) mutation of users, conversations, messages,
// interests and access bits appends its journal record before returning
// (NewConversation appends four: ADD-CONVERSATION plus one per access bit it
// sets); the status operations are not journaled. Every mutation is only ever called from the
// Timeline worker goroutine, so none of it takes a lock.
package controller

import (
	"errors"
	"time"

	"github.com/asim/chatd/internal/journal"
	"github.com/asim/chatd/internal/model"
	"github.com/asim/chatd/internal/uuidgen"
	"github.com/asim/chatd/internal/wire"
)

// ErrDuplicate is returned by replay entry points when the supplied id
// already exists; the live API never generates it.
var ErrDuplicate = errors.New("controller: duplicate id")

// ErrUnknownEntity is returned when a create operation references an
// unknown user or conversation.
var ErrUnknownEntity = errors.New("controller: unknown entity")

// Clock abstracts time.Now so tests can supply deterministic instants; the
// live server uses realClock.
type Clock interface {
	Now() wire.Time
}

type realClock struct{}

func (realClock) Now() wire.Time { return wire.Time(time.Now().UnixMilli()) }

// checkpointInterval is how many live mutations pass between automatic
// checkpoint saves, trading restart speed against the cost of serializing
// the whole Model.
const checkpointInterval = 500

// Controller owns the model, the UUID generator, and the journal writer.
type Controller struct {
	model *model.Model
	gen   *uuidgen.Gen
	log   *journal.Writer
	clock Clock

	mutationCount int
	messageHooks  []MessageHook

	checkpoint *journal.Checkpoint
}

// New wires a Controller around an existing model, id generator and
// journal writer. The model is typically empty or freshly replayed.
func New(m *model.Model, gen *uuidgen.Gen, log *journal.Writer) *Controller {
	return &Controller{model: m, gen: gen, log: log, clock: realClock{}}
}

// WithCheckpoint enables periodic snapshotting to cp: every
// checkpointInterval live mutations, the current Model is serialized and
// saved alongside the journal's flushed byte offset and the generator's
// sequence, so a restart can import the snapshot and replay only the
// journal tail instead of tokenizing the whole file.
func (c *Controller) WithCheckpoint(cp *journal.Checkpoint) *Controller {
	c.checkpoint = cp
	return c
}

// WithClock overrides the clock, for tests.
func (c *Controller) WithClock(clock Clock) *Controller {
	c.clock = clock
	return c
}

// Model exposes the underlying model for wiring a view.View.
func (c *Controller) Model() *model.Model { return c.model }

// MutationCount returns how many live mutations have been applied since
// startup, used to pace checkpointing.
func (c *Controller) MutationCount() int { return c.mutationCount }

func (c *Controller) countMutation() {
	c.mutationCount++
	if c.checkpoint == nil || c.mutationCount%checkpointInterval != 0 {
		return
	}
	snap, err := model.MarshalSnapshot(c.model.Export())
	if err != nil {
		return
	}
	c.checkpoint.Save(c.log.Offset(), c.gen.Sequence(), snap)
}
