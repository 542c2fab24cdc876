package controller

import (
	"github.com/asim/chatd/internal/model"
	"github.com/asim/chatd/internal/wire"
)

// NewUser assigns a fresh id and the current time, stores the user, and
// journals ADD-USER.
func (c *Controller) NewUser(name string) *model.User {
	u := &model.User{ID: c.gen.Next(), Name: name, Creation: c.clock.Now()}
	c.model.AddUser(u)
	c.log.AddUser(u.ID, u.Name, u.Creation)
	c.countMutation()
	return u
}

// ReplayAddUser is the replay entry point: it accepts an externally
// supplied id/time and never journals (the line being replayed already is
// the journal record).
func (c *Controller) ReplayAddUser(id wire.UUID, name string, t wire.Time) error {
	c.gen.Observe(id)
	if !c.model.AddUser(&model.User{ID: id, Name: name, Creation: t}) {
		return ErrDuplicate
	}
	return nil
}
