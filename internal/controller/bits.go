package controller

import (
	"github.com/asim/chatd/internal/model"
	"github.com/asim/chatd/internal/wire"
)

// ToggleCreatorBit sets the CREATOR bit to flag and journals one of
// ADD-CONVO-CREATOR / REMOVE-CONVO-CREATOR. Returns the new bitfield.
func (c *Controller) ToggleCreatorBit(conv, user wire.UUID, flag bool) model.AccessBits {
	bits := c.model.SetAccessBit(conv, user, model.BitCreator, flag)
	if flag {
		c.log.AddConvoCreator(conv, user)
	} else {
		c.log.RemoveConvoCreator(conv, user)
	}
	c.countMutation()
	return bits
}

// ToggleOwnerBit sets the OWNER bit to flag and journals one of
// ADD-CONVO-OWNER / REMOVE-CONVO-OWNER.
func (c *Controller) ToggleOwnerBit(conv, user wire.UUID, flag bool) model.AccessBits {
	bits := c.model.SetAccessBit(conv, user, model.BitOwner, flag)
	if flag {
		c.log.AddConvoOwner(conv, user)
	} else {
		c.log.RemoveConvoOwner(conv, user)
	}
	c.countMutation()
	return bits
}

// ToggleMemberBit sets the MEMBER bit to flag and journals one of
// ADD-CONVO-MEMBER / REMOVE-CONVO-MEMBER.
func (c *Controller) ToggleMemberBit(conv, user wire.UUID, flag bool) model.AccessBits {
	bits := c.model.SetAccessBit(conv, user, model.BitMember, flag)
	if flag {
		c.log.AddConvoMember(conv, user)
	} else {
		c.log.RemoveConvoMember(conv, user)
	}
	c.countMutation()
	return bits
}

// ToggleRemovedBit flips the sticky REMOVED flag and journals
// REMOVE-CONVO-TOGGLE.
func (c *Controller) ToggleRemovedBit(conv, user wire.UUID) model.AccessBits {
	bits := c.model.ToggleAccessBit(conv, user, model.BitRemoved)
	c.log.RemoveConvoToggle(conv, user)
	c.countMutation()
	return bits
}

// --- replay entry points: no journaling, idempotent application ---

func (c *Controller) ReplayAddConvoCreator(conv, user wire.UUID) error {
	c.model.SetAccessBit(conv, user, model.BitCreator, true)
	return nil
}

func (c *Controller) ReplayRemoveConvoCreator(conv, user wire.UUID) error {
	c.model.SetAccessBit(conv, user, model.BitCreator, false)
	return nil
}

func (c *Controller) ReplayAddConvoOwner(conv, user wire.UUID) error {
	c.model.SetAccessBit(conv, user, model.BitOwner, true)
	return nil
}

func (c *Controller) ReplayRemoveConvoOwner(conv, user wire.UUID) error {
	c.model.SetAccessBit(conv, user, model.BitOwner, false)
	return nil
}

func (c *Controller) ReplayAddConvoMember(conv, user wire.UUID) error {
	c.model.SetAccessBit(conv, user, model.BitMember, true)
	return nil
}

func (c *Controller) ReplayRemoveConvoMember(conv, user wire.UUID) error {
	c.model.SetAccessBit(conv, user, model.BitMember, false)
	return nil
}

func (c *Controller) ReplayRemoveConvoToggle(conv, user wire.UUID) error {
	c.model.ToggleAccessBit(conv, user, model.BitRemoved)
	return nil
}
