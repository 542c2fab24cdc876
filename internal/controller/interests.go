package controller

import "github.com/asim/chatd/internal/wire"

func (c *Controller) NewUserInterest(user, followed wire.UUID) []wire.UUID {
	set := c.model.AddUserInterest(user, followed)
	c.log.AddInterestUser(user, followed)
	c.countMutation()
	return set
}

func (c *Controller) RemoveUserInterest(user, followed wire.UUID) []wire.UUID {
	set := c.model.RemoveUserInterest(user, followed)
	c.log.RemoveInterestUser(user, followed)
	c.countMutation()
	return set
}

func (c *Controller) NewConversationInterest(user, conv wire.UUID) []wire.UUID {
	set := c.model.AddConversationInterest(user, conv)
	c.log.AddInterestConversation(user, conv)
	c.countMutation()
	return set
}

func (c *Controller) RemoveConversationInterest(user, conv wire.UUID) []wire.UUID {
	set := c.model.RemoveConversationInterest(user, conv)
	c.log.RemoveInterestConversation(user, conv)
	c.countMutation()
	return set
}

func (c *Controller) ReplayAddInterestUser(user, followed wire.UUID) error {
	c.model.AddUserInterest(user, followed)
	return nil
}

func (c *Controller) ReplayRemoveInterestUser(user, followed wire.UUID) error {
	c.model.RemoveUserInterest(user, followed)
	return nil
}

func (c *Controller) ReplayAddInterestConversation(user, conv wire.UUID) error {
	c.model.AddConversationInterest(user, conv)
	return nil
}

func (c *Controller) ReplayRemoveInterestConversation(user, conv wire.UUID) error {
	c.model.RemoveConversationInterest(user, conv)
	return nil
}
