package dispatcher

import (
	"net"

	"github.com/asim/chatd/internal/wire"
)

func defaultTable() map[wire.Opcode]handler {
	return map[wire.Opcode]handler{
		wire.NewMessage:                 handleNewMessage,
		wire.NewUser:                    handleNewUser,
		wire.NewConversation:            handleNewConversation,
		wire.GetUsers:                   handleGetUsers,
		wire.GetAllConversations:        handleGetAllConversations,
		wire.GetConversationsByID:       handleGetConversationsByID,
		wire.GetMessagesByID:            handleGetMessagesByID,
		wire.ServerInfo:                 handleServerInfo,
		wire.GetConversationInterests:   handleGetConversationInterests,
		wire.NewConversationInterest:    handleNewConversationInterest,
		wire.RemoveConversationInterest: handleRemoveConversationInterest,
		wire.GetUserInterests:           handleGetUserInterests,
		wire.NewUserInterest:            handleNewUserInterest,
		wire.RemoveUserInterest:         handleRemoveUserInterest,
		wire.NewUpdatedConversation:     handleNewUpdatedConversation,
		wire.GetUpdatedConversations:    handleGetUpdatedConversations,
		wire.UpdateUserLastStatusUpdate: handleUpdateUserLastStatusUpdate,
		wire.GetUserLastStatusUpdate:    handleGetUserLastStatusUpdate,
		wire.GetUserMessageCount:        handleGetUserMessageCount,
		wire.UpdateUserMessageCount:     handleUpdateUserMessageCount,
		wire.ToggleMemberBit:            handleToggleMemberBit,
		wire.ToggleOwnerBit:             handleToggleOwnerBit,
		wire.ToggleCreatorBit:           handleToggleCreatorBit,
		wire.ToggleRemovedBit:           handleToggleRemovedBit,
		wire.GetUserAccessControl:       handleGetUserAccessControl,
	}
}

func writeOpcode(conn net.Conn, op wire.Opcode) error {
	return wire.WriteInt(conn, int32(op))
}

func handleNewMessage(d *Dispatcher, conn net.Conn) error {
	author, err := wire.ReadUUID(conn)
	if err != nil {
		return err
	}
	conv, err := wire.ReadUUID(conn)
	if err != nil {
		return err
	}
	content, err := wire.ReadString(conn)
	if err != nil {
		return err
	}
	msg := d.ctrl.NewMessage(author, conv, content)
	if err := writeOpcode(conn, wire.NewMessage); err != nil {
		return err
	}
	return writeNullableMessage(conn, msg)
}

func handleNewUser(d *Dispatcher, conn net.Conn) error {
	name, err := wire.ReadString(conn)
	if err != nil {
		return err
	}
	u := d.ctrl.NewUser(name)
	if err := writeOpcode(conn, wire.NewUser); err != nil {
		return err
	}
	return writeNullableUser(conn, u)
}

func handleNewConversation(d *Dispatcher, conn net.Conn) error {
	title, err := wire.ReadString(conn)
	if err != nil {
		return err
	}
	owner, err := wire.ReadUUID(conn)
	if err != nil {
		return err
	}
	h := d.ctrl.NewConversation(title, owner)
	if err := writeOpcode(conn, wire.NewConversation); err != nil {
		return err
	}
	return writeNullableConversationHeader(conn, h)
}

func handleGetUsers(d *Dispatcher, conn net.Conn) error {
	if err := writeOpcode(conn, wire.GetUsers); err != nil {
		return err
	}
	return writeUserCollection(conn, d.view.Users())
}

func handleGetAllConversations(d *Dispatcher, conn net.Conn) error {
	if err := writeOpcode(conn, wire.GetAllConversations); err != nil {
		return err
	}
	return writeConversationHeaderCollection(conn, d.view.Conversations())
}

func handleGetConversationsByID(d *Dispatcher, conn net.Conn) error {
	ids, err := readUUIDCollection(conn)
	if err != nil {
		return err
	}
	if err := writeOpcode(conn, wire.GetConversationsByID); err != nil {
		return err
	}
	return writeConversationPayloadCollection(conn, d.view.ConversationPayloads(ids))
}

func handleGetMessagesByID(d *Dispatcher, conn net.Conn) error {
	ids, err := readUUIDCollection(conn)
	if err != nil {
		return err
	}
	if err := writeOpcode(conn, wire.GetMessagesByID); err != nil {
		return err
	}
	return writeMessageCollection(conn, d.view.Messages(ids))
}

func handleServerInfo(d *Dispatcher, conn net.Conn) error {
	if err := writeOpcode(conn, wire.ServerInfo); err != nil {
		return err
	}
	return wire.WriteUUID(conn, d.view.Info().Version)
}

func handleGetConversationInterests(d *Dispatcher, conn net.Conn) error {
	user, err := wire.ReadUUID(conn)
	if err != nil {
		return err
	}
	if err := writeOpcode(conn, wire.GetConversationInterests); err != nil {
		return err
	}
	return writeUUIDCollection(conn, d.view.ConversationInterests(user))
}

func handleNewConversationInterest(d *Dispatcher, conn net.Conn) error {
	user, err := wire.ReadUUID(conn)
	if err != nil {
		return err
	}
	conv, err := wire.ReadUUID(conn)
	if err != nil {
		return err
	}
	set := d.ctrl.NewConversationInterest(user, conv)
	if err := writeOpcode(conn, wire.NewConversationInterest); err != nil {
		return err
	}
	return writeUUIDCollection(conn, set)
}

func handleRemoveConversationInterest(d *Dispatcher, conn net.Conn) error {
	user, err := wire.ReadUUID(conn)
	if err != nil {
		return err
	}
	conv, err := wire.ReadUUID(conn)
	if err != nil {
		return err
	}
	set := d.ctrl.RemoveConversationInterest(user, conv)
	if err := writeOpcode(conn, wire.RemoveConversationInterest); err != nil {
		return err
	}
	return writeUUIDCollection(conn, set)
}

func handleGetUserInterests(d *Dispatcher, conn net.Conn) error {
	user, err := wire.ReadUUID(conn)
	if err != nil {
		return err
	}
	if err := writeOpcode(conn, wire.GetUserInterests); err != nil {
		return err
	}
	return writeUUIDCollection(conn, d.view.UserInterests(user))
}

func handleNewUserInterest(d *Dispatcher, conn net.Conn) error {
	user, err := wire.ReadUUID(conn)
	if err != nil {
		return err
	}
	followed, err := wire.ReadUUID(conn)
	if err != nil {
		return err
	}
	set := d.ctrl.NewUserInterest(user, followed)
	if err := writeOpcode(conn, wire.NewUserInterest); err != nil {
		return err
	}
	return writeUUIDCollection(conn, set)
}

func handleRemoveUserInterest(d *Dispatcher, conn net.Conn) error {
	user, err := wire.ReadUUID(conn)
	if err != nil {
		return err
	}
	followed, err := wire.ReadUUID(conn)
	if err != nil {
		return err
	}
	set := d.ctrl.RemoveUserInterest(user, followed)
	if err := writeOpcode(conn, wire.RemoveUserInterest); err != nil {
		return err
	}
	return writeUUIDCollection(conn, set)
}

func handleNewUpdatedConversation(d *Dispatcher, conn net.Conn) error {
	user, err := wire.ReadUUID(conn)
	if err != nil {
		return err
	}
	conv, err := wire.ReadUUID(conn)
	if err != nil {
		return err
	}
	t, err := wire.ReadTime(conn)
	if err != nil {
		return err
	}
	m := d.ctrl.NewUpdatedConversation(user, conv, t)
	if err := writeOpcode(conn, wire.NewUpdatedConversation); err != nil {
		return err
	}
	return writeUUIDTimeMap(conn, m)
}

func handleGetUpdatedConversations(d *Dispatcher, conn net.Conn) error {
	user, err := wire.ReadUUID(conn)
	if err != nil {
		return err
	}
	if err := writeOpcode(conn, wire.GetUpdatedConversations); err != nil {
		return err
	}
	return writeUUIDTimeMap(conn, d.view.UpdatedConversations(user))
}

func handleUpdateUserLastStatusUpdate(d *Dispatcher, conn net.Conn) error {
	user, err := wire.ReadUUID(conn)
	if err != nil {
		return err
	}
	t, err := wire.ReadTime(conn)
	if err != nil {
		return err
	}
	prev := d.ctrl.UpdateUsersLastStatusUpdate(user, t)
	if err := writeOpcode(conn, wire.UpdateUserLastStatusUpdate); err != nil {
		return err
	}
	return wire.WriteTime(conn, prev)
}

func handleGetUserLastStatusUpdate(d *Dispatcher, conn net.Conn) error {
	user, err := wire.ReadUUID(conn)
	if err != nil {
		return err
	}
	if err := writeOpcode(conn, wire.GetUserLastStatusUpdate); err != nil {
		return err
	}
	return wire.WriteTime(conn, d.view.LastStatusUpdate(user))
}

func handleGetUserMessageCount(d *Dispatcher, conn net.Conn) error {
	user, err := wire.ReadUUID(conn)
	if err != nil {
		return err
	}
	conv, err := wire.ReadUUID(conn)
	if err != nil {
		return err
	}
	if err := writeOpcode(conn, wire.GetUserMessageCount); err != nil {
		return err
	}
	return wire.WriteInt(conn, d.view.UnseenMessagesCount(user, conv))
}

func handleUpdateUserMessageCount(d *Dispatcher, conn net.Conn) error {
	user, err := wire.ReadUUID(conn)
	if err != nil {
		return err
	}
	conv, err := wire.ReadUUID(conn)
	if err != nil {
		return err
	}
	value, err := wire.ReadInt(conn)
	if err != nil {
		return err
	}
	result := d.ctrl.UpdateUsersUnseenMessagesCount(user, conv, value)
	if err := writeOpcode(conn, wire.UpdateUserMessageCount); err != nil {
		return err
	}
	return wire.WriteInt(conn, result)
}

func handleToggleMemberBit(d *Dispatcher, conn net.Conn) error {
	conv, user, flag, err := readConvUserBool(conn)
	if err != nil {
		return err
	}
	bits := d.ctrl.ToggleMemberBit(conv, user, flag)
	if err := writeOpcode(conn, wire.ToggleMemberBit); err != nil {
		return err
	}
	return wire.WriteInt(conn, int32(bits))
}

func handleToggleOwnerBit(d *Dispatcher, conn net.Conn) error {
	conv, user, flag, err := readConvUserBool(conn)
	if err != nil {
		return err
	}
	bits := d.ctrl.ToggleOwnerBit(conv, user, flag)
	if err := writeOpcode(conn, wire.ToggleOwnerBit); err != nil {
		return err
	}
	return wire.WriteInt(conn, int32(bits))
}

func handleToggleCreatorBit(d *Dispatcher, conn net.Conn) error {
	conv, user, flag, err := readConvUserBool(conn)
	if err != nil {
		return err
	}
	bits := d.ctrl.ToggleCreatorBit(conv, user, flag)
	if err := writeOpcode(conn, wire.ToggleCreatorBit); err != nil {
		return err
	}
	return wire.WriteInt(conn, int32(bits))
}

func handleToggleRemovedBit(d *Dispatcher, conn net.Conn) error {
	conv, user, err := readConvUser(conn)
	if err != nil {
		return err
	}
	bits := d.ctrl.ToggleRemovedBit(conv, user)
	if err := writeOpcode(conn, wire.ToggleRemovedBit); err != nil {
		return err
	}
	return wire.WriteInt(conn, int32(bits))
}

func handleGetUserAccessControl(d *Dispatcher, conn net.Conn) error {
	conv, user, err := readConvUser(conn)
	if err != nil {
		return err
	}
	if err := writeOpcode(conn, wire.GetUserAccessControl); err != nil {
		return err
	}
	return wire.WriteInt(conn, int32(d.view.UserAccessControl(conv, user)))
}

func readConvUser(conn net.Conn) (conv, user wire.UUID, err error) {
	if conv, err = wire.ReadUUID(conn); err != nil {
		return
	}
	user, err = wire.ReadUUID(conn)
	return
}

func readConvUserBool(conn net.Conn) (conv, user wire.UUID, flag bool, err error) {
	if conv, user, err = readConvUser(conn); err != nil {
		return
	}
	flag, err = wire.ReadBool(conn)
	return
}
