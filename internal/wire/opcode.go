package wire

// Opcode identifies a request/response pair on the wire. Values are fixed
// and shared with clients — never renumber an existing opcode.
type Opcode int32

const (
	NoMessage Opcode = iota // reserved: written when an opcode is unrecognized

	NewMessage
	NewUser
	NewConversation
	GetUsers
	GetAllConversations
	GetConversationsByID
	GetMessagesByID
	ServerInfo
	GetConversationInterests
	NewConversationInterest
	RemoveConversationInterest
	GetUserInterests
	NewUserInterest
	RemoveUserInterest
	NewUpdatedConversation
	GetUpdatedConversations
	UpdateUserLastStatusUpdate
	GetUserLastStatusUpdate
	GetUserMessageCount
	UpdateUserMessageCount
	ToggleMemberBit
	ToggleOwnerBit
	ToggleCreatorBit
	ToggleRemovedBit
	GetUserAccessControl
)

// There are no separate response opcodes: a response is the request's own
// opcode value followed by the body, per the table in the protocol spec
// (responses don't carry a distinct number other than NoMessage for the
// unknown-opcode case).
