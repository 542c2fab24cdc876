package journal

// Op names the journal record grammar's leading token. Append-only: never
// remove or renumber an existing op, only add new ones.
type Op string

const (
	OpAddUser                    Op = "ADD-USER"
	OpAddConversation             Op = "ADD-CONVERSATION"
	OpAddMessage                  Op = "ADD-MESSAGE"
	OpAddInterestUser             Op = "ADD-INTEREST-USER"
	OpRemoveInterestUser          Op = "REMOVE-INTEREST-USER"
	OpAddInterestConversation     Op = "ADD-INTEREST-CONVERSATION"
	OpRemoveInterestConversation  Op = "REMOVE-INTEREST-CONVERSATION"
	OpAddConvoCreator             Op = "ADD-CONVO-CREATOR"
	// OpRemoveConvoCreator is a spec-extension record: the grammar in the
	// spec only lists ADD-CONVO-CREATOR (creator is conventionally set
	// once, at conversation creation, and never cleared). toggleCreatorBit
	// nonetheless accepts an explicit on/off flag per the Controller spec,
	// so clearing it needs a record too. Since the journal is private to
	// this server (unlike the wire protocol, no external client parses
	// it), adding one more append-only record kind is safe and keeps
	// replay exact for the (admittedly unusual) case of un-setting CREATOR.
	OpRemoveConvoCreator          Op = "REMOVE-CONVO-CREATOR"
	OpAddConvoOwner               Op = "ADD-CONVO-OWNER"
	OpRemoveConvoOwner            Op = "REMOVE-CONVO-OWNER"
	OpAddConvoMember              Op = "ADD-CONVO-MEMBER"
	OpRemoveConvoMember           Op = "REMOVE-CONVO-MEMBER"
	OpRemoveConvoToggle           Op = "REMOVE-CONVO-TOGGLE"
)
