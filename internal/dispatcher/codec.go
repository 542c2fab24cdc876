package dispatcher

import (
	"io"

	"github.com/asim/chatd/internal/model"
	"github.com/asim/chatd/internal/wire"
)

// writeUser/readUser and friends put the fixed fields of each entity type on
// the wire in declaration order; NULLABLE(x) wraps these with a presence
// BOOLEAN per wire.WriteNullableUUID's pattern.

func writeUser(w io.Writer, u *model.User) error {
	if err := wire.WriteUUID(w, u.ID); err != nil {
		return err
	}
	if err := wire.WriteString(w, u.Name); err != nil {
		return err
	}
	return wire.WriteTime(w, u.Creation)
}

func writeNullableUser(w io.Writer, u *model.User) error {
	if err := wire.WriteBool(w, u != nil); err != nil {
		return err
	}
	if u == nil {
		return nil
	}
	return writeUser(w, u)
}

func writeConversationHeader(w io.Writer, h *model.ConversationHeader) error {
	if err := wire.WriteUUID(w, h.ID); err != nil {
		return err
	}
	if err := wire.WriteUUID(w, h.Owner); err != nil {
		return err
	}
	if err := wire.WriteString(w, h.Title); err != nil {
		return err
	}
	return wire.WriteTime(w, h.Creation)
}

func writeNullableConversationHeader(w io.Writer, h *model.ConversationHeader) error {
	if err := wire.WriteBool(w, h != nil); err != nil {
		return err
	}
	if h == nil {
		return nil
	}
	return writeConversationHeader(w, h)
}

func writeConversationPayload(w io.Writer, p *model.ConversationPayload) error {
	if err := wire.WriteUUID(w, p.ID); err != nil {
		return err
	}
	if err := wire.WriteUUID(w, p.First); err != nil {
		return err
	}
	return wire.WriteUUID(w, p.Last)
}

func writeMessage(w io.Writer, m *model.Message) error {
	if err := wire.WriteUUID(w, m.ID); err != nil {
		return err
	}
	if err := wire.WriteUUID(w, m.Author); err != nil {
		return err
	}
	if err := wire.WriteUUID(w, m.Conversation); err != nil {
		return err
	}
	if err := wire.WriteString(w, m.Content); err != nil {
		return err
	}
	if err := wire.WriteTime(w, m.Creation); err != nil {
		return err
	}
	if err := wire.WriteUUID(w, m.Prev); err != nil {
		return err
	}
	return wire.WriteUUID(w, m.Next)
}

func writeNullableMessage(w io.Writer, m *model.Message) error {
	if err := wire.WriteBool(w, m != nil); err != nil {
		return err
	}
	if m == nil {
		return nil
	}
	return writeMessage(w, m)
}

func readUUIDCollection(r io.Reader) ([]wire.UUID, error) {
	return wire.ReadCollection(r, wire.ReadUUID)
}

func writeUUIDCollection(w io.Writer, ids []wire.UUID) error {
	return wire.WriteCollection(w, ids, wire.WriteUUID)
}

func writeUserCollection(w io.Writer, users []*model.User) error {
	return wire.WriteCollection(w, users, writeUser)
}

func writeConversationHeaderCollection(w io.Writer, hs []*model.ConversationHeader) error {
	return wire.WriteCollection(w, hs, writeConversationHeader)
}

func writeConversationPayloadCollection(w io.Writer, ps []*model.ConversationPayload) error {
	return wire.WriteCollection(w, ps, writeConversationPayload)
}

func writeMessageCollection(w io.Writer, ms []*model.Message) error {
	return wire.WriteCollection(w, ms, writeMessage)
}

func writeUUIDTimeMap(w io.Writer, m map[wire.UUID]wire.Time) error {
	entries := make([]wire.MapEntry[wire.UUID, wire.Time], 0, len(m))
	for k, v := range m {
		entries = append(entries, wire.MapEntry[wire.UUID, wire.Time]{Key: k, Value: v})
	}
	return wire.WriteMap(w, entries, wire.WriteUUID, wire.WriteTime)
}
