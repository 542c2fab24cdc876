package journal

import (
	"bufio"
	"io"
	"os"
	"strconv"

	"github.com/asim/chatd/internal/logging"
	"github.com/asim/chatd/internal/uuidgen"
	"github.com/asim/chatd/internal/wire"
)

// Applier is the subset of Controller that replay drives: the entry points
// that accept an externally supplied UUID/time and never append a journal
// record of their own (doing so would duplicate the line being replayed).
type Applier interface {
	ReplayAddUser(id wire.UUID, name string, t wire.Time) error
	ReplayAddConversation(id, owner wire.UUID, title string, t wire.Time) error
	ReplayAddMessage(id, author, conversation wire.UUID, content string, t wire.Time) error
	ReplayAddInterestUser(user, followed wire.UUID) error
	ReplayRemoveInterestUser(user, followed wire.UUID) error
	ReplayAddInterestConversation(user, conv wire.UUID) error
	ReplayRemoveInterestConversation(user, conv wire.UUID) error
	ReplayAddConvoCreator(conv, user wire.UUID) error
	ReplayRemoveConvoCreator(conv, user wire.UUID) error
	ReplayAddConvoOwner(conv, user wire.UUID) error
	ReplayRemoveConvoOwner(conv, user wire.UUID) error
	ReplayAddConvoMember(conv, user wire.UUID) error
	ReplayRemoveConvoMember(conv, user wire.UUID) error
	ReplayRemoveConvoToggle(conv, user wire.UUID) error
}

// Replay reads path line by line, tokenizes, and dispatches to app's replay
// entry points. Lines that fail to parse or apply are logged and skipped;
// replay never aborts the server. If path does not exist, replay is a no-op
// (a brand new server starts from an empty model).
func Replay(path string, app Applier) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()
	return replayFrom(f, app)
}

// ReplaySince behaves like Replay but seeks to byteOffset first, for use
// with a checkpoint that recorded how much of the log was already applied.
func ReplaySince(path string, byteOffset int64, app Applier) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()
	if byteOffset > 0 {
		if _, err := f.Seek(byteOffset, io.SeekStart); err != nil {
			return err
		}
	}
	return replayFrom(f, app)
}

func replayFrom(r io.Reader, app Applier) error {
	log := logging.Default("journal")
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if blank(line) {
			continue
		}
		tokens, err := tokenize(line)
		if err != nil {
			log.Printf("skipping malformed line %d: %v", lineNo, err)
			continue
		}
		if len(tokens) == 0 {
			continue
		}
		if err := apply(app, tokens); err != nil {
			log.Printf("skipping line %d (%s): %v", lineNo, tokens[0], err)
		}
	}
	return scanner.Err()
}

func blank(line string) bool {
	for _, r := range line {
		if r != ' ' && r != '\t' && r != '\r' {
			return false
		}
	}
	return true
}

func apply(app Applier, tokens []string) error {
	op := Op(tokens[0])
	args := tokens[1:]

	switch op {
	case OpAddUser:
		id, name, t, err := parseIDStringTime(args)
		if err != nil {
			return err
		}
		return app.ReplayAddUser(id, name, t)

	case OpAddConversation:
		id, owner, title, t, err := parseIDIDStringTime(args)
		if err != nil {
			return err
		}
		return app.ReplayAddConversation(id, owner, title, t)

	case OpAddMessage:
		id, author, conv, content, t, err := parseMessageArgs(args)
		if err != nil {
			return err
		}
		return app.ReplayAddMessage(id, author, conv, content, t)

	case OpAddInterestUser:
		a, b, err := parseIDID(args)
		if err != nil {
			return err
		}
		return app.ReplayAddInterestUser(a, b)

	case OpRemoveInterestUser:
		a, b, err := parseIDID(args)
		if err != nil {
			return err
		}
		return app.ReplayRemoveInterestUser(a, b)

	case OpAddInterestConversation:
		a, b, err := parseIDID(args)
		if err != nil {
			return err
		}
		return app.ReplayAddInterestConversation(a, b)

	case OpRemoveInterestConversation:
		a, b, err := parseIDID(args)
		if err != nil {
			return err
		}
		return app.ReplayRemoveInterestConversation(a, b)

	case OpAddConvoCreator:
		a, b, err := parseIDID(args)
		if err != nil {
			return err
		}
		return app.ReplayAddConvoCreator(a, b)

	case OpRemoveConvoCreator:
		a, b, err := parseIDID(args)
		if err != nil {
			return err
		}
		return app.ReplayRemoveConvoCreator(a, b)

	case OpAddConvoOwner:
		a, b, err := parseIDID(args)
		if err != nil {
			return err
		}
		return app.ReplayAddConvoOwner(a, b)

	case OpRemoveConvoOwner:
		a, b, err := parseIDID(args)
		if err != nil {
			return err
		}
		return app.ReplayRemoveConvoOwner(a, b)

	case OpAddConvoMember:
		a, b, err := parseIDID(args)
		if err != nil {
			return err
		}
		return app.ReplayAddConvoMember(a, b)

	case OpRemoveConvoMember:
		a, b, err := parseIDID(args)
		if err != nil {
			return err
		}
		return app.ReplayRemoveConvoMember(a, b)

	case OpRemoveConvoToggle:
		a, b, err := parseIDID(args)
		if err != nil {
			return err
		}
		return app.ReplayRemoveConvoToggle(a, b)

	default:
		return &tokenError{"unknown opcode " + string(op)}
	}
}

func parseIDID(args []string) (wire.UUID, wire.UUID, error) {
	if len(args) != 2 {
		return wire.UUID{}, wire.UUID{}, &tokenError{"expected 2 fields"}
	}
	a, err := uuidgen.Parse(args[0])
	if err != nil {
		return wire.UUID{}, wire.UUID{}, err
	}
	b, err := uuidgen.Parse(args[1])
	if err != nil {
		return wire.UUID{}, wire.UUID{}, err
	}
	return a, b, nil
}

func parseIDStringTime(args []string) (wire.UUID, string, wire.Time, error) {
	if len(args) != 3 {
		return wire.UUID{}, "", 0, &tokenError{"expected 3 fields"}
	}
	id, err := uuidgen.Parse(args[0])
	if err != nil {
		return wire.UUID{}, "", 0, err
	}
	t, err := parseTime(args[2])
	if err != nil {
		return wire.UUID{}, "", 0, err
	}
	return id, args[1], t, nil
}

func parseIDIDStringTime(args []string) (wire.UUID, wire.UUID, string, wire.Time, error) {
	if len(args) != 4 {
		return wire.UUID{}, wire.UUID{}, "", 0, &tokenError{"expected 4 fields"}
	}
	id, err := uuidgen.Parse(args[0])
	if err != nil {
		return wire.UUID{}, wire.UUID{}, "", 0, err
	}
	owner, err := uuidgen.Parse(args[1])
	if err != nil {
		return wire.UUID{}, wire.UUID{}, "", 0, err
	}
	t, err := parseTime(args[3])
	if err != nil {
		return wire.UUID{}, wire.UUID{}, "", 0, err
	}
	return id, owner, args[2], t, nil
}

func parseMessageArgs(args []string) (id, author, conv wire.UUID, content string, t wire.Time, err error) {
	if len(args) != 5 {
		err = &tokenError{"expected 5 fields"}
		return
	}
	if id, err = uuidgen.Parse(args[0]); err != nil {
		return
	}
	if author, err = uuidgen.Parse(args[1]); err != nil {
		return
	}
	if conv, err = uuidgen.Parse(args[2]); err != nil {
		return
	}
	content = args[3]
	t, err = parseTime(args[4])
	return
}

func parseTime(s string) (wire.Time, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &tokenError{"invalid timestamp " + s}
	}
	return wire.Time(v), nil
}
