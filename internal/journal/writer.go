package journal

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/asim/chatd/internal/logging"
	"github.com/asim/chatd/internal/wire"
)

// Writer appends one UTF-8 line per mutation to the transaction log. A
// failed write is fatal to the server process (the model has diverged from
// durable state) — the same contract data/store.go's saveJSON leaves to its
// caller, just enforced here instead of logged-and-continued, because a
// torn journal is unrecoverable while a torn settings file is not.
type Writer struct {
	mu  sync.Mutex
	f   *os.File
	w   *bufio.Writer
	log *logging.Logger

	offset int64 // bytes flushed so far, fed to the sqlite checkpoint store
}

// Open appends to (creating if absent) the journal file at path.
func Open(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("journal: open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("journal: stat %s: %w", path, err)
	}
	return &Writer{
		f:      f,
		w:      bufio.NewWriter(f),
		log:    logging.Default("journal"),
		offset: info.Size(),
	}, nil
}

// Offset returns the number of bytes flushed to the journal file so far.
func (w *Writer) Offset() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.offset
}

// Close flushes and closes the underlying file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.w.Flush(); err != nil {
		return err
	}
	return w.f.Close()
}

func (w *Writer) appendLine(line string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err := w.w.WriteString(line + "\n")
	if err == nil {
		err = w.w.Flush()
	}
	if err != nil {
		w.log.Fatalf("append failed, model has diverged from durable state: %v", err)
	}
	if err := w.f.Sync(); err != nil {
		w.log.Fatalf("fsync failed, model has diverged from durable state: %v", err)
	}
	w.offset += int64(n)
}

func joinTokens(tokens ...string) string {
	return strings.Join(tokens, " ")
}

func itoa64(v int64) string { return strconv.FormatInt(v, 10) }

func (w *Writer) AddUser(id wire.UUID, name string, t wire.Time) {
	w.appendLine(joinTokens(string(OpAddUser), id.String(), quoteToken(name), itoa64(int64(t))))
}

func (w *Writer) AddConversation(id, owner wire.UUID, title string, t wire.Time) {
	w.appendLine(joinTokens(string(OpAddConversation), id.String(), owner.String(), quoteToken(title), itoa64(int64(t))))
}

func (w *Writer) AddMessage(id, author, conversation wire.UUID, content string, t wire.Time) {
	w.appendLine(joinTokens(string(OpAddMessage), id.String(), author.String(), conversation.String(), quoteToken(content), itoa64(int64(t))))
}

func (w *Writer) AddInterestUser(user, followed wire.UUID) {
	w.appendLine(joinTokens(string(OpAddInterestUser), user.String(), followed.String()))
}

func (w *Writer) RemoveInterestUser(user, followed wire.UUID) {
	w.appendLine(joinTokens(string(OpRemoveInterestUser), user.String(), followed.String()))
}

func (w *Writer) AddInterestConversation(user, conv wire.UUID) {
	w.appendLine(joinTokens(string(OpAddInterestConversation), user.String(), conv.String()))
}

func (w *Writer) RemoveInterestConversation(user, conv wire.UUID) {
	w.appendLine(joinTokens(string(OpRemoveInterestConversation), user.String(), conv.String()))
}

func (w *Writer) AddConvoCreator(conv, user wire.UUID) {
	w.appendLine(joinTokens(string(OpAddConvoCreator), conv.String(), user.String()))
}

func (w *Writer) RemoveConvoCreator(conv, user wire.UUID) {
	w.appendLine(joinTokens(string(OpRemoveConvoCreator), conv.String(), user.String()))
}

func (w *Writer) AddConvoOwner(conv, user wire.UUID) {
	w.appendLine(joinTokens(string(OpAddConvoOwner), conv.String(), user.String()))
}

func (w *Writer) RemoveConvoOwner(conv, user wire.UUID) {
	w.appendLine(joinTokens(string(OpRemoveConvoOwner), conv.String(), user.String()))
}

func (w *Writer) AddConvoMember(conv, user wire.UUID) {
	w.appendLine(joinTokens(string(OpAddConvoMember), conv.String(), user.String()))
}

func (w *Writer) RemoveConvoMember(conv, user wire.UUID) {
	w.appendLine(joinTokens(string(OpRemoveConvoMember), conv.String(), user.String()))
}

func (w *Writer) RemoveConvoToggle(conv, user wire.UUID) {
	w.appendLine(joinTokens(string(OpRemoveConvoToggle), conv.String(), user.String()))
}
