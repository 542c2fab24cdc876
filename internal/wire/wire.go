// Package wire implements the chatd binary codec: the exact byte layout
// primitives, nullable wrappers, collections and maps described in the
// protocol, read from and written to a plain io.Reader/io.Writer.
//
// There is no schema compiler and no reflection: every wire type gets a
// pair of free functions (ReadX/WriteX) composed by callers, the same way
// server/server.go composes its own ad hoc encode helpers.
package wire

import (
	"encoding/binary"
	"fmt"
	"io"
	"unicode/utf8"
)

// FormatError is returned for any malformed input: a length that runs past
// the end of the stream, a negative length, or invalid UTF-8.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string { return "wire: malformed input: " + e.Reason }

func formatErrorf(format string, args ...interface{}) error {
	return &FormatError{Reason: fmt.Sprintf(format, args...)}
}

// UUID is the wire representation of an entity identifier: a generator id
// paired with a monotonic sequence number scoped to that generator.
type UUID struct {
	Generator uint32
	Sequence  uint32
}

// Null is the sentinel absent UUID, (0, 0).
var Null = UUID{}

func (u UUID) IsNull() bool { return u.Generator == 0 && u.Sequence == 0 }

// String renders the textual form used in the journal: [g.s].
func (u UUID) String() string {
	return fmt.Sprintf("[%d.%d]", u.Generator, u.Sequence)
}

// Time is a millisecond instant, totally ordered.
type Time int64

func (t Time) Before(o Time) bool { return t < o }
func (t Time) After(o Time) bool  { return t > o }

// ReadInt reads a 4-byte big-endian signed integer.
func ReadInt(r io.Reader) (int32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, wrapShort(err)
	}
	return int32(binary.BigEndian.Uint32(buf[:])), nil
}

// WriteInt writes a 4-byte big-endian signed integer.
func WriteInt(w io.Writer, v int32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(v))
	_, err := w.Write(buf[:])
	return err
}

// ReadLong reads an 8-byte big-endian signed integer.
func ReadLong(r io.Reader) (int64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, wrapShort(err)
	}
	return int64(binary.BigEndian.Uint64(buf[:])), nil
}

// WriteLong writes an 8-byte big-endian signed integer.
func WriteLong(w io.Writer, v int64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(v))
	_, err := w.Write(buf[:])
	return err
}

// ReadBool reads a single 0x00/0x01 byte.
func ReadBool(r io.Reader) (bool, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return false, wrapShort(err)
	}
	switch buf[0] {
	case 0x00:
		return false, nil
	case 0x01:
		return true, nil
	default:
		return false, formatErrorf("invalid boolean byte 0x%02x", buf[0])
	}
}

// WriteBool writes a single 0x00/0x01 byte.
func WriteBool(w io.Writer, v bool) error {
	b := byte(0x00)
	if v {
		b = 0x01
	}
	_, err := w.Write([]byte{b})
	return err
}

// ReadBytes reads an INTEGER length followed by that many raw bytes.
func ReadBytes(r io.Reader) ([]byte, error) {
	n, err := ReadInt(r)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, formatErrorf("negative length %d", n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, wrapShort(err)
	}
	return buf, nil
}

// WriteBytes writes an INTEGER length followed by the raw bytes.
func WriteBytes(w io.Writer, b []byte) error {
	if err := WriteInt(w, int32(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

// ReadString reads an INTEGER length followed by that many UTF-8 bytes.
func ReadString(r io.Reader) (string, error) {
	b, err := ReadBytes(r)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", formatErrorf("invalid UTF-8 sequence")
	}
	return string(b), nil
}

// WriteString writes an INTEGER length followed by the UTF-8 bytes.
func WriteString(w io.Writer, s string) error {
	return WriteBytes(w, []byte(s))
}

// ReadUUID reads two INTEGERs: (generatorId, sequence).
func ReadUUID(r io.Reader) (UUID, error) {
	g, err := ReadInt(r)
	if err != nil {
		return UUID{}, err
	}
	s, err := ReadInt(r)
	if err != nil {
		return UUID{}, err
	}
	return UUID{Generator: uint32(g), Sequence: uint32(s)}, nil
}

// WriteUUID writes two INTEGERs: (generatorId, sequence).
func WriteUUID(w io.Writer, u UUID) error {
	if err := WriteInt(w, int32(u.Generator)); err != nil {
		return err
	}
	return WriteInt(w, int32(u.Sequence))
}

// ReadTime reads a LONG of milliseconds.
func ReadTime(r io.Reader) (Time, error) {
	v, err := ReadLong(r)
	if err != nil {
		return 0, err
	}
	return Time(v), nil
}

// WriteTime writes a LONG of milliseconds.
func WriteTime(w io.Writer, t Time) error {
	return WriteLong(w, int64(t))
}

// ReadNullableUUID reads a BOOLEAN present-flag, then a UUID if present.
func ReadNullableUUID(r io.Reader) (UUID, bool, error) {
	present, err := ReadBool(r)
	if err != nil || !present {
		return UUID{}, false, err
	}
	u, err := ReadUUID(r)
	return u, true, err
}

// WriteNullableUUID writes a BOOLEAN present-flag, then the UUID if present.
func WriteNullableUUID(w io.Writer, u UUID, present bool) error {
	if err := WriteBool(w, present); err != nil {
		return err
	}
	if !present {
		return nil
	}
	return WriteUUID(w, u)
}

// ReadCount reads a COLLECTION/MAP element count, rejecting negative counts.
func ReadCount(r io.Reader) (int, error) {
	n, err := ReadInt(r)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, formatErrorf("negative collection count %d", n)
	}
	return int(n), nil
}

// WriteCount writes a COLLECTION/MAP element count.
func WriteCount(w io.Writer, n int) error {
	return WriteInt(w, int32(n))
}

func wrapShort(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return formatErrorf("unexpected end of stream")
	}
	return err
}
