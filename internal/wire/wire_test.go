package wire

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrimitiveRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteInt(&buf, -42))
	require.NoError(t, WriteLong(&buf, 1<<40))
	require.NoError(t, WriteBool(&buf, true))
	require.NoError(t, WriteString(&buf, "hello, 世界"))
	require.NoError(t, WriteUUID(&buf, UUID{Generator: 1, Sequence: 7}))
	require.NoError(t, WriteTime(&buf, Time(1234567890)))

	i, err := ReadInt(&buf)
	require.NoError(t, err)
	require.Equal(t, int32(-42), i)

	l, err := ReadLong(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(1<<40), l)

	b, err := ReadBool(&buf)
	require.NoError(t, err)
	require.True(t, b)

	s, err := ReadString(&buf)
	require.NoError(t, err)
	require.Equal(t, "hello, 世界", s)

	u, err := ReadUUID(&buf)
	require.NoError(t, err)
	require.Equal(t, UUID{Generator: 1, Sequence: 7}, u)

	tm, err := ReadTime(&buf)
	require.NoError(t, err)
	require.Equal(t, Time(1234567890), tm)
}

func TestNullableUUIDRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteNullableUUID(&buf, UUID{}, false))
	require.NoError(t, WriteNullableUUID(&buf, UUID{Generator: 2, Sequence: 9}, true))

	_, present, err := ReadNullableUUID(&buf)
	require.NoError(t, err)
	require.False(t, present)

	u, present, err := ReadNullableUUID(&buf)
	require.NoError(t, err)
	require.True(t, present)
	require.Equal(t, UUID{Generator: 2, Sequence: 9}, u)
}

func TestCollectionRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	items := []UUID{{Generator: 1, Sequence: 1}, {Generator: 1, Sequence: 2}, {Generator: 2, Sequence: 1}}
	require.NoError(t, WriteCollection(&buf, items, WriteUUID))

	out, err := ReadCollection(&buf, ReadUUID)
	require.NoError(t, err)
	require.Equal(t, items, out)
}

func TestCollectionOfMapsRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	maps := [][]MapEntry[UUID, Time]{
		{{Key: UUID{Generator: 1, Sequence: 1}, Value: Time(10)}},
		{},
	}
	writeOne := func(w io.Writer, m []MapEntry[UUID, Time]) error {
		return WriteMap(w, m, WriteUUID, WriteTime)
	}
	readOne := func(r io.Reader) ([]MapEntry[UUID, Time], error) {
		return ReadMap(r, ReadUUID, ReadTime)
	}
	require.NoError(t, WriteCollection(&buf, maps, writeOne))

	out, err := ReadCollection(&buf, readOne)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, maps[0], out[0])
	require.Empty(t, out[1])
}

func TestMapRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	entries := []MapEntry[UUID, Time]{
		{Key: UUID{Generator: 1, Sequence: 1}, Value: Time(100)},
		{Key: UUID{Generator: 1, Sequence: 2}, Value: Time(200)},
	}
	require.NoError(t, WriteMap(&buf, entries, WriteUUID, WriteTime))

	out, err := ReadMap(&buf, ReadUUID, ReadTime)
	require.NoError(t, err)
	require.Equal(t, entries, out)
}

func TestDecodeFailsOnShortStream(t *testing.T) {
	buf := bytes.NewBuffer([]byte{0x00, 0x00})
	_, err := ReadInt(buf)
	require.Error(t, err)
	var fe *FormatError
	require.ErrorAs(t, err, &fe)
}

func TestDecodeFailsOnNegativeLength(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteInt(&buf, -1))
	_, err := ReadString(&buf)
	require.Error(t, err)
}

func TestDecodeFailsOnInvalidUTF8(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBytes(&buf, []byte{0xff, 0xfe, 0xfd}))
	_, err := ReadString(&buf)
	require.Error(t, err)
}
