package dist

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRegisterRoundTrip(t *testing.T) {
	payload := EncodeRegister("db_service", 42, "node1@host")
	msg, err := Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, TagGlobalRegister, msg.Tag)
	assert.Equal(t, "db_service", msg.Name)
	assert.Equal(t, uint64(42), msg.Pid)
	assert.Equal(t, "node1@host", msg.Node)
}

func TestEncodeDecodeUnregisterRoundTrip(t *testing.T) {
	payload := EncodeUnregister("db_service")
	msg, err := Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, TagGlobalUnregister, msg.Tag)
	assert.Equal(t, "db_service", msg.Name)
}

func TestEncodeDecodeSyncRoundTrip(t *testing.T) {
	entries := []SnapshotEntry{
		{Name: "svc_a", Pid: 1, Node: "node1@host"},
		{Name: "svc_b", Pid: 2, Node: "node2@host"},
	}
	payload := EncodeSync(entries)
	msg, err := Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, TagGlobalSync, msg.Tag)
	assert.Equal(t, entries, msg.Entries)
}

func TestEncodeSyncEmpty(t *testing.T) {
	payload := EncodeSync(nil)
	msg, err := Decode(payload)
	require.NoError(t, err)
	assert.Empty(t, msg.Entries)
}

func TestDecodeEmptyPayloadErrors(t *testing.T) {
	_, err := Decode(nil)
	assert.Error(t, err)
}

func TestDecodeUnknownTagErrors(t *testing.T) {
	_, err := Decode([]byte{0xFF})
	assert.Error(t, err)
}

func TestWriteReadFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	payload := EncodeRegister("name", 7, "node@host")
	require.NoError(t, WriteFrame(&buf, payload))

	got, err := ReadFrame(&buf)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestReadFrameMultipleFrames(t *testing.T) {
	var buf bytes.Buffer
	p1 := EncodeRegister("a", 1, "n@h")
	p2 := EncodeUnregister("a")
	require.NoError(t, WriteFrame(&buf, p1))
	require.NoError(t, WriteFrame(&buf, p2))

	got1, err := ReadFrame(&buf)
	require.NoError(t, err)
	assert.Equal(t, p1, got1)

	got2, err := ReadFrame(&buf)
	require.NoError(t, err)
	assert.Equal(t, p2, got2)
}
