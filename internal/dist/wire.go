package dist

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Frame tags for the distribution wire protocol, grounded on
// dist/global.rs's DIST_GLOBAL_REGISTER/DIST_GLOBAL_UNREGISTER broadcast
// payloads plus a DIST_GLOBAL_SYNC tag for full-snapshot exchange on node
// connect (named in spec.md §4.8.4 but not given an explicit byte value
// in the filtered source, so it's assigned the next tag in the same
// namespace).
const (
	TagGlobalRegister   byte = 0x1B
	TagGlobalUnregister byte = 0x1C
	TagGlobalSync       byte = 0x1D
)

// WriteFrame writes a length-prefixed frame: a 4-byte little-endian
// length followed by payload. Every distribution message, regardless of
// tag, goes out through this one framing so a reader never has to guess
// where a message ends.
func WriteFrame(w io.Writer, payload []byte) error {
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(payload)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}

// ReadFrame reads one length-prefixed frame.
func ReadFrame(r io.Reader) ([]byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, err
	}
	n := binary.LittleEndian.Uint32(lenBuf[:])
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// EncodeRegister builds a [tag][u16 name_len][name][u64 pid][u16
// node_len][node] payload.
func EncodeRegister(name string, pid uint64, node string) []byte {
	var buf bytes.Buffer
	buf.WriteByte(TagGlobalRegister)
	writeString16(&buf, name)
	var pidBuf [8]byte
	binary.LittleEndian.PutUint64(pidBuf[:], pid)
	buf.Write(pidBuf[:])
	writeString16(&buf, node)
	return buf.Bytes()
}

// EncodeUnregister builds a [tag][u16 name_len][name] payload.
func EncodeUnregister(name string) []byte {
	var buf bytes.Buffer
	buf.WriteByte(TagGlobalUnregister)
	writeString16(&buf, name)
	return buf.Bytes()
}

// EncodeSync builds a [tag][u32 count]{[u16 name_len][name][u64 pid][u16
// node_len][node]}* payload carrying a full snapshot.
func EncodeSync(entries []SnapshotEntry) []byte {
	var buf bytes.Buffer
	buf.WriteByte(TagGlobalSync)
	var countBuf [4]byte
	binary.LittleEndian.PutUint32(countBuf[:], uint32(len(entries)))
	buf.Write(countBuf[:])
	for _, e := range entries {
		writeString16(&buf, e.Name)
		var pidBuf [8]byte
		binary.LittleEndian.PutUint64(pidBuf[:], e.Pid)
		buf.Write(pidBuf[:])
		writeString16(&buf, e.Node)
	}
	return buf.Bytes()
}

// WireMessage is a decoded distribution frame.
type WireMessage struct {
	Tag     byte
	Name    string
	Pid     uint64
	Node    string
	Entries []SnapshotEntry
}

// Decode parses a frame payload produced by one of the Encode* functions.
func Decode(payload []byte) (WireMessage, error) {
	if len(payload) == 0 {
		return WireMessage{}, fmt.Errorf("dist: empty frame")
	}
	r := bytes.NewReader(payload[1:])
	switch payload[0] {
	case TagGlobalRegister:
		name, err := readString16(r)
		if err != nil {
			return WireMessage{}, err
		}
		var pidBuf [8]byte
		if _, err := io.ReadFull(r, pidBuf[:]); err != nil {
			return WireMessage{}, err
		}
		node, err := readString16(r)
		if err != nil {
			return WireMessage{}, err
		}
		return WireMessage{Tag: TagGlobalRegister, Name: name, Pid: binary.LittleEndian.Uint64(pidBuf[:]), Node: node}, nil
	case TagGlobalUnregister:
		name, err := readString16(r)
		if err != nil {
			return WireMessage{}, err
		}
		return WireMessage{Tag: TagGlobalUnregister, Name: name}, nil
	case TagGlobalSync:
		var countBuf [4]byte
		if _, err := io.ReadFull(r, countBuf[:]); err != nil {
			return WireMessage{}, err
		}
		count := binary.LittleEndian.Uint32(countBuf[:])
		entries := make([]SnapshotEntry, 0, count)
		for i := uint32(0); i < count; i++ {
			name, err := readString16(r)
			if err != nil {
				return WireMessage{}, err
			}
			var pidBuf [8]byte
			if _, err := io.ReadFull(r, pidBuf[:]); err != nil {
				return WireMessage{}, err
			}
			node, err := readString16(r)
			if err != nil {
				return WireMessage{}, err
			}
			entries = append(entries, SnapshotEntry{Name: name, Pid: binary.LittleEndian.Uint64(pidBuf[:]), Node: node})
		}
		return WireMessage{Tag: TagGlobalSync, Entries: entries}, nil
	default:
		return WireMessage{}, fmt.Errorf("dist: unknown frame tag %#x", payload[0])
	}
}

func writeString16(buf *bytes.Buffer, s string) {
	var lenBuf [2]byte
	binary.LittleEndian.PutUint16(lenBuf[:], uint16(len(s)))
	buf.Write(lenBuf[:])
	buf.WriteString(s)
}

func readString16(r *bytes.Reader) (string, error) {
	var lenBuf [2]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return "", err
	}
	n := binary.LittleEndian.Uint16(lenBuf[:])
	strBuf := make([]byte, n)
	if _, err := io.ReadFull(r, strBuf); err != nil {
		return "", err
	}
	return string(strBuf), nil
}
