package sdk

import (
	"encoding/binary"
	"fmt"
	"math"
)

// headerSize is the fixed frame header: hash u64, data type u8, flag u8,
// reserved u16, payload length u32. All fields little-endian.
const headerSize = 16

// maxStringPayload caps string payloads on decode; anything longer is
// treated as a malformed frame.
const maxStringPayload = 4096

// Message is one simulator message as it crosses the DLL boundary.
// Exactly one of the value fields is meaningful, selected by DataType.
type Message struct {
	Hash     uint64
	DataType DataType
	Flag     Flag

	value  float64
	ivalue int64
	uvalue uint64
	vector Vector4
	str    []byte
}

// GetDouble returns the scalar payload as a float64. Valid for all scalar
// data types; integer payloads are converted.
func (m *Message) GetDouble() float64 {
	switch m.DataType {
	case DataTypeInt64:
		return float64(m.ivalue)
	case DataTypeUint64, DataTypeUint8:
		return float64(m.uvalue)
	default:
		return m.value
	}
}

// GetInt64 returns the int64 payload.
func (m *Message) GetInt64() int64 { return m.ivalue }

// GetUint64 returns the uint64 payload.
func (m *Message) GetUint64() uint64 { return m.uvalue }

// GetVector2d returns the first two vector components.
func (m *Message) GetVector2d() Vector2 { return Vector2{m.vector.X, m.vector.Y} }

// GetVector3d returns the first three vector components.
func (m *Message) GetVector3d() Vector3 { return Vector3{m.vector.X, m.vector.Y, m.vector.Z} }

// GetVector4d returns the full vector payload.
func (m *Message) GetVector4d() Vector4 { return m.vector }

// GetString returns the raw string payload. The slice aliases the message;
// callers that retain it must copy.
func (m *Message) GetString() []byte { return m.str }

// NewDoubleMessage builds a double-typed message for the given name hash.
func NewDoubleMessage(hash uint64, flag Flag, v float64) Message {
	return Message{Hash: hash, DataType: DataTypeDouble, Flag: flag, value: v}
}

// NewFloatMessage builds a float-typed message.
func NewFloatMessage(hash uint64, flag Flag, v float32) Message {
	return Message{Hash: hash, DataType: DataTypeFloat, Flag: flag, value: float64(v)}
}

// NewInt64Message builds an int64-typed message.
func NewInt64Message(hash uint64, flag Flag, v int64) Message {
	return Message{Hash: hash, DataType: DataTypeInt64, Flag: flag, ivalue: v}
}

// NewUint64Message builds a uint64-typed message.
func NewUint64Message(hash uint64, flag Flag, v uint64) Message {
	return Message{Hash: hash, DataType: DataTypeUint64, Flag: flag, uvalue: v}
}

// NewUint8Message builds a uint8-typed message.
func NewUint8Message(hash uint64, flag Flag, v uint8) Message {
	return Message{Hash: hash, DataType: DataTypeUint8, Flag: flag, uvalue: uint64(v)}
}

// NewVector2dMessage builds a vector2d-typed message.
func NewVector2dMessage(hash uint64, flag Flag, v Vector2) Message {
	return Message{Hash: hash, DataType: DataTypeVector2d, Flag: flag, vector: Vector4{X: v.X, Y: v.Y}}
}

// NewVector3dMessage builds a vector3d-typed message.
func NewVector3dMessage(hash uint64, flag Flag, v Vector3) Message {
	return Message{Hash: hash, DataType: DataTypeVector3d, Flag: flag, vector: Vector4{X: v.X, Y: v.Y, Z: v.Z}}
}

// NewVector4dMessage builds a vector4d-typed message.
func NewVector4dMessage(hash uint64, flag Flag, v Vector4) Message {
	return Message{Hash: hash, DataType: DataTypeVector4d, Flag: flag, vector: v}
}

// NewStringMessage builds a string-typed message. The bytes are copied.
func NewStringMessage(hash uint64, flag Flag, s []byte) Message {
	b := make([]byte, len(s))
	copy(b, s)
	return Message{Hash: hash, DataType: DataTypeString, Flag: flag, str: b}
}

// payloadSize returns the wire payload size for a fixed-size data type,
// or -1 for variable-length (string) types.
func payloadSize(t DataType) int {
	switch t {
	case DataTypeDouble, DataTypeInt64, DataTypeUint64:
		return 8
	case DataTypeFloat:
		return 4
	case DataTypeUint8:
		return 1
	case DataTypeVector2d:
		return 16
	case DataTypeVector3d:
		return 24
	case DataTypeVector4d:
		return 32
	case DataTypeString, DataTypeString8:
		return -1
	default:
		return 0
	}
}

// AppendTo encodes the message onto buf in the SDK's frame layout and
// returns the extended slice.
func (m *Message) AppendTo(buf []byte) []byte {
	var payload [32]byte
	var body []byte

	switch m.DataType {
	case DataTypeDouble:
		binary.LittleEndian.PutUint64(payload[:8], math.Float64bits(m.value))
		body = payload[:8]
	case DataTypeFloat:
		binary.LittleEndian.PutUint32(payload[:4], math.Float32bits(float32(m.value)))
		body = payload[:4]
	case DataTypeInt64:
		binary.LittleEndian.PutUint64(payload[:8], uint64(m.ivalue))
		body = payload[:8]
	case DataTypeUint64:
		binary.LittleEndian.PutUint64(payload[:8], m.uvalue)
		body = payload[:8]
	case DataTypeUint8:
		payload[0] = uint8(m.uvalue)
		body = payload[:1]
	case DataTypeVector2d:
		binary.LittleEndian.PutUint64(payload[0:], math.Float64bits(m.vector.X))
		binary.LittleEndian.PutUint64(payload[8:], math.Float64bits(m.vector.Y))
		body = payload[:16]
	case DataTypeVector3d:
		binary.LittleEndian.PutUint64(payload[0:], math.Float64bits(m.vector.X))
		binary.LittleEndian.PutUint64(payload[8:], math.Float64bits(m.vector.Y))
		binary.LittleEndian.PutUint64(payload[16:], math.Float64bits(m.vector.Z))
		body = payload[:24]
	case DataTypeVector4d:
		binary.LittleEndian.PutUint64(payload[0:], math.Float64bits(m.vector.X))
		binary.LittleEndian.PutUint64(payload[8:], math.Float64bits(m.vector.Y))
		binary.LittleEndian.PutUint64(payload[16:], math.Float64bits(m.vector.Z))
		binary.LittleEndian.PutUint64(payload[24:], math.Float64bits(m.vector.W))
		body = payload[:32]
	case DataTypeString, DataTypeString8:
		body = m.str
	}

	var hdr [headerSize]byte
	binary.LittleEndian.PutUint64(hdr[0:], m.Hash)
	hdr[8] = uint8(m.DataType)
	hdr[9] = uint8(m.Flag)
	binary.LittleEndian.PutUint32(hdr[12:], uint32(len(body)))
	buf = append(buf, hdr[:]...)
	return append(buf, body...)
}

// ReadMessage decodes one message from the front of buf. It returns the
// message and the number of bytes consumed. A short or inconsistent frame
// yields an error; the caller should abandon the rest of the stream.
func ReadMessage(buf []byte) (Message, int, error) {
	if len(buf) < headerSize {
		return Message{}, 0, fmt.Errorf("sdk: short frame header: %d bytes", len(buf))
	}

	m := Message{
		Hash:     binary.LittleEndian.Uint64(buf[0:]),
		DataType: DataType(buf[8]),
		Flag:     Flag(buf[9]),
	}
	plen := int(binary.LittleEndian.Uint32(buf[12:]))

	want := payloadSize(m.DataType)
	if want < 0 {
		if plen > maxStringPayload {
			return Message{}, 0, fmt.Errorf("sdk: string payload too large: %d", plen)
		}
	} else if plen != want {
		return Message{}, 0, fmt.Errorf("sdk: payload length %d does not match type %s", plen, m.DataType)
	}
	if len(buf) < headerSize+plen {
		return Message{}, 0, fmt.Errorf("sdk: truncated payload: have %d, need %d", len(buf)-headerSize, plen)
	}

	body := buf[headerSize : headerSize+plen]
	switch m.DataType {
	case DataTypeDouble:
		m.value = math.Float64frombits(binary.LittleEndian.Uint64(body))
	case DataTypeFloat:
		m.value = float64(math.Float32frombits(binary.LittleEndian.Uint32(body)))
	case DataTypeInt64:
		m.ivalue = int64(binary.LittleEndian.Uint64(body))
	case DataTypeUint64:
		m.uvalue = binary.LittleEndian.Uint64(body)
	case DataTypeUint8:
		m.uvalue = uint64(body[0])
	case DataTypeVector2d:
		m.vector.X = math.Float64frombits(binary.LittleEndian.Uint64(body[0:]))
		m.vector.Y = math.Float64frombits(binary.LittleEndian.Uint64(body[8:]))
	case DataTypeVector3d:
		m.vector.X = math.Float64frombits(binary.LittleEndian.Uint64(body[0:]))
		m.vector.Y = math.Float64frombits(binary.LittleEndian.Uint64(body[8:]))
		m.vector.Z = math.Float64frombits(binary.LittleEndian.Uint64(body[16:]))
	case DataTypeVector4d:
		m.vector.X = math.Float64frombits(binary.LittleEndian.Uint64(body[0:]))
		m.vector.Y = math.Float64frombits(binary.LittleEndian.Uint64(body[8:]))
		m.vector.Z = math.Float64frombits(binary.LittleEndian.Uint64(body[16:]))
		m.vector.W = math.Float64frombits(binary.LittleEndian.Uint64(body[24:]))
	case DataTypeString, DataTypeString8:
		m.str = make([]byte, plen)
		copy(m.str, body)
	default:
		return Message{}, 0, fmt.Errorf("sdk: unknown data type %d", uint8(m.DataType))
	}

	return m, headerSize + plen, nil
}
