// Package jsonbuilder produces the canonical telemetry document broadcast
// on both network channels. One builder output is shared byte-for-byte by
// the TCP and WebSocket fan-outs, which guarantees payload parity.
package jsonbuilder

import (
	"strconv"

	"github.com/jlgabriel/Aerofly-FS4-Bridge/internal/registry"
	"github.com/jlgabriel/Aerofly-FS4-Bridge/internal/sdk"
	"github.com/jlgabriel/Aerofly-FS4-Bridge/internal/snapshot"
)

const (
	schemaName    = "aerofly-bridge-telemetry"
	schemaVersion = 1
)

// Builder renders snapshots into line-delimited JSON. It keeps a private
// snapshot copy and a scratch buffer, so one builder must not be shared
// across goroutines; the bridge calls it from the host tick only.
type Builder struct {
	scratch snapshot.Data
	buf     []byte
}

// New creates a Builder sized for a full document.
func New() *Builder {
	return &Builder{buf: make([]byte, 0, 16*1024)}
}

// Build reads the store under the validity gate and returns one complete
// UTF-8 JSON document terminated with '\n'. The returned slice is owned by
// the caller. Output is deterministic: registry index order, fixed number
// formatting.
func (b *Builder) Build(store *snapshot.Store, rateHz float64) []byte {
	store.ReadConsistent(&b.scratch)
	d := &b.scratch

	out := b.buf[:0]
	out = append(out, `{"schema":"`+schemaName+`","schema_version":`...)
	out = strconv.AppendInt(out, schemaVersion, 10)
	out = append(out, `,"timestamp":`...)
	out = strconv.AppendUint(out, d.TimestampUS, 10)
	out = append(out, `,"timestamp_unit":"microseconds","data_valid":`...)
	out = strconv.AppendUint(out, uint64(d.DataValid), 10)
	out = append(out, `,"update_counter":`...)
	out = strconv.AppendUint(out, uint64(d.UpdateCounter), 10)
	out = append(out, `,"broadcast_rate_hz":`...)
	out = strconv.AppendFloat(out, rateHz, 'f', 1, 64)
	out = append(out, `,"variables":{`...)

	first := true
	for _, desc := range registry.Export() {
		switch desc.DataType {
		case sdk.DataTypeVector2d:
			v := vector2Of(d, desc.Field)
			out = appendNumberMember(out, &first, desc.Name+".X", v.X)
			out = appendNumberMember(out, &first, desc.Name+".Y", v.Y)
		case sdk.DataTypeVector3d:
			v := vector3Of(d, desc.Field)
			out = appendNumberMember(out, &first, desc.Name+".X", v.X)
			out = appendNumberMember(out, &first, desc.Name+".Y", v.Y)
			out = appendNumberMember(out, &first, desc.Name+".Z", v.Z)
		case sdk.DataTypeVector4d:
			v := vector4Of(d, desc.Field)
			out = appendNumberMember(out, &first, desc.Name+".X", v.X)
			out = appendNumberMember(out, &first, desc.Name+".Y", v.Y)
			out = appendNumberMember(out, &first, desc.Name+".Z", v.Z)
			out = appendNumberMember(out, &first, desc.Name+".W", v.W)
		case sdk.DataTypeString:
			out = appendStringMember(out, &first, desc.Name, stringOf(d, desc.Field))
		default:
			// Scalars and message-only variables; the latter keep their
			// zero-initialized slot.
			out = appendNumberMember(out, &first, desc.Name, d.Values[desc.Index])
		}
	}

	out = append(out, "}}\n"...)
	b.buf = out

	doc := make([]byte, len(out))
	copy(doc, out)
	return doc
}

func appendNumberMember(out []byte, first *bool, name string, v float64) []byte {
	out = appendMemberName(out, first, name)
	return strconv.AppendFloat(out, v, 'f', 6, 64)
}

func appendStringMember(out []byte, first *bool, name string, s []byte) []byte {
	out = appendMemberName(out, first, name)
	out = append(out, '"')
	for _, c := range s {
		switch c {
		case '"', '\\':
			out = append(out, '\\', c)
		default:
			// Snapshot strings are already sanitized to printable ASCII.
			out = append(out, c)
		}
	}
	return append(out, '"')
}

func appendMemberName(out []byte, first *bool, name string) []byte {
	if !*first {
		out = append(out, ',')
	}
	*first = false
	out = append(out, '"')
	out = append(out, name...)
	return append(out, `":`...)
}

func vector2Of(d *snapshot.Data, f snapshot.Field) sdk.Vector2 {
	if f == snapshot.FieldNearestAirportLocation {
		return d.NearestAirportLocation
	}
	return sdk.Vector2{}
}

func vector3Of(d *snapshot.Data, f snapshot.Field) sdk.Vector3 {
	switch f {
	case snapshot.FieldPosition:
		return d.Position
	case snapshot.FieldVelocity:
		return d.Velocity
	case snapshot.FieldAcceleration:
		return d.Acceleration
	case snapshot.FieldWind:
		return d.Wind
	default:
		return sdk.Vector3{}
	}
}

func vector4Of(d *snapshot.Data, f snapshot.Field) sdk.Vector4 {
	return sdk.Vector4{}
}

func stringOf(d *snapshot.Data, f snapshot.Field) []byte {
	var raw []byte
	switch f {
	case snapshot.FieldAircraftName:
		raw = d.AircraftName[:]
	case snapshot.FieldNearestAirportID:
		raw = d.NearestAirportID[:]
	case snapshot.FieldNearestAirportName:
		raw = d.NearestAirportName[:]
	default:
		return nil
	}
	for i, c := range raw {
		if c == 0 {
			return raw[:i]
		}
	}
	return raw[:len(raw)-1]
}
