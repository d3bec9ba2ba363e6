// Package snapshot holds the fixed-layout telemetry record shared between
// the decoder, the JSON builder, and external shared-memory readers.
// The layout is a published ABI: for a given LayoutVersion the byte offset
// and length of every field are stable across runs. New variables must
// append, or LayoutVersion must be bumped.
package snapshot

import (
	"unsafe"

	"github.com/jlgabriel/Aerofly-FS4-Bridge/internal/sdk"
)

// MaxVariables is the capacity of the scalar array. The registry asserts
// at init that the variable count fits.
const MaxVariables = 400

// LayoutVersion identifies the current ABI of Data.
const LayoutVersion = 1

// String field capacities, including the terminating NUL.
const (
	AircraftNameLen       = 32
	NearestAirportIDLen   = 8
	NearestAirportNameLen = 64
)

// Data is the snapshot record. Field order is the ABI; do not reorder.
// The leading header is followed by the dense scalar array, then the typed
// vector and string fields.
type Data struct {
	TimestampUS   uint64
	DataValid     uint32
	UpdateCounter uint32
	LayoutVersion uint32
	_             uint32 // keeps Values 8-byte aligned

	Values [MaxVariables]float64

	Position               sdk.Vector3
	Velocity               sdk.Vector3
	Acceleration           sdk.Vector3
	Wind                   sdk.Vector3
	NearestAirportLocation sdk.Vector2

	AircraftName       [AircraftNameLen]byte
	NearestAirportID   [NearestAirportIDLen]byte
	NearestAirportName [NearestAirportNameLen]byte
}

// Field names a typed (non-scalar) snapshot field. The registry's
// declarative table binds vector and string variables to these.
type Field int

const (
	FieldNone Field = iota
	FieldPosition
	FieldVelocity
	FieldAcceleration
	FieldWind
	FieldNearestAirportLocation
	FieldAircraftName
	FieldNearestAirportID
	FieldNearestAirportName
)

// FieldLayout describes where a typed field lives inside Data.
type FieldLayout struct {
	Offset int
	Length int
}

var fieldLayouts = map[Field]FieldLayout{
	FieldPosition:               {int(unsafe.Offsetof(Data{}.Position)), int(unsafe.Sizeof(Data{}.Position))},
	FieldVelocity:               {int(unsafe.Offsetof(Data{}.Velocity)), int(unsafe.Sizeof(Data{}.Velocity))},
	FieldAcceleration:           {int(unsafe.Offsetof(Data{}.Acceleration)), int(unsafe.Sizeof(Data{}.Acceleration))},
	FieldWind:                   {int(unsafe.Offsetof(Data{}.Wind)), int(unsafe.Sizeof(Data{}.Wind))},
	FieldNearestAirportLocation: {int(unsafe.Offsetof(Data{}.NearestAirportLocation)), int(unsafe.Sizeof(Data{}.NearestAirportLocation))},
	FieldAircraftName:           {int(unsafe.Offsetof(Data{}.AircraftName)), AircraftNameLen},
	FieldNearestAirportID:       {int(unsafe.Offsetof(Data{}.NearestAirportID)), NearestAirportIDLen},
	FieldNearestAirportName:     {int(unsafe.Offsetof(Data{}.NearestAirportName)), NearestAirportNameLen},
}

// Layout returns the byte offset and length of a typed field.
func (f Field) Layout() FieldLayout {
	return fieldLayouts[f]
}

// Size returns the total size of the snapshot record in bytes.
func Size() int {
	return int(unsafe.Sizeof(Data{}))
}

// ArrayBaseOffset returns the byte offset of the scalar array.
func ArrayBaseOffset() int {
	return int(unsafe.Offsetof(Data{}.Values))
}

// ScalarStride is the byte stride of the scalar array.
const ScalarStride = 8

// ScalarOffset returns the byte offset of the scalar slot for a logical index.
func ScalarOffset(index int) int {
	return ArrayBaseOffset() + index*ScalarStride
}

// stringField returns the byte slice backing a string field, or nil when
// the field is not string-typed.
func (d *Data) stringField(f Field) []byte {
	switch f {
	case FieldAircraftName:
		return d.AircraftName[:]
	case FieldNearestAirportID:
		return d.NearestAirportID[:]
	case FieldNearestAirportName:
		return d.NearestAirportName[:]
	default:
		return nil
	}
}
