// Package sdk is the boundary to the Aerofly FS4 external DLL SDK. It holds
// the message data types, flags and units the simulator uses, the stable
// name hash, and the byte-stream codec for tm_external_message frames.
package sdk

// DataType identifies the payload type of a simulator message.
type DataType uint8

const (
	DataTypeNone DataType = iota
	DataTypeDouble
	DataTypeInt64
	DataTypeUint64
	DataTypeUint8
	DataTypeFloat
	DataTypeVector2d
	DataTypeVector3d
	DataTypeVector4d
	DataTypeString
	DataTypeString8
)

// String returns the sidecar-descriptor spelling of the data type.
func (t DataType) String() string {
	switch t {
	case DataTypeDouble:
		return "double"
	case DataTypeInt64:
		return "int64"
	case DataTypeUint64:
		return "uint64"
	case DataTypeUint8:
		return "uint8"
	case DataTypeFloat:
		return "float"
	case DataTypeVector2d:
		return "vector2d"
	case DataTypeVector3d:
		return "vector3d"
	case DataTypeVector4d:
		return "vector4d"
	case DataTypeString, DataTypeString8:
		return "string"
	default:
		return "none"
	}
}

// IsScalar reports whether values of this type land in the snapshot's
// scalar array (convertible to a double slot).
func (t DataType) IsScalar() bool {
	switch t {
	case DataTypeDouble, DataTypeInt64, DataTypeUint64, DataTypeUint8, DataTypeFloat:
		return true
	default:
		return false
	}
}

// Flag is the primary flag of a simulator message.
type Flag uint8

const (
	FlagNone Flag = iota
	FlagValue
	FlagEvent
	FlagToggle
	FlagActive
	FlagStep
	FlagMove
	FlagOffset
	FlagSetGet
	FlagState
)

func (f Flag) String() string {
	switch f {
	case FlagValue:
		return "value"
	case FlagEvent:
		return "event"
	case FlagToggle:
		return "toggle"
	case FlagActive:
		return "active"
	case FlagStep:
		return "step"
	case FlagMove:
		return "move"
	case FlagOffset:
		return "offset"
	case FlagSetGet:
		return "setget"
	case FlagState:
		return "state"
	default:
		return "none"
	}
}

// Access describes the direction a variable supports.
type Access uint8

const (
	AccessNone Access = iota
	AccessRead
	AccessWrite
	AccessReadWrite
)

func (a Access) String() string {
	switch a {
	case AccessRead:
		return "read"
	case AccessWrite:
		return "write"
	case AccessReadWrite:
		return "read_write"
	default:
		return "none"
	}
}

// Writable reports whether commands may target a variable with this access.
func (a Access) Writable() bool {
	return a == AccessWrite || a == AccessReadWrite
}

// Unit is the advisory unit of a variable.
type Unit uint8

const (
	UnitNone Unit = iota
	UnitSecond
	UnitMeter
	UnitMeterPerSecond
	UnitMeterPerSecondSquared
	UnitRadiant
	UnitRadiantPerSecond
	UnitHertz
	UnitPerMille
	UnitDegree
)

func (u Unit) String() string {
	switch u {
	case UnitSecond:
		return "second"
	case UnitMeter:
		return "meter"
	case UnitMeterPerSecond:
		return "meter_per_second"
	case UnitMeterPerSecondSquared:
		return "meter_per_second_squared"
	case UnitRadiant:
		return "radiant"
	case UnitRadiantPerSecond:
		return "radiant_per_second"
	case UnitHertz:
		return "hertz"
	case UnitPerMille:
		return "per_mille"
	case UnitDegree:
		return "degree"
	default:
		return "none"
	}
}
