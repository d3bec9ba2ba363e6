// Package registry is the single source of truth for every variable the
// bridge knows: name, stable hash, data type, primary flag, access, unit
// and snapshot storage. The JSON builder, the decoder dispatch table, the
// command translator and the shared-memory sidecar are all derived from
// the one declarative table below.
package registry

import (
	"fmt"
	"strings"

	"github.com/jlgabriel/Aerofly-FS4-Bridge/internal/sdk"
	"github.com/jlgabriel/Aerofly-FS4-Bridge/internal/snapshot"
)

// Storage classifies where a variable's latest value lives.
type Storage uint8

const (
	// StorageScalarArray: a slot in the snapshot's dense double array.
	StorageScalarArray Storage = iota
	// StorageStructField: a typed vector or string field in the snapshot.
	StorageStructField
	// StorageMessageOnly: write-only command variables with no snapshot slot.
	StorageMessageOnly
)

func (s Storage) String() string {
	switch s {
	case StorageScalarArray:
		return "scalar_array"
	case StorageStructField:
		return "struct_field"
	default:
		return "message_only"
	}
}

// Descriptor is the full description of one registered variable.
type Descriptor struct {
	Index    int
	Name     string
	Group    string
	Hash     uint64
	DataType sdk.DataType
	Flag     sdk.Flag
	Access   sdk.Access
	Unit     sdk.Unit
	Storage  Storage
	Field    snapshot.Field

	// ByteOffset and ByteLength locate the value inside the shared-memory
	// region. Both are -1 for message-only variables.
	ByteOffset int
	ByteLength int
}

// IsEvent reports whether the variable fires as a one-shot event.
func (d *Descriptor) IsEvent() bool { return d.Flag == sdk.FlagEvent }

// IsToggle reports whether the variable flips state on each message.
func (d *Descriptor) IsToggle() bool { return d.Flag == sdk.FlagToggle }

// IsActive reports whether the variable mirrors a held-input state.
func (d *Descriptor) IsActive() bool { return d.Flag == sdk.FlagActive }

// IsValue reports whether the variable carries a plain value.
func (d *Descriptor) IsValue() bool { return d.Flag == sdk.FlagValue }

// IsStep reports whether the variable interprets its value as a delta
// with the stored scalar clamped to [0, 1].
func (d *Descriptor) IsStep() bool { return d.Flag == sdk.FlagStep }

var (
	descriptors []Descriptor
	byName      map[string]int
	byHash      map[uint64]int
)

func init() {
	if len(variables) > snapshot.MaxVariables {
		panic(fmt.Sprintf("registry: %d variables exceed capacity %d", len(variables), snapshot.MaxVariables))
	}

	descriptors = make([]Descriptor, len(variables))
	byName = make(map[string]int, len(variables))
	byHash = make(map[uint64]int, len(variables))

	for i, v := range variables {
		if _, dup := byName[v.name]; dup {
			panic("registry: duplicate variable name " + v.name)
		}
		h := sdk.MessageHash(v.name)
		if _, dup := byHash[h]; dup {
			panic("registry: hash collision on " + v.name)
		}

		d := Descriptor{
			Index:    i,
			Name:     v.name,
			Group:    groupOf(v.name),
			Hash:     h,
			DataType: v.dataType,
			Flag:     v.flag,
			Access:   v.access,
			Unit:     v.unit,
			Field:    v.field,
		}

		switch {
		case v.field != snapshot.FieldNone:
			d.Storage = StorageStructField
			fl := v.field.Layout()
			d.ByteOffset, d.ByteLength = fl.Offset, fl.Length
		case v.dataType.IsScalar() && v.access != sdk.AccessWrite:
			d.Storage = StorageScalarArray
			d.ByteOffset = snapshot.ScalarOffset(i)
			d.ByteLength = snapshot.ScalarStride
		default:
			d.Storage = StorageMessageOnly
			d.ByteOffset, d.ByteLength = -1, -1
		}

		descriptors[i] = d
		byName[v.name] = i
		byHash[h] = i
	}
}

func groupOf(name string) string {
	if i := strings.IndexByte(name, '.'); i > 0 {
		return name[:i]
	}
	return name
}

// Count returns the number of registered variables.
func Count() int { return len(descriptors) }

// IndexOfName resolves a dotted variable name to its logical index.
func IndexOfName(name string) (int, bool) {
	i, ok := byName[name]
	return i, ok
}

// IndexOfHash resolves a simulator message hash to its logical index.
func IndexOfHash(hash uint64) (int, bool) {
	i, ok := byHash[hash]
	return i, ok
}

// Get returns the descriptor for a logical index.
func Get(index int) *Descriptor {
	return &descriptors[index]
}

// Export returns all descriptors in index order. The slice is shared;
// callers must not mutate it.
func Export() []Descriptor {
	return descriptors
}
