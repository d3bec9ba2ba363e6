package shm

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jlgabriel/Aerofly-FS4-Bridge/internal/registry"
	"github.com/jlgabriel/Aerofly-FS4-Bridge/internal/snapshot"
)

// DefaultOffsetsFile is the default file name of the sidecar descriptor.
// WriteOffsets resolves a relative path against the process working
// directory, not the directory of the loaded module.
const DefaultOffsetsFile = "AeroflyBridge_offsets.json"

const offsetsSchema = "aerofly-bridge-offsets"

type offsetsDoc struct {
	Schema          string           `json:"schema"`
	SchemaVersion   int              `json:"schema_version"`
	LayoutVersion   uint32           `json:"layout_version"`
	ArrayBaseOffset int              `json:"array_base_offset"`
	StrideBytes     int              `json:"stride_bytes"`
	Count           int              `json:"count"`
	Variables       []offsetsVarDesc `json:"variables"`
}

type offsetsVarDesc struct {
	Name           string   `json:"name"`
	Group          string   `json:"group"`
	LogicalIndex   int      `json:"logical_index"`
	DataType       string   `json:"data_type"`
	Storage        string   `json:"storage"`
	ByteOffset     int      `json:"byte_offset"`
	ByteLength     int      `json:"byte_length"`
	ComponentOrder []string `json:"component_order,omitempty"`
	Unit           string   `json:"unit,omitempty"`
	Access         string   `json:"access,omitempty"`
	Flag           string   `json:"flag,omitempty"`
	IsEvent        bool     `json:"is_event,omitempty"`
	IsToggle       bool     `json:"is_toggle,omitempty"`
	IsActiveFlag   bool     `json:"is_active_flag,omitempty"`
	IsValue        bool     `json:"is_value,omitempty"`
	MessageID      uint64   `json:"message_id"`
}

// WriteOffsets emits the sidecar descriptor for the current registry and
// snapshot layout. Consumers read it once, then mmap the region.
func WriteOffsets(path string) error {
	doc := offsetsDoc{
		Schema:          offsetsSchema,
		SchemaVersion:   1,
		LayoutVersion:   snapshot.LayoutVersion,
		ArrayBaseOffset: snapshot.ArrayBaseOffset(),
		StrideBytes:     snapshot.ScalarStride,
		Count:           registry.Count(),
		Variables:       make([]offsetsVarDesc, 0, registry.Count()),
	}

	for _, d := range registry.Export() {
		v := offsetsVarDesc{
			Name:         d.Name,
			Group:        d.Group,
			LogicalIndex: d.Index,
			DataType:     d.DataType.String(),
			Storage:      d.Storage.String(),
			ByteOffset:   d.ByteOffset,
			ByteLength:   d.ByteLength,
			Unit:         unitOrEmpty(d),
			Access:       d.Access.String(),
			Flag:         d.Flag.String(),
			IsEvent:      d.IsEvent(),
			IsToggle:     d.IsToggle(),
			IsActiveFlag: d.IsActive(),
			IsValue:      d.IsValue(),
			MessageID:    d.Hash,
		}
		switch d.DataType.String() {
		case "vector2d":
			v.ComponentOrder = []string{"x", "y"}
		case "vector3d":
			v.ComponentOrder = []string{"x", "y", "z"}
		case "vector4d":
			v.ComponentOrder = []string{"x", "y", "z", "w"}
		}
		doc.Variables = append(doc.Variables, v)
	}

	data, err := json.MarshalIndent(&doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding offsets descriptor: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing offsets descriptor %s: %w", path, err)
	}
	return nil
}

func unitOrEmpty(d registry.Descriptor) string {
	if s := d.Unit.String(); s != "none" {
		return s
	}
	return ""
}
