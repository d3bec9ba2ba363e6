// Package shm publishes the snapshot record through a named shared memory
// region with a fixed ABI, plus the sidecar descriptor file external
// consumers read to locate variables inside the region.
package shm

import "unsafe"

// DefaultName is the published name of the shared region.
const DefaultName = "AeroflyBridgeData"

// Region is a mapped named shared-memory segment. Close is idempotent.
type Region interface {
	// Pointer returns the base address of the mapping. The snapshot store
	// overlays its record here; the region owns the memory.
	Pointer() unsafe.Pointer
	// Size returns the mapped length in bytes.
	Size() int
	Close() error
}
