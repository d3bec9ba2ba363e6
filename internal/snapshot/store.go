package snapshot

import (
	"math"
	"sync/atomic"

	"github.com/jlgabriel/Aerofly-FS4-Bridge/internal/sdk"
)

// Store wraps a Data record and enforces the single-writer update protocol:
// BeginUpdate clears DataValid, mutators run, Commit stamps the header and
// sets DataValid back to 1. Readers use ReadConsistent and retry on a torn
// observation. The record may live on the heap (tests) or inside a mapped
// shared-memory region (production); the protocol is the same.
type Store struct {
	data *Data
}

// New creates a Store over a heap-allocated record.
func New() *Store {
	return Wrap(&Data{})
}

// Wrap creates a Store over an existing record, typically the pointer into
// the shared-memory region. The record is zeroed except for LayoutVersion.
func Wrap(d *Data) *Store {
	*d = Data{}
	d.LayoutVersion = LayoutVersion
	return &Store{data: d}
}

// Data returns the underlying record.
func (s *Store) Data() *Data { return s.data }

// BeginUpdate marks the record as mid-update. Readers observing
// DataValid == 0 must retry.
func (s *Store) BeginUpdate() {
	atomic.StoreUint32(&s.data.DataValid, 0)
}

// Commit stamps the timestamp, bumps the update counter and republishes
// the record as consistent.
func (s *Store) Commit(nowUS uint64) {
	s.data.TimestampUS = nowUS
	s.data.UpdateCounter++
	atomic.StoreUint32(&s.data.DataValid, 1)
}

// sanitize coerces NaN and infinities to 0.0 so downstream JSON and UIs
// never see non-finite values.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0.0
	}
	return v
}

// SetScalar writes a scalar slot. Non-finite values are coerced to 0.0.
func (s *Store) SetScalar(index int, v float64) {
	if index < 0 || index >= MaxVariables {
		return
	}
	s.data.Values[index] = sanitize(v)
}

// Scalar reads a scalar slot.
func (s *Store) Scalar(index int) float64 {
	if index < 0 || index >= MaxVariables {
		return 0
	}
	return s.data.Values[index]
}

// AddStepDelta applies a step-control delta to a scalar slot, clamping the
// result to [0, 1].
func (s *Store) AddStepDelta(index int, delta float64) {
	if index < 0 || index >= MaxVariables {
		return
	}
	v := s.data.Values[index] + sanitize(delta)
	if v < 0.0 {
		v = 0.0
	} else if v > 1.0 {
		v = 1.0
	}
	s.data.Values[index] = v
}

// SetVector2 writes a vector2 field.
func (s *Store) SetVector2(f Field, v sdk.Vector2) {
	if f == FieldNearestAirportLocation {
		s.data.NearestAirportLocation = sdk.Vector2{X: sanitize(v.X), Y: sanitize(v.Y)}
	}
}

// SetVector3 writes a vector3 field.
func (s *Store) SetVector3(f Field, v sdk.Vector3) {
	clean := sdk.Vector3{X: sanitize(v.X), Y: sanitize(v.Y), Z: sanitize(v.Z)}
	switch f {
	case FieldPosition:
		s.data.Position = clean
	case FieldVelocity:
		s.data.Velocity = clean
	case FieldAcceleration:
		s.data.Acceleration = clean
	case FieldWind:
		s.data.Wind = clean
	}
}

// SetString writes a string field. Input is truncated to capacity,
// non-printable bytes become spaces and the final byte is always NUL.
func (s *Store) SetString(f Field, b []byte) {
	dst := s.data.stringField(f)
	if dst == nil {
		return
	}
	n := len(b)
	if n > len(dst)-1 {
		n = len(dst) - 1
	}
	for i := 0; i < n; i++ {
		c := b[i]
		if c < 0x20 || c > 0x7e {
			c = ' '
		}
		dst[i] = c
	}
	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}
}

// String reads a string field up to its NUL terminator.
func (s *Store) String(f Field) string {
	b := s.data.stringField(f)
	if b == nil {
		return ""
	}
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b[:len(b)-1])
}

// ReadConsistent copies the record into dst, retrying until DataValid is
// observed as 1 both before and after the copy with an unchanged update
// counter. Returns false if no consistent copy was obtained within the
// retry budget; dst then holds the last attempt, header included.
func (s *Store) ReadConsistent(dst *Data) bool {
	const retries = 8
	for i := 0; i < retries; i++ {
		before := atomic.LoadUint32(&s.data.DataValid)
		counterBefore := s.data.UpdateCounter
		*dst = *s.data
		after := atomic.LoadUint32(&s.data.DataValid)
		if before == 1 && after == 1 && dst.UpdateCounter == counterBefore {
			return true
		}
	}
	return false
}
