package snapshot

import (
	"math"
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlgabriel/Aerofly-FS4-Bridge/internal/sdk"
)

func TestHeaderLayout(t *testing.T) {
	// The header layout is a published ABI.
	assert.Equal(t, uintptr(0), unsafe.Offsetof(Data{}.TimestampUS))
	assert.Equal(t, uintptr(8), unsafe.Offsetof(Data{}.DataValid))
	assert.Equal(t, uintptr(12), unsafe.Offsetof(Data{}.UpdateCounter))
	assert.Equal(t, uintptr(16), unsafe.Offsetof(Data{}.LayoutVersion))
	assert.Equal(t, 24, ArrayBaseOffset())
	assert.Equal(t, ArrayBaseOffset()+MaxVariables*ScalarStride, FieldPosition.Layout().Offset)
}

func TestScalarSanitization(t *testing.T) {
	s := New()
	s.SetScalar(0, math.NaN())
	assert.Equal(t, 0.0, s.Scalar(0))
	s.SetScalar(0, math.Inf(1))
	assert.Equal(t, 0.0, s.Scalar(0))
	s.SetScalar(0, math.Inf(-1))
	assert.Equal(t, 0.0, s.Scalar(0))
	s.SetScalar(0, 1066.8)
	assert.Equal(t, 1066.8, s.Scalar(0))
}

func TestStepClampSequence(t *testing.T) {
	s := New()
	deltas := []float64{0.3, 0.3, 0.6, -1.0, -0.2}
	want := []float64{0.3, 0.6, 1.0, 0.0, 0.0}
	for i, d := range deltas {
		s.AddStepDelta(3, d)
		assert.InDelta(t, want[i], s.Scalar(3), 1e-9, "after delta %d", i)
	}
}

func TestStringSanitizeAndTruncate(t *testing.T) {
	s := New()

	s.SetString(FieldAircraftName, []byte("C172\x01\ntest"))
	assert.Equal(t, "C172  test", s.String(FieldAircraftName))

	long := make([]byte, 100)
	for i := range long {
		long[i] = 'A'
	}
	s.SetString(FieldNearestAirportID, long)
	got := s.String(FieldNearestAirportID)
	assert.Len(t, got, NearestAirportIDLen-1)

	// Raw bytes must stay NUL-terminated.
	assert.EqualValues(t, 0, s.Data().NearestAirportID[NearestAirportIDLen-1])
}

func TestValidityGate(t *testing.T) {
	s := New()
	s.SetScalar(0, 1.0)
	s.Commit(100)

	var copyData Data
	require.True(t, s.ReadConsistent(&copyData))
	assert.EqualValues(t, 1, copyData.DataValid)
	assert.EqualValues(t, 1, copyData.UpdateCounter)
	assert.EqualValues(t, 100, copyData.TimestampUS)

	// Mid-update reads fail but never see a garbage header.
	s.BeginUpdate()
	ok := s.ReadConsistent(&copyData)
	assert.False(t, ok)
	assert.EqualValues(t, LayoutVersion, copyData.LayoutVersion)

	s.Commit(200)
	require.True(t, s.ReadConsistent(&copyData))
	assert.EqualValues(t, 2, copyData.UpdateCounter)
}

func TestConcurrentReaderSeesConsistentCounters(t *testing.T) {
	s := New()
	stop := make(chan struct{})
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		var local Data
		for {
			select {
			case <-stop:
				return
			default:
			}
			if s.ReadConsistent(&local) {
				assert.EqualValues(t, 1, local.DataValid)
			}
		}
	}()

	for i := 0; i < 5000; i++ {
		s.BeginUpdate()
		s.SetScalar(0, float64(i))
		s.Commit(uint64(i))
	}
	close(stop)
	wg.Wait()
}

func TestVectorWrites(t *testing.T) {
	s := New()
	s.SetVector3(FieldVelocity, sdk.Vector3{X: 1, Y: math.NaN(), Z: 3})
	assert.Equal(t, sdk.Vector3{X: 1, Y: 0, Z: 3}, s.Data().Velocity)

	s.SetVector2(FieldNearestAirportLocation, sdk.Vector2{X: 0.8, Y: math.Inf(1)})
	assert.Equal(t, sdk.Vector2{X: 0.8, Y: 0}, s.Data().NearestAirportLocation)
}

func TestWrapZeroes(t *testing.T) {
	var d Data
	d.Values[5] = 99
	d.UpdateCounter = 7
	s := Wrap(&d)
	assert.Equal(t, 0.0, s.Scalar(5))
	assert.EqualValues(t, 0, d.UpdateCounter)
	assert.EqualValues(t, LayoutVersion, d.LayoutVersion)
}
