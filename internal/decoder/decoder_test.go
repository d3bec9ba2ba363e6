package decoder

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jlgabriel/Aerofly-FS4-Bridge/internal/registry"
	"github.com/jlgabriel/Aerofly-FS4-Bridge/internal/sdk"
	"github.com/jlgabriel/Aerofly-FS4-Bridge/internal/snapshot"
)

func newTestDecoder(t *testing.T) (*Decoder, *snapshot.Store) {
	t.Helper()
	store := snapshot.New()
	var clock uint64
	dec := New(store, func() uint64 { clock += 1000; return clock }, zap.NewNop())
	return dec, store
}

func encode(msgs ...sdk.Message) []byte {
	var buf []byte
	for i := range msgs {
		buf = msgs[i].AppendTo(buf)
	}
	return buf
}

func indexOf(t *testing.T, name string) int {
	t.Helper()
	idx, ok := registry.IndexOfName(name)
	require.True(t, ok, name)
	return idx
}

func TestAltitudeRoundTrip(t *testing.T) {
	dec, store := newTestDecoder(t)

	dec.Apply(encode(sdk.NewDoubleMessage(
		sdk.MessageHash("Aircraft.Altitude"), sdk.FlagValue, 1066.8)))

	assert.Equal(t, 1066.8, store.Scalar(indexOf(t, "Aircraft.Altitude")))
	assert.EqualValues(t, 1, store.Data().DataValid)
	assert.EqualValues(t, 1, store.Data().UpdateCounter)
	assert.NotZero(t, store.Data().TimestampUS)
}

func TestUnknownHashSkipped(t *testing.T) {
	dec, store := newTestDecoder(t)

	dec.Apply(encode(
		sdk.NewDoubleMessage(0x1234, sdk.FlagValue, 5.0),
		sdk.NewDoubleMessage(sdk.MessageHash("Aircraft.Altitude"), sdk.FlagValue, 100.0),
	))

	// Unknown message skipped, the rest of the stream still applied.
	assert.Equal(t, 100.0, store.Scalar(indexOf(t, "Aircraft.Altitude")))
}

func TestMalformedStreamAbandonedButCommitted(t *testing.T) {
	dec, store := newTestDecoder(t)

	good := encode(sdk.NewDoubleMessage(sdk.MessageHash("Aircraft.Altitude"), sdk.FlagValue, 200.0))
	stream := append(good, 0xff, 0x01, 0x02) // malformed tail

	dec.Apply(stream)

	assert.Equal(t, 200.0, store.Scalar(indexOf(t, "Aircraft.Altitude")))
	// The validity gate always closes, even on a bad stream.
	assert.EqualValues(t, 1, store.Data().DataValid)
}

func TestNaNCoercion(t *testing.T) {
	dec, store := newTestDecoder(t)

	dec.Apply(encode(sdk.NewDoubleMessage(
		sdk.MessageHash("Aircraft.Altitude"), sdk.FlagValue, math.NaN())))

	assert.Equal(t, 0.0, store.Scalar(indexOf(t, "Aircraft.Altitude")))
}

func TestNoScalarIsEverNonFinite(t *testing.T) {
	dec, store := newTestDecoder(t)

	var msgs []sdk.Message
	for _, d := range registry.Export() {
		if d.DataType == sdk.DataTypeDouble {
			msgs = append(msgs, sdk.NewDoubleMessage(d.Hash, d.Flag, math.Inf(1)))
		}
	}
	dec.Apply(encode(msgs...))

	for i := 0; i < registry.Count(); i++ {
		v := store.Scalar(i)
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), registry.Get(i).Name)
	}
}

func TestStepDeltaViaDecoder(t *testing.T) {
	dec, store := newTestDecoder(t)
	idx := indexOf(t, "Doors.Left")
	hash := registry.Get(idx).Hash

	deltas := []float64{0.3, 0.3, 0.6, -1.0, -0.2}
	want := []float64{0.3, 0.6, 1.0, 0.0, 0.0}
	for i, d := range deltas {
		dec.Apply(encode(sdk.NewDoubleMessage(hash, sdk.FlagStep, d)))
		assert.InDelta(t, want[i], store.Scalar(idx), 1e-9, "after delta %d", i)
	}
}

func TestVectorAndStringMessages(t *testing.T) {
	dec, store := newTestDecoder(t)

	dec.Apply(encode(
		sdk.NewVector3dMessage(sdk.MessageHash("Aircraft.Velocity"), sdk.FlagValue,
			sdk.Vector3{X: 10, Y: 20, Z: -1.5}),
		sdk.NewVector2dMessage(sdk.MessageHash("Aircraft.NearestAirportLocation"), sdk.FlagValue,
			sdk.Vector2{X: 0.83, Y: -2.13}),
		sdk.NewStringMessage(sdk.MessageHash("Aircraft.Name"), sdk.FlagValue, []byte("C172")),
	))

	assert.Equal(t, sdk.Vector3{X: 10, Y: 20, Z: -1.5}, store.Data().Velocity)
	assert.Equal(t, sdk.Vector2{X: 0.83, Y: -2.13}, store.Data().NearestAirportLocation)
	assert.Equal(t, "C172", store.String(snapshot.FieldAircraftName))
}

func TestUpdateCounterMonotonic(t *testing.T) {
	dec, store := newTestDecoder(t)
	stream := encode(sdk.NewDoubleMessage(sdk.MessageHash("Aircraft.Altitude"), sdk.FlagValue, 1.0))

	for i := 1; i <= 10; i++ {
		dec.Apply(stream)
		assert.EqualValues(t, i, store.Data().UpdateCounter)
	}
}

func TestEmptyStream(t *testing.T) {
	dec, store := newTestDecoder(t)
	dec.Apply(nil)
	assert.EqualValues(t, 1, store.Data().DataValid)
	assert.EqualValues(t, 1, store.Data().UpdateCounter)
}
