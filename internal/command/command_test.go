package command

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jlgabriel/Aerofly-FS4-Bridge/internal/sdk"
)

func TestTranslateThrottle(t *testing.T) {
	p := NewProcessor(zap.NewNop())

	msg, desc, ok := p.Translate([]byte(`{"variable":"Controls.Throttle","value":0.75}`))
	require.True(t, ok)
	assert.Equal(t, sdk.MessageHash("Controls.Throttle"), msg.Hash)
	assert.Equal(t, 0.75, msg.GetDouble())
	assert.Equal(t, "Controls.Throttle", desc.Name)
}

func TestTranslateUnknownVariable(t *testing.T) {
	p := NewProcessor(zap.NewNop())
	_, _, ok := p.Translate([]byte(`{"variable":"Totally.Unknown","value":1}`))
	assert.False(t, ok)
}

func TestTranslateReadOnlyDropped(t *testing.T) {
	p := NewProcessor(zap.NewNop())
	_, _, ok := p.Translate([]byte(`{"variable":"Aircraft.Altitude","value":1000}`))
	assert.False(t, ok)
}

func TestTranslateMalformed(t *testing.T) {
	p := NewProcessor(zap.NewNop())
	cases := []string{
		``,
		`not json at all`,
		`{invalid json}`,
		`{"variable":"Controls.Throttle"}`,
		`{"value":1}`,
		`{"variable":"Controls.Throttle","value":"fast"}`,
	}
	for _, c := range cases {
		_, _, ok := p.Translate([]byte(c))
		assert.False(t, ok, c)
	}
}

func TestTranslateBooleanCoercion(t *testing.T) {
	p := NewProcessor(zap.NewNop())

	msg, _, ok := p.Translate([]byte(`{"variable":"Simulation.Pause","value":true}`))
	require.True(t, ok)
	assert.Equal(t, 1.0, msg.GetDouble())

	msg, _, ok = p.Translate([]byte(`{"variable":"Simulation.Pause","value":false}`))
	require.True(t, ok)
	assert.Equal(t, 0.0, msg.GetDouble())
}

func TestTranslateExtraFieldsIgnored(t *testing.T) {
	p := NewProcessor(zap.NewNop())
	msg, _, ok := p.Translate([]byte(`{"variable":"Controls.Flaps","value":0.3,"source":"panel","seq":9}`))
	require.True(t, ok)
	assert.Equal(t, 0.3, msg.GetDouble())
}

func TestTranslateSurroundingNoise(t *testing.T) {
	p := NewProcessor(zap.NewNop())
	payload := []byte("  \r\n>>> {\"variable\":\"Controls.Gear\",\"value\":1} trailing garbage")
	msg, _, ok := p.Translate(payload)
	require.True(t, ok)
	assert.Equal(t, sdk.MessageHash("Controls.Gear"), msg.Hash)
}

func TestTranslateBracesInsideStrings(t *testing.T) {
	p := NewProcessor(zap.NewNop())
	msg, _, ok := p.Translate([]byte(`{"variable":"Controls.Gear","note":"{\"x\":1}","value":1}`))
	require.True(t, ok)
	assert.Equal(t, 1.0, msg.GetDouble())
}

func TestStepCommandKeepsDeltaAndFlag(t *testing.T) {
	p := NewProcessor(zap.NewNop())
	msg, desc, ok := p.Translate([]byte(`{"variable":"Doors.Left","value":0.3}`))
	require.True(t, ok)
	assert.True(t, desc.IsStep())
	assert.Equal(t, sdk.FlagStep, msg.Flag)
	assert.Equal(t, 0.3, msg.GetDouble())
}

func TestEventCommand(t *testing.T) {
	p := NewProcessor(zap.NewNop())
	msg, _, ok := p.Translate([]byte(`{"variable":"Navigation.NAV1FrequencySwap","value":1}`))
	require.True(t, ok)
	assert.Equal(t, sdk.FlagEvent, msg.Flag)
	assert.Equal(t, 1.0, msg.GetDouble())
}

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()
	for i := 0; i < 10; i++ {
		q.Push([]byte(fmt.Sprintf("cmd-%d", i)))
	}
	assert.Equal(t, 10, q.Len())

	out := q.Drain()
	require.Len(t, out, 10)
	for i, payload := range out {
		assert.Equal(t, fmt.Sprintf("cmd-%d", i), string(payload))
	}

	assert.Nil(t, q.Drain())
	assert.Equal(t, 0, q.Len())
}
