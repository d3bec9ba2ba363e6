package command

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/jlgabriel/Aerofly-FS4-Bridge/internal/registry"
	"github.com/jlgabriel/Aerofly-FS4-Bridge/internal/sdk"
)

// Processor parses raw JSON command payloads and builds the corresponding
// simulator messages.
type Processor struct {
	log *zap.Logger
}

// NewProcessor creates a Processor.
func NewProcessor(log *zap.Logger) *Processor {
	return &Processor{log: log}
}

type commandJSON struct {
	Variable string          `json:"variable"`
	Value    json.RawMessage `json:"value"`
}

// Translate parses one payload and, when it names a known writable
// variable, returns the simulator message for it. Invalid payloads,
// unknown names and read-only variables yield ok == false; none of these
// are errors the host sees.
func (p *Processor) Translate(payload []byte) (msg sdk.Message, desc *registry.Descriptor, ok bool) {
	body := extractObject(payload)
	if body == nil {
		p.log.Debug("command payload has no JSON object")
		return sdk.Message{}, nil, false
	}

	var cmd commandJSON
	if err := json.Unmarshal(body, &cmd); err != nil {
		p.log.Debug("unparseable command", zap.Error(err))
		return sdk.Message{}, nil, false
	}
	if cmd.Variable == "" || len(cmd.Value) == 0 {
		p.log.Debug("command missing variable or value")
		return sdk.Message{}, nil, false
	}

	value, ok := parseValue(cmd.Value)
	if !ok {
		p.log.Debug("command value is not a number", zap.String("variable", cmd.Variable))
		return sdk.Message{}, nil, false
	}

	index, found := registry.IndexOfName(cmd.Variable)
	if !found {
		p.log.Debug("command for unknown variable", zap.String("variable", cmd.Variable))
		return sdk.Message{}, nil, false
	}
	d := registry.Get(index)
	if !d.Access.Writable() {
		p.log.Debug("command for read-only variable", zap.String("variable", cmd.Variable))
		return sdk.Message{}, nil, false
	}

	return buildMessage(d, value), d, true
}

// parseValue accepts a JSON number, or a boolean coerced to 0/1.
func parseValue(raw json.RawMessage) (float64, bool) {
	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return num, true
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		if b {
			return 1.0, true
		}
		return 0.0, true
	}
	return 0, false
}

// buildMessage constructs the outgoing simulator message for a writable
// variable. Event-like flags carry the value as the event magnitude
// (a delta for step controls); plain values use the variable's data type.
func buildMessage(d *registry.Descriptor, value float64) sdk.Message {
	switch d.Flag {
	case sdk.FlagEvent, sdk.FlagToggle, sdk.FlagStep, sdk.FlagMove, sdk.FlagOffset, sdk.FlagActive:
		return sdk.NewDoubleMessage(d.Hash, d.Flag, value)
	}

	switch d.DataType {
	case sdk.DataTypeInt64:
		return sdk.NewInt64Message(d.Hash, d.Flag, int64(value))
	case sdk.DataTypeUint64:
		return sdk.NewUint64Message(d.Hash, d.Flag, uint64(value))
	case sdk.DataTypeUint8:
		return sdk.NewUint8Message(d.Hash, d.Flag, uint8(value))
	case sdk.DataTypeFloat:
		return sdk.NewFloatMessage(d.Hash, d.Flag, float32(value))
	default:
		return sdk.NewDoubleMessage(d.Hash, d.Flag, value)
	}
}

// extractObject returns the first balanced {...} span in payload,
// tolerating whitespace or framing noise around it. Brace counting skips
// braces inside JSON strings.
func extractObject(payload []byte) []byte {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i, c := range payload {
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			if start >= 0 {
				inString = true
			}
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start >= 0 {
				depth--
				if depth == 0 {
					return payload[start : i+1]
				}
			}
		}
	}
	return nil
}
