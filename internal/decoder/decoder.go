// Package decoder turns the host's per-tick byte stream into snapshot
// updates. Dispatch is a dense per-index handler table built once from the
// registry, so each message costs one hash lookup plus one indexed call.
package decoder

import (
	"go.uber.org/zap"

	"github.com/jlgabriel/Aerofly-FS4-Bridge/internal/registry"
	"github.com/jlgabriel/Aerofly-FS4-Bridge/internal/sdk"
	"github.com/jlgabriel/Aerofly-FS4-Bridge/internal/snapshot"
)

type handler func(store *snapshot.Store, msg *sdk.Message)

// Decoder applies simulator messages to the snapshot store.
type Decoder struct {
	store    *snapshot.Store
	handlers []handler
	log      *zap.Logger
	nowUS    func() uint64
}

// New builds a decoder over the given store. nowUS supplies monotonic
// microseconds for the commit timestamp.
func New(store *snapshot.Store, nowUS func() uint64, log *zap.Logger) *Decoder {
	d := &Decoder{
		store:    store,
		handlers: make([]handler, registry.Count()),
		log:      log,
		nowUS:    nowUS,
	}
	for i := 0; i < registry.Count(); i++ {
		d.handlers[i] = buildHandler(registry.Get(i))
	}
	return d
}

func buildHandler(desc *registry.Descriptor) handler {
	index := desc.Index
	field := desc.Field

	switch {
	case desc.Storage == registry.StorageMessageOnly:
		return nil
	case desc.IsStep():
		return func(s *snapshot.Store, m *sdk.Message) {
			s.AddStepDelta(index, m.GetDouble())
		}
	case desc.DataType == sdk.DataTypeVector2d:
		return func(s *snapshot.Store, m *sdk.Message) {
			s.SetVector2(field, m.GetVector2d())
		}
	case desc.DataType == sdk.DataTypeVector3d:
		return func(s *snapshot.Store, m *sdk.Message) {
			s.SetVector3(field, m.GetVector3d())
		}
	case desc.DataType == sdk.DataTypeString:
		return func(s *snapshot.Store, m *sdk.Message) {
			s.SetString(field, m.GetString())
		}
	default:
		return func(s *snapshot.Store, m *sdk.Message) {
			s.SetScalar(index, m.GetDouble())
		}
	}
}

// Apply decodes the byte stream and writes every recognized message into
// the snapshot under the validity gate. Malformed trailing data abandons
// the rest of the stream; unknown hashes are skipped. Apply never panics
// into the host.
func (d *Decoder) Apply(stream []byte) {
	d.store.BeginUpdate()
	defer func() { d.store.Commit(d.nowUS()) }()

	off := 0
	for off < len(stream) {
		msg, n, err := sdk.ReadMessage(stream[off:])
		if err != nil {
			d.log.Debug("dropping malformed message stream",
				zap.Int("offset", off), zap.Error(err))
			return
		}
		off += n

		index, ok := registry.IndexOfHash(msg.Hash)
		if !ok {
			continue
		}
		if h := d.handlers[index]; h != nil {
			h(d.store, &msg)
		}
	}
}

// ApplyMessage writes a single already-decoded message, used for the
// in-tick application of step commands. The caller is responsible for the
// validity gate.
func (d *Decoder) ApplyMessage(msg *sdk.Message) {
	index, ok := registry.IndexOfHash(msg.Hash)
	if !ok {
		return
	}
	if h := d.handlers[index]; h != nil {
		h(d.store, msg)
	}
}
