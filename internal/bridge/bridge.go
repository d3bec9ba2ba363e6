// Package bridge wires the registry, snapshot, decoder, JSON builder,
// network servers and command pipeline into the lifecycle the simulator
// host drives: Init, Tick at 50-60 Hz, Shutdown.
package bridge

import (
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/jlgabriel/Aerofly-FS4-Bridge/internal/command"
	"github.com/jlgabriel/Aerofly-FS4-Bridge/internal/config"
	"github.com/jlgabriel/Aerofly-FS4-Bridge/internal/decoder"
	"github.com/jlgabriel/Aerofly-FS4-Bridge/internal/jsonbuilder"
	"github.com/jlgabriel/Aerofly-FS4-Bridge/internal/sdk"
	"github.com/jlgabriel/Aerofly-FS4-Bridge/internal/shm"
	"github.com/jlgabriel/Aerofly-FS4-Bridge/internal/snapshot"
	"github.com/jlgabriel/Aerofly-FS4-Bridge/internal/tcpserver"
	"github.com/jlgabriel/Aerofly-FS4-Bridge/internal/wsserver"
)

// Bridge is the orchestrator. It exclusively owns the snapshot store, the
// shared-memory region and both servers; the servers only ever see their
// command queues.
type Bridge struct {
	cfg *config.Config
	log *zap.Logger

	region  shm.Region
	store   *snapshot.Store
	dec     *decoder.Decoder
	builder *jsonbuilder.Builder
	proc    *command.Processor

	tcpQueue *command.Queue
	wsQueue  *command.Queue
	tcp      *tcpserver.Server
	ws       *wsserver.Server

	start           time.Time
	lastBroadcastUS uint64
	broadcastHz     float64

	initialized bool
}

// New creates an uninitialized bridge.
func New(cfg *config.Config, log *zap.Logger) *Bridge {
	return &Bridge{cfg: cfg, log: log, start: time.Now()}
}

// nowUS returns monotonic microseconds since bridge construction.
func (b *Bridge) nowUS() uint64 {
	return uint64(time.Since(b.start).Microseconds())
}

// Init brings the bridge up. Shared memory is required; each network
// channel degrades gracefully, leaving the others running.
func (b *Bridge) Init() error {
	if b.initialized {
		return nil
	}

	region, err := shm.Open(b.cfg.SHMName, snapshot.Size())
	if err != nil {
		return fmt.Errorf("bridge init: %w", err)
	}
	b.region = region
	b.store = snapshot.Wrap((*snapshot.Data)(region.Pointer()))
	b.dec = decoder.New(b.store, b.nowUS, b.log)
	b.builder = jsonbuilder.New()
	b.proc = command.NewProcessor(b.log)
	b.tcpQueue = command.NewQueue()
	b.wsQueue = command.NewQueue()

	if err := shm.WriteOffsets(b.cfg.OffsetsPath); err != nil {
		b.log.Warn("offsets descriptor not written", zap.Error(err))
	}

	b.tcp = tcpserver.New(b.tcpQueue, b.log)
	telemetryAddr := ":" + strconv.Itoa(b.cfg.TCPPort)
	commandAddr := ":" + strconv.Itoa(b.cfg.CommandPort)
	if err := b.tcp.Start(telemetryAddr, commandAddr); err != nil {
		b.log.Warn("tcp channels unavailable", zap.Error(err))
	}

	if b.cfg.WSEnable {
		b.ws = wsserver.New(b.wsQueue, b.log)
		if err := b.ws.Start(":" + strconv.Itoa(b.cfg.WSPort)); err != nil {
			b.log.Warn("websocket channel unavailable", zap.Error(err))
			b.ws = nil
		}
	}

	b.initialized = true
	b.log.Info("bridge initialized",
		zap.String("shm", b.cfg.SHMName),
		zap.Int("snapshot_bytes", snapshot.Size()),
		zap.Int("broadcast_ms", b.cfg.BroadcastMS))
	return nil
}

// Tick runs one host update: decode telemetry, broadcast when due, drain
// and translate commands. It returns the encoded outgoing message stream
// and the message count. It never blocks beyond non-blocking channel
// offers and never propagates errors to the host.
func (b *Bridge) Tick(received []byte, dt float64) ([]byte, int) {
	if !b.initialized {
		return nil, 0
	}

	b.dec.Apply(received)
	b.maybeBroadcast()
	return b.drainCommands()
}

// maybeBroadcast builds the JSON document once and hands the same bytes
// to both fan-outs, rate-limited by the configured interval.
func (b *Bridge) maybeBroadcast() {
	clients := b.tcp.ClientCount()
	if b.ws != nil {
		clients += b.ws.ClientCount()
	}
	if clients == 0 {
		return
	}

	now := b.nowUS()
	interval := uint64(b.cfg.BroadcastMS) * 1000
	delta := now - b.lastBroadcastUS
	if b.lastBroadcastUS != 0 && delta < interval {
		return
	}
	if b.lastBroadcastUS != 0 && delta > 0 {
		b.broadcastHz = 1e6 / float64(delta)
	}
	b.lastBroadcastUS = now

	doc := b.builder.Build(b.store, b.broadcastHz)
	b.tcp.Broadcast(doc)
	if b.ws != nil {
		b.ws.Broadcast(doc)
	}
}

// drainCommands translates queued commands in FIFO order, the TCP queue
// before the WebSocket queue. Step controls are additionally applied to
// the local snapshot so readers see the change this tick instead of next.
func (b *Bridge) drainCommands() ([]byte, int) {
	payloads := b.tcpQueue.Drain()
	payloads = append(payloads, b.wsQueue.Drain()...)
	if len(payloads) == 0 {
		return nil, 0
	}

	var out []byte
	var steps []sdk.Message
	count := 0
	for _, payload := range payloads {
		msg, desc, ok := b.proc.Translate(payload)
		if !ok {
			continue
		}
		out = msg.AppendTo(out)
		count++
		if desc.IsStep() {
			steps = append(steps, msg)
		}
	}

	if len(steps) > 0 {
		b.store.BeginUpdate()
		for i := range steps {
			b.dec.ApplyMessage(&steps[i])
		}
		b.store.Commit(b.nowUS())
	}

	if count > 0 {
		b.log.Debug("commands translated", zap.Int("count", count))
	}
	return out, count
}

// Store exposes the snapshot store for the local harness and tests.
func (b *Bridge) Store() *snapshot.Store { return b.store }

// TCP returns the TCP server, or nil before Init.
func (b *Bridge) TCP() *tcpserver.Server { return b.tcp }

// WS returns the WebSocket server, or nil when disabled.
func (b *Bridge) WS() *wsserver.Server { return b.ws }

// Shutdown tears the bridge down in reverse order of Init. Idempotent.
func (b *Bridge) Shutdown() {
	if !b.initialized {
		return
	}
	b.initialized = false

	if b.ws != nil {
		b.ws.Stop()
		b.ws = nil
	}
	if b.tcp != nil {
		b.tcp.Stop()
		b.tcp = nil
	}
	if b.region != nil {
		_ = b.region.Close()
		b.region = nil
	}
	b.store = nil
	b.log.Info("bridge shut down")
}
