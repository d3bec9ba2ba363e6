// Command bridgesim drives the bridge with a synthetic simulator so the
// network channels, the shared-memory region and the command path can be
// exercised without Aerofly. It ticks at 50 Hz and flies a lazy circle
// near Seattle.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jlgabriel/Aerofly-FS4-Bridge/internal/bridge"
	"github.com/jlgabriel/Aerofly-FS4-Bridge/internal/config"
	"github.com/jlgabriel/Aerofly-FS4-Bridge/internal/logging"
	"github.com/jlgabriel/Aerofly-FS4-Bridge/internal/sdk"
)

func main() {
	configPath := flag.String("config", "aerofly_bridge.yml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.Build(cfg.LogLevel, cfg.LogDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	br := bridge.New(cfg, log)
	if err := br.Init(); err != nil {
		log.Fatal("bridge init failed", zap.Error(err))
	}
	defer br.Shutdown()

	log.Info("bridgesim running",
		zap.Int("tcp_port", cfg.TCPPort),
		zap.Int("command_port", cfg.CommandPort),
		zap.Int("ws_port", cfg.WSPort),
		zap.Bool("ws_enable", cfg.WSEnable))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()

	sim := newFlight()
	for {
		select {
		case sig := <-sigCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			return
		case <-ticker.C:
			stream := sim.advance(0.02)
			if out, n := br.Tick(stream, 0.02); n > 0 {
				logCommands(log, out)
			}
		}
	}
}

// flight is the toy aircraft state feeding the bridge.
type flight struct {
	t        float64
	lat, lon float64
	altitude float64
	heading  float64
	buf      []byte
}

func newFlight() *flight {
	return &flight{
		lat:      47.4979 * math.Pi / 180,
		lon:      -122.2079 * math.Pi / 180,
		altitude: 1066.8,
		heading:  math.Pi / 2,
	}
}

func msg(name string, v float64) sdk.Message {
	return sdk.NewDoubleMessage(sdk.MessageHash(name), sdk.FlagValue, v)
}

// advance moves the aircraft and encodes one tick's telemetry stream.
func (f *flight) advance(dt float64) []byte {
	f.t += dt
	f.heading = math.Mod(f.heading+0.02*dt, 2*math.Pi)
	f.lat += 3e-7 * math.Cos(f.heading)
	f.lon += 3e-7 * math.Sin(f.heading)
	f.altitude = 1066.8 + 150*math.Sin(f.t/30)

	groundSpeed := 61.8 + 2*math.Sin(f.t/7)
	vs := 150.0 / 30 * math.Cos(f.t/30)

	msgs := []sdk.Message{
		msg("Aircraft.Latitude", f.lat),
		msg("Aircraft.Longitude", f.lon),
		msg("Aircraft.Altitude", f.altitude),
		msg("Aircraft.Height", f.altitude-120),
		msg("Aircraft.Pitch", 0.03*math.Sin(f.t/5)),
		msg("Aircraft.Bank", 0.08*math.Sin(f.t/11)),
		msg("Aircraft.TrueHeading", f.heading),
		msg("Aircraft.MagneticHeading", math.Mod(f.heading+0.28, 2*math.Pi)),
		msg("Aircraft.IndicatedAirspeed", groundSpeed-3),
		msg("Aircraft.GroundSpeed", groundSpeed),
		msg("Aircraft.VerticalSpeed", vs),
		msg("Aircraft.OnGround", 0),
		msg("Aircraft.EngineRunning1", 1),
		msg("Aircraft.EngineThrottle1", 0.65),
		msg("Controls.Throttle", 0.65),
		msg("Navigation.NAV1Frequency", 110.50e6),
		msg("Communication.COM1Frequency", 122.80e6),
		sdk.NewVector3dMessage(sdk.MessageHash("Aircraft.Velocity"), sdk.FlagValue,
			sdk.Vector3{X: groundSpeed * math.Sin(f.heading), Y: groundSpeed * math.Cos(f.heading), Z: vs}),
		sdk.NewStringMessage(sdk.MessageHash("Aircraft.Name"), sdk.FlagValue, []byte("C172")),
		sdk.NewStringMessage(sdk.MessageHash("Aircraft.NearestAirportIdentifier"), sdk.FlagValue, []byte("KRNT")),
	}

	f.buf = f.buf[:0]
	for i := range msgs {
		f.buf = msgs[i].AppendTo(f.buf)
	}
	return f.buf
}

// logCommands decodes the translated output stream for visibility.
func logCommands(log *zap.Logger, stream []byte) {
	off := 0
	for off < len(stream) {
		m, size, err := sdk.ReadMessage(stream[off:])
		if err != nil {
			return
		}
		off += size
		log.Info("command translated",
			zap.Uint64("hash", m.Hash),
			zap.String("flag", m.Flag.String()),
			zap.Float64("value", m.GetDouble()))
	}
}
