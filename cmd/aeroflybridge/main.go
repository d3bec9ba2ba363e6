// Command aeroflybridge builds the bridge as a c-shared library the
// simulator host loads. The exported entry points match the Aerofly FS4
// external DLL convention:
//
//	go build -buildmode=c-shared -o AeroflyBridge.dll ./cmd/aeroflybridge
package main

/*
#include <stdlib.h>
*/
import "C"

import (
	"sync"
	"unsafe"

	"go.uber.org/zap"

	"github.com/jlgabriel/Aerofly-FS4-Bridge/internal/bridge"
	"github.com/jlgabriel/Aerofly-FS4-Bridge/internal/config"
	"github.com/jlgabriel/Aerofly-FS4-Bridge/internal/logging"
	"github.com/jlgabriel/Aerofly-FS4-Bridge/internal/sdk"
)

// interfaceVersion is the host SDK's expected DLL interface version.
const interfaceVersion = 2

// configFile is looked up relative to the simulator's working directory.
const configFile = "aerofly_bridge.yml"

// The host ABI is plain C entry points, so one guarded global is
// unavoidable. It is populated in Init, cleared in Shutdown, and every
// entry point checks it.
var global struct {
	mu     sync.Mutex
	bridge *bridge.Bridge
	log    *zap.Logger
}

//export Aerofly_FS_4_External_DLL_GetInterfaceVersion
func Aerofly_FS_4_External_DLL_GetInterfaceVersion() C.int {
	return interfaceVersion
}

//export Aerofly_FS_4_External_DLL_Init
func Aerofly_FS_4_External_DLL_Init() C.int {
	global.mu.Lock()
	defer global.mu.Unlock()

	if global.bridge != nil {
		return 1
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		cfg = config.Default()
	}
	log, err := logging.Build(cfg.LogLevel, cfg.LogDir)
	if err != nil {
		log = zap.NewNop()
	}

	br := bridge.New(cfg, log)
	if err := br.Init(); err != nil {
		log.Error("bridge init failed", zap.Error(err))
		return 0
	}

	global.bridge = br
	global.log = log
	return 1
}

//export Aerofly_FS_4_External_DLL_Update
func Aerofly_FS_4_External_DLL_Update(
	dt C.double,
	received *C.char, receivedLen C.int,
	sent *C.char, sentCapacity C.int,
	sentLen *C.int, sentCount *C.int,
) {
	if sentLen != nil {
		*sentLen = 0
	}
	if sentCount != nil {
		*sentCount = 0
	}

	global.mu.Lock()
	br := global.bridge
	log := global.log
	global.mu.Unlock()
	if br == nil {
		return
	}

	// The tick must never panic into the host.
	defer func() {
		if r := recover(); r != nil && log != nil {
			log.Error("tick panic recovered", zap.Any("panic", r))
		}
	}()

	var in []byte
	if received != nil && receivedLen > 0 {
		in = C.GoBytes(unsafe.Pointer(received), receivedLen)
	}

	out, _ := br.Tick(in, float64(dt))
	if len(out) == 0 || sent == nil || sentCapacity <= 0 {
		return
	}

	// Copy whole messages only, up to the host's capacity.
	fit, count := truncateToCapacity(out, int(sentCapacity))
	dst := unsafe.Slice((*byte)(unsafe.Pointer(sent)), int(sentCapacity))
	copy(dst, fit)
	if sentLen != nil {
		*sentLen = C.int(len(fit))
	}
	if sentCount != nil {
		*sentCount = C.int(count)
	}
}

//export Aerofly_FS_4_External_DLL_Shutdown
func Aerofly_FS_4_External_DLL_Shutdown() {
	global.mu.Lock()
	br := global.bridge
	log := global.log
	global.bridge = nil
	global.log = nil
	global.mu.Unlock()

	if br != nil {
		br.Shutdown()
	}
	if log != nil {
		_ = log.Sync()
	}
}

// truncateToCapacity walks the encoded stream and keeps the longest
// prefix of whole messages fitting in capacity bytes.
func truncateToCapacity(stream []byte, capacity int) ([]byte, int) {
	if len(stream) <= capacity {
		return stream, countMessages(stream)
	}
	fit := 0
	count := 0
	for fit < len(stream) {
		_, n, err := sdk.ReadMessage(stream[fit:])
		if err != nil || fit+n > capacity {
			break
		}
		fit += n
		count++
	}
	return stream[:fit], count
}

func countMessages(stream []byte) int {
	count := 0
	off := 0
	for off < len(stream) {
		_, n, err := sdk.ReadMessage(stream[off:])
		if err != nil {
			break
		}
		off += n
		count++
	}
	return count
}

func main() {}
