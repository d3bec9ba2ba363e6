// Package tcpserver provides the two plain-TCP endpoints: a telemetry
// stream of line-delimited JSON documents and a one-shot-per-connection
// command port.
package tcpserver

import (
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jlgabriel/Aerofly-FS4-Bridge/internal/command"
)

const (
	// commandReadLimit caps one command connection's payload.
	commandReadLimit = 64 * 1024
	// commandReadTimeout bounds how long a command connection may dribble.
	commandReadTimeout = 2 * time.Second
	// sendQueueDepth is the per-client frame buffer. A slow client skips
	// frames once it is full; telemetry is lossy by design.
	sendQueueDepth = 8
)

// client is one telemetry subscriber.
type client struct {
	id   string
	conn net.Conn
	send chan []byte
}

// Server owns the telemetry and command listeners and the set of
// connected telemetry clients. Broadcast is called from the host tick and
// never blocks on a client.
type Server struct {
	log   *zap.Logger
	queue *command.Queue

	mu          sync.Mutex
	clients     map[string]*client
	telemetryLn net.Listener
	commandLn   net.Listener

	stopOnce sync.Once
	stopped  chan struct{}
	wg       sync.WaitGroup
}

// New creates a stopped server. Commands received on the command port are
// pushed to the given queue.
func New(queue *command.Queue, log *zap.Logger) *Server {
	return &Server{
		log:     log,
		queue:   queue,
		clients: make(map[string]*client),
		stopped: make(chan struct{}),
	}
}

// Start binds the telemetry and command listeners. The two are
// independent: a failure on one is logged and the other keeps running.
// Start returns an error only when neither listener could bind.
func (s *Server) Start(telemetryAddr, commandAddr string) error {
	var firstErr error

	if ln, err := net.Listen("tcp", telemetryAddr); err != nil {
		s.log.Warn("telemetry listener failed", zap.String("addr", telemetryAddr), zap.Error(err))
		firstErr = err
	} else {
		s.telemetryLn = ln
		s.wg.Add(1)
		go s.acceptTelemetry(ln)
		s.log.Info("telemetry listener started", zap.String("addr", ln.Addr().String()))
	}

	if ln, err := net.Listen("tcp", commandAddr); err != nil {
		s.log.Warn("command listener failed", zap.String("addr", commandAddr), zap.Error(err))
		if firstErr != nil {
			return fmt.Errorf("tcp server: no listener bound: %w", firstErr)
		}
	} else {
		s.commandLn = ln
		s.wg.Add(1)
		go s.acceptCommands(ln)
		s.log.Info("command listener started", zap.String("addr", ln.Addr().String()))
	}

	if s.telemetryLn == nil && s.commandLn == nil {
		return fmt.Errorf("tcp server: no listener bound: %w", firstErr)
	}
	return nil
}

// TelemetryAddr returns the bound telemetry address, or nil.
func (s *Server) TelemetryAddr() net.Addr {
	if s.telemetryLn == nil {
		return nil
	}
	return s.telemetryLn.Addr()
}

// CommandAddr returns the bound command address, or nil.
func (s *Server) CommandAddr() net.Addr {
	if s.commandLn == nil {
		return nil
	}
	return s.commandLn.Addr()
}

func (s *Server) acceptTelemetry(ln net.Listener) {
	defer s.wg.Done()
	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-s.stopped:
				return
			default:
			}
			s.log.Debug("telemetry accept error", zap.Error(err))
			return
		}

		if tc, ok := conn.(*net.TCPConn); ok {
			_ = tc.SetNoDelay(true)
			_ = tc.SetKeepAlive(true)
		}

		c := &client{
			id:   uuid.NewString(),
			conn: conn,
			send: make(chan []byte, sendQueueDepth),
		}
		s.mu.Lock()
		s.clients[c.id] = c
		total := len(s.clients)
		s.mu.Unlock()

		s.wg.Add(1)
		go s.writePump(c)
		s.log.Info("telemetry client connected",
			zap.String("client", c.id),
			zap.String("remote", conn.RemoteAddr().String()),
			zap.Int("total", total))
	}
}

// writePump drains a client's frame buffer onto the socket. Any write
// error evicts the client.
func (s *Server) writePump(c *client) {
	defer s.wg.Done()
	defer s.drop(c)

	for {
		select {
		case <-s.stopped:
			return
		case frame, ok := <-c.send:
			if !ok {
				return
			}
			if _, err := c.conn.Write(frame); err != nil {
				s.log.Debug("telemetry write failed",
					zap.String("client", c.id), zap.Error(err))
				return
			}
		}
	}
}

func (s *Server) drop(c *client) {
	_ = c.conn.Close()
	s.mu.Lock()
	_, present := s.clients[c.id]
	delete(s.clients, c.id)
	total := len(s.clients)
	s.mu.Unlock()
	if present {
		s.log.Info("telemetry client removed",
			zap.String("client", c.id), zap.Int("total", total))
	}
}

// Broadcast offers the frame to every connected client without blocking.
// Clients whose buffers are full skip this frame.
func (s *Server) Broadcast(frame []byte) {
	s.mu.Lock()
	targets := make([]*client, 0, len(s.clients))
	for _, c := range s.clients {
		targets = append(targets, c)
	}
	s.mu.Unlock()

	for _, c := range targets {
		select {
		case c.send <- frame:
		default:
			// Slow consumer; frame skipped.
		}
	}
}

// ClientCount returns the number of connected telemetry clients.
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) acceptCommands(ln net.Listener) {
	defer s.wg.Done()
	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-s.stopped:
				return
			default:
			}
			s.log.Debug("command accept error", zap.Error(err))
			return
		}
		s.wg.Add(1)
		go s.readCommand(conn)
	}
}

// readCommand implements the one-shot protocol: read the whole payload
// until EOF (bounded in size and time), enqueue it, close.
func (s *Server) readCommand(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(commandReadTimeout))
	payload, err := io.ReadAll(io.LimitReader(conn, commandReadLimit))
	if err != nil && len(payload) == 0 {
		s.log.Debug("command read failed", zap.Error(err))
		return
	}
	if len(payload) == 0 {
		return
	}
	s.queue.Push(payload)
	s.log.Debug("command received",
		zap.String("remote", conn.RemoteAddr().String()),
		zap.Int("bytes", len(payload)))
}

// Stop closes the listeners and all client connections and waits for the
// server goroutines. Safe to call multiple times.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopped)
		if s.telemetryLn != nil {
			_ = s.telemetryLn.Close()
		}
		if s.commandLn != nil {
			_ = s.commandLn.Close()
		}
		s.mu.Lock()
		for _, c := range s.clients {
			_ = c.conn.Close()
		}
		s.mu.Unlock()
		s.wg.Wait()
		s.log.Info("tcp server stopped")
	})
}
