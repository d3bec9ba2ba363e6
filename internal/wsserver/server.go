// Package wsserver is the RFC 6455 fan-out channel. The handshake and
// frame codec are implemented here directly; both are part of the
// bridge's published wire contract.
package wsserver

import (
	"bytes"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jlgabriel/Aerofly-FS4-Bridge/internal/command"
)

// sendQueueDepth is the per-client frame buffer, same lossy semantics as
// the TCP telemetry channel.
const sendQueueDepth = 8

// wsClient is one connected, upgraded peer. send carries fully encoded
// frames; the write pump only copies bytes to the socket.
type wsClient struct {
	id   string
	conn net.Conn
	send chan []byte
}

// Server accepts WebSocket clients, broadcasts telemetry text frames, and
// forwards client text frames into the command queue.
type Server struct {
	log   *zap.Logger
	queue *command.Queue

	mu      sync.Mutex
	clients map[string]*wsClient
	ln      net.Listener

	stopOnce sync.Once
	stopped  chan struct{}
	wg       sync.WaitGroup
}

// New creates a stopped server pushing client commands to queue.
func New(queue *command.Queue, log *zap.Logger) *Server {
	return &Server{
		log:     log,
		queue:   queue,
		clients: make(map[string]*wsClient),
		stopped: make(chan struct{}),
	}
}

// Start binds the listener and begins accepting clients.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("ws server: listen %s: %w", addr, err)
	}
	s.ln = ln
	s.wg.Add(1)
	go s.acceptLoop(ln)
	s.log.Info("websocket listener started", zap.String("addr", ln.Addr().String()))
	return nil
}

// Addr returns the bound listener address, or nil.
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

func (s *Server) acceptLoop(ln net.Listener) {
	defer s.wg.Done()
	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-s.stopped:
				return
			default:
			}
			s.log.Debug("websocket accept error", zap.Error(err))
			return
		}
		s.wg.Add(1)
		go s.serveConn(conn)
	}
}

// serveConn upgrades the connection, registers the client and runs its
// read loop until the peer closes or errors.
func (s *Server) serveConn(conn net.Conn) {
	defer s.wg.Done()

	rest, err := handshake(conn)
	if err != nil {
		s.log.Debug("websocket handshake failed",
			zap.String("remote", conn.RemoteAddr().String()), zap.Error(err))
		_ = conn.Close()
		return
	}

	c := &wsClient{
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
	s.log.Info("websocket client connected",
		zap.String("client", c.id),
		zap.String("remote", conn.RemoteAddr().String()),
		zap.Int("total", total))

	s.readLoop(c, rest)
}

// readLoop parses client frames: text feeds the command queue, ping gets
// a pong with the same payload, close or any protocol error ends the
// session. Binary and continuation frames are tolerated and ignored.
func (s *Server) readLoop(c *wsClient, rest []byte) {
	defer s.drop(c)

	var r io.Reader = c.conn
	if len(rest) > 0 {
		r = io.MultiReader(bytes.NewReader(rest), c.conn)
	}

	for {
		opcode, _, payload, err := readFrame(r)
		if err != nil {
			s.log.Debug("websocket read ended",
				zap.String("client", c.id), zap.Error(err))
			return
		}

		switch opcode {
		case opcodeText:
			s.queue.Push(payload)
		case opcodePing:
			s.offer(c, appendFrame(nil, opcodePong, payload))
		case opcodeClose:
			s.offer(c, appendFrame(nil, opcodeClose, nil))
			return
		case opcodeBinary, opcodeContinuation, opcodePong:
			// Tolerated; single-frame text is the supported command path.
		}
	}
}

func (s *Server) writePump(c *wsClient) {
	defer s.wg.Done()
	defer func() { _ = c.conn.Close() }()

	for {
		select {
		case <-s.stopped:
			return
		case frame, ok := <-c.send:
			if !ok {
				return
			}
			if _, err := c.conn.Write(frame); err != nil {
				s.log.Debug("websocket write failed",
					zap.String("client", c.id), zap.Error(err))
				return
			}
		}
	}
}

// offer places a frame on the client's buffer without blocking.
func (s *Server) offer(c *wsClient, frame []byte) {
	select {
	case c.send <- frame:
	default:
	}
}

func (s *Server) drop(c *wsClient) {
	_ = c.conn.Close()
	s.mu.Lock()
	_, present := s.clients[c.id]
	delete(s.clients, c.id)
	total := len(s.clients)
	s.mu.Unlock()
	if present {
		s.log.Info("websocket client removed",
			zap.String("client", c.id), zap.Int("total", total))
	}
}

// Broadcast frames the payload once as an unmasked text frame and offers
// it to every client. Slow clients skip the frame.
func (s *Server) Broadcast(payload []byte) {
	s.mu.Lock()
	targets := make([]*wsClient, 0, len(s.clients))
	for _, c := range s.clients {
		targets = append(targets, c)
	}
	s.mu.Unlock()

	if len(targets) == 0 {
		return
	}

	frame := appendFrame(make([]byte, 0, len(payload)+10), opcodeText, payload)
	for _, c := range targets {
		s.offer(c, frame)
	}
}

// ClientCount returns the number of upgraded clients.
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Stop closes the listener and every client and waits for the server
// goroutines. Safe to call multiple times.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopped)
		if s.ln != nil {
			_ = s.ln.Close()
		}
		s.mu.Lock()
		for _, c := range s.clients {
			_ = c.conn.Close()
		}
		s.mu.Unlock()
		s.wg.Wait()
		s.log.Info("websocket server stopped")
	})
}
