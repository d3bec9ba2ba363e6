package wsserver

import (
	"bufio"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jlgabriel/Aerofly-FS4-Bridge/internal/command"
)

func startServer(t *testing.T) (*Server, *command.Queue) {
	t.Helper()
	q := command.NewQueue()
	s := New(q, zap.NewNop())
	require.NoError(t, s.Start("127.0.0.1:0"))
	t.Cleanup(s.Stop)
	return s, q
}

func waitForClients(t *testing.T, s *Server, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for s.ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, have %d", n, s.ClientCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestAcceptKeyRFCVector(t *testing.T) {
	// The worked example from RFC 6455 §1.3.
	assert.Equal(t, "s3pPLMBiTxaQ9kYGzzhZRbK+xOo=", acceptKey("dGhlIHNhbXBsZSBub25jZQ=="))
}

func TestHandshakeRawSocket(t *testing.T) {
	s, _ := startServer(t)

	conn, err := net.Dial("tcp", s.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	request := strings.Join([]string{
		"GET /telemetry HTTP/1.1",
		"Host: localhost",
		"Upgrade: websocket",
		"Connection: Upgrade",
		"Sec-WebSocket-Key: dGhlIHNhbXBsZSBub25jZQ==",
		"Sec-WebSocket-Version: 13",
		"", "",
	}, "\r\n")
	_, err = conn.Write([]byte(request))
	require.NoError(t, err)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	r := bufio.NewReader(conn)
	status, err := r.ReadString('\n')
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(status, "HTTP/1.1 101"), status)

	sawAccept := false
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		if line == "\r\n" {
			break
		}
		if strings.HasPrefix(strings.ToLower(line), "sec-websocket-accept:") {
			assert.Contains(t, line, "s3pPLMBiTxaQ9kYGzzhZRbK+xOo=")
			sawAccept = true
		}
	}
	assert.True(t, sawAccept, "response missing Sec-WebSocket-Accept")
}

func TestHandshakeRejectsPlainHTTP(t *testing.T) {
	s, _ := startServer(t)

	conn, err := net.Dial("tcp", s.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte("GET / HTTP/1.1\r\nHost: x\r\n\r\n"))
	require.NoError(t, err)

	// Server closes without upgrading.
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 64)
	n, _ := conn.Read(buf)
	assert.Zero(t, n)
	assert.Equal(t, 0, s.ClientCount())
}

func TestBroadcastToGorillaClient(t *testing.T) {
	s, _ := startServer(t)

	c, _, err := websocket.DefaultDialer.Dial("ws://"+s.Addr().String()+"/", nil)
	require.NoError(t, err)
	defer c.Close()
	waitForClients(t, s, 1)

	payload := []byte(`{"schema":"aerofly-bridge-telemetry"}` + "\n")
	s.Broadcast(payload)

	c.SetReadDeadline(time.Now().Add(2 * time.Second))
	kind, got, err := c.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.TextMessage, kind)
	assert.Equal(t, payload, got)
}

func TestClientTextFrameBecomesCommand(t *testing.T) {
	s, q := startServer(t)

	c, _, err := websocket.DefaultDialer.Dial("ws://"+s.Addr().String()+"/", nil)
	require.NoError(t, err)
	defer c.Close()
	waitForClients(t, s, 1)

	body := `{"variable":"Controls.Throttle","value":0.75}`
	require.NoError(t, c.WriteMessage(websocket.TextMessage, []byte(body)))

	deadline := time.Now().Add(2 * time.Second)
	for q.Len() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cmds := q.Drain()
	require.Len(t, cmds, 1)
	assert.Equal(t, body, string(cmds[0]))
}

func TestPingGetsPong(t *testing.T) {
	s, _ := startServer(t)

	c, _, err := websocket.DefaultDialer.Dial("ws://"+s.Addr().String()+"/", nil)
	require.NoError(t, err)
	defer c.Close()
	waitForClients(t, s, 1)

	pong := make(chan string, 1)
	c.SetPongHandler(func(data string) error {
		pong <- data
		return nil
	})
	require.NoError(t, c.WriteControl(websocket.PingMessage, []byte("hb"), time.Now().Add(time.Second)))

	// Pongs are only surfaced while reading; broadcast something to read.
	go func() {
		time.Sleep(50 * time.Millisecond)
		s.Broadcast([]byte("tick\n"))
	}()

	c.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = c.ReadMessage()
	require.NoError(t, err)

	select {
	case data := <-pong:
		assert.Equal(t, "hb", data)
	default:
		t.Fatal("no pong received")
	}
}

func TestUnmaskedClientFrameRejected(t *testing.T) {
	s, _ := startServer(t)

	conn, err := net.Dial("tcp", s.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	request := strings.Join([]string{
		"GET / HTTP/1.1",
		"Host: localhost",
		"Upgrade: websocket",
		"Connection: Upgrade",
		"Sec-WebSocket-Key: dGhlIHNhbXBsZSBub25jZQ==",
		"", "",
	}, "\r\n")
	_, err = conn.Write([]byte(request))
	require.NoError(t, err)

	// Consume the 101 response.
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	r := bufio.NewReader(conn)
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		if line == "\r\n" {
			break
		}
	}
	waitForClients(t, s, 1)

	// An unmasked text frame violates RFC 6455 for client frames.
	frame := []byte{0x81, 0x02, 'h', 'i'}
	_, err = conn.Write(frame)
	require.NoError(t, err)

	waitForClients(t, s, 0)
}

func TestPayloadLengthEncodings(t *testing.T) {
	small := appendFrame(nil, opcodeText, make([]byte, 125))
	assert.Equal(t, byte(125), small[1])

	medium := appendFrame(nil, opcodeText, make([]byte, 300))
	assert.Equal(t, byte(126), medium[1])
	assert.Equal(t, []byte{0x01, 0x2c}, medium[2:4])

	large := appendFrame(nil, opcodeText, make([]byte, 70000))
	assert.Equal(t, byte(127), large[1])
}

func TestStopIsIdempotent(t *testing.T) {
	s, _ := startServer(t)
	s.Stop()
	s.Stop()
}
