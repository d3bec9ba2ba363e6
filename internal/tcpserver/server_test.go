package tcpserver

import (
	"bufio"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jlgabriel/Aerofly-FS4-Bridge/internal/command"
)

func startServer(t *testing.T) (*Server, *command.Queue) {
	t.Helper()
	q := command.NewQueue()
	s := New(q, zap.NewNop())
	require.NoError(t, s.Start("127.0.0.1:0", "127.0.0.1:0"))
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

func TestTelemetryBroadcast(t *testing.T) {
	s, _ := startServer(t)

	conn, err := net.Dial("tcp", s.TelemetryAddr().String())
	require.NoError(t, err)
	defer conn.Close()
	waitForClients(t, s, 1)

	s.Broadcast([]byte("{\"n\":1}\n"))
	s.Broadcast([]byte("{\"n\":2}\n"))

	r := bufio.NewReader(conn)
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	line, err := r.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "{\"n\":1}\n", line)
	line, err = r.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "{\"n\":2}\n", line)
}

func TestSlowClientDoesNotStallOthers(t *testing.T) {
	s, _ := startServer(t)

	slow, err := net.Dial("tcp", s.TelemetryAddr().String())
	require.NoError(t, err)
	defer slow.Close()
	fast, err := net.Dial("tcp", s.TelemetryAddr().String())
	require.NoError(t, err)
	defer fast.Close()
	waitForClients(t, s, 2)

	// The slow client never reads; keep broadcasting far beyond its
	// buffer depth. The fast client must still see the latest frames.
	payload := make([]byte, 4096)
	for i := range payload {
		payload[i] = 'x'
	}
	payload[len(payload)-1] = '\n'

	done := make(chan struct{})
	go func() {
		defer close(done)
		r := bufio.NewReader(fast)
		fast.SetReadDeadline(time.Now().Add(5 * time.Second))
		for i := 0; i < 50; i++ {
			if _, err := r.ReadString('\n'); err != nil {
				t.Errorf("fast client read %d: %v", i, err)
				return
			}
		}
	}()

	for i := 0; i < 500; i++ {
		s.Broadcast(payload)
		time.Sleep(time.Millisecond)
	}
	<-done
}

func TestClientEvictedOnClose(t *testing.T) {
	s, _ := startServer(t)

	conn, err := net.Dial("tcp", s.TelemetryAddr().String())
	require.NoError(t, err)
	waitForClients(t, s, 1)

	conn.Close()
	// The eviction happens on the next failed write.
	deadline := time.Now().Add(2 * time.Second)
	for s.ClientCount() != 0 {
		s.Broadcast([]byte("ping\n"))
		if time.Now().After(deadline) {
			t.Fatal("client not evicted after close")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestCommandOneShot(t *testing.T) {
	s, q := startServer(t)

	conn, err := net.Dial("tcp", s.CommandAddr().String())
	require.NoError(t, err)
	_, err = conn.Write([]byte(`{"variable":"Controls.Throttle","value":0.5}`))
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	deadline := time.Now().Add(2 * time.Second)
	for q.Len() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	cmds := q.Drain()
	require.Len(t, cmds, 1)
	assert.JSONEq(t, `{"variable":"Controls.Throttle","value":0.5}`, string(cmds[0]))
}

func TestCommandOrderPreserved(t *testing.T) {
	s, q := startServer(t)

	send := func(body string) {
		conn, err := net.Dial("tcp", s.CommandAddr().String())
		require.NoError(t, err)
		_, err = conn.Write([]byte(body))
		require.NoError(t, err)
		require.NoError(t, conn.Close())

		// Wait for this command to land before sending the next, so
		// arrival order is deterministic.
		want := q.Len() + 1
		deadline := time.Now().Add(2 * time.Second)
		for q.Len() < want && time.Now().Before(deadline) {
			time.Sleep(2 * time.Millisecond)
		}
	}

	send(`{"variable":"Controls.Throttle","value":0.1}`)
	send(`{"variable":"Controls.Throttle","value":0.2}`)
	send(`{"variable":"Controls.Throttle","value":0.3}`)

	cmds := q.Drain()
	require.Len(t, cmds, 3)
	assert.Contains(t, string(cmds[0]), "0.1")
	assert.Contains(t, string(cmds[1]), "0.2")
	assert.Contains(t, string(cmds[2]), "0.3")
}

func TestStopIsIdempotent(t *testing.T) {
	s, _ := startServer(t)
	s.Stop()
	s.Stop()
}
