package transport

import (
	"errors"
	"fmt"
	"net"
	"sync"

	"go.uber.org/zap"
)

const maxFrameSize = 1024

// UDP carries frames as datagrams: one frame per packet, dropped packets
// dropped silently. A reader goroutine feeds an inbox channel so the poll
// loop's Recv stays non-blocking.
type UDP struct {
	logger *zap.Logger
	conn   *net.UDPConn
	inbox  chan Frame

	mu    sync.RWMutex
	peers map[string]*net.UDPAddr

	closeOnce sync.Once
}

// ListenUDP binds a datagram socket and starts the reader.
func ListenUDP(address string, logger *zap.Logger) (*UDP, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	addr, err := net.ResolveUDPAddr("udp", address)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", address, err)
	}
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", address, err)
	}

	t := &UDP{
		logger: logger,
		conn:   conn,
		inbox:  make(chan Frame, 256),
		peers:  make(map[string]*net.UDPAddr),
	}
	go t.readLoop()

	logger.Info("udp transport listening", zap.String("address", conn.LocalAddr().String()))
	return t, nil
}

func (t *UDP) readLoop() {
	buf := make([]byte, maxFrameSize)
	for {
		n, addr, err := t.conn.ReadFromUDP(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			t.logger.Warn("udp read failed", zap.Error(err))
			continue
		}

		key := addr.String()
		t.mu.Lock()
		t.peers[key] = addr
		t.mu.Unlock()

		payload := make([]byte, n)
		copy(payload, buf[:n])

		select {
		case t.inbox <- Frame{Addr: key, Payload: payload}:
		default:
			// Inbox full: the transport is allowed to drop frames.
			t.logger.Warn("udp inbox full, dropping frame", zap.String("addr", key))
		}
	}
}

// Recv returns the next pending inbound frame without blocking.
func (t *UDP) Recv() (Frame, bool) {
	select {
	case frame := <-t.inbox:
		return frame, true
	default:
		return Frame{}, false
	}
}

// Send writes one datagram to the client at addr.
func (t *UDP) Send(addr string, payload []byte) error {
	t.mu.RLock()
	peer := t.peers[addr]
	t.mu.RUnlock()

	if peer == nil {
		resolved, err := net.ResolveUDPAddr("udp", addr)
		if err != nil {
			return fmt.Errorf("resolve peer %s: %w", addr, err)
		}
		peer = resolved
		t.mu.Lock()
		t.peers[addr] = peer
		t.mu.Unlock()
	}

	if _, err := t.conn.WriteToUDP(payload, peer); err != nil {
		return fmt.Errorf("send to %s: %w", addr, err)
	}
	return nil
}

// LocalAddr returns the bound address, useful when listening on port 0.
func (t *UDP) LocalAddr() string {
	return t.conn.LocalAddr().String()
}

// Close shuts the socket down and stops the reader.
func (t *UDP) Close() error {
	var err error
	t.closeOnce.Do(func() {
		err = t.conn.Close()
	})
	return err
}
