package transport

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WSGateway serves the same text-frame protocol over websocket for clients
// that cannot speak datagrams. Each connection is assigned an opaque client
// ID used as its address; every websocket text message is one frame.
type WSGateway struct {
	logger   *zap.Logger
	server   *http.Server
	upgrader websocket.Upgrader
	inbox    chan Frame

	mu    sync.RWMutex
	conns map[string]*websocket.Conn
}

// NewWSGateway builds the gateway; Start must be called to begin serving.
func NewWSGateway(address string, logger *zap.Logger) *WSGateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &WSGateway{
		logger: logger,
		inbox:  make(chan Frame, 256),
		conns:  make(map[string]*websocket.Conn),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", g.handleWS)
	g.server = &http.Server{Addr: address, Handler: mux}
	return g
}

// Start serves until the gateway is closed. Run it in its own goroutine.
func (g *WSGateway) Start() error {
	g.logger.Info("websocket gateway listening", zap.String("address", g.server.Addr))
	if err := g.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (g *WSGateway) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	id := uuid.NewString()
	g.mu.Lock()
	g.conns[id] = conn
	g.mu.Unlock()

	g.logger.Info("websocket client connected",
		zap.String("client_id", id),
		zap.String("remote", r.RemoteAddr),
	)

	go g.readLoop(id, conn)
}

func (g *WSGateway) readLoop(id string, conn *websocket.Conn) {
	defer func() {
		g.mu.Lock()
		delete(g.conns, id)
		g.mu.Unlock()
		conn.Close()
		g.logger.Info("websocket client disconnected", zap.String("client_id", id))
	}()

	for {
		msgType, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		select {
		case g.inbox <- Frame{Addr: id, Payload: payload}:
		default:
			g.logger.Warn("websocket inbox full, dropping frame", zap.String("client_id", id))
		}
	}
}

// Recv returns the next pending inbound frame without blocking.
func (g *WSGateway) Recv() (Frame, bool) {
	select {
	case frame := <-g.inbox:
		return frame, true
	default:
		return Frame{}, false
	}
}

// Send writes one text frame to the identified client.
func (g *WSGateway) Send(addr string, payload []byte) error {
	g.mu.RLock()
	conn := g.conns[addr]
	g.mu.RUnlock()

	if conn == nil {
		return errors.New("no websocket client " + addr)
	}
	return conn.WriteMessage(websocket.TextMessage, payload)
}

// Close disconnects all clients and stops the HTTP server.
func (g *WSGateway) Close() error {
	g.mu.Lock()
	for id, conn := range g.conns {
		conn.Close()
		delete(g.conns, id)
	}
	g.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return g.server.Shutdown(ctx)
}
