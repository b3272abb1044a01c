package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/HsiangNianian/AMonItor/bridge/internal/i18n"
	"github.com/HsiangNianian/AMonItor/bridge/internal/metrics"
	"github.com/HsiangNianian/AMonItor/bridge/internal/protocol"
	"github.com/HsiangNianian/AMonItor/bridge/internal/store"
)

const helloTimeout = 10 * time.Second

type clientConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *clientConn) WriteJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

type Options struct {
	AuthToken      string
	AllowedOrigins []string
	TTL            time.Duration
}

// Hub accepts host page connections and runs one session per page.
type Hub struct {
	store     store.Store
	i18n      *i18n.Service
	logger    *zap.SugaredLogger
	authToken string
	ttl       time.Duration

	upgrader websocket.Upgrader

	sessMu   sync.RWMutex
	sessions map[string]*hostSession
}

func NewHub(st store.Store, tr *i18n.Service, opts Options, logger *zap.SugaredLogger) *Hub {
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	allowed := make(map[string]struct{}, len(opts.AllowedOrigins))
	for _, o := range opts.AllowedOrigins {
		allowed[o] = struct{}{}
	}
	return &Hub{
		store:     st,
		i18n:      tr,
		logger:    logger,
		authToken: opts.AuthToken,
		ttl:       opts.TTL,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				if len(allowed) == 0 {
					return true
				}
				_, ok := allowed[r.Header.Get("Origin")]
				return ok
			},
		},
		sessions: make(map[string]*hostSession),
	}
}

func (h *Hub) SessionCount() int {
	h.sessMu.RLock()
	defer h.sessMu.RUnlock()
	return len(h.sessions)
}

func (h *Hub) HandleHost(w http.ResponseWriter, r *http.Request) {
	if h.authToken != "" && r.Header.Get("Authorization") != "Bearer "+h.authToken {
		h.logger.Warnw("host unauthorized", "remote", r.RemoteAddr)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warnw("upgrade host ws failed", "error", err)
		return
	}
	client := &clientConn{conn: conn}
	defer func() { _ = conn.Close() }()

	hello, err := h.readHello(client)
	if err != nil {
		h.logger.Warnw("host handshake failed", "remote", r.RemoteAddr, "error", err)
		_ = client.WriteJSON(errorEnvelope("", "BAD_HELLO", err.Error()))
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	s, err := newHostSession(ctx, h, client, hello)
	if err != nil {
		h.logger.Errorw("create host session failed", "error", err)
		return
	}

	h.sessMu.Lock()
	h.sessions[s.id] = s
	count := len(h.sessions)
	h.sessMu.Unlock()
	metrics.ActiveSessions.Inc()
	h.logger.Infow("host connected", "session_id", s.id, "remote", r.RemoteAddr, "active_sessions", count)

	defer func() {
		h.sessMu.Lock()
		delete(h.sessions, s.id)
		count := len(h.sessions)
		h.sessMu.Unlock()
		metrics.ActiveSessions.Dec()
		if err := h.store.Forget(context.Background(), s.id); err != nil {
			h.logger.Warnw("forget session state failed", "session_id", s.id, "error", err)
		}
		h.logger.Infow("host disconnected", "session_id", s.id, "active_sessions", count)
	}()

	s.read()
}

func (h *Hub) readHello(client *clientConn) (protocol.HelloPayload, error) {
	_ = client.conn.SetReadDeadline(time.Now().Add(helloTimeout))
	defer func() { _ = client.conn.SetReadDeadline(time.Time{}) }()

	var env protocol.HostEnvelope
	if err := client.conn.ReadJSON(&env); err != nil {
		return protocol.HelloPayload{}, err
	}
	if env.Type != protocol.TypeHello {
		return protocol.HelloPayload{}, errors.New("first frame must be hello")
	}
	var hello protocol.HelloPayload
	if err := json.Unmarshal(env.Payload, &hello); err != nil {
		return protocol.HelloPayload{}, err
	}
	if hello.SessionID == "" {
		return protocol.HelloPayload{}, errors.New("hello without session_id")
	}
	return hello, nil
}

func mustJSON(v any) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}

func envelope(sessionID, typ string, payload any) protocol.HostEnvelope {
	return protocol.HostEnvelope{
		Type:      typ,
		SessionID: sessionID,
		Timestamp: time.Now().UnixMilli(),
		Payload:   mustJSON(payload),
	}
}

func errorEnvelope(sessionID, code, message string) protocol.HostEnvelope {
	return envelope(sessionID, protocol.TypeError, protocol.ErrorPayload{Code: code, Message: message})
}
