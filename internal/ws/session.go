package ws

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/HsiangNianian/AMonItor/bridge/internal/dispatch"
	"github.com/HsiangNianian/AMonItor/bridge/internal/guard"
	"github.com/HsiangNianian/AMonItor/bridge/internal/handler"
	"github.com/HsiangNianian/AMonItor/bridge/internal/protocol"
	"github.com/HsiangNianian/AMonItor/bridge/internal/route"
	"github.com/HsiangNianian/AMonItor/bridge/internal/sanitize"
)

// hostSession is one connected host page. It provides every host capability
// the handlers it dispatches to need.
type hostSession struct {
	id     string
	ctx    context.Context
	hub    *Hub
	client *clientConn
	logger *zap.SugaredLogger

	dispatcher *dispatch.Dispatcher

	hrefMu sync.RWMutex
	href   string

	dialogMu sync.Mutex
	dialogs  map[string]chan bool
}

func newHostSession(ctx context.Context, h *Hub, client *clientConn, hello protocol.HelloPayload) (*hostSession, error) {
	s := &hostSession{
		id:      uuid.NewString(),
		ctx:     ctx,
		hub:     h,
		client:  client,
		href:    hello.Href,
		dialogs: make(map[string]chan bool),
	}
	s.logger = h.logger.With("session_id", s.id)

	if err := h.store.SetLocation(ctx, s.id, hello.Href, h.ttl); err != nil {
		return nil, err
	}
	if err := h.store.SetUnloadInitialized(ctx, s.id, hello.UnloadInitialized, h.ttl); err != nil {
		return nil, err
	}

	var tr guard.Translator
	if h.i18n != nil {
		tr = h.i18n.Localizer(hello.Lang)
	}
	g := guard.New(s, s, tr, sanitize.Text{}, s.logger)

	d, err := dispatch.New(s.logger,
		handler.NewNavigate(s, s, g, route.NewResolver(hello.SessionID), s.logger),
		handler.NewRefresh(s),
	)
	if err != nil {
		return nil, err
	}
	s.dispatcher = d

	s.send(protocol.TypeHello, protocol.HelloPayload{SessionID: s.id, Href: hello.Href, UnloadInitialized: hello.UnloadInitialized})
	return s, nil
}

func (s *hostSession) read() {
	for {
		var env protocol.HostEnvelope
		if err := s.client.conn.ReadJSON(&env); err != nil {
			s.logger.Debugw("recv host->bridge failed", "error", err)
			return
		}
		s.logger.Debugw("recv host->bridge", "type", env.Type, "timestamp", env.Timestamp)

		switch env.Type {
		case protocol.TypeIntegrationMessage:
			s.handleIntegrationMessage(env.Payload)
		case protocol.TypeLocationChanged:
			var p protocol.LocationPayload
			if err := json.Unmarshal(env.Payload, &p); err != nil {
				s.sendError("BAD_FRAME", err.Error())
				continue
			}
			s.storeHref(p.Href)
		case protocol.TypeUnloadState:
			var p protocol.UnloadStatePayload
			if err := json.Unmarshal(env.Payload, &p); err != nil {
				s.sendError("BAD_FRAME", err.Error())
				continue
			}
			if err := s.hub.store.SetUnloadInitialized(s.ctx, s.id, p.Initialized, s.hub.ttl); err != nil {
				s.logger.Errorw("store unload state failed", "error", err)
			}
		case protocol.TypeDialogResult:
			var p protocol.DialogResultPayload
			if err := json.Unmarshal(env.Payload, &p); err != nil {
				s.sendError("BAD_FRAME", err.Error())
				continue
			}
			s.resolveDialog(p.RequestID, p.Confirmed)
		default:
			s.logger.Debugw("ignore host frame", "type", env.Type)
		}
	}
}

func (s *hostSession) handleIntegrationMessage(raw json.RawMessage) {
	var p protocol.IntegrationMessagePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		s.sendError("MALFORMED_MESSAGE", err.Error())
		return
	}
	msg, err := protocol.ParseMessage(p.Message)
	if err != nil {
		s.sendError("MALFORMED_MESSAGE", err.Error())
		return
	}

	if _, err := s.dispatcher.Dispatch(s.ctx, msg); err != nil {
		code := "DISPATCH_FAILED"
		switch {
		case errors.Is(err, route.ErrUnknownTarget):
			code = "UNKNOWN_TARGET"
		case errors.Is(err, route.ErrMissingParam):
			code = "MISSING_PARAM"
		case errors.Is(err, protocol.ErrMalformedMessage):
			code = "MALFORMED_MESSAGE"
		}
		s.logger.Warnw("dispatch failed", "event", msg.Event, "integration_instance_id", msg.Source.IntegrationInstanceID, "error", err)
		s.sendError(code, err.Error())
	}
}

func (s *hostSession) Href() string {
	href, err := s.hub.store.GetLocation(s.ctx, s.id)
	if err == nil && href != "" {
		return href
	}
	s.hrefMu.RLock()
	defer s.hrefMu.RUnlock()
	return s.href
}

func (s *hostSession) SetHref(href string) {
	s.storeHref(href)
	s.send(protocol.TypeLocationAssign, protocol.LocationPayload{Href: href})
}

func (s *hostSession) storeHref(href string) {
	s.hrefMu.Lock()
	s.href = href
	s.hrefMu.Unlock()
	if err := s.hub.store.SetLocation(s.ctx, s.id, href, s.hub.ttl); err != nil {
		s.logger.Errorw("store location failed", "error", err)
	}
}

func (s *hostSession) Reload() {
	s.send(protocol.TypeLocationReload, struct{}{})
}

func (s *hostSession) MessageToService(instanceID int64, channel string, payload protocol.Response) {
	s.send(protocol.TypeIntegrationResponse, protocol.IntegrationResponsePayload{
		IntegrationInstanceID: instanceID,
		Channel:               channel,
		Payload:               payload,
	})
}

func (s *hostSession) Initialized(ctx context.Context) bool {
	ok, err := s.hub.store.UnloadInitialized(ctx, s.id)
	if err != nil {
		s.logger.Errorw("read unload state failed", "error", err)
		return false
	}
	return ok
}

// ConfirmNavigation asks the host page to show the dialog and waits for the
// matching dialog.result frame.
func (s *hostSession) ConfirmNavigation(ctx context.Context, req protocol.ConfirmRequest) (bool, error) {
	id := uuid.NewString()
	ch := make(chan bool, 1)

	s.dialogMu.Lock()
	s.dialogs[id] = ch
	s.dialogMu.Unlock()
	defer func() {
		s.dialogMu.Lock()
		delete(s.dialogs, id)
		s.dialogMu.Unlock()
	}()

	if err := s.client.WriteJSON(envelope(s.id, protocol.TypeDialogConfirm, protocol.DialogConfirmPayload{RequestID: id, Request: req})); err != nil {
		return false, err
	}

	select {
	case ok := <-ch:
		return ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

func (s *hostSession) resolveDialog(id string, confirmed bool) {
	s.dialogMu.Lock()
	ch, ok := s.dialogs[id]
	s.dialogMu.Unlock()
	if !ok {
		s.logger.Debugw("dialog result without pending request", "request_id", id)
		return
	}
	select {
	case ch <- confirmed:
	default:
	}
}

func (s *hostSession) send(typ string, payload any) {
	env := envelope(s.id, typ, payload)
	if err := s.client.WriteJSON(env); err != nil {
		s.logger.Warnw("send bridge->host failed", "type", typ, "error", err)
		return
	}
	s.logger.Debugw("send bridge->host", "type", typ)
}

func (s *hostSession) sendError(code, message string) {
	s.send(protocol.TypeError, protocol.ErrorPayload{Code: code, Message: message})
}
