// Package dispatch routes integration messages to handlers by event name.
package dispatch

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/HsiangNianian/AMonItor/bridge/internal/handler"
	"github.com/HsiangNianian/AMonItor/bridge/internal/metrics"
	"github.com/HsiangNianian/AMonItor/bridge/internal/protocol"
)

var ErrDuplicateHandler = errors.New("duplicate handler")

type Dispatcher struct {
	handlers map[string]handler.Handler
	logger   *zap.SugaredLogger
}

// New registers handlers by their event. Two handlers for one event is an error.
func New(logger *zap.SugaredLogger, handlers ...handler.Handler) (*Dispatcher, error) {
	d := &Dispatcher{
		handlers: make(map[string]handler.Handler, len(handlers)),
		logger:   logger,
	}
	for _, h := range handlers {
		ev := h.Event()
		if _, ok := d.handlers[ev]; ok {
			return nil, fmt.Errorf("%w for event %q", ErrDuplicateHandler, ev)
		}
		d.handlers[ev] = h
	}
	return d, nil
}

func (d *Dispatcher) Handles(event string) bool {
	_, ok := d.handlers[event]
	return ok
}

// Dispatch hands msg to its handler without waiting for the handler's
// pending result. Messages for unregistered events are dropped silently since
// other listeners may share the transport. The returned Pending is nil when
// the message was dropped.
func (d *Dispatcher) Dispatch(ctx context.Context, msg protocol.Message) (*handler.Pending, error) {
	h, ok := d.handlers[msg.Event]
	if !ok {
		metrics.MessagesDispatched.WithLabelValues("unregistered", metrics.OutcomeIgnored).Inc()
		d.logger.Debugw("ignore message without handler", "event", msg.Event, "integration_instance_id", msg.Source.IntegrationInstanceID)
		return nil, nil
	}

	bound, err := protocol.Bind(msg)
	if err != nil {
		metrics.MessagesDispatched.WithLabelValues(msg.Event, metrics.OutcomeMalformed).Inc()
		return nil, err
	}

	pending, err := h.HandleMessage(ctx, bound)
	if err != nil {
		metrics.MessagesDispatched.WithLabelValues(msg.Event, metrics.OutcomeFailed).Inc()
		return nil, err
	}
	metrics.MessagesDispatched.WithLabelValues(msg.Event, metrics.OutcomeHandled).Inc()
	return pending, nil
}
