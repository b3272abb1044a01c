package handler

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/HsiangNianian/AMonItor/bridge/internal/metrics"
	"github.com/HsiangNianian/AMonItor/bridge/internal/protocol"
	"github.com/HsiangNianian/AMonItor/bridge/internal/route"
)

type Resolver interface {
	Resolve(target string, params map[string]string) (route.URLParts, error)
}

// Confirmer is satisfied by *guard.Guard.
type Confirmer interface {
	RequiresConfirmation(ctx context.Context) bool
	Confirm(ctx context.Context, override *protocol.ConfirmOverride) bool
}

type Navigate struct {
	location    Location
	transmitter Transmitter
	guard       Confirmer
	resolver    Resolver
	logger      *zap.SugaredLogger
}

func NewNavigate(location Location, transmitter Transmitter, guard Confirmer, resolver Resolver, logger *zap.SugaredLogger) *Navigate {
	return &Navigate{
		location:    location,
		transmitter: transmitter,
		guard:       guard,
		resolver:    resolver,
		logger:      logger,
	}
}

func (n *Navigate) Event() string { return protocol.EventNavigate }

// HandleMessage resolves the target before anything else, so an unknown
// target fails synchronously with route.ErrUnknownTarget and no response is
// sent. When the user declines the confirmation nothing is navigated and no
// response is sent either; the Pending completes with Navigated false.
func (n *Navigate) HandleMessage(ctx context.Context, msg protocol.Message) (*Pending, error) {
	p, err := protocol.NavigateFrom(msg)
	if err != nil {
		metrics.Navigations.WithLabelValues(metrics.ResultInvalid).Inc()
		return nil, err
	}

	parts, err := n.resolver.Resolve(p.Target, p.Params)
	if err != nil {
		if errors.Is(err, route.ErrUnknownTarget) {
			metrics.Navigations.WithLabelValues(metrics.ResultUnknownTarget).Inc()
		} else {
			metrics.Navigations.WithLabelValues(metrics.ResultInvalid).Inc()
		}
		return nil, err
	}
	href := parts.String()

	if !n.guard.RequiresConfirmation(ctx) {
		return Completed(n.navigate(msg, p, href)), nil
	}

	pending := newPending()
	go func() {
		if !n.guard.Confirm(ctx, p.Confirm) {
			metrics.Navigations.WithLabelValues(metrics.ResultDeclined).Inc()
			n.logger.Infow("navigation declined", "target", p.Target, "integration_instance_id", msg.Source.IntegrationInstanceID)
			pending.complete(Outcome{Href: href})
			return
		}
		pending.complete(n.navigate(msg, p, href))
	}()
	return pending, nil
}

func (n *Navigate) navigate(msg protocol.Message, p protocol.NavigatePayload, href string) Outcome {
	from := n.location.Href()
	n.location.SetHref(href)
	n.transmitter.MessageToService(
		msg.Source.IntegrationInstanceID,
		protocol.ResponseChannel(protocol.EventNavigate),
		protocol.Response{ID: p.EventID, Success: true},
	)
	metrics.Navigations.WithLabelValues(metrics.ResultNavigated).Inc()
	n.logger.Infow("navigated", "target", p.Target, "from", from, "to", href, "integration_instance_id", msg.Source.IntegrationInstanceID)
	return Outcome{Navigated: true, Href: href}
}
