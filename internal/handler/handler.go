// Package handler implements the actions integrations can request from the
// host page.
package handler

import (
	"context"

	"github.com/HsiangNianian/AMonItor/bridge/internal/protocol"
)

// Handler serves every inbound message whose event equals Event().
//
// HandleMessage returns synchronously with either an error (the request is
// rejected and nothing was sent) or a Pending that completes once the
// handler has finished its own response emission.
type Handler interface {
	Event() string
	HandleMessage(ctx context.Context, msg protocol.Message) (*Pending, error)
}

// Location is the host page's navigation surface.
type Location interface {
	Href() string
	SetHref(href string)
}

type Reloader interface {
	Reload()
}

// Transmitter delivers a correlated reply to the originating integration.
type Transmitter interface {
	MessageToService(instanceID int64, channel string, payload protocol.Response)
}

type Outcome struct {
	Navigated bool
	Href      string
}

// Pending is the deferred result of a handled message.
type Pending struct {
	done    chan struct{}
	outcome Outcome
}

func newPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

// Completed returns a Pending that is already done.
func Completed(o Outcome) *Pending {
	p := newPending()
	p.complete(o)
	return p
}

func (p *Pending) complete(o Outcome) {
	p.outcome = o
	close(p.done)
}

func (p *Pending) Done() <-chan struct{} { return p.done }

func (p *Pending) Wait(ctx context.Context) (Outcome, error) {
	select {
	case <-p.done:
		return p.outcome, nil
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	}
}
