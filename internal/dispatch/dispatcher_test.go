package dispatch

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HsiangNianian/AMonItor/bridge/internal/handler"
	"github.com/HsiangNianian/AMonItor/bridge/internal/logger"
	"github.com/HsiangNianian/AMonItor/bridge/internal/protocol"
	"github.com/HsiangNianian/AMonItor/bridge/internal/route"
)

type recorder struct {
	event string
	got   []protocol.Message
	err   error
}

func (r *recorder) Event() string { return r.event }

func (r *recorder) HandleMessage(_ context.Context, msg protocol.Message) (*handler.Pending, error) {
	r.got = append(r.got, msg)
	if r.err != nil {
		return nil, r.err
	}
	return handler.Completed(handler.Outcome{}), nil
}

func TestNewRejectsDuplicateEvents(t *testing.T) {
	_, err := New(logger.Nop(), &recorder{event: "navigate"}, &recorder{event: "navigate"})
	assert.ErrorIs(t, err, ErrDuplicateHandler)
}

func TestDispatchRoutesByEvent(t *testing.T) {
	nav := &recorder{event: protocol.EventNavigate}
	refresh := &recorder{event: protocol.EventRefresh}
	d, err := New(logger.Nop(), nav, refresh)
	require.NoError(t, err)
	assert.True(t, d.Handles("refresh"))
	assert.False(t, d.Handles("resize"))

	p, err := d.Dispatch(context.Background(), protocol.Message{
		Event: protocol.EventNavigate,
		Data:  json.RawMessage(`{"target":"program/edit","params":{"program_id":318}}`),
	})
	require.NoError(t, err)
	require.NotNil(t, p)

	require.Len(t, nav.got, 1)
	assert.Empty(t, refresh.got)
	payload, ok := nav.got[0].Payload.(protocol.NavigatePayload)
	require.True(t, ok)
	assert.Equal(t, "program/edit", payload.Target)
	assert.Equal(t, "318", payload.Params["program_id"])
}

func TestDispatchIgnoresUnknownEvent(t *testing.T) {
	nav := &recorder{event: protocol.EventNavigate}
	d, err := New(logger.Nop(), nav)
	require.NoError(t, err)

	var p *handler.Pending
	assert.NotPanics(t, func() {
		p, err = d.Dispatch(context.Background(), protocol.Message{Event: "resize", Data: json.RawMessage(`{"h":1}`)})
	})
	assert.NoError(t, err)
	assert.Nil(t, p)
	assert.Empty(t, nav.got)
}

func TestDispatchRejectsMalformedPayload(t *testing.T) {
	nav := &recorder{event: protocol.EventNavigate}
	d, err := New(logger.Nop(), nav)
	require.NoError(t, err)

	_, err = d.Dispatch(context.Background(), protocol.Message{Event: protocol.EventNavigate, Data: json.RawMessage(`{"params":{}}`)})
	assert.ErrorIs(t, err, protocol.ErrMalformedMessage)
	assert.Empty(t, nav.got)
}

func TestDispatchPropagatesHandlerError(t *testing.T) {
	nav := &recorder{event: protocol.EventNavigate, err: route.ErrUnknownTarget}
	d, err := New(logger.Nop(), nav)
	require.NoError(t, err)

	_, err = d.Dispatch(context.Background(), protocol.Message{Event: protocol.EventNavigate, Data: json.RawMessage(`{"target":"invalid/pathname"}`)})
	assert.ErrorIs(t, err, route.ErrUnknownTarget)
}

func TestDispatchDoesNotWaitForPending(t *testing.T) {
	block := &blocking{}
	d, err := New(logger.Nop(), block)
	require.NoError(t, err)

	p, err := d.Dispatch(context.Background(), protocol.Message{Event: "slow"})
	require.NoError(t, err)
	select {
	case <-p.Done():
		t.Fatal("pending should still be open")
	default:
	}
}

type blocking struct{}

func (blocking) Event() string { return "slow" }

func (blocking) HandleMessage(context.Context, protocol.Message) (*handler.Pending, error) {
	return &handler.Pending{}, nil
}
