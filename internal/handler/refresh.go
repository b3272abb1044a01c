package handler

import (
	"context"

	"github.com/HsiangNianian/AMonItor/bridge/internal/protocol"
)

// Refresh reloads the host page. It never answers.
type Refresh struct {
	reloader Reloader
}

func NewRefresh(reloader Reloader) *Refresh {
	return &Refresh{reloader: reloader}
}

func (r *Refresh) Event() string { return protocol.EventRefresh }

func (r *Refresh) HandleMessage(context.Context, protocol.Message) (*Pending, error) {
	r.reloader.Reload()
	return Completed(Outcome{}), nil
}
