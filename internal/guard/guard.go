// Package guard asks the user before a navigation discards unsaved changes.
package guard

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/HsiangNianian/AMonItor/bridge/internal/metrics"
	"github.com/HsiangNianian/AMonItor/bridge/internal/protocol"
)

const defaultIntegrationID = "SUITE"

// UnloadState reports whether the host's unsaved changes tracking is active.
type UnloadState interface {
	Initialized(ctx context.Context) bool
}

// Dialog shows the confirmation UI and returns the user's answer.
type Dialog interface {
	ConfirmNavigation(ctx context.Context, req protocol.ConfirmRequest) (bool, error)
}

type Translator interface {
	Gettext(key string) string
}

type Sanitizer interface {
	Clean(s string) string
}

type identity struct{}

func (identity) Gettext(key string) string { return key }
func (identity) Clean(s string) string     { return s }

type Guard struct {
	state     UnloadState
	dialog    Dialog
	tr        Translator
	sanitizer Sanitizer
	logger    *zap.SugaredLogger
}

// New builds a guard. A nil translator or sanitizer passes strings through.
func New(state UnloadState, dialog Dialog, tr Translator, sanitizer Sanitizer, logger *zap.SugaredLogger) *Guard {
	if tr == nil {
		tr = identity{}
	}
	if sanitizer == nil {
		sanitizer = identity{}
	}
	return &Guard{
		state:     state,
		dialog:    dialog,
		tr:        tr,
		sanitizer: sanitizer,
		logger:    logger,
	}
}

func (g *Guard) RequiresConfirmation(ctx context.Context) bool {
	return g.state != nil && g.state.Initialized(ctx)
}

// Request merges the translated defaults with override. Non-empty override
// fields win and are stripped of markup.
func (g *Guard) Request(override *protocol.ConfirmOverride) protocol.ConfirmRequest {
	req := protocol.ConfirmRequest{
		OK:     g.tr.Gettext("Ok"),
		Cancel: g.tr.Gettext("Cancel"),
		Title:  g.tr.Gettext("Confirm navigation"),
		Body:   g.tr.Gettext("You have unsaved changes you will lose if you leave this page."),
		Source: protocol.ConfirmSource{IntegrationID: defaultIntegrationID},
	}
	if override == nil {
		return req
	}
	pick := func(dst *string, v string) {
		if v != "" {
			*dst = g.sanitizer.Clean(v)
		}
	}
	pick(&req.OK, override.OK)
	pick(&req.Cancel, override.Cancel)
	pick(&req.Title, override.Title)
	pick(&req.Body, override.Body)
	if override.Source != nil {
		pick(&req.Source.IntegrationID, override.Source.IntegrationID)
	}
	return req
}

// Confirm reports whether navigation may proceed. It blocks until the dialog
// answers. Any dialog failure counts as cancel.
func (g *Guard) Confirm(ctx context.Context, override *protocol.ConfirmOverride) (ok bool) {
	if !g.RequiresConfirmation(ctx) {
		return true
	}
	if g.dialog == nil {
		g.logger.Warnw("unsaved changes but no dialog available, treating as cancel")
		return false
	}

	started := time.Now()
	defer func() {
		if r := recover(); r != nil {
			g.logger.Errorw("confirmation dialog panicked", "panic", r)
			ok = false
		}
		answer := "cancel"
		if ok {
			answer = "ok"
		}
		metrics.ConfirmationDuration.WithLabelValues(answer).Observe(float64(time.Since(started).Milliseconds()))
	}()

	confirmed, err := g.dialog.ConfirmNavigation(ctx, g.Request(override))
	if err != nil {
		g.logger.Infow("confirmation dialog rejected", "error", err)
		return false
	}
	return confirmed
}
