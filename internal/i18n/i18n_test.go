package i18n

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HsiangNianian/AMonItor/bridge/internal/logger"
)

func TestBuiltinLocales(t *testing.T) {
	svc, err := NewBuiltin(logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, "Cancel", svc.Localizer("").Gettext("Cancel"))
	assert.Equal(t, "Abbrechen", svc.Localizer("de-DE,de;q=0.9").Gettext("Cancel"))
	assert.Equal(t, "Confirm navigation", svc.Localizer("fr").Gettext("Confirm navigation"))
}

func TestUnknownKeyFallsBackToKey(t *testing.T) {
	svc, err := NewBuiltin(logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, "Stay here", svc.Localizer("de").Gettext("Stay here"))
}

func TestNewServiceFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"hu.json":     {Data: []byte(`{"Cancel":"Mégse"}`)},
		"notes.txt":   {Data: []byte(`ignored`)},
		"xx-yy-.json": {Data: []byte(`{}`)},
	}
	svc, err := NewService(fsys, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, "Mégse", svc.Localizer("hu").Gettext("Cancel"))
}

func TestNewServiceRejectsBrokenLocale(t *testing.T) {
	fsys := fstest.MapFS{"de.json": {Data: []byte(`{`)}}
	_, err := NewService(fsys, logger.Nop())
	assert.Error(t, err)
}
