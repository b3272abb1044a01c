package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HsiangNianian/AMonItor/bridge/internal/route"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := resolveCmd()
	if len(args) > 0 && args[0] == "routes" {
		cmd = routesCmd()
		args = args[1:]
	}
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestResolveCommand(t *testing.T) {
	out, err := run(t, "tactics/list", "-p", "kpi_fake=foo_fake", "--param", "kpi=foo")
	require.NoError(t, err)
	assert.Equal(t, "bootstrap.php?session_id=SESSIONID&r=tactics&kpi=foo_fake#/?kpi=foo\n", out)
}

func TestResolveCommandSession(t *testing.T) {
	out, err := run(t, "email_campaigns/list", "--session", "abc")
	require.NoError(t, err)
	assert.Equal(t, "campaignmanager.php?session_id=abc&action=list\n", out)
}

func TestResolveCommandErrors(t *testing.T) {
	out, err := run(t, "invalid/pathname")
	require.ErrorIs(t, err, route.ErrUnknownTarget)
	assert.Contains(t, out, "Error 404: Unknown pathname")

	_, err = run(t, "program/edit", "-p", "novalue")
	assert.Error(t, err)
}

func TestRoutesCommand(t *testing.T) {
	out, err := run(t, "routes")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, route.Targets(), lines)
	assert.Contains(t, lines, "rti/report")
}
