package cli

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitCodeMapping(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, ExitError, ExitCode(fmt.Errorf("boom")))
	assert.Equal(t, ExitAccessDenied, ExitCode(ErrAccessDenied))
	assert.Equal(t, ExitAccessDenied, ExitCode(fmt.Errorf("%w: delete a tenant", ErrAccessDenied)))
}

func TestDispatchUnknownCommand(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	var buf bytes.Buffer
	app, err := NewApp(&buf)
	require.NoError(t, err)

	root := NewRootCommand(app)
	err = root.Execute([]string{"frobnicate"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestRootCommandTree(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	var buf bytes.Buffer
	app, err := NewApp(&buf)
	require.NoError(t, err)

	root := NewRootCommand(app)
	for _, name := range []string{
		"login", "logout", "whoami", "refresh-roles", "context",
		"tenants", "projects", "project-types", "providers",
		"members", "integrations", "files",
	} {
		assert.Contains(t, root.Subcommands, name)
	}
}
