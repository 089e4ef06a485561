package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextSetUseList(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var buf bytes.Buffer
	app, err := NewApp(&buf)
	require.NoError(t, err)
	root := NewRootCommand(app)

	require.NoError(t, root.Execute([]string{"context", "set", "-api-url", "https://api.prod.example.com", "prod"}))
	require.NoError(t, root.Execute([]string{"context", "set", "-api-url", "https://api.dev.example.com", "dev"}))
	require.NoError(t, root.Execute([]string{"context", "use", "dev"}))

	// A fresh App reloads the saved file.
	buf.Reset()
	app2, err := NewApp(&buf)
	require.NoError(t, err)
	root2 := NewRootCommand(app2)
	require.NoError(t, root2.Execute([]string{"context", "list"}))

	out := buf.String()
	assert.Contains(t, out, "prod")
	assert.Contains(t, out, "dev")
	assert.Equal(t, "dev", app2.contexts.CurrentContext)
}

func TestContextUseUnknownFails(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var buf bytes.Buffer
	app, err := NewApp(&buf)
	require.NoError(t, err)
	root := NewRootCommand(app)

	err = root.Execute([]string{"context", "use", "ghost"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown context")
}

func TestContextAppliesToConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("MWAP_API_URL", "")

	var buf bytes.Buffer
	app, err := NewApp(&buf)
	require.NoError(t, err)
	root := NewRootCommand(app)
	require.NoError(t, root.Execute([]string{"context", "set",
		"-api-url", "https://api.prod.example.com",
		"-issuer-url", "https://issuer.example.com",
		"-client-id", "mwapctl", "prod"}))

	app2, err := NewApp(&buf)
	require.NoError(t, err)
	assert.Equal(t, "https://api.prod.example.com", app2.cfg.API.BaseURL)
	assert.Equal(t, "https://issuer.example.com", app2.cfg.OIDC.IssuerURL)
}
