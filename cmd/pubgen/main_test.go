package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/pubgen"
)

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("pubgen"))
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)
	return &cli, kctx
}

func TestBuildIsDefaultCommand(t *testing.T) {
	cli, kctx := parse(t)
	assert.Equal(t, "build", kctx.Command())
	assert.Equal(t, "pubgen.yaml", cli.Config)
}

func TestServeFlags(t *testing.T) {
	t.Setenv("PUBGEN_ADDR", ":9000")
	cli, kctx := parse(t, "serve", "--debounce", "1s", "--no-watch")
	assert.Equal(t, "serve", kctx.Command())
	assert.Equal(t, ":9000", cli.Serve.Addr)
	assert.Equal(t, time.Second, cli.Serve.Debounce)
	assert.True(t, cli.Serve.NoWatch)
}

func TestServeDefaultDebounce(t *testing.T) {
	cli, _ := parse(t, "serve")
	assert.Equal(t, pubgen.DefaultDebounce, cli.Serve.Debounce)
}

func TestNewCommandScaffoldsProject(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "myblog")
	_, kctx := parse(t, "new", dir)
	require.NoError(t, kctx.Run())

	for _, rel := range []string{
		"pubgen.yaml",
		".env.example",
		".gitignore",
		"src/content/en/config.yaml",
		"src/static/img/logo.png",
	} {
		_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel)))
		assert.NoError(t, err, rel)
	}

	cfg, err := pubgen.LoadBuildConfig(filepath.Join(dir, "pubgen.yaml"))
	require.NoError(t, err)
	assert.NoError(t, cfg.Validate())
}
