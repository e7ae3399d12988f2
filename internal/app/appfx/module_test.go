package appfx

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jacobduba/sd18-isu/cmd/cmdsfx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

func TestAppModule(t *testing.T) {
	// Test that all modules can be loaded together
	dbPath := filepath.Join(t.TempDir(), "test.db")

	var runner *cmdsfx.CommandRunner

	app := fx.New(
		Module,
		fx.NopLogger,
		fx.Supply(
			fx.Annotate(dbPath, fx.ResultTags(`name:"dbPath"`)),
			fx.Annotate("", fx.ResultTags(`name:"store"`)),
			fx.Annotate("local", fx.ResultTags(`name:"embedURL"`)),
			fx.Annotate("", fx.ResultTags(`name:"judgeURL"`)),
			fx.Annotate("", fx.ResultTags(`name:"judgeModel"`)),
			fx.Annotate("", fx.ResultTags(`name:"webAddr"`)),
		),
		fx.Populate(&runner),
	)

	ctx := context.Background()
	require.NoError(t, app.Start(ctx))
	defer func() {
		require.NoError(t, app.Stop(ctx))
	}()

	assert.NotNil(t, runner)
}

func TestNewAppWithConfig(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	app := NewAppWithConfig(dbPath, "memory", "local", "", "", "")

	ctx := context.Background()
	require.NoError(t, app.Start(ctx))
	require.NoError(t, app.Stop(ctx))
}
