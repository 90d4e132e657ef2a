package cmd

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/barysiuk/skillmgr/internal/core"
)

// deps holds shared dependencies for CLI commands.
type deps struct {
	manager *core.Manager
}

// newDeps creates shared dependencies. Called lazily by commands that need them.
func newDeps() (*deps, error) {
	return newDepsWith(core.ManagerOptions{})
}

// newDepsWith lets a command override parts of the manager, such as the launcher.
func newDepsWith(opts core.ManagerOptions) (*deps, error) {
	opts.RootOverride = viper.GetString("root")

	manager, err := core.NewManager(opts)
	if err != nil {
		return nil, fmt.Errorf("initializing: %w", err)
	}
	return &deps{manager: manager}, nil
}

// stagingOnly returns a launcher that starts nothing, for --no-launch.
func stagingOnly() core.Launcher {
	return core.LauncherFunc(func(string) (int, error) { return 0, nil })
}
