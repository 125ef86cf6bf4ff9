package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/directory/internal/directory/app"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serve := newServeCmd()

	root := &cobra.Command{
		Use:   "directory",
		Short: "Identity directory and login/consent bridge",
		Long: `directory answers an OpenID Connect engine's account questions (count,
find, validate) from a local list, a remote directory service or its own
relational store, renders the engine's login and consent interactions, and
serves an admin console for roles, groups and assignments.

Configuration is layered: built-in defaults, the YAML file named by
DIRECTORY_CONFIG_FILE, the JSON document in DIRECTORY_CONFIG_JSON and
finally discrete environment variables such as PORT or DIRECTORY_BACKEND.`,
		Version:       app.BuildVersion,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          serve.RunE,
	}

	root.AddCommand(serve, newSeedCmd(), newMigrateCmd())
	return root
}

func loadConfig() (app.Config, error) {
	cfg, err := app.LoadConfig()
	if err != nil {
		return app.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
