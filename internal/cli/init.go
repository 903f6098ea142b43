package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newInitCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize pcbcore configuration and storage",
		Long:  "Create the configuration and data directories, write a default config.yaml\nif none exists, then initialize the board store.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, s)
		},
	}
}

func runInit(cmd *cobra.Command, s *session) error {
	dataDir, err := s.resolveDataDir()
	if err != nil {
		return sysError(fmt.Errorf("resolve data dir: %w", err))
	}

	if err := os.MkdirAll(s.configDir, 0o755); err != nil {
		return sysError(fmt.Errorf("create config directory: %w", err))
	}

	fc := s.formatter.Config()
	configPath := filepath.Join(s.configDir, configFileExt)
	if err := writeConfigIfMissing(configPath, configFile{
		Backend:   s.config.GetString(cfgKeyBackend),
		DataDir:   dataDir,
		Units:     fc.Units,
		Angles:    fc.Angles,
		Catalog:   s.config.GetString(cfgKeyCatalog),
		LogLevel:  s.config.GetString(cfgKeyLogLevel),
		LogFormat: s.config.GetString(cfgKeyLogFormat),
	}); err != nil {
		return sysError(fmt.Errorf("write config: %w", err))
	}

	// Attach then Detach creates the database and schema.
	store, err := s.openStore()
	if err != nil {
		return err
	}
	if err := store.Detach(); err != nil {
		return sysError(fmt.Errorf("finalize storage: %w", err))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "pcbcore initialized in %s\n", dataDir)
	return nil
}
