// Package cli implements the pcbcore command-line interface.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/pcbcore/internal/i18n"
	"github.com/mesh-intelligence/pcbcore/internal/logging"
	"github.com/mesh-intelligence/pcbcore/internal/paths"
	"github.com/mesh-intelligence/pcbcore/pkg/sqlite"
	"github.com/mesh-intelligence/pcbcore/pkg/types"
	"github.com/mesh-intelligence/pcbcore/pkg/units"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	units     string
	angles    string
	jsonMode  bool
}

// session is resolved once per invocation, before the subcommand runs.
type session struct {
	flags     rootFlags
	configDir string
	config    *viper.Viper
	logger    *zap.Logger
	formatter *units.Formatter
	catalog   *i18n.Catalog
}

// NewRootCmd creates the top-level "pcbcore" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	// Replaced by the configured logger once config.yaml is read.
	s := &session{logger: logging.MustDefault()}

	root := &cobra.Command{
		Use:   "pcbcore",
		Short: "Board item model and unit formatting for PCB documents",
		Long: "pcbcore stores board documents, formats internal-unit geometry as\n" +
			"persisted decimal text and exports boards as item listings.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		return s.setup(root)
	}
	root.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		_ = s.logger.Sync()
	}

	pf := root.PersistentFlags()
	pf.StringVar(&s.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	pf.StringVar(&s.flags.dataDir, "data-dir", "", "data directory (default: platform data dir)")
	pf.StringVar(&s.flags.units, "units", "", "internal unit scale: nanometres or decimils")
	pf.StringVar(&s.flags.angles, "angles", "", "stored angle convention: tenths or degrees")
	pf.BoolVar(&s.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(s))
	root.AddCommand(newFormatCmd(s))
	root.AddCommand(newShapeCmd(s))
	root.AddCommand(newBoardCmd(s))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI with args and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
	}
	return exitCode(err)
}

// setup loads config.yaml and builds the logger, catalog and formatter the
// subcommands share.
func (s *session) setup(root *cobra.Command) error {
	configDir, err := paths.ResolveConfigDir(s.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}
	for key, flag := range map[string]string{cfgKeyUnits: "units", cfgKeyAngles: "angles"} {
		if err := v.BindPFlag(key, root.PersistentFlags().Lookup(flag)); err != nil {
			return sysError(fmt.Errorf("bind %s: %w", flag, err))
		}
	}
	s.configDir = configDir
	s.config = v

	logger, err := logging.NewLogger(logging.Config{
		Level:       v.GetString(cfgKeyLogLevel),
		Format:      v.GetString(cfgKeyLogFormat),
		Development: v.GetBool(cfgKeyDebug),
	})
	if err != nil {
		return sysError(fmt.Errorf("build logger: %w", err))
	}
	s.logger = logger

	catalog, err := loadCatalog(s.logger, configDir, v.GetString(cfgKeyCatalog))
	if err != nil {
		return userError(err)
	}
	s.catalog = catalog

	f, err := units.NewFormatter(types.FormatConfig{
		Units:  types.UnitScale(v.GetString(cfgKeyUnits)),
		Angles: types.AngleConvention(v.GetString(cfgKeyAngles)),
	})
	if err != nil {
		return userError(err)
	}
	s.formatter = f
	s.logger.Debug("session ready",
		zap.String("config_dir", configDir),
		zap.String("units", string(f.Config().Units)),
		zap.String("angles", string(f.Config().Angles)))
	return nil
}

// newArena returns an arena that reports to the session logger and
// translates labels through the session catalog.
func (s *session) newArena() *types.Arena {
	return types.NewArena(types.WithLogger(s.logger), types.WithTranslator(s.catalog))
}

// resolveDataDir applies flag > config.yaml > env > default.
func (s *session) resolveDataDir() (string, error) {
	return paths.ResolveDataDir(s.flags.dataDir, s.config.GetString(cfgKeyDataDir))
}

// openStore attaches the configured board store. The caller must defer
// Detach.
func (s *session) openStore() (types.BoardStore, error) {
	dataDir, err := s.resolveDataDir()
	if err != nil {
		return nil, sysError(fmt.Errorf("resolve data dir: %w", err))
	}
	cfg := types.Config{
		Backend: s.config.GetString(cfgKeyBackend),
		DataDir: dataDir,
	}
	if err := cfg.Validate(); err != nil {
		return nil, userError(fmt.Errorf("backend %q: %w", cfg.Backend, err))
	}

	store := sqlite.NewBackend(s.logger)
	if err := store.Attach(cfg); err != nil {
		return nil, sysError(fmt.Errorf("attach store: %w", err))
	}
	return store, nil
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError(fmt.Errorf("marshal JSON: %w", err))
	}
	fmt.Fprintln(w, string(out))
	return nil
}

// exitError carries the exit code a failed command should produce.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error { return &exitError{code: exitUserError, err: err} }

func sysError(err error) error { return &exitError{code: exitSysError, err: err} }

// exitCode maps an error from Execute to a process exit code. Errors that
// carry no code, such as argument validation failures, are user errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var e *exitError
	if errors.As(err, &e) {
		return e.code
	}
	return exitUserError
}
