// rdoc is a one-shot and interactive browser for rustdoc-json
// documentation: resolve a dotted item path against a priority chain of
// standard-library, workspace, and registry sources, and render it either
// as plain text for a single invocation or as a scrollable terminal UI.
//
// # File Index
//
// Entry Point & Global State:
//   - main.go       - Entry point, rootCmd, global flags, buildNavigator()
//
// One-shot Rendering:
//   - cmd_render.go - runLookup(), plain/tty output, --search/--list modes
//
// Interactive Mode:
//   - cmd_interactive.go - runInteractive(), worker goroutine wiring
//
// Cache Maintenance:
//   - cmd_cache.go  - cacheCmd, cacheStatsCmd, cacheClearCmd
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"rdoc/internal/docerr"
	"rdoc/internal/docsource"
	"rdoc/internal/graphload"
	"rdoc/internal/logging"
	"rdoc/internal/navigator"
	"rdoc/internal/rdocconfig"
	"rdoc/internal/remotecache"
)

var (
	flagInteractive bool
	flagPlain       bool
	flagSearch      string
	flagList        bool
	flagSources     []string
	flagTheme       string
	flagNoStd       bool
	flagOffline     bool
	flagVerbose     bool

	cfg    rdocconfig.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "rdoc [path]",
	Short: "Browse rustdoc-json documentation",
	Long: `rdoc resolves a dotted item path (e.g. "alloc::vec::Vec" or
"serde::Deserialize") against the standard library, the current
workspace, and a crates.io-shaped registry, in that priority order,
and displays the matching item.

Run with a path for one-shot output (styled on a terminal, plain text
otherwise or with --plain), -i for an interactive
scrollable browser, or --search/--list to find an item by name.`,
	Args: cobra.MaximumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = rdocconfig.Load(rdocconfig.DefaultPath())
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if flagOffline {
			cfg.Offline = true
		}
		if flagTheme != "" {
			cfg.Theme = flagTheme
		}
		if err := logging.Initialize(rdocconfig.DefaultRoot(), cfg.Logging); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to initialize logging: %v\n", err)
		}

		zapConfig := zap.NewProductionConfig()
		if flagVerbose {
			zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zapConfig.Build()
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.CloseAll()
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		nav := buildNavigator()
		var err error
		switch {
		case flagList:
			err = runList(nav)
		case flagSearch != "":
			err = runSearch(nav, flagSearch)
		case len(args) == 1 && flagInteractive:
			err = runInteractive(nav, args[0])
		case len(args) == 1:
			err = runLookup(nav, args[0])
		default:
			return cmd.Help()
		}
		return renderError(err)
	},
}

func init() {
	rootCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "open the item in an interactive scrollable browser")
	rootCmd.Flags().BoolVar(&flagPlain, "plain", false, "force undecorated plain-text output, even on a TTY")
	rootCmd.Flags().StringVar(&flagSearch, "search", "", "search for an item by name across available crates")
	rootCmd.Flags().BoolVar(&flagList, "list", false, "list crates available from every enabled source")
	rootCmd.Flags().StringSliceVar(&flagSources, "source", nil, "restrict lookups to these sources (std, local, remote)")
	rootCmd.Flags().StringVar(&flagTheme, "theme", "", "interactive color theme (dark, light); overrides the config file")
	rootCmd.Flags().BoolVar(&flagNoStd, "no-std", false, "don't consult the standard library source")
	rootCmd.Flags().BoolVar(&flagOffline, "offline", false, "don't consult the remote registry/docs host")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log debug-level diagnostics for this invocation to stderr")

	rootCmd.AddCommand(cacheCmd)
}

// buildNavigator assembles the Std/Local/Remote source chain per the
// config's source priority, --no-std, --offline, and --source overrides
// (§4.C/§4.D).
func buildNavigator() *navigator.Navigator {
	loader := graphload.FS{}
	wd, _ := os.Getwd()

	std := &docsource.Std{ToolchainDir: toolchainDir(), Loader: loader}
	local := &docsource.Local{Root: wd, Loader: loader}
	remote := &docsource.Remote{
		Offline: cfg.Offline || flagOffline,
		Client: &remotecache.Client{
			RegistryHost: "https://" + cfg.RegistryHost,
			DocsHost:     "https://" + cfg.DocsHost,
			Fetcher:      &remotecache.HTTPFetcher{},
			Cache:        &remotecache.DiskCache{Root: cacheRoot(), Blob: remotecache.OSBlobStore{}},
		},
	}
	logger.Debug("std source", zap.Bool("available", std.Available()), zap.String("toolchain_dir", std.ToolchainDir))
	logger.Debug("remote source", zap.Bool("available", remote.Available()), zap.Bool("offline", remote.Offline))

	all := map[string]docsource.Source{"std": std, "local": local, "remote": remote}
	priority := cfg.SourcePriority
	if len(flagSources) > 0 {
		priority = flagSources
	}

	var sources []docsource.Source
	for _, name := range priority {
		if flagNoStd && name == "std" {
			continue
		}
		if src, ok := all[name]; ok {
			sources = append(sources, src)
		}
	}
	logger.Debug("navigator source chain built", zap.Strings("priority", priority), zap.Int("count", len(sources)))
	return navigator.New(sources...)
}

// toolchainDir locates a rustup-like toolchain sysroot via RUSTUP_HOME,
// falling back to "" (Std unavailable) when unset (§6 Environment).
func toolchainDir() string {
	if home := os.Getenv("RUSTUP_HOME"); home != "" {
		return home
	}
	return ""
}

func cacheRoot() string {
	return filepath.Join(rdocconfig.DefaultRoot(), "cache")
}

// renderError prints err and returns an *exitError carrying its mapped
// exit code (§7), so main can exit with the right status without cobra
// re-printing the message itself.
func renderError(err error) error {
	if err == nil {
		return nil
	}
	logger.Debug("command failed", zap.Error(err), zap.Int("exit_code", docerr.ExitCode(err)))
	fmt.Fprintln(os.Stderr, "rdoc:", err)
	return &exitError{code: docerr.ExitCode(err)}
}

// exitError carries an exit code through cobra's Execute.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return "" }

func main() {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	if err := rootCmd.Execute(); err != nil {
		if ee, ok := err.(*exitError); ok {
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
