package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/xyz-asif/trackback/internal/config"
	"github.com/xyz-asif/trackback/internal/models"
	"github.com/xyz-asif/trackback/internal/pkg/logger"
)

type rootFlags struct {
	configPath string
	mode       string
	dataPath   string
	backendURL string
	logLevel   string
	ephemeral  bool
}

// NewRootCommand builds the trackback command tree. in and out are the
// terminal streams; tests pass buffers.
func NewRootCommand(in io.Reader, out io.Writer) *cobra.Command {
	var flags rootFlags

	var tty *os.File
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		tty = f
	}

	// open merges file, env and flag settings and starts an App.
	open := func(cmd *cobra.Command) (*App, error) {
		cfg, err := config.LoadClient(flags.configPath)
		if err != nil {
			return nil, err
		}
		if cmd.Flags().Changed("mode") {
			cfg.Mode = flags.mode
		}
		if cmd.Flags().Changed("data") {
			cfg.DataPath = flags.dataPath
		}
		if cmd.Flags().Changed("backend-url") {
			cfg.BackendURL = flags.backendURL
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = flags.logLevel
		}

		log := logger.New(logger.ParseLevel(cfg.LogLevel))
		logger.SetDefault(log)

		return NewApp(cmd.Context(), cfg, Options{
			In:        in,
			Out:       out,
			TTY:       tty,
			Ephemeral: flags.ephemeral,
			Logger:    log,
		})
	}

	withApp := func(fn func(cmd *cobra.Command, a *App, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			a, err := open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			return fn(cmd, a, args)
		}
	}

	root := &cobra.Command{
		Use:   "trackback",
		Short: "Lost and found bulletin board",
		Long: `TrackBack keeps a board of lost and found items.

Run without a subcommand to start the interactive shell. Reports are kept
in a local SQLite file, or on a TrackBack API server in backend mode.`,
		SilenceUsage: true,
		RunE: withApp(func(cmd *cobra.Command, a *App, _ []string) error {
			fmt.Fprintln(out, "TrackBack. Type help for commands.")
			runREPL(cmd.Context(), a, a.status, a.prompt.in, out)
			return nil
		}),
	}

	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", config.DefaultClientConfigPath(), "Client config file")
	root.PersistentFlags().StringVar(&flags.mode, "mode", config.ModeLocal, "Persistence mode: local or backend")
	root.PersistentFlags().StringVar(&flags.dataPath, "data", "", "Local data file")
	root.PersistentFlags().StringVar(&flags.backendURL, "backend-url", "", "API base url, e.g. http://localhost:8080/api")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&flags.ephemeral, "ephemeral", false, "Keep state in memory only")

	var location string
	searchCmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search reports by name and location",
		RunE: withApp(func(_ *cobra.Command, a *App, args []string) error {
			return a.Search(strings.Join(args, " "), location)
		}),
	}
	searchCmd.Flags().StringVarP(&location, "location", "l", "", "Location contains")

	var historyLimit int
	historyCmd := &cobra.Command{
		Use:   "history <username>",
		Short: "Show a user's recent reports",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(_ *cobra.Command, a *App, args []string) error {
			return a.History(args[0], historyLimit)
		}),
	}
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of entries")

	var feedLimit int
	feedCmd := &cobra.Command{
		Use:   "feed",
		Short: "Show the most recent reports from everyone",
		RunE: withApp(func(_ *cobra.Command, a *App, _ []string) error {
			return a.Feed(feedLimit)
		}),
	}
	feedCmd.Flags().IntVarP(&feedLimit, "limit", "n", 25, "Number of reports")

	signupCmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		RunE: withApp(func(cmd *cobra.Command, a *App, _ []string) error {
			return a.Signup(cmd.Context())
		}),
	}

	reportCmd := &cobra.Command{
		Use:       "report <lost|found>",
		Short:     "Login and report an item",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(models.KindLost), string(models.KindFound)},
		RunE: withApp(func(cmd *cobra.Command, a *App, args []string) error {
			kind, err := models.ParseKind(args[0])
			if err != nil {
				return err
			}
			if err := a.Login(cmd.Context()); err != nil {
				return err
			}
			return a.Report(cmd.Context(), kind)
		}),
	}

	root.AddCommand(searchCmd, historyCmd, feedCmd, signupCmd, reportCmd)
	return root
}

// Execute runs the command tree against the process terminal.
func Execute(ctx context.Context) error {
	return NewRootCommand(os.Stdin, os.Stdout).ExecuteContext(ctx)
}
