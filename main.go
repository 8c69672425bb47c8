package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"liiga-teletext/api"
	"liiga-teletext/config"
	"liiga-teletext/teletext"
	"liiga-teletext/ui"
	"liiga-teletext/version"
)

type cliFlags struct {
	date               string
	once               bool
	compact            bool
	wide               bool
	disableLinks       bool
	debug              bool
	minRefreshInterval int
	logFile            string
	setLogFile         string
	clearLogFile       bool
	newAPIDomain       string
	listConfig         bool
	showVersion        bool
}

func main() {
	flags := &cliFlags{}

	rootCmd := &cobra.Command{
		Use:           "liiga-teletext",
		Short:         "Liiga results and live scores as teletext page 221",
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return validateFlags(flags)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), flags)
		},
	}

	rootCmd.Flags().StringVarP(&flags.date, "date", "d", "", "show games for a date (YYYY-MM-DD)")
	rootCmd.Flags().BoolVarP(&flags.once, "once", "o", false, "print a single frame to stdout and exit")
	rootCmd.Flags().BoolVarP(&flags.compact, "compact", "c", false, "compact display mode")
	rootCmd.Flags().BoolVarP(&flags.wide, "wide", "w", false, "wide two-column display mode")
	rootCmd.Flags().BoolVar(&flags.disableLinks, "disable-links", false, "disable video clip hyperlinks")
	rootCmd.Flags().BoolVar(&flags.debug, "debug", false, "log to stderr")
	rootCmd.Flags().IntVar(&flags.minRefreshInterval, "min-refresh-interval", 0, "minimum seconds between automatic refreshes")
	rootCmd.Flags().StringVar(&flags.logFile, "log-file", "", "log to this file for this run")
	rootCmd.Flags().StringVar(&flags.setLogFile, "set-log-file", "", "persist a log file path and exit")
	rootCmd.Flags().BoolVar(&flags.clearLogFile, "clear-log-file", false, "remove the persisted log file path and exit")
	rootCmd.Flags().StringVar(&flags.newAPIDomain, "config", "", "persist a new API domain and exit")
	rootCmd.Flags().BoolVar(&flags.listConfig, "list-config", false, "print the current configuration and exit")
	rootCmd.Flags().BoolVar(&flags.showVersion, "version", false, "print version information and exit")
	rootCmd.MarkFlagsMutuallyExclusive("compact", "wide")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func validateFlags(flags *cliFlags) error {
	if flags.date != "" {
		if _, err := time.Parse("2006-01-02", flags.date); err != nil {
			return fmt.Errorf("invalid --date %q, expected YYYY-MM-DD", flags.date)
		}
	}
	if flags.minRefreshInterval < 0 {
		return fmt.Errorf("--min-refresh-interval must be positive")
	}
	return nil
}

func run(ctx context.Context, flags *cliFlags) error {
	if flags.showVersion {
		return printVersion(ctx)
	}
	if handled, err := mutateConfig(flags); handled {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// First-run prompt, unless the environment made an explicit choice.
	if _, envSet := os.LookupEnv("LIIGA_API_DOMAIN"); !envSet && cfg.APIDomain == "" {
		cfg, err = config.PromptAPIDomain(os.Stdin, os.Stderr)
		if err != nil {
			return err
		}
	}

	logPath := cfg.LogFilePath
	if flags.logFile != "" {
		logPath = flags.logFile
	}
	logger := config.SetupLogger(logPath, flags.debug)
	logger.Info().Str("version", version.Version).Str("date", flags.date).Msg("starting")

	client := api.NewClient(cfg.APIDomain, time.Duration(cfg.HTTPTimeoutSeconds)*time.Second, logger)

	opts := ui.Options{
		Mode:               displayMode(flags),
		DisableVideoLinks:  flags.disableLinks,
		Date:               flags.date,
		MinRefreshInterval: time.Duration(flags.minRefreshInterval) * time.Second,
		FetchTimeout:       time.Duration(cfg.HTTPTimeoutSeconds) * time.Second,
		ShowCountdown:      cfg.HasAPIDomain(),
	}

	if flags.once {
		width := 80
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			width = w
		}
		return ui.PrintOnce(ctx, client, os.Stdout, width, opts, logger)
	}

	terminal, err := ui.OpenTerminal()
	if err != nil {
		return err
	}
	defer terminal.Restore()

	controller := ui.NewController(client, terminal.Screen(), logger, opts)
	return controller.Run(ctx)
}

func displayMode(flags *cliFlags) teletext.Mode {
	switch {
	case flags.compact:
		return teletext.ModeCompact
	case flags.wide:
		return teletext.ModeWide
	default:
		return teletext.ModeNormal
	}
}

// mutateConfig handles the flags that edit or print the persisted config
// instead of starting the display.
func mutateConfig(flags *cliFlags) (bool, error) {
	switch {
	case flags.setLogFile != "":
		return true, updateConfig(func(cfg *config.Config) {
			cfg.LogFilePath = flags.setLogFile
		})
	case flags.clearLogFile:
		return true, updateConfig(func(cfg *config.Config) {
			cfg.LogFilePath = ""
		})
	case flags.newAPIDomain != "":
		return true, updateConfig(func(cfg *config.Config) {
			cfg.APIDomain = config.NormalizeDomain(flags.newAPIDomain)
		})
	case flags.listConfig:
		cfg, err := config.Load()
		if err != nil {
			return true, err
		}
		path, _ := config.Path()
		fmt.Printf("config file:          %s\n", path)
		fmt.Printf("api_domain:           %s\n", cfg.APIDomain)
		fmt.Printf("log_file_path:        %s\n", cfg.LogFilePath)
		fmt.Printf("http_timeout_seconds: %d\n", cfg.HTTPTimeoutSeconds)
		return true, nil
	}
	return false, nil
}

func updateConfig(mutate func(*config.Config)) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	mutate(&cfg)
	if err := cfg.Save(); err != nil {
		return err
	}
	fmt.Println("Configuration updated.")
	return nil
}

func printVersion(ctx context.Context) error {
	fmt.Printf("liiga-teletext %s\n", version.Version)
	fmt.Println("SM-LIIGA 221 - Liiga results in your terminal")

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	latest, newer, err := version.CheckLatest(checkCtx, &http.Client{Timeout: 10 * time.Second})
	if err != nil {
		fmt.Printf("Could not check for updates: %v\n", err)
		return nil
	}
	if newer {
		fmt.Printf("A newer version %s is available.\n", latest)
	} else {
		fmt.Println("You are running the latest version.")
	}
	return nil
}
