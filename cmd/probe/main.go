// Package main provides the probe command, which runs the browser suite
// against a live site and exits non-zero when any case fails.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	appconfig "github.com/entrhq/probe/pkg/config"
	"github.com/entrhq/probe/pkg/logging"
	"github.com/entrhq/probe/pkg/runner"
)

const version = "0.1.0"

// CLIConfig holds command-line configuration
type CLIConfig struct {
	ConfigFile  string
	Browser     string
	Headless    bool
	Run         string
	OutputDir   string
	Verbosity   string
	Timeout     time.Duration
	Install     bool
	Maximize    bool
	ShowVersion bool

	// set records which flags were given explicitly
	set map[string]bool
}

func main() {
	cliConfig := parseFlags(flag.CommandLine, os.Args[1:])

	if cliConfig.ShowVersion {
		fmt.Printf("probe v%s\n", version)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n\nInterrupted, closing the browser...")
		cancel()
	}()

	if err := run(ctx, cliConfig); err != nil {
		cancel()
		if !errors.Is(err, runner.ErrCasesFailed) && !errors.Is(err, runner.ErrSuiteAborted) {
			log.Printf("probe: %v", err)
		}
		os.Exit(1)
	}
	cancel()
}

// parseFlags parses args into a CLIConfig
func parseFlags(fs *flag.FlagSet, args []string) *CLIConfig {
	config := &CLIConfig{set: make(map[string]bool)}

	fs.StringVar(&config.ConfigFile, "config", "", "Path to run configuration file (YAML)")
	fs.StringVar(&config.Browser, "browser", "", "Browser engine: chromium, firefox or webkit")
	fs.BoolVar(&config.Headless, "headless", true, "Run the browser without a window")
	fs.StringVar(&config.Run, "run", "", "Only run cases whose name matches this glob")
	fs.StringVar(&config.OutputDir, "output", "", "Directory for report.json and summary.md")
	fs.StringVar(&config.Verbosity, "verbosity", "", "Console verbosity: quiet, normal, verbose or debug")
	fs.DurationVar(&config.Timeout, "timeout", 0, "Page navigation and action timeout")
	fs.BoolVar(&config.Install, "install", false, "Download the Playwright driver and browser before running")
	fs.BoolVar(&config.Maximize, "maximize", false, "Maximize the browser window (headed runs only)")
	fs.BoolVar(&config.ShowVersion, "version", false, "Show version and exit")

	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "probe - browser end-to-end suite runner\n\n")
		fmt.Fprintf(out, "Usage: probe [options]\n\n")
		fmt.Fprintf(out, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(out, "\nExamples:\n")
		fmt.Fprintf(out, "  # Run the default suite headless in chromium\n")
		fmt.Fprintf(out, "  probe\n\n")
		fmt.Fprintf(out, "  # Watch the run in firefox\n")
		fmt.Fprintf(out, "  probe -browser firefox -headless=false -maximize\n\n")
		fmt.Fprintf(out, "  # Run with a config file, installing browsers first\n")
		fmt.Fprintf(out, "  probe -config probe.yaml -install\n\n")
	}

	// ExitOnError handles parse failures for the command line set
	_ = fs.Parse(args)
	fs.Visit(func(f *flag.Flag) {
		config.set[f.Name] = true
	})
	return config
}

// run executes the configured suite
func run(ctx context.Context, cliConfig *CLIConfig) error {
	runConfig, err := loadConfig(cliConfig)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if initErr := appconfig.Initialize(""); initErr != nil {
		return fmt.Errorf("failed to initialize configuration: %w", initErr)
	}

	runLogger, err := logging.NewLogger("suite")
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer runLogger.Close()
	runLogger.SetLevel(runLogLevel(runConfig.Logging.Verbosity))

	executor, err := runner.NewExecutor(runConfig, runner.WithRunLogger(runLogger))
	if err != nil {
		return fmt.Errorf("failed to create executor: %w", err)
	}

	if path := runLogger.LogPath(); path != "" {
		log.Printf("Logging to %s", path)
	}

	_, err = executor.Run(ctx)
	return err
}

// loadConfig reads the run file, if any, and applies flag overrides
func loadConfig(cliConfig *CLIConfig) (*runner.Config, error) {
	config := runner.DefaultConfig()
	if cliConfig.ConfigFile != "" {
		loaded, err := runner.LoadConfig(cliConfig.ConfigFile)
		if err != nil {
			return nil, err
		}
		config = loaded
	}

	applyFlags(config, cliConfig)
	return config, nil
}

// applyFlags overrides config with every flag given on the command line
func applyFlags(config *runner.Config, cliConfig *CLIConfig) {
	if cliConfig.set["browser"] {
		config.Browser.Engine = cliConfig.Browser
	}
	if cliConfig.set["headless"] {
		headless := cliConfig.Headless
		config.Browser.Headless = &headless
	}
	if cliConfig.set["run"] {
		config.Run = cliConfig.Run
	}
	if cliConfig.set["output"] {
		config.Artifacts.Enabled = true
		config.Artifacts.OutputDir = cliConfig.OutputDir
	}
	if cliConfig.set["verbosity"] {
		config.Logging.Verbosity = cliConfig.Verbosity
	}
	if cliConfig.set["timeout"] {
		config.Browser.Timeout = cliConfig.Timeout
	}
	if cliConfig.set["install"] {
		install := cliConfig.Install
		config.Browser.Install = &install
	}
	if cliConfig.set["maximize"] {
		maximize := cliConfig.Maximize
		config.Browser.Maximize = &maximize
	}
}

// runLogLevel maps console verbosity to the run log's level; the log file
// only takes debug entries when the console does too.
func runLogLevel(verbosity string) logging.Level {
	if level, err := runner.ParseLogLevel(verbosity); err == nil && level >= runner.LogLevelDebug {
		return logging.LevelDebug
	}
	return logging.LevelInfo
}
