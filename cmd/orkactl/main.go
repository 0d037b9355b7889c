package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cuemby/orka/pkg/client"
	"github.com/cuemby/orka/pkg/config"
	"github.com/cuemby/orka/pkg/display"
	"github.com/cuemby/orka/pkg/log"
	"github.com/cuemby/orka/pkg/metrics"
	"github.com/spf13/cobra"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// run executes the CLI and reports any error through the printer.
func run(ctx context.Context, args []string, out, errOut io.Writer) error {
	a := &app{out: out, errOut: errOut}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.ExecuteContext(ctx)
	if err != nil {
		a.printerOrDefault().Error(err.Error())
	}

	if a.metricsFile != "" {
		if werr := metrics.WriteTextfile(a.metricsFile); werr != nil {
			log.Errorf("Failed to write metrics textfile", werr)
		}
	}
	return err
}

// app carries the state shared by every command. It is filled in by the
// root command's PersistentPreRunE and read-only afterwards.
type app struct {
	out    io.Writer
	errOut io.Writer

	configPath  string
	metricsFile string
	timeout     time.Duration

	printer *display.Printer
	cfg     *config.Config
}

func (a *app) printerOrDefault() *display.Printer {
	if a.printer == nil {
		a.printer = display.New(a.out, a.errOut, false)
	}
	return a.printer
}

// config loads the configuration file on first use.
func (a *app) config() (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}

	path := a.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	a.configPath = path
	a.cfg = cfg
	return cfg, nil
}

func (a *app) client() (*client.Client, error) {
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}
	return client.New(cfg.OrkaURL, client.WithTimeout(a.timeout)), nil
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "orkactl",
		Short: "orkactl - command line client for the orka orchestrator",
		Long: `orkactl validates workload definitions locally and manages
workloads and instances through the orka API.

Workload files are checked and normalized before anything is sent
to the server; use 'orkactl validate' to run the checks on their own.`,
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, _ := cmd.Flags().GetString("log-level")
			jsonLogs, _ := cmd.Flags().GetBool("log-json")
			noColor, _ := cmd.Flags().GetBool("no-color")

			log.Init(log.Config{
				Level:      log.ParseLevel(level),
				JSONOutput: jsonLogs,
				Output:     a.errOut,
			})
			a.printer = display.New(a.out, a.errOut, !noColor)
			return nil
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"orkactl version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to the config file (default $HOME/.config/orka/config.yaml)")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.Bool("log-json", false, "Write logs as JSON")
	flags.Bool("no-color", false, "Disable coloured output")
	flags.StringVar(&a.metricsFile, "metrics-textfile", "", "Write Prometheus metrics to this file on exit")
	flags.DurationVar(&a.timeout, "timeout", client.DefaultTimeout, "Timeout for API requests")

	rootCmd.AddCommand(newValidateCmd(a))
	rootCmd.AddCommand(newCreateCmd(a))
	rootCmd.AddCommand(newGetCmd(a))
	rootCmd.AddCommand(newDeleteCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))

	return rootCmd
}
