package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/waabox/snatch/internal/auth"
	"github.com/waabox/snatch/internal/config"
	"github.com/waabox/snatch/internal/domain"
	"github.com/waabox/snatch/internal/flow"
	"github.com/waabox/snatch/internal/output"
	"github.com/waabox/snatch/internal/tui"
)

// app carries the streams and flag values of one invocation.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configPath string
	format     string
	verbose    bool

	// color is the configured color mode once the config has loaded.
	color string
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{
		stdin:      stdin,
		stdout:     stdout,
		stderr:     stderr,
		configPath: config.DefaultConfigPath(),
	}
	cmd := a.command()
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		tui.NewPrinter(a.stderr, a.colorMode()).Println(domain.ToneError, "Error: "+err.Error())
		return 1
	}
	return 0
}

func (a *app) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snatch",
		Short: "Retrieve Azure tokens for AzureHound using the device code flow",
		Long: `snatch requests a device code from the Microsoft identity platform, asks you to
sign in at the verification URL, then exchanges the device code for an access
token and a refresh token for Microsoft Graph.

Tokens and sign-in instructions are written to stdout. With --output json or
yaml the instructions move to stderr so stdout carries only the token document.
Errors are always written to stderr.`,
		Args:          cobra.NoArgs,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.login(cmd.Context())
		},
	}
	cmd.SetIn(a.stdin)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	cmd.Flags().StringVar(&a.configPath, "config", a.configPath, "Path to config file")
	cmd.Flags().StringVarP(&a.format, "output", "o", "", "Output format: text, json, yaml")
	cmd.Flags().BoolVarP(&a.verbose, "verbose", "v", false, "Log requests to stderr")
	return cmd
}

func (a *app) login(ctx context.Context) error {
	cfg, err := config.LoadFrom(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if a.format != "" {
		cfg.Output.Format = a.format
	}
	if a.verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.color = cfg.Output.Color

	log, err := newLogger(cfg.LogLevel, a.stderr)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	// Structured output keeps stdout clean for piping; the conversation moves to stderr.
	format := output.Format(cfg.Output.Format)
	promptOut := a.stdout
	if format.Structured() {
		promptOut = a.stderr
	}
	printer := tui.NewPrinter(promptOut, cfg.Output.Color)

	var reporter domain.Reporter = output.NewTextReporter(printer, nil)
	if format.Structured() {
		reporter = output.NewObjectReporter(a.stdout, format)
	}

	df := auth.NewAzureDeviceFlow(cfg.Azure.ClientID, cfg.Azure.Resource, cfg.Azure.Authority,
		auth.WithLogger(log),
		auth.WithTimeout(cfg.HTTPTimeout),
		auth.WithUserAgent("snatch/"+version),
	)
	log.Debug("starting device code login",
		zap.String("authority", cfg.Azure.Authority),
		zap.String("client_id", cfg.Azure.ClientID),
		zap.String("resource", cfg.Azure.Resource))

	_, err = flow.New(df, printer, tui.NewGate(a.stdin, promptOut), reporter, log).Run(ctx)
	return err
}

// colorMode is the color mode for error lines, auto until the config has loaded.
func (a *app) colorMode() string {
	if a.color == "" {
		return tui.ColorAuto
	}
	return a.color
}
