package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	goflags "github.com/jessevdk/go-flags"

	"github.com/couchcryptid/brewery-dashboard/internal/adapter/openbrewery"
	"github.com/couchcryptid/brewery-dashboard/internal/dashboard"
	"github.com/couchcryptid/brewery-dashboard/internal/observability"
)

// runtime carries what every subcommand needs besides its own flags.
type runtime struct {
	ctx     context.Context
	out     io.Writer
	errOut  io.Writer
	globals *GlobalFlags
}

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Stats  *StatsCommand
	List   *ListCommand
	Show   *ShowCommand
	Charts *ChartsCommand
	Types  *TypesCommand
	TUI    *TUICommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(rt *runtime) (*goflags.Parser, *commands) {
	parser := goflags.NewParser(rt.globals, goflags.HelpFlag|goflags.PassDoubleDash)
	parser.Name = "brewstat"
	parser.LongDescription = "Summary statistics, filtered listings and charts for Open Brewery DB."

	cmds := &commands{
		Stats:  &StatsCommand{rt: rt},
		List:   &ListCommand{rt: rt},
		Show:   &ShowCommand{rt: rt},
		Charts: &ChartsCommand{rt: rt},
		Types:  &TypesCommand{rt: rt},
		TUI:    &TUICommand{rt: rt},
	}

	parser.AddCommand("stats", "Print summary statistics", "Fetch breweries and print total, most common type and state count.", cmds.Stats)
	parser.AddCommand("list", "List breweries", "Fetch breweries and print those matching --search and --type, one page at a time.", cmds.List)
	parser.AddCommand("show", "Show one brewery", "Fetch and print a single brewery by ID.", cmds.Show)
	parser.AddCommand("charts", "Print type and state charts", "Fetch breweries and print the type and state distributions.", cmds.Charts)
	parser.AddCommand("types", "List brewery type filters", "Print the accepted --type values.", cmds.Types)
	parser.AddCommand("tui", "Start the terminal dashboard", "Start the interactive terminal dashboard.", cmds.TUI)

	return parser, cmds
}

// Run parses args and executes the matched subcommand, writing results to
// out and diagnostics to errOut.
func Run(ctx context.Context, args []string, out, errOut io.Writer) error {
	rt := &runtime{ctx: ctx, out: out, errOut: errOut, globals: &GlobalFlags{}}
	parser, _ := buildParser(rt)

	_, err := parser.ParseArgs(args)
	if err != nil {
		var flagsErr *goflags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == goflags.ErrHelp {
			fmt.Fprintln(out, flagsErr.Message)
			return nil
		}
		return err
	}
	return nil
}

// Main runs the CLI against the process arguments and standard streams.
func Main(ctx context.Context) int {
	if err := Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "brewstat: %v\n", err)
		return 1
	}
	return 0
}

func (rt *runtime) logger() *slog.Logger {
	if rt.globals.Verbose {
		return observability.NewLoggerTo(rt.errOut, "debug", "text")
	}
	return observability.DiscardLogger()
}

func (rt *runtime) source(metrics *observability.Metrics, logger *slog.Logger) (*openbrewery.Client, error) {
	timeout, err := time.ParseDuration(rt.globals.Timeout)
	if err != nil || timeout <= 0 {
		return nil, fmt.Errorf("invalid --timeout %q", rt.globals.Timeout)
	}
	return openbrewery.NewClient(rt.globals.BaseURL, timeout, 0, metrics, logger), nil
}

// service builds a dashboard service from the global flags.
func (rt *runtime) service() (*dashboard.Service, error) {
	g := rt.globals
	mode, err := dashboard.ParseMode(g.Mode)
	if err != nil {
		return nil, err
	}
	if g.PerPage < 1 || g.PerPage > 200 {
		return nil, fmt.Errorf("--per-page must be between 1 and 200, got %d", g.PerPage)
	}
	if g.MaxPages < 1 {
		return nil, fmt.Errorf("--max-pages must be positive, got %d", g.MaxPages)
	}

	logger := rt.logger()
	metrics := observability.NewUnregisteredMetrics()
	src, err := rt.source(metrics, logger)
	if err != nil {
		return nil, err
	}

	return dashboard.New(src, dashboard.Options{
		Mode: mode,
		Fetch: dashboard.FetchOptions{
			PerPage:  g.PerPage,
			MaxPages: g.MaxPages,
			Retries:  g.Retries,
		},
	}, logger, metrics), nil
}

// loadedService builds a service and loads one snapshot.
func (rt *runtime) loadedService() (*dashboard.Service, error) {
	svc, err := rt.service()
	if err != nil {
		return nil, err
	}
	if err := svc.Load(rt.ctx); err != nil {
		return nil, fmt.Errorf("load breweries: %w", err)
	}
	if st := svc.State(); st.Snapshot.Truncated {
		fmt.Fprintf(rt.errOut, "warning: stopped after %d pages; results are truncated\n", st.Snapshot.Pages)
	}
	return svc, nil
}
