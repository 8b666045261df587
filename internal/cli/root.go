// Package cli implements the operator command line over the same services the
// HTTP API uses.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yigit/mototransporte/internal/app/services"
	"github.com/yigit/mototransporte/internal/bootstrap"
	"github.com/yigit/mototransporte/internal/config"
	"github.com/yigit/mototransporte/internal/pkg/apperrors"
	"github.com/yigit/mototransporte/internal/pkg/validation"
)

// Streams are the terminal handles the commands read from and write to.
type Streams struct {
	In  io.ReadCloser
	Out io.Writer
	Err io.Writer
}

// StdStreams returns the process standard streams.
func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

type app struct {
	streams    Streams
	configPath string
	locale     string
	yes        bool

	cfg  *config.Config
	deps *bootstrap.Dependencies
}

// Run executes the command line in args and releases storage afterwards,
// whether or not the command succeeded.
func Run(ctx context.Context, streams Streams, args []string) error {
	a := &app{streams: streams}
	root := newRootCommand(a)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if cerr := a.close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

func newRootCommand(a *app) *cobra.Command {
	streams := a.streams

	root := &cobra.Command{
		Use:           "mototransporte",
		Short:         "Manage students, drivers, vehicles and routes of a school transport service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd.Context())
		},
	}
	root.SetIn(streams.In)
	root.SetOut(streams.Out)
	root.SetErr(streams.Err)

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", bootstrap.DefaultConfigPath, "configuration file")
	root.PersistentFlags().StringVar(&a.locale, "locale", "", "language of messages (es, en)")
	root.PersistentFlags().BoolVarP(&a.yes, "yes", "y", false, "confirm destructive operations without asking")

	root.AddCommand(
		newEntityCommand(a, studentView),
		newEntityCommand(a, driverView),
		newEntityCommand(a, vehicleView),
		withSubcommands(newEntityCommand(a, routeView), newRouteSummaryCommand(a)),
		newDashboardCommand(a),
		newSearchCommand(a),
		newExportCommand(a),
		newImportCommand(a),
		newClearCommand(a),
		newSeedCommand(a),
	)
	return root
}

func withSubcommands(cmd *cobra.Command, subs ...*cobra.Command) *cobra.Command {
	cmd.AddCommand(subs...)
	return cmd
}

// open loads configuration and wires the services for one command run.
func (a *app) open(ctx context.Context) error {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(a.configPath)
	if err != nil {
		return err
	}
	if a.locale != "" {
		cfg.Validation.DefaultLocale = a.locale
	}

	store, err := bootstrap.SetupStorage(cfg, lgr)
	if err != nil {
		return err
	}

	var confirmer services.Confirmer = services.AutoConfirmer(true)
	if !a.yes {
		interactive := false
		if f, ok := a.streams.In.(*os.File); ok {
			interactive = isTerminal(f)
		}
		confirmer = PromptConfirmer{In: a.streams.In, Out: a.streams.Err, Interactive: interactive}
	}

	deps, err := bootstrap.BuildDependencies(ctx, cfg, store, bootstrap.Interaction{
		Confirmer: confirmer,
		Notifier:  &Notifier{Out: a.streams.Err},
	}, lgr)
	if err != nil {
		return err
	}
	a.cfg, a.deps = cfg, deps
	return nil
}

func (a *app) close() error {
	err := a.deps.Close()
	a.deps = nil
	return err
}

// explain prints the field violations carried by err, if any, and returns err.
func (a *app) explain(err error) error {
	var fieldErrs *validation.Errors
	if errors.As(err, &fieldErrs) {
		for _, msg := range fieldErrs.Messages(a.deps.Locale) {
			fmt.Fprintf(a.streams.Err, "  - %s\n", msg)
		}
	}
	return err
}

// parseAssignments turns key=value pairs into a payload. An empty value clears
// optional fields.
func parseAssignments(pairs []string) (validation.Fields, error) {
	fields := validation.Fields{}
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, apperrors.NewBadRequestError(fmt.Sprintf("expected key=value, got %q", p))
		}
		if value == "" {
			fields[key] = nil
			continue
		}
		fields[key] = value
	}
	return fields, nil
}
