// Command nmutate applies mutations to a JSON or YAML state file and
// prints the next state.
//
//	nmutate --state app.yaml increment:visits append:log=started toggle:open
//	nmutate --state app.json --diff 'filter:tags=item != "old"' 'cycle:mode=[a, b, c]'
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/muir/commonerrors"
	"github.com/muir/nmutate/internal/envfill"
	"github.com/muir/nmutate/statefile"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type config struct {
	State   string `env:"NMUTATE_STATE"  validate:"required"`
	Output  string `env:"NMUTATE_OUTPUT" validate:"omitempty,oneof=json yaml"`
	Color   string `env:"NMUTATE_COLOR"  validate:"oneof=auto always never"`
	Diff    bool
	Patch   bool `validate:"excluded_with=Diff"`
	Verbose bool
}

const opHelp = `Each OP is name:field or name:field=value.  Values are YAML literals.

  increment:FIELD       add one
  decrement:FIELD       subtract one
  toggle:FIELD          negate a boolean
  append:FIELD=VALUE    add VALUE to the end of a list
  prepend:FIELD=VALUE   add VALUE to the front of a list
  concat:FIELD=LIST     add the elements of LIST to the end of a list
  cycle:FIELD=LIST      advance FIELD to the next element of LIST
  direct:FIELD=VALUE    replace FIELD with VALUE
  set:FIELD=VALUE       set FIELD to VALUE as a plain record
  merge:FIELD=MAP       overlay MAP onto a map
  filter:FIELD=EXPR     keep list elements where EXPR is true
  map:FIELD=EXPR        replace list elements with EXPR

EXPR is an expr-lang expression over "item" and "index".  OPs are applied
in order and each sees the result of the ones before it.`

func main() {
	err := newCommand(os.Stdout, os.Stderr).Execute()
	if err != nil {
		os.Exit(1)
	}
}

func newCommand(stdout, stderr io.Writer) *cobra.Command {
	cfg := config{
		Color: "auto",
	}
	envErr := envfill.Fill(&cfg)
	cmd := &cobra.Command{
		Use:          "nmutate --state FILE OP...",
		Short:        "Apply mutations to a JSON or YAML state file",
		Long:         opHelp,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if envErr != nil {
				return envErr
			}
			err := validator.New().Struct(cfg)
			if err != nil {
				return commonerrors.ConfigurationError(errors.Wrap(err, "invalid options"))
			}
			return run(cfg, args, stdout, newLogger(stderr, cfg.Verbose))
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	flags := cmd.Flags()
	flags.StringVarP(&cfg.State, "state", "s", cfg.State, "state file (.json, .yaml, .yml) [$NMUTATE_STATE]")
	flags.StringVarP(&cfg.Output, "output", "o", cfg.Output, "output format, json or yaml (default: format of the state file) [$NMUTATE_OUTPUT]")
	flags.StringVar(&cfg.Color, "color", cfg.Color, "color the diff: auto, always, or never [$NMUTATE_COLOR]")
	flags.BoolVar(&cfg.Diff, "diff", false, "print a diff of the state (as yaml) instead of the next state")
	flags.BoolVar(&cfg.Patch, "patch", false, "print a JSON merge patch instead of the next state")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "log progress to stderr")
	return cmd
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

func run(cfg config, args []string, out io.Writer, logger *slog.Logger) error {
	prev, err := statefile.UnmarshalFile(cfg.State)
	if err != nil {
		return err
	}
	format := cfg.Output
	if format == "" {
		format, err = statefile.FormatOf(cfg.State)
		if err != nil {
			return err
		}
	}
	logger.Debug("loaded state", "file", cfg.State, "fields", len(prev))

	ops, err := parseOps(args)
	if err != nil {
		return err
	}
	p, err := buildPlan(ops, prev)
	if err != nil {
		return err
	}
	logger.Debug("combined mutations", "ops", len(ops), "arguments", p.combined.Arity())

	mutation, err := p.combined.Bind(p.args...)
	if err != nil {
		return errors.Wrap(err, "bind")
	}
	next, err := applySafely(mutation, prev)
	if err != nil {
		return errors.Wrap(err, "apply")
	}
	if p.evalErr != nil {
		return errors.Wrap(p.evalErr, "evaluate")
	}

	switch {
	case cfg.Diff:
		return renderDiff(out, prev, next, useColor(cfg.Color, out))
	case cfg.Patch:
		return renderPatch(out, prev, next)
	default:
		byts, err := statefile.Marshal(format, next)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, strings.TrimSuffix(string(byts), "\n"))
		return errors.WithStack(err)
	}
}
