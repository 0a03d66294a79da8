package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/muir/nmutate"
	"github.com/muir/nmutate/statefile"
	"github.com/pkg/errors"
	"github.com/sergi/go-diff/diffmatchpatch"
)

func useColor(mode string, out io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// renderDiff prints a line diff of the YAML forms of prev and next.
func renderDiff(out io.Writer, prev, next nmutate.State, colored bool) error {
	before, err := statefile.MarshalYAML(prev)
	if err != nil {
		return err
	}
	after, err := statefile.MarshalYAML(next)
	if err != nil {
		return err
	}
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(string(before), string(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	added := color.New(color.FgGreen)
	removed := color.New(color.FgRed)
	if colored {
		added.EnableColor()
		removed.EnableColor()
	} else {
		added.DisableColor()
		removed.DisableColor()
	}
	for _, d := range diffs {
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			line = strings.TrimSuffix(line, "\n")
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				_, err = added.Fprintln(out, "+"+line)
			case diffmatchpatch.DiffDelete:
				_, err = removed.Fprintln(out, "-"+line)
			default:
				_, err = fmt.Fprintln(out, " "+line)
			}
			if err != nil {
				return errors.WithStack(err)
			}
		}
	}
	return nil
}

// renderPatch prints the RFC 7386 merge patch that turns prev into next.
func renderPatch(out io.Writer, prev, next nmutate.State) error {
	before, err := statefile.MarshalJSON(prev)
	if err != nil {
		return err
	}
	after, err := statefile.MarshalJSON(next)
	if err != nil {
		return err
	}
	patch, err := jsonpatch.CreateMergePatch(before, after)
	if err != nil {
		return errors.Wrap(err, "merge patch")
	}
	_, err = fmt.Fprintln(out, string(patch))
	return errors.WithStack(err)
}
