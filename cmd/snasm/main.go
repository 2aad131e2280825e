package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/ezrec/snasm/assembler"
	"github.com/ezrec/snasm/internal"
	"github.com/ezrec/snasm/translate"
)

var f = translate.From

var version = "0.1.0"

var ErrDefine = errors.New(f("--define must be NAME=VALUE"))

// preprocess reads and expands one source file.
func preprocess(asm *assembler.Assembler, path string) (unit *assembler.Unit, err error) {
	source, err := os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("%w: %w", assembler.ErrSourceRead, err)
		return
	}
	return asm.Preprocess(path, bytes.NewReader(source))
}

// run assembles every source into one object. Expanded sources are
// written beside the output files.
func run(asm *assembler.Assembler, paths []string) (err error) {
	fsys := assembler.DirFS(filepath.Dir(asm.Config.Output()))

	var units []*assembler.Unit
	for _, path := range paths {
		var stem string
		stem, err = assembler.SourceStem(path)
		if err != nil {
			return
		}

		var unit *assembler.Unit
		unit, err = preprocess(asm, path)
		if err != nil {
			return
		}

		err = asm.WriteExpanded(fsys, stem, unit)
		if err != nil {
			return
		}
		units = append(units, unit)
	}

	obj, err := asm.Assemble(units)
	if obj == nil {
		return
	}

	// Diagnostics do not retract the output.
	werr := asm.Write(fsys, obj)
	return errors.Join(err, werr)
}

func newCommand() *cobra.Command {
	var config assembler.Config
	var quiet, verbose, debug bool
	var defines []string

	cmd := &cobra.Command{
		Use:   "snasm [flags] source.as...",
		Short: "Two pass assembler for the SNASM instruction set",
		Long: `Snasm expands the macros of each source file, then assembles all of
them into one object listing. Labels are shared between the source
files of a run, so one file may use the .entry labels of another.

Each expanded source is written as <stem>.am beside the output files.
The object listing is written as <output>.ob, and when enabled the
entries and externals listings as <output>.ent and <output>.ext.
`,
		Args:          cobra.MinimumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			level := internal.LevelInfo
			switch {
			case debug:
				level = internal.LevelDebug
			case verbose:
				level = internal.LevelVerbose
			case quiet:
				level = internal.LevelQuiet
			}

			asm := &assembler.Assembler{
				Config:  config,
				Level:   level,
				Symbols: cmd.OutOrStdout(),
			}
			for _, define := range defines {
				name, value, ok := strings.Cut(define, "=")
				if !ok || len(name) == 0 {
					return fmt.Errorf("%w: %v", ErrDefine, define)
				}
				asm.Predefine(name, value)
			}

			level.Logf(internal.LevelVerbose, "%v, %d sources", config.Width(), len(args))
			return run(asm, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&config.OutputFile, "output", "o", assembler.DEFAULT_OUTPUT, "output base name")
	flags.BoolVarP(&config.ShowSymbols, "symbols", "s", false, "display the label table after pass 1")
	flags.BoolVarP(&config.GenEntries, "entries", "e", false, "write the entries listing")
	flags.BoolVarP(&config.GenExternals, "externals", "x", false, "write the externals listing")
	flags.BoolVar(&config.Legacy24Bit, "legacy", false, "encode 24-bit words")
	flags.BoolVarP(&quiet, "quiet", "q", false, "log nothing but errors")
	flags.BoolVar(&verbose, "verbose", false, "log each stage")
	flags.BoolVarP(&debug, "debug", "d", false, "log each statement and label")
	flags.StringArrayVarP(&defines, "define", "D", nil, "predefine NAME=VALUE for $(...) expressions")

	return cmd
}

func main() {
	flag.Set("logtostderr", "true")

	err := newCommand().Execute()
	if err != nil {
		glog.Error(err)
		glog.Flush()
		os.Exit(1)
	}
	glog.Flush()
}
