// Package bridgeapp wires the command line of degbridge to the pipeline.
package bridgeapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"degbridge/internal/blob"
	"degbridge/internal/bridgecli"
	"degbridge/internal/logging"
	"degbridge/internal/report"
	"degbridge/internal/transform"
	"degbridge/internal/version"
	"degbridge/internal/writers"
)

const name = "degbridge"

// Exit codes.
const (
	exitOK        = 0
	exitUsage     = 1
	exitFailure   = 2
	exitOutput    = 3
	exitCancelled = 130
)

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	return RunWithStore(parent, argv, stdout, stderr, nil)
}

// RunWithStore is RunContext with a caller-supplied resolver; nil builds one
// from the S3 options.
func RunWithStore(parent context.Context, argv []string, stdout, stderr io.Writer, store *blob.Resolver) int {
	outw := bufio.NewWriter(stdout)
	flush := func(code int) int {
		if err := outw.Flush(); writers.IsBrokenPipe(err) {
			return code
		} else if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return exitOutput
		}
		return code
	}

	fs := bridgecli.NewFlagSet(name)
	fs.SetOutput(io.Discard) // silence default flag pkg

	opts, err := bridgecli.ParseArgs(fs, argv)
	if err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			fs.SetOutput(outw)
			fs.Usage()
			return flush(exitOK)
		case errors.Is(err, bridgecli.ErrPrintedAndExitOK):
			bridgecli.PrintExamples(outw, name)
			return flush(exitOK)
		case errors.Is(err, bridgecli.ErrArgCount):
			fs.SetOutput(outw)
			fs.Usage()
			return flush(exitUsage)
		default:
			_, _ = fmt.Fprintln(stderr, err)
			fs.SetOutput(outw)
			fs.Usage()
			return flush(exitUsage)
		}
	}
	if opts.Version {
		_, _ = fmt.Fprintf(outw, "%s version %s\n", name, version.Version)
		return flush(exitOK)
	}

	logging.Setup(stderr, opts.LogLevel, opts.LogFormat)
	ctx := logging.WithRunID(parent, logging.NewRunID())

	if store == nil {
		store = blob.NewResolver(opts.S3Config())
	}
	joiner, _ := transform.ForName(opts.Engine) // validated by ParseArgs

	b := &Bridge{
		Store:     store,
		Joiner:    joiner,
		Threshold: opts.CoverageThreshold,
		Out:       report.NewPrinter(outw),
	}
	_, runErr := b.Run(ctx, Paths{DEG: opts.DEGFile, Mapping: opts.MappingFile, Output: opts.OutputFile})

	if perr := b.Out.Err(); perr != nil && !writers.IsBrokenPipe(perr) && runErr == nil {
		_, _ = fmt.Fprintln(stderr, perr)
		return exitOutput
	}
	if runErr != nil {
		code := flush(exitCode(ctx, runErr))
		logging.FromContext(ctx).Debug("run failed", "error", runErr)
		_, _ = fmt.Fprintln(stderr, runErr)
		return code
	}
	return flush(exitOK)
}
