// Package appshell runs a command's entry point under a signal-aware context.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// Runner is the signature of an app's RunContext.
type Runner func(ctx context.Context, argv []string, stdout, stderr io.Writer) int

// Main runs run with the process arguments and exits with its status.
// Interrupt and SIGTERM cancel the context.
func Main(run Runner) {
	os.Exit(Exec(run, os.Args[1:], os.Stdout, os.Stderr))
}

// Exec is Main without os.Exit.
func Exec(run Runner, argv []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return normalize(ctx, run(ctx, argv, stdout, stderr))
}

// normalize maps a run that finished after cancellation to 130.
func normalize(ctx context.Context, code int) int {
	if ctx.Err() != nil && code == 0 {
		return 130
	}
	return code
}
