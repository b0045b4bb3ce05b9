package bridgeapp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"degbridge/internal/blob"
	"degbridge/internal/logging"
	"degbridge/internal/report"
	"degbridge/internal/table"
	"degbridge/internal/tableio"
	"degbridge/internal/transform"
	"degbridge/internal/validate"
)

// Stage names one step of a run.
type Stage string

const (
	StageLoad       Stage = "load"
	StageValidate   Stage = "validate"
	StageTransform  Stage = "transform"
	StageStatistics Stage = "statistics"
	StageSave       Stage = "save"
)

// StageError wraps the error that stopped a run.
type StageError struct {
	Stage  Stage
	Target string // optional: "deg", "mapping", "output"
	Err    error
}

func (e *StageError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("%s %s: %v", e.Stage, e.Target, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Bridge runs load -> validate -> transform -> statistics -> save and prints
// progress as it goes. Statistics are computed before the output is written,
// so a run that fails never produces an output.
type Bridge struct {
	Store     *blob.Resolver
	Joiner    transform.Joiner
	Threshold float64
	Out       *report.Printer
}

// Paths names the three locations of a run.
type Paths struct {
	DEG     string
	Mapping string
	Output  string
}

func stageErr(s Stage, err error) error { return &StageError{Stage: s, Err: err} }

// Run executes the pipeline and prints the closing summary.
func (b *Bridge) Run(ctx context.Context, p Paths) (report.Statistics, error) {
	log := logging.FromContext(ctx)
	start := time.Now()

	b.Out.Start()
	b.Out.Loading()
	deg, err := tableio.Load(ctx, b.Store, p.DEG)
	if err != nil {
		return report.Statistics{}, &StageError{Stage: StageLoad, Target: "deg", Err: err}
	}
	mapping, err := tableio.Load(ctx, b.Store, p.Mapping)
	if err != nil {
		return report.Statistics{}, &StageError{Stage: StageLoad, Target: "mapping", Err: err}
	}
	b.Out.Loaded(deg.Len(), mapping.Len())
	log.Debug("inputs loaded", "deg", p.DEG, "deg_rows", deg.Len(), "mapping", p.Mapping, "mapping_rows", mapping.Len())

	b.Out.Validating()
	if err := validate.Validate(deg, mapping); err != nil {
		return report.Statistics{}, stageErr(StageValidate, err)
	}
	b.Out.ValidationPassed()

	b.Out.Transforming()
	out, stats, err := b.transform(ctx, deg, mapping)
	if err != nil {
		return report.Statistics{}, err
	}

	b.Out.Saving()
	if err := tableio.Save(ctx, b.Store, p.Output, out); err != nil {
		return report.Statistics{}, &StageError{Stage: StageSave, Target: "output", Err: err}
	}
	b.Out.Saved(p.Output)
	log.Debug("output saved", "output", p.Output, "rows", out.Len())

	b.Out.Summary(stats, b.Threshold)
	log.Info("run complete", "stats", stats, "low_coverage", stats.LowCoverage(b.Threshold), "elapsed", time.Since(start))
	return stats, nil
}

func (b *Bridge) transform(ctx context.Context, deg, mapping *table.Table) (*table.Table, report.Statistics, error) {
	j := b.Joiner
	if j == nil {
		j = transform.HashJoiner{}
	}
	out, err := transform.Transform(ctx, deg, mapping, j)
	if err != nil {
		return nil, report.Statistics{}, stageErr(StageTransform, err)
	}
	logging.WithFields(ctx, "engine", j.Name()).Debug("join finished", "rows", out.Len())

	stats, err := report.ComputeStatistics(deg, out)
	if err != nil {
		return nil, report.Statistics{}, stageErr(StageStatistics, err)
	}
	return out, stats, nil
}

// exitCode maps a run error to the process exit status.
func exitCode(ctx context.Context, err error) int {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return exitCancelled
	}
	var se *StageError
	if errors.As(err, &se) && se.Stage == StageSave {
		return exitOutput
	}
	return exitFailure
}
