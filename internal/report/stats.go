// Package report derives run statistics from the input and transformed tables
// and renders the console report.
package report

import (
	"errors"
	"fmt"
	"log/slog"

	"degbridge/internal/genes"
	"degbridge/internal/table"
)

// ErrNoInputGenes is returned when coverage would divide by zero.
var ErrNoInputGenes = errors.New("division by zero: input has no genes")

// Statistics summarizes one run. LostGenes may be negative when the mapping
// fans out.
type Statistics struct {
	InputGenes    int
	OutputGenes   int
	Coverage      float64
	UpRegulated   int
	DownRegulated int
	LostGenes     int
}

// ComputeStatistics counts rows in deg and transformed. Regulation values
// other than exactly "UP" or "DOWN" are not counted.
func ComputeStatistics(deg, transformed *table.Table) (Statistics, error) {
	s := Statistics{
		InputGenes:  deg.Len(),
		OutputGenes: transformed.Len(),
	}
	if s.InputGenes == 0 {
		return Statistics{}, fmt.Errorf("coverage: %w", ErrNoInputGenes)
	}
	s.Coverage = float64(s.OutputGenes) / float64(s.InputGenes) * 100
	s.LostGenes = s.InputGenes - s.OutputGenes

	reg, err := transformed.Column(genes.ColRegulation)
	if err != nil {
		return Statistics{}, fmt.Errorf("statistics: %w", err)
	}
	for _, v := range reg {
		switch v {
		case genes.RegulationUp:
			s.UpRegulated++
		case genes.RegulationDown:
			s.DownRegulated++
		}
	}
	return s, nil
}

// LowCoverage reports whether coverage falls strictly below threshold.
func (s Statistics) LowCoverage(threshold float64) bool { return s.Coverage < threshold }

// LogValue implements slog.LogValuer for structured logging.
func (s Statistics) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("input_genes", s.InputGenes),
		slog.Int("output_genes", s.OutputGenes),
		slog.Float64("coverage", s.Coverage),
		slog.Int("up_regulated", s.UpRegulated),
		slog.Int("down_regulated", s.DownRegulated),
		slog.Int("lost_genes", s.LostGenes),
	)
}
