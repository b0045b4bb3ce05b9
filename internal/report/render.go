package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DefaultCoverageThreshold is the coverage percentage below which the report
// warns about mapping completeness.
const DefaultCoverageThreshold = 80.0

// CoverageDecimals is the precision coverage is printed with.
const CoverageDecimals = 1

const ruleWidth = 70

var rule = strings.Repeat("=", ruleWidth)

// Titles printed in the banners.
const (
	TitleStart = "DATA BRIDGE: DESeq2 to Pathway Enrichment"
	TitleDone  = "TRANSFORMATION COMPLETE"
)

func banner(title string) string { return rule + "\n" + title + "\n" + rule + "\n" }

// WarningLine is the low-coverage warning for threshold.
func WarningLine(threshold float64) string {
	return fmt.Sprintf("WARNING: Coverage below %s%% - check gene mapping completeness",
		strconv.FormatFloat(threshold, 'f', -1, 64))
}

// Render returns the closing banner and the statistics block. The warning
// line is appended when coverage is below threshold.
func Render(s Statistics, threshold float64) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(banner(TitleDone))
	fmt.Fprintf(&b, "\nInput genes: %d\n", s.InputGenes)
	fmt.Fprintf(&b, "Output genes: %d\n", s.OutputGenes)
	fmt.Fprintf(&b, "Coverage: %s%%\n", strconv.FormatFloat(s.Coverage, 'f', CoverageDecimals, 64))
	fmt.Fprintf(&b, "UP-regulated: %d\n", s.UpRegulated)
	fmt.Fprintf(&b, "DOWN-regulated: %d\n", s.DownRegulated)
	fmt.Fprintf(&b, "Lost genes: %d\n", s.LostGenes)
	if s.LowCoverage(threshold) {
		b.WriteString("\n" + WarningLine(threshold) + "\n")
	}
	return b.String()
}

// Printer writes the progress lines of a run as each stage happens. The
// first write error is kept and later writes become no-ops.
type Printer struct {
	w   io.Writer
	err error
}

func NewPrinter(w io.Writer) *Printer { return &Printer{w: w} }

func (p *Printer) printf(format string, a ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, a...)
}

// Err returns the first write error.
func (p *Printer) Err() error { return p.err }

func (p *Printer) Start()   { p.printf("%s", banner(TitleStart)) }
func (p *Printer) Loading() { p.printf("\nLoading input files...\n") }

func (p *Printer) Loaded(degRows, mappingRows int) {
	p.printf("Loaded %d DEG genes\n", degRows)
	p.printf("Loaded %d gene mappings\n", mappingRows)
}

func (p *Printer) Validating()       { p.printf("\nValidating input data...\n") }
func (p *Printer) ValidationPassed() { p.printf("Validation passed\n") }
func (p *Printer) Transforming()     { p.printf("\nApplying transformation...\n") }
func (p *Printer) Saving()           { p.printf("\nSaving transformed data...\n") }
func (p *Printer) Saved(dest string) { p.printf("Saved to: %s\n", dest) }

// Summary writes Render(s, threshold).
func (p *Printer) Summary(s Statistics, threshold float64) { p.printf("%s", Render(s, threshold)) }
