package bridgecli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"strings"

	"degbridge/internal/blob"
	"degbridge/internal/cliutil"
	"degbridge/internal/logging"
	"degbridge/internal/report"
	"degbridge/internal/transform"
	"degbridge/internal/version"
)

// ErrPrintedAndExitOK is returned by ParseArgs when the caller requested examples.
var ErrPrintedAndExitOK = errors.New("examples requested")

// ErrArgCount is returned when the positional count is not exactly three.
var ErrArgCount = errors.New("expected exactly three arguments: <deg_file> <mapping_file> <output_file>")

type Options struct {
	// Positionals
	DEGFile     string
	MappingFile string
	OutputFile  string

	// Transform
	Engine            string
	CoverageThreshold float64

	// Storage
	S3Region    string
	S3Endpoint  string
	S3Profile   string
	S3PathStyle bool

	// Diagnostics
	LogLevel  string
	LogFormat string

	Version bool
}

// S3Config returns the S3 driver settings carried by o.
func (o Options) S3Config() blob.S3Config {
	return blob.S3Config{
		Region:    o.S3Region,
		Endpoint:  o.S3Endpoint,
		Profile:   o.S3Profile,
		PathStyle: o.S3PathStyle,
	}
}

func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		out := fs.Output()
		def := func(flagName string) string {
			if f := fs.Lookup(flagName); f != nil {
				return f.DefValue
			}
			return ""
		}

		_, _ = fmt.Fprintf(out, "Usage: %s [options] <deg_file> <mapping_file> <output_file>\n\n", name)
		_, _ = fmt.Fprintf(out, "%s: DESeq2 results to pathway enrichment input\n", name)
		_, _ = fmt.Fprintf(out, "Version: %s\n", version.Version)

		_, _ = fmt.Fprintln(out, "\nArguments:")
		_, _ = fmt.Fprintln(out, "  deg_file                    DEG CSV (gene_symbol, log2fc, p_value, p_adjusted, regulation)")
		_, _ = fmt.Fprintln(out, "  mapping_file                Mapping CSV (gene_id, gene_symbol)")
		_, _ = fmt.Fprintln(out, "  output_file                 Output CSV, replaced if it exists")
		_, _ = fmt.Fprintln(out, "  Paths may be local, '-' (stdin, inputs only) or s3://bucket/key.")

		_, _ = fmt.Fprintln(out, "\nTransform:")
		_, _ = fmt.Fprintf(out, "      --engine string         Join engine: %s [%s]\n", strings.Join(transform.Engines(), " | "), def("engine"))
		_, _ = fmt.Fprintf(out, "      --coverage-threshold f  Warn when coverage %% is below this [%s]\n", def("coverage-threshold"))

		_, _ = fmt.Fprintln(out, "\nStorage:")
		_, _ = fmt.Fprintf(out, "      --s3-region string      S3 region [%s]\n", def("s3-region"))
		_, _ = fmt.Fprintln(out, "      --s3-endpoint url       Custom S3 endpoint (e.g. MinIO)")
		_, _ = fmt.Fprintln(out, "      --s3-profile string     Shared AWS config profile")
		_, _ = fmt.Fprintf(out, "      --s3-path-style         Use path-style S3 addressing [%s]\n", def("s3-path-style"))

		_, _ = fmt.Fprintln(out, "\nDiagnostics (stderr):")
		_, _ = fmt.Fprintf(out, "      --log-level string      %s [%s]\n", strings.Join(logging.Levels, " | "), def("log-level"))
		_, _ = fmt.Fprintf(out, "      --log-format string     %s [%s]\n", strings.Join(logging.Formats, " | "), def("log-format"))

		_, _ = fmt.Fprintln(out, "\nMiscellaneous:")
		_, _ = fmt.Fprintln(out, "      --examples              Show quickstart examples and exit")
		_, _ = fmt.Fprintln(out, "  -v, --version               Print version and exit")
		_, _ = fmt.Fprintln(out, "  -h, --help                  Show this help and exit")
	}
	return fs
}

// PrintExamples prints a tiny quickstart.
func PrintExamples(out io.Writer, name string) {
	if out == nil {
		return
	}
	_, _ = fmt.Fprintf(out, "%s quickstart\n\n", name)
	_, _ = fmt.Fprintln(out, "Rename DEG symbols to standard symbols and report coverage:")
	_, _ = fmt.Fprintf(out, "  %s input/deg_results.csv input/gene_mapping.csv output/pathway_input.csv\n", name)
	_, _ = fmt.Fprintln(out, "\nJoin inside SQLite and write to S3:")
	_, _ = fmt.Fprintf(out, "  %s --engine sqlite deg.csv.gz mapping.csv s3://results/pathway_input.csv\n", name)
	_, _ = fmt.Fprintln(out, "\nTip: run with --help for all flags.")
}

func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var o Options
	var help bool
	var showExamples bool

	fs.StringVar(&o.Engine, "engine", transform.EngineHash, "join engine")
	fs.Float64Var(&o.CoverageThreshold, "coverage-threshold", report.DefaultCoverageThreshold, "coverage warning threshold (percent)")

	fs.StringVar(&o.S3Region, "s3-region", blob.DefaultS3Region, "S3 region")
	fs.StringVar(&o.S3Endpoint, "s3-endpoint", "", "custom S3 endpoint")
	fs.StringVar(&o.S3Profile, "s3-profile", "", "shared AWS config profile")
	fs.BoolVar(&o.S3PathStyle, "s3-path-style", false, "path-style S3 addressing")

	fs.StringVar(&o.LogLevel, "log-level", "warn", "diagnostic log level")
	fs.StringVar(&o.LogFormat, "log-format", "text", "diagnostic log format")

	fs.BoolVar(&help, "h", false, "show this help")
	fs.BoolVar(&help, "help", false, "show this help")
	fs.BoolVar(&showExamples, "examples", false, "show quickstart examples and exit")
	fs.BoolVar(&o.Version, "v", false, "print version and exit")
	fs.BoolVar(&o.Version, "version", false, "print version and exit")

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return o, err
	}
	if showExamples {
		return o, ErrPrintedAndExitOK
	}
	if help {
		return o, flag.ErrHelp
	}
	if o.Version {
		return o, nil
	}

	if len(posArgs) != 3 {
		return o, ErrArgCount
	}
	o.DEGFile, o.MappingFile, o.OutputFile = posArgs[0], posArgs[1], posArgs[2]
	return o, Validate(o)
}

// Validate checks option values and reports every problem at once.
func Validate(o Options) error {
	var errs []string
	if _, err := transform.ForName(o.Engine); err != nil {
		errs = append(errs, fmt.Sprintf("--engine %q must be one of: %s", o.Engine, strings.Join(transform.Engines(), ", ")))
	}
	if math.IsNaN(o.CoverageThreshold) || o.CoverageThreshold < 0 || o.CoverageThreshold > 100 {
		errs = append(errs, fmt.Sprintf("--coverage-threshold (%g) must be within 0-100", o.CoverageThreshold))
	}
	if !logging.ValidLevel(o.LogLevel) {
		errs = append(errs, fmt.Sprintf("--log-level %q must be one of: %s", o.LogLevel, strings.Join(logging.Levels, ", ")))
	}
	if !logging.ValidFormat(o.LogFormat) {
		errs = append(errs, fmt.Sprintf("--log-format %q must be one of: %s", o.LogFormat, strings.Join(logging.Formats, ", ")))
	}
	if o.OutputFile == "-" {
		errs = append(errs, "output_file cannot be '-'")
	}
	for _, p := range []string{o.DEGFile, o.MappingFile, o.OutputFile} {
		if _, err := blob.ParseLocation(p); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "\n"))
	}
	return nil
}
