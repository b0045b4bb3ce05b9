// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/snappy"

	"degbridge/internal/bridgeapp"
)

const (
	degCSV = "gene_symbol,log2fc,p_value,p_adjusted,regulation\n" +
		"TP53,2.1,0.001,0.004,UP\n" +
		"MYC,-1.2,0.01,0.03,DOWN\n" +
		"GAPDH,0.1,0.8,0.9,NS\n" +
		"NOVEL1,3.3,0.0001,0.0002,UP\n"
	mappingCSV = "gene_id,gene_symbol\n" +
		"TP53,TP53_HUMAN\n" +
		"MYC,MYC_HUMAN\n" +
		"GAPDH,GAPDH_HUMAN\n"
	wantOut = "gene_symbol,log2fc,p_value,p_adjusted,regulation\n" +
		"TP53_HUMAN,2.1,0.001,0.004,UP\n" +
		"MYC_HUMAN,-1.2,0.01,0.03,DOWN\n" +
		"GAPDH_HUMAN,0.1,0.8,0.9,NS\n"
)

func write(t *testing.T, fn string, data []byte) string {
	t.Helper()
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}

func readFile(t *testing.T, fn string) string {
	t.Helper()
	b, err := os.ReadFile(fn)
	if err != nil {
		t.Fatalf("read %s: %v", fn, err)
	}
	return string(b)
}

func gz(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(s)); err != nil {
		t.Fatalf("gzip: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

func sz(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	sw := snappy.NewBufferedWriter(&buf)
	if _, err := sw.Write([]byte(s)); err != nil {
		t.Fatalf("snappy: %v", err)
	}
	if err := sw.Close(); err != nil {
		t.Fatalf("snappy close: %v", err)
	}
	return buf.Bytes()
}

func TestEndToEndFiles(t *testing.T) {
	dir := t.TempDir()
	deg := write(t, filepath.Join(dir, "deg.csv"), []byte(degCSV))
	mapping := write(t, filepath.Join(dir, "map.csv"), []byte(mappingCSV))
	out := filepath.Join(dir, "out.csv")

	var stdout, stderr bytes.Buffer
	code := bridgeapp.Run([]string{deg, mapping, out}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit %d, err=%s", code, stderr.String())
	}
	if stderr.Len() != 0 {
		t.Fatalf("expected silent stderr, got %q", stderr.String())
	}
	if got := readFile(t, out); got != wantOut {
		t.Fatalf("output mismatch:\n got: %q\nwant: %q", got, wantOut)
	}
	for _, want := range []string{
		"Coverage: 75.0%\n",
		"UP-regulated: 1\n",
		"WARNING: Coverage below 80%",
	} {
		if !strings.Contains(stdout.String(), want) {
			t.Fatalf("report missing %q:\n%s", want, stdout.String())
		}
	}
}

func TestCompressedInputs(t *testing.T) {
	dir := t.TempDir()
	deg := write(t, filepath.Join(dir, "deg.csv.gz"), gz(t, degCSV))
	mapping := write(t, filepath.Join(dir, "map.csv.sz"), sz(t, mappingCSV))
	out := filepath.Join(dir, "out.csv")

	var stdout, stderr bytes.Buffer
	code := bridgeapp.Run([]string{"--engine", "sqlite", deg, mapping, out}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit %d, err=%s", code, stderr.String())
	}
	if got := readFile(t, out); got != wantOut {
		t.Fatalf("output mismatch:\n got: %q\nwant: %q", got, wantOut)
	}
}

func TestOverwritesExistingOutput(t *testing.T) {
	dir := t.TempDir()
	deg := write(t, filepath.Join(dir, "deg.csv"), []byte(degCSV))
	mapping := write(t, filepath.Join(dir, "map.csv"), []byte(mappingCSV))
	out := write(t, filepath.Join(dir, "out.csv"), []byte("stale\n"))

	if code := bridgeapp.Run([]string{deg, mapping, out}, &bytes.Buffer{}, &bytes.Buffer{}); code != 0 {
		t.Fatalf("run exit %d", code)
	}
	if got := readFile(t, out); got != wantOut {
		t.Fatalf("output not replaced: %q", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 files (no temp files left behind), got %d", len(entries))
	}
}

func TestFailedRunLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	deg := write(t, filepath.Join(dir, "deg.csv"), []byte("gene_symbol,log2fc\nA,1\n"))
	mapping := write(t, filepath.Join(dir, "map.csv"), []byte(mappingCSV))
	out := filepath.Join(dir, "out.csv")

	var stderr bytes.Buffer
	code := bridgeapp.Run([]string{deg, mapping, out}, &bytes.Buffer{}, &stderr)
	if code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
	if !strings.Contains(stderr.String(), "DEG file missing columns: p_value, p_adjusted, regulation") {
		t.Fatalf("unexpected stderr: %q", stderr.String())
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("failed run wrote output (stat err=%v)", err)
	}
}

func TestUnwritableOutputExit3(t *testing.T) {
	dir := t.TempDir()
	deg := write(t, filepath.Join(dir, "deg.csv"), []byte(degCSV))
	mapping := write(t, filepath.Join(dir, "map.csv"), []byte(mappingCSV))
	out := filepath.Join(dir, "missing-dir", "out.csv")

	var stderr bytes.Buffer
	code := bridgeapp.Run([]string{deg, mapping, out}, &bytes.Buffer{}, &stderr)
	if code != 3 {
		t.Fatalf("expected exit 3, got %d", code)
	}
	if !strings.Contains(stderr.String(), "save output: ") {
		t.Fatalf("unexpected stderr: %q", stderr.String())
	}
}

func TestMissingInputFileExit2(t *testing.T) {
	dir := t.TempDir()
	mapping := write(t, filepath.Join(dir, "map.csv"), []byte(mappingCSV))

	var stderr bytes.Buffer
	code := bridgeapp.Run([]string{filepath.Join(dir, "nope.csv"), mapping, filepath.Join(dir, "out.csv")},
		&bytes.Buffer{}, &stderr)
	if code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
	if !strings.Contains(stderr.String(), "load deg: ") {
		t.Fatalf("unexpected stderr: %q", stderr.String())
	}
}
