// Package tableio loads and saves tables through blob locations.
//
// Inputs compressed with gzip or snappy framing are detected by magic bytes
// or file suffix and decoded transparently. Outputs are encoded in full
// before anything is written.
package tableio

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/golang/snappy"

	"degbridge/internal/blob"
	"degbridge/internal/table"
)

// Opener opens locations for reading.
type Opener interface {
	Open(ctx context.Context, raw string) (io.ReadCloser, error)
}

// Putter writes locations.
type Putter interface {
	Put(ctx context.Context, raw string, r io.Reader, opts blob.PutOptions) error
}

// ContentType is attached to saved tables where the driver supports it.
const ContentType = "text/csv; charset=utf-8"

var (
	gzipMagic   = []byte{0x1f, 0x8b}
	snappyMagic = []byte("\xff\x06\x00\x00sNaPpY")
)

// Load reads the CSV table at raw.
func Load(ctx context.Context, o Opener, raw string) (*table.Table, error) {
	rc, err := o.Open(ctx, raw)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	r, err := decompress(raw, rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", raw, err)
	}
	t, err := table.ReadCSV(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", raw, err)
	}
	return t, nil
}

// Save encodes t as CSV and writes it to raw in one Put.
func Save(ctx context.Context, p Putter, raw string, t *table.Table) error {
	var buf bytes.Buffer
	if err := table.WriteCSV(&buf, t); err != nil {
		return fmt.Errorf("encode %s: %w", raw, err)
	}
	return p.Put(ctx, raw, bytes.NewReader(buf.Bytes()), blob.PutOptions{ContentType: ContentType})
}

func decompress(name string, r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(len(snappyMagic))
	switch {
	case bytes.HasPrefix(head, gzipMagic) || strings.HasSuffix(name, ".gz"):
		return gzip.NewReader(br)
	case bytes.Equal(head, snappyMagic) || strings.HasSuffix(name, ".sz"):
		return snappy.NewReader(br), nil
	default:
		return br, nil
	}
}
