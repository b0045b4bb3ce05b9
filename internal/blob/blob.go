// Package blob resolves input and output locations to storage drivers.
//
// A location is either a local path (or "-" for stdin), "s3://bucket/key",
// or "mem://key" for the in-process driver. Reads return the whole object as
// a stream; writes replace the object in one step so readers never see a
// partially written output.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Driver identifies a storage backend.
type Driver string

const (
	DriverFilesystem Driver = "fs"
	DriverS3         Driver = "s3"
	DriverMemory     Driver = "memory"
)

// PutOptions carries optional object attributes.
type PutOptions struct {
	ContentType string
}

// Store is the minimal surface the bridge needs from a backend.
type Store interface {
	// Open streams the object at key.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Put writes r to key, replacing any existing object.
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) error
	Driver() Driver
}

// ErrNotFound is returned by drivers that can tell a missing object apart.
var ErrNotFound = errors.New("blob: not found")

// Location is a parsed input or output address.
type Location struct {
	Driver Driver
	Bucket string // s3 only
	Key    string
	Raw    string
}

func (l Location) String() string { return l.Raw }

const (
	schemeS3  = "s3://"
	schemeMem = "mem://"
)

// ParseLocation classifies raw. Anything without a known scheme is a local path.
func ParseLocation(raw string) (Location, error) {
	if strings.TrimSpace(raw) == "" {
		return Location{}, errors.New("empty location")
	}
	switch {
	case strings.HasPrefix(raw, schemeS3):
		rest := strings.TrimPrefix(raw, schemeS3)
		bucket, key, ok := strings.Cut(rest, "/")
		if !ok || bucket == "" || key == "" {
			return Location{}, fmt.Errorf("invalid s3 location %q (want s3://bucket/key)", raw)
		}
		return Location{Driver: DriverS3, Bucket: bucket, Key: key, Raw: raw}, nil
	case strings.HasPrefix(raw, schemeMem):
		key := strings.TrimPrefix(raw, schemeMem)
		if key == "" {
			return Location{}, fmt.Errorf("invalid memory location %q", raw)
		}
		return Location{Driver: DriverMemory, Key: key, Raw: raw}, nil
	default:
		return Location{Driver: DriverFilesystem, Key: raw, Raw: raw}, nil
	}
}
