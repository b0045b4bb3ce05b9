package blob

import (
	"context"
	"fmt"
	"io"
)

// Resolver maps locations to drivers. S3 drivers are created lazily, one per
// bucket, on first use.
type Resolver struct {
	FS     *Filesystem
	Memory *Memory
	S3     S3Config

	buckets map[string]Store
}

// NewResolver returns a Resolver with a filesystem driver and S3 settings.
func NewResolver(s3cfg S3Config) *Resolver {
	return &Resolver{FS: &Filesystem{}, S3: s3cfg}
}

// Store returns the driver for loc.
func (r *Resolver) Store(ctx context.Context, loc Location) (Store, error) {
	switch loc.Driver {
	case DriverFilesystem:
		if r.FS == nil {
			r.FS = &Filesystem{}
		}
		return r.FS, nil
	case DriverMemory:
		if r.Memory == nil {
			return nil, fmt.Errorf("no memory store configured for %s", loc)
		}
		return r.Memory, nil
	case DriverS3:
		if st, ok := r.buckets[loc.Bucket]; ok {
			return st, nil
		}
		st, err := NewS3(ctx, loc.Bucket, r.S3)
		if err != nil {
			return nil, err
		}
		if r.buckets == nil {
			r.buckets = make(map[string]Store)
		}
		r.buckets[loc.Bucket] = st
		return st, nil
	default:
		return nil, fmt.Errorf("unknown blob driver %q", loc.Driver)
	}
}

// Open parses raw and opens it for reading.
func (r *Resolver) Open(ctx context.Context, raw string) (io.ReadCloser, error) {
	loc, err := ParseLocation(raw)
	if err != nil {
		return nil, err
	}
	st, err := r.Store(ctx, loc)
	if err != nil {
		return nil, err
	}
	return st.Open(ctx, loc.Key)
}

// Put parses raw and writes rd to it.
func (r *Resolver) Put(ctx context.Context, raw string, rd io.Reader, opts PutOptions) error {
	loc, err := ParseLocation(raw)
	if err != nil {
		return err
	}
	st, err := r.Store(ctx, loc)
	if err != nil {
		return err
	}
	return st.Put(ctx, loc.Key, rd, opts)
}
