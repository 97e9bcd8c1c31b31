package upload

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxImageBytes is the size ceiling applied by NewEncoder.
const DefaultMaxImageBytes = 10 << 20

// Skip reasons reported in Result.
const (
	ReasonNotImage = "not an image"
	ReasonTooLarge = "image too large"
)

// File is a named, openable upload.
type File struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// FromPath returns a File reading from the local filesystem.
func FromPath(path string) File {
	return File{
		Name: filepath.Base(path),
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

// FromBytes returns a File backed by data.
func FromBytes(name string, data []byte) File {
	return File{
		Name: name,
		Open: func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(data)), nil },
	}
}

// Skipped describes a file left out of a batch.
type Skipped struct {
	Name   string
	Reason string
}

// Result is the outcome of encoding one batch.
type Result struct {
	// Images holds the data URLs in input order.
	Images  []string
	Skipped []Skipped
}

// Encoder converts files into data URLs.
type Encoder struct {
	maxImageBytes int64
}

// Option configures an Encoder.
type Option func(*Encoder)

// WithMaxImageBytes sets the per-image size ceiling. Zero disables it.
func WithMaxImageBytes(n int64) Option {
	return func(e *Encoder) { e.maxImageBytes = n }
}

// NewEncoder creates an Encoder.
func NewEncoder(opts ...Option) *Encoder {
	e := &Encoder{maxImageBytes: DefaultMaxImageBytes}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type encoded struct {
	url    string
	reason string
}

// Encode reads every file concurrently. Non-image and oversized files are
// reported in Result.Skipped. A read failure aborts the whole batch.
func (e *Encoder) Encode(ctx context.Context, files []File) (Result, error) {
	out := make([]encoded, len(files))

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := e.encodeOne(f)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", f.Name, err)
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var result Result
	for i, res := range out {
		if res.reason != "" {
			result.Skipped = append(result.Skipped, Skipped{Name: files[i].Name, Reason: res.reason})
			continue
		}
		result.Images = append(result.Images, res.url)
	}
	return result, nil
}

// AddTo encodes files and appends the resulting images to set as one batch,
// only after every file has been read.
func (e *Encoder) AddTo(ctx context.Context, set *PendingSet, files []File) (Result, error) {
	result, err := e.Encode(ctx, files)
	if err != nil {
		return result, err
	}
	set.Append(result.Images)
	return result, nil
}

func (e *Encoder) encodeOne(f File) (encoded, error) {
	rc, err := f.Open()
	if err != nil {
		return encoded{}, err
	}
	defer rc.Close()

	r := io.Reader(rc)
	if e.maxImageBytes > 0 {
		r = io.LimitReader(rc, e.maxImageBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return encoded{}, err
	}

	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return encoded{reason: ReasonNotImage}, nil
	}
	if e.maxImageBytes > 0 && int64(len(data)) > e.maxImageBytes {
		return encoded{reason: ReasonTooLarge}, nil
	}
	return encoded{url: DataURL(mime.String(), data)}, nil
}

// DataURL builds a base64 data URL.
func DataURL(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
