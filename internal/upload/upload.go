// Package upload turns a local image file into a data URI suitable for the
// custom icon field. Each request supersedes the previous one.
package upload

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
)

// DefaultMaxSize caps the size of an uploaded icon.
const DefaultMaxSize = 5 << 20

var (
	// ErrSuperseded reports a request replaced by a newer one.
	ErrSuperseded = errors.New("upload superseded by a newer request")
	ErrNotImage   = errors.New("file is not an image")
	ErrTooLarge   = errors.New("file too large")
	ErrEmptyFile  = errors.New("file is empty")
)

// Result is a completed upload.
type Result struct {
	Name       string
	MIME       string
	Size       int64
	DataURI    string
	Generation uint64
}

// Loader runs one-shot upload tasks.
type Loader struct {
	logger  *log.Logger
	maxSize int64

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// NewLoader creates a loader. A nil logger discards output.
func NewLoader(logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Loader{logger: logger, maxSize: DefaultMaxSize}
}

// SetMaxSize overrides DefaultMaxSize.
func (l *Loader) SetMaxSize(n int64) {
	l.mu.Lock()
	l.maxSize = n
	l.mu.Unlock()
}

// Current reports whether gen belongs to the most recent request.
func (l *Loader) Current(gen uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return gen == l.gen
}

// begin registers a new request and cancels the one in flight.
func (l *Loader) begin(ctx context.Context) (context.Context, uint64, int64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
	}
	ctx, l.cancel = context.WithCancel(ctx)
	l.gen++
	return ctx, l.gen, l.maxSize
}

// Start reads path in the background and calls deliver with the result.
// Results of superseded requests are dropped.
func (l *Loader) Start(ctx context.Context, path string, deliver func(Result, error)) uint64 {
	ctx, gen, limit := l.begin(ctx)

	go func() {
		res, err := readFile(ctx, path, limit)
		res.Generation = gen
		if !l.Current(gen) {
			l.logger.Debug("dropping superseded upload", "path", path)
			return
		}
		if err != nil {
			l.logger.Warn("upload failed", "path", path, "err", err)
		} else {
			l.logger.Info("icon uploaded", "file", res.Name, "type", res.MIME, "size", humanize.Bytes(uint64(res.Size)))
		}
		deliver(res, err)
	}()

	return gen
}

// Load reads path synchronously. It returns ErrSuperseded when another
// request started while it was reading.
func (l *Loader) Load(ctx context.Context, path string) (Result, error) {
	ctx, gen, limit := l.begin(ctx)

	res, err := readFile(ctx, path, limit)
	res.Generation = gen
	if !l.Current(gen) {
		return Result{}, ErrSuperseded
	}
	return res, err
}

func readFile(ctx context.Context, path string, limit int64) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return Result{}, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, ErrSuperseded
	}
	if int64(len(data)) > limit {
		return Result{}, fmt.Errorf("%w: %s exceeds %s", ErrTooLarge, filepath.Base(path), humanize.Bytes(uint64(limit)))
	}

	return Encode(filepath.Base(path), data)
}

// Encode builds the data URI for an image file named name.
func Encode(name string, data []byte) (Result, error) {
	if len(data) == 0 {
		return Result{}, fmt.Errorf("%w: %s", ErrEmptyFile, name)
	}

	mimeType := DetectMIME(name, data)
	if !strings.HasPrefix(mimeType, "image/") {
		return Result{}, fmt.Errorf("%w: %s is %s", ErrNotImage, name, mimeType)
	}

	return Result{
		Name:    name,
		MIME:    mimeType,
		Size:    int64(len(data)),
		DataURI: "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data),
	}, nil
}

// DetectMIME prefers the file extension and falls back to content sniffing.
func DetectMIME(name string, data []byte) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); t != "" {
		if mediaType, _, err := mime.ParseMediaType(t); err == nil {
			return mediaType
		}
	}
	return http.DetectContentType(data)
}
