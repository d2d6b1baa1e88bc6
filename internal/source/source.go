// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source reads raw DPE documents from local files, standard input,
// or HTTP(S) URLs, enforcing a per-document size limit.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/pdiddy/dpe-reader/internal/httputil"
	"github.com/pdiddy/dpe-reader/pkg/types"
)

// Stdin is the source name that reads the document from standard input.
const Stdin = "-"

// ErrTooLarge is returned when a document exceeds MaxDocumentBytes.
var ErrTooLarge = errors.New("document exceeds size limit")

// Loader fetches documents according to a types.SourceConfig. Its Load
// method satisfies extract.Loader.
type Loader struct {
	cfg    types.SourceConfig
	client *http.Client
	logger *slog.Logger

	// Stdin is read when the source is "-". It defaults to os.Stdin.
	Stdin io.Reader
}

// New returns a Loader. Zero values in cfg fall back to defaults; a nil
// client gets one with cfg.Timeout and a nil logger uses slog.Default().
func New(cfg types.SourceConfig, client *http.Client, logger *slog.Logger) *Loader {
	if cfg.MaxDocumentBytes <= 0 {
		cfg.MaxDocumentBytes = types.DefaultMaxDocumentBytes
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{cfg: cfg, client: client, logger: logger, Stdin: os.Stdin}
}

// IsRemote reports whether src names an HTTP(S) URL.
func IsRemote(src string) bool {
	lower := strings.ToLower(src)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Load returns the bytes of the document named by src: a file path, "-"
// for standard input, or an http:// or https:// URL.
func (l *Loader) Load(ctx context.Context, src string) ([]byte, error) {
	switch {
	case src == Stdin:
		l.logger.Debug("reading document", "source", "stdin")
		return l.readLimited(l.Stdin, "stdin")
	case IsRemote(src):
		return l.fetch(ctx, src)
	default:
		return l.readFile(src)
	}
}

func (l *Loader) readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.Size() > l.cfg.MaxDocumentBytes {
		return nil, fmt.Errorf("%s is %d bytes: %w", path, info.Size(), ErrTooLarge)
	}
	l.logger.Debug("reading document", "source", path)
	return l.readLimited(f, path)
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if l.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", l.cfg.UserAgent)
	}
	req.Header.Set("Accept", "application/xml, text/xml;q=0.9, */*;q=0.1")
	if l.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+l.cfg.Token)
	}

	l.logger.Debug("fetching document", "url", url)
	resp, err := httputil.DoWithRetry(ctx, l.client, req, l.cfg.MaxRetries, l.logger)
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}
	if resp.ContentLength > l.cfg.MaxDocumentBytes {
		return nil, fmt.Errorf("%s is %d bytes: %w", url, resp.ContentLength, ErrTooLarge)
	}
	return l.readLimited(resp.Body, url)
}

// readLimited reads at most MaxDocumentBytes from r, failing with
// ErrTooLarge when more remain.
func (l *Loader) readLimited(r io.Reader, name string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, l.cfg.MaxDocumentBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	if int64(len(data)) > l.cfg.MaxDocumentBytes {
		return nil, fmt.Errorf("%s: %w (limit %d bytes)", name, ErrTooLarge, l.cfg.MaxDocumentBytes)
	}
	return data, nil
}
