// Package fetch downloads the pipeline's remote source files: the Rfam
// family and link dumps and the Sequence Ontology definition.
package fetch

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// defaultTimeout bounds one download. The dumps are tens of megabytes
// served from FTP mirrors, so this is generous.
const defaultTimeout = 5 * time.Minute

// Source identifies one remote input file.
type Source struct {
	// URL is where the file is fetched from.
	URL string

	// Filename is the local name the file is saved under. Sources
	// served gzip-compressed are decompressed on the way down, so the
	// name carries no .gz suffix.
	Filename string
}

// Client downloads source files over HTTP.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the per-download timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(client *Client) {
		client.httpClient.Timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(client *Client) {
		client.logger = logger
	}
}

// NewClient creates a download client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch downloads one source into dir and returns the local path. A URL
// ending in .gz is decompressed transparently.
func (c *Client) Fetch(ctx context.Context, dir string, src Source) (string, error) {
	if src.URL == "" {
		return "", fmt.Errorf("source URL is required")
	}
	if src.Filename == "" {
		return "", fmt.Errorf("source filename is required")
	}

	c.logger.Debug("downloading source file",
		slog.String("url", src.URL),
		slog.String("file", src.Filename))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request for %s: %w", src.URL, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", src.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s: unexpected status %s", src.URL, resp.Status)
	}

	body := io.Reader(resp.Body)
	if strings.HasSuffix(src.URL, ".gz") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return "", fmt.Errorf("decompressing %s: %w", src.URL, err)
		}
		defer gz.Close()
		body = gz
	}

	path := filepath.Join(dir, src.Filename)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}

	written, err := io.Copy(f, body)
	if err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("closing %s: %w", path, err)
	}

	c.logger.Info("source file downloaded",
		slog.String("file", src.Filename),
		slog.Int64("bytes", written))
	return path, nil
}

// FetchAll downloads every source into dir, creating it if needed, and
// returns the local paths in source order. The first failure stops the
// run; sources already downloaded stay on disk.
func (c *Client) FetchAll(ctx context.Context, dir string, sources []Source) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	paths := make([]string, 0, len(sources))
	for _, src := range sources {
		path, err := c.Fetch(ctx, dir, src)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
