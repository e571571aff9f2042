package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/five82/e6viu/internal/errs"
)

const (
	defaultUserAgent      = "e6viu/0.1 (terminal viewer)"
	responseHeaderTimeout = 30 * time.Second
	chunkSize             = 32 * 1024
)

// ProgressFunc receives the cumulative, clamped byte count after each chunk.
type ProgressFunc func(transferred int64)

// Progress tracks bytes received against a declared total.
type Progress struct {
	Total       int64
	Transferred int64
}

// Advance records n more bytes and returns the new transferred count. The
// count never decreases and never exceeds Total.
func (p *Progress) Advance(n int) int64 {
	p.Transferred = min(p.Transferred+int64(n), max(p.Total, 0))
	return p.Transferred
}

// Options configure a Downloader.
type Options struct {
	UserAgent  string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Downloader streams remote files to local paths.
type Downloader struct {
	http      *http.Client
	userAgent string
	log       *slog.Logger
}

// New builds a Downloader from opts.
func New(opts Options) *Downloader {
	client := opts.HTTPClient
	if client == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.ResponseHeaderTimeout = responseHeaderTimeout
		client = &http.Client{Transport: transport}
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Downloader{http: client, userAgent: userAgent, log: logger}
}

// Download fetches url into dest, truncating any previous content, and
// reports progress against total. A failed download leaves whatever was
// written so far on disk.
func (d *Downloader) Download(ctx context.Context, url string, total int64, dest string, onProgress ProgressFunc) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: download %s: %w", errs.ErrNetwork, url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: download %s returned status %d", errs.ErrNetwork, url, resp.StatusCode)
	}

	file, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", errs.ErrIO, dest, err)
	}

	written, err := Stream(resp.Body, total, file, onProgress)
	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("%w: close %s: %w", errs.ErrIO, dest, closeErr)
	}
	if err != nil {
		return err
	}
	if written != total {
		d.log.Debug("download size differs from declared size", "url", url, "declared", total, "received", written)
	}
	return nil
}

// Stream copies r to dst chunk by chunk. Before each chunk is written the
// clamped running total is passed to onProgress. Every received byte is
// written even when more arrive than total declares; only the reported
// figure is clamped. It returns the number of bytes written.
func Stream(r io.Reader, total int64, dst io.Writer, onProgress ProgressFunc) (int64, error) {
	progress := Progress{Total: total}
	buf := make([]byte, chunkSize)
	var written int64
	for {
		n, readErr := r.Read(buf)
		if n > 0 {
			transferred := progress.Advance(n)
			if onProgress != nil {
				onProgress(transferred)
			}
			m, err := dst.Write(buf[:n])
			written += int64(m)
			if err != nil {
				return written, fmt.Errorf("%w: write chunk: %w", errs.ErrIO, err)
			}
		}
		if errors.Is(readErr, io.EOF) {
			return written, nil
		}
		if readErr != nil {
			return written, fmt.Errorf("%w: read body: %w", errs.ErrNetwork, readErr)
		}
	}
}
