// Package pdf prints resume HTML to A4 PDF with headless Chrome.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/observability"
)

// A4 paper size and 10mm margins, in inches.
const (
	paperWidthInches  = 8.27
	paperHeightInches = 11.69
	marginInches      = 0.3937
)

const (
	defaultTimeout  = 60 * time.Second
	defaultAttempts = 3
	defaultBackoff  = 2 * time.Second
)

var pdfMagic = []byte("%PDF")

// Renderer turns an HTML page into PDF bytes.
type Renderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

// Options configures the Chrome renderer. Zero values select defaults.
type Options struct {
	ChromePath string
	Timeout    time.Duration
	Attempts   int
	Backoff    time.Duration
}

// printFunc prints the HTML file at path and returns the PDF bytes.
type printFunc func(ctx context.Context, path string) ([]byte, error)

// ChromeRenderer renders through a fresh headless Chrome per call.
type ChromeRenderer struct {
	opts   Options
	logger *zap.Logger
	print  printFunc
}

// NewChromeRenderer creates a renderer. CHROME_PATH is honoured when
// opts.ChromePath is empty.
func NewChromeRenderer(opts Options, logger *zap.Logger) *ChromeRenderer {
	if opts.ChromePath == "" {
		opts.ChromePath = os.Getenv("CHROME_PATH")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Attempts <= 0 {
		opts.Attempts = defaultAttempts
	}
	if opts.Backoff < 0 {
		opts.Backoff = 0
	} else if opts.Backoff == 0 {
		opts.Backoff = defaultBackoff
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &ChromeRenderer{opts: opts, logger: logger}
	r.print = r.printWithChrome
	return r
}

// RenderPDF writes the HTML to a temporary file and prints it, retrying
// failed attempts with a linearly growing delay.
func (r *ChromeRenderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", "resume-pdf-")
	if err != nil {
		return nil, &RenderError{Message: "failed to create temp dir", Cause: err}
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o600); err != nil {
		return nil, &RenderError{Message: "failed to write HTML", Cause: err}
	}

	start := time.Now()
	var lastErr error
	for attempt := 1; attempt <= r.opts.Attempts; attempt++ {
		buf, err := r.attempt(ctx, htmlPath)
		if err == nil {
			observability.PDFRenders.WithLabelValues("success").Inc()
			observability.PDFRenderDuration.Observe(time.Since(start).Seconds())
			return buf, nil
		}
		lastErr = err
		observability.PDFRenders.WithLabelValues("failure").Inc()
		r.logger.Warn("pdf render attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", r.opts.Attempts),
			zap.Error(err),
		)

		if attempt == r.opts.Attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, &RenderError{Message: "render cancelled", Attempts: attempt, Cause: ctx.Err()}
		case <-time.After(time.Duration(attempt) * r.opts.Backoff):
		}
	}

	return nil, &RenderError{Message: "all attempts failed", Attempts: r.opts.Attempts, Cause: lastErr}
}

func (r *ChromeRenderer) attempt(ctx context.Context, htmlPath string) ([]byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
	defer cancel()

	buf, err := r.print(attemptCtx, htmlPath)
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(buf, pdfMagic) {
		return nil, fmt.Errorf("output is not a PDF (%d bytes)", len(buf))
	}
	return buf, nil
}

func (r *ChromeRenderer) printWithChrome(ctx context.Context, htmlPath string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.opts.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.opts.ChromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var buf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidthInches).
				WithPaperHeight(paperHeightInches).
				WithMarginTop(marginInches).
				WithMarginBottom(marginInches).
				WithMarginLeft(marginInches).
				WithMarginRight(marginInches).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("chrome print failed: %w", err)
	}
	return buf, nil
}
