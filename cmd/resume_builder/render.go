package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/config"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/observability"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/pdf"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/qrcode"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/rendering"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/resume"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/sharelink"
)

// Render formats
const (
	formatHTML = "html"
	formatText = "text"
	formatPDF  = "pdf"
)

var (
	renderInput     string
	renderOutput    string
	renderFormat    string
	renderStyles    string
	renderShareLink string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a resume file to HTML, text or PDF",
	Long: `Assembles a resume JSON file into a document and renders it. HTML and text
are written to stdout unless --out is given; PDF requires --out and a Chrome install.`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderInput, "in", "i", "", "Path to resume JSON file (required)")
	renderCmd.Flags().StringVarP(&renderOutput, "out", "o", "", "Path to output file")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", formatHTML, "Output format: html, text or pdf")
	renderCmd.Flags().StringVar(&renderStyles, "styles", "", "Path to template styles JSON file")
	renderCmd.Flags().StringVar(&renderShareLink, "share-link", "", "Share link to encode as a QR code in the header")

	if err := renderCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	format := strings.ToLower(renderFormat)
	switch format {
	case formatHTML, formatText:
	case formatPDF:
		if renderOutput == "" {
			return fmt.Errorf("--out is required for pdf output")
		}
	default:
		return fmt.Errorf("unknown format %q (want html, text or pdf)", renderFormat)
	}
	if renderShareLink != "" && !sharelink.Valid(renderShareLink) {
		return fmt.Errorf("invalid share link %q", renderShareLink)
	}

	r, err := readResumeFile(renderInput)
	if err != nil {
		return err
	}
	styles, err := readStylesFile(renderStyles)
	if err != nil {
		return err
	}

	var cfg *config.Config
	if format == formatPDF || renderShareLink != "" {
		if cfg, err = config.Load(configFile); err != nil {
			return err
		}
	}

	qr := ""
	if renderShareLink != "" {
		qr, err = qrcode.NewPNGEncoder().Encode(qrcode.ShareURL(cfg.Frontend.URL, renderShareLink))
		if err != nil {
			return fmt.Errorf("failed to generate QR code: %w", err)
		}
	}

	doc, err := resume.Assemble(r, styles, qr)
	if err != nil {
		return fmt.Errorf("failed to assemble document: %w", err)
	}
	html, err := rendering.RenderHTML(doc)
	if err != nil {
		return err
	}

	var out []byte
	switch format {
	case formatHTML:
		out = []byte(html)
	case formatText:
		text, err := rendering.RenderText(html)
		if err != nil {
			return err
		}
		out = []byte(text)
	case formatPDF:
		logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.Format)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()

		renderer := pdf.NewChromeRenderer(pdf.Options{ChromePath: cfg.Chrome.Path, Timeout: cfg.PDF.Timeout}, logger)
		if out, err = renderer.RenderPDF(cmd.Context(), html); err != nil {
			return err
		}
		logger.Info("rendered pdf", zap.String("out", renderOutput), zap.Int("bytes", len(out)))
	}

	if renderOutput == "" {
		_, err := cmd.OutOrStdout().Write(out)
		return err
	}
	return writeOutput(renderOutput, out)
}

// ensureDir creates the parent directory of path if needed
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}
