package pdf

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/custodia-labs/cdcx/internal/core/domain"
	"github.com/custodia-labs/cdcx/internal/core/ports/driven"
)

// Ensure PDFToText implements the interface.
var _ driven.PageSource = (*PDFToText)(nil)

// ErrPDFToolNotFound is returned when pdftotext is not installed.
var ErrPDFToolNotFound = errors.New("pdftotext not found: install poppler-utils")

// pageBreak separates pages in pdftotext output.
const pageBreak = "\f"

// CommandRunner executes an external command and returns its stdout.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands via os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// PDFToText extracts page text with poppler's pdftotext.
type PDFToText struct {
	runner   CommandRunner
	lookPath func(string) (string, error)
}

// NewPDFToText creates a pdftotext page source.
func NewPDFToText() *PDFToText {
	return NewWithRunner(execRunner{})
}

// NewWithRunner creates a pdftotext page source with a custom command runner.
func NewWithRunner(runner CommandRunner) *PDFToText {
	return &PDFToText{runner: runner, lookPath: exec.LookPath}
}

// Name identifies the engine.
func (p *PDFToText) Name() string {
	return string(domain.PDFEnginePDFToText)
}

// Pages runs pdftotext on path and splits its output on form feeds.
func (p *PDFToText) Pages(ctx context.Context, path string) ([]domain.Page, error) {
	if _, err := p.lookPath("pdftotext"); err != nil {
		return nil, ErrPDFToolNotFound
	}

	out, err := p.runner.Run(ctx, "pdftotext", "-layout", "-enc", "UTF-8", path, "-")
	if err != nil {
		return nil, fmt.Errorf("pdftotext failed: %w", err)
	}

	return splitPages(string(out)), nil
}

// splitPages turns form-feed separated text into pages. pdftotext ends the
// last page with a form feed, so a trailing empty chunk is dropped.
func splitPages(out string) []domain.Page {
	chunks := strings.Split(out, pageBreak)
	if n := len(chunks); n > 0 && strings.TrimSpace(chunks[n-1]) == "" {
		chunks = chunks[:n-1]
	}

	pages := make([]domain.Page, 0, len(chunks))
	for i, chunk := range chunks {
		pages = append(pages, domain.Page{
			Number:    i + 1,
			Fragments: strings.Split(chunk, "\n"),
		})
	}
	return pages
}

// CheckAvailable reports whether pdftotext is on PATH.
func CheckAvailable() error {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return ErrPDFToolNotFound
	}
	return nil
}

// InstallInstructions returns platform hints for installing pdftotext.
func InstallInstructions() string {
	return `pdftotext is required for the pdftotext engine.

Install poppler:
  macOS:   brew install poppler
  Ubuntu:  apt install poppler-utils
  Fedora:  dnf install poppler-utils`
}
