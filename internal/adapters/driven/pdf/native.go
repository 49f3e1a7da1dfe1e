package pdf

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/cdcx/internal/core/domain"
	"github.com/custodia-labs/cdcx/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.PageSource = (*Reader)(nil)

const (
	// rowTolerance is the maximum baseline difference, in points, for two
	// glyph runs to share a row.
	rowTolerance = 2.0

	// wordGap is the horizontal gap, as a fraction of font size, above which
	// adjacent runs are separated by a space.
	wordGap = 0.15
)

// Reader extracts page text in-process.
type Reader struct{}

// NewReader creates a native page source.
func NewReader() *Reader {
	return &Reader{}
}

// Name identifies the engine.
func (r *Reader) Name() string {
	return string(domain.PDFEngineNative)
}

// Pages opens the PDF at path and returns its pages in order. Each fragment
// is one visual row of text, top to bottom.
func (r *Reader) Pages(ctx context.Context, path string) ([]domain.Page, error) {
	f, doc, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	total := doc.NumPage()
	pages := make([]domain.Page, 0, total)
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		p := doc.Page(i)
		if p.V.IsNull() {
			continue
		}

		texts, err := pageTexts(p)
		if err != nil {
			return nil, fmt.Errorf("read page %d: %w", i, err)
		}
		pages = append(pages, domain.Page{Number: i, Fragments: groupRows(texts)})
	}

	return pages, nil
}

// pageTexts reads the positioned text runs of a page. The underlying parser
// panics on malformed content streams.
func pageTexts(p pdf.Page) (texts []pdf.Text, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed content stream: %v", r)
		}
	}()
	return p.Content().Text, nil
}

type row struct {
	y     float64
	texts []pdf.Text
}

// groupRows clusters text runs by baseline and renders each cluster as one
// line, ordered top to bottom and left to right.
func groupRows(texts []pdf.Text) []string {
	var rows []*row
	for _, t := range texts {
		if t.S == "" {
			continue
		}

		var target *row
		for _, r := range rows {
			if math.Abs(r.y-t.Y) < rowTolerance {
				target = r
				break
			}
		}
		if target == nil {
			target = &row{y: t.Y}
			rows = append(rows, target)
		}
		target.texts = append(target.texts, t)
	}

	// PDF y grows upwards.
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].y > rows[j].y })

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		if line := renderRow(r.texts); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func renderRow(texts []pdf.Text) string {
	sort.SliceStable(texts, func(i, j int) bool { return texts[i].X < texts[j].X })

	var b strings.Builder
	for i, t := range texts {
		if i > 0 {
			prev := texts[i-1]
			if t.X-(prev.X+prev.W) > wordGap*math.Max(prev.FontSize, 1) {
				b.WriteByte(' ')
			}
		}
		b.WriteString(t.S)
	}
	return strings.TrimSpace(b.String())
}
