package extract

import (
	"errors"
	"strings"
	"time"

	"github.com/custodia-labs/cdcx/internal/core/domain"
	"github.com/custodia-labs/cdcx/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Options configures an Extractor.
type Options struct {
	// Mode selects line or stream segmentation. Empty means lines.
	Mode domain.SegmentMode

	// SkipPrefixes extend DefaultDiscardPrefixes in line mode and
	// DefaultStreamStops in stream mode.
	SkipPrefixes []string

	// StripNameSuffixes applies CleanName to every security name.
	StripNameSuffixes bool

	// Source is the provenance tag. Empty means domain.DefaultSource.
	Source string
}

// Extractor runs normalisation, segmentation and parsing over a whole document.
type Extractor struct {
	opts  Options
	rules DiscardRules
	stops []string
	now   func() time.Time
}

// New creates an Extractor that stamps records with the current time.
func New(opts Options) *Extractor {
	return NewWithClock(opts, time.Now)
}

// NewWithClock creates an Extractor with an injected clock.
func NewWithClock(opts Options, now func() time.Time) *Extractor {
	if opts.Mode == "" {
		opts.Mode = domain.SegmentLines
	}
	if opts.Source == "" {
		opts.Source = domain.DefaultSource
	}
	return &Extractor{
		opts:  opts,
		rules: NewDiscardRules(opts.SkipPrefixes...),
		stops: append(append([]string{}, DefaultStreamStops...), opts.SkipPrefixes...),
		now:   now,
	}
}

// Extract converts pages, in order, into records.
// Rejected blocks are reported in the result and never abort the run.
func (e *Extractor) Extract(pages []domain.Page) domain.ExtractResult {
	result := domain.ExtractResult{Pages: len(pages)}

	var blocks []Block
	if e.opts.Mode == domain.SegmentStream {
		fragments := make([]string, 0, len(pages))
		for _, p := range pages {
			fragments = append(fragments, strings.Join(p.Fragments, " "))
		}
		text := NormaliseText(strings.Join(fragments, " "))
		if text != "" {
			result.Lines = 1
		}
		blocks = SegmentText(text, e.stops)
	} else {
		var lines []string
		for _, p := range pages {
			lines = append(lines, NormaliseLines(p.Fragments)...)
		}
		result.Lines = len(lines)
		blocks = Segment(lines, e.rules)
	}
	result.Blocks = len(blocks)

	prov := Provenance{Source: e.opts.Source, ImportedAt: e.now().UTC()}
	for _, b := range blocks {
		text := b.Text()
		rec, err := ParseBlock(text, prov)
		if err != nil {
			result.Rejections = append(result.Rejections, domain.Rejection{
				Block: text,
				Cause: rejectionCause(err),
			})
			continue
		}
		if e.opts.StripNameSuffixes {
			rec.SecurityName = CleanName(rec.SecurityName)
		}
		result.Records = append(result.Records, rec)
	}

	return result
}

// rejectionCause unwraps a ParseBlock error to its sentinel.
func rejectionCause(err error) error {
	for _, cause := range []error{domain.ErrMalformedHead, domain.ErrMissingTail, domain.ErrNoSymbol} {
		if errors.Is(err, cause) {
			return cause
		}
	}
	return err
}
