package extract

import (
	"regexp"
	"strings"
)

// DefaultDiscardPrefixes are the boilerplate line prefixes of the CDC report:
// title, print stamp, column headers, footnotes and totals.
var DefaultDiscardPrefixes = []string{
	"Dividend / Zakat",
	"Date and Time Printed",
	"UIN",
	"Name",
	"Security Symbol",
	"Payment Date",
	"* As per Issuer",
	"Disclaimer",
	"By accessing",
	"End of Report",
	"Total ",
}

// DefaultStreamStops are the boilerplate phrases that end a row in stream
// mode: footers, plus the title, print stamp and column header repeated at
// the top of every page.
var DefaultStreamStops = []string{
	"Dividend / Zakat",
	"Date and Time Printed",
	"Payment Date",
	"Total ",
	"End of Report",
	"* As per Issuer",
	"Disclaimer",
	"By accessing",
}

var (
	rowStart = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}\b`)

	// rowMarker finds row starts inside a flattened page: two dates at the
	// start of the text or after a space.
	rowMarker = regexp.MustCompile(`(?:^| )(\d{2}/\d{2}/\d{4} \d{2}/\d{2}/\d{4})\b`)
)

// DiscardRules is a table of case-sensitive line prefixes.
// A line starting with any prefix is dropped before segmentation.
type DiscardRules struct {
	prefixes []string
}

// NewDiscardRules returns the default prefixes plus extra.
// Empty extra prefixes are ignored since they would match every line.
func NewDiscardRules(extra ...string) DiscardRules {
	prefixes := make([]string, 0, len(DefaultDiscardPrefixes)+len(extra))
	prefixes = append(prefixes, DefaultDiscardPrefixes...)
	for _, p := range extra {
		if p != "" {
			prefixes = append(prefixes, p)
		}
	}
	return DiscardRules{prefixes: prefixes}
}

// Match reports whether line starts with a discard prefix.
func (r DiscardRules) Match(line string) bool {
	for _, p := range r.prefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

// Prefixes returns a copy of the rule table.
func (r DiscardRules) Prefixes() []string {
	out := make([]string, len(r.prefixes))
	copy(out, r.prefixes)
	return out
}

// Block is the text of one candidate record: a row-start line followed by
// its wrapped continuation lines.
type Block struct {
	Lines []string
}

// Text joins the block's lines with single spaces.
func (b Block) Text() string {
	return strings.Join(b.Lines, " ")
}

// IsRowStart reports whether a normalised line begins a new record.
func IsRowStart(line string) bool {
	return rowStart.MatchString(line)
}

// Segment partitions normalised lines into blocks.
//
// Discarded lines are skipped. A row-start line closes the open block and
// opens a new one; any other line is appended to the open block, or dropped
// when no block is open. The last open block is emitted at end of input.
func Segment(lines []string, rules DiscardRules) []Block {
	var (
		blocks  []Block
		current []string
	)

	for _, line := range lines {
		if rules.Match(line) {
			continue
		}

		switch {
		case IsRowStart(line):
			if len(current) > 0 {
				blocks = append(blocks, Block{Lines: current})
			}
			current = []string{line}
		case len(current) > 0:
			current = append(current, line)
		}
	}

	if len(current) > 0 {
		blocks = append(blocks, Block{Lines: current})
	}
	return blocks
}

// SegmentText partitions one normalised string at every two-date row marker.
// Text before the first marker is dropped, and each block is cut at the first
// " "+stop found in it.
func SegmentText(text string, stops []string) []Block {
	matches := rowMarker.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	blocks := make([]Block, 0, len(matches))
	for i, m := range matches {
		start := m[2]
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		if chunk := strings.TrimSpace(cutAtStop(text[start:end], stops)); chunk != "" {
			blocks = append(blocks, Block{Lines: []string{chunk}})
		}
	}
	return blocks
}

func cutAtStop(chunk string, stops []string) string {
	for _, stop := range stops {
		if stop == "" {
			continue
		}
		if i := strings.Index(chunk, " "+stop); i >= 0 {
			chunk = chunk[:i]
		}
	}
	return chunk
}
