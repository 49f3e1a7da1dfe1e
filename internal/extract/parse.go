package extract

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/custodia-labs/cdcx/internal/core/domain"
)

// numToken is a signed plain or comma-grouped integer with an optional fraction.
const numToken = `(?:-?\d{1,3}(?:,\d{3})*|-?\d+)(?:\.\d+)?`

var (
	headPattern = regexp.MustCompile(`^(\d{2}/\d{2}/\d{4})\s+(\d{2}/\d{2}/\d{4})\s+(.*)$`)

	// tailPattern matches the six trailing columns: securities, gross, tax,
	// jh tax, zakat and net. A name ending in digits next to the real tail
	// shifts the match left by one column; that case is not detected.
	tailPattern = regexp.MustCompile(
		`\s(` + numToken + `)\s(` + numToken + `)\s(` + numToken + `)\s(` +
			numToken + `)\s(` + numToken + `)\s(` + numToken + `)\s*$`)

	symbolPattern = regexp.MustCompile(`(?i)^([A-Z0-9]+)\s-\s(.+)$`)
)

// Provenance is stamped on every record produced by ParseBlock.
type Provenance struct {
	Source     string
	ImportedAt time.Time
}

// ParseBlock parses one block's joined text into a record.
//
// The returned error wraps domain.ErrMalformedHead, domain.ErrMissingTail or
// domain.ErrNoSymbol. Numeric columns that fail to parse become zero.
func ParseBlock(text string, prov Provenance) (domain.Record, error) {
	head := headPattern.FindStringSubmatch(text)
	if head == nil {
		return domain.Record{}, fmt.Errorf("%w: %q", domain.ErrMalformedHead, clip(text))
	}
	rest := head[3]

	loc := tailPattern.FindStringSubmatchIndex(rest)
	if loc == nil {
		return domain.Record{}, fmt.Errorf("%w: %q", domain.ErrMissingTail, clip(text))
	}
	tail := make([]string, 6)
	for i := range tail {
		tail[i] = rest[loc[2+2*i]:loc[3+2*i]]
	}

	symbol, name := splitSymbol(strings.TrimSpace(rest[:loc[0]]))
	if symbol == "" {
		return domain.Record{}, fmt.Errorf("%w: %q", domain.ErrNoSymbol, clip(text))
	}

	return domain.Record{
		PaymentDate:  head[1],
		IssueDate:    head[2],
		Symbol:       symbol,
		SecurityName: name,
		Securities:   parseAmount(tail[0]).IntPart(),
		Gross:        parseAmount(tail[1]),
		Tax:          parseAmount(tail[2]),
		JHTax:        parseAmount(tail[3]),
		Zakat:        parseAmount(tail[4]),
		Net:          parseAmount(tail[5]),
		Source:       prov.Source,
		ImportedAt:   prov.ImportedAt,
	}, nil
}

// splitSymbol resolves "SYMBOL - NAME" or, failing that, "SYMBOL NAME...".
func splitSymbol(s string) (symbol, name string) {
	if m := symbolPattern.FindStringSubmatch(s); m != nil {
		return strings.ToUpper(m[1]), strings.TrimSpace(m[2])
	}

	parts := strings.Split(s, " ")
	return strings.ToUpper(parts[0]), strings.TrimSpace(strings.Join(parts[1:], " "))
}

// parseAmount strips thousands separators and parses tok, returning zero on failure.
func parseAmount(tok string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.ReplaceAll(tok, ",", ""))
	if err != nil {
		return decimal.Zero
	}
	return d
}

const clipLen = 60

func clip(s string) string {
	if len(s) <= clipLen {
		return s
	}
	return s[:clipLen] + "..."
}
