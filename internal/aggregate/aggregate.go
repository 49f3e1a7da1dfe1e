// Package aggregate computes totals and per-symbol groups over records.
// Every call recomputes from the records it is given; nothing is cached.
package aggregate

import (
	"sort"
	"strings"

	"github.com/custodia-labs/cdcx/internal/core/domain"
)

// Summarise totals every record and groups records by upper-cased symbol.
//
// Records with an empty symbol count towards the totals but form no group.
// Groups are ordered by descending gross; equal gross keeps first-seen order.
func Summarise(records []domain.Record) domain.Summary {
	var (
		totals domain.Totals
		groups []domain.SymbolAggregate
		index  = make(map[string]int)
	)

	for _, r := range records {
		totals.Add(r)
		totals.Count++

		symbol := strings.ToUpper(r.Symbol)
		if symbol == "" {
			continue
		}
		i, ok := index[symbol]
		if !ok {
			i = len(groups)
			index[symbol] = i
			groups = append(groups, domain.SymbolAggregate{Symbol: symbol})
		}
		groups[i].Add(r)
		groups[i].Count++
	}

	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].Gross.GreaterThan(groups[b].Gross)
	})

	return domain.Summary{Totals: totals, Groups: groups}
}
