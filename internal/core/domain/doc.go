// Package domain defines the core business entities for cdcx.
//
// This package is part of the hexagonal architecture's innermost layer.
// It defines the fundamental types:
//
//   - Record: One dividend payment row extracted from a CDC statement
//   - SymbolAggregate: Per-security totals
//   - Summary: Overall totals plus the ranked symbol groups
//   - Page: Ordered text fragments from one page of a statement
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. All other packages depend on
// domain, never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library, github.com/shopspring/decimal
//   - Cannot Import: Any internal/ package
package domain
