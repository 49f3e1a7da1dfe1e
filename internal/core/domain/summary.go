package domain

import "github.com/shopspring/decimal"

// Amounts holds the five monetary sums tracked for a set of records.
type Amounts struct {
	Gross decimal.Decimal `json:"gross"`
	Tax   decimal.Decimal `json:"tax"`
	JHTax decimal.Decimal `json:"jhTax"`
	Zakat decimal.Decimal `json:"zakat"`
	Net   decimal.Decimal `json:"net"`
}

// Add accumulates a record's amounts.
func (a *Amounts) Add(r Record) {
	a.Gross = a.Gross.Add(r.Gross)
	a.Tax = a.Tax.Add(r.Tax)
	a.JHTax = a.JHTax.Add(r.JHTax)
	a.Zakat = a.Zakat.Add(r.Zakat)
	a.Net = a.Net.Add(r.Net)
}

// TaxDeducted is withholding tax plus joint-holder tax.
func (a Amounts) TaxDeducted() decimal.Decimal {
	return a.Tax.Add(a.JHTax)
}

// SymbolAggregate is the per-security total.
type SymbolAggregate struct {
	Symbol string `json:"symbol"`
	Amounts
	Count int `json:"count"`
}

// Totals is the overall total across every record, including symbol-less ones.
type Totals struct {
	Amounts
	Count int `json:"count"`
}

// Summary is the full aggregate view: totals plus groups ordered by descending gross.
type Summary struct {
	Totals Totals            `json:"totals"`
	Groups []SymbolAggregate `json:"groups"`
}
