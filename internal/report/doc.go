// Package report renders summaries and records for people: the fixed
// plain-text summary, KPI line, summary table and record preview.
package report
