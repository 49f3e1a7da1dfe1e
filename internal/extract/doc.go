// Package extract turns CDC dividend statement page text into records.
//
// The pipeline has four pure stages:
//
//   - Normalise: collapse whitespace into trimmed, non-empty lines (or one string)
//   - Segment: group lines into row blocks that start with a dd/mm/yyyy date
//   - ParseBlock: pull two dates, a symbol and name, and six numeric columns from a block
//   - CleanName: optionally cut filer-status suffixes from security names
//
// Extractor wires the stages together and implements driven.Extractor.
// Nothing in this package performs I/O or keeps state between calls.
package extract
