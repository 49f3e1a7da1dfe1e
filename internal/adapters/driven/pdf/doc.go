// Package pdf provides driven.PageSource implementations that pull page text
// out of CDC statement PDFs.
//
// Two engines are available:
//   - Reader: in-process parsing via github.com/ledongthuc/pdf, one fragment
//     per visual row
//   - PDFToText: shells out to poppler's pdftotext in layout mode
package pdf
