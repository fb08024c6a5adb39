// Package testpdf produces small real PDF documents for tests.
package testpdf

import (
	"bytes"
	"testing"

	"github.com/jung-kurt/gofpdf"
)

// Build renders a one-page PDF with the given lines of text
func Build(t testing.TB, lines ...string) []byte {
	t.Helper()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "", 12)
	for _, line := range lines {
		pdf.MultiCell(0, 8, line, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatalf("render test pdf: %v", err)
	}
	return buf.Bytes()
}
