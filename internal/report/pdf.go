// README: PDF rendering of an itinerary (header, transport table, day plan, totals).
package report

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"tripgen/internal/itinerary"
)

// Meta carries request details that are not part of the itinerary itself.
type Meta struct {
	Origin      string
	Destination string
	Budget      int

	// Offline marks itineraries produced without external services.
	Offline bool
}

const (
	pageWidth    = 210.0
	margin       = 15.0
	contentWidth = pageWidth - 2*margin
)

// Render lays the itinerary out on A4 pages and returns the PDF bytes.
func Render(it itinerary.Itinerary, meta Meta) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetTitle(fmt.Sprintf("Itinerary %s to %s", meta.Origin, meta.Destination), true)
	// Core fonts are cp1252; translate so names with accents survive.
	cp1252 := pdf.UnicodeTranslatorFromDescriptor("")
	tr := func(s string) string { return cp1252(withoutArrows(s)) }
	pdf.AddPage()

	pdf.SetFillColor(13, 24, 37)
	pdf.Rect(0, 0, pageWidth, 24, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(margin, 7)
	pdf.CellFormat(contentWidth, 10, tr(fmt.Sprintf("%s to %s", meta.Origin, meta.Destination)), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetY(30)

	if meta.Offline {
		pdf.SetFillColor(255, 248, 225)
		pdf.SetTextColor(130, 90, 20)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(contentWidth, 5, "Estimated offline itinerary. Costs are placeholders, verify before booking.", "", "C", true)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(3)
	}

	section := func(title string) {
		pdf.SetFillColor(13, 24, 37)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(contentWidth, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	section("Summary")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(contentWidth, 5, tr(it.Summary), "", "L", false)
	if meta.Budget > 0 {
		pdf.MultiCell(contentWidth, 5, fmt.Sprintf("Budget: %d", meta.Budget), "", "L", false)
	}
	pdf.Ln(4)

	section("Transport")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentWidth/2, 7, "Mode", "B", 0, "L", false, 0, "")
	pdf.CellFormat(contentWidth/2, 7, "Cost", "B", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, t := range it.Transport {
		pdf.CellFormat(contentWidth/2, 7, tr(t.Mode), "", 0, "L", false, 0, "")
		pdf.CellFormat(contentWidth/2, 7, costText(t.Cost), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	section("Daily plan")
	for _, d := range it.DailyPlan {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentWidth/2, 7, fmt.Sprintf("Day %d", d.Day), "", 0, "L", false, 0, "")
		pdf.CellFormat(contentWidth/2, 7, strconv.Itoa(d.Cost), "", 1, "R", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, slot := range [][2]string{{"Morning", d.Morning}, {"Afternoon", d.Afternoon}, {"Evening", d.Evening}} {
			pdf.CellFormat(30, 6, slot[0], "", 0, "L", false, 0, "")
			pdf.MultiCell(contentWidth-30, 6, tr(slot[1]), "", "L", false)
		}
		pdf.Ln(2)
	}

	pdf.SetFillColor(212, 168, 67)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentWidth/2, 9, "Total", "", 0, "L", true, 0, "")
	pdf.CellFormat(contentWidth/2, 9, strconv.Itoa(it.TotalCost), "", 1, "R", true, 0, "")
	pdf.Ln(4)

	if it.Notes != "" {
		section("Notes")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(contentWidth, 5, tr(it.Notes), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// cp1252 has no arrow glyphs.
var arrowReplacer = strings.NewReplacer("→", "->", "←", "<-", "↔", "<->", "⇒", "=>")

func withoutArrows(s string) string {
	return arrowReplacer.Replace(s)
}

func costText(cost *int) string {
	if cost == nil {
		return "n/a"
	}
	return strconv.Itoa(*cost)
}
