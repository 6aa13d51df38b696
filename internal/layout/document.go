package layout

import (
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
)

// ════════════════════════════════════════════════════════════════════
// Page geometry and palette
// ════════════════════════════════════════════════════════════════════

// Break thresholds in millimetres from the top of an A4 page. Blocks
// that start below their threshold would be orphaned by the automatic
// page break, so they force a fresh page instead.
const (
	chapterBreakY = 220 // title plus at least some following content
	labeledBreakY = 240 // label:value bullet block, risk title+body
	bulletBreakY  = 250 // single plain bullet line
	tableBreakY   = 210 // scenario table, header plus three rows
)

const (
	fontFamily       = "Helvetica"
	bodyFontSize     = 11
	bodyLineHeight   = 6
	autoBreakMargin  = 20
	bulletIndent     = 10
	paragraphSpacing = 3
)

var (
	accentColor       = [3]int{25, 118, 210} // chapter titles, table fill
	bodyColor         = [3]int{51, 51, 51}
	subduedColor      = [3]int{85, 85, 85}
	confidentialColor = [3]int{211, 47, 47}
	headerColor       = [3]int{100, 100, 100}
	footerColor       = [3]int{128, 128, 128}
)

// document wraps an in-progress PDF with the house typography rules.
type document struct {
	pdf *fpdf.Fpdf
}

func newDocument() *document {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, autoBreakMargin)

	pdf.SetHeaderFunc(func() {
		pdf.SetFont(fontFamily, "B", 10)
		pdf.SetTextColor(headerColor[0], headerColor[1], headerColor[2])
		pdf.CellFormat(0, 10, "CONFIDENTIAL", "", 0, "R", false, 0, "")
		pdf.Ln(5)
	})

	pdf.SetFooterFunc(func() {
		pdf.SetY(-20)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.SetTextColor(footerColor[0], footerColor[1], footerColor[2])
		pdf.CellFormat(0, 5, "CONFIDENTIAL AND PROPRIETARY", "", 1, "C", false, 0, "")
		pdf.CellFormat(0, 5,
			"This document contains confidential and proprietary information. Distribution is restricted to authorized parties only.",
			"", 1, "C", false, 0, "")
		pdf.CellFormat(0, 5, "Page "+strconv.Itoa(pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	return &document{pdf: pdf}
}

// contentWidth is the printable width between the side margins.
func (d *document) contentWidth() float64 {
	pageWidth, _ := d.pdf.GetPageSize()
	left, _, right, _ := d.pdf.GetMargins()
	return pageWidth - left - right
}

// ════════════════════════════════════════════════════════════════════
// Block primitives
// ════════════════════════════════════════════════════════════════════

// chapterTitle renders a blue underlined section heading, breaking to
// a new page first when too little room remains beneath it.
func (d *document) chapterTitle(title string) {
	title = Sanitize(title)

	if d.pdf.GetY() > chapterBreakY {
		d.pdf.AddPage()
	}

	d.pdf.SetFont(fontFamily, "B", 16)
	d.pdf.SetTextColor(accentColor[0], accentColor[1], accentColor[2])
	d.pdf.CellFormat(0, 10, title, "", 1, "", false, 0, "")
	d.pdf.SetDrawColor(accentColor[0], accentColor[1], accentColor[2])
	d.pdf.Line(10, d.pdf.GetY(), 200, d.pdf.GetY())
	d.pdf.Ln(5)
}

// bodyText renders a block line by line so embedded headings keep
// their own weight instead of being swallowed by the paragraph.
func (d *document) bodyText(text string) {
	for _, line := range strings.Split(text, "\n") {
		line = Sanitize(strings.TrimSpace(line))
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "#"):
			d.pdf.SetFont(fontFamily, "B", bodyFontSize)
			d.pdf.SetTextColor(bodyColor[0], bodyColor[1], bodyColor[2])
			clean := strings.TrimSpace(strings.TrimLeft(line, "#"))
			d.pdf.MultiCell(d.contentWidth(), bodyLineHeight, clean, "", "", false)
			d.pdf.Ln(1)

		case strings.HasPrefix(line, "**") && strings.Contains(line[2:], "**"):
			d.pdf.SetFont(fontFamily, "B", bodyFontSize)
			d.pdf.SetTextColor(bodyColor[0], bodyColor[1], bodyColor[2])
			clean := strings.TrimSpace(strings.ReplaceAll(line, "**", ""))
			d.pdf.MultiCell(d.contentWidth(), bodyLineHeight, clean, "", "", false)
			d.pdf.Ln(1)

		default:
			d.pdf.SetFont(fontFamily, "", bodyFontSize)
			d.pdf.SetTextColor(bodyColor[0], bodyColor[1], bodyColor[2])
			clean := strings.ReplaceAll(line, "**", "")
			d.pdf.MultiCell(d.contentWidth(), bodyLineHeight, clean, "", "", false)
			d.pdf.Ln(paragraphSpacing)
		}
	}
}

// bulletPoint renders one list item. Items that are really headings
// are re-routed through bodyText; a short "Label: value" prefix is
// bolded inline.
func (d *document) bulletPoint(text string) {
	text = Sanitize(text)

	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "**") {
		d.bodyText(text)
		return
	}

	if idx := strings.Index(text, ":"); idx >= 0 && idx < 60 {
		label := strings.TrimSpace(text[:idx])
		rest := strings.TrimSpace(text[idx+1:])

		if d.pdf.GetY() > labeledBreakY {
			d.pdf.AddPage()
		}

		d.pdf.CellFormat(bulletIndent, bodyLineHeight, "*", "", 0, "", false, 0, "")
		d.pdf.SetFont(fontFamily, "B", bodyFontSize)
		d.pdf.SetTextColor(bodyColor[0], bodyColor[1], bodyColor[2])
		d.pdf.Write(bodyLineHeight, label+": ")
		d.pdf.SetFont(fontFamily, "", bodyFontSize)
		d.pdf.Write(bodyLineHeight, rest)
		d.pdf.Ln(bodyLineHeight)
		return
	}

	d.pdf.SetFont(fontFamily, "", bodyFontSize)
	d.pdf.SetTextColor(bodyColor[0], bodyColor[1], bodyColor[2])

	if d.pdf.GetY() > bulletBreakY {
		d.pdf.AddPage()
	}

	d.pdf.CellFormat(bulletIndent, bodyLineHeight, "*", "", 0, "", false, 0, "")
	d.pdf.MultiCell(d.contentWidth()-bulletIndent, bodyLineHeight, text, "", "", false)
}

// coverPage renders the fixed first page: mark, title, company line,
// and the boxed confidentiality stamp.
func (d *document) coverPage(title, companyName, industry string) {
	d.pdf.AddPage()

	d.pdf.SetFont(fontFamily, "B", 36)
	d.pdf.SetTextColor(accentColor[0], accentColor[1], accentColor[2])
	d.pdf.Ln(60)
	d.pdf.CellFormat(0, 20, "CIM", "", 1, "C", false, 0, "")

	d.pdf.SetFont(fontFamily, "B", 24)
	d.pdf.SetTextColor(bodyColor[0], bodyColor[1], bodyColor[2])
	d.pdf.Ln(10)
	d.pdf.MultiCell(d.contentWidth(), 12, Sanitize(title), "", "C", false)

	d.pdf.SetFont(fontFamily, "", 18)
	d.pdf.SetTextColor(subduedColor[0], subduedColor[1], subduedColor[2])
	d.pdf.Ln(10)
	d.pdf.CellFormat(0, 10, Sanitize(companyName), "", 1, "C", false, 0, "")
	d.pdf.CellFormat(0, 10, Sanitize(industry), "", 1, "C", false, 0, "")

	d.pdf.Ln(30)
	d.pdf.SetFont(fontFamily, "B", 12)
	d.pdf.SetTextColor(confidentialColor[0], confidentialColor[1], confidentialColor[2])
	d.pdf.SetDrawColor(confidentialColor[0], confidentialColor[1], confidentialColor[2])
	d.pdf.Rect(70, d.pdf.GetY(), 70, 12, "D")
	d.pdf.CellFormat(0, 12, "CONFIDENTIAL", "", 0, "C", false, 0, "")
}
