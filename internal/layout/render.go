package layout

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/vamsiiiiii/CIM-Automation-Platform/pkg/models"
)

// ROI table column widths in millimetres.
var roiColumnWidths = []float64{50, 40, 40, 50}

// Render lays the compiled document out page by page and returns the
// finished PDF.
func Render(doc *models.CompiledDocument) ([]byte, error) {
	log.Info().Str("title", doc.Title).Msg("rendering document")

	d := newDocument()
	d.coverPage(doc.Title, doc.CompanyOverview.Name, doc.CompanyOverview.Industry)

	// Executive summary always opens on its own page.
	d.pdf.AddPage()
	d.chapterTitle("Executive Summary")
	renderParagraphs(d, doc.Sections[models.SectionExecutiveSummary].Content)

	if len(doc.InvestmentHighlights) > 0 {
		d.pdf.Ln(5)
		d.chapterTitle("Investment Highlights")
		for _, h := range doc.InvestmentHighlights {
			d.bulletPoint(h)
		}
	}

	if fin, ok := doc.Sections[models.SectionFinancialAnalysis]; ok {
		d.pdf.Ln(5)
		d.chapterTitle("Financial Analysis")
		renderParagraphs(d, fin.Content)

		if len(fin.Highlights) > 0 {
			d.pdf.Ln(5)
			d.pdf.SetFont(fontFamily, "B", 12)
			d.pdf.CellFormat(0, 8, "Key Metrics:", "", 1, "", false, 0, "")
			for _, h := range fin.Highlights {
				d.bulletPoint(h)
			}
		}
		if fin.Table != nil {
			d.pdf.Ln(5)
			d.renderTable(fin.Table, equalWidths(d, len(fin.Table.Header)))
		}
	}

	if market, ok := doc.Sections[models.SectionMarketAnalysis]; ok {
		d.pdf.Ln(5)
		d.chapterTitle("Market Analysis")
		renderParagraphs(d, market.Content)
	}

	if roi, ok := doc.Sections[models.SectionROIProjections]; ok {
		d.pdf.Ln(5)
		d.chapterTitle("Investment Returns Analysis")

		// Scenario details are tabulated below, so narrative text that
		// already enumerates them is skipped to avoid duplication.
		if roi.Content != "" &&
			(!strings.Contains(roi.Content, "Base Case") || roi.Scenarios == nil) {
			renderParagraphs(d, roi.Content)
		}
		if roi.Table != nil {
			d.pdf.Ln(5)
			d.renderTable(roi.Table, roiColumnWidths)
		}
	}

	if len(doc.RiskFactors) > 0 {
		d.pdf.Ln(5)
		d.chapterTitle("Risk Factors")
		for _, risk := range doc.RiskFactors {
			d.riskFactor(risk)
		}
	}

	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}

	log.Info().Int("pages", d.pdf.PageCount()).Msg("document rendered")
	return buf.Bytes(), nil
}

// Filename derives the suggested download name from the document
// title, keeping it safe for a Content-Disposition header.
func Filename(title string) string {
	if title == "" {
		title = "Confidential Information Memorandum"
	}
	clean := Sanitize(title)
	clean = strings.NewReplacer(`"`, "", "/", "-", "\\", "-").Replace(clean)
	return clean + ".pdf"
}

func renderParagraphs(d *document, content string) {
	for _, para := range strings.Split(content, "\n\n") {
		if para = strings.TrimSpace(para); para != "" {
			d.bodyText(para)
		}
	}
}

func equalWidths(d *document, cols int) []float64 {
	if cols == 0 {
		return nil
	}
	widths := make([]float64, cols)
	w := d.contentWidth() / float64(cols)
	for i := range widths {
		widths[i] = w
	}
	return widths
}

// renderTable draws a header row with inverted colors followed by the
// body rows, forcing a page break first when the estimated height will
// not fit.
func (d *document) renderTable(table *models.Table, widths []float64) {
	if len(table.Header) == 0 || len(widths) < len(table.Header) {
		return
	}

	if d.pdf.GetY() > tableBreakY {
		d.pdf.AddPage()
	}

	d.pdf.SetFont(fontFamily, "B", bodyFontSize)
	d.pdf.SetFillColor(accentColor[0], accentColor[1], accentColor[2])
	d.pdf.SetTextColor(255, 255, 255)
	for i, cell := range table.Header {
		d.pdf.CellFormat(widths[i], 8, Sanitize(cell), "1", 0, "C", true, 0, "")
	}
	d.pdf.Ln(-1)

	d.pdf.SetFont(fontFamily, "", bodyFontSize)
	d.pdf.SetTextColor(bodyColor[0], bodyColor[1], bodyColor[2])
	for _, row := range table.Rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			d.pdf.CellFormat(widths[i], 8, Sanitize(cell), "1", 0, "C", false, 0, "")
		}
		d.pdf.Ln(-1)
	}
}

// riskFactor renders a bold title over its description, kept together
// by breaking early when the pair would straddle the page end.
func (d *document) riskFactor(risk models.RiskFactor) {
	if risk.Description == "" {
		d.bulletPoint(risk.Title)
		return
	}

	if d.pdf.GetY() > labeledBreakY {
		d.pdf.AddPage()
	}

	d.pdf.SetFont(fontFamily, "B", bodyFontSize)
	d.pdf.SetTextColor(bodyColor[0], bodyColor[1], bodyColor[2])
	d.pdf.CellFormat(0, 8, Sanitize(risk.Title), "", 1, "", false, 0, "")

	d.pdf.SetFont(fontFamily, "", bodyFontSize)
	d.pdf.MultiCell(d.contentWidth(), bodyLineHeight, Sanitize(risk.Description), "", "", false)
	d.pdf.Ln(paragraphSpacing)
}
