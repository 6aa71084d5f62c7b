package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

const (
	glyphFont     = "ZapfDingbats"
	glyphChecked  = "4" // heavy check mark
	glyphOpen     = "m" // white circle
	optionIndent  = 6.0
	noteIndent    = 12.0
	footerOffset  = -12.0
	titleSpacing  = 4.0
	blockSpacing  = 1.5
	headingMargin = 3.0
)

// KeyValue is one row of a two-column label/value table.
type KeyValue struct {
	Key   string
	Value string
}

// Document wraps a gofpdf document with the shared report envelope:
// title, generation timestamp footer, margins and colours from Style.
type Document struct {
	pdf         *gofpdf.Fpdf
	style       Style
	tr          func(string) string
	generatedAt time.Time
}

// NewDocument starts a document with its title on the first page.
// generatedAt is the only time-dependent input; fixing it makes the output reproducible.
func NewDocument(style Style, title string, generatedAt time.Time) *Document {
	pdf := gofpdf.New(style.Orientation, "mm", style.PageSize, "")
	pdf.SetMargins(style.MarginLeft, style.MarginTop, style.MarginRight)
	pdf.SetAutoPageBreak(true, style.MarginBottom)
	pdf.SetCompression(style.Compress)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(generatedAt)
	pdf.SetModificationDate(generatedAt)
	pdf.SetTitle(title, true)
	pdf.SetCreator("cursito-api", true)
	pdf.AliasNbPages("")

	d := &Document{
		pdf:         pdf,
		style:       style,
		tr:          pdf.UnicodeTranslatorFromDescriptor(""),
		generatedAt: generatedAt,
	}

	pdf.SetFooterFunc(d.footer)
	pdf.AddPage()

	pdf.SetFont(style.FontFamily, "B", style.TitleSize)
	d.textColor(style.TitleColor)
	pdf.CellFormat(0, 10, d.tr(strings.ToUpper(title)), "", 1, "C", false, 0, "")
	pdf.Ln(titleSpacing)
	return d
}

func (d *Document) footer() {
	pdf := d.pdf
	pdf.SetY(footerOffset)
	pdf.SetFont(d.style.FontFamily, "I", d.style.FooterSize)
	d.textColor(d.style.MutedColor)
	stamp := fmt.Sprintf("Generado: %s", d.style.Timestamp(d.generatedAt))
	page := fmt.Sprintf("Página %d/{nb}", pdf.PageNo())
	pdf.CellFormat(0, 5, d.tr(stamp), "", 0, "L", false, 0, "")
	pdf.SetX(d.style.MarginLeft)
	pdf.CellFormat(0, 5, d.tr(page), "", 0, "R", false, 0, "")
}

// Subtitle writes a section title.
func (d *Document) Subtitle(text string) {
	d.pdf.Ln(headingMargin)
	d.pdf.SetFont(d.style.FontFamily, "B", d.style.SubtitleSize)
	d.textColor(d.style.SubtitleColor)
	d.pdf.MultiCell(0, 7, d.tr(text), "", "L", false)
	d.pdf.Ln(1)
}

// InfoLine writes a bold label followed by its value on the same line.
func (d *Document) InfoLine(label, value string) {
	pdf := d.pdf
	d.textColor(d.style.InfoColor)
	pdf.SetFont(d.style.FontFamily, "B", d.style.BodySize)
	labelText := d.tr(label + ": ")
	pdf.CellFormat(pdf.GetStringWidth(labelText), d.style.LineHeight+1, labelText, "", 0, "L", false, 0, "")
	pdf.SetFont(d.style.FontFamily, "", d.style.BodySize)
	pdf.MultiCell(0, d.style.LineHeight+1, d.tr(value), "", "L", false)
}

// Paragraph writes wrapped body text.
func (d *Document) Paragraph(text string) {
	d.pdf.SetFont(d.style.FontFamily, "", d.style.BodySize)
	d.textColor(d.style.TextColor)
	d.pdf.MultiCell(0, d.style.LineHeight+1, d.tr(text), "", "L", false)
}

// Note writes a muted italic line, used for totals and notices.
func (d *Document) Note(text string) {
	d.pdf.SetFont(d.style.FontFamily, "I", d.style.BodySize)
	d.textColor(d.style.InfoColor)
	d.pdf.MultiCell(0, d.style.LineHeight+1, d.tr(text), "", "L", false)
}

// Spacer adds vertical space in millimetres.
func (d *Document) Spacer(h float64) {
	d.pdf.Ln(h)
}

// Table draws a data table with a distinct header row (repeated after page breaks)
// and alternating row shading.
func (d *Document) Table(t Table) error {
	if len(t.Headers) == 0 {
		return fmt.Errorf("table requires at least one header")
	}
	widths := d.columnWidths(len(t.Headers), t.Widths)
	header := rowStyle{bold: true, fills: uniformFill(len(widths), &d.style.HeaderFill), text: d.style.HeaderText, align: nil}

	d.row(t.Headers, widths, header, nil)
	for i, cells := range t.Rows {
		if len(cells) != len(t.Headers) {
			return fmt.Errorf("table row %d has %d cells, want %d", i, len(cells), len(t.Headers))
		}
		var fill *RGB
		if i%2 == 1 {
			fill = &d.style.StripeFill
		}
		body := rowStyle{fills: uniformFill(len(widths), fill), text: d.style.TextColor, align: t.Align}
		d.row(cells, widths, body, func() { d.row(t.Headers, widths, header, nil) })
	}
	return nil
}

// KeyValueTable draws a two-column table whose label column is shaded.
// header may be nil; when present it is drawn like a data table header.
func (d *Document) KeyValueTable(header []string, rows []KeyValue) error {
	if header != nil && len(header) != 2 {
		return fmt.Errorf("key/value table header needs 2 cells, got %d", len(header))
	}
	widths := d.columnWidths(2, []float64{2, 4.5})
	if header != nil {
		d.row(header, widths, rowStyle{bold: true, fills: uniformFill(2, &d.style.HeaderFill), text: d.style.HeaderText}, nil)
	}
	labelFill := &d.style.LabelFill
	for _, kv := range rows {
		d.row([]string{kv.Key, kv.Value}, widths, rowStyle{
			boldFirst: true,
			fills:     []*RGB{labelFill, nil},
			text:      d.style.TextColor,
			align:     []string{"L", "L"},
		}, nil)
	}
	return nil
}

// Blocks renders paragraph and list blocks in order.
func (d *Document) Blocks(blocks []Block) error {
	for i, b := range blocks {
		switch b.Kind {
		case BlockHeading:
			d.Subtitle(b.Text)
		case BlockPrompt:
			d.pdf.Ln(blockSpacing)
			d.pdf.SetFont(d.style.FontFamily, "B", d.style.BodySize)
			d.textColor(d.style.TextColor)
			d.pdf.MultiCell(0, d.style.LineHeight+1, d.tr(b.Text), "", "L", false)
		case BlockText:
			style := ""
			color := d.style.TextColor
			if b.Muted {
				style = "I"
				color = d.style.MutedColor
			}
			d.pdf.SetFont(d.style.FontFamily, style, d.style.BodySize)
			d.textColor(color)
			d.indented(optionIndent, func(w float64) {
				d.pdf.MultiCell(w, d.style.LineHeight+1, d.tr(b.Text), "", "L", false)
			})
		case BlockOptions:
			for _, opt := range b.Options {
				d.option(opt)
			}
		case BlockNote:
			d.pdf.SetFont(d.style.FontFamily, "I", d.style.BodySize)
			d.textColor(d.style.InfoColor)
			d.indented(noteIndent, func(w float64) {
				d.pdf.MultiCell(w, d.style.LineHeight+1, d.tr(b.Text), "", "L", false)
			})
		default:
			return fmt.Errorf("block %d: unknown kind %d", i, b.Kind)
		}
	}
	return nil
}

// Bytes finalises the document. It must be called once.
func (d *Document) Bytes() ([]byte, error) {
	if err := d.pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	buf := &bytes.Buffer{}
	if err := d.pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (d *Document) option(opt Option) {
	pdf := d.pdf
	lineH := d.style.LineHeight + 1
	pdf.SetX(d.style.MarginLeft + optionIndent)

	pdf.SetFont(glyphFont, "", d.style.BodySize)
	glyph := glyphOpen
	if opt.Selected {
		glyph = glyphChecked
		d.textColor(d.style.SelectedColor)
	} else {
		d.textColor(d.style.MutedColor)
	}
	pdf.CellFormat(6, lineH, glyph, "", 0, "L", false, 0, "")

	if opt.Selected {
		pdf.SetFont(d.style.FontFamily, "B", d.style.BodySize)
		d.textColor(d.style.TextColor)
	} else {
		pdf.SetFont(d.style.FontFamily, "", d.style.BodySize)
		d.textColor(d.style.InfoColor)
	}
	pdf.MultiCell(d.contentWidth()-optionIndent-6, lineH, d.tr(opt.Label), "", "L", false)
}

func (d *Document) indented(indent float64, draw func(w float64)) {
	d.pdf.SetX(d.style.MarginLeft + indent)
	draw(d.contentWidth() - indent)
}

type rowStyle struct {
	bold      bool
	boldFirst bool
	fills     []*RGB
	text      RGB
	align     []string
}

func uniformFill(n int, fill *RGB) []*RGB {
	fills := make([]*RGB, n)
	for i := range fills {
		fills[i] = fill
	}
	return fills
}

// row draws one table row whose height fits the tallest wrapped cell.
// onBreak runs after an inserted page break, before the row is drawn.
func (d *Document) row(cells []string, widths []float64, rs rowStyle, onBreak func()) {
	pdf := d.pdf
	lineH := d.style.LineHeight
	pad := d.style.CellPadding

	lines := make([][][]byte, len(cells))
	maxLines := 1
	for i, cell := range cells {
		pdf.SetFont(d.style.FontFamily, d.cellFontStyle(rs, i), d.style.TableSize)
		split := pdf.SplitLines([]byte(d.tr(cell)), widths[i]-2*pad)
		if len(split) == 0 {
			split = [][]byte{nil}
		}
		lines[i] = split
		if len(split) > maxLines {
			maxLines = len(split)
		}
	}
	h := float64(maxLines)*lineH + 2*pad

	_, pageH := pdf.GetPageSize()
	if pdf.GetY()+h > pageH-d.style.MarginBottom {
		pdf.AddPage()
		if onBreak != nil {
			onBreak()
		}
	}

	x, y := d.style.MarginLeft, pdf.GetY()
	d.drawColor(d.style.GridColor)
	for i, w := range widths {
		style := "D"
		if fill := rs.fills[i]; fill != nil {
			d.fillColor(*fill)
			style = "DF"
		}
		pdf.Rect(x, y, w, h, style)

		align := "C"
		if i < len(rs.align) && rs.align[i] != "" {
			align = rs.align[i]
		}
		pdf.SetFont(d.style.FontFamily, d.cellFontStyle(rs, i), d.style.TableSize)
		d.textColor(rs.text)
		offset := (h - float64(len(lines[i]))*lineH) / 2
		pdf.SetXY(x+pad, y+offset)
		for _, line := range lines[i] {
			pdf.CellFormat(w-2*pad, lineH, string(line), "", 2, align, false, 0, "")
		}
		x += w
	}
	pdf.SetXY(d.style.MarginLeft, y+h)
}

func (d *Document) cellFontStyle(rs rowStyle, col int) string {
	if rs.bold || (rs.boldFirst && col == 0) {
		return "B"
	}
	return ""
}

func (d *Document) columnWidths(n int, weights []float64) []float64 {
	total := d.contentWidth()
	widths := make([]float64, n)
	if len(weights) != n {
		for i := range widths {
			widths[i] = total / float64(n)
		}
		return widths
	}
	var sum float64
	for _, w := range weights {
		sum += w
	}
	for i, w := range weights {
		widths[i] = total * w / sum
	}
	return widths
}

func (d *Document) contentWidth() float64 {
	w, _ := d.pdf.GetPageSize()
	return w - d.style.MarginLeft - d.style.MarginRight
}

func (d *Document) textColor(c RGB) { d.pdf.SetTextColor(c.R, c.G, c.B) }
func (d *Document) fillColor(c RGB) { d.pdf.SetFillColor(c.R, c.G, c.B) }
func (d *Document) drawColor(c RGB) { d.pdf.SetDrawColor(c.R, c.G, c.B) }
