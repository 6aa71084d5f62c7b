package export

import (
	"strings"
	"time"
)

// RGB is an 8-bit colour triple.
type RGB struct {
	R, G, B int
}

// Style is the visual envelope shared by every report. It is passed by value and never mutated.
type Style struct {
	PageSize    string
	Orientation string

	MarginLeft   float64
	MarginTop    float64
	MarginRight  float64
	MarginBottom float64

	FontFamily   string
	TitleSize    float64
	SubtitleSize float64
	BodySize     float64
	TableSize    float64
	FooterSize   float64
	LineHeight   float64
	CellPadding  float64

	TitleColor    RGB
	SubtitleColor RGB
	InfoColor     RGB
	TextColor     RGB
	MutedColor    RGB
	HeaderFill    RGB
	HeaderText    RGB
	LabelFill     RGB
	StripeFill    RGB
	GridColor     RGB
	SelectedColor RGB

	TimestampLayout string
	Location        *time.Location

	// Compress deflates page streams; tests turn it off to inspect text.
	Compress bool
}

// DefaultStyle returns the house style used by all documents.
func DefaultStyle() Style {
	return Style{
		PageSize:    "Letter",
		Orientation: "P",

		MarginLeft:   19,
		MarginTop:    19,
		MarginRight:  19,
		MarginBottom: 19,

		FontFamily:   "Helvetica",
		TitleSize:    16,
		SubtitleSize: 12,
		BodySize:     10,
		TableSize:    9,
		FooterSize:   8,
		LineHeight:   5,
		CellPadding:  2,

		TitleColor:    RGB{25, 118, 210},
		SubtitleColor: RGB{66, 66, 66},
		InfoColor:     RGB{97, 97, 97},
		TextColor:     RGB{0, 0, 0},
		MutedColor:    RGB{117, 117, 117},
		HeaderFill:    RGB{25, 118, 210},
		HeaderText:    RGB{245, 245, 245},
		LabelFill:     RGB{227, 242, 253},
		StripeFill:    RGB{245, 245, 245},
		GridColor:     RGB{128, 128, 128},
		SelectedColor: RGB{25, 118, 210},

		TimestampLayout: "02/01/2006 15:04",
		Location:        time.UTC,
		Compress:        true,
	}
}

// WithPageSize returns a copy using the given gofpdf page size. Unknown sizes keep the current one.
func (s Style) WithPageSize(size string) Style {
	switch strings.ToLower(size) {
	case "a4":
		s.PageSize = "A4"
	case "letter":
		s.PageSize = "Letter"
	case "legal":
		s.PageSize = "Legal"
	}
	return s
}

// WithLocation returns a copy that formats timestamps in loc.
func (s Style) WithLocation(loc *time.Location) Style {
	if loc != nil {
		s.Location = loc
	}
	return s
}

// Timestamp formats t for the document footer.
func (s Style) Timestamp(t time.Time) string {
	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(s.TimestampLayout)
}
