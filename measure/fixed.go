package measure

import (
	"unicode/utf8"

	"github.com/wudi/pdftable/table"
)

// Fixed estimates text with a constant advance of half the font size per rune. It
// needs no font program and is fully deterministic.
type Fixed struct {
	// FontSize applies to plain strings; zero means DefaultFontSize.
	FontSize float64
	// Leading applies when the content does not set one; zero means DefaultLeading.
	Leading float64
}

// Advance returns the estimated width of s at size.
func (f Fixed) Advance(s string, size float64) float64 {
	return float64(utf8.RuneCountInString(s)) * size * 0.5
}

// Measure implements table.Measurer.
func (f Fixed) Measure(content any, width float64) table.Metrics {
	p, ok := phrase(content, orDefault(f.FontSize, DefaultFontSize), orDefault(f.Leading, DefaultLeading))
	if !ok {
		return table.Metrics{}
	}
	lines := Wrap(p.Text, width, p.FontSize, f.Advance)
	return metrics(len(lines), p, 0.8*p.FontSize, 0.2*p.FontSize)
}

func orDefault(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}
