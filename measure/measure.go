// Package measure provides text measurers for table cells. Both measurers accept a
// Phrase, a plain string or a fmt.Stringer as cell content.
package measure

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/wudi/pdftable/table"
)

const (
	DefaultFontSize = 12.0
	DefaultLeading  = 1.2
)

// Phrase is a run of text set in one font size.
type Phrase struct {
	Text     string
	FontSize float64
	// Leading is the baseline distance as a multiple of FontSize.
	Leading float64
}

// AdvanceFunc returns the width of s set at size.
type AdvanceFunc func(s string, size float64) float64

func phrase(content any, size, leading float64) (Phrase, bool) {
	var p Phrase
	switch v := content.(type) {
	case nil:
		return Phrase{}, false
	case Phrase:
		p = v
	case *Phrase:
		if v == nil {
			return Phrase{}, false
		}
		p = *v
	case string:
		p = Phrase{Text: v}
	case fmt.Stringer:
		p = Phrase{Text: v.String()}
	default:
		return Phrase{}, false
	}
	if p.FontSize <= 0 {
		p.FontSize = size
	}
	if p.Leading <= 0 {
		p.Leading = leading
	}
	return p, true
}

// Wrap breaks text into lines no wider than width. Words are split on white space,
// line breaks in text are kept and a word wider than width is broken between runes.
// A width of zero or less only breaks at line breaks.
func Wrap(text string, width, size float64, advance AdvanceFunc) []string {
	if text == "" {
		return nil
	}
	var lines []string
	for _, para := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		if width <= 0 {
			lines = append(lines, strings.Join(words, " "))
			continue
		}
		space := advance(" ", size)
		var line string
		var lineWidth float64
		for _, w := range words {
			ww := advance(w, size)
			if line != "" && lineWidth+space+ww <= width {
				line += " " + w
				lineWidth += space + ww
				continue
			}
			if line != "" {
				lines = append(lines, line)
				line, lineWidth = "", 0
			}
			for ww > width && utf8.RuneCountInString(w) > 1 {
				head, rest := breakWord(w, width, size, advance)
				lines = append(lines, head)
				w = rest
				ww = advance(w, size)
			}
			line, lineWidth = w, ww
		}
		lines = append(lines, line)
	}
	return lines
}

// breakWord returns the longest prefix of w that fits width, at least one rune.
func breakWord(w string, width, size float64, advance AdvanceFunc) (string, string) {
	cut := 0
	for i, r := range w {
		next := i + utf8.RuneLen(r)
		if cut > 0 && advance(w[:next], size) > width {
			break
		}
		cut = next
	}
	return w[:cut], w[cut:]
}

func metrics(lines int, p Phrase, ascent, descent float64) table.Metrics {
	if lines == 0 {
		return table.Metrics{}
	}
	leading := p.Leading * p.FontSize
	return table.Metrics{
		Height:  float64(lines) * leading,
		Ascent:  ascent,
		Descent: descent,
		Leading: leading,
	}
}
