package measure

import (
	"bytes"
	"fmt"
	"sync"
	"unicode"

	"github.com/go-text/typesetting/di"
	gofont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"github.com/wudi/pdftable/table"
)

// Shaped measures text by shaping it with HarfBuzz against a TrueType face.
// It is safe for concurrent use.
type Shaped struct {
	face    *gofont.Face
	shaper  shaping.HarfbuzzShaper
	size    float64
	leading float64

	mu     sync.Mutex
	widths map[wordKey]float64
	bounds map[float64]shaping.Bounds
}

type wordKey struct {
	word string
	size float64
}

// ShapedOption configures a Shaped measurer.
type ShapedOption func(*shapedConfig)

type shapedConfig struct {
	ttf     []byte
	size    float64
	leading float64
}

// WithFont sets the TrueType or OpenType font program. Go Regular is used otherwise.
func WithFont(ttf []byte) ShapedOption {
	return func(c *shapedConfig) { c.ttf = ttf }
}

// WithFontSize sets the size applied to plain strings.
func WithFontSize(size float64) ShapedOption {
	return func(c *shapedConfig) { c.size = size }
}

// WithLeading sets the leading applied when the content does not set one.
func WithLeading(leading float64) ShapedOption {
	return func(c *shapedConfig) { c.leading = leading }
}

// NewShaped parses the font and returns a measurer.
func NewShaped(opts ...ShapedOption) (*Shaped, error) {
	cfg := shapedConfig{ttf: goregular.TTF, size: DefaultFontSize, leading: DefaultLeading}
	for _, opt := range opts {
		opt(&cfg)
	}
	face, err := gofont.ParseTTF(bytes.NewReader(cfg.ttf))
	if err != nil {
		return nil, fmt.Errorf("measure: parse font: %w", err)
	}
	return &Shaped{
		face:    face,
		size:    orDefault(cfg.size, DefaultFontSize),
		leading: orDefault(cfg.leading, DefaultLeading),
		widths:  make(map[wordKey]float64),
		bounds:  make(map[float64]shaping.Bounds),
	}, nil
}

// Advance returns the shaped width of s at size in points.
func (s *Shaped) Advance(text string, size float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := wordKey{text, size}
	if w, ok := s.widths[key]; ok {
		return w
	}
	out := s.shape([]rune(text), size)
	w := fromFixed(out.Advance)
	if w < 0 {
		w = -w
	}
	s.widths[key] = w
	return w
}

// Measure implements table.Measurer. Ascent and descent come from the face's line
// bounds at the phrase's size.
func (s *Shaped) Measure(content any, width float64) table.Metrics {
	p, ok := phrase(content, s.size, s.leading)
	if !ok {
		return table.Metrics{}
	}
	lines := Wrap(p.Text, width, p.FontSize, s.Advance)
	b := s.lineBounds(p.FontSize)
	return metrics(len(lines), p, fromFixed(b.Ascent), -fromFixed(b.Descent))
}

func (s *Shaped) lineBounds(size float64) shaping.Bounds {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.bounds[size]; ok {
		return b
	}
	b := s.shape([]rune{' '}, size).LineBounds
	s.bounds[size] = b
	return b
}

// shape must be called with mu held.
func (s *Shaped) shape(runes []rune, size float64) shaping.Output {
	script := detectScript(runes)
	return s.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: scriptDirection(script),
		Face:      s.face,
		Size:      fixed.Int26_6(size * 64),
		Script:    script,
		Language:  language.DefaultLanguage(),
	})
}

func fromFixed(v fixed.Int26_6) float64 { return float64(v) / 64 }

func scriptDirection(script language.Script) di.Direction {
	switch script {
	case language.Arabic, language.Hebrew, language.Syriac, language.Thaana, language.Nko:
		return di.DirectionRTL
	default:
		return di.DirectionLTR
	}
}

// detectScript returns the most frequent script among runes, Latin when none is known.
func detectScript(runes []rune) language.Script {
	counts := make(map[language.Script]int)
	best, bestCount := language.Latin, 0
	for _, r := range runes {
		if unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsDigit(r) {
			continue
		}
		script := language.LookupScript(r)
		if script == language.Unknown || script == language.Common || script == language.Inherited {
			continue
		}
		counts[script]++
		if counts[script] > bestCount {
			best, bestCount = script, counts[script]
		}
	}
	return best
}
