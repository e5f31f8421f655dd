package table

// Metrics describes laid out content as reported by a Measurer.
type Metrics struct {
	// Height is the number of lines times the leading.
	Height float64
	// Ascent of the first line above its baseline.
	Ascent float64
	// Descent of the last line below its baseline, as a positive value.
	Descent float64
	// Leading is the distance between consecutive baselines.
	Leading float64
}

// Measurer reports the natural size of cell content laid out at the given width.
// A width of zero or less means the content must not be wrapped.
type Measurer interface {
	Measure(content any, width float64) Metrics
}

// MeasurerFunc adapts a function to Measurer.
type MeasurerFunc func(content any, width float64) Metrics

func (f MeasurerFunc) Measure(content any, width float64) Metrics { return f(content, width) }

type zeroMeasurer struct{}

func (zeroMeasurer) Measure(any, float64) Metrics { return Metrics{} }
