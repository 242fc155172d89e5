package extract

// Range is the darkest and lightest luminance found in an image.
type Range struct {
	Min uint8
	Max uint8
}

// Span returns Max-Min.
func (r Range) Span() int {
	return int(r.Max) - int(r.Min)
}

// Classifier decides whether a luminance sample is dark. It is used both for
// single pixels while locating the grid and for the mean of a cell interior
// when deciding black cells.
type Classifier interface {
	IsDark(lum float64, r Range) bool
}

// LuminanceThreshold treats a sample as dark when it lies below Fraction of
// the way from the darkest to the lightest luminance in the image.
type LuminanceThreshold struct {
	Fraction float64
}

func (t LuminanceThreshold) IsDark(lum float64, r Range) bool {
	return lum < float64(r.Min)+t.Fraction*float64(r.Span())
}
