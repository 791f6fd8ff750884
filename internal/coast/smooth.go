package coast

import (
	"errors"
	"fmt"

	"cliffline/pkg/geometry"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// MaxPolynomialOrder is the highest Savitzky-Golay order accepted.
const MaxPolynomialOrder = 6

// ErrBadSmoothing indicates an unusable smoothing configuration.
var ErrBadSmoothing = errors.New("coast: invalid smoothing options")

// SmoothingMethod selects the coastline smoothing filter.
type SmoothingMethod int

const (
	SmoothNone SmoothingMethod = iota
	SmoothRunningMean
	SmoothSavitzkyGolay
)

func (m SmoothingMethod) String() string {
	switch m {
	case SmoothNone:
		return "none"
	case SmoothRunningMean:
		return "running-mean"
	case SmoothSavitzkyGolay:
		return "savitzky-golay"
	default:
		return "unknown"
	}
}

// SmoothOptions configures coastline smoothing.
type SmoothOptions struct {
	Method SmoothingMethod
	Window int // odd, >= 3 unless Method is SmoothNone
	Order  int // Savitzky-Golay polynomial order, 0..MaxPolynomialOrder
}

// Validate checks the options.
func (o SmoothOptions) Validate() error {
	if o.Method == SmoothNone {
		return nil
	}
	if o.Window < 3 || o.Window%2 == 0 {
		return fmt.Errorf("%w: window %d must be odd and at least 3", ErrBadSmoothing, o.Window)
	}
	if o.Method == SmoothSavitzkyGolay {
		if o.Order < 0 || o.Order > MaxPolynomialOrder {
			return fmt.Errorf("%w: polynomial order %d outside 0..%d", ErrBadSmoothing, o.Order, MaxPolynomialOrder)
		}
		if o.Order >= o.Window {
			return fmt.Errorf("%w: polynomial order %d must be below window %d", ErrBadSmoothing, o.Order, o.Window)
		}
	}
	return nil
}

// Smooth filters a polyline. Near both ends the window shrinks
// symmetrically so that it never runs off the line; the end points are
// therefore returned unchanged.
func Smooth(points []geometry.Point2D, opts SmoothOptions) ([]geometry.Point2D, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	out := make([]geometry.Point2D, len(points))
	copy(out, points)

	switch opts.Method {
	case SmoothRunningMean:
		runningMean(points, out, opts.Window/2)
	case SmoothSavitzkyGolay:
		if err := savitzkyGolay(points, out, opts.Window/2, opts.Order); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func splitXY(points []geometry.Point2D) (xs, ys []float64) {
	xs = make([]float64, len(points))
	ys = make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.X, p.Y
	}
	return xs, ys
}

// halfWindow returns the half width usable at index i of n points.
func halfWindow(i, n, half int) int {
	return min(half, i, n-1-i)
}

func runningMean(points, out []geometry.Point2D, half int) {
	xs, ys := splitXY(points)
	n := len(points)
	for i := range points {
		h := halfWindow(i, n, half)
		if h == 0 {
			continue
		}
		w := float64(2*h + 1)
		out[i] = geometry.Point2D{
			X: floats.Sum(xs[i-h:i+h+1]) / w,
			Y: floats.Sum(ys[i-h:i+h+1]) / w,
		}
	}
}

func savitzkyGolay(points, out []geometry.Point2D, half, order int) error {
	xs, ys := splitXY(points)
	n := len(points)
	cache := make(map[int][]float64)

	for i := range points {
		h := halfWindow(i, n, half)
		if h == 0 {
			continue
		}
		coef, ok := cache[h]
		if !ok {
			var err error
			// A window of 2h+1 points supports at most order 2h.
			coef, err = sgCoefficients(h, min(order, 2*h))
			if err != nil {
				return err
			}
			cache[h] = coef
		}
		out[i] = geometry.Point2D{
			X: floats.Dot(coef, xs[i-h:i+h+1]),
			Y: floats.Dot(coef, ys[i-h:i+h+1]),
		}
	}
	return nil
}

// sgCoefficients returns the convolution weights that evaluate, at the centre
// of a 2h+1 window, the least-squares polynomial of the given order.
func sgCoefficients(h, order int) ([]float64, error) {
	m := 2*h + 1
	cols := order + 1

	// Vandermonde matrix over offsets -h..h.
	J := mat.NewDense(m, cols, nil)
	for r := 0; r < m; r++ {
		x := float64(r - h)
		v := 1.0
		for c := 0; c < cols; c++ {
			J.Set(r, c, v)
			v *= x
		}
	}

	ident := mat.NewDense(m, m, nil)
	for r := 0; r < m; r++ {
		ident.Set(r, r, 1)
	}

	// Column k of the solution fits the unit impulse at k, so row 0 holds
	// the fitted constant term for each impulse: the filter weights.
	var qr mat.QR
	qr.Factorize(J)
	var fit mat.Dense
	if err := qr.SolveTo(&fit, false, ident); err != nil {
		return nil, fmt.Errorf("savitzky-golay coefficients (half %d, order %d): %w", h, order, err)
	}
	return mat.Row(nil, 0, &fit), nil
}
