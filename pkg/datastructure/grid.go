package datastructure

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"golang.org/x/exp/constraints"
)

var (
	ErrAxisNotIncreasing = errors.New("grid axis must be strictly increasing")
	ErrGridShape         = errors.New("grid values do not match axis lengths")
)

func lerp[T constraints.Float](a, b, frac T) T {
	return a + (b-a)*frac
}

// searchAxis returns i such that axis[i] <= x <= axis[i+1] together with the fractional
// position of x inside that cell. ok is false when x lies outside the axis.
func searchAxis[T constraints.Float](axis []T, x T) (int, T, bool) {
	n := len(axis)
	if n < 2 || x < axis[0] || x > axis[n-1] || x != x {
		return 0, 0, false
	}
	i := sort.Search(n, func(k int) bool { return axis[k] >= x })
	if i == 0 {
		return 0, 0, true
	}
	i--
	return i, (x - axis[i]) / (axis[i+1] - axis[i]), true
}

func strictlyIncreasing[T constraints.Float | constraints.Integer](axis []T) bool {
	for i := 1; i < len(axis); i++ {
		if axis[i] <= axis[i-1] {
			return false
		}
	}
	return true
}

// Grid. regular lat/lon grid, values stored row-major: values[i*len(lons)+j] is the value at
// (lats[i], lons[j]).
type Grid struct {
	lats   []float64
	lons   []float64
	values []float64
}

func NewGrid(lats, lons, values []float64) (*Grid, error) {
	if len(lats) < 2 || len(lons) < 2 || !strictlyIncreasing(lats) || !strictlyIncreasing(lons) {
		return nil, ErrAxisNotIncreasing
	}
	if len(values) != len(lats)*len(lons) {
		return nil, fmt.Errorf("%w: want %d values, got %d", ErrGridShape, len(lats)*len(lons), len(values))
	}
	return &Grid{lats: lats, lons: lons, values: values}, nil
}

func (g *Grid) GetLats() []float64 {
	return g.lats
}

func (g *Grid) GetLons() []float64 {
	return g.lons
}

func (g *Grid) At(i, j int) float64 {
	return g.values[i*len(g.lons)+j]
}

func (g *Grid) BoundingBox() BoundingBox {
	return NewBoundingBox(g.lats[0], g.lons[0], g.lats[len(g.lats)-1], g.lons[len(g.lons)-1])
}

// Interpolate. bilinear interpolation at (lat, lon). Points outside the grid are not
// extrapolated, ok is false for them. A NaN cell corner propagates into the result.
func (g *Grid) Interpolate(lat, lon float64) (float64, bool) {
	i, fy, ok := searchAxis(g.lats, lat)
	if !ok {
		return math.NaN(), false
	}
	j, fx, ok := searchAxis(g.lons, lon)
	if !ok {
		return math.NaN(), false
	}

	i1 := min(i+1, len(g.lats)-1)
	j1 := min(j+1, len(g.lons)-1)

	v00 := g.At(i, j)
	v01 := g.At(i, j1)
	v10 := g.At(i1, j)
	v11 := g.At(i1, j1)

	// skip the corners that carry zero weight so a NaN neighbour does not leak into exact
	// grid-line queries.
	switch fx {
	case 0:
		v01, v11 = v00, v10
	case 1:
		v00, v10 = v01, v11
	}
	switch fy {
	case 0:
		v10, v11 = v00, v01
	case 1:
		v00, v01 = v10, v11
	}

	return lerp(lerp(v00, v01, fx), lerp(v10, v11, fx), fy), true
}

// TimeGrid. Grid layers over a strictly increasing time axis (unix seconds). A static TimeGrid
// has exactly one layer and an empty time axis.
type TimeGrid struct {
	times  []int64
	axis   []float64
	layers []*Grid
}

func NewStaticTimeGrid(g *Grid) *TimeGrid {
	return &TimeGrid{layers: []*Grid{g}}
}

func NewTimeGrid(times []int64, layers []*Grid) (*TimeGrid, error) {
	if len(times) == 0 || len(times) != len(layers) {
		return nil, fmt.Errorf("%w: %d times, %d layers", ErrGridShape, len(times), len(layers))
	}
	if !strictlyIncreasing(times) {
		return nil, ErrAxisNotIncreasing
	}
	for _, l := range layers[1:] {
		if len(l.lats) != len(layers[0].lats) || len(l.lons) != len(layers[0].lons) {
			return nil, fmt.Errorf("%w: layers have different shapes", ErrGridShape)
		}
	}
	axis := make([]float64, len(times))
	for i, s := range times {
		axis[i] = float64(s)
	}
	return &TimeGrid{times: times, axis: axis, layers: layers}, nil
}

func (tg *TimeGrid) IsStatic() bool {
	return len(tg.times) == 0
}

func (tg *TimeGrid) GetTimes() []int64 {
	return tg.times
}

func (tg *TimeGrid) GetLayers() []*Grid {
	return tg.layers
}

func (tg *TimeGrid) Layer(i int) *Grid {
	return tg.layers[i]
}

func (tg *TimeGrid) BoundingBox() BoundingBox {
	return tg.layers[0].BoundingBox()
}

// TimeRange. covered time window, zero times for a static grid.
func (tg *TimeGrid) TimeRange() (time.Time, time.Time) {
	if tg.IsStatic() {
		return time.Time{}, time.Time{}
	}
	return time.Unix(tg.times[0], 0).UTC(), time.Unix(tg.times[len(tg.times)-1], 0).UTC()
}

// Interpolate. bilinear in space, linear in time between the two bracketing layers. A static
// grid ignores t.
func (tg *TimeGrid) Interpolate(lat, lon float64, t time.Time) (float64, bool) {
	if tg.IsStatic() {
		return tg.layers[0].Interpolate(lat, lon)
	}

	ts := float64(t.UnixNano()) / 1e9
	if len(tg.times) == 1 {
		if ts != float64(tg.times[0]) {
			return math.NaN(), false
		}
		return tg.layers[0].Interpolate(lat, lon)
	}

	k, ft, ok := searchAxis(tg.axis, ts)
	if !ok {
		return math.NaN(), false
	}

	a, ok := tg.layers[k].Interpolate(lat, lon)
	if !ok {
		return math.NaN(), false
	}
	if ft == 0 {
		return a, true
	}
	b, ok := tg.layers[k+1].Interpolate(lat, lon)
	if !ok {
		return math.NaN(), false
	}
	return lerp(a, b, ft), true
}
