package constraints

import (
	"time"

	"github.com/lintang-b-s/navigatorx-constraints/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/util"
)

// fakeEnv. analytic environment for tests. Land is every point inside one of the land boxes,
// depth and wave height come from plain functions, queries outside bounds fail.
type fakeEnv struct {
	bounds    datastructure.BoundingBox
	landBoxes []datastructure.BoundingBox
	depthFn   func(lat, lon float64) float64
	waveFn    func(lat, lon float64, t time.Time) float64

	depthCalls int
	waveCalls  int
	landCalls  int
}

func newFakeEnv() *fakeEnv {
	return &fakeEnv{
		bounds:  datastructure.NewBoundingBox(-10, -10, 10, 10),
		depthFn: func(lat, lon float64) float64 { return -1000 },
		waveFn:  func(lat, lon float64, t time.Time) float64 { return 1 },
	}
}

func (fe *fakeEnv) checkBounds(lat, lon []float64) error {
	for i := range lat {
		if !fe.bounds.Contains(lat[i], lon[i]) {
			return util.WrapErrorf(nil, util.ErrDataUnavailable, "(%f,%f) outside %s", lat[i], lon[i], fe.bounds)
		}
	}
	return nil
}

func (fe *fakeEnv) InterpolateDepth(lat, lon []float64) ([]float64, error) {
	fe.depthCalls++
	if err := fe.checkBounds(lat, lon); err != nil {
		return nil, err
	}
	out := make([]float64, len(lat))
	for i := range lat {
		out[i] = fe.depthFn(lat[i], lon[i])
	}
	return out, nil
}

func (fe *fakeEnv) InterpolateWaveHeight(lat, lon []float64, t time.Time) ([]float64, error) {
	fe.waveCalls++
	if err := fe.checkBounds(lat, lon); err != nil {
		return nil, err
	}
	out := make([]float64, len(lat))
	for i := range lat {
		out[i] = fe.waveFn(lat[i], lon[i], t)
	}
	return out, nil
}

func (fe *fakeEnv) IsLand(lat, lon []float64) ([]bool, error) {
	fe.landCalls++
	out := make([]bool, len(lat))
	for i := range lat {
		for _, b := range fe.landBoxes {
			if b.Contains(lat[i], lon[i]) {
				out[i] = true
				break
			}
		}
	}
	return out, nil
}

func (fe *fakeEnv) Bounds() datastructure.BoundingBox {
	return fe.bounds
}

var testTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
