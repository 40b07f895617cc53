package environment

import (
	"fmt"
	"math"
	"time"

	"github.com/lintang-b-s/navigatorx-constraints/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/spatialindex"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/util"
)

// Dataset. immutable snapshot of the environmental data of one routing run. Any layer may be
// nil, queries against a missing layer fail with ErrDataUnavailable.
type Dataset struct {
	depth *datastructure.Grid
	waves *datastructure.TimeGrid
	land  *spatialindex.LandIndex
}

func NewDataset(depth *datastructure.Grid, waves *datastructure.TimeGrid, land *spatialindex.LandIndex) *Dataset {
	return &Dataset{depth: depth, waves: waves, land: land}
}

func (ds *Dataset) InterpolateDepth(lat, lon []float64) ([]float64, error) {
	if ds.depth == nil {
		return nil, util.WrapErrorf(nil, util.ErrDataUnavailable, "no depth data loaded")
	}
	out := make([]float64, len(lat))
	for i := range lat {
		d, ok := ds.depth.Interpolate(lat[i], lon[i])
		if !ok {
			return nil, util.WrapErrorf(nil, util.ErrDataUnavailable,
				"depth requested at (%f,%f) outside depth grid %s", lat[i], lon[i], ds.depth.BoundingBox())
		}
		if math.IsNaN(d) {
			return nil, util.WrapErrorf(nil, util.ErrDataUnavailable,
				"no depth value at (%f,%f)", lat[i], lon[i])
		}
		out[i] = d
	}
	return out, nil
}

func (ds *Dataset) InterpolateWaveHeight(lat, lon []float64, t time.Time) ([]float64, error) {
	if ds.waves == nil {
		return nil, util.WrapErrorf(nil, util.ErrDataUnavailable, "no wave data loaded")
	}
	out := make([]float64, len(lat))
	for i := range lat {
		h, ok := ds.waves.Interpolate(lat[i], lon[i], t)
		if !ok {
			from, to := ds.waves.TimeRange()
			return nil, util.WrapErrorf(nil, util.ErrDataUnavailable,
				"wave height requested at (%f,%f) %s outside wave grid %s, %s to %s",
				lat[i], lon[i], t.UTC().Format(time.RFC3339), ds.waves.BoundingBox(),
				from.Format(time.RFC3339), to.Format(time.RFC3339))
		}
		if math.IsNaN(h) {
			return nil, util.WrapErrorf(nil, util.ErrDataUnavailable,
				"no wave height value at (%f,%f) %s", lat[i], lon[i], t.UTC().Format(time.RFC3339))
		}
		out[i] = h
	}
	return out, nil
}

func (ds *Dataset) IsLand(lat, lon []float64) ([]bool, error) {
	if ds.land == nil {
		return nil, util.WrapErrorf(nil, util.ErrDataUnavailable, "no land mask loaded")
	}
	out := make([]bool, len(lat))
	for i := range lat {
		// negated so NaN lands here too
		if !(lat[i] >= -90 && lat[i] <= 90 && lon[i] >= -180 && lon[i] <= 180) {
			return nil, util.WrapErrorf(nil, util.ErrDataUnavailable,
				"land mask requested at (%f,%f), outside [-90,90]x[-180,180]", lat[i], lon[i])
		}
		out[i] = ds.land.IsLand(lat[i], lon[i])
	}
	return out, nil
}

// Bounds. extent of the gridded layers, the depth grid wins over the wave grid. Without any
// grid the whole globe is returned.
func (ds *Dataset) Bounds() datastructure.BoundingBox {
	switch {
	case ds.depth != nil:
		return ds.depth.BoundingBox()
	case ds.waves != nil:
		return ds.waves.BoundingBox()
	default:
		return datastructure.NewBoundingBox(-90, -180, 90, 180)
	}
}

func (ds *Dataset) String() string {
	return fmt.Sprintf("dataset{depth: %t, waves: %t, land: %t, bounds: %s}",
		ds.depth != nil, ds.waves != nil, ds.land != nil, ds.Bounds())
}
