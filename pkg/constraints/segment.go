package constraints

import (
	"math"
	"time"

	"github.com/lintang-b-s/navigatorx-constraints/pkg/geo"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/util"
)

// SegmentBatch. N candidate transitions (LatStart[i],LonStart[i]) -> (LatEnd[i],LonEnd[i]),
// all evaluated at Time.
type SegmentBatch struct {
	LatStart []float64
	LonStart []float64
	LatEnd   []float64
	LonEnd   []float64
	Time     time.Time
}

func NewSegmentBatch(latStart, lonStart, latEnd, lonEnd []float64, t time.Time) SegmentBatch {
	return SegmentBatch{
		LatStart: latStart,
		LonStart: lonStart,
		LatEnd:   latEnd,
		LonEnd:   lonEnd,
		Time:     t,
	}
}

func (sb SegmentBatch) Len() int {
	return len(sb.LatStart)
}

func (sb SegmentBatch) Validate() error {
	n := len(sb.LatStart)
	if len(sb.LonStart) != n || len(sb.LatEnd) != n || len(sb.LonEnd) != n {
		return util.WrapErrorf(nil, util.ErrBadParamInput,
			"segment batch arrays differ in length: latStart=%d lonStart=%d latEnd=%d lonEnd=%d",
			n, len(sb.LonStart), len(sb.LatEnd), len(sb.LonEnd))
	}
	if i, ok := allFinite(sb.LatStart, sb.LonStart, sb.LatEnd, sb.LonEnd); !ok {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "segment %d has a non-finite coordinate", i)
	}
	return nil
}

// allFinite. index of the first NaN or infinite value across arrs.
func allFinite(arrs ...[]float64) (int, bool) {
	for _, arr := range arrs {
		for i, v := range arr {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return i, false
			}
		}
	}
	return -1, true
}

// RouteLegs. batch of the consecutive legs of a waypoint sequence, all at time t.
func RouteLegs(waypoints []geo.Coordinate, t time.Time) SegmentBatch {
	n := max(len(waypoints)-1, 0)
	sb := SegmentBatch{
		LatStart: make([]float64, n),
		LonStart: make([]float64, n),
		LatEnd:   make([]float64, n),
		LonEnd:   make([]float64, n),
		Time:     t,
	}
	for i := 0; i < n; i++ {
		sb.LatStart[i] = waypoints[i].Lat
		sb.LonStart[i] = waypoints[i].Lon
		sb.LatEnd[i] = waypoints[i+1].Lat
		sb.LonEnd[i] = waypoints[i+1].Lon
	}
	return sb
}
