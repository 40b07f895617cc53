package constraints

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/lintang-b-s/navigatorx-constraints/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/geo"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestList(t *testing.T, pars ConstraintParameters, cs ...Constraint) *ConstraintsList {
	t.Helper()
	cl, err := NewConstraintsList(pars, zap.NewNop())
	require.NoError(t, err)
	for _, c := range cs {
		require.NoError(t, cl.AddNegConstraint(c))
	}
	return cl
}

// land only around (0,2), the midpoint of the (0,0) -> (0,4) leg.
func midpointIsland() *fakeEnv {
	env := newFakeEnv()
	env.landBoxes = []datastructure.BoundingBox{datastructure.NewBoundingBox(-0.5, 1.5, 0.5, 2.5)}
	return env
}

func TestSafeCrossingFindsObstacleBetweenEndpoints(t *testing.T) {
	env := midpointIsland()
	pars := DefaultConstraintParameters()
	pars.Resolution = 0.5
	cl := newTestList(t, pars, NewLandCrossing(env))

	got, err := cl.SafeCrossing([]float64{0}, []float64{0}, []float64{0}, []float64{4}, testTime)
	require.NoError(t, err)
	assert.Equal(t, []bool{true}, got)
	assert.Equal(t, []string{"At least one point discarded as crossing land!"}, cl.ConstraintsCrossed())

	got, err = cl.SafeEndpoint([]float64{0}, []float64{4}, testTime)
	require.NoError(t, err)
	assert.Equal(t, []bool{false}, got)
	assert.Empty(t, cl.ConstraintsCrossed())
}

func TestSafeCrossingReachesDestination(t *testing.T) {
	env := newFakeEnv()
	latStart := []float64{-9.123456789, 0, 3.3, -0.000001}
	lonStart := []float64{7.77, 0, -9.9, 0.1}
	latEnd := []float64{9.87654321, 0, -3.3, 0.000001}
	lonEnd := []float64{-8.1, 0, 9.9, 0.1}

	for _, k := range []int{1, 2, 3, 7, 10, 17, 64} {
		t.Run(fmt.Sprintf("resolution 1/%d", k), func(t *testing.T) {
			pars := DefaultConstraintParameters()
			pars.Resolution = 1 / float64(k)
			cl := newTestList(t, pars, NewWaterDepth(env), NewStayOnMap(-10, -10, 10, 10))

			got, err := cl.SafeCrossing(latStart, lonStart, latEnd, lonEnd, testTime)
			require.NoError(t, err)
			assert.Equal(t, []bool{false, false, false, false}, got)
		})
	}
}

func TestSafeCrossingGeometryError(t *testing.T) {
	env := newFakeEnv()
	pars := DefaultConstraintParameters()
	pars.Resolution = 0.3
	cl := newTestList(t, pars, NewLandCrossing(env))

	_, err := cl.SafeCrossing([]float64{0, 0}, []float64{0, 0}, []float64{0, 1}, []float64{0, 1}, testTime)
	require.Error(t, err)
	assert.True(t, util.IsCode(err, util.ErrGeometry))
	assert.Contains(t, err.Error(), "segment 1")
}

func TestSafeCrossingStartIsNotChecked(t *testing.T) {
	env := newFakeEnv()
	env.landBoxes = []datastructure.BoundingBox{datastructure.NewBoundingBox(-0.1, -0.1, 0.1, 0.1)}
	cl := newTestList(t, DefaultConstraintParameters(), NewLandCrossing(env))

	got, err := cl.SafeCrossing([]float64{0}, []float64{0}, []float64{0}, []float64{5}, testTime)
	require.NoError(t, err)
	assert.Equal(t, []bool{false}, got)
	// ten sub-steps, one land query each
	assert.Equal(t, 10, env.landCalls)
}

func TestSafeCrossingMessagesOncePerConstraint(t *testing.T) {
	env := midpointIsland()
	env.waveFn = func(lat, lon float64, _ time.Time) float64 { return 12 }
	pars := DefaultConstraintParameters()
	pars.Resolution = 0.25
	cl := newTestList(t, pars, NewLandCrossing(env), NewWaveHeight(env), NewWaterDepth(env))

	got, err := cl.SafeCrossing(
		[]float64{0, 5}, []float64{0, 5},
		[]float64{0, 6}, []float64{4, 6}, testTime)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true}, got)
	assert.Equal(t, []string{
		"At least one point discarded as crossing land!",
		"At least one point discarded as waves are too high!",
	}, cl.ConstraintsCrossed())
}

func TestSafeCrossingIsIdempotent(t *testing.T) {
	env := midpointIsland()
	pars := DefaultConstraintParameters()
	pars.Resolution = 0.5
	cl := newTestList(t, pars, NewLandCrossing(env), NewWaterDepth(env))

	latStart := []float64{0, 5}
	lonStart := []float64{0, 5}
	latEnd := []float64{0, 6}
	lonEnd := []float64{4, 6}

	first, err := cl.SafeCrossing(latStart, lonStart, latEnd, lonEnd, testTime)
	require.NoError(t, err)
	firstMsgs := cl.ConstraintsCrossed()

	second, err := cl.SafeCrossing(latStart, lonStart, latEnd, lonEnd, testTime)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, firstMsgs, cl.ConstraintsCrossed())

	// inputs untouched
	assert.Equal(t, []float64{0, 5}, latStart)
	assert.Equal(t, []float64{0, 5}, lonStart)
}

func TestEmptyBatch(t *testing.T) {
	env := newFakeEnv()
	cl := newTestList(t, DefaultConstraintParameters(), NewLandCrossing(env), NewStayOnMap(0, 0, 1, 1))

	got, err := cl.SafeCrossing([]float64{}, []float64{}, []float64{}, []float64{}, testTime)
	require.NoError(t, err)
	assert.Len(t, got, 0)

	got, err = cl.SafeEndpoint([]float64{}, []float64{}, testTime)
	require.NoError(t, err)
	assert.Len(t, got, 0)
	assert.Empty(t, cl.ConstraintsCrossed())
}

func TestNoNegativeConstraints(t *testing.T) {
	cl := newTestList(t, DefaultConstraintParameters())

	got, err := cl.SafeCrossing([]float64{0, 1}, []float64{0, 1}, []float64{50, 1}, []float64{50, 2}, testTime)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, false}, got)
	assert.Empty(t, cl.ConstraintsCrossed())
}

func TestSafeEndpointOrAccumulation(t *testing.T) {
	env := newFakeEnv()
	env.landBoxes = []datastructure.BoundingBox{datastructure.NewBoundingBox(1, 1, 2, 2)}
	cl := newTestList(t, DefaultConstraintParameters(), NewStayOnMap(0, 0, 5, 5), NewLandCrossing(env))

	got, err := cl.SafeEndpoint([]float64{1.5, 3, 6}, []float64{1.5, 3, 6}, testTime)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true}, got)
	assert.Equal(t, []string{
		"At least one point discarded as leaving weather map!",
		"At least one point discarded as crossing land!",
	}, cl.ConstraintsCrossed())
}

func TestSafeEndpointLengthMismatch(t *testing.T) {
	cl := newTestList(t, DefaultConstraintParameters())
	_, err := cl.SafeEndpoint([]float64{1, 2}, []float64{1}, testTime)
	require.Error(t, err)
	assert.True(t, util.IsCode(err, util.ErrBadParamInput))
}

func TestSafeEndpointRejectsNonFinite(t *testing.T) {
	env := newFakeEnv()
	cl := newTestList(t, DefaultConstraintParameters(), NewStayOnMap(-10, -10, 10, 10), NewLandCrossing(env))

	testCases := []struct {
		name string
		lat  []float64
		lon  []float64
	}{
		{name: "nan latitude", lat: []float64{0, math.NaN()}, lon: []float64{0, 0}},
		{name: "nan longitude", lat: []float64{0}, lon: []float64{math.NaN()}},
		{name: "infinite latitude", lat: []float64{math.Inf(1)}, lon: []float64{0}},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cl.SafeEndpoint(tt.lat, tt.lon, testTime)
			require.Error(t, err)
			assert.True(t, util.IsCode(err, util.ErrBadParamInput))
			assert.Nil(t, got)
		})
	}

	_, err := cl.SafeCrossing([]float64{0}, []float64{math.NaN()}, []float64{1}, []float64{1}, testTime)
	require.Error(t, err)
	assert.True(t, util.IsCode(err, util.ErrBadParamInput))
}

func TestSafeCrossingDataUnavailable(t *testing.T) {
	env := newFakeEnv()
	cl := newTestList(t, DefaultConstraintParameters(), NewLandCrossing(env), NewWaterDepth(env))

	_, err := cl.SafeCrossing([]float64{0}, []float64{0}, []float64{20}, []float64{0}, testTime)
	require.Error(t, err)
	assert.True(t, util.IsCode(err, util.ErrDataUnavailable))
}

func TestEvaluateSegmentsModes(t *testing.T) {
	batch := NewSegmentBatch([]float64{0}, []float64{0}, []float64{0}, []float64{4}, testTime)

	testCases := []struct {
		name          string
		checkCrossing bool
		checkEndpoint bool
		want          []bool
		wantMsgs      int
	}{
		{name: "crossing", checkCrossing: true, checkEndpoint: true, want: []bool{true}, wantMsgs: 1},
		{name: "crossing only", checkCrossing: true, checkEndpoint: false, want: []bool{true}, wantMsgs: 1},
		{name: "endpoints", checkCrossing: false, checkEndpoint: true, want: []bool{false}, wantMsgs: 0},
		{name: "nothing", checkCrossing: false, checkEndpoint: false, want: []bool{false}, wantMsgs: 0},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			env := midpointIsland()
			pars := DefaultConstraintParameters()
			pars.Resolution = 0.5
			pars.CheckCrossing = tt.checkCrossing
			pars.CheckEndpointsOnly = tt.checkEndpoint
			cl := newTestList(t, pars, NewLandCrossing(env))

			got, msgs, err := cl.EvaluateSegments(batch)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Len(t, msgs, tt.wantMsgs)
		})
	}
}

func TestEvaluateSegmentsEndpointModeUsesSegmentEnds(t *testing.T) {
	env := newFakeEnv()
	env.landBoxes = []datastructure.BoundingBox{datastructure.NewBoundingBox(3.5, 3.5, 4.5, 4.5)}
	pars := DefaultConstraintParameters()
	pars.CheckCrossing = false
	cl := newTestList(t, pars, NewLandCrossing(env))

	batch := NewSegmentBatch([]float64{4, 0}, []float64{4, 0}, []float64{0, 4}, []float64{0, 4}, testTime)
	got, _, err := cl.EvaluateSegments(batch)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true}, got)
}

func TestEvaluateSegmentsInvalidBatch(t *testing.T) {
	cl := newTestList(t, DefaultConstraintParameters())

	_, _, err := cl.EvaluateSegments(NewSegmentBatch([]float64{0, 1}, []float64{0}, []float64{0}, []float64{0}, testTime))
	require.Error(t, err)
	assert.True(t, util.IsCode(err, util.ErrBadParamInput))
}

func TestParallelMatchesSequential(t *testing.T) {
	newEnv := func() *fakeEnv {
		env := midpointIsland()
		env.depthFn = func(lat, lon float64) float64 { return -10 - 10*lon }
		env.waveFn = func(lat, lon float64, _ time.Time) float64 { return 2 + lat }
		return env
	}
	latStart := []float64{0, 0, 5, -5, 9}
	lonStart := []float64{0, 3, 5, -5, 9}
	latEnd := []float64{0, 9, 6, -4, 9.5}
	lonEnd := []float64{4, 3, 6, -3, 9.5}

	run := func(parallel bool, workers int) ([]bool, []string) {
		env := newEnv()
		pars := DefaultConstraintParameters()
		pars.Parallel = parallel
		pars.Workers = workers
		wd := NewWaterDepth(env)
		wd.SetDraft(20)
		cl := newTestList(t, pars, NewStayOnMap(-9, -9, 9, 9), NewLandCrossing(env), wd, NewWaveHeight(env))
		got, err := cl.SafeCrossing(latStart, lonStart, latEnd, lonEnd, testTime)
		require.NoError(t, err)
		return got, cl.ConstraintsCrossed()
	}

	wantMask, wantMsgs := run(false, 0)
	require.NotEmpty(t, wantMsgs)
	for _, workers := range []int{0, 1, 2, 8} {
		gotMask, gotMsgs := run(true, workers)
		assert.Equal(t, wantMask, gotMask, "workers=%d", workers)
		assert.Equal(t, wantMsgs, gotMsgs, "workers=%d", workers)
	}
}

func TestAddConstraintKindCheck(t *testing.T) {
	cl := newTestList(t, DefaultConstraintParameters())
	pos := NewPositiveConstraint("Waterway", "follow the channel", func(lat, lon float64, _ time.Time) bool { return false })
	neg := NewStayOnMap(0, 0, 1, 1)

	err := cl.AddNegConstraint(pos)
	require.Error(t, err)
	assert.True(t, util.IsCode(err, util.ErrConfiguration))

	err = cl.AddPosConstraint(neg)
	require.Error(t, err)
	assert.True(t, util.IsCode(err, util.ErrConfiguration))

	require.NoError(t, cl.AddPosConstraint(pos))
	require.NoError(t, cl.AddNegConstraint(neg))
	assert.Equal(t, 1, cl.PosSize())
	assert.Equal(t, 1, cl.NegSize())
	assert.Equal(t, []string{"StayOnMap: " + neg.Info(), "Waterway: follow the channel"}, cl.ActiveConstraints())
}

func TestNewConstraintsListRejectsInvalidParameters(t *testing.T) {
	for _, res := range []float64{0, -0.1, 1.5, 1e-20} {
		pars := DefaultConstraintParameters()
		pars.Resolution = res
		_, err := NewConstraintsList(pars, zap.NewNop())
		require.Error(t, err, "resolution=%g", res)
		assert.True(t, util.IsCode(err, util.ErrConfiguration))
	}
}

func TestNSteps(t *testing.T) {
	testCases := []struct {
		resolution float64
		want       int
	}{
		{resolution: 1, want: 1},
		{resolution: 0.5, want: 2},
		{resolution: 0.1, want: 10},
		{resolution: 0.3, want: 3},
		{resolution: 1.0 / 3, want: 3},
	}
	for _, tt := range testCases {
		pars := ConstraintParameters{Resolution: tt.resolution}
		assert.Equal(t, tt.want, pars.NSteps())
	}
}

func TestRouteLegs(t *testing.T) {
	wps := []geo.Coordinate{geo.NewCoordinate(1, 2), geo.NewCoordinate(3, 4), geo.NewCoordinate(5, 6)}
	sb := RouteLegs(wps, testTime)
	assert.Equal(t, 2, sb.Len())
	assert.Equal(t, []float64{1, 3}, sb.LatStart)
	assert.Equal(t, []float64{2, 4}, sb.LonStart)
	assert.Equal(t, []float64{3, 5}, sb.LatEnd)
	assert.Equal(t, []float64{4, 6}, sb.LonEnd)
	assert.Equal(t, testTime, sb.Time)

	assert.Equal(t, 0, RouteLegs(wps[:1], testTime).Len())
}
