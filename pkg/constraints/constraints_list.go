package constraints

import (
	"time"

	"github.com/lintang-b-s/navigatorx-constraints/pkg"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/concurrent"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/geo"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/util"
	"go.uber.org/zap"
)

/*
ConstraintsList. ordered registrations of positive and negative constraints for one routing run.

Constraints are registered during setup and the list is then queried many times by the isochrone
search. A query is not safe for concurrent use with another query on the same list: the list
keeps the messages of the most recent query, and environment constraints keep their last
computed values.
*/
type ConstraintsList struct {
	pars                ConstraintParameters
	positiveConstraints []Constraint
	negativeConstraints []Constraint
	constraintsCrossed  []string
	log                 *zap.Logger
}

func NewConstraintsList(pars ConstraintParameters, log *zap.Logger) (*ConstraintsList, error) {
	if err := pars.Validate(); err != nil {
		return nil, err
	}
	return &ConstraintsList{
		pars:                pars,
		positiveConstraints: make([]Constraint, 0),
		negativeConstraints: make([]Constraint, 0),
		log:                 log,
	}, nil
}

func (cl *ConstraintsList) AddPosConstraint(c Constraint) error {
	if c.Kind() != POSITIVE {
		return util.WrapErrorf(nil, util.ErrConfiguration, "constraint %s is %s, not positive", c.Name(), c.Kind())
	}
	cl.positiveConstraints = append(cl.positiveConstraints, c)
	return nil
}

func (cl *ConstraintsList) AddNegConstraint(c Constraint) error {
	if !c.Kind().IsNegative() {
		return util.WrapErrorf(nil, util.ErrConfiguration, "constraint %s is %s, not negative", c.Name(), c.Kind())
	}
	if c.Message() == "" {
		return util.WrapErrorf(nil, util.ErrConfiguration, "negative constraint %s has no message", c.Name())
	}
	cl.negativeConstraints = append(cl.negativeConstraints, c)
	return nil
}

func (cl *ConstraintsList) PosSize() int {
	return len(cl.positiveConstraints)
}

func (cl *ConstraintsList) NegSize() int {
	return len(cl.negativeConstraints)
}

func (cl *ConstraintsList) GetParameters() ConstraintParameters {
	return cl.pars
}

// ConstraintsCrossed. messages of the most recent query, in registration order.
func (cl *ConstraintsList) ConstraintsCrossed() []string {
	out := make([]string, len(cl.constraintsCrossed))
	copy(out, cl.constraintsCrossed)
	return out
}

func (cl *ConstraintsList) PrintSettings() {
	cl.pars.Print(cl.log)
	cl.PrintActiveConstraints()
}

func (cl *ConstraintsList) PrintActiveConstraints() {
	for _, c := range cl.negativeConstraints {
		cl.log.Info("negative constraint", zap.String("name", c.Name()), zap.String("info", c.Info()))
	}
	for _, c := range cl.positiveConstraints {
		cl.log.Info("positive constraint", zap.String("name", c.Name()), zap.String("info", c.Info()))
	}
}

// ActiveConstraints. Info of every registered constraint, negative ones first.
func (cl *ConstraintsList) ActiveConstraints() []string {
	infos := make([]string, 0, cl.NegSize()+cl.PosSize())
	for _, c := range cl.negativeConstraints {
		infos = append(infos, c.Name()+": "+c.Info())
	}
	for _, c := range cl.positiveConstraints {
		infos = append(infos, c.Name()+": "+c.Info())
	}
	return infos
}

// violationLog. which negative constraints fired during one query. Messages come out in
// registration order and once per constraint, however many points or sub-steps fired.
type violationLog struct {
	crossed []bool
}

func newViolationLog(n int) *violationLog {
	return &violationLog{crossed: make([]bool, n)}
}

func (vl *violationLog) messages(cs []Constraint) []string {
	msgs := make([]string, 0)
	for i, hit := range vl.crossed {
		if hit {
			msgs = append(msgs, cs[i].Message())
		}
	}
	return msgs
}

type constraintResult struct {
	idx  int
	mask []bool
	err  error
}

func (cl *ConstraintsList) evaluateConstraint(idx int, lat, lon []float64, t time.Time) constraintResult {
	c := cl.negativeConstraints[idx]
	mask, err := c.ConstraintOnPoint(lat, lon, t)
	if err != nil {
		return constraintResult{idx: idx, err: err}
	}
	if len(mask) != len(lat) {
		return constraintResult{idx: idx, err: util.WrapErrorf(nil, util.ErrInternalServerError,
			"constraint %s returned %d values for %d points", c.Name(), len(mask), len(lat))}
	}
	return constraintResult{idx: idx, mask: mask}
}

func (cl *ConstraintsList) evaluateParallel(lat, lon []float64, t time.Time) []constraintResult {
	n := len(cl.negativeConstraints)
	workers := cl.pars.Workers
	if workers <= 0 || workers > n {
		workers = n
	}

	wp := concurrent.NewWorkerPool[int, constraintResult](workers, n)
	wp.Start(func(idx int) constraintResult {
		return cl.evaluateConstraint(idx, lat, lon, t)
	})
	for i := 0; i < n; i++ {
		wp.AddJob(i)
	}
	wp.Close()
	wp.Wait()

	results := make([]constraintResult, n)
	for res := range wp.CollectResults() {
		results[res.idx] = res
	}
	return results
}

// safeEndpoint. fresh mask, true where at least one negative constraint is violated.
func (cl *ConstraintsList) safeEndpoint(lat, lon []float64, t time.Time, vl *violationLog) ([]bool, error) {
	isConstrained := make([]bool, len(lat))

	var results []constraintResult
	if cl.pars.Parallel && len(cl.negativeConstraints) > 1 {
		results = cl.evaluateParallel(lat, lon, t)
	} else {
		results = make([]constraintResult, 0, len(cl.negativeConstraints))
		for i := range cl.negativeConstraints {
			res := cl.evaluateConstraint(i, lat, lon, t)
			results = append(results, res)
			if res.err != nil {
				break
			}
		}
	}

	// registration order, so the first failing constraint is reported whatever the
	// execution order was.
	for _, res := range results {
		if res.err != nil {
			return nil, res.err
		}
		fired := false
		for i, v := range res.mask {
			if v {
				isConstrained[i] = true
				fired = true
			}
		}
		if fired {
			vl.crossed[res.idx] = true
		}
	}
	return isConstrained, nil
}

// SafeEndpoint. checks the points (lat[i], lon[i]) at time t against every negative constraint,
// in registration order. The returned mask is freshly allocated and true where any constraint
// is violated. Positive constraints are not consulted.
func (cl *ConstraintsList) SafeEndpoint(lat, lon []float64, t time.Time) ([]bool, error) {
	if len(lat) != len(lon) {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "lat and lon differ in length: %d != %d", len(lat), len(lon))
	}
	if i, ok := allFinite(lat, lon); !ok {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "point %d has a non-finite coordinate", i)
	}
	cl.constraintsCrossed = nil

	vl := newViolationLog(len(cl.negativeConstraints))
	isConstrained, err := cl.safeEndpoint(lat, lon, t, vl)
	if err != nil {
		return nil, err
	}
	cl.constraintsCrossed = vl.messages(cl.negativeConstraints)
	return isConstrained, nil
}

/*
SafeCrossing. checks the transitions (latStart[i],lonStart[i]) -> (latEnd[i],lonEnd[i]) at time t.

Each segment is cut into nSteps = round(1/resolution) sub-steps and every sub-step vertex
x_k = x_{k-1} + (end-start)*resolution is checked with the negative constraints; a segment is
violated if any of its vertices is. The start vertex itself is not checked again, it is the end
of an already accepted transition. Interpolation is linear in lat/lon, not along the great
circle; at the step length of the isochrone search the difference is far below the grid
resolution of the environmental data.

The last vertex must reproduce the declared segment end within
|x - end| <= 1e-8 + 1e-8*|end|, otherwise a GeometryError is returned.
*/
func (cl *ConstraintsList) SafeCrossing(latStart, lonStart, latEnd, lonEnd []float64, t time.Time) ([]bool, error) {
	batch := NewSegmentBatch(latStart, lonStart, latEnd, lonEnd, t)
	if err := batch.Validate(); err != nil {
		return nil, err
	}
	cl.constraintsCrossed = nil

	n := batch.Len()
	resolution := cl.pars.Resolution
	nSteps := cl.pars.NSteps()

	deltaLats := make([]float64, n)
	deltaLons := make([]float64, n)
	for i := 0; i < n; i++ {
		deltaLats[i] = (latEnd[i] - latStart[i]) * resolution
		deltaLons[i] = (lonEnd[i] - lonStart[i]) * resolution
	}

	x0 := latStart
	y0 := lonStart
	isConstrained := make([]bool, n)
	vl := newViolationLog(len(cl.negativeConstraints))

	for step := 0; step < nSteps; step++ {
		x := make([]float64, n)
		y := make([]float64, n)
		for i := 0; i < n; i++ {
			x[i] = x0[i] + deltaLats[i]
			y[i] = y0[i] + deltaLons[i]
		}

		stepConstrained, err := cl.safeEndpoint(x, y, t, vl)
		if err != nil {
			return nil, err
		}
		for i, v := range stepConstrained {
			isConstrained[i] = isConstrained[i] || v
		}
		x0 = x
		y0 = y
	}

	if i, ok := util.AllClose(x0, latEnd, pkg.GEOMETRY_RTOL, pkg.GEOMETRY_ATOL); !ok {
		return nil, util.WrapErrorf(nil, util.ErrGeometry,
			"segment %d: did not reach latitude of destination, reached %.12f, want %.12f (resolution=%g, nSteps=%d)",
			i, x0[i], latEnd[i], resolution, nSteps)
	}
	if i, ok := util.AllClose(y0, lonEnd, pkg.GEOMETRY_RTOL, pkg.GEOMETRY_ATOL); !ok {
		return nil, util.WrapErrorf(nil, util.ErrGeometry,
			"segment %d: did not reach longitude of destination, reached %.12f, want %.12f (resolution=%g, nSteps=%d)",
			i, y0[i], lonEnd[i], resolution, nSteps)
	}

	cl.constraintsCrossed = vl.messages(cl.negativeConstraints)
	return isConstrained, nil
}

// EvaluateSegments. verdict of the isochrone search's candidate transitions. Uses SafeCrossing if
// CheckCrossing is set, else SafeEndpoint on the segment ends if CheckEndpointsOnly is set, else
// nothing is checked. Returns the violated mask and the messages of the violated constraints.
func (cl *ConstraintsList) EvaluateSegments(batch SegmentBatch) ([]bool, []string, error) {
	if err := batch.Validate(); err != nil {
		return nil, nil, err
	}

	var (
		isConstrained []bool
		err           error
	)
	switch {
	case cl.pars.CheckCrossing:
		isConstrained, err = cl.SafeCrossing(batch.LatStart, batch.LonStart, batch.LatEnd, batch.LonEnd, batch.Time)
	case cl.pars.CheckEndpointsOnly:
		isConstrained, err = cl.SafeEndpoint(batch.LatEnd, batch.LonEnd, batch.Time)
	default:
		cl.constraintsCrossed = nil
		isConstrained = make([]bool, batch.Len())
	}
	if err != nil {
		return nil, nil, err
	}

	msgs := cl.ConstraintsCrossed()
	if anyTrue(isConstrained) {
		cl.printConstraintsCrossed(batch, isConstrained, msgs)
	}
	return isConstrained, msgs, nil
}

func (cl *ConstraintsList) printConstraintsCrossed(batch SegmentBatch, isConstrained []bool, msgs []string) {
	cl.log.Info("Discarding point as:", zap.Strings("constraints", msgs),
		zap.Int("constrained", countTrue(isConstrained)), zap.Int("transitions", batch.Len()))

	if !cl.log.Core().Enabled(zap.DebugLevel) {
		return
	}
	for i, v := range isConstrained {
		if !v {
			continue
		}
		cl.log.Debug("transition constrained",
			zap.Float64("latStart", batch.LatStart[i]), zap.Float64("lonStart", batch.LonStart[i]),
			zap.Float64("latEnd", batch.LatEnd[i]), zap.Float64("lonEnd", batch.LonEnd[i]),
			zap.Float64("distanceKm", geo.CalculateHaversineDistance(batch.LatStart[i], batch.LonStart[i],
				batch.LatEnd[i], batch.LonEnd[i])),
			zap.Float64("bearing", geo.BearingTo(batch.LatStart[i], batch.LonStart[i],
				batch.LatEnd[i], batch.LonEnd[i])),
		)
	}
}

func anyTrue(mask []bool) bool {
	for _, v := range mask {
		if v {
			return true
		}
	}
	return false
}

func countTrue(mask []bool) int {
	c := 0
	for _, v := range mask {
		if v {
			c++
		}
	}
	return c
}
