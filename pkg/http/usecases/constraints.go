package usecases

import (
	"sync"
	"time"

	"github.com/lintang-b-s/navigatorx-constraints/pkg/constraints"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/geo"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/util"
	"go.uber.org/zap"
)

// ConstraintService. HTTP facing wrapper of a ConstraintsList. Queries are serialized, the list
// keeps per-query state.
type ConstraintService struct {
	log       *zap.Logger
	mu        sync.Mutex
	evaluator ConstraintsEvaluator
}

func NewConstraintService(log *zap.Logger, evaluator ConstraintsEvaluator) *ConstraintService {
	return &ConstraintService{
		log:       log,
		evaluator: evaluator,
	}
}

func (cs *ConstraintService) EvaluateSegments(batch constraints.SegmentBatch) ([]bool, []string, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.evaluator.EvaluateSegments(batch)
}

type LegVerdict struct {
	From       geo.Coordinate
	To         geo.Coordinate
	DistanceKm float64
	Violated   bool
}

type RouteVerdict struct {
	Safe     bool
	Legs     []LegVerdict
	Messages []string
}

// CheckRoute. checks every leg of the encoded polyline route at time t.
func (cs *ConstraintService) CheckRoute(encodedRoute string, t time.Time) (RouteVerdict, error) {
	waypoints, err := geo.CoordsFromPolyline(encodedRoute)
	if err != nil {
		return RouteVerdict{}, util.WrapErrorf(err, util.ErrBadParamInput, "invalid route polyline")
	}
	if len(waypoints) < 2 {
		return RouteVerdict{}, util.WrapErrorf(nil, util.ErrBadParamInput,
			"route needs at least 2 waypoints, got %d", len(waypoints))
	}

	violated, msgs, err := cs.EvaluateSegments(constraints.RouteLegs(waypoints, t))
	if err != nil {
		return RouteVerdict{}, err
	}

	verdict := RouteVerdict{Safe: true, Legs: make([]LegVerdict, len(violated)), Messages: msgs}
	for i, v := range violated {
		from, to := waypoints[i], waypoints[i+1]
		verdict.Legs[i] = LegVerdict{
			From:       from,
			To:         to,
			DistanceKm: geo.CalculateHaversineDistance(from.Lat, from.Lon, to.Lat, to.Lon),
			Violated:   v,
		}
		if v {
			verdict.Safe = false
		}
	}
	cs.log.Debug("route checked", zap.Int("legs", len(violated)), zap.Bool("safe", verdict.Safe))
	return verdict, nil
}

func (cs *ConstraintService) Settings() (constraints.ConstraintParameters, []string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.evaluator.GetParameters(), cs.evaluator.ActiveConstraints()
}
