package constraints

import (
	"math"

	"github.com/lintang-b-s/navigatorx-constraints/pkg"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/util"
	"go.uber.org/zap"
)

// ConstraintParameters. Resolution is the fraction of a segment covered by one sub-step of the
// crossing check. CheckCrossing wins over CheckEndpointsOnly when both are set.
type ConstraintParameters struct {
	Resolution         float64 `validate:"gte=0.000001,lte=1"`
	CheckEndpointsOnly bool
	CheckCrossing      bool

	// Parallel evaluates the negative constraints of one vertex concurrently on Workers
	// goroutines (0 means one per constraint).
	Parallel bool
	Workers  int `validate:"gte=0"`
}

func DefaultConstraintParameters() ConstraintParameters {
	return ConstraintParameters{
		Resolution:         pkg.DEFAULT_RESOLUTION,
		CheckEndpointsOnly: true,
		CheckCrossing:      true,
	}
}

func (p ConstraintParameters) Validate() error {
	if err := util.ValidateStruct(p); err != nil {
		return util.WrapErrorf(err, util.ErrConfiguration, "constraint parameters")
	}
	return nil
}

// NSteps. number of sub-steps per segment, round(1/resolution).
func (p ConstraintParameters) NSteps() int {
	return int(math.Round(1 / p.Resolution))
}

func (p ConstraintParameters) Print(log *zap.Logger) {
	log.Info("Print settings of Constraint Pars:",
		zap.Float64("resolution", p.Resolution),
		zap.Int("nSteps", p.NSteps()),
		zap.Bool("checkEndpointsOnly", p.CheckEndpointsOnly),
		zap.Bool("checkCrossing", p.CheckCrossing),
		zap.Bool("parallel", p.Parallel),
	)
}
