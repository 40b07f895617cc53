package constraints

import (
	"fmt"
	"sync"
	"time"

	"github.com/lintang-b-s/navigatorx-constraints/pkg"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/environment"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/util"
)

// WaterDepth. prohibits points where the sea floor is shallower than the ship's draft.
// Depths are negative below sea level, a point is violated iff depth > -minDraft.
type WaterDepth struct {
	baseConstraint
	depth    environment.DepthSource
	minDraft float64

	mu           sync.Mutex
	currentDepth []float64
}

func NewWaterDepth(depth environment.DepthSource) *WaterDepth {
	return &WaterDepth{
		baseConstraint: newNegativeFromEnvironment("WaterDepth", "water not deep enough!"),
		depth:          depth,
		minDraft:       pkg.DEFAULT_MIN_DRAFT,
	}
}

func (wd *WaterDepth) SetDraft(minDraft float64) {
	wd.minDraft = minDraft
}

func (wd *WaterDepth) GetDraft() float64 {
	return wd.minDraft
}

// CurrentDepth. depths of the last evaluated batch.
func (wd *WaterDepth) CurrentDepth() []float64 {
	wd.mu.Lock()
	defer wd.mu.Unlock()
	return wd.currentDepth
}

func (wd *WaterDepth) ConstraintOnPoint(lat, lon []float64, _ time.Time) ([]bool, error) {
	if len(lat) == 0 {
		return []bool{}, nil
	}
	depth, err := wd.depth.InterpolateDepth(lat, lon)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrDataUnavailable, "constraint %s", wd.name)
	}

	wd.mu.Lock()
	wd.currentDepth = depth
	wd.mu.Unlock()

	out := make([]bool, len(depth))
	for i, d := range depth {
		out[i] = d > -wd.minDraft
	}
	return out, nil
}

func (wd *WaterDepth) Info() string {
	return fmt.Sprintf("minimum water depth=%gm", wd.minDraft)
}
