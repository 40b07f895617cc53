package constraints

import (
	"fmt"
	"sync"
	"time"

	"github.com/lintang-b-s/navigatorx-constraints/pkg"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/environment"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/util"
)

// WaveHeight. prohibits points where the significant wave height exceeds maxWaveHeight.
type WaveHeight struct {
	baseConstraint
	waves         environment.WaveSource
	maxWaveHeight float64

	mu                sync.Mutex
	currentWaveHeight []float64
}

func NewWaveHeight(waves environment.WaveSource) *WaveHeight {
	return &WaveHeight{
		baseConstraint: newNegativeFromEnvironment("WaveHeight", "waves are too high!"),
		waves:          waves,
		maxWaveHeight:  pkg.DEFAULT_MAX_WAVE_HEIGHT,
	}
}

func (wh *WaveHeight) SetMaxWaveHeight(h float64) {
	wh.maxWaveHeight = h
}

func (wh *WaveHeight) GetMaxWaveHeight() float64 {
	return wh.maxWaveHeight
}

func (wh *WaveHeight) CurrentWaveHeight() []float64 {
	wh.mu.Lock()
	defer wh.mu.Unlock()
	return wh.currentWaveHeight
}

func (wh *WaveHeight) ConstraintOnPoint(lat, lon []float64, t time.Time) ([]bool, error) {
	if len(lat) == 0 {
		return []bool{}, nil
	}
	heights, err := wh.waves.InterpolateWaveHeight(lat, lon, t)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrDataUnavailable, "constraint %s", wh.name)
	}

	wh.mu.Lock()
	wh.currentWaveHeight = heights
	wh.mu.Unlock()

	out := make([]bool, len(heights))
	for i, h := range heights {
		out[i] = h > wh.maxWaveHeight
	}
	return out, nil
}

func (wh *WaveHeight) Info() string {
	return fmt.Sprintf("maximum wave height=%gm", wh.maxWaveHeight)
}
