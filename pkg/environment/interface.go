package environment

import (
	"time"

	"github.com/lintang-b-s/navigatorx-constraints/pkg/datastructure"
)

type DepthSource interface {
	// InterpolateDepth. bilinear sea-floor depth, negative below sea level.
	InterpolateDepth(lat, lon []float64) ([]float64, error)
}

type WaveSource interface {
	InterpolateWaveHeight(lat, lon []float64, t time.Time) ([]float64, error)
}

type LandMask interface {
	IsLand(lat, lon []float64) ([]bool, error)
}

type Provider interface {
	DepthSource
	WaveSource
	LandMask
	Bounds() datastructure.BoundingBox
}
