package constraints

import (
	"time"

	"github.com/lintang-b-s/navigatorx-constraints/pkg/environment"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/geo"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/util"
)

// LandCrossing. prohibits points on land. Time independent.
type LandCrossing struct {
	baseConstraint
	mask environment.LandMask
}

func NewLandCrossing(mask environment.LandMask) *LandCrossing {
	return &LandCrossing{
		baseConstraint: newNegativeFromEnvironment("LandCrossing", "crossing land!"),
		mask:           mask,
	}
}

func (lc *LandCrossing) ConstraintOnPoint(lat, lon []float64, _ time.Time) ([]bool, error) {
	if len(lat) == 0 {
		return []bool{}, nil
	}
	nLat := make([]float64, len(lat))
	nLon := make([]float64, len(lon))
	for i := range lat {
		nLat[i] = geo.NormalizeLatitude(lat[i])
		nLon[i] = geo.NormalizeLongitude(lon[i])
	}

	isLand, err := lc.mask.IsLand(nLat, nLon)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrDataUnavailable, "constraint %s", lc.name)
	}
	return isLand, nil
}

func (lc *LandCrossing) Info() string {
	return "no land crossing"
}
