package constraints

import (
	"fmt"
	"time"

	"github.com/lintang-b-s/navigatorx-constraints/pkg/datastructure"
)

// StayOnMap. prohibits leaving the box (lat1,lon1)-(lat2,lon2), usually the area covered by the
// environmental data. Points on the boundary are inside.
type StayOnMap struct {
	baseConstraint
	lat1, lon1 float64
	lat2, lon2 float64
}

func NewStayOnMap(lat1, lon1, lat2, lon2 float64) *StayOnMap {
	return &StayOnMap{
		baseConstraint: newNegative("StayOnMap", "leaving weather map!"),
		lat1:           lat1,
		lon1:           lon1,
		lat2:           lat2,
		lon2:           lon2,
	}
}

func NewStayOnMapFromBounds(bb datastructure.BoundingBox) *StayOnMap {
	return NewStayOnMap(bb.GetMinLat(), bb.GetMinLon(), bb.GetMaxLat(), bb.GetMaxLon())
}

func (sm *StayOnMap) ConstraintOnPoint(lat, lon []float64, _ time.Time) ([]bool, error) {
	out := make([]bool, len(lat))
	for i := range lat {
		out[i] = lat[i] > sm.lat2 || lat[i] < sm.lat1 || lon[i] > sm.lon2 || lon[i] < sm.lon1
	}
	return out, nil
}

func (sm *StayOnMap) Info() string {
	return fmt.Sprintf("stay on weather map [%g,%g]-[%g,%g]", sm.lat1, sm.lon1, sm.lat2, sm.lon2)
}
