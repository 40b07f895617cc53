package geo

import (
	"errors"

	"github.com/golang/geo/s2"
)

var ErrDegenerateRing = errors.New("ring needs at least 3 distinct vertices")

// LoopFromCoords builds a normalized s2 loop from a polygon ring. A closing vertex equal to the
// first one is dropped. The loop is normalized so it encloses at most half the sphere, which
// makes the ring orientation irrelevant.
func LoopFromCoords(ring []Coordinate) (*s2.Loop, error) {
	if len(ring) > 1 && ring[0] == ring[len(ring)-1] {
		ring = ring[:len(ring)-1]
	}
	if len(ring) < 3 {
		return nil, ErrDegenerateRing
	}

	points := make([]s2.Point, 0, len(ring))
	for _, c := range ring {
		points = append(points, s2.PointFromLatLng(s2.LatLngFromDegrees(c.Lat, c.Lon)))
	}
	loop := s2.LoopFromPoints(points)
	loop.Normalize()
	return loop, nil
}

func LoopContains(loop *s2.Loop, lat, lon float64) bool {
	return loop.ContainsPoint(s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lon)))
}
