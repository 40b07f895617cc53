package geo

import (
	"fmt"

	"github.com/twpayne/go-polyline"
)

func PolylineFromCoords(path []Coordinate) string {
	s := make([][]float64, 0, len(path))
	for _, p := range path {
		s = append(s, []float64{p.Lat, p.Lon})
	}
	return string(polyline.EncodeCoords(s))
}

func CoordsFromPolyline(encoded string) ([]Coordinate, error) {
	coords, rest, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("trailing bytes after polyline: %q", rest)
	}
	path := make([]Coordinate, 0, len(coords))
	for _, c := range coords {
		path = append(path, NewCoordinate(c[0], c[1]))
	}
	return path, nil
}
