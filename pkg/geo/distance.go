package geo

import (
	"math"

	"github.com/lintang-b-s/navigatorx-constraints/pkg/util"
)

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinate) GetLat() float64 {
	return c.Lat
}

func (c Coordinate) GetLon() float64 {
	return c.Lon
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: lat,
		Lon: lon,
	}
}

func NewCoordinates(lat, lon []float64) []Coordinate {
	coords := make([]Coordinate, len(lat))
	for i := range lat {
		coords[i] = NewCoordinate(lat[i], lon[i])
	}
	return coords
}

// SplitCoordinates. inverse of NewCoordinates.
func SplitCoordinates(coords []Coordinate) ([]float64, []float64) {
	lat := make([]float64, len(coords))
	lon := make([]float64, len(coords))
	for i, c := range coords {
		lat[i] = c.Lat
		lon[i] = c.Lon
	}
	return lat, lon
}

const (
	earthRadiusKM = 6371.0
)

func havFunction(angleRad float64) float64 {
	return (1 - math.Cos(angleRad)) / 2.0
}

// CalculateHaversineDistance. calculate haversine distance in km
func CalculateHaversineDistance(latOne, longOne, latTwo, longTwo float64) float64 {
	latOne = util.DegreeToRadians(latOne)
	longOne = util.DegreeToRadians(longOne)
	latTwo = util.DegreeToRadians(latTwo)
	longTwo = util.DegreeToRadians(longTwo)

	a := havFunction(latOne-latTwo) + math.Cos(latOne)*math.Cos(latTwo)*havFunction(longOne-longTwo)
	c := 2.0 * math.Asin(math.Sqrt(a))
	return earthRadiusKM * c
}

// NormalizeLongitude. long in degree, result in [-180, 180)
func NormalizeLongitude(long float64) float64 {
	l := math.Mod(long+540, 360)
	if l < 0 {
		l += 360
	}
	return l - 180.0
}

// NormalizeLatitude. clamps lat (degree) into [-90, 90]
func NormalizeLatitude(lat float64) float64 {
	return math.Max(-90, math.Min(90, lat))
}
