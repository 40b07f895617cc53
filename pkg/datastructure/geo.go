package datastructure

import "fmt"

type BoundingBox struct {
	minLat, minLon float64
	maxLat, maxLon float64
}

func NewBoundingBox(minLat, minLon, maxLat, maxLon float64) BoundingBox {
	return BoundingBox{minLat: minLat,
		minLon: minLon,
		maxLat: maxLat,
		maxLon: maxLon}
}

func (b BoundingBox) GetMinLat() float64 {
	return b.minLat
}

func (b BoundingBox) GetMinLon() float64 {
	return b.minLon
}

func (b BoundingBox) GetMaxLat() float64 {
	return b.maxLat
}

func (b BoundingBox) GetMaxLon() float64 {
	return b.maxLon
}

// Contains. boundary points are inside.
func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.minLat && lat <= b.maxLat && lon >= b.minLon && lon <= b.maxLon
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("[%g,%g]-[%g,%g]", b.minLat, b.minLon, b.maxLat, b.maxLon)
}
