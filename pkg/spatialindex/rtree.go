package spatialindex

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/golang/geo/s2"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/geo"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/util"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

// LandIndex. land/sea mask made of land polygons. Polygon bounding boxes (lon,lat) live in an
// r-tree, exact containment is answered by the s2 loop of each candidate polygon.
// Polygon edges are geodesics, so a polygon may bulge slightly past its lat/lon bounding box
// over long edges. Rings are expected to be densified to coastline resolution.
type LandIndex struct {
	tr    *rtree.RTreeG[int]
	loops []*s2.Loop
}

func NewLandIndex() *LandIndex {
	var tr rtree.RTreeG[int]
	return &LandIndex{
		tr: &tr,
	}
}

// AddPolygon. ring is a closed or open sequence of (lat, lon) vertices.
func (li *LandIndex) AddPolygon(ring []geo.Coordinate) error {
	loop, err := geo.LoopFromCoords(ring)
	if err != nil {
		return err
	}

	minLat, minLon := math.Inf(1), math.Inf(1)
	maxLat, maxLon := math.Inf(-1), math.Inf(-1)
	for _, c := range ring {
		minLat = math.Min(minLat, c.Lat)
		minLon = math.Min(minLon, c.Lon)
		maxLat = math.Max(maxLat, c.Lat)
		maxLon = math.Max(maxLon, c.Lon)
	}

	li.tr.Insert([2]float64{minLon, minLat}, [2]float64{maxLon, maxLat}, len(li.loops))
	li.loops = append(li.loops, loop)
	return nil
}

func (li *LandIndex) NumPolygons() int {
	return len(li.loops)
}

// IsLand. lat in [-90,90], lon in [-180,180].
func (li *LandIndex) IsLand(lat, lon float64) bool {
	land := false
	li.tr.Search([2]float64{lon, lat}, [2]float64{lon, lat},
		func(min, max [2]float64, id int) bool {
			if geo.LoopContains(li.loops[id], lat, lon) {
				land = true
				return false
			}
			return true
		})
	return land
}

// ReadLandIndex. bzip2 compressed text file with one encoded polyline ring per line.
func ReadLandIndex(filename string, log *zap.Logger) (*LandIndex, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bz, err := bzip2.NewReader(f, nil)
	if err != nil {
		return nil, err
	}
	br := bufio.NewReader(bz)

	log.Info("Building land polygon index...", zap.String("file", filename))
	li := NewLandIndex()
	for lineNo := 1; ; lineNo++ {
		line, err := util.ReadLine(br)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ring, err := geo.CoordsFromPolyline(line)
		if err != nil {
			return nil, fmt.Errorf("land polygon line %d: %w", lineNo, err)
		}
		if err := li.AddPolygon(ring); err != nil {
			return nil, fmt.Errorf("land polygon line %d: %w", lineNo, err)
		}
	}

	log.Info("Land polygon index built.", zap.Int("polygons", li.NumPolygons()))
	return li, nil
}

func WriteLandIndex(filename string, rings [][]geo.Coordinate) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		f.Close()
		return err
	}

	w := bufio.NewWriter(bz)
	for _, ring := range rings {
		fmt.Fprintf(w, "%s\n", geo.PolylineFromCoords(ring))
	}

	if err := w.Flush(); err != nil {
		bz.Close()
		f.Close()
		return err
	}
	if err := bz.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
