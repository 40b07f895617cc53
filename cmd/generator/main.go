package main

import (
	"flag"
	"math"
	"path/filepath"
	"time"

	"github.com/lintang-b-s/navigatorx-constraints/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/geo"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/logger"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/spatialindex"
	"go.uber.org/zap"
)

var (
	outDir    = flag.String("out", "./data", "output directory")
	minLat    = flag.Float64("min_lat", 53.0, "south edge of the generated area")
	minLon    = flag.Float64("min_lon", 3.0, "west edge of the generated area")
	size      = flag.Float64("size", 4.0, "edge length of the generated area in degree")
	cells     = flag.Int("cells", 81, "grid points per axis")
	hours     = flag.Int("hours", 48, "hours covered by the wave grid")
	startTime = flag.String("start", "2024-01-01T00:00:00Z", "RFC3339 start of the wave grid")
)

// synthetic environmental dataset for local testing: a deep basin with one shoal, a storm
// crossing the area and one island.
func main() {
	flag.Parse()
	log, err := logger.New()
	if err != nil {
		panic(err)
	}

	start, err := time.Parse(time.RFC3339, *startTime)
	if err != nil {
		log.Fatal("invalid -start", zap.Error(err))
	}

	n := *cells
	lats := make([]float64, n)
	lons := make([]float64, n)
	for i := 0; i < n; i++ {
		lats[i] = *minLat + *size*float64(i)/float64(n-1)
		lons[i] = *minLon + *size*float64(i)/float64(n-1)
	}
	cLat, cLon := *minLat+*size/2, *minLon+*size/2

	depth := make([]float64, 0, n*n)
	for _, lat := range lats {
		for _, lon := range lons {
			// shoal north-east of the centre
			d := math.Hypot(lat-(cLat+*size/4), lon-(cLon+*size/4))
			depth = append(depth, -120+110*math.Exp(-d*d/0.05))
		}
	}
	depthGrid, err := datastructure.NewGrid(lats, lons, depth)
	if err != nil {
		log.Fatal("depth grid", zap.Error(err))
	}

	times := make([]int64, 0, *hours+1)
	layers := make([]*datastructure.Grid, 0, *hours+1)
	for h := 0; h <= *hours; h++ {
		stormLon := *minLon + *size*float64(h)/float64(*hours)
		waves := make([]float64, 0, n*n)
		for _, lat := range lats {
			for _, lon := range lons {
				d := math.Hypot(lat-cLat, lon-stormLon)
				waves = append(waves, 1.5+11*math.Exp(-d*d/0.3))
			}
		}
		layer, err := datastructure.NewGrid(lats, lons, waves)
		if err != nil {
			log.Fatal("wave grid", zap.Error(err))
		}
		times = append(times, start.Add(time.Duration(h)*time.Hour).Unix())
		layers = append(layers, layer)
	}
	waveGrid, err := datastructure.NewTimeGrid(times, layers)
	if err != nil {
		log.Fatal("wave grid", zap.Error(err))
	}

	island := make([]geo.Coordinate, 0, 33)
	for k := 0; k < 32; k++ {
		a := 2 * math.Pi * float64(k) / 32
		island = append(island, geo.NewCoordinate(cLat-*size/4+0.2*math.Sin(a), cLon-*size/4+0.3*math.Cos(a)))
	}

	depthFile := filepath.Join(*outDir, "depth.grid")
	waveFile := filepath.Join(*outDir, "waves.grid")
	landFile := filepath.Join(*outDir, "land.poly")

	if err := datastructure.WriteTimeGrid(depthFile, datastructure.NewStaticTimeGrid(depthGrid)); err != nil {
		log.Fatal("write depth grid", zap.Error(err))
	}
	if err := datastructure.WriteTimeGrid(waveFile, waveGrid); err != nil {
		log.Fatal("write wave grid", zap.Error(err))
	}
	if err := spatialindex.WriteLandIndex(landFile, [][]geo.Coordinate{island}); err != nil {
		log.Fatal("write land polygons", zap.Error(err))
	}

	log.Info("synthetic environmental dataset written",
		zap.String("depth", depthFile), zap.String("waves", waveFile), zap.String("land", landFile))
}
