package environment

import (
	"context"
	"fmt"

	"github.com/lintang-b-s/navigatorx-constraints/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/spatialindex"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Files. empty paths leave the matching layer out of the dataset.
type Files struct {
	DepthFile string
	WaveFile  string
	LandFile  string
}

// Load reads the depth grid, wave grid and land polygons concurrently.
func Load(ctx context.Context, files Files, log *zap.Logger) (*Dataset, error) {
	var (
		depth *datastructure.Grid
		waves *datastructure.TimeGrid
		land  *spatialindex.LandIndex
	)

	g, ctx := errgroup.WithContext(ctx)

	if files.DepthFile != "" {
		g.Go(func() error {
			tg, err := datastructure.ReadTimeGrid(files.DepthFile)
			if err != nil {
				return fmt.Errorf("read depth grid %s: %w", files.DepthFile, err)
			}
			if !tg.IsStatic() {
				return fmt.Errorf("depth grid %s must not have a time axis", files.DepthFile)
			}
			depth = tg.Layer(0)
			log.Info("depth grid loaded", zap.String("file", files.DepthFile),
				zap.Stringer("bounds", depth.BoundingBox()))
			return ctx.Err()
		})
	}

	if files.WaveFile != "" {
		g.Go(func() error {
			tg, err := datastructure.ReadTimeGrid(files.WaveFile)
			if err != nil {
				return fmt.Errorf("read wave grid %s: %w", files.WaveFile, err)
			}
			waves = tg
			from, to := tg.TimeRange()
			log.Info("wave grid loaded", zap.String("file", files.WaveFile),
				zap.Stringer("bounds", tg.BoundingBox()), zap.Time("from", from), zap.Time("to", to))
			return ctx.Err()
		})
	}

	if files.LandFile != "" {
		g.Go(func() error {
			li, err := spatialindex.ReadLandIndex(files.LandFile, log)
			if err != nil {
				return fmt.Errorf("read land polygons %s: %w", files.LandFile, err)
			}
			land = li
			return ctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return NewDataset(depth, waves, land), nil
}
