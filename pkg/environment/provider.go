package environment

import (
	"sync"
	"time"

	"github.com/lintang-b-s/navigatorx-constraints/pkg/datastructure"
)

// GridProvider. Provider over a Dataset that may be swapped while queries run. Each query holds
// the read lock for its duration; callers that need several queries against the same data take
// a Snapshot instead.
type GridProvider struct {
	mu sync.RWMutex
	ds *Dataset
}

func NewGridProvider(ds *Dataset) *GridProvider {
	return &GridProvider{ds: ds}
}

func (gp *GridProvider) Refresh(ds *Dataset) {
	gp.mu.Lock()
	gp.ds = ds
	gp.mu.Unlock()
}

func (gp *GridProvider) Snapshot() *Dataset {
	gp.mu.RLock()
	defer gp.mu.RUnlock()
	return gp.ds
}

func (gp *GridProvider) InterpolateDepth(lat, lon []float64) ([]float64, error) {
	gp.mu.RLock()
	defer gp.mu.RUnlock()
	return gp.ds.InterpolateDepth(lat, lon)
}

func (gp *GridProvider) InterpolateWaveHeight(lat, lon []float64, t time.Time) ([]float64, error) {
	gp.mu.RLock()
	defer gp.mu.RUnlock()
	return gp.ds.InterpolateWaveHeight(lat, lon, t)
}

func (gp *GridProvider) IsLand(lat, lon []float64) ([]bool, error) {
	gp.mu.RLock()
	defer gp.mu.RUnlock()
	return gp.ds.IsLand(lat, lon)
}

func (gp *GridProvider) Bounds() datastructure.BoundingBox {
	gp.mu.RLock()
	defer gp.mu.RUnlock()
	return gp.ds.Bounds()
}
