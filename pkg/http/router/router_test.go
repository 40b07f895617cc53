package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lintang-b-s/navigatorx-constraints/pkg/constraints"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/geo"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/http/usecases"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeService struct {
	lastBatch constraints.SegmentBatch
	lastRoute string
	err       error
}

func (fs *fakeService) EvaluateSegments(batch constraints.SegmentBatch) ([]bool, []string, error) {
	fs.lastBatch = batch
	if fs.err != nil {
		return nil, nil, fs.err
	}
	out := make([]bool, batch.Len())
	for i := range out {
		out[i] = batch.LatEnd[i] > 50
	}
	return out, []string{"At least one point discarded as crossing land!"}, nil
}

func (fs *fakeService) CheckRoute(encodedRoute string, t time.Time) (usecases.RouteVerdict, error) {
	fs.lastRoute = encodedRoute
	if fs.err != nil {
		return usecases.RouteVerdict{}, fs.err
	}
	return usecases.RouteVerdict{
		Safe: true,
		Legs: []usecases.LegVerdict{{
			From: geo.NewCoordinate(1, 2), To: geo.NewCoordinate(3, 4), DistanceKm: 314.4,
		}},
	}, nil
}

func (fs *fakeService) Settings() (constraints.ConstraintParameters, []string) {
	return constraints.DefaultConstraintParameters(), []string{"LandCrossing: no land crossing"}
}

func serve(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestEvaluateSegmentsEndpoint(t *testing.T) {
	svc := &fakeService{}
	h := NewAPI(zap.NewNop()).Handler(svc, RateLimit{})

	rec := serve(t, h, http.MethodPost, "/api/constraints/evaluateSegments", map[string]interface{}{
		"lat_start": []float64{50, 51},
		"lon_start": []float64{3, 4},
		"lat_end":   []float64{50.5, 49},
		"lon_end":   []float64{3.5, 4.5},
		"time":      "2024-01-01T12:00:00Z",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Data struct {
			Violated []bool   `json:"violated"`
			Messages []string `json:"messages"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []bool{true, false}, resp.Data.Violated)
	assert.Len(t, resp.Data.Messages, 1)
	assert.Equal(t, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), svc.lastBatch.Time.UTC())
}

func TestEvaluateSegmentsValidation(t *testing.T) {
	h := NewAPI(zap.NewNop()).Handler(&fakeService{}, RateLimit{})

	rec := serve(t, h, http.MethodPost, "/api/constraints/evaluateSegments", map[string]interface{}{
		"lat_start": []float64{95},
		"lon_start": []float64{3},
		"lat_end":   []float64{50},
		"lon_end":   []float64{3},
		"time":      "2024-01-01T12:00:00Z",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, h, http.MethodPost, "/api/constraints/evaluateSegments", map[string]interface{}{
		"lat_start": []float64{50},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEvaluateSegmentsErrorCodes(t *testing.T) {
	body := map[string]interface{}{
		"lat_start": []float64{50},
		"lon_start": []float64{3},
		"lat_end":   []float64{50},
		"lon_end":   []float64{3},
		"time":      "2024-01-01T12:00:00Z",
	}

	testCases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "data unavailable", err: util.WrapErrorf(nil, util.ErrDataUnavailable, "outside grid"), wantCode: http.StatusUnprocessableEntity},
		{name: "geometry", err: util.WrapErrorf(nil, util.ErrGeometry, "segment 0"), wantCode: http.StatusInternalServerError},
		{name: "bad input", err: util.WrapErrorf(nil, util.ErrBadParamInput, "length"), wantCode: http.StatusBadRequest},
		{name: "plain error", err: assert.AnError, wantCode: http.StatusInternalServerError},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAPI(zap.NewNop()).Handler(&fakeService{err: tt.err}, RateLimit{})
			rec := serve(t, h, http.MethodPost, "/api/constraints/evaluateSegments", body)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestCheckRouteEndpoint(t *testing.T) {
	svc := &fakeService{}
	h := NewAPI(zap.NewNop()).Handler(svc, RateLimit{})

	route := geo.PolylineFromCoords([]geo.Coordinate{geo.NewCoordinate(1, 2), geo.NewCoordinate(3, 4)})
	rec := serve(t, h, http.MethodPost, "/api/constraints/checkRoute", map[string]interface{}{
		"route": route,
		"time":  "2024-01-01T12:00:00Z",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, route, svc.lastRoute)

	var resp struct {
		Data struct {
			Safe     bool `json:"safe"`
			Legs     []struct {
				DistanceKm float64 `json:"distance_km"`
			} `json:"legs"`
			Messages []string `json:"messages"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Safe)
	require.Len(t, resp.Data.Legs, 1)
	assert.Equal(t, 314.4, resp.Data.Legs[0].DistanceKm)
	assert.NotNil(t, resp.Data.Messages)
}

func TestSettingsEndpoint(t *testing.T) {
	h := NewAPI(zap.NewNop()).Handler(&fakeService{}, RateLimit{})

	rec := serve(t, h, http.MethodGet, "/api/constraints/settings", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Resolution  float64  `json:"resolution"`
			NSteps      int      `json:"n_steps"`
			Constraints []string `json:"constraints"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0.1, resp.Data.Resolution)
	assert.Equal(t, 10, resp.Data.NSteps)
	assert.Equal(t, []string{"LandCrossing: no land crossing"}, resp.Data.Constraints)
}

func TestSwaggerUI(t *testing.T) {
	h := NewAPI(zap.NewNop()).Handler(&fakeService{}, RateLimit{})
	rec := serve(t, h, http.MethodGet, "/doc/index.html", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMiddleware(t *testing.T) {
	h := NewAPI(zap.NewNop()).Handler(&fakeService{}, RateLimit{Enabled: true, RPS: 1, Burst: 1})

	rec := serve(t, h, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ".", rec.Body.String())

	req := httptest.NewRequest(http.MethodPost, "/api/constraints/checkRoute", bytes.NewBufferString("route=abc"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	// the rejected post never reached the limiter, the burst of one is still available
	rec = serve(t, h, http.MethodGet, "/api/constraints/settings", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = serve(t, h, http.MethodGet, "/api/constraints/settings", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
