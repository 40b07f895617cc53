package controllers

import (
	"time"

	"github.com/lintang-b-s/navigatorx-constraints/pkg/constraints"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/http/usecases"
)

type evaluateSegmentsRequest struct {
	LatStart []float64 `json:"lat_start" validate:"required,dive,min=-90,max=90"`
	LonStart []float64 `json:"lon_start" validate:"required,dive,min=-360,max=360"`
	LatEnd   []float64 `json:"lat_end" validate:"required,dive,min=-90,max=90"`
	LonEnd   []float64 `json:"lon_end" validate:"required,dive,min=-360,max=360"`
	Time     time.Time `json:"time" validate:"required"`
}

func (r evaluateSegmentsRequest) toSegmentBatch() constraints.SegmentBatch {
	return constraints.NewSegmentBatch(r.LatStart, r.LonStart, r.LatEnd, r.LonEnd, r.Time)
}

type evaluateSegmentsResponse struct {
	Violated []bool   `json:"violated"`
	Messages []string `json:"messages"`
}

func NewEvaluateSegmentsResponse(violated []bool, messages []string) evaluateSegmentsResponse {
	if messages == nil {
		messages = []string{}
	}
	return evaluateSegmentsResponse{
		Violated: violated,
		Messages: messages,
	}
}

type checkRouteRequest struct {
	Route string    `json:"route" validate:"required"`
	Time  time.Time `json:"time" validate:"required"`
}

type legResponse struct {
	FromLat    float64 `json:"from_lat"`
	FromLon    float64 `json:"from_lon"`
	ToLat      float64 `json:"to_lat"`
	ToLon      float64 `json:"to_lon"`
	DistanceKm float64 `json:"distance_km"`
	Violated   bool    `json:"violated"`
}

type checkRouteResponse struct {
	Safe     bool          `json:"safe"`
	Legs     []legResponse `json:"legs"`
	Messages []string      `json:"messages"`
}

func NewCheckRouteResponse(v usecases.RouteVerdict) checkRouteResponse {
	legs := make([]legResponse, 0, len(v.Legs))
	for _, l := range v.Legs {
		legs = append(legs, legResponse{
			FromLat:    l.From.Lat,
			FromLon:    l.From.Lon,
			ToLat:      l.To.Lat,
			ToLon:      l.To.Lon,
			DistanceKm: l.DistanceKm,
			Violated:   l.Violated,
		})
	}
	msgs := v.Messages
	if msgs == nil {
		msgs = []string{}
	}
	return checkRouteResponse{Safe: v.Safe, Legs: legs, Messages: msgs}
}

type settingsResponse struct {
	Resolution         float64  `json:"resolution"`
	NSteps             int      `json:"n_steps"`
	CheckEndpointsOnly bool     `json:"check_endpoints_only"`
	CheckCrossing      bool     `json:"check_crossing"`
	Constraints        []string `json:"constraints"`
}

func NewSettingsResponse(pars constraints.ConstraintParameters, infos []string) settingsResponse {
	return settingsResponse{
		Resolution:         pars.Resolution,
		NSteps:             pars.NSteps(),
		CheckEndpointsOnly: pars.CheckEndpointsOnly,
		CheckCrossing:      pars.CheckCrossing,
		Constraints:        infos,
	}
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
