package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/navigatorx-constraints/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/util"
	"go.uber.org/zap"
)

type constraintsAPI struct {
	constraintService ConstraintService
	log               *zap.Logger
}

func New(constraintService ConstraintService, log *zap.Logger) *constraintsAPI {
	return &constraintsAPI{
		constraintService: constraintService,
		log:               log,
	}
}

func (api *constraintsAPI) Routes(group *helper.RouteGroup) {
	group.POST("/constraints/evaluateSegments", api.evaluateSegments)
	group.POST("/constraints/checkRoute", api.checkRoute)
	group.GET("/constraints/settings", api.settings)
}

func (api *constraintsAPI) evaluateSegments(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request evaluateSegmentsRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := util.ValidateStruct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	violated, messages, err := api.constraintService.EvaluateSegments(request.toSegmentBatch())
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewEvaluateSegmentsResponse(violated, messages)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *constraintsAPI) checkRoute(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request checkRouteRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := util.ValidateStruct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	verdict, err := api.constraintService.CheckRoute(request.Route, request.Time)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewCheckRouteResponse(verdict)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *constraintsAPI) settings(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	pars, infos := api.constraintService.Settings()

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewSettingsResponse(pars, infos)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
