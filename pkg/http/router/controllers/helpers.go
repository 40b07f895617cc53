package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lintang-b-s/navigatorx-constraints/pkg/util"
	"go.uber.org/zap"
)

type envelope map[string]interface{}

func (api *constraintsAPI) writeJSON(w http.ResponseWriter, status int, data envelope, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func (api *constraintsAPI) errorResponse(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	var resp errorResponse
	resp.Error.Code = code
	resp.Error.Message = message

	if err := api.writeJSON(w, status, envelope{"error": resp.Error}, nil); err != nil {
		api.log.Error("write error response", zap.Error(err), zap.String("path", r.URL.Path))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (api *constraintsAPI) BadRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error())
}

func (api *constraintsAPI) ServerErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.log.Error("server error", zap.Error(err), zap.String("path", r.URL.Path))
	api.errorResponse(w, r, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", util.MessageInternalServerError)
}

// getStatusCode. maps the error code of a failed evaluation to the response.
func (api *constraintsAPI) getStatusCode(w http.ResponseWriter, r *http.Request, err error) {
	var ierr *util.Error
	if !errors.As(err, &ierr) {
		api.ServerErrorResponse(w, r, err)
		return
	}

	switch {
	case util.IsCode(err, util.ErrBadParamInput), util.IsCode(err, util.ErrConfiguration):
		api.errorResponse(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error())
	case util.IsCode(err, util.ErrDataUnavailable):
		api.errorResponse(w, r, http.StatusUnprocessableEntity, "DATA_UNAVAILABLE", err.Error())
	case util.IsCode(err, util.ErrGeometry):
		api.log.Error("segment geometry error", zap.Error(err))
		api.errorResponse(w, r, http.StatusInternalServerError, "GEOMETRY_ERROR", err.Error())
	default:
		api.ServerErrorResponse(w, r, err)
	}
}
