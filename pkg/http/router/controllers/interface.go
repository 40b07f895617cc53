package controllers

import (
	"time"

	"github.com/lintang-b-s/navigatorx-constraints/pkg/constraints"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/http/usecases"
)

type ConstraintService interface {
	EvaluateSegments(batch constraints.SegmentBatch) ([]bool, []string, error)
	CheckRoute(encodedRoute string, t time.Time) (usecases.RouteVerdict, error)
	Settings() (constraints.ConstraintParameters, []string)
}
