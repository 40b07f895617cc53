package usecases

import (
	"github.com/lintang-b-s/navigatorx-constraints/pkg/constraints"
)

type ConstraintsEvaluator interface {
	EvaluateSegments(batch constraints.SegmentBatch) ([]bool, []string, error)
	GetParameters() constraints.ConstraintParameters
	ActiveConstraints() []string
}
