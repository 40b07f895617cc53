package constraints

import (
	"time"

	"github.com/lintang-b-s/navigatorx-constraints/pkg"
)

type Kind uint8

const (
	// POSITIVE. areas the route needs to follow (e.g. waterways), registered but not consulted
	// by the endpoint and crossing checks.
	POSITIVE Kind = iota
	// NEGATIVE. areas the route must not enter.
	NEGATIVE
	// NEGATIVE_FROM_ENVIRONMENT. negative constraint that queries the environmental provider.
	NEGATIVE_FROM_ENVIRONMENT
)

func (k Kind) String() string {
	switch k {
	case POSITIVE:
		return "positive"
	case NEGATIVE:
		return "negative"
	case NEGATIVE_FROM_ENVIRONMENT:
		return "negative_from_environment"
	default:
		return "unknown"
	}
}

func (k Kind) IsNegative() bool {
	return k == NEGATIVE || k == NEGATIVE_FROM_ENVIRONMENT
}

// Constraint. single predicate over a batch of points. ConstraintOnPoint returns a mask of the
// same length as lat/lon, true where the point violates the constraint.
type Constraint interface {
	Name() string
	Kind() Kind
	Message() string
	// Info. human readable settings, for logging.
	Info() string
	ConstraintOnPoint(lat, lon []float64, t time.Time) ([]bool, error)
}

type baseConstraint struct {
	name    string
	message string
	kind    Kind
}

func newPositive(name string) baseConstraint {
	return baseConstraint{name: name, kind: POSITIVE}
}

func newNegative(name, reason string) baseConstraint {
	return baseConstraint{
		name:    name,
		message: pkg.NEGATIVE_CONSTRAINT_MESSAGE + reason,
		kind:    NEGATIVE,
	}
}

func newNegativeFromEnvironment(name, reason string) baseConstraint {
	c := newNegative(name, reason)
	c.kind = NEGATIVE_FROM_ENVIRONMENT
	return c
}

func (c *baseConstraint) Name() string {
	return c.name
}

func (c *baseConstraint) Kind() Kind {
	return c.kind
}

func (c *baseConstraint) Message() string {
	return c.message
}

// PointFunc. predicate evaluated point by point.
type PointFunc func(lat, lon float64, t time.Time) bool

// PredicateConstraint. constraint backed by a plain function, for areas that have no
// dedicated type (exclusion zones, traffic separation schemes, waterways).
type PredicateConstraint struct {
	baseConstraint
	info string
	fn   PointFunc
}

func NewPositiveConstraint(name, info string, fn PointFunc) *PredicateConstraint {
	return &PredicateConstraint{baseConstraint: newPositive(name), info: info, fn: fn}
}

// NewNegativeConstraint. reason completes the "At least one point discarded as " message.
func NewNegativeConstraint(name, reason, info string, fn PointFunc) *PredicateConstraint {
	return &PredicateConstraint{baseConstraint: newNegative(name, reason), info: info, fn: fn}
}

func (pc *PredicateConstraint) Info() string {
	return pc.info
}

func (pc *PredicateConstraint) ConstraintOnPoint(lat, lon []float64, t time.Time) ([]bool, error) {
	out := make([]bool, len(lat))
	for i := range lat {
		out[i] = pc.fn(lat[i], lon[i], t)
	}
	return out, nil
}
