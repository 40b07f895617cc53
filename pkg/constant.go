package pkg

const (
	DEFAULT_RESOLUTION      = 0.1
	DEFAULT_MIN_DRAFT       = 50.0
	DEFAULT_MAX_WAVE_HEIGHT = 10.0

	// subdivision postcondition, |x - end| <= GEOMETRY_ATOL + GEOMETRY_RTOL*|end|
	GEOMETRY_ATOL = 1e-8
	GEOMETRY_RTOL = 1e-8

	NEGATIVE_CONSTRAINT_MESSAGE = "At least one point discarded as "
)
