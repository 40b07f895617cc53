package util

import (
	"errors"
	"fmt"
	"math"
)

// error

type Error struct {
	orig error
	msg  string
	code error
}

func (e *Error) Error() string {
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}

	return e.msg
}

func (e *Error) Unwrap() error {
	return e.orig
}

func WrapErrorf(orig error, code error, format string, a ...interface{}) error {
	return &Error{
		code: code,
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
	}
}

func (e *Error) Code() error {
	return e.code
}

// IsCode reports whether any *Error in err's chain carries code.
func IsCode(err error, code error) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.code == code {
			return true
		}
		err = e.orig
	}
	return false
}

var (
	ErrInternalServerError = errors.New("internal Server Error")
	ErrBadParamInput       = errors.New("given Param is not valid")

	// ErrDataUnavailable: query outside the environmental data loaded for the run.
	ErrDataUnavailable = errors.New("environmental data unavailable")
	// ErrGeometry: segment subdivision did not land on the declared segment end.
	ErrGeometry      = errors.New("segment geometry error")
	ErrConfiguration = errors.New("invalid configuration")
)

var MessageInternalServerError string = "internal server error"

func DegreeToRadians(angle float64) float64 {
	return angle * (math.Pi / 180.0)
}

func RadiansToDegree(rad float64) float64 {
	return 180.0 * rad / math.Pi
}

// AllClose. |a-b| <= atol + rtol*|b|, element-wise.
func AllClose(a, b []float64, rtol, atol float64) (int, bool) {
	for i := range a {
		if math.Abs(a[i]-b[i]) > atol+rtol*math.Abs(b[i]) {
			return i, false
		}
	}
	return -1, true
}
