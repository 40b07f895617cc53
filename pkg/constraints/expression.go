package constraints

import (
	"fmt"
	"reflect"
	"time"

	"github.com/google/cel-go/cel"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/environment"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/util"
)

const (
	exprVarLat        = "lat"
	exprVarLon        = "lon"
	exprVarDepth      = "depth"
	exprVarWaveHeight = "wave_height"
	exprVarUnixTime   = "unix_time"
)

type EnvironmentSource interface {
	environment.DepthSource
	environment.WaveSource
}

// ExpressionConstraint. negative constraint whose predicate is a CEL expression over lat, lon,
// depth, wave_height and unix_time, e.g. `depth > -25.0 && wave_height > 4.0`. Only the
// environmental fields the expression references are queried.
type ExpressionConstraint struct {
	baseConstraint
	expression string
	env        EnvironmentSource
	program    cel.Program

	needDepth bool
	needWaves bool
}

func NewExpressionConstraint(name, reason, expression string, env EnvironmentSource) (*ExpressionConstraint, error) {
	celEnv, err := cel.NewEnv(
		cel.Variable(exprVarLat, cel.DoubleType),
		cel.Variable(exprVarLon, cel.DoubleType),
		cel.Variable(exprVarDepth, cel.DoubleType),
		cel.Variable(exprVarWaveHeight, cel.DoubleType),
		cel.Variable(exprVarUnixTime, cel.IntType),
	)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrConfiguration, "constraint %s: cel environment", name)
	}

	ast, iss := celEnv.Compile(expression)
	if iss != nil && iss.Err() != nil {
		return nil, util.WrapErrorf(iss.Err(), util.ErrConfiguration, "constraint %s: compile %q", name, expression)
	}
	if !reflect.DeepEqual(ast.OutputType(), cel.BoolType) {
		return nil, util.WrapErrorf(nil, util.ErrConfiguration, "constraint %s: expression %q must evaluate to bool, got %v",
			name, expression, ast.OutputType())
	}

	checked, err := cel.AstToCheckedExpr(ast)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrConfiguration, "constraint %s: %q", name, expression)
	}

	prg, err := celEnv.Program(ast)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrConfiguration, "constraint %s: program %q", name, expression)
	}

	ec := &ExpressionConstraint{
		baseConstraint: newNegativeFromEnvironment(name, reason),
		expression:     expression,
		env:            env,
		program:        prg,
	}
	for _, ref := range checked.GetReferenceMap() {
		switch ref.GetName() {
		case exprVarDepth:
			ec.needDepth = true
		case exprVarWaveHeight:
			ec.needWaves = true
		}
	}
	return ec, nil
}

func (ec *ExpressionConstraint) ConstraintOnPoint(lat, lon []float64, t time.Time) ([]bool, error) {
	if len(lat) == 0 {
		return []bool{}, nil
	}

	var (
		depth, waves []float64
		err          error
	)
	if ec.needDepth {
		depth, err = ec.env.InterpolateDepth(lat, lon)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrDataUnavailable, "constraint %s", ec.name)
		}
	}
	if ec.needWaves {
		waves, err = ec.env.InterpolateWaveHeight(lat, lon, t)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrDataUnavailable, "constraint %s", ec.name)
		}
	}

	vars := map[string]interface{}{
		exprVarUnixTime:   t.Unix(),
		exprVarDepth:      0.0,
		exprVarWaveHeight: 0.0,
	}
	out := make([]bool, len(lat))
	for i := range lat {
		vars[exprVarLat] = lat[i]
		vars[exprVarLon] = lon[i]
		if ec.needDepth {
			vars[exprVarDepth] = depth[i]
		}
		if ec.needWaves {
			vars[exprVarWaveHeight] = waves[i]
		}

		val, _, err := ec.program.Eval(vars)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrConfiguration, "constraint %s: evaluate %q at (%f,%f)",
				ec.name, ec.expression, lat[i], lon[i])
		}
		b, ok := val.Value().(bool)
		if !ok {
			return nil, util.WrapErrorf(nil, util.ErrConfiguration, "constraint %s: %q returned %T",
				ec.name, ec.expression, val.Value())
		}
		out[i] = b
	}
	return out, nil
}

func (ec *ExpressionConstraint) Info() string {
	return fmt.Sprintf("expression %s: %s", ec.name, ec.expression)
}
