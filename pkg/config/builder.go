package config

import (
	"github.com/lintang-b-s/navigatorx-constraints/pkg/constraints"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/environment"
	"go.uber.org/zap"
)

// BuildConstraintsList registers the configured constraints in a fixed order: StayOnMap,
// LandCrossing, WaterDepth, WaveHeight, then the expression constraints as listed.
func BuildConstraintsList(cfg *Config, env environment.Provider, log *zap.Logger) (*constraints.ConstraintsList, error) {
	cl, err := constraints.NewConstraintsList(cfg.ConstraintParameters(), log)
	if err != nil {
		return nil, err
	}
	cc := cfg.Constraints

	var neg []constraints.Constraint
	if cc.StayOnMap.Enabled {
		if cc.StayOnMap.FromData {
			neg = append(neg, constraints.NewStayOnMapFromBounds(env.Bounds()))
		} else {
			neg = append(neg, constraints.NewStayOnMap(cc.StayOnMap.Lat1, cc.StayOnMap.Lon1,
				cc.StayOnMap.Lat2, cc.StayOnMap.Lon2))
		}
	}
	if cc.LandCrossing {
		neg = append(neg, constraints.NewLandCrossing(env))
	}
	if cc.WaterDepth.Enabled {
		wd := constraints.NewWaterDepth(env)
		wd.SetDraft(cc.WaterDepth.MinDraft)
		neg = append(neg, wd)
	}
	if cc.WaveHeight.Enabled {
		wh := constraints.NewWaveHeight(env)
		wh.SetMaxWaveHeight(cc.WaveHeight.MaxWaveHeight)
		neg = append(neg, wh)
	}
	for _, ec := range cc.Expressions {
		c, err := constraints.NewExpressionConstraint(ec.Name, ec.Reason, ec.Expression, env)
		if err != nil {
			return nil, err
		}
		neg = append(neg, c)
	}

	for _, c := range neg {
		if err := cl.AddNegConstraint(c); err != nil {
			return nil, err
		}
	}
	return cl, nil
}
