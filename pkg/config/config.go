package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lintang-b-s/navigatorx-constraints/pkg"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/constraints"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/environment"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/util"
	"github.com/spf13/viper"
)

type Config struct {
	LogLevel    string            `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	Constraints ConstraintsConfig `mapstructure:"constraints"`
	Environment EnvironmentConfig `mapstructure:"environment"`
	Server      ServerConfig      `mapstructure:"server"`
}

type ConstraintsConfig struct {
	Resolution     float64 `mapstructure:"resolution" validate:"gte=0.000001,lte=1"`
	CheckEndpoints bool    `mapstructure:"check_endpoints"`
	CheckCrossing  bool    `mapstructure:"check_crossing"`
	Parallel       bool    `mapstructure:"parallel"`
	Workers        int     `mapstructure:"workers" validate:"gte=0"`

	LandCrossing bool               `mapstructure:"land_crossing"`
	WaterDepth   WaterDepthConfig   `mapstructure:"water_depth"`
	WaveHeight   WaveHeightConfig   `mapstructure:"wave_height"`
	StayOnMap    StayOnMapConfig    `mapstructure:"stay_on_map"`
	Expressions  []ExpressionConfig `mapstructure:"expressions" validate:"dive"`
}

type WaterDepthConfig struct {
	Enabled  bool    `mapstructure:"enabled"`
	MinDraft float64 `mapstructure:"min_draft" validate:"gt=0"`
}

type WaveHeightConfig struct {
	Enabled       bool    `mapstructure:"enabled"`
	MaxWaveHeight float64 `mapstructure:"max_wave_height" validate:"gt=0"`
}

// StayOnMapConfig. with FromData the box is the extent of the loaded environmental grids,
// otherwise (Lat1,Lon1)-(Lat2,Lon2).
type StayOnMapConfig struct {
	Enabled  bool    `mapstructure:"enabled"`
	FromData bool    `mapstructure:"from_data"`
	Lat1     float64 `mapstructure:"lat1" validate:"min=-90,max=90"`
	Lon1     float64 `mapstructure:"lon1" validate:"min=-180,max=180"`
	Lat2     float64 `mapstructure:"lat2" validate:"min=-90,max=90"`
	Lon2     float64 `mapstructure:"lon2" validate:"min=-180,max=180"`
}

type ExpressionConfig struct {
	Name       string `mapstructure:"name" validate:"required"`
	Reason     string `mapstructure:"reason" validate:"required"`
	Expression string `mapstructure:"expression" validate:"required"`
}

type EnvironmentConfig struct {
	DepthFile string `mapstructure:"depth_file"`
	WaveFile  string `mapstructure:"wave_file"`
	LandFile  string `mapstructure:"land_file"`
}

type ServerConfig struct {
	Port      int           `mapstructure:"port" validate:"min=1,max=65535"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gt=0"`
	RateLimit bool          `mapstructure:"rate_limit"`
	RPS       float64       `mapstructure:"rps" validate:"gte=0"`
	Burst     int           `mapstructure:"burst" validate:"gte=0"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")

	v.SetDefault("constraints.resolution", pkg.DEFAULT_RESOLUTION)
	v.SetDefault("constraints.check_endpoints", true)
	v.SetDefault("constraints.check_crossing", true)
	v.SetDefault("constraints.parallel", false)
	v.SetDefault("constraints.workers", 0)
	v.SetDefault("constraints.land_crossing", true)
	v.SetDefault("constraints.water_depth.enabled", true)
	v.SetDefault("constraints.water_depth.min_draft", pkg.DEFAULT_MIN_DRAFT)
	v.SetDefault("constraints.wave_height.enabled", true)
	v.SetDefault("constraints.wave_height.max_wave_height", pkg.DEFAULT_MAX_WAVE_HEIGHT)
	v.SetDefault("constraints.stay_on_map.enabled", true)
	v.SetDefault("constraints.stay_on_map.from_data", true)
	v.SetDefault("constraints.stay_on_map.lat1", -90.0)
	v.SetDefault("constraints.stay_on_map.lon1", -180.0)
	v.SetDefault("constraints.stay_on_map.lat2", 90.0)
	v.SetDefault("constraints.stay_on_map.lon2", 180.0)

	v.SetDefault("environment.depth_file", "./data/depth.grid")
	v.SetDefault("environment.wave_file", "./data/waves.grid")
	v.SetDefault("environment.land_file", "./data/land.poly")

	v.SetDefault("server.port", 6060)
	v.SetDefault("server.timeout", "60s")
	v.SetDefault("server.rate_limit", false)
	v.SetDefault("server.rps", 50.0)
	v.SetDefault("server.burst", 100)
}

// ReadConfig. reads configFile, or config.{yaml,json,toml} from ./data/ when configFile is empty.
// Every key can be overridden from the environment, e.g. CONSTRAINTS_RESOLUTION=0.05. A missing
// default config file leaves the defaults in place.
func ReadConfig(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./data/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, util.WrapErrorf(err, util.ErrConfiguration, "fatal error config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, util.WrapErrorf(err, util.ErrConfiguration, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := util.ValidateStruct(c); err != nil {
		return util.WrapErrorf(err, util.ErrConfiguration, "config")
	}
	som := c.Constraints.StayOnMap
	if som.Enabled && !som.FromData && (som.Lat1 >= som.Lat2 || som.Lon1 >= som.Lon2) {
		return util.WrapErrorf(nil, util.ErrConfiguration,
			"stay_on_map: (lat1,lon1)=(%g,%g) must be south-west of (lat2,lon2)=(%g,%g)",
			som.Lat1, som.Lon1, som.Lat2, som.Lon2)
	}
	return nil
}

func (c *Config) ConstraintParameters() constraints.ConstraintParameters {
	return constraints.ConstraintParameters{
		Resolution:         c.Constraints.Resolution,
		CheckEndpointsOnly: c.Constraints.CheckEndpoints,
		CheckCrossing:      c.Constraints.CheckCrossing,
		Parallel:           c.Constraints.Parallel,
		Workers:            c.Constraints.Workers,
	}
}

func (c *Config) EnvironmentFiles() environment.Files {
	return environment.Files{
		DepthFile: c.Environment.DepthFile,
		WaveFile:  c.Environment.WaveFile,
		LandFile:  c.Environment.LandFile,
	}
}

func (c *Config) String() string {
	return fmt.Sprintf("Config{LogLevel=%s, Resolution=%g, CheckEndpoints=%t, CheckCrossing=%t, "+
		"DepthFile=%s, WaveFile=%s, LandFile=%s, Port=%d}",
		c.LogLevel, c.Constraints.Resolution, c.Constraints.CheckEndpoints, c.Constraints.CheckCrossing,
		c.Environment.DepthFile, c.Environment.WaveFile, c.Environment.LandFile, c.Server.Port)
}
