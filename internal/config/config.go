package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gamecore/internal/physics"

	"github.com/spf13/viper"
)

// FileName is the config file Load looks for, without its extension.
const FileName = "gamecore"

type Config struct {
	LogLevel  string          `mapstructure:"logLevel"`
	Graylog   string          `mapstructure:"graylog"` // GELF UDP address, empty to disable
	Physics   PhysicsConfig   `mapstructure:"physics"`
	Animation AnimationConfig `mapstructure:"animation"`
	Bake      BakeConfig      `mapstructure:"bake"`
}

type PhysicsConfig struct {
	MaxSlideDepth  int     `mapstructure:"maxSlideDepth"`
	SkinDistance   float32 `mapstructure:"skinDistance"`
	MinSlideLength float32 `mapstructure:"minSlideLength"`
	Gravity        float32 `mapstructure:"gravity"`
	SlopeLimit     float32 `mapstructure:"slopeLimit"` // degrees
}

// SlideConfig converts the collide-and-slide settings.
func (p PhysicsConfig) SlideConfig() physics.SlideConfig {
	return physics.SlideConfig{
		MaxDepth:         p.MaxSlideDepth,
		SkinDistance:     p.SkinDistance,
		MinSlideLengthSq: p.MinSlideLength * p.MinSlideLength,
	}
}

type AnimationConfig struct {
	DefaultTicksPerSecond float32 `mapstructure:"defaultTicksPerSecond"`
	Loop                  bool    `mapstructure:"loop"`
}

type BakeConfig struct {
	OutputDir string `mapstructure:"outputDir"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("graylog", "")

	v.SetDefault("physics.maxSlideDepth", 1)
	v.SetDefault("physics.skinDistance", 0.005)
	v.SetDefault("physics.minSlideLength", 0.005)
	v.SetDefault("physics.gravity", 20.0)
	v.SetDefault("physics.slopeLimit", 45.0)

	v.SetDefault("animation.defaultTicksPerSecond", 30.0)
	v.SetDefault("animation.loop", true)

	v.SetDefault("bake.outputDir", "./baked")
}

// Load reads gamecore.json from dir when present and layers it over the defaults.
// A missing file is not an error. Environment variables such as
// GAMECORE_PHYSICS_GRAVITY override both.
func Load(dir string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(FileName)
	v.SetConfigType("json")
	if dir != "" {
		v.AddConfigPath(dir)
	}
	v.SetEnvPrefix("GAMECORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the physics and animation code cannot run with.
func (c Config) Validate() error {
	p := c.Physics
	switch {
	case p.MaxSlideDepth < 0:
		return fmt.Errorf("physics.maxSlideDepth must be >= 0, got %d", p.MaxSlideDepth)
	case p.SkinDistance < 0:
		return fmt.Errorf("physics.skinDistance must be >= 0, got %v", p.SkinDistance)
	case p.MinSlideLength < 0:
		return fmt.Errorf("physics.minSlideLength must be >= 0, got %v", p.MinSlideLength)
	case p.SlopeLimit < 0 || p.SlopeLimit > 90:
		return fmt.Errorf("physics.slopeLimit must be within [0, 90], got %v", p.SlopeLimit)
	case c.Animation.DefaultTicksPerSecond <= 0 || math.IsInf(float64(c.Animation.DefaultTicksPerSecond), 0):
		return fmt.Errorf("animation.defaultTicksPerSecond must be positive, got %v", c.Animation.DefaultTicksPerSecond)
	}
	return nil
}
