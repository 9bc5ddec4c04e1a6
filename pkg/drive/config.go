package drive

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/robotalks/vescdrive/pkg/vesc"
)

// Side selects which tank-drive input a motor follows.
type Side int

// Sides.
const (
	Left Side = iota
	Right
)

// String implements fmt.Stringer.
func (s Side) String() string {
	if s == Right {
		return "right"
	}
	return "left"
}

// Select picks the input for this side.
func (s Side) Select(left, right float64) float64 {
	if s == Right {
		return right
	}
	return left
}

// ParseSide parses "left" or "right".
func ParseSide(str string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	}
	return Left, fmt.Errorf("invalid side %q", str)
}

// MotorPair is two controllers on the same wheel group, e.g. both VESCs of
// a dual controller.
type MotorPair struct {
	ID1, ID2     uint8
	Mask1, Mask2 Side
}

// MotorSingle is a stand-alone controller.
type MotorSingle struct {
	ID   uint8
	Mask Side
}

// Config is the drive layout.
type Config struct {
	SpeedMultiplier float64
	Command         vesc.CommandType
	// CommandTimeout stops the motors when no setpoint arrives in time.
	// Zero disables the watchdog.
	CommandTimeout time.Duration
	Pairs          []MotorPair
	Singles        []MotorSingle
}

// DefaultCommandTimeout is applied when the file doesn't specify one.
const DefaultCommandTimeout = 500 * time.Millisecond

var (
	// ErrDuplicateMotor indicates a CAN id used twice in the layout.
	ErrDuplicateMotor = errors.New("duplicate motor id")
	// ErrNoMotors indicates an empty layout.
	ErrNoMotors = errors.New("no motors configured")
	// ErrInvalidMultiplier indicates a NaN or infinite speed multiplier.
	ErrInvalidMultiplier = errors.New("invalid speed multiplier")
)

// Targets lists every motor with its side, pairs first in
// declaration order, then singles.
func (c *Config) Targets() []Target {
	targets := make([]Target, 0, len(c.Pairs)*2+len(c.Singles))
	for _, p := range c.Pairs {
		targets = append(targets,
			Target{MotorID: p.ID1, Side: p.Mask1},
			Target{MotorID: p.ID2, Side: p.Mask2})
	}
	for _, s := range c.Singles {
		targets = append(targets, Target{MotorID: s.ID, Side: s.Mask})
	}
	return targets
}

// Validate checks the layout.
func (c *Config) Validate() error {
	if math.IsNaN(c.SpeedMultiplier) || math.IsInf(c.SpeedMultiplier, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidMultiplier, c.SpeedMultiplier)
	}
	if c.CommandTimeout < 0 {
		return fmt.Errorf("negative command timeout %v", c.CommandTimeout)
	}
	if !c.Command.Valid() {
		return fmt.Errorf("%w: %s", vesc.ErrUnknownCommand, c.Command)
	}
	targets := c.Targets()
	if len(targets) == 0 {
		return ErrNoMotors
	}
	seen := make(map[uint8]bool, len(targets))
	for _, t := range targets {
		if seen[t.MotorID] {
			return fmt.Errorf("%w: %d", ErrDuplicateMotor, t.MotorID)
		}
		seen[t.MotorID] = true
	}
	return nil
}

type pairFile struct {
	ID1   uint8  `mapstructure:"id1"`
	ID2   uint8  `mapstructure:"id2"`
	Mask1 string `mapstructure:"mask1"`
	Mask2 string `mapstructure:"mask2"`
}

type singleFile struct {
	ID   uint8  `mapstructure:"id"`
	Mask string `mapstructure:"mask"`
}

type configFile struct {
	Drive struct {
		SpeedMultiplier float64       `mapstructure:"speed_multiplier"`
		Command         string        `mapstructure:"command"`
		CommandTimeout  time.Duration `mapstructure:"command_timeout"`
		Pairs           []pairFile    `mapstructure:"pairs"`
		Singles         []singleFile  `mapstructure:"singles"`
	} `mapstructure:"drive"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("VESC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("drive.speed_multiplier", 1.0)
	v.SetDefault("drive.command", vesc.SetRpm.String())
	v.SetDefault("drive.command_timeout", DefaultCommandTimeout)
	return v
}

// LoadConfig reads the layout from a file. The format is detected from
// the extension (yaml, json, toml). Scalar settings can be overridden by
// environment, e.g. VESC_DRIVE_SPEED_MULTIPLIER.
func LoadConfig(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read drive config %s: %w", path, err)
	}
	return decodeConfig(v)
}

// ReadConfig reads the layout in the given format from r.
func ReadConfig(r io.Reader, format string) (*Config, error) {
	v := newViper()
	v.SetConfigType(format)
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("read drive config: %w", err)
	}
	return decodeConfig(v)
}

func decodeConfig(v *viper.Viper) (*Config, error) {
	var f configFile
	if err := v.Unmarshal(&f); err != nil {
		return nil, fmt.Errorf("decode drive config: %w", err)
	}
	conf := &Config{
		SpeedMultiplier: f.Drive.SpeedMultiplier,
		CommandTimeout:  f.Drive.CommandTimeout,
	}
	var err error
	if conf.Command, err = vesc.ParseCommand(f.Drive.Command); err != nil {
		return nil, err
	}
	for n, p := range f.Drive.Pairs {
		pair := MotorPair{ID1: p.ID1, ID2: p.ID2}
		if pair.Mask1, err = ParseSide(p.Mask1); err != nil {
			return nil, fmt.Errorf("pairs[%d].mask1: %w", n, err)
		}
		if pair.Mask2, err = ParseSide(p.Mask2); err != nil {
			return nil, fmt.Errorf("pairs[%d].mask2: %w", n, err)
		}
		conf.Pairs = append(conf.Pairs, pair)
	}
	for n, s := range f.Drive.Singles {
		single := MotorSingle{ID: s.ID}
		if single.Mask, err = ParseSide(s.Mask); err != nil {
			return nil, fmt.Errorf("singles[%d].mask: %w", n, err)
		}
		conf.Singles = append(conf.Singles, single)
	}
	if err = conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}
