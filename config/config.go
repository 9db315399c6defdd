// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Sentinel errors.
var (
	// ErrDecode indicates malformed YAML or an unknown key.
	ErrDecode = errors.New("config: decode")

	// ErrInvalid indicates a value outside its allowed range.
	ErrInvalid = errors.New("config: invalid")
)

// Environment overrides.
const (
	EnvLogLevel        = "RELIEFROUTE_LOG_LEVEL"
	EnvLogFormat       = "RELIEFROUTE_LOG_FORMAT"
	EnvSolverTimeout   = "RELIEFROUTE_SOLVER_TIMEOUT"
	EnvMissingLandCost = "RELIEFROUTE_MISSING_LAND_COST"
)

// Config is the root document.
type Config struct {
	Assembly Assembly `yaml:"assembly"`
	Solver   Solver   `yaml:"solver"`
	Logging  Logging  `yaml:"logging"`
}

// Assembly selects the model-assembly policies.
type Assembly struct {
	// MissingLandCost is exclude, penalty or strict.
	MissingLandCost string `yaml:"missing_land_cost" validate:"oneof=exclude penalty strict"`
	// Penalty is the unit cost of an unpriced lane under the penalty policy; 0 means the default.
	Penalty float64 `yaml:"penalty" validate:"gte=0"`
	// MissingCapacity is unconstrained or zero.
	MissingCapacity string `yaml:"missing_capacity" validate:"oneof=unconstrained zero"`
	// Parallelism bounds concurrent commodity fragments; 0 means GOMAXPROCS.
	Parallelism int `yaml:"parallelism" validate:"gte=0"`
}

// Solver bounds the optimiser.
type Solver struct {
	Timeout   Duration `yaml:"timeout" validate:"gt=0"`
	Tolerance float64  `yaml:"tolerance" validate:"gt=0,lt=1"`
}

// Logging configures the structured logger.
type Logging struct {
	Level     string `yaml:"level" validate:"oneof=debug info warn error"`
	Format    string `yaml:"format" validate:"oneof=json text"`
	AddSource bool   `yaml:"add_source"`
}

// Duration is a time.Duration written as a duration string in YAML.
type Duration time.Duration

// UnmarshalYAML accepts "30s"-style strings.
func (d *Duration) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*d = Duration(v)

	return nil
}

// MarshalYAML writes the duration string.
func (d Duration) MarshalYAML() (any, error) { return time.Duration(d).String(), nil }

// Std returns the time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Assembly: Assembly{MissingLandCost: "exclude", MissingCapacity: "unconstrained"},
		Solver:   Solver{Timeout: Duration(30 * time.Second), Tolerance: 1e-9},
		Logging:  Logging{Level: "info", Format: "text"},
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	return v
}

// Load reads path over Default, applies environment overrides and validates.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	cfg, err := decode(f)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}

	return cfg, cfg.Validate()
}

// Decode reads one YAML document over Default and validates it. The
// environment is not consulted. An empty stream yields Default.
func Decode(r io.Reader) (Config, error) {
	cfg, err := decode(r)
	if err != nil {
		return Config{}, err
	}

	return cfg, cfg.Validate()
}

func decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	cfg.normalize()

	return cfg, nil
}

// ApplyEnv overrides fields from the environment through lookup
// (os.LookupEnv in production). Empty values are ignored.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}
	if v, ok := get(EnvLogLevel); ok {
		c.Logging.Level = v
	}
	if v, ok := get(EnvLogFormat); ok {
		c.Logging.Format = v
	}
	if v, ok := get(EnvMissingLandCost); ok {
		c.Assembly.MissingLandCost = v
	}
	if v, ok := get(EnvSolverTimeout); ok {
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalid, EnvSolverTimeout, err)
		}
		c.Solver.Timeout = Duration(d)
	}
	c.normalize()

	return nil
}

// parseDuration accepts duration strings and bare seconds.
func parseDuration(s string) (time.Duration, error) {
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}

	return time.ParseDuration(s)
}

func (c *Config) normalize() {
	c.Assembly.MissingLandCost = strings.ToLower(strings.TrimSpace(c.Assembly.MissingLandCost))
	c.Assembly.MissingCapacity = strings.ToLower(strings.TrimSpace(c.Assembly.MissingCapacity))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
}

// Validate checks every field against its allowed range.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}

	return nil
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	e := verrs[0]
	field := strings.TrimPrefix(e.Namespace(), "Config.")
	switch e.Tag() {
	case "oneof":
		return fmt.Errorf("%w: %s: %q is not one of [%s]", ErrInvalid, field, e.Value(), e.Param())
	case "gt":
		return fmt.Errorf("%w: %s: must be greater than %s", ErrInvalid, field, e.Param())
	case "gte":
		return fmt.Errorf("%w: %s: must be at least %s", ErrInvalid, field, e.Param())
	case "lt":
		return fmt.Errorf("%w: %s: must be less than %s", ErrInvalid, field, e.Param())
	default:
		return fmt.Errorf("%w: %s: validation failed (%s)", ErrInvalid, field, e.Tag())
	}
}
