package simulation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/asteroids/internal/core/geometry"
	"github.com/zeusync/asteroids/internal/core/observability/log"
	"github.com/zeusync/asteroids/internal/core/systems/physics"
)

var ErrInvalidConfig = errors.New("invalid simulation config")

// Config describes a scene and how long to run it. It can be written in JSON
// or YAML.
type Config struct {
	Seed          uint64          `json:"seed" yaml:"seed"`
	Engine        physics.Kind    `json:"engine" yaml:"engine"`
	Timestep      Duration        `json:"timestep" yaml:"timestep"`
	Frames        int             `json:"frames" yaml:"frames"`
	Gravity       geometry.Point2 `json:"gravity" yaml:"gravity"`
	StrictHandles bool            `json:"strict_handles" yaml:"strict_handles"`
	LogLevel      string          `json:"log_level" yaml:"log_level"`
	StatsInterval Duration        `json:"stats_interval" yaml:"stats_interval"`
	RenderWorkers int             `json:"render_workers" yaml:"render_workers"`
	Ground        *GroundConfig   `json:"ground,omitempty" yaml:"ground,omitempty"`
	Asteroids     []SpawnConfig   `json:"asteroids" yaml:"asteroids"`
}

// GroundConfig is a static box given by its half extents.
type GroundConfig struct {
	Position   geometry.Point2 `json:"position" yaml:"position"`
	HalfWidth  float64         `json:"half_width" yaml:"half_width"`
	HalfHeight float64         `json:"half_height" yaml:"half_height"`
	Angle      float64         `json:"angle" yaml:"angle"`
}

// SpawnConfig spawns Count random asteroids, the i-th one at
// Position + i*Offset.
type SpawnConfig struct {
	Position geometry.Point2      `json:"position" yaml:"position"`
	Offset   geometry.Point2      `json:"offset" yaml:"offset"`
	Count    int                  `json:"count" yaml:"count"`
	Vertices geometry.VertexRange `json:"vertices" yaml:"vertices"`
	Extent   geometry.Extent      `json:"extent" yaml:"extent"`
	Density  float64              `json:"density" yaml:"density"`
}

// DefaultConfig is the stock scene: a tilted ground slab and two random
// asteroids falling onto it.
func DefaultConfig() Config {
	return Config{
		Seed:          1,
		Engine:        physics.KindChipmunk,
		Timestep:      Duration(time.Second / 60),
		Frames:        0,
		Gravity:       geometry.Point2{X: 0, Y: 200},
		LogLevel:      "info",
		StatsInterval: Duration(time.Second),
		Ground: &GroundConfig{
			Position:   geometry.Point2{X: 0, Y: 100},
			HalfWidth:  2000,
			HalfHeight: 100,
			Angle:      math.Pi / 4,
		},
		Asteroids: []SpawnConfig{{
			Position: geometry.Point2{X: 400, Y: 200},
			Offset:   geometry.Point2{X: 50, Y: -200},
			Count:    2,
			Vertices: geometry.VertexRange{Min: 4, Max: 7},
			Extent:   geometry.Extent{Width: 50, Height: 150},
			Density:  1,
		}},
	}
}

// LoadJSON decodes a config from JSON. Omitted keys keep their DefaultConfig
// values; an explicit empty asteroids list spawns none.
func LoadJSON(r io.Reader) (*Config, error) {
	c := decodeBase()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return finish(c)
}

// LoadYAML decodes a config from YAML with the same defaulting as LoadJSON.
func LoadYAML(r io.Reader) (*Config, error) {
	c := decodeBase()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return finish(c)
}

// decodeBase is DefaultConfig without spawn groups, so decoded groups never
// merge into the default ones.
func decodeBase() Config {
	c := DefaultConfig()
	c.Asteroids = nil
	return c
}

func finish(c Config) (*Config, error) {
	if c.Asteroids == nil {
		c.Asteroids = DefaultConfig().Asteroids
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadFile picks the decoder from the file extension. Anything other than
// .json is read as YAML.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return LoadJSON(f)
	}
	return LoadYAML(f)
}

func (c *Config) Validate() error {
	switch c.Engine {
	case physics.KindChipmunk, physics.KindBox2D:
	default:
		return fmt.Errorf("%w: engine %q", ErrInvalidConfig, c.Engine)
	}
	if _, ok := log.LookupLevel(c.LogLevel); !ok {
		return fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	if c.Timestep <= 0 {
		return fmt.Errorf("%w: timestep must be positive, got %s", ErrInvalidConfig, c.Timestep)
	}
	if c.Frames < 0 {
		return fmt.Errorf("%w: frames must not be negative, got %d", ErrInvalidConfig, c.Frames)
	}
	if c.StatsInterval < 0 {
		return fmt.Errorf("%w: stats_interval must not be negative, got %s", ErrInvalidConfig, c.StatsInterval)
	}
	if c.RenderWorkers < 0 {
		return fmt.Errorf("%w: render_workers must not be negative, got %d", ErrInvalidConfig, c.RenderWorkers)
	}
	if !c.Gravity.IsFinite() {
		return fmt.Errorf("%w: gravity %v", ErrInvalidConfig, c.Gravity)
	}
	if g := c.Ground; g != nil {
		if !(g.HalfWidth > 0) || !(g.HalfHeight > 0) {
			return fmt.Errorf("%w: ground half extents %gx%g", ErrInvalidConfig, g.HalfWidth, g.HalfHeight)
		}
	}
	for i, s := range c.Asteroids {
		if s.Count < 0 {
			return fmt.Errorf("%w: asteroids[%d]: negative count %d", ErrInvalidConfig, i, s.Count)
		}
		if s.Density < 0 {
			return fmt.Errorf("%w: asteroids[%d]: negative density %g", ErrInvalidConfig, i, s.Density)
		}
		if err := s.Vertices.Validate(); err != nil {
			return fmt.Errorf("%w: asteroids[%d]: %w", ErrInvalidConfig, i, err)
		}
		if err := s.Extent.Validate(); err != nil {
			return fmt.Errorf("%w: asteroids[%d]: %w", ErrInvalidConfig, i, err)
		}
	}
	return nil
}

// Duration is a time.Duration written as a Go duration string ("16ms") in
// both JSON and YAML.
type Duration time.Duration

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	return d.set(raw)
}

func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	return d.set(raw)
}

func (d *Duration) set(raw any) error {
	switch v := raw.(type) {
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
	case float64:
		*d = Duration(time.Duration(v))
	case int:
		*d = Duration(time.Duration(v))
	default:
		return fmt.Errorf("duration must be a string or a number of nanoseconds, got %T", raw)
	}
	return nil
}
