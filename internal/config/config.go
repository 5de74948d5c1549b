package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// Config holds all application configuration.
type Config struct {
	Pipeline PipelineConfig
	Paths    PathsConfig
	Render   RenderConfig
	Logging  LogConfig
}

// PipelineConfig holds the sample generation parameters.
type PipelineConfig struct {
	SampleSizes []int  `envconfig:"QQPLOT_SAMPLE_SIZES"`
	Seed        uint64 `envconfig:"QQPLOT_SEED"`
}

// PathsConfig holds the raw-data store and artifact directories.
type PathsConfig struct {
	RawDir string `envconfig:"QQPLOT_RAW_DIR"`
	OutDir string `envconfig:"QQPLOT_OUT_DIR"`
}

// RenderConfig holds the plot output switches and layout.
type RenderConfig struct {
	PDF       bool   `envconfig:"QQPLOT_PDF"`
	PNG       bool   `envconfig:"QQPLOT_PNG"`
	EPS       bool   `envconfig:"QQPLOT_EPS"`
	SVG       bool   `envconfig:"QQPLOT_SVG"`
	Grid      bool   `envconfig:"QQPLOT_GRID"`
	DateStamp bool   `envconfig:"QQPLOT_DATESTAMP"`
	StyleFile string `envconfig:"QQPLOT_STYLE_FILE"`

	Palette  []string `envconfig:"QQPLOT_PALETTE"`
	WidthCM  float64  `envconfig:"QQPLOT_WIDTH_CM"`
	HeightCM float64  `envconfig:"QQPLOT_HEIGHT_CM"`
	Margins  Margins
	XAxis    Axis
	YAxis    Axis
}

// Margins are fractions of the figure reserved around the plotting canvas,
// measured from the left and bottom edges.
type Margins struct {
	Left   float64 `toml:"left"`
	Right  float64 `toml:"right"`
	Bottom float64 `toml:"bottom"`
	Top    float64 `toml:"top"`
}

// Axis is the range and tick layout of one plot axis. Tick positions run
// from TickStart up to, but excluding, TickEnd.
type Axis struct {
	Min       float64 `toml:"min"`
	Max       float64 `toml:"max"`
	TickStart float64 `toml:"tick_start"`
	TickEnd   float64 `toml:"tick_end"`
	MajorStep float64 `toml:"major_step"`
	MinorStep float64 `toml:"minor_step"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL"`
	Development bool   `envconfig:"LOG_DEV"`
}

// Load starts from Default, overrides it with the environment variables
// that are set and, when QQPLOT_STYLE_FILE is set, applies the style file
// on top.
func Load() (*Config, error) {
	cfg := Default()
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Render.StyleFile != "" {
		if err := cfg.ApplyStyleFile(cfg.Render.StyleFile); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns default configuration.
func Default() *Config {
	axis := DefaultAxis()
	return &Config{
		Pipeline: PipelineConfig{
			SampleSizes: []int{10, 20, 50, 100, 500, 1000},
			Seed:        123456789,
		},
		Paths: PathsConfig{
			RawDir: "raw",
			OutDir: "out",
		},
		Render: RenderConfig{
			PDF:       true,
			DateStamp: true,
			Palette:   []string{"#000000"},
			WidthCM:   5.0,
			HeightCM:  4.0,
			Margins: Margins{
				Left:   0.15,
				Right:  0.95,
				Bottom: 0.15,
				Top:    0.92,
			},
			XAxis: axis,
			YAxis: axis,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}

// DefaultAxis returns the axis layout shared by both axes of a standard
// normal QQ plot.
func DefaultAxis() Axis {
	return Axis{
		Min:       -2.9,
		Max:       2.9,
		TickStart: -3.0,
		TickEnd:   2.51,
		MajorStep: 1.0,
		MinorStep: 0.5,
	}
}

// Validate reports the first configuration value the pipeline cannot run with.
func (c *Config) Validate() error {
	if len(c.Pipeline.SampleSizes) == 0 {
		return fmt.Errorf("invalid config: no sample sizes")
	}
	for _, n := range c.Pipeline.SampleSizes {
		if n <= 0 {
			return fmt.Errorf("invalid config: sample size %d must be positive", n)
		}
	}
	if c.Paths.RawDir == "" || c.Paths.OutDir == "" {
		return fmt.Errorf("invalid config: raw and output directories are required")
	}
	if len(c.Render.Palette) == 0 {
		return fmt.Errorf("invalid config: palette is empty")
	}
	if c.Render.WidthCM <= 0 || c.Render.HeightCM <= 0 {
		return fmt.Errorf("invalid config: canvas size %gx%g cm", c.Render.WidthCM, c.Render.HeightCM)
	}
	m := c.Render.Margins
	if m.Left < 0 || m.Bottom < 0 || m.Right > 1 || m.Top > 1 || m.Left >= m.Right || m.Bottom >= m.Top {
		return fmt.Errorf("invalid config: margins %+v", m)
	}
	if err := c.Render.XAxis.validate("x"); err != nil {
		return err
	}
	return c.Render.YAxis.validate("y")
}

func (a Axis) validate(name string) error {
	if a.Min >= a.Max {
		return fmt.Errorf("invalid config: %s axis min %g >= max %g", name, a.Min, a.Max)
	}
	if a.MajorStep <= 0 || a.MinorStep <= 0 {
		return fmt.Errorf("invalid config: %s axis tick steps must be positive", name)
	}
	if a.TickStart >= a.TickEnd {
		return fmt.Errorf("invalid config: %s axis tick start %g >= tick end %g", name, a.TickStart, a.TickEnd)
	}
	return nil
}

// styleFile is the TOML document accepted by QQPLOT_STYLE_FILE. Absent keys
// leave the environment-derived values untouched.
type styleFile struct {
	Palette   []string `toml:"palette"`
	WidthCM   *float64 `toml:"width_cm"`
	HeightCM  *float64 `toml:"height_cm"`
	Grid      *bool    `toml:"grid"`
	DateStamp *bool    `toml:"datestamp"`
	Margins   *Margins `toml:"margins"`
	XAxis     *Axis    `toml:"x_axis"`
	YAxis     *Axis    `toml:"y_axis"`
}

// ApplyStyleFile overrides render settings with the values found in the
// TOML file at path.
func (c *Config) ApplyStyleFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read style file: %w", err)
	}

	r := &c.Render

	// Tables decode on top of the current values so a partial [x_axis]
	// section only touches the keys it names.
	margins, xAxis, yAxis := r.Margins, r.XAxis, r.YAxis
	sf := styleFile{Margins: &margins, XAxis: &xAxis, YAxis: &yAxis}
	if err := toml.Unmarshal(data, &sf); err != nil {
		return fmt.Errorf("failed to parse style file %s: %w", path, err)
	}

	if len(sf.Palette) > 0 {
		r.Palette = sf.Palette
	}
	if sf.WidthCM != nil {
		r.WidthCM = *sf.WidthCM
	}
	if sf.HeightCM != nil {
		r.HeightCM = *sf.HeightCM
	}
	if sf.Grid != nil {
		r.Grid = *sf.Grid
	}
	if sf.DateStamp != nil {
		r.DateStamp = *sf.DateStamp
	}
	r.Margins = *sf.Margins
	r.XAxis = *sf.XAxis
	r.YAxis = *sf.YAxis
	return nil
}
