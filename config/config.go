package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/matt-g-everett/boxtx/annotate"
	"github.com/matt-g-everett/boxtx/util"
	"gopkg.in/yaml.v2"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

const (
	defaultWindowWidth = 1000
	defaultFrameSkip   = 5
	defaultFPS         = 30.0
	defaultOutputDir   = "output"
	defaultTopic       = "boxtx/boxes"
)

// Config is the YAML configuration of an annotation run.
type Config struct {
	Video struct {
		Frames string  `yaml:"frames"`
		Width  int     `yaml:"width"`
		FPS    float64 `yaml:"fps"`
	} `yaml:"video"`
	Annotation struct {
		Elements    int    `yaml:"elements"`
		FrameSkip   int    `yaml:"frameSkip"`
		WindowWidth int    `yaml:"windowWidth"`
		Keyframes   string `yaml:"keyframes"`
		Sentinel    string `yaml:"sentinel"`
		Easing      string `yaml:"easing"`
	} `yaml:"annotation"`
	Output struct {
		Dir    string `yaml:"dir"`
		CSV    bool   `yaml:"csv"`
		Frames bool   `yaml:"frames"`
		Plot   bool   `yaml:"plot"`
		Chart  bool   `yaml:"chart"`
	} `yaml:"output"`
	Mqtt struct {
		URL      string `yaml:"url"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		Topic    string `yaml:"topic"`
		QoS      byte   `yaml:"qos"`
	} `yaml:"mqtt"`
	HTTP struct {
		Addr string `yaml:"addr"`
	} `yaml:"http"`
	DB struct {
		Path string `yaml:"path"`
	} `yaml:"db"`
}

// Load reads, defaults and validates a config file.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a config from r, fills in defaults and validates it.
func Decode(r io.Reader) (*Config, error) {
	c := new(Config)
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(c); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Annotation.WindowWidth == 0 {
		c.Annotation.WindowWidth = defaultWindowWidth
	}
	if c.Annotation.FrameSkip == 0 {
		c.Annotation.FrameSkip = defaultFrameSkip
	}
	if c.Video.FPS == 0 {
		c.Video.FPS = defaultFPS
	}
	if c.Output.Dir == "" {
		c.Output.Dir = defaultOutputDir
	}
	if c.Mqtt.Topic == "" {
		c.Mqtt.Topic = defaultTopic
	}
}

// Validate checks the settings needed to run the interpolation.
func (c *Config) Validate() error {
	if c.Annotation.Elements < 1 {
		return fmt.Errorf("annotation.elements must be at least 1: %w", ErrInvalidConfig)
	}
	if c.Annotation.FrameSkip < 1 {
		return fmt.Errorf("annotation.frameSkip must be at least 1: %w", ErrInvalidConfig)
	}
	if c.Annotation.WindowWidth < 1 {
		return fmt.Errorf("annotation.windowWidth must be positive: %w", ErrInvalidConfig)
	}
	if c.Annotation.Keyframes == "" {
		return fmt.Errorf("annotation.keyframes is required: %w", ErrInvalidConfig)
	}
	if _, err := annotate.ParseSentinelPolicy(c.Annotation.Sentinel); err != nil {
		return fmt.Errorf("annotation.sentinel: %v: %w", err, ErrInvalidConfig)
	}
	if _, err := util.Easing(c.Annotation.Easing); err != nil {
		return fmt.Errorf("annotation.easing: %v: %w", err, ErrInvalidConfig)
	}
	if c.Video.Frames == "" && c.Video.Width < 1 {
		return fmt.Errorf("video.frames or video.width is required: %w", ErrInvalidConfig)
	}
	if c.Video.FPS < 0 {
		return fmt.Errorf("video.fps must be positive: %w", ErrInvalidConfig)
	}
	if c.Mqtt.QoS > 2 {
		return fmt.Errorf("mqtt.qos must be 0, 1 or 2: %w", ErrInvalidConfig)
	}
	return nil
}

// SentinelPolicy is the parsed annotation.sentinel setting.
func (c *Config) SentinelPolicy() annotate.SentinelPolicy {
	p, _ := annotate.ParseSentinelPolicy(c.Annotation.Sentinel)
	return p
}
