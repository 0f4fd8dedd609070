package annotate

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/yolokit/go-annotate/postprocess"
	"github.com/yolokit/go-annotate/render"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Config is the inference configuration file, eg:
//
//	conf_thres: 0.4
//	iou_thres: 0.6
//	tracking: true
//	classes: coco-pose.yaml
//	connection_space: pixel
//
// Thresholds left out keep their defaults.  Either a classes metadata file or
// a plain labels file must be given.  Skeleton connection endpoints are taken
// as pixel coordinates, which is what detector records carry, unless
// connection_space is set to normalized
type Config struct {
	ConfThres *float32 `yaml:"conf_thres" validate:"omitempty,gte=0,lte=1"`
	IoUThres  *float32 `yaml:"iou_thres" validate:"omitempty,gte=0,lte=1"`
	Tracking  bool     `yaml:"tracking"`
	Classes   string   `yaml:"classes" validate:"required_without=Labels"`
	Labels    string   `yaml:"labels"`

	ConnectionSpace string `yaml:"connection_space" validate:"omitempty,oneof=pixel normalized"`
}

// Params returns the filter parameters with defaults for unset thresholds
func (c Config) Params() postprocess.Params {

	p := postprocess.DefaultParams()

	if c.ConfThres != nil {
		p.ConfThreshold = *c.ConfThres
	}

	if c.IoUThres != nil {
		p.IoUThreshold = *c.IoUThres
	}

	return p
}

// Style returns the default drawing style with the configured connection
// coordinate space
func (c Config) Style() render.Style {

	style := render.DefaultStyle()
	style.ConnectionSpace = render.PixelSpace

	if c.ConnectionSpace == "normalized" {
		style.ConnectionSpace = render.NormalizedSpace
	}

	return style
}

// LoadConfig reads a config file.  Relative classes and labels paths are
// resolved against the directory of the config file
func LoadConfig(path string) (Config, error) {

	data, err := os.ReadFile(path)

	if err != nil {
		return Config{}, fmt.Errorf("error reading config: %w", err)
	}

	cfg, err := ParseConfig(data)

	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	dir := filepath.Dir(path)
	cfg.Classes = resolvePath(dir, cfg.Classes)
	cfg.Labels = resolvePath(dir, cfg.Labels)

	return cfg, nil
}

// ParseConfig decodes and validates config data
func ParseConfig(data []byte) (Config, error) {

	var cfg Config

	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return Config{}, errors.New("empty config")
		}

		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func resolvePath(dir, p string) string {

	if p == "" || filepath.IsAbs(p) {
		return p
	}

	return filepath.Join(dir, p)
}
