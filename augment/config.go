package augment

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Config describes an augmentation pipeline as an ordered list of steps.
//
//	steps:
//	  - affine: {scale: [0.85, 1.15], rotate: [-45, 45]}
//	  - elastic: {}
//	  - fliplr: 0.5
type Config struct {
	Steps []StepConfig `yaml:"steps"`
}

// StepConfig must set exactly one field.
type StepConfig struct {
	Affine  *AffineConfig  `yaml:"affine,omitempty"`
	Elastic *ElasticConfig `yaml:"elastic,omitempty"`
	Fliplr  *float64       `yaml:"fliplr,omitempty"`
}

type AffineConfig struct {
	Scale  *Range `yaml:"scale,omitempty"`
	Rotate *Range `yaml:"rotate,omitempty"`
}

type ElasticConfig struct {
	Alpha *Range `yaml:"alpha,omitempty"`
	Sigma *Range `yaml:"sigma,omitempty"`
}

// DefaultConfig is zoom 0.85-1.15, rotation up to 45 degrees either way,
// then an elastic deformation with default parameters.
func DefaultConfig() Config {
	return Config{Steps: []StepConfig{
		{Affine: &AffineConfig{
			Scale:  &Range{Min: 0.85, Max: 1.15},
			Rotate: &Range{Min: -45, Max: 45},
		}},
		{Elastic: &ElasticConfig{}},
	}}
}

func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("augment: parse config: %w", err)
	}
	return cfg, nil
}

func (c Config) Build() (Augmenter, error) {
	if len(c.Steps) == 0 {
		return nil, errors.New("augment: config has no steps")
	}
	seq := make(Sequential, 0, len(c.Steps))
	for i, step := range c.Steps {
		a, err := step.build()
		if err != nil {
			return nil, fmt.Errorf("augment: step %d: %w", i, err)
		}
		seq = append(seq, a)
	}
	return seq, nil
}

func (s StepConfig) build() (Augmenter, error) {
	set := 0
	for _, ok := range []bool{s.Affine != nil, s.Elastic != nil, s.Fliplr != nil} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return nil, fmt.Errorf("expected exactly one of affine, elastic, fliplr; got %d", set)
	}

	switch {
	case s.Affine != nil:
		scale, rotate := Constant(1), Constant(0)
		if s.Affine.Scale != nil {
			scale = *s.Affine.Scale
		}
		if s.Affine.Rotate != nil {
			rotate = *s.Affine.Rotate
		}
		return NewAffine(scale, rotate)
	case s.Elastic != nil:
		def := DefaultElasticTransformation()
		alpha, sigma := def.Alpha, def.Sigma
		if s.Elastic.Alpha != nil {
			alpha = *s.Elastic.Alpha
		}
		if s.Elastic.Sigma != nil {
			sigma = *s.Elastic.Sigma
		}
		return NewElasticTransformation(alpha, sigma)
	default:
		p := *s.Fliplr
		if p < 0 || p > 1 {
			return nil, fmt.Errorf("fliplr probability %v outside [0, 1]", p)
		}
		return Fliplr{P: p}, nil
	}
}

// UnmarshalYAML accepts a scalar (constant) or a two-element list [min, max].
func (r *Range) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var v float32
		if err := value.Decode(&v); err != nil {
			return err
		}
		*r = Constant(v)
		return nil
	}
	var vs []float32
	if err := value.Decode(&vs); err != nil {
		return err
	}
	if len(vs) != 2 {
		return fmt.Errorf("range needs [min, max], got %d values", len(vs))
	}
	*r = Range{Min: vs[0], Max: vs[1]}
	return nil
}

func (r Range) MarshalYAML() (any, error) {
	return []float32{r.Min, r.Max}, nil
}
