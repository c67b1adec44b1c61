package config

import (
	"errors"
	"fmt"
	"go/token"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file looked up next to the working directory.
const DefaultFile = "cmpby.yaml"

// Default values.
const (
	DefaultOutput   = "cmpby_gen.go"
	DefaultOrdering = "CmpBy"
	DefaultHashing  = "HashBy"
	DefaultCombined = "SortBy"
	DefaultReceiver = "x"
	DefaultOther    = "y"
	DefaultWorkers  = 4
)

// Markers names the annotations recognized by each generator.
type Markers struct {
	Ordering string `yaml:"ordering" validate:"required,goident,nefield=Hashing,nefield=Combined"`
	Hashing  string `yaml:"hashing" validate:"required,goident,nefield=Combined"`
	Combined string `yaml:"combined" validate:"required,goident"`
}

// All returns the marker names in generator order.
func (m Markers) All() []string {
	return []string{m.Ordering, m.Hashing, m.Combined}
}

// Names holds the emitted method names. Sealed interfaces get package
// functions named by appending the type name, e.g. CompareNote.
type Names struct {
	Compare string `yaml:"compare" validate:"required,goident"`
	Equal   string `yaml:"equal" validate:"required,goident"`
	Less    string `yaml:"less" validate:"required,goident"`
	Hash    string `yaml:"hash" validate:"required,goident"`
}

// Config is the full generator configuration.
type Config struct {
	Output   string  `yaml:"output" validate:"required,endswith=.go,excludes=/"`
	Markers  Markers `yaml:"markers"`
	Methods  Names   `yaml:"methods"`
	Receiver string  `yaml:"receiver" validate:"required,goident,ne=c,ne=h,nefield=Other"`
	Other    string  `yaml:"other" validate:"required,goident,ne=c,ne=h"`
	Workers  int     `yaml:"workers" validate:"gte=1,lte=64"`
	Verbose  bool    `yaml:"verbose"`
}

var validate = mustValidator()

// newValidator returns a validator knowing the "goident" tag.
func newValidator() (*validator.Validate, error) {
	v := validator.New()

	err := v.RegisterValidation("goident", func(fl validator.FieldLevel) bool {
		return isGoIdent(fl.Field().String())
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register goident validation: %w", err)
	}

	return v, nil
}

func mustValidator() *validator.Validate {
	v, err := newValidator()
	if err != nil {
		panic(err)
	}

	return v
}

func isGoIdent(s string) bool {
	return token.IsIdentifier(s) && s != "_"
}

// Default returns a configuration with every value set to its default.
func Default() *Config {
	c := &Config{}
	applyDefaults(c)

	return c
}

// Load reads the YAML file at path. A missing file yields the defaults when
// optional is true.
func Load(path string, optional bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

// Parse decodes YAML data, applies defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var c Config

	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&c)

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

// Marshal serializes the configuration to YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// applyDefaults fills in default values for unset fields.
func applyDefaults(c *Config) {
	setDefault(&c.Output, DefaultOutput)
	setDefault(&c.Markers.Ordering, DefaultOrdering)
	setDefault(&c.Markers.Hashing, DefaultHashing)
	setDefault(&c.Markers.Combined, DefaultCombined)
	setDefault(&c.Methods.Compare, "Compare")
	setDefault(&c.Methods.Equal, "Equal")
	setDefault(&c.Methods.Less, "Less")
	setDefault(&c.Methods.Hash, "Hash")
	setDefault(&c.Receiver, DefaultReceiver)
	setDefault(&c.Other, DefaultOther)

	if c.Workers == 0 {
		c.Workers = DefaultWorkers
	}
}

func setDefault(s *string, v string) {
	if *s == "" {
		*s = v
	}
}
