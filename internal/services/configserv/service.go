// Package configserv demonstrates the result convention on configuration
// loading: a JSON document is validated against a declared shape before it
// is bound, and every rejection comes back as an Err result.
package configserv

import (
	"os"

	"github.com/goccy/go-json"

	"github.com/Philanthropists/checked/pkg/check"
	"github.com/Philanthropists/checked/pkg/result"
	"github.com/Philanthropists/checked/pkg/shape"
)

type Config struct {
	Name       string   `json:"name"`
	Debug      bool     `json:"debug"`
	MaxRetries int      `json:"max_retries"`
	Tags       []string `json:"tags"`
}

const defaultMaxRetries = 3

// DocumentShape describes the raw JSON document before it is bound to
// Config. JSON numbers decode as float64, hence Number.
var DocumentShape = shape.Record(map[string]shape.Shape{
	"name":        shape.String(),
	"debug":       shape.Optional(shape.Bool()),
	"max_retries": shape.Optional(shape.Number()),
	"tags":        shape.Optional(shape.Slice(shape.String())),
})

// ConfigShape declares the value Process promises inside an Ok result.
var ConfigShape = shape.Struct(map[string]shape.Shape{
	"Name":       shape.String(),
	"Debug":      shape.Bool(),
	"MaxRetries": shape.Int(),
})

// Process parses and validates a raw JSON config document.
func Process(raw []byte) result.Result[Config] {
	return check.Value(ConfigShape, process(raw))
}

func process(raw []byte) result.Result[Config] {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return result.ErrCause[Config](err, "config is not valid json")
	}

	if err := DocumentShape.Check(doc); err != nil {
		return result.ErrCause[Config](err, "config document rejected")
	}

	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return result.ErrCause[Config](err, "config does not bind")
	}

	if cfg.MaxRetries < 0 {
		return result.Err[Config]("max_retries must not be negative, got %d", cfg.MaxRetries)
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = defaultMaxRetries
	}

	return result.Ok(cfg)
}

// Load reads path and processes its contents.
func Load(path string) result.Result[Config] {
	raw, err := os.ReadFile(path)
	if err != nil {
		return result.ErrCause[Config](err, "could not read config file %s", path)
	}

	return Process(raw)
}
