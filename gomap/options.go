package gomap

import (
	"time"

	"github.com/signadot/tony-format/go-keypath/cursor"
	"github.com/signadot/tony-format/go-keypath/encode"
)

// MapOption is an option for controlling the mapping process from Go to IR.
type MapOption interface {
	applyMap(*mapConfig)
}

// UnmapOption is an option for controlling the unmapping process from IR to Go.
type UnmapOption interface {
	applyUnmap(*unmapConfig)
}

// Option applies in both directions.
type Option interface {
	MapOption
	UnmapOption
}

type mapConfig struct {
	keys       cursor.KeyStrategy
	timeLayout string

	// EncodeOptions to pass through to encode.JSON and encode.YAML
	EncodeOptions []encode.EncodeOption
}

type unmapConfig struct {
	keys       cursor.KeyStrategy
	timeLayout string
}

func newMapConfig(opts []MapOption) *mapConfig {
	cfg := &mapConfig{keys: cursor.Identity, timeLayout: time.RFC3339}
	for _, opt := range opts {
		opt.applyMap(cfg)
	}
	return cfg
}

func newUnmapConfig(opts []UnmapOption) *unmapConfig {
	cfg := &unmapConfig{keys: cursor.Identity, timeLayout: time.RFC3339}
	for _, opt := range opts {
		opt.applyUnmap(cfg)
	}
	return cfg
}

type keyStrategyOption struct{ keys cursor.KeyStrategy }

func (o keyStrategyOption) applyMap(c *mapConfig)     { c.keys = o.keys }
func (o keyStrategyOption) applyUnmap(c *unmapConfig) { c.keys = o.keys }

// WithKeyStrategy sets how schema keys are spelled in documents.
// The default is cursor.Identity.
func WithKeyStrategy(keys cursor.KeyStrategy) Option {
	if keys == nil {
		keys = cursor.Identity
	}
	return keyStrategyOption{keys: keys}
}

type timeLayoutOption string

func (o timeLayoutOption) applyMap(c *mapConfig)     { c.timeLayout = string(o) }
func (o timeLayoutOption) applyUnmap(c *unmapConfig) { c.timeLayout = string(o) }

// WithTimeLayout sets the layout of time.Time values. The default is
// time.RFC3339.
func WithTimeLayout(layout string) Option {
	return timeLayoutOption(layout)
}

type encodeOptions []encode.EncodeOption

func (o encodeOptions) applyMap(c *mapConfig) {
	c.EncodeOptions = append(c.EncodeOptions, o...)
}

// WithEncodeOptions passes options to the text encoder used by MarshalJSON
// and MarshalYAML.
func WithEncodeOptions(opts ...encode.EncodeOption) MapOption {
	return encodeOptions(opts)
}

// ToEncodeOptions extracts EncodeOptions from a slice of MapOptions.
func ToEncodeOptions(opts ...MapOption) []encode.EncodeOption {
	return newMapConfig(opts).EncodeOptions
}
