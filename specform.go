// Package specform provides a top-level convenience entry point for
// rendering structured-output schemas into prompts and decoding model
// responses back into validated data.
//
// Usage:
//
//	import "github.com/BaSui01/specform"
//
//	c := specform.New(mySpec, specform.WithLogger(logger))
//	block, err := c.Render()
//	data, err := c.Decode(modelResponse)
//	report := c.Validate(data)
//
// This is a thin wrapper around the spec, render, decode and validate
// packages; use it when you prefer the shorter import path. Diagnostics
// (parser repairs, unused refs, auto-wrap notices) are logged through the
// injected zap logger and never affect results.
package specform

import (
	"go.uber.org/zap"

	"github.com/BaSui01/specform/decode"
	"github.com/BaSui01/specform/render"
	"github.com/BaSui01/specform/spec"
	"github.com/BaSui01/specform/validate"
)

// Re-export the core types so callers never need to import spec/.

type (
	Spec            = spec.Spec
	SpecOptions     = spec.Options
	Cardinality     = spec.Cardinality
	Field           = spec.Field
	FieldOptions    = spec.FieldOptions
	Keyword         = spec.Keyword
	Date            = spec.Date
	Report          = validate.Report
	ValidationError = validate.Error
)

const (
	One  = spec.One
	Many = spec.Many
)

// NewField validates field options and builds a field definition.
var NewField = spec.NewField

// NewSpec validates spec options and builds a spec.
var NewSpec = spec.New

// RefTo targets a single named spec from a ref field.
var RefTo = spec.RefTo

// RefToAny targets an ordered union of named specs from a ref field.
var RefToAny = spec.RefToAny

// ParseDate parses an ISO "2006-01-02" date string.
var ParseDate = spec.ParseDate

// Codec binds a spec to the render/decode/validate pipelines and a logger
// for their diagnostics.
type Codec struct {
	spec   *spec.Spec
	logger *zap.Logger
	model  string
}

// Option configures the codec created by [New].
type Option func(*Codec)

// WithLogger sets a custom zap logger for pipeline diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Codec) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithModel sets the model used for prompt token estimates.
func WithModel(model string) Option {
	return func(c *Codec) { c.model = model }
}

// New builds a codec for the spec. Without options it logs nowhere and
// estimates tokens for gpt-4o.
func New(s *spec.Spec, opts ...Option) *Codec {
	c := &Codec{spec: s, logger: zap.NewNop(), model: "gpt-4o"}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Render writes the spec's schema block, logging unused-ref warnings.
func (c *Codec) Render() (string, error) {
	text, warnings, err := render.Render(c.spec)
	c.log("render", warnings)
	return text, err
}

// PromptTokens reports the token cost of a rendered block for the codec's
// model.
func (c *Codec) PromptTokens(rendered string) int {
	return render.TokenEstimate(rendered, c.model)
}

// Decode restores a model response to the spec's shape, logging parser
// repairs and shape adjustments.
func (c *Codec) Decode(text string) (any, error) {
	value, warnings, err := decode.Decode(text, c.spec)
	c.log("decode", warnings)
	return value, err
}

// ParseOnly runs the lenient parse alone, without restoration, retyping or
// namespacing.
func (c *Codec) ParseOnly(text string) (any, error) {
	value, warnings, err := decode.ParseOnly(text)
	c.log("parse", warnings)
	return value, err
}

// Validate checks decoded data against the spec and reports every
// violation.
func (c *Codec) Validate(data any) validate.Report {
	return validate.Validate(c.spec, data)
}

// Serialize renders data as JSON text, converting dates and keywords to
// their plain wire forms.
func (c *Codec) Serialize(data any) (string, error) {
	return decode.Serialize(data)
}

func (c *Codec) log(stage string, warnings []string) {
	for _, w := range warnings {
		c.logger.Warn("specform diagnostic", zap.String("stage", stage), zap.String("detail", w))
	}
}

// Package-level conveniences over a throwaway codec.

// Render writes the spec's schema block.
func Render(s *spec.Spec) (string, error) { return New(s).Render() }

// Decode restores a model response to the spec's shape.
func Decode(text string, s *spec.Spec) (any, error) { return New(s).Decode(text) }

// Validate checks decoded data against the spec.
func Validate(s *spec.Spec, data any) validate.Report { return validate.Validate(s, data) }

// Serialize renders data as JSON text.
func Serialize(data any) (string, error) { return decode.Serialize(data) }
