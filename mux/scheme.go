package mux

import "fmt"

// Scheme selects the multiplexing variant.
type Scheme int

// Multiplexing schemes.
const (
	// SchemeSimple streams each item in one run with empty headers and
	// trailers.
	SchemeSimple Scheme = iota
	// SchemeFrameshift surrounds each item with random-byte padding of a
	// fixed or entropy-drawn length.
	SchemeFrameshift
	// SchemeFabric interleaves items stripe by stripe.
	SchemeFabric
)

// String returns the scheme name.
func (s Scheme) String() string {
	switch s {
	case SchemeSimple:
		return "Simple"
	case SchemeFrameshift:
		return "Frameshift"
	case SchemeFabric:
		return "Fabric"
	}
	return fmt.Sprintf("Scheme(%d)", int(s))
}

// Package-format size constants, stable within a format version.
const (
	// StripeFieldMax bounds the wire representation of a stripe length.
	StripeFieldMax = 2
	// PaddingFieldMax bounds the wire representation of a padding length.
	PaddingFieldMax = 2
	// ItemFieldMax bounds the wire representation of an item index.
	ItemFieldMax = 2

	// MinimumPaddingLength and MaximumPaddingLength bound Frameshift
	// padding draws.
	MinimumPaddingLength = 8
	MaximumPaddingLength = 512

	// MinimumStripeLength and MaximumStripeLength bound Fabric stripe
	// draws.
	MinimumStripeLength = 8
	MaximumStripeLength = 32768
)

// bufferSize is the chunk size for streaming item bodies.
const bufferSize = 4096

// Config selects the scheme, its range parameters and the shared schedule
// seed. Minimum and Maximum bound the padding length for Frameshift and
// the stripe length for Fabric; equal bounds pin the draw to a constant.
type Config struct {
	Scheme   Scheme
	Minimum  int
	Maximum  int
	Seed     []byte
	SkipIDs  []ItemID // items to bypass by seeking; read direction only
}

// validate rejects range parameters outside the legal scheme bounds.
func (c *Config) validate() error {
	switch c.Scheme {
	case SchemeSimple:
		return nil
	case SchemeFrameshift:
		if c.Minimum < MinimumPaddingLength || c.Minimum > c.Maximum || c.Maximum > MaximumPaddingLength {
			return SchemeBoundsError{Scheme: c.Scheme, Minimum: c.Minimum, Maximum: c.Maximum}
		}
		return nil
	case SchemeFabric:
		if c.Minimum < MinimumStripeLength || c.Minimum > c.Maximum || c.Maximum > MaximumStripeLength {
			return SchemeBoundsError{Scheme: c.Scheme, Minimum: c.Minimum, Maximum: c.Maximum}
		}
		return nil
	}
	return SchemeBoundsError{Scheme: c.Scheme, Minimum: c.Minimum, Maximum: c.Maximum}
}
