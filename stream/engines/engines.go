// Package engines resolves stream cipher algorithm names to engine
// constructors. The name set is closed; the multiplexer and key-agreement
// layers build engines exclusively through this registry.
package engines

import (
	"github.com/dromara/veil/stream"
	"github.com/dromara/veil/stream/chacha"
	"github.com/dromara/veil/stream/hc128"
	"github.com/dromara/veil/stream/hc256"
	"github.com/dromara/veil/stream/isaac"
	"github.com/dromara/veil/stream/rabbit"
	"github.com/dromara/veil/stream/salsa20"
	"github.com/dromara/veil/stream/sosemanuk"
	"github.com/dromara/veil/stream/xsalsa20"
)

// New returns an uninitialized engine for the named algorithm.
func New(name string) (stream.Cipher, error) {
	switch name {
	case "HC-128":
		return hc128.New(), nil
	case "HC-256":
		return hc256.New(), nil
	case "Rabbit":
		return rabbit.New(), nil
	case "Salsa20":
		return salsa20.New(), nil
	case "ChaCha8":
		return chacha.New(8)
	case "ChaCha12":
		return chacha.New(12)
	case "ChaCha20":
		return chacha.New(20)
	case "XSalsa20":
		return xsalsa20.New(), nil
	case "SOSEMANUK":
		return sosemanuk.New(), nil
	case "ISAAC":
		return isaac.New(), nil
	}
	return nil, UnknownAlgorithmError(name)
}

// Names returns the registered algorithm names in registry order.
func Names() []string {
	return []string{"HC-128", "HC-256", "Rabbit", "Salsa20", "ChaCha8", "ChaCha12", "ChaCha20", "XSalsa20", "SOSEMANUK", "ISAAC"}
}
