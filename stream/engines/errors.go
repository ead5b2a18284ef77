package engines

import "fmt"

// UnknownAlgorithmError represents an error when an algorithm name is not
// in the registry.
type UnknownAlgorithmError string

// Error returns a formatted error message naming the unknown algorithm.
func (e UnknownAlgorithmError) Error() string {
	return fmt.Sprintf("veil/stream/engines: unknown stream cipher %q", string(e))
}
