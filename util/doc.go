// Package util provides the shared byte-level helpers used across the
// library: little-endian packing, word-wise XOR combining, constant-time
// comparison, secure wiping, and zero-copy string conversions.
// WARNING: the zero-copy conversions use unsafe operations - returned byte
// slices are read-only and must not be modified.
package util
