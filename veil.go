// Package veil provides the cryptographic core of an obfuscating payload
// library: software-efficient stream ciphers behind a uniform contract,
// elliptic-curve key agreement (X25519, UM1, EC J-PAKE), and a multiplexed,
// authenticated payload framing format with cover-traffic options.
//
// The subpackages are dependency-ordered: util is the leaf, digest builds
// on it, stream hosts the cipher engines, curve25519 and ec supply the group
// arithmetic consumed by kex, and mux interleaves encrypted payload items
// over an Encrypt-then-MAC decorator.
package veil

// Version current version
const Version = "1.0.0"
