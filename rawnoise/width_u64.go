//go:build rawu64

package rawnoise

// DefaultWidth matches the u64 records exposed from Linux 6.13 onwards.
const DefaultWidth = Width64
