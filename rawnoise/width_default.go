//go:build !rawu64

package rawnoise

// DefaultWidth matches the record size of kernels before 6.13. Build with
// -tags rawu64 for newer kernels, which switched jent_testing_rb to u64.
const DefaultWidth = Width32
