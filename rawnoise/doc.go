// Package rawnoise turns a stream of raw noise samples, as exposed by the
// jitterentropy kernel test interface, into first-order differences.
//
// The source is read in bounded, word aligned chunks. Each word is a
// native-endian unsigned integer of the configured width. The first word of
// a run seeds the previous-sample register and is never emitted; every word
// after it yields one delta computed with wraparound at the word width.
//
// Features:
//   - 32-bit and 64-bit records, selected per run
//   - Partial reads are stitched across chunk boundaries
//   - Distinguishable errors for read failures and premature end of source
package rawnoise
