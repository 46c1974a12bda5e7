// Package buffer provides cursor-tracked, big-endian byte access for the
// GraphBin wire format.
//
// A Buffer owns a contiguous byte sequence with independent write and read
// cursors. Writes append at the end; reads advance from the front. All
// multi-byte integers are big-endian, matching the wire contract.
//
// A Buffer is created per encode or per decode pass and discarded
// afterwards. It has exactly one logical owner at a time and performs no
// locking; callers running concurrent passes must give each its own Buffer.
package buffer
