// Package fxhash implements a small, fast, non-cryptographic hash for short
// keys such as station names. It folds the input a machine word at a time in
// the style of FxHash and finishes with an avalanche step, so that the high
// and the low bits of the result are both usable as a table index.
//
// Do not use it on keys an adversary controls.
package fxhash

import (
	"encoding/binary"
	"math/bits"
)

const seed = 0x517cc1b727220a95

func add(h, w uint64) uint64 {
	return (bits.RotateLeft64(h, 5) ^ w) * seed
}

// Sum64 returns the hash of b.
func Sum64(b []byte) uint64 {
	h := uint64(len(b))
	for len(b) >= 8 {
		h = add(h, binary.LittleEndian.Uint64(b))
		b = b[8:]
	}
	if len(b) >= 4 {
		h = add(h, uint64(binary.LittleEndian.Uint32(b)))
		b = b[4:]
	}
	if len(b) >= 2 {
		h = add(h, uint64(binary.LittleEndian.Uint16(b)))
		b = b[2:]
	}
	if len(b) >= 1 {
		h = add(h, uint64(b[0]))
	}
	return mix(h)
}

// String is Sum64 for strings.
func String(s string) uint64 {
	return Sum64([]byte(s))
}

// mix is the 64-bit finalizer from MurmurHash3.
func mix(h uint64) uint64 {
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	h *= 0xc4ceb9fe1a85ec53
	h ^= h >> 33
	return h
}
