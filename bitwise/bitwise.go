// Package bitwise converts 32-bit unsigned integers to and from their
// little-endian and big-endian byte representations, the primitive the
// MO binary format builds everything else on top of.
package bitwise

import "encoding/binary"

// Uint32LE reads a little-endian 32-bit integer from the first 4 bytes
// of b. The caller must ensure len(b) >= 4.
func Uint32LE(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b)
}

// Uint32BE reads a big-endian 32-bit integer from the first 4 bytes of
// b. The caller must ensure len(b) >= 4.
func Uint32BE(b []byte) uint32 {
	return binary.BigEndian.Uint32(b)
}

// PutUint32LE returns the little-endian byte representation of v.
func PutUint32LE(v uint32) [4]byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return b
}

// PutUint32BE returns the big-endian byte representation of v.
func PutUint32BE(v uint32) [4]byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return b
}

// ByteOrder returns the binary.ByteOrder matching le: little-endian if
// le is true, big-endian otherwise.
func ByteOrder(le bool) binary.ByteOrder {
	if le {
		return binary.LittleEndian
	}
	return binary.BigEndian
}
