package raidstream

import "encoding/binary"

// xorInto computes target[0:length] ^= source[0:length]. Both slices
// must have at least length bytes; the caller is trusted on this, with
// no bounds re-checking at this layer.
//
// The bulk of the range is processed eight bytes at a time as uint64
// words - the widest machine word Go exposes without reaching for
// architecture-specific assembly - and the remaining 0-7 bytes are
// handled by a scalar tail loop. There is no SIMD path: no vector
// instructions or build-tag-gated assembly are used, so the bulk loop
// runs at 64-bit word width on every platform (see DESIGN.md for why no
// pack dependency offers this as a library).
//
// xorInto is commutative and associative across repeated calls:
// xorInto(t, a, n) then xorInto(t, b, n) yields t ^ a ^ b regardless of
// call order, since XOR itself is commutative and associative per
// byte.
func xorInto(target, source []byte, length int) {
	words := length / 8
	for i := 0; i < words; i++ {
		off := i * 8
		t := binary.NativeEndian.Uint64(target[off : off+8])
		s := binary.NativeEndian.Uint64(source[off : off+8])
		binary.NativeEndian.PutUint64(target[off:off+8], t^s)
	}

	for i := words * 8; i < length; i++ {
		target[i] ^= source[i]
	}
}
